package game

import (
	"crypto/rand"
	"errors"
	"math/big"
	"sync"
	"time"
)

// MinebombGame is a stateful 5x5 reveal-or-bust round. The player reveals
// tiles to grow a linear multiplier and may cash out at any time; hitting a
// bomb forfeits the stake.
type MinebombGame struct {
	ID         string     `json:"id"`
	UserID     int64      `json:"user_id"`
	Bet        int64      `json:"bet"`
	BombCount  int        `json:"bomb_count"`
	Revealed   []int      `json:"revealed"`
	Multiplier float64    `json:"multiplier"`
	Status     string     `json:"status"`
	WinAmount  int64      `json:"win_amount"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	bombs      []int
	mu         sync.RWMutex
}

const (
	MinebombGridSize = 25 // 5x5

	MinebombStatusActive    = "active"
	MinebombStatusCashedOut = "cashed_out"
	MinebombStatusExploded  = "exploded"
)

// baseRates keys the multiplier growth off the chosen bomb count.
var baseRates = map[int]float64{3: 0.12, 5: 0.20, 10: 0.35}

// NewMinebombGame places the bombs uniformly at random. Bomb count is
// limited to the three selectable difficulties.
func NewMinebombGame(id string, userID int64, bet int64, bombCount int) (*MinebombGame, error) {
	if _, ok := baseRates[bombCount]; !ok {
		return nil, errors.New("bomb count must be 3, 5 or 10")
	}
	if bet <= 0 {
		return nil, errors.New("bet must be positive")
	}

	g := &MinebombGame{
		ID:         id,
		UserID:     userID,
		Bet:        bet,
		BombCount:  bombCount,
		Revealed:   []int{},
		Multiplier: 1.0,
		Status:     MinebombStatusActive,
		CreatedAt:  time.Now(),
	}
	g.bombs = placeBombs(bombCount)
	return g, nil
}

func placeBombs(count int) []int {
	bombs := make([]int, 0, count)
	used := make(map[int]bool)
	for len(bombs) < count {
		n, err := rand.Int(rand.Reader, big.NewInt(MinebombGridSize))
		if err != nil {
			n = big.NewInt(int64(len(bombs)))
		}
		pos := int(n.Int64())
		if !used[pos] {
			used[pos] = true
			bombs = append(bombs, pos)
		}
	}
	return bombs
}

// MinebombMultiplier is the multiplier after revealedCount safe tiles with
// the given bomb count: 1 + baseRate(N) * revealed * (N/3). The value is kept
// exact; rounding happens only when the payout is converted to chips.
func MinebombMultiplier(bombCount, revealedCount int) float64 {
	rate, ok := baseRates[bombCount]
	if !ok {
		return 1.0
	}
	return 1.0 + rate*float64(revealedCount)*(float64(bombCount)/3.0)
}

// Reveal uncovers one tile. A bomb ends the round with zero payout;
// uncovering the last safe tile auto-cashes at the final multiplier.
func (g *MinebombGame) Reveal(tile int) (hitBomb bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != MinebombStatusActive {
		return false, errors.New("round is not active")
	}
	if tile < 0 || tile >= MinebombGridSize {
		return false, errors.New("invalid tile position")
	}
	for _, t := range g.Revealed {
		if t == tile {
			return false, errors.New("tile already revealed")
		}
	}

	for _, b := range g.bombs {
		if b == tile {
			g.Status = MinebombStatusExploded
			g.WinAmount = 0
			now := time.Now()
			g.FinishedAt = &now
			return true, nil
		}
	}

	g.Revealed = append(g.Revealed, tile)
	g.Multiplier = MinebombMultiplier(g.BombCount, len(g.Revealed))

	if len(g.Revealed) >= MinebombGridSize-g.BombCount {
		g.cashOutLocked()
	}
	return false, nil
}

// CashOut settles the round at the current multiplier.
func (g *MinebombGame) CashOut() (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != MinebombStatusActive {
		return 0, errors.New("round is not active")
	}
	g.cashOutLocked()
	return g.WinAmount, nil
}

func (g *MinebombGame) cashOutLocked() {
	g.Status = MinebombStatusCashedOut
	g.WinAmount = int64(float64(g.Bet) * g.Multiplier)
	now := time.Now()
	g.FinishedAt = &now
}

// IsActive reports whether the round can still be played.
func (g *MinebombGame) IsActive() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.Status == MinebombStatusActive
}

// Age returns how long ago the round was created.
func (g *MinebombGame) Age() time.Duration {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return time.Since(g.CreatedAt)
}

// State returns a client-safe view. Bomb positions are only exposed once the
// round is over.
func (g *MinebombGame) State() map[string]interface{} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	state := map[string]interface{}{
		"id":            g.ID,
		"bet":           g.Bet,
		"bomb_count":    g.BombCount,
		"revealed":      g.Revealed,
		"multiplier":    g.Multiplier,
		"status":        g.Status,
		"win_amount":    g.WinAmount,
		"potential_win": int64(float64(g.Bet) * g.Multiplier),
	}
	if g.Status != MinebombStatusActive {
		state["bombs"] = g.bombs
	}
	return state
}
