package game

import (
	"errors"
	"sync"
	"time"
)

// BlackjackGame is a stateful single-player round against the dealer.
// The stake is debited at start; settlement computes the total return
// (already including the returned stake for wins and pushes).
type BlackjackGame struct {
	ID          string     `json:"id"`
	UserID      int64      `json:"user_id"`
	Bet         int64      `json:"bet"`
	PlayerHand  []Card     `json:"player_hand"`
	DealerHand  []Card     `json:"dealer_hand"`
	Status      string     `json:"status"`
	Outcome     string     `json:"outcome,omitempty"`
	WinAmount   int64      `json:"win_amount"`
	CreatedAt   time.Time  `json:"created_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	shoe        *Shoe
	mu          sync.RWMutex
}

const (
	BlackjackStatusActive  = "active"
	BlackjackStatusSettled = "settled"

	BlackjackOutcomeBlackjack = "blackjack"
	BlackjackOutcomeWin       = "win"
	BlackjackOutcomePush      = "push"
	BlackjackOutcomeLose      = "lose"

	BlackjackDealerStand = 17
)

// NewBlackjackGame deals the opening hands from a freshly shuffled shoe and
// settles immediately when either side holds a natural.
func NewBlackjackGame(id string, userID int64, bet int64) (*BlackjackGame, error) {
	return newBlackjackGame(id, userID, bet, NewShoe())
}

func newBlackjackGame(id string, userID int64, bet int64, shoe *Shoe) (*BlackjackGame, error) {
	if bet <= 0 {
		return nil, errors.New("bet must be positive")
	}

	g := &BlackjackGame{
		ID:        id,
		UserID:    userID,
		Bet:       bet,
		Status:    BlackjackStatusActive,
		CreatedAt: time.Now(),
		shoe:      shoe,
	}

	g.PlayerHand = append(g.PlayerHand, shoe.Draw(), shoe.Draw())
	g.DealerHand = append(g.DealerHand, shoe.Draw(), shoe.Draw())

	playerNatural := HandScore(g.PlayerHand) == 21
	dealerNatural := HandScore(g.DealerHand) == 21

	switch {
	case playerNatural && dealerNatural:
		g.finish(BlackjackOutcomePush, g.Bet)
	case playerNatural:
		g.finish(BlackjackOutcomeBlackjack, int64(float64(g.Bet)*2.5))
	case dealerNatural:
		g.finish(BlackjackOutcomeLose, 0)
	}

	return g, nil
}

// HandScore values aces at 11 and demotes one ace at a time to 1 while the
// hand would otherwise bust.
func HandScore(cards []Card) int {
	score := 0
	aces := 0
	for _, c := range cards {
		if c.Rank == RankAce {
			aces++
		}
		score += c.BlackjackValue()
	}
	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}
	return score
}

// Hit draws one card for the player. A bust settles the round with no payout.
func (g *BlackjackGame) Hit() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != BlackjackStatusActive {
		return errors.New("round is not active")
	}

	g.PlayerHand = append(g.PlayerHand, g.shoe.Draw())
	if HandScore(g.PlayerHand) > 21 {
		g.finish(BlackjackOutcomeLose, 0)
	}
	return nil
}

// Stand plays out the dealer (hit below 17, stand at 17 or more) and settles.
func (g *BlackjackGame) Stand() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != BlackjackStatusActive {
		return errors.New("round is not active")
	}

	for HandScore(g.DealerHand) < BlackjackDealerStand {
		g.DealerHand = append(g.DealerHand, g.shoe.Draw())
	}

	player := HandScore(g.PlayerHand)
	dealer := HandScore(g.DealerHand)

	switch {
	case dealer > 21 || player > dealer:
		g.finish(BlackjackOutcomeWin, g.Bet*2)
	case player == dealer:
		g.finish(BlackjackOutcomePush, g.Bet)
	default:
		g.finish(BlackjackOutcomeLose, 0)
	}
	return nil
}

func (g *BlackjackGame) finish(outcome string, winAmount int64) {
	g.Status = BlackjackStatusSettled
	g.Outcome = outcome
	g.WinAmount = winAmount
	now := time.Now()
	g.FinishedAt = &now
}

// IsActive reports whether the player still has decisions to make.
func (g *BlackjackGame) IsActive() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.Status == BlackjackStatusActive
}

// State returns a client-safe view. The dealer's hole card stays hidden
// while the round is active.
func (g *BlackjackGame) State() map[string]interface{} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	dealerVisible := g.DealerHand
	if g.Status == BlackjackStatusActive && len(g.DealerHand) > 0 {
		dealerVisible = g.DealerHand[:1]
	}

	state := map[string]interface{}{
		"id":           g.ID,
		"bet":          g.Bet,
		"player_hand":  g.PlayerHand,
		"player_score": HandScore(g.PlayerHand),
		"dealer_hand":  dealerVisible,
		"status":       g.Status,
		"win_amount":   g.WinAmount,
	}
	if g.Status != BlackjackStatusActive {
		state["dealer_score"] = HandScore(g.DealerHand)
		state["outcome"] = g.Outcome
	}
	return state
}

// ToDetails returns round details for the transaction ledger.
func (g *BlackjackGame) ToDetails() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return "blackjack " + g.Outcome
}
