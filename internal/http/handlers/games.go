package handlers

import (
	"net/http"

	"checkels_casino/internal/domain"
	"checkels_casino/internal/game"
	"checkels_casino/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// playChipRound runs a single-shot chip round inside one database
// transaction: lock the balance, deduct the stake, credit the payout and
// write both ledger entries. The resolve callback is pure and must not
// touch the database.
func (h *Handler) playChipRound(c *gin.Context, gameType domain.GameType, stake int64, resolve func() (payout int64, details string)) (payout int64, newBalance int64, ok bool) {
	ctx := c.Request.Context()

	tx, err := h.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return 0, 0, false
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userID, _ := getUserID(c)

	balances, err := h.AccountRepo.LockBalances(ctx, tx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return 0, 0, false
	}
	if balances.Chips < stake {
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient balance"})
		return 0, 0, false
	}

	newBalance, err = h.AccountRepo.AddChipsTx(ctx, tx, userID, -stake)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return 0, 0, false
	}

	payout, details := resolve()

	betRecord := &domain.Transaction{
		UserID:      userID,
		Type:        domain.TxBet,
		Game:        string(gameType),
		Amount:      float64(-stake),
		ChipsAmount: -stake,
		Description: details,
	}
	if err := h.TransactionRepo.CreateWithTx(ctx, tx, betRecord); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return 0, 0, false
	}

	if payout > 0 {
		newBalance, err = h.AccountRepo.AddChipsTx(ctx, tx, userID, payout)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return 0, 0, false
		}
		winRecord := &domain.Transaction{
			UserID:      userID,
			Type:        domain.TxWin,
			Game:        string(gameType),
			Amount:      float64(payout),
			ChipsAmount: payout,
			Description: details,
		}
		if err := h.TransactionRepo.CreateWithTx(ctx, tx, winRecord); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return 0, 0, false
		}
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return 0, 0, false
	}

	outcome := "lose"
	if payout > 0 {
		outcome = "win"
	}
	middleware.GameRounds.WithLabelValues(string(gameType), outcome).Inc()
	return payout, newBalance, true
}

type baccaratRequest struct {
	Bet  int64            `json:"bet" binding:"required,min=1"`
	Side game.BaccaratBet `json:"side" binding:"required"`
}

// Baccarat plays one round against the simplified third-card tableau.
func (h *Handler) Baccarat(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req baccaratRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if !game.ValidBaccaratBet(req.Side) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "side must be player, banker or tie"})
		return
	}
	if !h.validateBet(c, req.Bet) {
		return
	}

	var result *game.BaccaratResult
	payout, newBalance, ok := h.playChipRound(c, domain.GameTypeBaccarat, req.Bet, func() (int64, string) {
		result = game.PlayBaccarat(game.NewShoe())
		return result.Payout(req.Side, req.Bet), "baccarat " + result.Winner
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":     result,
		"side":       req.Side,
		"win_amount": payout,
		"chips":      newBalance,
	})
}

type colorGameRequest struct {
	Bets map[game.Color]int64 `json:"bets" binding:"required"`
}

// ColorGame rolls three color dice against a per-color stake allocation.
func (h *Handler) ColorGame(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req colorGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := game.ValidateColorBets(req.Bets); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stake := game.TotalColorStake(req.Bets)
	if !h.validateBet(c, stake) {
		return
	}

	var result *game.ColorGameResult
	payout, newBalance, ok := h.playChipRound(c, domain.GameTypeColorGame, stake, func() (int64, string) {
		result = game.ResolveColorBets(req.Bets, game.RollColorDice())
		return result.Total, "colorgame roll"
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":     result,
		"stake":      stake,
		"win_amount": payout,
		"chips":      newBalance,
	})
}

type slotsRequest struct {
	Bet int64 `json:"bet" binding:"required,min=1"`
}

// Slots spins three reels.
func (h *Handler) Slots(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req slotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if !h.validateBet(c, req.Bet) {
		return
	}

	var result *game.SlotsResult
	payout, newBalance, ok := h.playChipRound(c, domain.GameTypeSlots, req.Bet, func() (int64, string) {
		result = game.ResolveSlots(game.SpinReels(), req.Bet)
		return result.Payout, "slots spin"
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":     result,
		"win_amount": payout,
		"chips":      newBalance,
	})
}

// GameLimits exposes the configured bet limits.
func (h *Handler) GameLimits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"min_bet": h.Config.MinBet,
		"max_bet": h.Config.MaxBet,
		"colors":  game.Colors,
		"baccarat_payouts": gin.H{
			"player": game.BaccaratPayoutPlayer,
			"banker": game.BaccaratPayoutBanker,
			"tie":    game.BaccaratPayoutTie,
		},
	})
}
