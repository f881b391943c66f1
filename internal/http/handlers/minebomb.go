package handlers

import (
	"net/http"

	"checkels_casino/internal/game"
	"checkels_casino/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type minebombStartRequest struct {
	Bet       int64 `json:"bet" binding:"required,min=1"`
	BombCount int   `json:"bomb_count" binding:"required"`
}

type minebombRevealRequest struct {
	Tile int `json:"tile"`
}

// MinebombStart charges the bet and places the bombs.
func (h *Handler) MinebombStart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req minebombStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if !h.validateBet(c, req.Bet) {
		return
	}

	g, err := h.MinebombService.Start(c.Request.Context(), userID, req.Bet, req.BombCount)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, g.State())
}

// MinebombReveal uncovers one tile.
func (h *Handler) MinebombReveal(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req minebombRevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	g, err := h.MinebombService.Reveal(c.Request.Context(), userID, req.Tile)
	if err != nil {
		serviceError(c, err)
		return
	}

	if !g.IsActive() {
		middleware.GameRounds.WithLabelValues("minebomb", g.Status).Inc()
	}
	c.JSON(http.StatusOK, g.State())
}

// MinebombCashOut settles the round at the current multiplier.
func (h *Handler) MinebombCashOut(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	g, err := h.MinebombService.CashOut(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	middleware.GameRounds.WithLabelValues("minebomb", g.Status).Inc()
	c.JSON(http.StatusOK, g.State())
}

// MinebombState returns the active round, if any.
func (h *Handler) MinebombState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	g := h.MinebombService.Active(userID)
	if g == nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, g.State())
}

// MinebombInfo returns grid size and the multiplier schedule per difficulty.
func (h *Handler) MinebombInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"grid_size":   game.MinebombGridSize,
		"bomb_counts": []int{3, 5, 10},
		"example_multipliers": gin.H{
			"3":  game.MinebombMultiplier(3, 1),
			"5":  game.MinebombMultiplier(5, 1),
			"10": game.MinebombMultiplier(10, 1),
		},
	})
}
