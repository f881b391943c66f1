package handlers

import (
	"net/http"

	"checkels_casino/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type blackjackStartRequest struct {
	Bet int64 `json:"bet" binding:"required,min=1"`
}

// BlackjackStart charges the bet and deals the opening hands.
func (h *Handler) BlackjackStart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req blackjackStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if !h.validateBet(c, req.Bet) {
		return
	}

	g, err := h.BlackjackService.Start(c.Request.Context(), userID, req.Bet)
	if err != nil {
		serviceError(c, err)
		return
	}

	if !g.IsActive() {
		middleware.GameRounds.WithLabelValues("blackjack", g.Outcome).Inc()
	}
	c.JSON(http.StatusOK, g.State())
}

// BlackjackHit draws a card for the player.
func (h *Handler) BlackjackHit(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	g, err := h.BlackjackService.Hit(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	if !g.IsActive() {
		middleware.GameRounds.WithLabelValues("blackjack", g.Outcome).Inc()
	}
	c.JSON(http.StatusOK, g.State())
}

// BlackjackStand plays out the dealer and settles the round.
func (h *Handler) BlackjackStand(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	g, err := h.BlackjackService.Stand(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	middleware.GameRounds.WithLabelValues("blackjack", g.Outcome).Inc()
	c.JSON(http.StatusOK, g.State())
}

// BlackjackState returns the active round, if any.
func (h *Handler) BlackjackState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	g := h.BlackjackService.Active(userID)
	if g == nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, g.State())
}
