package handlers

import (
	"net/http"

	"checkels_casino/internal/http/middleware"
	"checkels_casino/internal/tree"

	"github.com/gin-gonic/gin"
)

// TreeEnter starts (or resumes) the user's generation session and returns
// the reconciled state.
func (h *Handler) TreeEnter(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	state, err := h.TreeService.Enter(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// TreeLeave snapshots the session and stops ticking.
func (h *Handler) TreeLeave(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	h.TreeService.Leave(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// TreeState returns the live session view.
func (h *Handler) TreeState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	state, err := h.TreeService.State(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// TreeClaim credits the accrued checkels plus bonus yield.
func (h *Handler) TreeClaim(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	payout, newBalance, err := h.TreeService.Claim(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	middleware.TreeClaims.Inc()
	c.JSON(http.StatusOK, gin.H{
		"claimed":  payout,
		"checkels": newBalance,
	})
}

// TreeUpgrade buys the next tree level.
func (h *Handler) TreeUpgrade(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	newLevel, err := h.TreeService.LevelUp(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"level":          newLevel,
		"next_cost":      tree.LevelUpCost(newLevel),
		"base_cps":       tree.BaseCPS(newLevel),
		"bonus_yield":    tree.BonusYieldPercent(newLevel),
		"max_gen_time_s": tree.MaxGenerationTime(newLevel),
	})
}

type boosterRequest struct {
	Name string `json:"name" binding:"required"`
}

// TreeBooster purchases a booster from the catalog.
func (h *Handler) TreeBooster(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req boosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	booster, err := h.TreeService.BuyBooster(c.Request.Context(), userID, req.Name)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booster": booster})
}

// TreeInfo returns the booster catalog and level formulas' public constants.
func (h *Handler) TreeInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"boosters": tree.BoosterCatalog,
	})
}
