package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type paymentRequestBody struct {
	Chips int64  `json:"chips" binding:"required,min=1"`
	Note  string `json:"note"`
}

// RequestTopup files a top-up request for admin review.
func (h *Handler) RequestTopup(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req paymentRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	p, err := h.PaymentService.RequestTopup(c.Request.Context(), userID, req.Chips, req.Note)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"request": p})
}

// RequestWithdrawal files a withdrawal request for admin review.
func (h *Handler) RequestWithdrawal(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req paymentRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	p, err := h.PaymentService.RequestWithdrawal(c.Request.Context(), userID, req.Chips, req.Note)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"request": p})
}
