package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// AdminListUsers returns accounts for the console.
func (h *Handler) AdminListUsers(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	users, err := h.AdminService.ListUsers(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// AdminBanUser bans a non-admin account.
func (h *Handler) AdminBanUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.AdminService.SetBanned(c.Request.Context(), id, true); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// AdminUnbanUser lifts a ban.
func (h *Handler) AdminUnbanUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.AdminService.SetBanned(c.Request.Context(), id, false); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type setBalancesRequest struct {
	Checkels float64 `json:"checkels"`
	Chips    int64   `json:"chips"`
}

// AdminSetBalances overwrites a non-admin account's balances.
func (h *Handler) AdminSetBalances(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req setBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	balances, err := h.AdminService.SetBalances(c.Request.Context(), id, req.Checkels, req.Chips)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, balances)
}

// AdminListPayments returns pending top-up and withdrawal requests.
func (h *Handler) AdminListPayments(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	pending, err := h.PaymentService.ListPending(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": pending})
}

// AdminApprovePayment approves a pending request and moves the chips.
func (h *Handler) AdminApprovePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.PaymentService.Approve(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// AdminRejectPayment rejects a pending request without moving money.
func (h *Handler) AdminRejectPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.PaymentService.Reject(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
