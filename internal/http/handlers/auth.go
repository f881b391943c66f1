package handlers

import (
	"errors"
	"net/http"

	"checkels_casino/internal/domain"
	"checkels_casino/internal/service"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *accountView `json:"user"`
}

type accountView struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Checkels float64 `json:"checkels"`
	Chips    int64   `json:"chips"`
	IsAdmin  bool    `json:"is_admin"`
}

func toAccountView(a *domain.Account) *accountView {
	return &accountView{
		ID:       a.ID,
		Username: a.Username,
		Checkels: a.Checkels,
		Chips:    a.Chips,
		IsAdmin:  a.IsAdmin,
	}
}

// Register creates an account with the starting balances and returns a token.
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	account, token, err := h.AuthService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			serviceError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: token, User: toAccountView(account)})
}

// Login verifies credentials and returns a token.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	account, token, err := h.AuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token, User: toAccountView(account)})
}
