package handlers

import (
	"errors"
	"net/http"

	"checkels_casino/internal/repository"
	"checkels_casino/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerConfig holds per-deployment knobs for the handlers.
type HandlerConfig struct {
	MinBet          int64
	MaxBet          int64
	CheckelsPerChip float64
}

type Handler struct {
	DB               *pgxpool.Pool
	Config           HandlerConfig
	AccountRepo      *repository.AccountRepository
	TransactionRepo  *repository.TransactionRepository
	AuthService      *service.AuthService
	BalanceService   *service.BalanceService
	TreeService      *service.TreeService
	BlackjackService *service.BlackjackService
	MinebombService  *service.MinebombService
	PaymentService   *service.PaymentService
	AdminService     *service.AdminService
}

func NewHandler(db *pgxpool.Pool, snapshots repository.SnapshotStore, cfg HandlerConfig) *Handler {
	return &Handler{
		DB:               db,
		Config:           cfg,
		AccountRepo:      repository.NewAccountRepository(db),
		TransactionRepo:  repository.NewTransactionRepository(db),
		AuthService:      service.NewAuthService(db),
		BalanceService:   service.NewBalanceService(db, cfg.CheckelsPerChip),
		TreeService:      service.NewTreeService(db, snapshots),
		BlackjackService: service.NewBlackjackService(db),
		MinebombService:  service.NewMinebombService(db),
		PaymentService:   service.NewPaymentService(db),
		AdminService:     service.NewAdminService(db),
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// serviceError maps service-level errors to HTTP responses.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrNothingToClaim),
		errors.Is(err, service.ErrUnknownBooster),
		errors.Is(err, service.ErrBoosterActive):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRoundInProgress),
		errors.Is(err, service.ErrNoActiveRound),
		errors.Is(err, service.ErrUpgradeConflict),
		errors.Is(err, service.ErrPaymentResolved),
		errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountBanned):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAdminProtected):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// validateBet enforces the configured chip bet limits.
func (h *Handler) validateBet(c *gin.Context, bet int64) bool {
	if bet < h.Config.MinBet || bet > h.Config.MaxBet {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bet out of range",
			"min_bet": h.Config.MinBet,
			"max_bet": h.Config.MaxBet,
		})
		return false
	}
	return true
}
