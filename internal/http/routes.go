package http

import (
	"time"

	"checkels_casino/internal/config"
	"checkels_casino/internal/http/handlers"
	"checkels_casino/internal/http/middleware"
	"checkels_casino/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"
)

// RegisterRoutes wires the full API surface and returns the handler set so
// main can hook graceful shutdown into the tree service.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, redisClient *redis.Client, snapshots repository.SnapshotStore, version string, cfg *config.Config) *handlers.Handler {
	h := handlers.NewHandler(db, snapshots, handlers.HandlerConfig{
		MinBet:          cfg.MinBet,
		MaxBet:          cfg.MaxBet,
		CheckelsPerChip: cfg.CheckelsPerChip,
	})
	healthHandler := handlers.NewHealthHandler(db, redisClient, version)

	// Health checks, no rate limiting
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	apiRL := middleware.RateLimit(cfg.APIRateLimit, time.Duration(cfg.APIRateWindow)*time.Second)
	authRL := middleware.RateLimit(cfg.AuthRateLimit, time.Duration(cfg.AuthRateWindow)*time.Second)
	gameRL := middleware.GameRateLimit(cfg.GameRateLimit, time.Duration(cfg.GameRateWindow)*time.Second)

	v1 := r.Group("/api/v1")
	v1.Use(apiRL)

	// Auth
	v1.POST("/auth/register", authRL, h.Register)
	v1.POST("/auth/login", authRL, h.Login)

	// Profile and wallet
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.GET("/me/balances", middleware.JWT(), h.Balances)
	v1.GET("/me/transactions", middleware.JWT(), h.Transactions)
	v1.POST("/me/convert", middleware.JWT(), h.Convert)

	// Money tree
	tree := v1.Group("/tree")
	tree.Use(middleware.JWT())
	{
		tree.POST("/enter", h.TreeEnter)
		tree.POST("/leave", h.TreeLeave)
		tree.GET("/state", h.TreeState)
		tree.POST("/claim", h.TreeClaim)
		tree.POST("/upgrade", h.TreeUpgrade)
		tree.POST("/booster", h.TreeBooster)
	}
	v1.GET("/tree/info", h.TreeInfo)

	// Single-shot chip games
	v1.POST("/game/baccarat", middleware.JWT(), gameRL, h.Baccarat)
	v1.POST("/game/colorgame", middleware.JWT(), gameRL, h.ColorGame)
	v1.POST("/game/slots", middleware.JWT(), gameRL, h.Slots)
	v1.GET("/game/limits", h.GameLimits)

	// Blackjack (stateful round)
	v1.POST("/game/blackjack/start", middleware.JWT(), gameRL, h.BlackjackStart)
	v1.POST("/game/blackjack/hit", middleware.JWT(), gameRL, h.BlackjackHit)
	v1.POST("/game/blackjack/stand", middleware.JWT(), h.BlackjackStand)
	v1.GET("/game/blackjack/state", middleware.JWT(), h.BlackjackState)

	// Minebomb (stateful round)
	v1.POST("/game/minebomb/start", middleware.JWT(), gameRL, h.MinebombStart)
	v1.POST("/game/minebomb/reveal", middleware.JWT(), gameRL, h.MinebombReveal)
	v1.POST("/game/minebomb/cashout", middleware.JWT(), h.MinebombCashOut)
	v1.GET("/game/minebomb/state", middleware.JWT(), h.MinebombState)
	v1.GET("/game/minebomb/info", h.MinebombInfo)

	// Payments
	v1.POST("/payments/topup", middleware.JWT(), h.RequestTopup)
	v1.POST("/payments/withdraw", middleware.JWT(), h.RequestWithdrawal)

	// Admin console
	admin := v1.Group("/admin")
	admin.Use(middleware.JWT(), middleware.Admin(db))
	{
		admin.GET("/users", h.AdminListUsers)
		admin.POST("/users/:id/ban", h.AdminBanUser)
		admin.POST("/users/:id/unban", h.AdminUnbanUser)
		admin.PUT("/users/:id/balances", h.AdminSetBalances)
		admin.GET("/payments", h.AdminListPayments)
		admin.POST("/payments/:id/approve", h.AdminApprovePayment)
		admin.POST("/payments/:id/reject", h.AdminRejectPayment)
	}

	return h
}
