package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
	GameRounds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casino_game_rounds_total",
			Help: "Total game rounds settled, by game and outcome",
		},
		[]string{"game", "outcome"},
	)
	TreeClaims = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "casino_tree_claims_total",
			Help: "Total successful tree claims",
		},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(GameRounds)
	prometheus.MustRegister(TreeClaims)
}
