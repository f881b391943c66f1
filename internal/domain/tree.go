package domain

import "time"

// TreeUpgradeState is the single persisted record per user driving the idle
// engine. Level only ever goes up; LastClaim anchors reconciliation when no
// session snapshot survives.
type TreeUpgradeState struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	Level     int       `db:"level" json:"level"`
	LastClaim time.Time `db:"last_claim" json:"last_claim"`
}

// TreeSessionSnapshot is the best-effort cache written when a session leaves
// the foreground. It is never authoritative: a missing or unreadable snapshot
// falls back to LastClaim.
type TreeSessionSnapshot struct {
	Accrued      float64   `json:"accrued"`
	SessionStart time.Time `json:"session_start"`
	LastLeave    time.Time `json:"last_leave"`
}

// Booster is a temporary multiplicative accrual modifier. Active boosters
// stack by multiplying their multipliers together.
type Booster struct {
	Name       string    `json:"name"`
	Multiplier float64   `json:"multiplier"`
	EndTime    time.Time `json:"end_time"`
}

// Expired reports whether the booster is past its end time.
func (b Booster) Expired(now time.Time) bool {
	return !now.Before(b.EndTime)
}
