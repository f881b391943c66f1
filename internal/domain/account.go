package domain

import "time"

// Account holds both wallet balances. Checkels are fractional (the idle
// engine accrues sub-unit amounts every second), chips are integral.
type Account struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Checkels     float64   `db:"checkels" json:"checkels"`
	Chips        int64     `db:"chips" json:"chips"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	IsBanned     bool      `db:"is_banned" json:"is_banned"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Balances is the pair returned by balance reads and updates.
type Balances struct {
	Checkels float64 `json:"checkels"`
	Chips    int64   `json:"chips"`
}
