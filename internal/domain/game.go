package domain

import "time"

type GameType string

const (
	GameTypeSlots     GameType = "slots"
	GameTypeColorGame GameType = "colorgame"
	GameTypeBaccarat  GameType = "baccarat"
	GameTypeBlackjack GameType = "blackjack"
	GameTypeMinebomb  GameType = "minebomb"
	GameTypeTree      GameType = "tree"
)

type PaymentKind string

const (
	PaymentKindTopup      PaymentKind = "topup"
	PaymentKindWithdrawal PaymentKind = "withdrawal"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// PaymentRequest is a user-filed top-up or withdrawal waiting for an admin
// decision. Balance only moves when the request is approved.
type PaymentRequest struct {
	ID          int64         `db:"id" json:"id"`
	UserID      int64         `db:"user_id" json:"user_id"`
	Kind        PaymentKind   `db:"kind" json:"kind"`
	ChipsAmount int64         `db:"chips_amount" json:"chips_amount"`
	Status      PaymentStatus `db:"status" json:"status"`
	Note        string        `db:"note" json:"note,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	ResolvedAt  *time.Time    `db:"resolved_at" json:"resolved_at,omitempty"`
}
