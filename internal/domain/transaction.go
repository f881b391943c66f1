package domain

import "time"

type TransactionType string

const (
	TxBet        TransactionType = "bet"
	TxWin        TransactionType = "win"
	TxRefund     TransactionType = "refund"
	TxConversion TransactionType = "conversion"
	TxTopup      TransactionType = "topup"
	TxWithdrawal TransactionType = "withdrawal"
)

// Transaction is an append-only ledger entry. Amount is the signed delta in
// the currency the operation settled in; conversion entries additionally
// carry both sides of the exchange in CoinsAmount/ChipsAmount.
type Transaction struct {
	ID          int64           `db:"id" json:"id"`
	UserID      int64           `db:"user_id" json:"user_id"`
	Type        TransactionType `db:"type" json:"type"`
	Game        string          `db:"game" json:"game,omitempty"`
	Amount      float64         `db:"amount" json:"amount"`
	CoinsAmount float64         `db:"coins_amount" json:"coins_amount,omitempty"`
	ChipsAmount int64           `db:"chips_amount" json:"chips_amount,omitempty"`
	Description string          `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
