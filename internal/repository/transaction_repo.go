package repository

import (
	"context"

	"checkels_casino/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const txColumns = `id, user_id, type, game, amount, coins_amount, chips_amount, description, created_at`

// Create appends a ledger entry outside any open transaction.
func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, game, amount, coins_amount, chips_amount, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		t.UserID, t.Type, t.Game, t.Amount, t.CoinsAmount, t.ChipsAmount, t.Description,
	).Scan(&t.ID, &t.CreatedAt)
}

// CreateWithTx appends a ledger entry inside an open database transaction,
// so the entry commits atomically with the balance change it describes.
func (r *TransactionRepository) CreateWithTx(ctx context.Context, dbTx pgx.Tx, t *domain.Transaction) error {
	return dbTx.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, game, amount, coins_amount, chips_amount, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		t.UserID, t.Type, t.Game, t.Amount, t.CoinsAmount, t.ChipsAmount, t.Description,
	).Scan(&t.ID, &t.CreatedAt)
}

// GetByUserID returns the most recent ledger entries for a user.
func (r *TransactionRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+txColumns+`
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetByUserIDAndType filters the ledger by entry type.
func (r *TransactionRepository) GetByUserIDAndType(ctx context.Context, userID int64, txType domain.TransactionType, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+txColumns+`
		 FROM transactions
		 WHERE user_id = $1 AND type = $2
		 ORDER BY created_at DESC
		 LIMIT $3`,
		userID, txType, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Game, &t.Amount, &t.CoinsAmount, &t.ChipsAmount, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}
