package repository

import (
	"context"
	"errors"

	"checkels_casino/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPaymentNotFound = errors.New("payment request not found")
	ErrPaymentResolved = errors.New("payment request already resolved")
)

// PaymentRepository stores top-up and withdrawal requests awaiting admin
// review.
type PaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, user_id, kind, chips_amount, status, note, created_at, resolved_at`

func scanPayment(row pgx.Row) (*domain.PaymentRequest, error) {
	var p domain.PaymentRequest
	err := row.Scan(&p.ID, &p.UserID, &p.Kind, &p.ChipsAmount, &p.Status, &p.Note, &p.CreatedAt, &p.ResolvedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create files a new pending request.
func (r *PaymentRepository) Create(ctx context.Context, userID int64, kind domain.PaymentKind, chips int64, note string) (*domain.PaymentRequest, error) {
	return scanPayment(r.db.QueryRow(ctx,
		`INSERT INTO payment_requests (user_id, kind, chips_amount, status, note)
		 VALUES ($1, $2, $3, 'pending', $4)
		 RETURNING `+paymentColumns,
		userID, kind, chips, note,
	))
}

// ListPending returns unresolved requests oldest first.
func (r *PaymentRepository) ListPending(ctx context.Context, limit int) ([]*domain.PaymentRequest, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+paymentColumns+`
		 FROM payment_requests
		 WHERE status = 'pending'
		 ORDER BY created_at
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.PaymentRequest
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// LockPendingTx loads a request under a row lock, failing if it was already
// resolved by another admin.
func (r *PaymentRepository) LockPendingTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.PaymentRequest, error) {
	p, err := scanPayment(tx.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payment_requests WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}
	if p.Status != domain.PaymentStatusPending {
		return nil, ErrPaymentResolved
	}
	return p, nil
}

// ResolveTx stamps the decision inside an open transaction.
func (r *PaymentRepository) ResolveTx(ctx context.Context, tx pgx.Tx, id int64, status domain.PaymentStatus) error {
	tag, err := tx.Exec(ctx,
		`UPDATE payment_requests SET status = $1, resolved_at = NOW() WHERE id = $2 AND status = 'pending'`,
		status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPaymentResolved
	}
	return nil
}
