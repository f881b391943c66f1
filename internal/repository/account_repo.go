package repository

import (
	"context"
	"errors"

	"checkels_casino/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, username, password_hash, checkels, chips, is_admin, is_banned, created_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Checkels, &a.Chips, &a.IsAdmin, &a.IsBanned, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts a new account with the starting balances.
func (r *AccountRepository) Create(ctx context.Context, username, passwordHash string) (*domain.Account, error) {
	const initialCheckels = 50
	const initialChips = 500

	return scanAccount(r.db.QueryRow(ctx,
		`INSERT INTO accounts (username, password_hash, checkels, chips)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+accountColumns,
		username, passwordHash, initialCheckels, initialChips,
	))
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username))
}

// LockBalances reads both balances under a row lock inside an open
// transaction. Every balance mutation goes through this so concurrent
// writers (another device, an admin grant) serialize on the row.
func (r *AccountRepository) LockBalances(ctx context.Context, tx pgx.Tx, userID int64) (*domain.Balances, error) {
	var b domain.Balances
	err := tx.QueryRow(ctx,
		`SELECT checkels, chips FROM accounts WHERE id = $1 FOR UPDATE`, userID,
	).Scan(&b.Checkels, &b.Chips)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &b, nil
}

// AddChipsTx applies a signed chips delta inside an open transaction. The
// conditional update re-validates funds at execution time; a delta that
// would go negative reports ErrInsufficientFunds.
func (r *AccountRepository) AddChipsTx(ctx context.Context, tx pgx.Tx, userID int64, delta int64) (int64, error) {
	var newBalance int64
	err := tx.QueryRow(ctx,
		`UPDATE accounts SET chips = chips + $1 WHERE id = $2 AND chips + $1 >= 0 RETURNING chips`,
		delta, userID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			_ = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`, userID).Scan(&exists)
			if !exists {
				return 0, ErrAccountNotFound
			}
			return 0, ErrInsufficientFunds
		}
		return 0, err
	}
	return newBalance, nil
}

// AddCheckelsTx applies a signed checkels delta inside an open transaction,
// with the same never-negative guard as AddChipsTx.
func (r *AccountRepository) AddCheckelsTx(ctx context.Context, tx pgx.Tx, userID int64, delta float64) (float64, error) {
	var newBalance float64
	err := tx.QueryRow(ctx,
		`UPDATE accounts SET checkels = checkels + $1 WHERE id = $2 AND checkels + $1 >= 0 RETURNING checkels`,
		delta, userID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			_ = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`, userID).Scan(&exists)
			if !exists {
				return 0, ErrAccountNotFound
			}
			return 0, ErrInsufficientFunds
		}
		return 0, err
	}
	return newBalance, nil
}

// List returns accounts ordered by id, for the admin console.
func (r *AccountRepository) List(ctx context.Context, limit int) ([]*domain.Account, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY id LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// SetBanned flips the ban flag.
func (r *AccountRepository) SetBanned(ctx context.Context, userID int64, banned bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET is_banned = $1 WHERE id = $2`, banned, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// SetBalances overwrites both balances (admin adjustment).
func (r *AccountRepository) SetBalances(ctx context.Context, userID int64, checkels float64, chips int64) (*domain.Balances, error) {
	var b domain.Balances
	err := r.db.QueryRow(ctx,
		`UPDATE accounts SET checkels = $1, chips = $2 WHERE id = $3 RETURNING checkels, chips`,
		checkels, chips, userID,
	).Scan(&b.Checkels, &b.Chips)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &b, nil
}
