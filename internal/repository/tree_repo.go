package repository

import (
	"context"
	"errors"
	"time"

	"checkels_casino/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrStaleLevel = errors.New("tree level changed concurrently")

// TreeRepository persists the single upgrade record per user.
type TreeRepository struct {
	db *pgxpool.Pool
}

func NewTreeRepository(db *pgxpool.Pool) *TreeRepository {
	return &TreeRepository{db: db}
}

// Get returns the upgrade state, or nil when the user has never touched the
// tree (the record is created lazily on first access).
func (r *TreeRepository) Get(ctx context.Context, userID int64) (*domain.TreeUpgradeState, error) {
	var s domain.TreeUpgradeState
	err := r.db.QueryRow(ctx,
		`SELECT user_id, level, last_claim FROM tree_upgrades WHERE user_id = $1`,
		userID,
	).Scan(&s.UserID, &s.Level, &s.LastClaim)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts a fresh level-1 record. The unique constraint on user_id
// keeps this idempotent under a racing first access.
func (r *TreeRepository) Create(ctx context.Context, userID int64) (*domain.TreeUpgradeState, error) {
	var s domain.TreeUpgradeState
	err := r.db.QueryRow(ctx,
		`INSERT INTO tree_upgrades (user_id, level, last_claim)
		 VALUES ($1, 1, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING user_id, level, last_claim`,
		userID,
	).Scan(&s.UserID, &s.Level, &s.LastClaim)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetOrCreate loads the record, creating it lazily.
func (r *TreeRepository) GetOrCreate(ctx context.Context, userID int64) (*domain.TreeUpgradeState, error) {
	s, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}
	return r.Create(ctx, userID)
}

// SetLastClaimTx stamps the claim time inside an open transaction.
func (r *TreeRepository) SetLastClaimTx(ctx context.Context, tx pgx.Tx, userID int64, at time.Time) error {
	_, err := tx.Exec(ctx,
		`UPDATE tree_upgrades SET last_claim = $1 WHERE user_id = $2`, at, userID)
	return err
}

// IncrementLevelTx raises the level by exactly one inside an open
// transaction. The fromLevel guard rejects a concurrent upgrade that already
// moved the record.
func (r *TreeRepository) IncrementLevelTx(ctx context.Context, tx pgx.Tx, userID int64, fromLevel int) (int, error) {
	var newLevel int
	err := tx.QueryRow(ctx,
		`UPDATE tree_upgrades SET level = level + 1
		 WHERE user_id = $1 AND level = $2
		 RETURNING level`,
		userID, fromLevel,
	).Scan(&newLevel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrStaleLevel
		}
		return 0, err
	}
	return newLevel, nil
}

// Delete removes the record; only used when the account itself goes away.
func (r *TreeRepository) Delete(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tree_upgrades WHERE user_id = $1`, userID)
	return err
}
