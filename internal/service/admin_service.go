package service

import (
	"context"
	"errors"

	"checkels_casino/internal/domain"
	"checkels_casino/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrAdminProtected guards admin accounts from being banned or zeroed out by
// another admin through the console.
var ErrAdminProtected = errors.New("cannot modify an admin account")

// AdminService backs the admin console: user listing, bans and manual
// balance adjustments.
type AdminService struct {
	accountRepo *repository.AccountRepository
}

func NewAdminService(db *pgxpool.Pool) *AdminService {
	return &AdminService{accountRepo: repository.NewAccountRepository(db)}
}

// ListUsers returns accounts for the console.
func (s *AdminService) ListUsers(ctx context.Context, limit int) ([]*domain.Account, error) {
	return s.accountRepo.List(ctx, limit)
}

// SetBanned flips the ban flag on a non-admin account.
func (s *AdminService) SetBanned(ctx context.Context, userID int64, banned bool) error {
	target, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return mapRepoErr(err)
	}
	if target.IsAdmin {
		return ErrAdminProtected
	}
	return s.accountRepo.SetBanned(ctx, userID, banned)
}

// SetBalances overwrites both balances on a non-admin account.
func (s *AdminService) SetBalances(ctx context.Context, userID int64, checkels float64, chips int64) (*domain.Balances, error) {
	if checkels < 0 || chips < 0 {
		return nil, ErrInvalidAmount
	}
	target, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if target.IsAdmin {
		return nil, ErrAdminProtected
	}
	b, err := s.accountRepo.SetBalances(ctx, userID, checkels, chips)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return b, nil
}
