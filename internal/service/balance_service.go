package service

import (
	"context"
	"errors"
	"math"

	"checkels_casino/internal/domain"
	"checkels_casino/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// BalanceService owns every balance mutation. Each operation is a database
// transaction that re-reads the persisted balance under a row lock before
// writing, so a stale client-side value can never produce a lost update or a
// negative balance.
type BalanceService struct {
	db              *pgxpool.Pool
	accountRepo     *repository.AccountRepository
	transactionRepo *repository.TransactionRepository

	// CheckelsPerChip is the conversion rate: checkels spent per chip gained.
	CheckelsPerChip float64
}

func NewBalanceService(db *pgxpool.Pool, checkelsPerChip float64) *BalanceService {
	if checkelsPerChip <= 0 {
		checkelsPerChip = 10
	}
	return &BalanceService{
		db:              db,
		accountRepo:     repository.NewAccountRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		CheckelsPerChip: checkelsPerChip,
	}
}

func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		return ErrAccountNotFound
	case errors.Is(err, repository.ErrInsufficientFunds):
		return ErrInsufficientFunds
	default:
		return err
	}
}

// GetBalances returns both balances.
func (s *BalanceService) GetBalances(ctx context.Context, userID int64) (*domain.Balances, error) {
	account, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return &domain.Balances{Checkels: account.Checkels, Chips: account.Chips}, nil
}

// DebitChips deducts chips and records the ledger entry atomically.
func (s *BalanceService) DebitChips(ctx context.Context, userID int64, amount int64, record *domain.Transaction) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return s.applyChips(ctx, userID, -amount, record)
}

// CreditChips adds chips and records the ledger entry atomically.
func (s *BalanceService) CreditChips(ctx context.Context, userID int64, amount int64, record *domain.Transaction) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return s.applyChips(ctx, userID, amount, record)
}

func (s *BalanceService) applyChips(ctx context.Context, userID int64, delta int64, record *domain.Transaction) (newBalance int64, err error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = s.accountRepo.LockBalances(ctx, tx, userID); err != nil {
		return 0, mapRepoErr(err)
	}
	newBalance, err = s.accountRepo.AddChipsTx(ctx, tx, userID, delta)
	if err != nil {
		return 0, mapRepoErr(err)
	}

	if record != nil {
		record.UserID = userID
		record.ChipsAmount = delta
		if err = s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
			return 0, err
		}
	}
	return newBalance, tx.Commit(ctx)
}

// CreditCheckels adds checkels and records the ledger entry atomically.
func (s *BalanceService) CreditCheckels(ctx context.Context, userID int64, amount float64, record *domain.Transaction) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return s.applyCheckels(ctx, userID, amount, record)
}

// DebitCheckels deducts checkels and records the ledger entry atomically.
func (s *BalanceService) DebitCheckels(ctx context.Context, userID int64, amount float64, record *domain.Transaction) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return s.applyCheckels(ctx, userID, -amount, record)
}

func (s *BalanceService) applyCheckels(ctx context.Context, userID int64, delta float64, record *domain.Transaction) (newBalance float64, err error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = s.accountRepo.LockBalances(ctx, tx, userID); err != nil {
		return 0, mapRepoErr(err)
	}
	newBalance, err = s.accountRepo.AddCheckelsTx(ctx, tx, userID, delta)
	if err != nil {
		return 0, mapRepoErr(err)
	}

	if record != nil {
		record.UserID = userID
		record.CoinsAmount = delta
		if err = s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
			return 0, err
		}
	}
	return newBalance, tx.Commit(ctx)
}

// Convert exchanges checkels for chips at the configured rate, emitting a
// single conversion ledger entry carrying both sides.
func (s *BalanceService) Convert(ctx context.Context, userID int64, checkelsAmount float64) (*domain.Balances, int64, error) {
	if checkelsAmount <= 0 {
		return nil, 0, ErrInvalidAmount
	}
	chipsGained := int64(math.Floor(checkelsAmount / s.CheckelsPerChip))
	if chipsGained <= 0 {
		return nil, 0, ErrInvalidAmount
	}
	checkelsSpent := float64(chipsGained) * s.CheckelsPerChip

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	balances, err := s.accountRepo.LockBalances(ctx, tx, userID)
	if err != nil {
		return nil, 0, mapRepoErr(err)
	}
	if balances.Checkels < checkelsSpent {
		return nil, 0, ErrInsufficientFunds
	}

	newCheckels, err := s.accountRepo.AddCheckelsTx(ctx, tx, userID, -checkelsSpent)
	if err != nil {
		return nil, 0, mapRepoErr(err)
	}
	newChips, err := s.accountRepo.AddChipsTx(ctx, tx, userID, chipsGained)
	if err != nil {
		return nil, 0, mapRepoErr(err)
	}

	record := &domain.Transaction{
		UserID:      userID,
		Type:        domain.TxConversion,
		Amount:      -checkelsSpent,
		CoinsAmount: -checkelsSpent,
		ChipsAmount: chipsGained,
		Description: "checkels to chips conversion",
	}
	if err = s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
		return nil, 0, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, 0, err
	}

	return &domain.Balances{Checkels: newCheckels, Chips: newChips}, chipsGained, nil
}

// TransactionHistory returns the user's recent ledger entries.
func (s *BalanceService) TransactionHistory(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetByUserID(ctx, userID, limit)
}
