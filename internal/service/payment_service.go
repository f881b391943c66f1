package service

import (
	"context"
	"errors"

	"checkels_casino/internal/domain"
	"checkels_casino/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPaymentNotFound = errors.New("payment request not found")
	ErrPaymentResolved = errors.New("payment request already resolved")
)

// PaymentService files top-up and withdrawal requests and lets admins
// resolve them. Money only moves at approval time, inside one transaction
// with the status change, so a double-approve can never pay twice.
type PaymentService struct {
	db              *pgxpool.Pool
	accountRepo     *repository.AccountRepository
	transactionRepo *repository.TransactionRepository
	paymentRepo     *repository.PaymentRepository
}

func NewPaymentService(db *pgxpool.Pool) *PaymentService {
	return &PaymentService{
		db:              db,
		accountRepo:     repository.NewAccountRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		paymentRepo:     repository.NewPaymentRepository(db),
	}
}

func mapPaymentErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrPaymentNotFound):
		return ErrPaymentNotFound
	case errors.Is(err, repository.ErrPaymentResolved):
		return ErrPaymentResolved
	default:
		return mapRepoErr(err)
	}
}

// RequestTopup files a pending top-up for admin review.
func (s *PaymentService) RequestTopup(ctx context.Context, userID int64, chips int64, note string) (*domain.PaymentRequest, error) {
	if chips <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.paymentRepo.Create(ctx, userID, domain.PaymentKindTopup, chips, note)
}

// RequestWithdrawal files a pending withdrawal. Funds are only checked at
// approval time; the balance may legitimately change while the request waits.
func (s *PaymentService) RequestWithdrawal(ctx context.Context, userID int64, chips int64, note string) (*domain.PaymentRequest, error) {
	if chips <= 0 {
		return nil, ErrInvalidAmount
	}
	account, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if account.Chips < chips {
		return nil, ErrInsufficientFunds
	}
	return s.paymentRepo.Create(ctx, userID, domain.PaymentKindWithdrawal, chips, note)
}

// ListPending returns unresolved requests for the admin console.
func (s *PaymentService) ListPending(ctx context.Context, limit int) ([]*domain.PaymentRequest, error) {
	return s.paymentRepo.ListPending(ctx, limit)
}

// Approve resolves a request and moves the chips: a top-up credits the
// user, a withdrawal debits them (re-validating funds under the row lock).
func (s *PaymentService) Approve(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.paymentRepo.LockPendingTx(ctx, tx, id)
	if err != nil {
		return mapPaymentErr(err)
	}

	delta := p.ChipsAmount
	txType := domain.TxTopup
	if p.Kind == domain.PaymentKindWithdrawal {
		delta = -p.ChipsAmount
		txType = domain.TxWithdrawal
	}

	if _, err = s.accountRepo.LockBalances(ctx, tx, p.UserID); err != nil {
		return mapRepoErr(err)
	}
	if _, err = s.accountRepo.AddChipsTx(ctx, tx, p.UserID, delta); err != nil {
		return mapRepoErr(err)
	}

	record := &domain.Transaction{
		UserID:      p.UserID,
		Type:        txType,
		Amount:      float64(delta),
		ChipsAmount: delta,
		Description: string(p.Kind) + " approved",
	}
	if err = s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
		return err
	}
	if err = s.paymentRepo.ResolveTx(ctx, tx, id, domain.PaymentStatusApproved); err != nil {
		return mapPaymentErr(err)
	}
	return tx.Commit(ctx)
}

// Reject resolves a request without moving money.
func (s *PaymentService) Reject(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = s.paymentRepo.LockPendingTx(ctx, tx, id); err != nil {
		return mapPaymentErr(err)
	}
	if err = s.paymentRepo.ResolveTx(ctx, tx, id, domain.PaymentStatusRejected); err != nil {
		return mapPaymentErr(err)
	}
	return tx.Commit(ctx)
}
