package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"checkels_casino/internal/domain"
	"checkels_casino/internal/game"
	"checkels_casino/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrRoundInProgress = errors.New("you already have an active round")
	ErrNoActiveRound   = errors.New("no active round")
)

// staleRoundAge is how long an untouched round may sit before the reaper
// settles it as abandoned.
const staleRoundAge = 30 * time.Minute

// BlackjackService manages active blackjack rounds, one per user. The stake
// is charged pessimistically at start; payout is credited at settlement.
type BlackjackService struct {
	db              *pgxpool.Pool
	accountRepo     *repository.AccountRepository
	transactionRepo *repository.TransactionRepository
	activeRounds    map[int64]*game.BlackjackGame
	mu              sync.RWMutex
	settleFn        func(ctx context.Context, g *game.BlackjackGame) error
}

func NewBlackjackService(db *pgxpool.Pool) *BlackjackService {
	s := &BlackjackService{
		db:              db,
		accountRepo:     repository.NewAccountRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		activeRounds:    make(map[int64]*game.BlackjackGame),
	}
	s.settleFn = s.settle
	go s.reapStaleRounds()
	return s
}

// Start charges the bet and deals the opening hands. A natural settles the
// round immediately.
func (s *BlackjackService) Start(ctx context.Context, userID int64, bet int64) (*game.BlackjackGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.activeRounds[userID]; ok {
		if existing.IsActive() {
			return nil, ErrRoundInProgress
		}
		// A prior round's payout is still unpersisted; it must land
		// before a new stake is taken.
		if err := s.settleAndClear(ctx, userID, existing); err != nil {
			return nil, err
		}
	}

	if err := s.chargeBet(ctx, userID, bet, "blackjack bet"); err != nil {
		return nil, err
	}

	g, err := game.NewBlackjackGame(uuid.New().String()[:8], userID, bet)
	if err != nil {
		return nil, err
	}

	if !g.IsActive() {
		if err := s.settleAndClear(ctx, userID, g); err != nil {
			return nil, err
		}
		return g, nil
	}

	s.activeRounds[userID] = g
	return g, nil
}

// Hit draws a card; a bust settles the round.
func (s *BlackjackService) Hit(ctx context.Context, userID int64) (*game.BlackjackGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.activeRounds[userID]
	if !ok || !g.IsActive() {
		return nil, ErrNoActiveRound
	}
	if err := g.Hit(); err != nil {
		return nil, err
	}
	if !g.IsActive() {
		if err := s.settleAndClear(ctx, userID, g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Stand plays out the dealer and settles.
func (s *BlackjackService) Stand(ctx context.Context, userID int64) (*game.BlackjackGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.activeRounds[userID]
	if !ok || !g.IsActive() {
		return nil, ErrNoActiveRound
	}
	if err := g.Stand(); err != nil {
		return nil, err
	}
	if err := s.settleAndClear(ctx, userID, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Active returns the user's running round, if any.
func (s *BlackjackService) Active(userID int64) *game.BlackjackGame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.activeRounds[userID]
	if !ok || !g.IsActive() {
		return nil
	}
	return g
}

// settleAndClear credits a finished round and only then drops it from the
// active set. On a failed write the round stays mapped so the reaper, or the
// user's next request, retries the credit. Caller holds s.mu.
func (s *BlackjackService) settleAndClear(ctx context.Context, userID int64, g *game.BlackjackGame) error {
	s.activeRounds[userID] = g
	if err := s.settleFn(ctx, g); err != nil {
		return err
	}
	delete(s.activeRounds, userID)
	return nil
}

func (s *BlackjackService) chargeBet(ctx context.Context, userID int64, bet int64, desc string) error {
	if bet <= 0 {
		return ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	balances, err := s.accountRepo.LockBalances(ctx, tx, userID)
	if err != nil {
		return mapRepoErr(err)
	}
	if balances.Chips < bet {
		return ErrInsufficientFunds
	}
	if _, err = s.accountRepo.AddChipsTx(ctx, tx, userID, -bet); err != nil {
		return mapRepoErr(err)
	}

	record := &domain.Transaction{
		UserID:      userID,
		Type:        domain.TxBet,
		Game:        string(domain.GameTypeBlackjack),
		Amount:      float64(-bet),
		ChipsAmount: -bet,
		Description: desc,
	}
	if err = s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// settle credits the payout for a finished round. A clean loss writes no
// ledger entry; a push refunds the stake; wins pay the full return.
func (s *BlackjackService) settle(ctx context.Context, g *game.BlackjackGame) error {
	if g.WinAmount <= 0 {
		return nil
	}

	txType := domain.TxWin
	if g.Outcome == game.BlackjackOutcomePush {
		txType = domain.TxRefund
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = s.accountRepo.AddChipsTx(ctx, tx, g.UserID, g.WinAmount); err != nil {
		return mapRepoErr(err)
	}
	record := &domain.Transaction{
		UserID:      g.UserID,
		Type:        txType,
		Game:        string(domain.GameTypeBlackjack),
		Amount:      float64(g.WinAmount),
		ChipsAmount: g.WinAmount,
		Description: g.ToDetails(),
	}
	if err = s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// reapStaleRounds auto-stands rounds abandoned mid-play so the charged
// stake settles instead of leaking.
func (s *BlackjackService) reapStaleRounds() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.sweepRounds()
	}
}

// sweepRounds stands stale rounds and retries any settlement that failed to
// persist. A round is removed only once its credit is committed.
func (s *BlackjackService) sweepRounds() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, g := range s.activeRounds {
		if g.IsActive() {
			if time.Since(g.CreatedAt) < staleRoundAge {
				continue
			}
			_ = g.Stand()
		}
		if err := s.settleFn(context.Background(), g); err != nil {
			continue
		}
		delete(s.activeRounds, userID)
	}
}
