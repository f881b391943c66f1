package service

import (
	"context"
	"sync"
	"time"

	"checkels_casino/internal/domain"
	"checkels_casino/internal/game"
	"checkels_casino/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MinebombService manages active minebomb rounds, one per user.
type MinebombService struct {
	db              *pgxpool.Pool
	accountRepo     *repository.AccountRepository
	transactionRepo *repository.TransactionRepository
	activeRounds    map[int64]*game.MinebombGame
	mu              sync.RWMutex
	creditFn        func(ctx context.Context, g *game.MinebombGame) error
}

func NewMinebombService(db *pgxpool.Pool) *MinebombService {
	s := &MinebombService{
		db:              db,
		accountRepo:     repository.NewAccountRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		activeRounds:    make(map[int64]*game.MinebombGame),
	}
	s.creditFn = s.creditWin
	go s.reapStaleRounds()
	return s
}

// Start charges the bet and places the bombs.
func (s *MinebombService) Start(ctx context.Context, userID int64, bet int64, bombCount int) (*game.MinebombGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.activeRounds[userID]; ok {
		if existing.IsActive() {
			return nil, ErrRoundInProgress
		}
		// A prior round's payout is still unpersisted; it must land
		// before a new stake is taken.
		if err := s.creditAndClear(ctx, userID, existing); err != nil {
			return nil, err
		}
	}

	g, err := game.NewMinebombGame(uuid.New().String()[:8], userID, bet, bombCount)
	if err != nil {
		return nil, err
	}

	if err := s.chargeBet(ctx, userID, bet); err != nil {
		return nil, err
	}

	s.activeRounds[userID] = g
	return g, nil
}

// Reveal uncovers a tile. A bomb ends the round with no credit; revealing
// the final safe tile auto-cashes the round.
func (s *MinebombService) Reveal(ctx context.Context, userID int64, tile int) (*game.MinebombGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.activeRounds[userID]
	if !ok || !g.IsActive() {
		return nil, ErrNoActiveRound
	}

	if _, err := g.Reveal(tile); err != nil {
		return nil, err
	}
	if !g.IsActive() {
		if err := s.creditAndClear(ctx, userID, g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// CashOut settles the round at the current multiplier.
func (s *MinebombService) CashOut(ctx context.Context, userID int64) (*game.MinebombGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.activeRounds[userID]
	if !ok || !g.IsActive() {
		return nil, ErrNoActiveRound
	}
	if _, err := g.CashOut(); err != nil {
		return nil, err
	}
	if err := s.creditAndClear(ctx, userID, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Active returns the user's running round, if any.
func (s *MinebombService) Active(userID int64) *game.MinebombGame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.activeRounds[userID]
	if !ok || !g.IsActive() {
		return nil
	}
	return g
}

// creditAndClear credits a finished round and only then drops it from the
// active set. On a failed write the round stays mapped so the reaper, or the
// user's next request, retries the credit. Caller holds s.mu.
func (s *MinebombService) creditAndClear(ctx context.Context, userID int64, g *game.MinebombGame) error {
	s.activeRounds[userID] = g
	if err := s.creditFn(ctx, g); err != nil {
		return err
	}
	delete(s.activeRounds, userID)
	return nil
}

func (s *MinebombService) chargeBet(ctx context.Context, userID int64, bet int64) error {
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
		Game:        string(domain.GameTypeMinebomb),
		Amount:      float64(-bet),
		ChipsAmount: -bet,
		Description: "minebomb bet",
	}
	if err = s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *MinebombService) creditWin(ctx context.Context, g *game.MinebombGame) error {
	if g.WinAmount <= 0 {
		return nil
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
		Type:        domain.TxWin,
		Game:        string(domain.GameTypeMinebomb),
		Amount:      float64(g.WinAmount),
		ChipsAmount: g.WinAmount,
		Description: "minebomb cash out",
	}
	if err = s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// reapStaleRounds cashes out rounds abandoned mid-play at their current
// multiplier, which is the most player-favorable way to settle them.
func (s *MinebombService) reapStaleRounds() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.sweepRounds()
	}
}

// sweepRounds cashes out stale rounds and retries any credit that failed to
// persist. A round is removed only once its credit is committed.
func (s *MinebombService) sweepRounds() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, g := range s.activeRounds {
		if g.IsActive() {
			if g.Age() < staleRoundAge {
				continue
			}
			if _, err := g.CashOut(); err != nil {
				continue
			}
		}
		if err := s.creditFn(context.Background(), g); err != nil {
			continue
		}
		delete(s.activeRounds, userID)
	}
}
