package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"checkels_casino/internal/domain"
	"checkels_casino/internal/logger"
	"checkels_casino/internal/repository"
	"checkels_casino/internal/tree"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNothingToClaim  = errors.New("nothing to claim")
	ErrBoosterActive   = errors.New("a booster of this tier is already active")
	ErrUnknownBooster  = errors.New("unknown booster")
	ErrUpgradeConflict = errors.New("upgrade conflicted with a concurrent change, try again")
)

// TreeService owns the per-user accrual sessions and every tree operation.
// The service mutex serializes claim/upgrade/booster against each other, so
// a double-submitted claim sees accrued == 0 on its second pass.
type TreeService struct {
	db              *pgxpool.Pool
	accountRepo     *repository.AccountRepository
	transactionRepo *repository.TransactionRepository
	treeRepo        *repository.TreeRepository
	snapshots       repository.SnapshotStore

	sessions map[int64]*tree.Session
	mu       sync.Mutex
	now      func() time.Time
}

func NewTreeService(db *pgxpool.Pool, snapshots repository.SnapshotStore) *TreeService {
	return &TreeService{
		db:              db,
		accountRepo:     repository.NewAccountRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		treeRepo:        repository.NewTreeRepository(db),
		snapshots:       snapshots,
		sessions:        make(map[int64]*tree.Session),
		now:             time.Now,
	}
}

// Enter brings the user's tree to the foreground: loads the upgrade record
// (creating it lazily), reconciles the cached snapshot against wall-clock
// time, and starts the one-second tick loop.
func (s *TreeService) Enter(ctx context.Context, userID int64) (map[string]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if existing, ok := s.sessions[userID]; ok {
		return existing.State(now), nil
	}

	state, err := s.treeRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		// Cache trouble is not fatal: reconcile from the last claim.
		logger.Warn("snapshot load failed, falling back to last claim", "user_id", userID, "error", err)
		snap = nil
	}

	session := tree.Reconcile(userID, state.Level, snap, state.LastClaim, now)
	s.sessions[userID] = session
	go session.Run()

	return session.State(now), nil
}

// Leave persists a best-effort snapshot and stops the tick loop. A failed
// save is logged and swallowed; the next Enter reconciles from last_claim.
func (s *TreeService) Leave(ctx context.Context, userID int64) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	if ok {
		delete(s.sessions, userID)
	}
	s.mu.Unlock()

	if !ok {
		return
	}
	session.Stop()

	snap := session.Snapshot(s.now())
	if err := s.snapshots.Save(ctx, userID, snap); err != nil {
		logger.Warn("snapshot save failed", "user_id", userID, "error", err)
	}
}

// State returns the live session view, entering the tree if needed.
func (s *TreeService) State(ctx context.Context, userID int64) (map[string]interface{}, error) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	s.mu.Unlock()
	if ok {
		return session.State(s.now()), nil
	}
	return s.Enter(ctx, userID)
}

// Claim credits the accrued amount plus bonus yield to the checkels balance.
// Local session state is only reset after the database commit succeeds, so a
// persistence failure never silently loses a claim.
func (s *TreeService) Claim(ctx context.Context, userID int64) (payout float64, newBalance float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return 0, 0, ErrNothingToClaim
	}

	accrued, payout := session.PendingClaim()
	if accrued <= 0 {
		return 0, 0, ErrNothingToClaim
	}

	now := s.now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = s.accountRepo.LockBalances(ctx, tx, userID); err != nil {
		return 0, 0, mapRepoErr(err)
	}
	newBalance, err = s.accountRepo.AddCheckelsTx(ctx, tx, userID, payout)
	if err != nil {
		return 0, 0, mapRepoErr(err)
	}

	record := &domain.Transaction{
		UserID:      userID,
		Type:        domain.TxWin,
		Game:        string(domain.GameTypeTree),
		Amount:      payout,
		CoinsAmount: payout,
		Description: "tree claim",
	}
	if err = s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
		return 0, 0, err
	}
	if err = s.treeRepo.SetLastClaimTx(ctx, tx, userID, now); err != nil {
		return 0, 0, err
	}
	if err = tx.Commit(ctx); err != nil {
		return 0, 0, err
	}

	session.ResetAfterClaim(now)
	if err := s.snapshots.Clear(ctx, userID); err != nil {
		logger.Warn("snapshot clear failed", "user_id", userID, "error", err)
	}
	return payout, newBalance, nil
}

// LevelUp deducts the re-derived upgrade cost and raises the level by
// exactly one. The cost and balance are both validated at execution time;
// nothing from the client is trusted.
func (s *TreeService) LevelUp(ctx context.Context, userID int64) (newLevel int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.treeRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}
	cost := float64(tree.LevelUpCost(state.Level))

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	balances, err := s.accountRepo.LockBalances(ctx, tx, userID)
	if err != nil {
		return 0, mapRepoErr(err)
	}
	if balances.Checkels < cost {
		return 0, ErrInsufficientFunds
	}

	if _, err = s.accountRepo.AddCheckelsTx(ctx, tx, userID, -cost); err != nil {
		return 0, mapRepoErr(err)
	}
	newLevel, err = s.treeRepo.IncrementLevelTx(ctx, tx, userID, state.Level)
	if err != nil {
		if errors.Is(err, repository.ErrStaleLevel) {
			return 0, ErrUpgradeConflict
		}
		return 0, err
	}

	record := &domain.Transaction{
		UserID:      userID,
		Type:        domain.TxBet,
		Game:        string(domain.GameTypeTree),
		Amount:      -cost,
		CoinsAmount: -cost,
		Description: "tree level up",
	}
	if err = s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
		return 0, err
	}
	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}

	if session, ok := s.sessions[userID]; ok {
		session.SetLevel(newLevel)
	}
	return newLevel, nil
}

// BuyBooster purchases a catalog booster. One active booster per multiplier
// tier; tiers stack multiplicatively while active.
func (s *TreeService) BuyBooster(ctx context.Context, userID int64, name string) (*domain.Booster, error) {
	offer, ok := tree.FindBoosterOffer(name)
	if !ok {
		return nil, ErrUnknownBooster
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, errors.New("tree session not active")
	}

	now := s.now()
	if tree.HasActiveTier(session.ActiveBoosters(now), offer.Multiplier, now) {
		return nil, ErrBoosterActive
	}

	cost := float64(offer.Cost)

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	balances, err := s.accountRepo.LockBalances(ctx, tx, userID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if balances.Checkels < cost {
		return nil, ErrInsufficientFunds
	}
	if _, err = s.accountRepo.AddCheckelsTx(ctx, tx, userID, -cost); err != nil {
		return nil, mapRepoErr(err)
	}

	record := &domain.Transaction{
		UserID:      userID,
		Type:        domain.TxBet,
		Game:        string(domain.GameTypeTree),
		Amount:      -cost,
		CoinsAmount: -cost,
		Description: "booster: " + offer.Name,
	}
	if err = s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	booster := domain.Booster{
		Name:       offer.Name,
		Multiplier: offer.Multiplier,
		EndTime:    now.Add(offer.Duration),
	}
	session.AddBooster(booster)
	return &booster, nil
}

// Shutdown stops every live session and persists snapshots, for graceful
// server shutdown.
func (s *TreeService) Shutdown(ctx context.Context) {
	s.mu.Lock()
	sessions := make(map[int64]*tree.Session, len(s.sessions))
	for id, session := range s.sessions {
		sessions[id] = session
	}
	s.sessions = make(map[int64]*tree.Session)
	s.mu.Unlock()

	now := s.now()
	for userID, session := range sessions {
		session.Stop()
		if err := s.snapshots.Save(ctx, userID, session.Snapshot(now)); err != nil {
			logger.Warn("shutdown snapshot save failed", "user_id", userID, "error", err)
		}
	}
}
