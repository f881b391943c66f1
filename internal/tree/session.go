package tree

import (
	"sync"
	"time"

	"checkels_casino/internal/domain"
)

// ContinuationThreshold is the longest absence still treated as the same
// uninterrupted session during reconciliation.
const ContinuationThreshold = 5 * time.Second

// Session is the in-memory accrual state for one user's tree. It is owned by
// the tree service; the service's lock serializes claim/upgrade against the
// ticker, the session's own mutex protects the per-second tick.
type Session struct {
	UserID           int64
	Level            int
	Accrued          float64
	SessionStart     time.Time
	GenerationActive bool
	Boosters         []domain.Booster

	mu       sync.Mutex
	stop     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewSession starts a fresh accrual session at the given level.
func NewSession(userID int64, level int, start time.Time) *Session {
	return &Session{
		UserID:           userID,
		Level:            level,
		SessionStart:     start,
		GenerationActive: true,
		stop:             make(chan struct{}),
		now:              time.Now,
	}
}

// Reconcile rebuilds a session from a cached snapshot after the client was
// away. A nil snapshot (missing or unreadable) falls back to an empty session
// anchored at lastClaim, so offline generation since the last claim still
// counts but nothing is ever double-credited.
//
// Accrued can never exceed the session cap no matter how large the offline
// gap is: idle time is not banked past maxGenerationTime.
func Reconcile(userID int64, level int, snap *domain.TreeSessionSnapshot, lastClaim time.Time, now time.Time) *Session {
	if snap == nil || snap.SessionStart.IsZero() {
		anchor := lastClaim
		if anchor.IsZero() {
			anchor = now
		}
		snap = &domain.TreeSessionSnapshot{SessionStart: anchor, LastLeave: anchor}
	}

	s := NewSession(userID, level, snap.SessionStart)
	cap := SessionCap(level)
	maxGen := float64(MaxGenerationTime(level))

	timeOffline := now.Sub(snap.LastLeave).Seconds()
	if timeOffline < ContinuationThreshold.Seconds() {
		// Short blip: resume exactly where the snapshot left off.
		s.Accrued = minFloat(snap.Accrued, cap)
	} else {
		offlineGenerated := BaseCPS(level) * timeOffline
		if remaining := cap - snap.Accrued; offlineGenerated > remaining {
			offlineGenerated = remaining
		}
		if offlineGenerated < 0 {
			offlineGenerated = 0
		}
		s.Accrued = minFloat(snap.Accrued+offlineGenerated, cap)
	}

	totalElapsed := now.Sub(snap.SessionStart).Seconds()
	if totalElapsed > maxGen {
		totalElapsed = maxGen
	}
	s.GenerationActive = totalElapsed < maxGen && s.Accrued < cap
	return s
}

// Tick advances accrual by one second at the boosted rate, clamped to the
// session cap. Hitting the cap flips the session to inactive.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.GenerationActive {
		return
	}

	now := s.now()
	s.Boosters = PruneBoosters(s.Boosters, now)
	s.Accrued += BaseCPS(s.Level) * ActiveMultiplier(s.Boosters, now)

	if cap := SessionCap(s.Level); s.Accrued >= cap {
		s.Accrued = cap
		s.GenerationActive = false
	}
}

// Run drives the one-second tick loop until Stop is called.
func (s *Session) Run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Stop cancels the tick loop. Safe to call more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Snapshot captures the session for the leave-time cache.
func (s *Session) Snapshot(now time.Time) domain.TreeSessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.TreeSessionSnapshot{
		Accrued:      s.Accrued,
		SessionStart: s.SessionStart,
		LastLeave:    now,
	}
}

// PendingClaim returns the current accrued amount and the payout it would
// produce at the session's level (accrued plus bonus yield).
func (s *Session) PendingClaim() (accrued, payout float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accrued = s.Accrued
	payout = ClaimPayout(accrued, s.Level)
	return accrued, payout
}

// ClaimPayout applies the level's bonus yield to an accrued amount.
func ClaimPayout(accrued float64, level int) float64 {
	return accrued * (1 + float64(BonusYieldPercent(level))/100)
}

// ResetAfterClaim zeroes the session and starts a new accrual window. Only
// called once the claim has been durably persisted.
func (s *Session) ResetAfterClaim(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Accrued = 0
	s.SessionStart = now
	s.GenerationActive = true
}

// SetLevel raises the session level after a persisted upgrade. The larger
// cap can reactivate a previously capped session.
func (s *Session) SetLevel(level int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if level <= s.Level {
		return
	}
	s.Level = level
	if s.Accrued < SessionCap(level) {
		s.GenerationActive = true
	}
}

// AddBooster appends an active booster to the session.
func (s *Session) AddBooster(b domain.Booster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Boosters = append(s.Boosters, b)
}

// ActiveBoosters returns the unexpired boosters, pruning the rest.
func (s *Session) ActiveBoosters(now time.Time) []domain.Booster {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Boosters = PruneBoosters(s.Boosters, now)
	out := make([]domain.Booster, len(s.Boosters))
	copy(out, s.Boosters)
	return out
}

// State returns a client-facing view of the session.
func (s *Session) State(now time.Time) map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Boosters = PruneBoosters(s.Boosters, now)
	return map[string]interface{}{
		"level":             s.Level,
		"accrued":           s.Accrued,
		"session_cap":       SessionCap(s.Level),
		"base_cps":          BaseCPS(s.Level),
		"final_cps":         BaseCPS(s.Level) * ActiveMultiplier(s.Boosters, now),
		"bonus_yield":       BonusYieldPercent(s.Level),
		"max_generation":    MaxGenerationTime(s.Level),
		"level_up_cost":     LevelUpCost(s.Level),
		"generation_active": s.GenerationActive,
		"boosters":          append([]domain.Booster(nil), s.Boosters...),
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
