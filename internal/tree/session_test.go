package tree

import (
	"testing"
	"time"

	"checkels_casino/internal/domain"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestReconcileContinuation(t *testing.T) {
	start := epoch
	snap := &domain.TreeSessionSnapshot{
		Accrued:      0.5,
		SessionStart: start,
		LastLeave:    start.Add(300 * time.Second),
	}
	// Back 2 seconds later: below the continuation threshold.
	s := Reconcile(1, 1, snap, start, start.Add(302*time.Second))

	if s.Accrued != 0.5 {
		t.Fatalf("accrued = %v; want snapshot value 0.5", s.Accrued)
	}
	if !s.GenerationActive {
		t.Fatalf("session should still be generating")
	}
}

func TestReconcileOfflineGeneration(t *testing.T) {
	start := epoch
	snap := &domain.TreeSessionSnapshot{
		Accrued:      0.2,
		SessionStart: start,
		LastLeave:    start.Add(100 * time.Second),
	}
	// Away for 200 seconds.
	now := start.Add(300 * time.Second)
	s := Reconcile(1, 1, snap, start, now)

	want := 0.2 + BaseCPS(1)*200
	if diff := s.Accrued - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("accrued = %v; want %v", s.Accrued, want)
	}
	if !s.GenerationActive {
		t.Fatalf("session should still be generating well under the cap")
	}
}

func TestReconcileNeverExceedsCap(t *testing.T) {
	start := epoch
	gaps := []time.Duration{
		time.Duration(MaxGenerationTime(1)) * time.Second,
		24 * time.Hour,
		10 * 365 * 24 * time.Hour, // a decade away
	}

	var results []float64
	for _, gap := range gaps {
		snap := &domain.TreeSessionSnapshot{
			Accrued:      1.0,
			SessionStart: start,
			LastLeave:    start,
		}
		s := Reconcile(1, 1, snap, start, start.Add(gap))
		cap := SessionCap(1)
		if s.Accrued > cap {
			t.Fatalf("gap %v: accrued %v exceeds cap %v", gap, s.Accrued, cap)
		}
		if s.GenerationActive {
			t.Fatalf("gap %v: session should be capped and inactive", gap)
		}
		results = append(results, s.Accrued)
	}

	// A ten-year gap yields the same capped amount as a gap of exactly
	// maxGenerationTime.
	for _, r := range results[1:] {
		if r != results[0] {
			t.Fatalf("capped results differ: %v vs %v", r, results[0])
		}
	}
}

func TestReconcileNilSnapshotFallsBackToLastClaim(t *testing.T) {
	lastClaim := epoch
	now := lastClaim.Add(600 * time.Second)

	s := Reconcile(1, 1, nil, lastClaim, now)
	want := BaseCPS(1) * 600
	if diff := s.Accrued - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("accrued = %v; want %v from last claim anchor", s.Accrued, want)
	}
}

func TestReconcileNilSnapshotNoLastClaim(t *testing.T) {
	now := epoch
	s := Reconcile(1, 1, nil, time.Time{}, now)
	if s.Accrued != 0 {
		t.Fatalf("accrued = %v; want fresh 0", s.Accrued)
	}
	if !s.GenerationActive {
		t.Fatalf("fresh session should be generating")
	}
}

func TestTickAccruesAndClampsAtCap(t *testing.T) {
	s := NewSession(1, 1, epoch)
	s.Tick()
	if diff := s.Accrued - BaseCPS(1); diff > 1e-12 || diff < -1e-12 {
		t.Fatalf("accrued after one tick = %v; want %v", s.Accrued, BaseCPS(1))
	}

	s.Accrued = SessionCap(1) - BaseCPS(1)/2
	s.Tick()
	if s.Accrued != SessionCap(1) {
		t.Fatalf("accrued = %v; want clamped to cap %v", s.Accrued, SessionCap(1))
	}
	if s.GenerationActive {
		t.Fatalf("capped session must stop generating")
	}

	before := s.Accrued
	s.Tick()
	if s.Accrued != before {
		t.Fatalf("inactive session accrued on tick")
	}
}

func TestTickAppliesBoosterMultipliers(t *testing.T) {
	s := NewSession(1, 1, epoch)
	now := time.Now()
	s.Boosters = []domain.Booster{
		{Name: "a", Multiplier: 2, EndTime: now.Add(time.Minute)},
		{Name: "b", Multiplier: 1.5, EndTime: now.Add(time.Minute)},
		{Name: "expired", Multiplier: 10, EndTime: now.Add(-time.Minute)},
	}

	s.Tick()
	want := BaseCPS(1) * 3 // 2 x 1.5, expired ignored
	if diff := s.Accrued - want; diff > 1e-12 || diff < -1e-12 {
		t.Fatalf("boosted tick = %v; want %v", s.Accrued, want)
	}
	if len(s.Boosters) != 2 {
		t.Fatalf("expired booster not pruned")
	}
}

func TestClaimPayoutAppliesBonusYield(t *testing.T) {
	// Level 4 has a 2% bonus.
	if got := ClaimPayout(100, 4); got != 102 {
		t.Fatalf("payout = %v; want 102", got)
	}
	// Level 1 has no bonus.
	if got := ClaimPayout(100, 1); got != 100 {
		t.Fatalf("payout = %v; want 100", got)
	}
}

func TestResetAfterClaim(t *testing.T) {
	s := NewSession(1, 1, epoch)
	s.Accrued = 1.5
	s.GenerationActive = false

	restart := epoch.Add(time.Hour)
	s.ResetAfterClaim(restart)
	if s.Accrued != 0 || !s.GenerationActive || !s.SessionStart.Equal(restart) {
		t.Fatalf("reset left session in state accrued=%v active=%v start=%v", s.Accrued, s.GenerationActive, s.SessionStart)
	}
}

func TestSetLevelReactivatesCappedSession(t *testing.T) {
	s := NewSession(1, 1, epoch)
	s.Accrued = SessionCap(1)
	s.GenerationActive = false

	s.SetLevel(2)
	if !s.GenerationActive {
		t.Fatalf("higher cap should reactivate generation")
	}
	if s.Level != 2 {
		t.Fatalf("level = %d; want 2", s.Level)
	}

	// Downgrades are ignored.
	s.SetLevel(1)
	if s.Level != 2 {
		t.Fatalf("level regressed to %d", s.Level)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewSession(7, 3, epoch)
	s.Accrued = 2.25

	leave := epoch.Add(90 * time.Second)
	snap := s.Snapshot(leave)
	if snap.Accrued != 2.25 || !snap.SessionStart.Equal(epoch) || !snap.LastLeave.Equal(leave) {
		t.Fatalf("snapshot = %+v", snap)
	}

	// Re-entering 3 seconds later resumes the same accrued value.
	resumed := Reconcile(7, 3, &snap, epoch, leave.Add(3*time.Second))
	if resumed.Accrued != 2.25 {
		t.Fatalf("resumed accrued = %v; want 2.25", resumed.Accrued)
	}
}
