package tree

import (
	"testing"
	"time"

	"checkels_casino/internal/domain"
)

func TestActiveMultiplierStacksMultiplicatively(t *testing.T) {
	now := time.Now()
	boosters := []domain.Booster{
		{Multiplier: 2, EndTime: now.Add(time.Minute)},
		{Multiplier: 3, EndTime: now.Add(time.Minute)},
	}
	if got := ActiveMultiplier(boosters, now); got != 6 {
		t.Fatalf("multiplier = %v; want 6", got)
	}
	if got := ActiveMultiplier(nil, now); got != 1 {
		t.Fatalf("empty multiplier = %v; want 1", got)
	}
}

func TestExpiredBoostersIgnoredAndPruned(t *testing.T) {
	now := time.Now()
	boosters := []domain.Booster{
		{Name: "live", Multiplier: 2, EndTime: now.Add(time.Minute)},
		{Name: "dead", Multiplier: 5, EndTime: now.Add(-time.Second)},
		{Name: "exact", Multiplier: 4, EndTime: now}, // expires at the boundary
	}

	if got := ActiveMultiplier(boosters, now); got != 2 {
		t.Fatalf("multiplier = %v; want 2", got)
	}

	pruned := PruneBoosters(boosters, now)
	if len(pruned) != 1 || pruned[0].Name != "live" {
		t.Fatalf("pruned = %+v; want only the live booster", pruned)
	}
}

func TestHasActiveTier(t *testing.T) {
	now := time.Now()
	boosters := []domain.Booster{
		{Multiplier: 2, EndTime: now.Add(time.Minute)},
		{Multiplier: 3, EndTime: now.Add(-time.Minute)},
	}
	if !HasActiveTier(boosters, 2, now) {
		t.Fatalf("tier 2 should be active")
	}
	if HasActiveTier(boosters, 3, now) {
		t.Fatalf("tier 3 expired and should not block a purchase")
	}
	if HasActiveTier(boosters, 1.5, now) {
		t.Fatalf("tier 1.5 was never bought")
	}
}

func TestFindBoosterOffer(t *testing.T) {
	for _, o := range BoosterCatalog {
		got, ok := FindBoosterOffer(o.Name)
		if !ok || got.Multiplier != o.Multiplier {
			t.Fatalf("catalog lookup failed for %s", o.Name)
		}
		if o.Multiplier <= 1 {
			t.Fatalf("booster %s multiplier must exceed 1", o.Name)
		}
	}
	if _, ok := FindBoosterOffer("nope"); ok {
		t.Fatalf("unknown booster should not resolve")
	}
}
