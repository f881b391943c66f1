package tree

import "testing"

func TestLevelOneBaseline(t *testing.T) {
	if got := BaseCPS(1); got != 0.00167 {
		t.Fatalf("BaseCPS(1) = %v; want 0.00167", got)
	}
	if got := BonusYieldPercent(1); got != 0 {
		t.Fatalf("BonusYieldPercent(1) = %d; want 0", got)
	}
	if got := MaxGenerationTime(1); got != 1800 {
		t.Fatalf("MaxGenerationTime(1) = %d; want 1800", got)
	}
	if got := LevelUpCost(1); got != 100 {
		t.Fatalf("LevelUpCost(1) = %d; want 100", got)
	}
}

func TestLevelValues(t *testing.T) {
	cases := []struct {
		level   int
		bonus   int
		maxTime int
		cost    int64
	}{
		{2, 1, 1980, 150},
		{3, 1, 2160, 225},
		{4, 2, 2340, 337},
		{5, 2, 2520, 506},
		{10, 5, 3420, 3844},
	}

	for _, tc := range cases {
		if got := BonusYieldPercent(tc.level); got != tc.bonus {
			t.Fatalf("BonusYieldPercent(%d) = %d; want %d", tc.level, got, tc.bonus)
		}
		if got := MaxGenerationTime(tc.level); got != tc.maxTime {
			t.Fatalf("MaxGenerationTime(%d) = %d; want %d", tc.level, got, tc.maxTime)
		}
		if got := LevelUpCost(tc.level); got != tc.cost {
			t.Fatalf("LevelUpCost(%d) = %d; want %d", tc.level, got, tc.cost)
		}
	}
}

func TestRatesGrowWithLevel(t *testing.T) {
	for level := 1; level <= 60; level++ {
		if BaseCPS(level+1) <= BaseCPS(level) {
			t.Fatalf("BaseCPS not strictly increasing at level %d", level)
		}
		if MaxGenerationTime(level+1) < MaxGenerationTime(level) {
			t.Fatalf("MaxGenerationTime decreased at level %d", level)
		}
		if LevelUpCost(level+1) <= LevelUpCost(level) {
			t.Fatalf("LevelUpCost not strictly increasing at level %d", level)
		}
		if SessionCap(level+1) <= SessionCap(level) {
			t.Fatalf("SessionCap not increasing at level %d", level)
		}
	}
}
