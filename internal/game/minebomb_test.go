package game

import (
	"math"
	"testing"
)

func TestMinebombMultiplierFormula(t *testing.T) {
	cases := []struct {
		bombs    int
		revealed int
		want     float64
	}{
		{3, 0, 1.0},
		{3, 1, 1 + 0.12*1},
		{3, 5, 1 + 0.12*5},
		{5, 1, 1 + 0.20*1*(5.0/3.0)},
		{5, 2, 1 + 0.20*2*(5.0/3.0)},
		{10, 1, 1 + 0.35*1*(10.0/3.0)},
	}

	for _, tc := range cases {
		got := MinebombMultiplier(tc.bombs, tc.revealed)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("MinebombMultiplier(%d, %d) = %v; want %v", tc.bombs, tc.revealed, got, tc.want)
		}
	}
}

func TestMinebombPayoutRoundsOnlyAtChips(t *testing.T) {
	// 1 reveal at 5 bombs is an exact 1.333..; the multiplier must not be
	// pre-rounded, only the final chip amount truncates.
	g, err := NewMinebombGame("r1", 1, 1000, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bombs := make(map[int]bool)
	for _, b := range g.bombs {
		bombs[b] = true
	}
	for tile := 0; tile < MinebombGridSize; tile++ {
		if bombs[tile] {
			continue
		}
		if _, err := g.Reveal(tile); err != nil {
			t.Fatalf("reveal: %v", err)
		}
		break
	}

	win, err := g.CashOut()
	if err != nil {
		t.Fatalf("cashout: %v", err)
	}
	if win != 1333 {
		t.Fatalf("win = %d; want 1333 from the exact 1.333.. multiplier", win)
	}
}

func TestMinebombRejectsInvalidSetup(t *testing.T) {
	if _, err := NewMinebombGame("r1", 1, 100, 4); err == nil {
		t.Fatalf("expected error for bomb count 4")
	}
	if _, err := NewMinebombGame("r1", 1, 0, 3); err == nil {
		t.Fatalf("expected error for zero bet")
	}
}

func TestMinebombStartsAtOne(t *testing.T) {
	g, err := NewMinebombGame("r1", 1, 100, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Multiplier != 1.0 {
		t.Fatalf("multiplier = %v; want exactly 1.0 before any reveal", g.Multiplier)
	}
	if len(g.bombs) != 3 {
		t.Fatalf("placed %d bombs; want 3", len(g.bombs))
	}
}

func TestMinebombRevealAllSafeTilesAutoCashes(t *testing.T) {
	g, err := NewMinebombGame("r1", 1, 100, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bombs := make(map[int]bool)
	for _, b := range g.bombs {
		bombs[b] = true
	}

	for tile := 0; tile < MinebombGridSize; tile++ {
		if bombs[tile] {
			continue
		}
		hit, err := g.Reveal(tile)
		if err != nil {
			t.Fatalf("reveal %d: %v", tile, err)
		}
		if hit {
			t.Fatalf("revealed a bomb on a known-safe tile %d", tile)
		}
	}

	if g.Status != MinebombStatusCashedOut {
		t.Fatalf("status = %s; want cashed_out after clearing the board", g.Status)
	}
	if len(g.Revealed) != MinebombGridSize-3 {
		t.Fatalf("revealed %d tiles; want 22", len(g.Revealed))
	}
	wantMult := MinebombMultiplier(3, 22)
	if g.Multiplier != wantMult {
		t.Fatalf("multiplier = %v; want %v", g.Multiplier, wantMult)
	}
	if g.WinAmount != int64(100*wantMult) {
		t.Fatalf("win = %d; want %d", g.WinAmount, int64(100*wantMult))
	}
}

func TestMinebombBombEndsRound(t *testing.T) {
	g, _ := NewMinebombGame("r1", 1, 100, 10)

	hit, err := g.Reveal(g.bombs[0])
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if !hit {
		t.Fatalf("expected bomb hit")
	}
	if g.Status != MinebombStatusExploded || g.WinAmount != 0 {
		t.Fatalf("status=%s win=%d; want exploded 0", g.Status, g.WinAmount)
	}
	if _, err := g.CashOut(); err == nil {
		t.Fatalf("expected error cashing out an exploded round")
	}
}

func TestMinebombCashOut(t *testing.T) {
	g, _ := NewMinebombGame("r1", 1, 200, 3)

	bombs := make(map[int]bool)
	for _, b := range g.bombs {
		bombs[b] = true
	}
	revealed := 0
	for tile := 0; tile < MinebombGridSize && revealed < 4; tile++ {
		if bombs[tile] {
			continue
		}
		if _, err := g.Reveal(tile); err != nil {
			t.Fatalf("reveal: %v", err)
		}
		revealed++
	}

	win, err := g.CashOut()
	if err != nil {
		t.Fatalf("cashout: %v", err)
	}
	want := int64(200 * MinebombMultiplier(3, 4))
	if win != want {
		t.Fatalf("win = %d; want %d", win, want)
	}
	if _, err := g.Reveal(24); err == nil {
		t.Fatalf("expected error revealing after cashout")
	}
}

func TestMinebombRejectsDoubleReveal(t *testing.T) {
	g, _ := NewMinebombGame("r1", 1, 100, 3)

	bombs := make(map[int]bool)
	for _, b := range g.bombs {
		bombs[b] = true
	}
	safe := -1
	for tile := 0; tile < MinebombGridSize; tile++ {
		if !bombs[tile] {
			safe = tile
			break
		}
	}
	if _, err := g.Reveal(safe); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if _, err := g.Reveal(safe); err == nil {
		t.Fatalf("expected error for double reveal")
	}
	if _, err := g.Reveal(99); err == nil {
		t.Fatalf("expected error for out-of-range tile")
	}
}
