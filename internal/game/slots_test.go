package game

import "testing"

func TestSlotsPayoutTable(t *testing.T) {
	cases := []struct {
		name  string
		reels [3]Symbol
		want  float64
	}{
		{"triple seven", [3]Symbol{SymbolSeven, SymbolSeven, SymbolSeven}, 100},
		{"triple grape", [3]Symbol{SymbolGrape, SymbolGrape, SymbolGrape}, 3},
		{"leading sevens", [3]Symbol{SymbolSeven, SymbolSeven, SymbolLemon}, 10},
		{"leading cherries", [3]Symbol{SymbolCherry, SymbolCherry, SymbolBell}, 1.5},
		{"leading pair not in table", [3]Symbol{SymbolLemon, SymbolLemon, SymbolGrape}, 0},
		{"trailing pair pays nothing", [3]Symbol{SymbolLemon, SymbolSeven, SymbolSeven}, 0},
		{"no match", [3]Symbol{SymbolSeven, SymbolBell, SymbolCherry}, 0},
	}

	for _, tc := range cases {
		res := ResolveSlots(tc.reels, 10)
		if res.Multiplier != tc.want {
			t.Fatalf("%s: multiplier = %v; want %v", tc.name, res.Multiplier, tc.want)
		}
		if res.Payout != int64(10*tc.want) {
			t.Fatalf("%s: payout = %d; want %d", tc.name, res.Payout, int64(10*tc.want))
		}
	}
}

func TestSlotsTripleCheckedBeforePair(t *testing.T) {
	// Cherry appears in both tables; the triple must win precedence.
	res := ResolveSlots([3]Symbol{SymbolCherry, SymbolCherry, SymbolCherry}, 100)
	if res.Multiplier != 10 {
		t.Fatalf("multiplier = %v; want triple-table 10, not pair-table 1.5", res.Multiplier)
	}
}

func TestSpinReelsStaysInAlphabet(t *testing.T) {
	valid := make(map[Symbol]bool)
	for _, s := range SlotSymbols {
		valid[s] = true
	}
	for i := 0; i < 100; i++ {
		for _, r := range SpinReels() {
			if !valid[r] {
				t.Fatalf("spun unknown symbol %q", r)
			}
		}
	}
}
