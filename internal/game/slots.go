package game

import (
	"crypto/rand"
	"math/big"
)

type Symbol string

const (
	SymbolSeven   Symbol = "seven"
	SymbolDiamond Symbol = "diamond"
	SymbolBell    Symbol = "bell"
	SymbolCherry  Symbol = "cherry"
	SymbolLemon   Symbol = "lemon"
	SymbolGrape   Symbol = "grape"
)

var SlotSymbols = []Symbol{SymbolSeven, SymbolDiamond, SymbolBell, SymbolCherry, SymbolLemon, SymbolGrape}

// tripleMultipliers pays exact three-of-a-kind lines.
var tripleMultipliers = map[Symbol]float64{
	SymbolSeven:   100,
	SymbolDiamond: 25,
	SymbolBell:    15,
	SymbolCherry:  10,
	SymbolLemon:   5,
	SymbolGrape:   3,
}

// pairMultipliers pays when the two leading reels match and the line is not
// a triple. Checked strictly after the triple table.
var pairMultipliers = map[Symbol]float64{
	SymbolSeven:   10,
	SymbolDiamond: 4,
	SymbolCherry:  1.5,
}

type SlotsResult struct {
	Reels      [3]Symbol `json:"reels"`
	Multiplier float64   `json:"multiplier"`
	Payout     int64     `json:"payout"`
}

// SpinReels draws three independent symbols uniformly.
func SpinReels() [3]Symbol {
	var reels [3]Symbol
	for i := range reels {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(SlotSymbols))))
		if err != nil {
			n = big.NewInt(0)
		}
		reels[i] = SlotSymbols[n.Int64()]
	}
	return reels
}

// ResolveSlots maps a reel line to its payout. Precedence is fixed: the full
// triple table first, then the leading-two-reels pair table, else nothing.
func ResolveSlots(reels [3]Symbol, bet int64) *SlotsResult {
	result := &SlotsResult{Reels: reels}

	if reels[0] == reels[1] && reels[1] == reels[2] {
		if m, ok := tripleMultipliers[reels[0]]; ok {
			result.Multiplier = m
		}
	} else if reels[0] == reels[1] {
		if m, ok := pairMultipliers[reels[0]]; ok {
			result.Multiplier = m
		}
	}

	result.Payout = int64(float64(bet) * result.Multiplier)
	return result
}
