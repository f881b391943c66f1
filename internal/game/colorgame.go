package game

import (
	"crypto/rand"
	"errors"
	"math/big"
)

type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorWhite  Color = "white"
	ColorPink   Color = "pink"
)

var Colors = []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorWhite, ColorPink}

// Payout multipliers by how many of the three dice showed the bet color.
var colorMultipliers = map[int]int64{1: 2, 2: 3, 3: 4}

type ColorGameResult struct {
	Dice    [3]Color        `json:"dice"`
	Matches map[Color]int   `json:"matches"`
	Payouts map[Color]int64 `json:"payouts"`
	Total   int64           `json:"total"`
}

// RollColorDice draws three independent colors uniformly.
func RollColorDice() [3]Color {
	var dice [3]Color
	for i := range dice {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(Colors))))
		if err != nil {
			n = big.NewInt(0)
		}
		dice[i] = Colors[n.Int64()]
	}
	return dice
}

// ValidateColorBets checks the stake allocation before any deduction.
func ValidateColorBets(bets map[Color]int64) error {
	if len(bets) == 0 {
		return errors.New("no colors selected")
	}
	valid := make(map[Color]bool, len(Colors))
	for _, c := range Colors {
		valid[c] = true
	}
	for c, amount := range bets {
		if !valid[c] {
			return errors.New("unknown color: " + string(c))
		}
		if amount <= 0 {
			return errors.New("bet must be positive")
		}
	}
	return nil
}

// TotalColorStake sums the allocation across all chosen colors. The whole
// stake is deducted upfront.
func TotalColorStake(bets map[Color]int64) int64 {
	var total int64
	for _, amount := range bets {
		total += amount
	}
	return total
}

// ResolveColorBets settles an allocation against a dice roll. Each bet color
// pays its stake times the match-count multiplier (2x/3x/4x for 1/2/3 dice).
func ResolveColorBets(bets map[Color]int64, dice [3]Color) *ColorGameResult {
	counts := make(map[Color]int)
	for _, d := range dice {
		counts[d]++
	}

	result := &ColorGameResult{
		Dice:    dice,
		Matches: make(map[Color]int),
		Payouts: make(map[Color]int64),
	}
	for c, stake := range bets {
		n := counts[c]
		result.Matches[c] = n
		if n > 0 {
			payout := stake * colorMultipliers[n]
			result.Payouts[c] = payout
			result.Total += payout
		}
	}
	return result
}
