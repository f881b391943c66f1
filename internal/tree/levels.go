package tree

import "math"

// Level-dependent rates for the money tree. Level is always >= 1.

// BaseCPS is the checkels-per-second rate at a level.
func BaseCPS(level int) float64 {
	return 0.00167 * math.Pow(1.1, float64(level-1))
}

// BonusYieldPercent is the claim bonus in whole percent.
func BonusYieldPercent(level int) int {
	return int(math.Floor(float64(level) * 0.5))
}

// MaxGenerationTime is the per-session accrual budget in seconds.
func MaxGenerationTime(level int) int {
	return int(math.Floor(1800 * (1 + float64(level-1)*0.1)))
}

// LevelUpCost is the checkels price of moving from level to level+1.
func LevelUpCost(level int) int64 {
	return int64(math.Floor(100 * math.Pow(1.5, float64(level-1))))
}

// SessionCap is the most a single session can ever accrue, regardless of how
// long the tree is left running or how much offline time elapses.
func SessionCap(level int) float64 {
	return BaseCPS(level) * float64(MaxGenerationTime(level))
}
