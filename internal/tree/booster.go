package tree

import (
	"time"

	"checkels_casino/internal/domain"
)

// BoosterOffer is a purchasable booster from the shop catalog.
type BoosterOffer struct {
	Name       string        `json:"name"`
	Multiplier float64       `json:"multiplier"`
	Duration   time.Duration `json:"duration"`
	Cost       int64         `json:"cost"` // checkels
}

// BoosterCatalog lists the purchasable boosters. One active booster per
// multiplier tier; tiers stack multiplicatively with each other.
var BoosterCatalog = []BoosterOffer{
	{Name: "Sprinkler", Multiplier: 1.5, Duration: 30 * time.Minute, Cost: 30},
	{Name: "Golden Sun", Multiplier: 2.0, Duration: 10 * time.Minute, Cost: 75},
	{Name: "Rainbow Rain", Multiplier: 3.0, Duration: 5 * time.Minute, Cost: 150},
}

// FindBoosterOffer looks up a catalog entry by name.
func FindBoosterOffer(name string) (BoosterOffer, bool) {
	for _, o := range BoosterCatalog {
		if o.Name == name {
			return o, true
		}
	}
	return BoosterOffer{}, false
}

// ActiveMultiplier multiplies together every unexpired booster.
func ActiveMultiplier(boosters []domain.Booster, now time.Time) float64 {
	m := 1.0
	for _, b := range boosters {
		if !b.Expired(now) {
			m *= b.Multiplier
		}
	}
	return m
}

// PruneBoosters drops expired boosters. Called lazily on each read.
func PruneBoosters(boosters []domain.Booster, now time.Time) []domain.Booster {
	active := boosters[:0]
	for _, b := range boosters {
		if !b.Expired(now) {
			active = append(active, b)
		}
	}
	return active
}

// HasActiveTier reports whether an unexpired booster of the same multiplier
// tier is already running.
func HasActiveTier(boosters []domain.Booster, multiplier float64, now time.Time) bool {
	for _, b := range boosters {
		if b.Multiplier == multiplier && !b.Expired(now) {
			return true
		}
	}
	return false
}
