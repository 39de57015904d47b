package rewards

import "math"

// BasePoints is the point value of one credited check-in before multipliers.
const BasePoints = 10

// Tier labels, ordered lowest to highest.
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// TierFromPoints maps cumulative points to a tier. Thresholds are evaluated
// highest-first; a total exactly at a threshold belongs to the higher tier.
func TierFromPoints(points int) string {
	switch {
	case points >= 1000:
		return TierPlatinum
	case points >= 500:
		return TierGold
	case points >= 150:
		return TierSilver
	default:
		return TierBronze
	}
}

// MultiplierFromTier returns the reward multiplier for a tier. Unknown labels
// fall back to the bronze multiplier.
func MultiplierFromTier(tier string) float64 {
	switch tier {
	case TierPlatinum:
		return 3.0
	case TierGold:
		return 2.0
	case TierSilver:
		return 1.5
	default:
		return 1.0
	}
}

// StreakBonus returns the secondary multiplier earned by streak length. It
// composes multiplicatively with the tier multiplier.
func StreakBonus(streak int) float64 {
	switch {
	case streak >= 30:
		return 1.5
	case streak >= 15:
		return 1.3
	case streak >= 7:
		return 1.2
	default:
		return 1.0
	}
}

// ComputeReward calculates the points for one credited check-in and the
// composed multiplier that was applied. The tier multiplier is taken from the
// points total before this event is applied; adding the earned points first
// would make tier crossings non-reproducible.
func ComputeReward(streak, currentTotalPoints int) (earned int, multiplier float64) {
	multiplier = StreakBonus(streak) * MultiplierFromTier(TierFromPoints(currentTotalPoints))
	earned = int(math.Floor(BasePoints * multiplier))
	return earned, multiplier
}
