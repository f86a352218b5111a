// Package loyalty holds the single source of truth for point accrual and tier
// classification. Any code path that derives a tier from points calls
// ClassifyTier.
package loyalty

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bakery-backend/pkg/enums"
)

const (
	SilverThreshold = 500
	GoldThreshold   = 1000
)

var pointsDivisor = decimal.NewFromInt(100)

// ClassifyTier maps a point balance to its tier.
func ClassifyTier(points int) enums.LoyaltyTier {
	switch {
	case points >= GoldThreshold:
		return enums.LoyaltyTierGold
	case points >= SilverThreshold:
		return enums.LoyaltyTierSilver
	default:
		return enums.LoyaltyTierBronze
	}
}

// PointsForAmount returns floor(total / 100), never negative.
func PointsForAmount(total decimal.Decimal) int {
	if total.IsNegative() {
		return 0
	}
	return int(total.Div(pointsDivisor).Floor().IntPart())
}

// Accrue returns the new balance and tier after an order of the given total.
func Accrue(current int, total decimal.Decimal) (int, enums.LoyaltyTier) {
	points := current + PointsForAmount(total)
	return points, ClassifyTier(points)
}
