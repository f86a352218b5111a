package loyalty

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/angelmondragon/bakery-backend/pkg/enums"
)

func TestClassifyTierBoundaries(t *testing.T) {
	tests := []struct {
		points int
		want   enums.LoyaltyTier
	}{
		{points: 0, want: enums.LoyaltyTierBronze},
		{points: 499, want: enums.LoyaltyTierBronze},
		{points: 500, want: enums.LoyaltyTierSilver},
		{points: 999, want: enums.LoyaltyTierSilver},
		{points: 1000, want: enums.LoyaltyTierGold},
		{points: 25000, want: enums.LoyaltyTierGold},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyTier(tt.points), "points=%d", tt.points)
	}
}

func TestPointsForAmount(t *testing.T) {
	tests := []struct {
		total string
		want  int
	}{
		{total: "0", want: 0},
		{total: "99.99", want: 0},
		{total: "100", want: 1},
		{total: "250.50", want: 2},
		{total: "1999.99", want: 19},
		{total: "-300", want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PointsForAmount(decimal.RequireFromString(tt.total)), "total=%s", tt.total)
	}
}

func TestAccrueCrossesTier(t *testing.T) {
	points, tier := Accrue(495, decimal.NewFromInt(1000))
	assert.Equal(t, 505, points)
	assert.Equal(t, enums.LoyaltyTierSilver, tier)

	points, tier = Accrue(999, decimal.NewFromInt(99))
	assert.Equal(t, 999, points)
	assert.Equal(t, enums.LoyaltyTierSilver, tier)
}
