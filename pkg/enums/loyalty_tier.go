package enums

import "fmt"

// LoyaltyTier is the customer classification derived from accumulated points.
type LoyaltyTier string

const (
	LoyaltyTierBronze LoyaltyTier = "BRONZE"
	LoyaltyTierSilver LoyaltyTier = "SILVER"
	LoyaltyTierGold   LoyaltyTier = "GOLD"
)

var validLoyaltyTiers = []LoyaltyTier{
	LoyaltyTierBronze,
	LoyaltyTierSilver,
	LoyaltyTierGold,
}

// String implements fmt.Stringer.
func (t LoyaltyTier) String() string {
	return string(t)
}

// IsValid reports whether the value is a known LoyaltyTier.
func (t LoyaltyTier) IsValid() bool {
	for _, candidate := range validLoyaltyTiers {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseLoyaltyTier converts raw input into a LoyaltyTier.
func ParseLoyaltyTier(value string) (LoyaltyTier, error) {
	for _, candidate := range validLoyaltyTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid loyalty tier %q", value)
}
