package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/bakery-backend/internal/repo"
	"github.com/angelmondragon/bakery-backend/pkg/db/models"
	"github.com/angelmondragon/bakery-backend/pkg/enums"
)

// Repository is the loyalty gateway over the customers table.
type Repository interface {
	GetPoints(ctx context.Context, customerID uuid.UUID) (int, error)
	UpdatePointsAndTier(ctx context.Context, customerID uuid.UUID, points int, tier enums.LoyaltyTier) error
}

type repository struct {
	repo.Base
}

// NewRepository builds a customers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) GetPoints(ctx context.Context, customerID uuid.UUID) (int, error) {
	var customer models.Customer
	err := r.DB(ctx).
		Select("id", "loyalty_points").
		Where("id = ?", customerID).
		First(&customer).Error
	if err != nil {
		return 0, r.Fail(err, "Fetch customer for loyalty update")
	}
	return customer.LoyaltyPoints, nil
}

func (r *repository) UpdatePointsAndTier(ctx context.Context, customerID uuid.UUID, points int, tier enums.LoyaltyTier) error {
	res := r.DB(ctx).
		Model(&models.Customer{}).
		Where("id = ?", customerID).
		Updates(map[string]any{
			"loyalty_points": points,
			"tier":           tier,
		})
	return r.Affected(res, "Update customer loyalty points")
}
