package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/bakery-backend/internal/repo"
	"github.com/angelmondragon/bakery-backend/pkg/db/models"
	"github.com/angelmondragon/bakery-backend/pkg/enums"
)

type repository struct {
	repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) Insert(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.DB(ctx).Create(order).Error; err != nil {
		return nil, r.Fail(err, "Create order")
	}
	return order, nil
}

func (r *repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).Where("id = ?", id).Delete(&models.Order{})
	return r.Affected(res, "Delete order")
}

func (r *repository) List(ctx context.Context, branchID *uuid.UUID) ([]models.Order, error) {
	query := r.DB(ctx).Order("created_at DESC")
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}
	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, r.Fail(err, "Fetch orders")
	}
	return orders, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, r.Fail(err, "Fetch order")
	}
	return &order, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	res := r.DB(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if err := r.Affected(res, "Update order status"); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}
