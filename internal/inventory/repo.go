package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/bakery-backend/internal/repo"
	"github.com/angelmondragon/bakery-backend/pkg/db"
	"github.com/angelmondragon/bakery-backend/pkg/db/models"
)

// ErrNoRowsMatched is the cause carried by UpdateQuantity's NOT_FOUND error when
// no row matched the id and branch.
var ErrNoRowsMatched = db.ErrNoRowsMatched

// Error labels name the store operation only; the saga step or compensation
// running it is logged by the caller.
const (
	opReadItems      = "Read inventory items"
	opUpdateQuantity = "Update inventory quantity"
)

// Repository is the branch-scoped inventory gateway used by order placement.
type Repository interface {
	GetByIDsInBranch(ctx context.Context, ids []uuid.UUID, branchID uuid.UUID) ([]models.InventoryItem, error)
	UpdateQuantity(ctx context.Context, id, branchID uuid.UUID, quantity int) error
}

type repository struct {
	repo.Base
}

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(conn *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(conn)}
}

// GetByIDsInBranch loads the rows for ids that belong to branchID in one read.
// Ids missing from the branch are simply absent from the result.
func (r *repository) GetByIDsInBranch(ctx context.Context, ids []uuid.UUID, branchID uuid.UUID) ([]models.InventoryItem, error) {
	if len(ids) == 0 {
		return []models.InventoryItem{}, nil
	}
	var rows []models.InventoryItem
	err := r.DB(ctx).
		Where("id IN ? AND branch_id = ?", ids, branchID).
		Find(&rows).Error
	if err != nil {
		return nil, r.Fail(err, opReadItems)
	}
	return rows, nil
}

// UpdateQuantity overwrites the quantity of one row scoped by id and branch.
// A row that does not match yields NOT_FOUND.
func (r *repository) UpdateQuantity(ctx context.Context, id, branchID uuid.UUID, quantity int) error {
	res := r.DB(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ? AND branch_id = ?", id, branchID).
		Update("quantity", quantity)
	return r.Affected(res, opUpdateQuantity)
}
