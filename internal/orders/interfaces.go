package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/angelmondragon/bakery-backend/pkg/db/models"
	"github.com/angelmondragon/bakery-backend/pkg/enums"
)

// InventoryGateway reads and rewrites branch-scoped stock rows.
type InventoryGateway interface {
	GetByIDsInBranch(ctx context.Context, ids []uuid.UUID, branchID uuid.UUID) ([]models.InventoryItem, error)
	UpdateQuantity(ctx context.Context, id, branchID uuid.UUID, quantity int) error
}

// OrderGateway persists and removes order rows.
type OrderGateway interface {
	Insert(ctx context.Context, order *models.Order) (*models.Order, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// LoyaltyGateway reads and rewrites a customer's points and tier.
type LoyaltyGateway interface {
	GetPoints(ctx context.Context, customerID uuid.UUID) (int, error)
	UpdatePointsAndTier(ctx context.Context, customerID uuid.UUID, points int, tier enums.LoyaltyTier) error
}

// Notifier announces committed orders to real-time subscribers.
type Notifier interface {
	OrderCreated(ctx context.Context, order *models.Order) error
}

// Repository defines persistence operations for the orders table.
type Repository interface {
	OrderGateway
	List(ctx context.Context, branchID *uuid.UUID) ([]models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}
