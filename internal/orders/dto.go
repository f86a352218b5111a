package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bakery-backend/pkg/db/models"
	"github.com/angelmondragon/bakery-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/bakery-backend/pkg/errors"
)

// CreateOrderInput is everything needed to place one counter order.
// ID and CreatedAt are optional; the store assigns them when absent.
type CreateOrderInput struct {
	ID            *uuid.UUID
	CreatedAt     *time.Time
	BranchID      uuid.UUID
	CustomerID    *uuid.UUID
	Items         []models.OrderItem
	TotalAmount   decimal.Decimal
	Status        enums.OrderStatus
	PaymentMethod string
}

// StockShortage is attached as details to INSUFFICIENT_STOCK errors.
type StockShortage struct {
	ItemID    uuid.UUID `json:"item_id"`
	Available int       `json:"available"`
	Requested int       `json:"requested"`
}

// Validate checks the input shape before any gateway is touched.
func (in CreateOrderInput) Validate() error {
	if in.BranchID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "branch id required")
	}
	if len(in.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	for i, item := range in.Items {
		if item.ItemID == uuid.Nil {
			return pkgerrors.Newf(pkgerrors.CodeValidation, "items[%d]: item id required", i)
		}
		if item.Quantity <= 0 {
			return pkgerrors.Newf(pkgerrors.CodeValidation, "items[%d]: quantity must be positive", i)
		}
		if item.Price.IsNegative() {
			return pkgerrors.Newf(pkgerrors.CodeValidation, "items[%d]: price must not be negative", i)
		}
	}
	if in.Status == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order status required")
	}
	if !in.Status.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid order status %q", in.Status)
	}
	if in.PaymentMethod == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method required")
	}
	if in.CustomerID != nil && *in.CustomerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id must not be empty when provided")
	}
	return nil
}

func (in CreateOrderInput) toOrder() *models.Order {
	order := &models.Order{
		CustomerID:    in.CustomerID,
		BranchID:      in.BranchID,
		Items:         append([]models.OrderItem(nil), in.Items...),
		TotalAmount:   in.TotalAmount,
		Status:        in.Status,
		PaymentMethod: in.PaymentMethod,
	}
	if in.ID != nil {
		order.ID = *in.ID
	}
	if in.CreatedAt != nil {
		order.CreatedAt = *in.CreatedAt
	}
	return order
}
