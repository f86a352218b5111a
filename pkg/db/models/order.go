package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/bakery-backend/pkg/enums"
)

// OrderItem is the line snapshot embedded in an order at creation time.
type OrderItem struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order is a counter order placed at a branch.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CustomerID    *uuid.UUID        `gorm:"column:customer_id;type:uuid" json:"customer_id,omitempty"`
	BranchID      uuid.UUID         `gorm:"column:branch_id;type:uuid;not null;index" json:"branch_id"`
	Items         []OrderItem       `gorm:"column:items;type:jsonb;serializer:json;not null" json:"items"`
	TotalAmount   decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null" json:"total_amount"`
	Status        enums.OrderStatus `gorm:"column:status;type:text;not null;default:'PENDING'" json:"status"`
	PaymentMethod string            `gorm:"column:payment_method;not null" json:"payment_method"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns the id when the caller did not supply one.
func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
