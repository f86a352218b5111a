package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is a branch-scoped stock row. The order saga only reads and
// conditionally rewrites Quantity.
type InventoryItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BranchID  uuid.UUID `gorm:"column:branch_id;type:uuid;not null;index" json:"branch_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Quantity  int       `gorm:"column:quantity;not null;default:0" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory"
}
