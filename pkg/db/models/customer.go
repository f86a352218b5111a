package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/bakery-backend/pkg/enums"
)

// Customer carries the loyalty account fields touched by order placement.
type Customer struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name          string            `gorm:"column:name;not null" json:"name"`
	Email         *string           `gorm:"column:email" json:"email,omitempty"`
	Phone         *string           `gorm:"column:phone" json:"phone,omitempty"`
	LoyaltyPoints int               `gorm:"column:loyalty_points;not null;default:0" json:"loyalty_points"`
	Tier          enums.LoyaltyTier `gorm:"column:tier;type:text;not null;default:'BRONZE'" json:"tier"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}
