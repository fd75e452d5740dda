package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion is a discount code with a finite number of redemptions left.
// The label is unique at the database level; Count never drops below zero
// (redemption is a conditional decrement at the storage layer).
type Promotion struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Label     string          `json:"label" gorm:"uniqueIndex;type:varchar(50);not null" validate:"required,min=1,max=50"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Count     int             `json:"count" gorm:"not null;default:0" validate:"gte=0"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
