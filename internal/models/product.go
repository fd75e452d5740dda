package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the store catalog.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=3,max=100"`
	Slug        string          `json:"slug" gorm:"uniqueIndex;type:varchar(120)"`
	Description string          `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Category    string          `json:"category" gorm:"type:varchar(100)"`
	Images      []ProductImage  `json:"images" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductImage is owned by its product and cascade-deleted with it.
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"productId" gorm:"index;not null"`
	URL       string `json:"url" gorm:"type:varchar(500);not null"`
}
