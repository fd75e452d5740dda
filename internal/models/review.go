package models

import "time"

// Review is a product review left by a user. One review per user and
// product; eligibility additionally requires a past order containing
// the product.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"uniqueIndex:idx_user_product;not null"`
	ProductID uint      `json:"productId" gorm:"uniqueIndex:idx_user_product;not null"`
	Rating    int       `json:"rating" gorm:"not null" validate:"required,gte=1,lte=5"`
	Comment   string    `json:"comment" gorm:"type:varchar(1000)" validate:"omitempty,max=1000"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
