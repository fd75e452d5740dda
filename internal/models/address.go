package models

import "time"

// Address is a shipping address owned by a user. Orders reference an
// address but never own it; the same address can back many orders.
type Address struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	Company   *string   `json:"company,omitempty" gorm:"type:varchar(100)"`
	Address   string    `json:"address" gorm:"type:varchar(255);not null" validate:"required"`
	Apartment *string   `json:"apartment,omitempty" gorm:"type:varchar(100)"`
	Country   string    `json:"country" gorm:"type:varchar(100);not null" validate:"required"`
	City      string    `json:"city" gorm:"type:varchar(100);not null" validate:"required"`
	ZipCode   string    `json:"zipCode" gorm:"type:varchar(20);not null" validate:"required"`
	Phone     string    `json:"phone" gorm:"type:varchar(30);not null" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
