package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderState is the lifecycle state of an order.
type OrderState string

const (
	OrderStatePending   OrderState = "pending"
	OrderStatePaid      OrderState = "paid"
	OrderStateShipped   OrderState = "shipped"
	OrderStateDelivered OrderState = "delivered"
	OrderStateCancelled OrderState = "cancelled"
)

// Valid reports whether s is a known order state.
func (s OrderState) Valid() bool {
	switch s {
	case OrderStatePending, OrderStatePaid, OrderStateShipped, OrderStateDelivered, OrderStateCancelled:
		return true
	}
	return false
}

// OrderItem is a single line item within an order. UnitPrice is a snapshot
// of the product price at purchase time; later catalog changes do not
// affect past orders.
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"orderId" gorm:"index;not null"`
	ProductID uint            `json:"productId" gorm:"not null"`
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity" gorm:"not null" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2);not null"`
}

// Order represents a customer order. It owns its line items (cascade
// delete) and references, but does not own, the user and the address.
type Order struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"userId" gorm:"index;not null"`
	AddressID      uint            `json:"addressId" gorm:"not null"`
	Address        Address         `json:"address"`
	Items          []OrderItem     `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	State          OrderState      `json:"state" gorm:"type:varchar(20);not null"`
	PaymentMethod  string          `json:"paymentMethod" gorm:"type:varchar(50)"`
	DeliveryMethod string          `json:"deliveryMethod" gorm:"type:varchar(50)"`
	SubTotalPrice  decimal.Decimal `json:"subTotalPrice" gorm:"type:decimal(10,2);not null"`
	ShippingPrice  decimal.Decimal `json:"shippingPrice" gorm:"type:decimal(10,2);not null"`
	TaxesPrice     decimal.Decimal `json:"taxesPrice" gorm:"type:decimal(10,2);not null"`
	TotalPrice     decimal.Decimal `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
