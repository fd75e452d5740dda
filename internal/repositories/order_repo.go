package repositories

import "superstore/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create persists the order and its line items as one atomic unit.
	Create(order *models.Order) error
	GetAll() ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	UpdateState(id uint, state models.OrderState) error
	Delete(id uint) error
	GetLastByUser(userID uint) (*models.Order, error)
	GetByUser(userID uint) ([]models.Order, error)
	// CountReviewable counts the user's ordered line items for the product
	// that the user has not reviewed yet.
	CountReviewable(productID, userID uint) (int64, error)
}
