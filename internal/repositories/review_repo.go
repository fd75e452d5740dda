package repositories

import "superstore/internal/models"

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByProduct(productID uint) ([]models.Review, error)
	GetByID(id uint) (*models.Review, error)
	Delete(id uint) error
}
