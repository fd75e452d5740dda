package repositories

import "superstore/internal/models"

// PromotionRepository defines the interface for promotion data access.
type PromotionRepository interface {
	Create(promotion *models.Promotion) error
	GetAll() ([]models.Promotion, error)
	GetByLabel(label string) (*models.Promotion, error)
	// GetActiveByLabel only matches promotions with remaining uses.
	GetActiveByLabel(label string) (*models.Promotion, error)
	Update(promotion *models.Promotion) error
	Delete(id uint) error
	// DecrementCount atomically consumes one use of the promotion with a
	// conditional update; it fails with a not-found error when the label
	// is unknown or no uses remain. The counter can never go below zero.
	DecrementCount(label string) (*models.Promotion, error)
}
