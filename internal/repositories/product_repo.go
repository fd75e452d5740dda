package repositories

import "superstore/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(page, limit int) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	GetByIDs(ids []uint) ([]models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
