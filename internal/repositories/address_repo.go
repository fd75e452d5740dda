package repositories

import "superstore/internal/models"

// AddressRepository defines the interface for address data access.
type AddressRepository interface {
	Create(address *models.Address) error
	GetByUser(userID uint) ([]models.Address, error)
	GetByID(id uint) (*models.Address, error)
	Update(address *models.Address) error
	Delete(id uint) error
}
