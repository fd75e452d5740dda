package services

import (
	"strings"

	"superstore/internal/models"
	"superstore/internal/repositories"
)

// AddressService handles business logic for shipping addresses.
type AddressService struct {
	repo repositories.AddressRepository
}

// NewAddressService creates a new AddressService.
func NewAddressService(repo repositories.AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

// normalize trims whitespace from every field and nulls out empty
// optional fields before persistence.
func normalize(address *models.Address) {
	address.Address = strings.TrimSpace(address.Address)
	address.Country = strings.TrimSpace(address.Country)
	address.City = strings.TrimSpace(address.City)
	address.ZipCode = strings.TrimSpace(address.ZipCode)
	address.Phone = strings.TrimSpace(address.Phone)
	address.Company = normalizeOptional(address.Company)
	address.Apartment = normalizeOptional(address.Apartment)
}

func normalizeOptional(field *string) *string {
	if field == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*field)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Create normalizes and persists a new address.
func (s *AddressService) Create(address *models.Address) error {
	normalize(address)
	return s.repo.Create(address)
}

// GetUserAddresses retrieves all addresses owned by a user.
func (s *AddressService) GetUserAddresses(userID uint) ([]models.Address, error) {
	return s.repo.GetByUser(userID)
}

// GetByID retrieves a single address.
func (s *AddressService) GetByID(id uint) (*models.Address, error) {
	return s.repo.GetByID(id)
}

// Update normalizes and persists changes to an existing address.
func (s *AddressService) Update(address *models.Address) error {
	normalize(address)
	return s.repo.Update(address)
}

// Delete removes an address by its ID.
func (s *AddressService) Delete(id uint) error {
	return s.repo.Delete(id)
}
