package services

import (
	"strings"

	"superstore/internal/models"
	"superstore/internal/repositories"
)

// ProductService handles business logic related to the product catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// slugify derives a URL slug from the product name.
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

// GetAll retrieves a page of products.
func (s *ProductService) GetAll(page, limit int) ([]models.Product, error) {
	return s.repo.GetAll(page, limit)
}

// GetByID retrieves a single product by its ID.
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetByIDs retrieves the products matching the given ids.
func (s *ProductService) GetByIDs(ids []uint) ([]models.Product, error) {
	return s.repo.GetByIDs(ids)
}

// GetBySlug retrieves a single product by its slug.
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	return s.repo.GetBySlug(slug)
}

// Create creates a new product, deriving a slug when none was given.
func (s *ProductService) Create(product *models.Product) error {
	if product.Slug == "" {
		product.Slug = slugify(product.Name)
	}
	return s.repo.Create(product)
}

// Update updates an existing product.
func (s *ProductService) Update(product *models.Product) error {
	if product.Slug == "" {
		product.Slug = slugify(product.Name)
	}
	return s.repo.Update(product)
}

// Delete deletes a product by its ID.
func (s *ProductService) Delete(id uint) error {
	return s.repo.Delete(id)
}
