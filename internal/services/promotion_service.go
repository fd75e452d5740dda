package services

import (
	"fmt"

	"superstore/internal/apperrors"
	"superstore/internal/models"
	"superstore/internal/repositories"
)

// PromotionService handles business logic for discount codes.
type PromotionService struct {
	repo repositories.PromotionRepository
}

// NewPromotionService creates a new PromotionService.
func NewPromotionService(repo repositories.PromotionRepository) *PromotionService {
	return &PromotionService{repo: repo}
}

// Create creates a new promotion. The label must be unique; the check
// here gives a friendly error and the unique index on the label column
// closes the remaining race window.
func (s *PromotionService) Create(promotion *models.Promotion) error {
	if existing, err := s.repo.GetByLabel(promotion.Label); err == nil && existing != nil {
		return apperrors.NewConflict("promotion with label %s already exists", promotion.Label)
	}
	return s.repo.Create(promotion)
}

// GetAll retrieves all promotions.
func (s *PromotionService) GetAll() ([]models.Promotion, error) {
	return s.repo.GetAll()
}

// CheckCode returns the promotion for label when it exists and still has
// remaining uses; otherwise it fails with a not-found error.
func (s *PromotionService) CheckCode(label string) (*models.Promotion, error) {
	promotion, err := s.repo.GetActiveByLabel(label)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("invalid promotion code: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return promotion, nil
}

// UseCode redeems one use of the promotion. Redemption is not
// idempotent: applying the same code again consumes another use. The
// decrement is a conditional update at the storage layer, so the counter
// never drops below zero and concurrent redemptions of the last use
// resolve to exactly one winner.
func (s *PromotionService) UseCode(label string) (*models.Promotion, error) {
	if _, err := s.CheckCode(label); err != nil {
		return nil, err
	}
	promotion, err := s.repo.DecrementCount(label)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("invalid promotion code: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return promotion, nil
}

// Update overwrites an existing promotion.
func (s *PromotionService) Update(id uint, promotion *models.Promotion) error {
	promotion.ID = id
	return s.repo.Update(promotion)
}

// Delete removes a promotion by its ID.
func (s *PromotionService) Delete(id uint) error {
	return s.repo.Delete(id)
}
