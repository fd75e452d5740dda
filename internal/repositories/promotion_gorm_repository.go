package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"superstore/internal/apperrors"
	"superstore/internal/models"
)

// GORMPromotionRepository is a GORM implementation of PromotionRepository.
type GORMPromotionRepository struct {
	db *gorm.DB
}

// NewGORMPromotionRepository creates a new instance of GORMPromotionRepository.
func NewGORMPromotionRepository(db *gorm.DB) *GORMPromotionRepository {
	return &GORMPromotionRepository{db: db}
}

// Create creates a new promotion in the database. The unique index on
// label backs up the service-level duplicate check.
func (r *GORMPromotionRepository) Create(promotion *models.Promotion) error {
	if err := r.db.Create(promotion).Error; err != nil {
		return fmt.Errorf("failed to create promotion: %w", err)
	}
	return nil
}

// GetAll retrieves all promotions ordered by ascending id.
func (r *GORMPromotionRepository) GetAll() ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := r.db.Order("id ASC").Find(&promotions).Error; err != nil {
		return nil, fmt.Errorf("failed to get all promotions: %w", err)
	}
	return promotions, nil
}

// GetByLabel retrieves a promotion by its label regardless of remaining uses.
func (r *GORMPromotionRepository) GetByLabel(label string) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.First(&promotion, "label = ?", label).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("promotion with label %s: %w", label, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get promotion by label %s: %w", label, err)
	}
	return &promotion, nil
}

// GetActiveByLabel retrieves a promotion by label with remaining uses > 0.
func (r *GORMPromotionRepository) GetActiveByLabel(label string) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.First(&promotion, "label = ? AND count > 0", label).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("promotion with label %s: %w", label, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get active promotion by label %s: %w", label, err)
	}
	return &promotion, nil
}

// Update updates an existing promotion in the database.
func (r *GORMPromotionRepository) Update(promotion *models.Promotion) error {
	res := r.db.Save(promotion)
	if res.Error != nil {
		return fmt.Errorf("failed to update promotion: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("promotion with ID %d: %w", promotion.ID, apperrors.ErrNotFound)
	}
	return nil
}

// Delete deletes a promotion by its ID.
func (r *GORMPromotionRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Promotion{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete promotion: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("promotion with ID %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// DecrementCount consumes one use with a single conditional update:
//
//	UPDATE promotions SET count = count - 1 WHERE label = ? AND count > 0
//
// The WHERE clause is the serialization point; when two redemptions race
// for the last remaining use, exactly one sees an affected row.
func (r *GORMPromotionRepository) DecrementCount(label string) (*models.Promotion, error) {
	res := r.db.Model(&models.Promotion{}).
		Where("label = ? AND count > 0", label).
		UpdateColumn("count", gorm.Expr("count - 1"))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to decrement promotion %s: %w", label, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("promotion with label %s has no remaining uses: %w", label, apperrors.ErrNotFound)
	}
	return r.GetByLabel(label)
}
