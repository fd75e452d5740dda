package services

import (
	"superstore/internal/apperrors"
	"superstore/internal/models"
	"superstore/internal/repositories"
)

// ReviewEligibility decides whether a user may review a product.
type ReviewEligibility interface {
	UserCanAddReview(productID, userID uint) (bool, error)
}

// ReviewService handles business logic for product reviews.
type ReviewService struct {
	repo        repositories.ReviewRepository
	eligibility ReviewEligibility
}

// NewReviewService creates a new ReviewService.
func NewReviewService(repo repositories.ReviewRepository, eligibility ReviewEligibility) *ReviewService {
	return &ReviewService{repo: repo, eligibility: eligibility}
}

// Create stores a review after checking that the user has ordered the
// product and has not reviewed it yet.
func (s *ReviewService) Create(review *models.Review) error {
	allowed, err := s.eligibility.UserCanAddReview(review.ProductID, review.UserID)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.NewConflict("you can only review products you have ordered and not reviewed yet")
	}
	return s.repo.Create(review)
}

// GetForProduct retrieves all reviews of a product.
func (s *ReviewService) GetForProduct(productID uint) ([]models.Review, error) {
	return s.repo.GetByProduct(productID)
}

// Delete removes a review by its ID.
func (s *ReviewService) Delete(id uint) error {
	return s.repo.Delete(id)
}
