package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"superstore/internal/middleware"
	"superstore/internal/models"
	"superstore/internal/services"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public review routes.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Get("/product/:productId", h.HandleGetProductReviews)
}

// RegisterProtectedRoutes registers the routes requiring a valid token.
func (h *ReviewHandler) RegisterProtectedRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Post("/", h.HandleCreateReview)
}

// RegisterAdminRoutes registers the admin-only review routes.
func (h *ReviewHandler) RegisterAdminRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Delete("/:id", h.HandleDeleteReview)
}

// HandleGetProductReviews retrieves all reviews of a product.
func (h *ReviewHandler) HandleGetProductReviews(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return respondError(c, err)
	}

	reviews, err := h.service.GetForProduct(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reviews)
}

// HandleCreateReview stores a review from the authenticated user.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(review); err != nil {
		return respondValidationErrors(c, err)
	}
	review.ID = 0
	review.UserID = middleware.UserID(c)

	if err := h.service.Create(&review); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleDeleteReview deletes a review.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
