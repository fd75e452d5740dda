package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"superstore/internal/models"
	"superstore/internal/services"
)

// PromotionHandler handles HTTP requests for discount codes.
type PromotionHandler struct {
	service  *services.PromotionService
	validate *validator.Validate
}

// NewPromotionHandler creates a new PromotionHandler.
func NewPromotionHandler(service *services.PromotionService) *PromotionHandler {
	return &PromotionHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the authenticated promotion routes: checking
// and redeeming a code during checkout.
func (h *PromotionHandler) RegisterRoutes(router fiber.Router) {
	promotionRoutes := router.Group("/promotions")
	promotionRoutes.Post("/check", h.HandleCheckCode)
	promotionRoutes.Post("/use", h.HandleUseCode)
}

// RegisterAdminRoutes registers the admin-only promotion management routes.
func (h *PromotionHandler) RegisterAdminRoutes(router fiber.Router) {
	promotionRoutes := router.Group("/promotions")
	promotionRoutes.Post("/", h.HandleCreatePromotion)
	promotionRoutes.Get("/", h.HandleGetPromotions)
	promotionRoutes.Put("/:id", h.HandleUpdatePromotion)
	promotionRoutes.Delete("/:id", h.HandleDeletePromotion)
}

// codeRequest is the body of check and use requests.
type codeRequest struct {
	Label string `json:"label" validate:"required"`
}

// HandleCreatePromotion creates a new promotion.
func (h *PromotionHandler) HandleCreatePromotion(c *fiber.Ctx) error {
	var promotion models.Promotion
	if err := c.BodyParser(&promotion); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(promotion); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.Create(&promotion); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(promotion)
}

// HandleGetPromotions retrieves all promotions.
func (h *PromotionHandler) HandleGetPromotions(c *fiber.Ctx) error {
	promotions, err := h.service.GetAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(promotions)
}

// HandleCheckCode validates a promotion code without consuming a use.
func (h *PromotionHandler) HandleCheckCode(c *fiber.Ctx) error {
	var req codeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	promotion, err := h.service.CheckCode(req.Label)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(promotion)
}

// HandleUseCode redeems one use of a promotion code.
func (h *PromotionHandler) HandleUseCode(c *fiber.Ctx) error {
	var req codeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	promotion, err := h.service.UseCode(req.Label)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(promotion)
}

// HandleUpdatePromotion overwrites an existing promotion.
func (h *PromotionHandler) HandleUpdatePromotion(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var promotion models.Promotion
	if err := c.BodyParser(&promotion); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(promotion); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.Update(id, &promotion); err != nil {
		return respondError(c, err)
	}
	return c.JSON(promotion)
}

// HandleDeletePromotion deletes a promotion.
func (h *PromotionHandler) HandleDeletePromotion(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
