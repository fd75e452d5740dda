package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"superstore/internal/middleware"
	"superstore/internal/models"
	"superstore/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the authenticated order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/me", h.HandleGetMyOrders)
	orderRoutes.Get("/last", h.HandleGetLastOrder)
	orderRoutes.Get("/can-review/:productId", h.HandleCanReview)
}

// RegisterAdminRoutes registers the admin-only order routes.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Patch("/:id/state", h.HandleUpdateOrderState)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// HandleCreateOrder runs the checkout flow for the authenticated user.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var checkout services.Checkout
	if err := c.BodyParser(&checkout); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(checkout); err != nil {
		return respondValidationErrors(c, err)
	}
	// The address fields are only required when no existing address is
	// referenced; a bare id reuses a saved one.
	if checkout.Address.ID == 0 {
		if err := h.validate.Struct(checkout.Address); err != nil {
			return respondValidationErrors(c, err)
		}
	}
	checkout.UserID = middleware.UserID(c)

	order, err := h.service.Create(c.UserContext(), checkout)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrders retrieves all orders, id ascending.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetMyOrders retrieves the authenticated user's orders, newest
// first, with line items and product images resolved.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetUserOrders(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetLastOrder retrieves the authenticated user's most recent order.
func (h *OrderHandler) HandleGetLastOrder(c *fiber.Ctx) error {
	order, err := h.service.GetLastOrder(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleCanReview reports whether the authenticated user may review the
// product.
func (h *OrderHandler) HandleCanReview(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return respondError(c, err)
	}

	canReview, err := h.service.UserCanAddReview(productID, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"canAddReview": canReview,
	})
}

// HandleUpdateOrderState overwrites the lifecycle state of an order.
func (h *OrderHandler) HandleUpdateOrderState(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		State models.OrderState `json:"state" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	order, err := h.service.UpdateState(id, req.State)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleDeleteOrder hard-deletes an order.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.Remove(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
