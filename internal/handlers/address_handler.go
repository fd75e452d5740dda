package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"superstore/internal/apperrors"
	"superstore/internal/middleware"
	"superstore/internal/models"
	"superstore/internal/services"
)

// AddressHandler handles HTTP requests for shipping addresses. Every
// route is owner-scoped: users only ever see their own addresses.
type AddressHandler struct {
	service  *services.AddressService
	validate *validator.Validate
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service *services.AddressService) *AddressHandler {
	return &AddressHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the authenticated address routes.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	addressRoutes := router.Group("/addresses")
	addressRoutes.Post("/", h.HandleCreateAddress)
	addressRoutes.Get("/", h.HandleGetAddresses)
	addressRoutes.Put("/:id", h.HandleUpdateAddress)
	addressRoutes.Delete("/:id", h.HandleDeleteAddress)
}

// ownedAddress loads the address and checks it belongs to the caller.
func (h *AddressHandler) ownedAddress(c *fiber.Ctx, id uint) (*models.Address, error) {
	address, err := h.service.GetByID(id)
	if err != nil {
		return nil, err
	}
	if address.UserID != middleware.UserID(c) {
		return nil, apperrors.ErrNotFound
	}
	return address, nil
}

// HandleCreateAddress creates a new address for the authenticated user.
func (h *AddressHandler) HandleCreateAddress(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(address); err != nil {
		return respondValidationErrors(c, err)
	}
	address.ID = 0
	address.UserID = middleware.UserID(c)

	if err := h.service.Create(&address); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

// HandleGetAddresses retrieves the authenticated user's addresses.
func (h *AddressHandler) HandleGetAddresses(c *fiber.Ctx) error {
	addresses, err := h.service.GetUserAddresses(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(addresses)
}

// HandleUpdateAddress updates one of the authenticated user's addresses.
func (h *AddressHandler) HandleUpdateAddress(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if _, err := h.ownedAddress(c, id); err != nil {
		return respondError(c, err)
	}

	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(address); err != nil {
		return respondValidationErrors(c, err)
	}
	address.ID = id
	address.UserID = middleware.UserID(c)

	if err := h.service.Update(&address); err != nil {
		return respondError(c, err)
	}
	return c.JSON(address)
}

// HandleDeleteAddress deletes one of the authenticated user's addresses.
func (h *AddressHandler) HandleDeleteAddress(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if _, err := h.ownedAddress(c, id); err != nil {
		return respondError(c, err)
	}

	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
