package services

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"superstore/internal/apperrors"
	"superstore/internal/models"
	"superstore/internal/repositories"
	"superstore/pkg/stripe"
)

// PromotionRedeemer is the slice of the promotion service the checkout
// flow needs.
type PromotionRedeemer interface {
	CheckCode(label string) (*models.Promotion, error)
	UseCode(label string) (*models.Promotion, error)
}

// CartItem is a line of the submitted cart. The client never supplies a
// price; unit prices are always read from the catalog at request time.
type CartItem struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// Checkout is the input of order creation. The address is structonly:
// an existing address is referenced by id alone, so its fields are only
// validated when a new one is being created.
type Checkout struct {
	UserID         uint            `json:"-"`
	Items          []CartItem      `json:"items" validate:"required,min=1,dive"`
	Address        models.Address  `json:"address" validate:"structonly"`
	PaymentMethod  string          `json:"paymentMethod" validate:"required"`
	DeliveryMethod string          `json:"deliveryMethod" validate:"required"`
	PromotionCode  string          `json:"promotionCode"`
	ShippingPrice  decimal.Decimal `json:"shippingPrice"`
	TaxesPrice     decimal.Decimal `json:"taxesPrice"`
}

// OrderService assembles orders: it computes the total from the cart,
// charges the payment gateway and persists the order only on success.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	addresses   *AddressService
	promotions  PromotionRedeemer
	gateway     PaymentGateway
	publisher   EventPublisher
	currency    string
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	addresses *AddressService,
	promotions PromotionRedeemer,
	gateway PaymentGateway,
	publisher EventPublisher,
	currency string,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		addresses:   addresses,
		promotions:  promotions,
		gateway:     gateway,
		publisher:   publisher,
		currency:    currency,
	}
}

// Create runs the checkout flow: price the cart from the catalog, redeem
// the promotion code if one was given, authorize the charge, then
// resolve the address and persist the order with its line items in one
// transaction. A payment status other than succeeded fails the request
// with ErrPaymentDeclined and leaves nothing behind: no order, no line
// items, no new address row. Payment decline is terminal for the
// request; there is no retry.
func (s *OrderService) Create(ctx context.Context, checkout Checkout) (*models.Order, error) {
	if len(checkout.Items) == 0 {
		return nil, apperrors.NewValidation("items", "at least one item is required")
	}
	if checkout.ShippingPrice.IsNegative() || checkout.TaxesPrice.IsNegative() {
		return nil, apperrors.NewValidation("shippingPrice", "prices must be non-negative")
	}

	// Price every line from the catalog. Client-supplied prices are never
	// trusted.
	var subTotal decimal.Decimal
	items := make([]models.OrderItem, 0, len(checkout.Items))
	for _, item := range checkout.Items {
		if item.Quantity <= 0 {
			return nil, apperrors.NewValidation("items", "quantity must be positive")
		}
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, err)
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		subTotal = subTotal.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	// Redeem the promotion before charging. Redemption is a conditional
	// decrement: the counter never goes negative and a raced last use has
	// exactly one winner.
	if checkout.PromotionCode != "" {
		promotion, err := s.promotions.UseCode(checkout.PromotionCode)
		if err != nil {
			return nil, err
		}
		subTotal = subTotal.Sub(promotion.Amount)
		if subTotal.IsNegative() {
			subTotal = decimal.Zero
		}
	}

	amountCents := subTotal.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	intent, err := s.gateway.CreatePaymentIntent(ctx, amountCents, s.currency)
	if err != nil {
		return nil, fmt.Errorf("payment authorization failed: %w", err)
	}
	if intent.Status != stripe.StatusSucceeded {
		return nil, fmt.Errorf("payment intent %s has status %s: %w", intent.ID, intent.Status, apperrors.ErrPaymentDeclined)
	}

	address, err := s.resolveAddress(checkout)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:         checkout.UserID,
		AddressID:      address.ID,
		Items:          items,
		State:          models.OrderStatePending,
		PaymentMethod:  checkout.PaymentMethod,
		DeliveryMethod: checkout.DeliveryMethod,
		SubTotalPrice:  subTotal,
		ShippingPrice:  checkout.ShippingPrice,
		TaxesPrice:     checkout.TaxesPrice,
		TotalPrice:     subTotal.Add(checkout.ShippingPrice).Add(checkout.TaxesPrice),
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(order.ID, order.UserID, order.TotalPrice); err != nil {
			log.Printf("Warning: failed to publish order created event for order %d: %v", order.ID, err)
		}
	}

	return order, nil
}

// resolveAddress reuses the referenced address or creates a new one from
// the submitted payload when no id was given.
func (s *OrderService) resolveAddress(checkout Checkout) (*models.Address, error) {
	if checkout.Address.ID != 0 {
		address, err := s.addresses.GetByID(checkout.Address.ID)
		if err != nil {
			return nil, err
		}
		if address.UserID != checkout.UserID {
			return nil, fmt.Errorf("address %d does not belong to user %d: %w", address.ID, checkout.UserID, apperrors.ErrNotFound)
		}
		return address, nil
	}

	address := checkout.Address
	address.UserID = checkout.UserID
	if err := s.addresses.Create(&address); err != nil {
		return nil, err
	}
	return &address, nil
}

// FindAll retrieves all orders ordered by ascending id.
func (s *OrderService) FindAll() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// UpdateState overwrites the order state. Any known state is reachable
// from any other; only unknown values are rejected.
func (s *OrderService) UpdateState(id uint, state models.OrderState) (*models.Order, error) {
	if !state.Valid() {
		return nil, apperrors.NewValidation("state", fmt.Sprintf("unknown order state %q", state))
	}
	if err := s.orderRepo.UpdateState(id, state); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(id)
}

// Remove hard-deletes an order and its line items.
func (s *OrderService) Remove(id uint) error {
	return s.orderRepo.Delete(id)
}

// GetLastOrder retrieves the most recent order of a user.
func (s *OrderService) GetLastOrder(userID uint) (*models.Order, error) {
	return s.orderRepo.GetLastByUser(userID)
}

// GetUserOrders retrieves a user's orders newest first with line items,
// products and images resolved.
func (s *OrderService) GetUserOrders(userID uint) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// UserCanAddReview reports whether the user has ordered the product and
// has not reviewed it yet.
func (s *OrderService) UserCanAddReview(productID, userID uint) (bool, error) {
	count, err := s.orderRepo.CountReviewable(productID, userID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
