package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"superstore/internal/apperrors"
	"superstore/internal/models"
	"superstore/internal/services"
	"superstore/pkg/stripe"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAll() ([]models.Order, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateState(id uint, state models.OrderState) error {
	args := m.Called(id, state)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockOrderRepository) GetLastByUser(userID uint) (*models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByUser(userID uint) ([]models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) CountReviewable(productID, userID uint) (int64, error) {
	args := m.Called(productID, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(page, limit int) ([]models.Product, error) {
	args := m.Called(page, limit)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ids []uint) ([]models.Product, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySlug(slug string) (*models.Product, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAddressRepository is a mock implementation of repositories.AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) Create(address *models.Address) error {
	args := m.Called(address)
	return args.Error(0)
}

func (m *MockAddressRepository) GetByUser(userID uint) ([]models.Address, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Address), args.Error(1)
}

func (m *MockAddressRepository) GetByID(id uint) (*models.Address, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Address), args.Error(1)
}

func (m *MockAddressRepository) Update(address *models.Address) error {
	args := m.Called(address)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPromotionRedeemer is a mock implementation of services.PromotionRedeemer
type MockPromotionRedeemer struct {
	mock.Mock
}

func (m *MockPromotionRedeemer) CheckCode(label string) (*models.Promotion, error) {
	args := m.Called(label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Promotion), args.Error(1)
}

func (m *MockPromotionRedeemer) UseCode(label string) (*models.Promotion, error) {
	args := m.Called(label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Promotion), args.Error(1)
}

// MockPaymentGateway is a mock implementation of services.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*stripe.PaymentIntent, error) {
	args := m.Called(ctx, amount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.PaymentIntent), args.Error(1)
}

func newOrderService(
	orderRepo *MockOrderRepository,
	productRepo *MockProductRepository,
	addressRepo *MockAddressRepository,
	promotions *MockPromotionRedeemer,
	gateway *MockPaymentGateway,
) *services.OrderService {
	addressService := services.NewAddressService(addressRepo)
	return services.NewOrderService(orderRepo, productRepo, addressService, promotions, gateway, nil, "eur")
}

func TestOrderService_Create_ChargesServerPrices(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	addressRepo := new(MockAddressRepository)
	promotions := new(MockPromotionRedeemer)
	gateway := new(MockPaymentGateway)
	service := newOrderService(orderRepo, productRepo, addressRepo, promotions, gateway)

	productRepo.On("GetByID", uint(1)).
		Return(&models.Product{ID: 1, Name: "Test Laptop", Price: decimal.RequireFromString("10.00")}, nil).Once()

	// The charged amount must come from the catalog price: 2 x 10.00 = 2000 cents.
	gateway.On("CreatePaymentIntent", mock.Anything, int64(2000), "eur").
		Return(&stripe.PaymentIntent{ID: "pi_1", Status: stripe.StatusSucceeded, Amount: 2000}, nil).Once()

	addressRepo.On("Create", mock.AnythingOfType("*models.Address")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Address).ID = 7
		}).Return(nil).Once()

	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Order).ID = 42
		}).Return(nil).Once()

	order, err := service.Create(context.Background(), services.Checkout{
		UserID:         3,
		Items:          []services.CartItem{{ProductID: 1, Quantity: 2}},
		Address:        models.Address{Address: "1 Main St", Country: "FR", City: "Paris", ZipCode: "75001", Phone: "0123456789"},
		PaymentMethod:  "card",
		DeliveryMethod: "standard",
		ShippingPrice:  decimal.RequireFromString("4.99"),
		TaxesPrice:     decimal.RequireFromString("2.00"),
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(42), order.ID)
	assert.Equal(t, uint(7), order.AddressID)
	assert.Equal(t, models.OrderStatePending, order.State)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, order.SubTotalPrice.Equal(decimal.RequireFromString("20.00")))
	// total = subtotal + shipping + taxes, always.
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("26.99")))

	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	addressRepo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestOrderService_Create_PaymentDeclined(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	addressRepo := new(MockAddressRepository)
	promotions := new(MockPromotionRedeemer)
	gateway := new(MockPaymentGateway)
	service := newOrderService(orderRepo, productRepo, addressRepo, promotions, gateway)

	productRepo.On("GetByID", uint(1)).
		Return(&models.Product{ID: 1, Price: decimal.RequireFromString("10.00")}, nil).Once()
	gateway.On("CreatePaymentIntent", mock.Anything, int64(2000), "eur").
		Return(&stripe.PaymentIntent{ID: "pi_2", Status: "requires_payment_method"}, nil).Once()

	_, err := service.Create(context.Background(), services.Checkout{
		UserID:         3,
		Items:          []services.CartItem{{ProductID: 1, Quantity: 2}},
		Address:        models.Address{Address: "1 Main St", Country: "FR", City: "Paris", ZipCode: "75001", Phone: "0123456789"},
		PaymentMethod:  "card",
		DeliveryMethod: "standard",
	})

	assert.ErrorIs(t, err, apperrors.ErrPaymentDeclined)
	// Nothing persisted: no order row, no address row.
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
	addressRepo.AssertNotCalled(t, "Create", mock.Anything)
	gateway.AssertExpectations(t)
}

func TestOrderService_Create_AppliesPromotionDiscount(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	addressRepo := new(MockAddressRepository)
	promotions := new(MockPromotionRedeemer)
	gateway := new(MockPaymentGateway)
	service := newOrderService(orderRepo, productRepo, addressRepo, promotions, gateway)

	productRepo.On("GetByID", uint(1)).
		Return(&models.Product{ID: 1, Price: decimal.RequireFromString("10.00")}, nil).Once()
	promotions.On("UseCode", "SAVE5").
		Return(&models.Promotion{ID: 1, Label: "SAVE5", Amount: decimal.RequireFromString("5.00"), Count: 0}, nil).Once()
	// 2 x 10.00 - 5.00 = 15.00 -> 1500 cents.
	gateway.On("CreatePaymentIntent", mock.Anything, int64(1500), "eur").
		Return(&stripe.PaymentIntent{ID: "pi_3", Status: stripe.StatusSucceeded}, nil).Once()
	addressRepo.On("Create", mock.AnythingOfType("*models.Address")).Return(nil).Once()
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	order, err := service.Create(context.Background(), services.Checkout{
		UserID:         3,
		Items:          []services.CartItem{{ProductID: 1, Quantity: 2}},
		Address:        models.Address{Address: "1 Main St", Country: "FR", City: "Paris", ZipCode: "75001", Phone: "0123456789"},
		PaymentMethod:  "card",
		DeliveryMethod: "standard",
		PromotionCode:  "SAVE5",
	})

	assert.NoError(t, err)
	assert.True(t, order.SubTotalPrice.Equal(decimal.RequireFromString("15.00")))
	promotions.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestOrderService_Create_ExhaustedPromotion(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	addressRepo := new(MockAddressRepository)
	promotions := new(MockPromotionRedeemer)
	gateway := new(MockPaymentGateway)
	service := newOrderService(orderRepo, productRepo, addressRepo, promotions, gateway)

	productRepo.On("GetByID", uint(1)).
		Return(&models.Product{ID: 1, Price: decimal.RequireFromString("10.00")}, nil).Once()
	promotions.On("UseCode", "GONE").
		Return(nil, fmt.Errorf("invalid promotion code: %w", apperrors.ErrNotFound)).Once()

	_, err := service.Create(context.Background(), services.Checkout{
		UserID:         3,
		Items:          []services.CartItem{{ProductID: 1, Quantity: 2}},
		Address:        models.Address{Address: "1 Main St", Country: "FR", City: "Paris", ZipCode: "75001", Phone: "0123456789"},
		PaymentMethod:  "card",
		DeliveryMethod: "standard",
		PromotionCode:  "GONE",
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	// Checkout never reached the gateway.
	gateway.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_Create_ReusesExistingAddress(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	addressRepo := new(MockAddressRepository)
	promotions := new(MockPromotionRedeemer)
	gateway := new(MockPaymentGateway)
	service := newOrderService(orderRepo, productRepo, addressRepo, promotions, gateway)

	productRepo.On("GetByID", uint(1)).
		Return(&models.Product{ID: 1, Price: decimal.RequireFromString("10.00")}, nil).Once()
	gateway.On("CreatePaymentIntent", mock.Anything, int64(1000), "eur").
		Return(&stripe.PaymentIntent{ID: "pi_4", Status: stripe.StatusSucceeded}, nil).Once()
	addressRepo.On("GetByID", uint(9)).
		Return(&models.Address{ID: 9, UserID: 3}, nil).Once()
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	order, err := service.Create(context.Background(), services.Checkout{
		UserID:         3,
		Items:          []services.CartItem{{ProductID: 1, Quantity: 1}},
		Address:        models.Address{ID: 9},
		PaymentMethod:  "card",
		DeliveryMethod: "standard",
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(9), order.AddressID)
	addressRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_Create_RejectsForeignAddress(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	addressRepo := new(MockAddressRepository)
	promotions := new(MockPromotionRedeemer)
	gateway := new(MockPaymentGateway)
	service := newOrderService(orderRepo, productRepo, addressRepo, promotions, gateway)

	productRepo.On("GetByID", uint(1)).
		Return(&models.Product{ID: 1, Price: decimal.RequireFromString("10.00")}, nil).Once()
	gateway.On("CreatePaymentIntent", mock.Anything, int64(1000), "eur").
		Return(&stripe.PaymentIntent{ID: "pi_5", Status: stripe.StatusSucceeded}, nil).Once()
	addressRepo.On("GetByID", uint(9)).
		Return(&models.Address{ID: 9, UserID: 99}, nil).Once()

	_, err := service.Create(context.Background(), services.Checkout{
		UserID:         3,
		Items:          []services.CartItem{{ProductID: 1, Quantity: 1}},
		Address:        models.Address{ID: 9},
		PaymentMethod:  "card",
		DeliveryMethod: "standard",
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_Create_EmptyCart(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	addressRepo := new(MockAddressRepository)
	promotions := new(MockPromotionRedeemer)
	gateway := new(MockPaymentGateway)
	service := newOrderService(orderRepo, productRepo, addressRepo, promotions, gateway)

	_, err := service.Create(context.Background(), services.Checkout{UserID: 3})

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "items", validationErr.Field)
}

func TestOrderService_UpdateState(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	addressRepo := new(MockAddressRepository)
	promotions := new(MockPromotionRedeemer)
	gateway := new(MockPaymentGateway)
	service := newOrderService(orderRepo, productRepo, addressRepo, promotions, gateway)

	// Any known state is reachable from any other.
	orderRepo.On("UpdateState", uint(1), models.OrderStateCancelled).Return(nil).Once()
	orderRepo.On("GetByID", uint(1)).
		Return(&models.Order{ID: 1, State: models.OrderStateCancelled}, nil).Once()

	order, err := service.UpdateState(1, models.OrderStateCancelled)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStateCancelled, order.State)
	orderRepo.AssertExpectations(t)

	// Unknown values are rejected before touching the repository.
	_, err = service.UpdateState(1, models.OrderState("lost"))
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestOrderService_UserCanAddReview(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	addressRepo := new(MockAddressRepository)
	promotions := new(MockPromotionRedeemer)
	gateway := new(MockPaymentGateway)
	service := newOrderService(orderRepo, productRepo, addressRepo, promotions, gateway)

	orderRepo.On("CountReviewable", uint(5), uint(3)).Return(int64(1), nil).Once()
	canReview, err := service.UserCanAddReview(5, 3)
	assert.NoError(t, err)
	assert.True(t, canReview)

	orderRepo.On("CountReviewable", uint(5), uint(3)).Return(int64(0), nil).Once()
	canReview, err = service.UserCanAddReview(5, 3)
	assert.NoError(t, err)
	assert.False(t, canReview)
	orderRepo.AssertExpectations(t)
}
