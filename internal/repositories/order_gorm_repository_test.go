package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"superstore/internal/apperrors"
	"superstore/internal/models"
	"superstore/internal/repositories"
)

func setupOrderDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Named shared-cache DSN so every pooled connection sees the same
	// in-memory database, isolated per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)
	assert.NoError(t, err)
	return db
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedOrder(t *testing.T, repo *repositories.GORMOrderRepository, userID, productID uint, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		UserID:         userID,
		AddressID:      1,
		Items:          []models.OrderItem{{ProductID: productID, Quantity: 1, UnitPrice: price("10.00")}},
		State:          models.OrderStatePending,
		PaymentMethod:  "card",
		DeliveryMethod: "standard",
		SubTotalPrice:  price("10.00"),
		ShippingPrice:  price("0.00"),
		TaxesPrice:     price("0.00"),
		TotalPrice:     price("10.00"),
		CreatedAt:      createdAt,
	}
	assert.NoError(t, repo.Create(order))
	return order
}

func TestGORMOrderRepository_GetByUser_NewestFirst(t *testing.T) {
	db := setupOrderDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	assert.NoError(t, db.Create(&models.Product{Name: "Test Laptop", Slug: "test-laptop", Price: price("10.00"), Images: []models.ProductImage{
		{URL: "https://img.example.com/2.jpg"},
		{URL: "https://img.example.com/1.jpg"},
	}}).Error)

	now := time.Now()
	older := seedOrder(t, repo, 3, 1, now.Add(-2*time.Hour))
	newer := seedOrder(t, repo, 3, 1, now.Add(-1*time.Hour))
	seedOrder(t, repo, 99, 1, now) // another user's order

	orders, err := repo.GetByUser(3)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)

	// Line items carry the product with images in ascending id order.
	assert.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Test Laptop", orders[0].Items[0].Product.Name)
	images := orders[0].Items[0].Product.Images
	assert.Len(t, images, 2)
	assert.Less(t, images[0].ID, images[1].ID)
}

func TestGORMOrderRepository_GetLastByUser(t *testing.T) {
	db := setupOrderDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	assert.NoError(t, db.Create(&models.Product{Name: "Test Laptop", Slug: "test-laptop", Price: price("10.00")}).Error)

	now := time.Now()
	seedOrder(t, repo, 3, 1, now.Add(-2*time.Hour))
	latest := seedOrder(t, repo, 3, 1, now.Add(-1*time.Hour))

	order, err := repo.GetLastByUser(3)
	assert.NoError(t, err)
	assert.Equal(t, latest.ID, order.ID)

	_, err = repo.GetLastByUser(404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGORMOrderRepository_GetAll_AscendingID(t *testing.T) {
	db := setupOrderDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	assert.NoError(t, db.Create(&models.Product{Name: "Test Laptop", Slug: "test-laptop", Price: price("10.00")}).Error)

	now := time.Now()
	// Creation timestamps deliberately run backwards; ids still win.
	first := seedOrder(t, repo, 3, 1, now)
	second := seedOrder(t, repo, 4, 1, now.Add(-time.Hour))

	orders, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, second.ID, orders[1].ID)
}

func TestGORMOrderRepository_CountReviewable(t *testing.T) {
	db := setupOrderDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	assert.NoError(t, db.Create(&models.Product{Name: "Test Laptop", Slug: "test-laptop", Price: price("10.00")}).Error)

	// No purchase: nothing to review.
	count, err := repo.CountReviewable(1, 3)
	assert.NoError(t, err)
	assert.Zero(t, count)

	seedOrder(t, repo, 3, 1, time.Now())

	// Purchased and not yet reviewed.
	count, err = repo.CountReviewable(1, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Another user's review does not block this user.
	assert.NoError(t, db.Create(&models.Review{UserID: 99, ProductID: 1, Rating: 5}).Error)
	count, err = repo.CountReviewable(1, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The user's own review closes the window immediately.
	assert.NoError(t, db.Create(&models.Review{UserID: 3, ProductID: 1, Rating: 4}).Error)
	count, err = repo.CountReviewable(1, 3)
	assert.NoError(t, err)
	assert.Zero(t, count)
}

func TestGORMOrderRepository_Delete_RemovesItems(t *testing.T) {
	db := setupOrderDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	assert.NoError(t, db.Create(&models.Product{Name: "Test Laptop", Slug: "test-laptop", Price: price("10.00")}).Error)

	order := seedOrder(t, repo, 3, 1, time.Now())
	assert.NoError(t, repo.Delete(order.ID))

	_, err := repo.GetByID(order.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var itemCount int64
	assert.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)

	assert.ErrorIs(t, repo.Delete(order.ID), apperrors.ErrNotFound)
}
