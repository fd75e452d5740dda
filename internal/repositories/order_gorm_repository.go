package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"superstore/internal/apperrors"
	"superstore/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create persists the order and its line items in a single transaction.
// GORM inserts the Items rows alongside the order row; if any insert
// fails the whole transaction rolls back. The referenced address and
// products are deliberately omitted; orders point at them, they never
// write them.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Address", "Items.Product").Create(order).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetAll retrieves all orders ordered by ascending id.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("id ASC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its line items.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// UpdateState overwrites the lifecycle state of an order.
func (r *GORMOrderRepository) UpdateState(id uint, state models.OrderState) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("state", state)
	if res.Error != nil {
		return fmt.Errorf("failed to update order state: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// Delete hard-deletes an order and its line items.
func (r *GORMOrderRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// SQLite does not enforce the cascade constraint by default, so the
		// items are removed explicitly.
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order with ID %d: %w", id, apperrors.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// GetLastByUser retrieves the most recent order of a user.
func (r *GORMOrderRepository) GetLastByUser(userID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no orders for user %d: %w", userID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get last order for user %d: %w", userID, err)
	}
	return &order, nil
}

// GetByUser retrieves a user's orders newest first, with line items,
// products and product images (ascending id) eagerly loaded.
func (r *GORMOrderRepository) GetByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for user %d: %w", userID, err)
	}
	return orders, nil
}

// CountReviewable joins the user's orders to their line items for the
// product and left-joins the user's review of it; rows with no matching
// review are the purchases still open for review.
func (r *GORMOrderRepository) CountReviewable(productID, userID uint) (int64, error) {
	var count int64
	err := r.db.Table("orders").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("LEFT JOIN reviews ON reviews.product_id = order_items.product_id AND reviews.user_id = ?", userID).
		Where("orders.user_id = ? AND order_items.product_id = ? AND reviews.id IS NULL", userID, productID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reviewable purchases: %w", err)
	}
	return count, nil
}
