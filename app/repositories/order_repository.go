package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/popays/backend/app/models"
)

// OrderRepository handles database operations for orders.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists a new order, generating its external identifier.
// The identifier is immutable afterwards.
func (r *OrderRepository) Create(order *models.Order) error {
	order.OrderID = uuid.NewString()
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("store: create order: %w", err)
	}
	return nil
}

// List returns orders newest-first. An empty status returns all orders;
// otherwise only orders with that exact status.
func (r *OrderRepository) List(status string) ([]models.Order, error) {
	q := r.db.Model(&models.Order{}).Order("created_at DESC, id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("store: list orders: %w", err)
	}
	return orders, nil
}

// Recent returns the newest n orders.
func (r *OrderRepository) Recent(n int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Model(&models.Order{}).
		Order("created_at DESC, id DESC").
		Limit(n).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("store: recent orders: %w", err)
	}
	return orders, nil
}

// FindByOrderID looks up an order by its external identifier.
func (r *OrderRepository) FindByOrderID(orderID string) (models.Order, error) {
	var order models.Order
	err := r.db.Where("order_id = ?", orderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return order, ErrNotFound
	}
	if err != nil {
		return order, fmt.Errorf("store: find order %s: %w", orderID, err)
	}
	return order, nil
}

// UpdateStatus sets the status of the order identified by its external id.
func (r *OrderRepository) UpdateStatus(orderID, status string) error {
	res := r.db.Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("store: update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkNotified records that the admin alert for this order went out.
func (r *OrderRepository) MarkNotified(id uint, at time.Time) error {
	err := r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Update("notified_at", at).Error
	if err != nil {
		return fmt.Errorf("store: mark order notified: %w", err)
	}
	return nil
}

// Unnotified returns persisted orders whose admin alert never went out,
// oldest first, for reconciliation.
func (r *OrderRepository) Unnotified() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("notified_at IS NULL").
		Order("created_at ASC, id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("store: unnotified orders: %w", err)
	}
	return orders, nil
}

// Count returns the total number of orders.
func (r *OrderRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Order{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("store: count orders: %w", err)
	}
	return n, nil
}

// CountByStatus returns the number of orders with the given status.
func (r *OrderRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Order{}).
		Where("status = ?", status).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("store: count orders by status: %w", err)
	}
	return n, nil
}
