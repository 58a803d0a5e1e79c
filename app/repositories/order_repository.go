package repositories

import (
	"time"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for Order and its event log.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// Create persists an order header together with its lines (gorm inserts
// the associated Products slice in the same statement batch).
func (r *OrderRepository) Create(order *models.Order) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(order).Error
}

// AppendEvent adds one row to the order's event log. Events are never
// updated or deleted.
func (r *OrderRepository) AppendEvent(event *models.OrderEvent) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(event).Error
}

// FindByID loads an order with lines and full event history.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var order models.Order
	err := r.db.
		Preload("Products.Product").
		Preload("Events", eventOrder).
		First(&order, id).Error
	return order, err
}

// FindOwned loads an order with lines and full event history, restricted
// to the owning user. Other users' orders yield gorm.ErrRecordNotFound.
func (r *OrderRepository) FindOwned(id, userID uint) (models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var order models.Order
	err := r.db.
		Preload("Products.Product").
		Preload("Events", eventOrder).
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	return order, err
}

// ListByUser returns a user's orders, newest first, each with lines and
// full event history.
func (r *OrderRepository) ListByUser(userID uint) ([]models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var orders []models.Order
	err := r.db.
		Preload("Products.Product").
		Preload("Events", eventOrder).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

// ListAll returns one admin page of orders across all users, optionally
// restricted to orders that ever carried the given status. Also returns
// the unpaginated total for the filter.
func (r *OrderRepository) ListAll(status string, skip, take int) ([]models.Order, int64, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	query := r.db.Model(&models.Order{})
	if status != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM order_events e WHERE e.order_id = orders.id AND e.status = ? AND e.deleted_at IS NULL)",
			status,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.
		Preload("Products.Product").
		Preload("Events", eventOrder).
		Order("created_at desc").
		Offset(skip).
		Limit(take).
		Find(&orders).Error
	return orders, total, err
}

// LatestEvent returns the order's most recent event. Ties on created_at
// fall back to the autoincrement id, so insertion order always wins.
func (r *OrderRepository) LatestEvent(orderID uint) (models.OrderEvent, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var event models.OrderEvent
	err := r.db.
		Where("order_id = ?", orderID).
		Order("created_at desc, id desc").
		First(&event).Error
	return event, err
}

// eventOrder sorts preloaded event history newest first, id-tie-broken.
func eventOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at desc, id desc")
}
