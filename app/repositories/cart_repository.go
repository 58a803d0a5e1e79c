package repositories

import (
	"time"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository handles database operations for CartItem.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *CartRepository) WithTx(tx *gorm.DB) *CartRepository {
	return &CartRepository{db: tx}
}

// Create persists a new cart line.
func (r *CartRepository) Create(item *models.CartItem) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(item).Error
}

// Save persists quantity changes on an existing line.
func (r *CartRepository) Save(item *models.CartItem) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return r.db.Save(item).Error
}

// FindOwned looks up a cart line that belongs to userID, with its product
// attached. Rows owned by other users yield gorm.ErrRecordNotFound.
func (r *CartRepository) FindOwned(id, userID uint) (models.CartItem, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var item models.CartItem
	err := r.db.Preload("Product").
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error
	return item, err
}

// FindForUpdate locks the (user, product) line for the current transaction
// so a concurrent add cannot lose the increment. Must be called inside a
// transaction; drivers without FOR UPDATE (sqlite) serialize on the
// transaction itself.
func (r *CartRepository) FindForUpdate(userID, productID uint) (models.CartItem, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var item models.CartItem
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	return item, err
}

// ListByUser returns the user's full cart with products attached, newest
// line first.
func (r *CartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var items []models.CartItem
	err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error
	return items, err
}

// Delete removes a single cart line.
func (r *CartRepository) Delete(item *models.CartItem) error {
	defer metrics.ObserveDBQuery("delete", time.Now())
	return r.db.Delete(item).Error
}

// DeleteByUser clears the user's whole cart. Called from the order
// materialization transaction.
func (r *CartRepository) DeleteByUser(userID uint) error {
	defer metrics.ObserveDBQuery("delete", time.Now())
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
