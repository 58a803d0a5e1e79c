package repositories

import (
	"time"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"gorm.io/gorm"
)

// AddressRepository handles database operations for Address.
type AddressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *AddressRepository) WithTx(tx *gorm.DB) *AddressRepository {
	return &AddressRepository{db: tx}
}

// Create persists a new address.
func (r *AddressRepository) Create(address *models.Address) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(address).Error
}

// FindByID looks up an address by primary key regardless of owner.
func (r *AddressRepository) FindByID(id uint) (models.Address, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var address models.Address
	err := r.db.First(&address, id).Error
	return address, err
}

// FindOwned looks up an address that belongs to userID. A row owned by
// someone else yields gorm.ErrRecordNotFound, same as a missing row.
func (r *AddressRepository) FindOwned(id, userID uint) (models.Address, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var address models.Address
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error
	return address, err
}

// ListByUser returns all addresses of a user, newest first.
func (r *AddressRepository) ListByUser(userID uint) ([]models.Address, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var addresses []models.Address
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&addresses).Error
	return addresses, err
}

// Delete removes an address row.
func (r *AddressRepository) Delete(address *models.Address) error {
	defer metrics.ObserveDBQuery("delete", time.Now())
	return r.db.Delete(address).Error
}
