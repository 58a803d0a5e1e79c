package repositories

import (
	"time"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"github.com/shashiranjanraj/bazaar/pkg/orm"
	"gorm.io/gorm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var user models.User
	err := r.db.First(&user, id).Error
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(user).Error
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return r.db.Save(user).Error
}

// All returns one page of users, newest first.
func (r *UserRepository) All(page, limit int) ([]models.User, orm.Pagination, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	pagination, err := orm.NewPagination(r.db, &models.User{}, page, limit)
	if err != nil {
		return nil, orm.Pagination{}, err
	}

	var users []models.User
	err = r.db.Scopes(orm.Paginate(page, limit)).Order("created_at desc").Find(&users).Error
	return users, pagination, err
}

// ClearDefaultAddress nulls any default pointer referencing addressID.
// Run inside the address-deletion transaction so a deleted address can
// never be left dangling as someone's default.
func (r *UserRepository) ClearDefaultAddress(userID, addressID uint) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	err := r.db.Model(&models.User{}).
		Where("id = ? AND default_shipping_address_id = ?", userID, addressID).
		Update("default_shipping_address_id", nil).Error
	if err != nil {
		return err
	}

	return r.db.Model(&models.User{}).
		Where("id = ? AND default_billing_address_id = ?", userID, addressID).
		Update("default_billing_address_id", nil).Error
}
