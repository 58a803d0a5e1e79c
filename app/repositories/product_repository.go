package repositories

import (
	"time"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"github.com/shashiranjanraj/bazaar/pkg/orm"
	"gorm.io/gorm"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create persists a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(product).Error
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return r.db.Save(product).Error
}

// Delete removes a product row.
func (r *ProductRepository) Delete(product *models.Product) error {
	defer metrics.ObserveDBQuery("delete", time.Now())
	return r.db.Delete(product).Error
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var product models.Product
	err := r.db.First(&product, id).Error
	return product, err
}

// All returns one page of products, newest first.
func (r *ProductRepository) All(page, limit int) ([]models.Product, orm.Pagination, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	pagination, err := orm.NewPagination(r.db, &models.Product{}, page, limit)
	if err != nil {
		return nil, orm.Pagination{}, err
	}

	var products []models.Product
	err = r.db.Scopes(orm.Paginate(page, limit)).Order("created_at desc").Find(&products).Error
	return products, pagination, err
}

// Search matches q against name, description and tags.
func (r *ProductRepository) Search(q string) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	like := "%" + q + "%"
	var products []models.Product
	err := r.db.
		Where("name LIKE ? OR description LIKE ? OR tags LIKE ?", like, like, like).
		Order("created_at desc").
		Find(&products).Error
	return products, err
}
