package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/cache"
	"github.com/shashiranjanraj/bazaar/pkg/orm"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const productCacheTTL = 5 * time.Minute

// ProductService owns the catalog: admin CRUD plus public listing and search.
type ProductService struct {
	products *repositories.ProductRepository
}

func NewProductService(products *repositories.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// ProductInput carries the fields of a create or full-replace update.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Tags        []string
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

// productPage is the cached shape of one catalog page.
type productPage struct {
	Products   []models.Product `json:"products"`
	Pagination orm.Pagination   `json:"pagination"`
}

// listGeneration versions the list-page cache keys. Mutations bump it, so
// stale pages are simply never read again and expire on their TTL.
func listGeneration() int {
	gen := 0
	cache.Get("products:gen", &gen)
	return gen
}

func bumpListGeneration() {
	cache.Set("products:gen", listGeneration()+1, 0)
}

func listCacheKey(page, limit int) string {
	return fmt.Sprintf("products:g%d:p%d:l%d", listGeneration(), page, limit)
}

// Create adds a product to the catalog.
func (s *ProductService) Create(input ProductInput) (models.Product, error) {
	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Tags:        models.JoinTags(input.Tags),
	}
	if err := s.products.Create(&product); err != nil {
		return models.Product{}, apperr.Internal(err)
	}
	bumpListGeneration()
	return product, nil
}

// Update replaces all mutable fields of an existing product and drops the
// cached copy.
func (s *ProductService) Update(id uint, input ProductInput) (models.Product, error) {
	product, err := s.find(id)
	if err != nil {
		return models.Product{}, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Tags = models.JoinTags(input.Tags)

	if err := s.products.Update(&product); err != nil {
		return models.Product{}, apperr.Internal(err)
	}
	cache.Del(productCacheKey(id))
	bumpListGeneration()
	return product, nil
}

// Delete removes a product and drops the cached copy.
func (s *ProductService) Delete(id uint) error {
	product, err := s.find(id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(&product); err != nil {
		return apperr.Internal(err)
	}
	cache.Del(productCacheKey(id))
	bumpListGeneration()
	return nil
}

// Get fetches a single product, read-through cached.
func (s *ProductService) Get(id uint) (models.Product, error) {
	var product models.Product
	if cache.Get(productCacheKey(id), &product) {
		return product, nil
	}

	product, err := s.find(id)
	if err != nil {
		return models.Product{}, err
	}
	cache.Set(productCacheKey(id), product, productCacheTTL)
	return product, nil
}

// List returns one page of the catalog with pagination metadata,
// read-through cached per generation.
func (s *ProductService) List(page, limit int) ([]models.Product, orm.Pagination, error) {
	page, limit = orm.Clamp(page, limit)

	key := listCacheKey(page, limit)
	var cached productPage
	if cache.Get(key, &cached) {
		return cached.Products, cached.Pagination, nil
	}

	products, pagination, err := s.products.All(page, limit)
	if err != nil {
		return nil, orm.Pagination{}, apperr.Internal(err)
	}

	cache.Set(key, productPage{Products: products, Pagination: pagination}, productCacheTTL)
	return products, pagination, nil
}

// Search matches q against product name, description and tags. An empty q
// matches everything.
func (s *ProductService) Search(q string) ([]models.Product, error) {
	products, err := s.products.Search(q)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return products, nil
}

func (s *ProductService) find(id uint) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, apperr.NotFound(apperr.CodeProductNotFound, "Product not found")
		}
		return models.Product{}, apperr.Internal(err)
	}
	return product, nil
}
