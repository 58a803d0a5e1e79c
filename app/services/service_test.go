package services_test

import (
	"testing"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderProduct{},
		&models.OrderEvent{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db *gorm.DB

	auth     *services.AuthService
	users    *services.UserService
	address  *services.AddressService
	products *services.ProductService
	carts    *services.CartService
	orders   *services.OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	userRepo := repositories.NewUserRepository(db)
	addressRepo := repositories.NewAddressRepository(db)
	productRepo := repositories.NewProductRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	return &fixture{
		db:       db,
		auth:     services.NewAuthService(userRepo),
		users:    services.NewUserService(userRepo, addressRepo),
		address:  services.NewAddressService(db, addressRepo, userRepo),
		products: services.NewProductService(productRepo),
		carts:    services.NewCartService(db, cartRepo, productRepo),
		orders:   services.NewOrderService(db, orderRepo, cartRepo, userRepo, addressRepo),
	}
}

func (f *fixture) user(t *testing.T, email string) models.User {
	t.Helper()
	user, err := f.auth.Signup("Test User", email, "secret123")
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return user
}

func (f *fixture) product(t *testing.T, name, price string) models.Product {
	t.Helper()
	p, err := f.products.Create(services.ProductInput{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
	})
	if err != nil {
		t.Fatalf("create product %s: %v", name, err)
	}
	return p
}

func (f *fixture) addressFor(t *testing.T, userID uint) models.Address {
	t.Helper()
	a, err := f.address.Add(userID, services.AddressInput{
		LineOne: "12 MG Road",
		City:    "Bengaluru",
		Country: "India",
		Pincode: "560001",
	})
	if err != nil {
		t.Fatalf("add address: %v", err)
	}
	return a
}
