package migrations

import (
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_addresses_table", &CreateAddressesTable{})
	migration.Register("20260301000002_create_products_table", &CreateProductsTable{})
	migration.Register("20260301000003_create_cart_items_table", &CreateCartItemsTable{})
	migration.Register("20260301000004_create_orders_tables", &CreateOrdersTables{})
}

// -------- 0000: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0001: addresses --------

type CreateAddressesTable struct{}

func (m *CreateAddressesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Address{})
}

func (m *CreateAddressesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("addresses")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: cart items --------

type CreateCartItemsTable struct{}

func (m *CreateCartItemsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.CartItem{})
}

func (m *CreateCartItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cart_items")
}

// -------- 0004: orders, order lines, order events --------

type CreateOrdersTables struct{}

func (m *CreateOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderProduct{}, &models.OrderEvent{})
}

func (m *CreateOrdersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_events", "order_products", "orders")
}
