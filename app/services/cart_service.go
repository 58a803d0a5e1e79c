package services

import (
	"errors"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartService manages the per-user staging cart.
type CartService struct {
	db       *gorm.DB
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartService(db *gorm.DB, carts *repositories.CartRepository, products *repositories.ProductRepository) *CartService {
	return &CartService{db: db, carts: carts, products: products}
}

// Cart is a user's cart with its computed total.
type Cart struct {
	Count int               `json:"count"`
	Total decimal.Decimal   `json:"totalAmount"`
	Items []models.CartItem `json:"cartItems"`
}

// Add puts quantity units of a product in the user's cart. Adding a product
// already in the cart accumulates onto the existing line instead of creating
// a duplicate; the existing line is locked for the transaction so two
// concurrent adds cannot lose an increment.
func (s *CartService) Add(userID, productID uint, quantity int) (models.CartItem, error) {
	if _, err := s.products.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, apperr.NotFound(apperr.CodeProductNotFound, "Product not found")
		}
		return models.CartItem{}, apperr.Internal(err)
	}

	var item models.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)

		existing, err := carts.FindForUpdate(userID, productID)
		if err == nil {
			existing.Quantity += quantity
			item = existing
			return carts.Save(&item)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		return carts.Create(&item)
	})
	if err != nil {
		return models.CartItem{}, apperr.Internal(err)
	}
	return item, nil
}

// SetQuantity changes the quantity of an owned cart line.
func (s *CartService) SetQuantity(userID, itemID uint, quantity int) (models.CartItem, error) {
	item, err := s.findOwned(userID, itemID)
	if err != nil {
		return models.CartItem{}, err
	}

	item.Quantity = quantity
	if err := s.carts.Save(&item); err != nil {
		return models.CartItem{}, apperr.Internal(err)
	}
	return item, nil
}

// Remove deletes an owned cart line.
func (s *CartService) Remove(userID, itemID uint) error {
	item, err := s.findOwned(userID, itemID)
	if err != nil {
		return err
	}
	if err := s.carts.Delete(&item); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Get returns the user's cart with products attached and the exact total,
// sum over lines of unit price times quantity.
func (s *CartService) Get(userID uint) (Cart, error) {
	items, err := s.carts.ListByUser(userID)
	if err != nil {
		return Cart{}, apperr.Internal(err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return Cart{Count: len(items), Total: total, Items: items}, nil
}

func (s *CartService) findOwned(userID, itemID uint) (models.CartItem, error) {
	item, err := s.carts.FindOwned(itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, apperr.NotFound(apperr.CodeCartItemNotFound, "Cart item not found")
		}
		return models.CartItem{}, apperr.Internal(err)
	}
	return item, nil
}
