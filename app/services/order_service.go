package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/cache"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderStatusCacheTTL = 10 * time.Minute

// OrderService materializes orders from carts and drives the append-only
// status log. An order's header is immutable after creation; every state
// change is a new event row, never an update.
type OrderService struct {
	db        *gorm.DB
	orders    *repositories.OrderRepository
	carts     *repositories.CartRepository
	users     *repositories.UserRepository
	addresses *repositories.AddressRepository
}

func NewOrderService(
	db *gorm.DB,
	orders *repositories.OrderRepository,
	carts *repositories.CartRepository,
	users *repositories.UserRepository,
	addresses *repositories.AddressRepository,
) *OrderService {
	return &OrderService{db: db, orders: orders, carts: carts, users: users, addresses: addresses}
}

func orderStatusCacheKey(orderID uint) string {
	return fmt.Sprintf("order:%d:status", orderID)
}

// Create materializes the user's cart into an order. In one transaction it
// inserts the order header with the computed total and the formatted default
// shipping address, copies each cart line into an order line, appends the
// initial PENDING event, and clears the cart. If anything fails the cart is
// untouched and no order exists.
func (s *OrderService) Create(userID uint) (models.Order, error) {
	// Cart first, address second: an empty cart reports as such even when
	// the user has no default address either.
	items, err := s.carts.ListByUser(userID)
	if err != nil {
		return models.Order{}, apperr.Internal(err)
	}
	if len(items) == 0 {
		return models.Order{}, apperr.BadRequest(apperr.CodeOrderCartEmpty, "Cart is empty")
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return models.Order{}, apperr.Internal(err)
	}
	if user.DefaultShippingAddressID == nil {
		return models.Order{}, apperr.NotFound(apperr.CodeAddressNotFound, "Address not found")
	}
	address, err := s.addresses.FindOwned(*user.DefaultShippingAddressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperr.NotFound(apperr.CodeAddressNotFound, "Address not found")
		}
		return models.Order{}, apperr.Internal(err)
	}

	total := decimal.Zero
	lines := make([]models.OrderProduct, 0, len(items))
	for _, item := range items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		lines = append(lines, models.OrderProduct{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order := models.Order{
		UserID:    userID,
		NetAmount: total,
		Address:   address.Format(),
		Products:  lines,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)

		if err := orders.Create(&order); err != nil {
			return err
		}
		if err := orders.AppendEvent(&models.OrderEvent{OrderID: order.ID, Status: models.StatusPending}); err != nil {
			return err
		}
		return s.carts.WithTx(tx).DeleteByUser(userID)
	})
	if err != nil {
		return models.Order{}, apperr.Internal(err)
	}

	metrics.OrdersCreated.Inc()
	metrics.OrderEvents.WithLabelValues(models.StatusPending).Inc()
	cache.Set(orderStatusCacheKey(order.ID), models.StatusPending, orderStatusCacheTTL)

	order, err = s.orders.FindByID(order.ID)
	if err != nil {
		return models.Order{}, apperr.Internal(err)
	}
	return order, nil
}

// List returns the user's own orders, newest first, with full event history.
func (s *OrderService) List(userID uint) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return orders, nil
}

// Get returns one of the user's own orders. Another user's order id yields
// the same not-found error as a nonexistent one.
func (s *OrderService) Get(userID, orderID uint) (models.Order, error) {
	order, err := s.orders.FindOwned(orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperr.NotFound(apperr.CodeOrderNotFound, "Order not found")
		}
		return models.Order{}, apperr.Internal(err)
	}
	return order, nil
}

// Cancel appends a CANCELED event to one of the user's own orders. Refused
// when the current status is terminal; the error names the status that
// blocked it. The current status is read inside the append transaction so a
// racing admin update cannot slip between check and append.
func (s *OrderService) Cancel(userID, orderID uint) (models.Order, error) {
	if _, err := s.Get(userID, orderID); err != nil {
		return models.Order{}, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)

		latest, err := orders.LatestEvent(orderID)
		if err != nil {
			return err
		}
		if models.TerminalStatus(latest.Status) {
			return apperr.BadRequest(apperr.CodeOrderNotCancelable,
				fmt.Sprintf("Order cannot be canceled in status %s", latest.Status))
		}
		return orders.AppendEvent(&models.OrderEvent{OrderID: orderID, Status: models.StatusCanceled})
	})
	if err != nil {
		return models.Order{}, apperr.From(err)
	}

	metrics.OrderEvents.WithLabelValues(models.StatusCanceled).Inc()
	cache.Set(orderStatusCacheKey(orderID), models.StatusCanceled, orderStatusCacheTTL)

	return s.Get(userID, orderID)
}

// SetStatus appends an event with the given status to any order (admin).
// The status must be one of the five recognised values; beyond that no
// transition rule applies, so support can always correct an order's state.
func (s *OrderService) SetStatus(orderID uint, status string) (models.Order, error) {
	if !models.ValidStatus(status) {
		return models.Order{}, apperr.BadRequest(apperr.CodeInvalidOrderStatus,
			fmt.Sprintf("Invalid order status %q", status))
	}

	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperr.NotFound(apperr.CodeOrderNotFound, "Order not found")
		}
		return models.Order{}, apperr.Internal(err)
	}

	if err := s.orders.AppendEvent(&models.OrderEvent{OrderID: order.ID, Status: status}); err != nil {
		return models.Order{}, apperr.Internal(err)
	}

	metrics.OrderEvents.WithLabelValues(status).Inc()
	cache.Set(orderStatusCacheKey(order.ID), status, orderStatusCacheTTL)

	order, err = s.orders.FindByID(order.ID)
	if err != nil {
		return models.Order{}, apperr.Internal(err)
	}
	return order, nil
}

// GetAny returns any order by id regardless of owner (admin).
func (s *OrderService) GetAny(orderID uint) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperr.NotFound(apperr.CodeOrderNotFound, "Order not found")
		}
		return models.Order{}, apperr.Internal(err)
	}
	return order, nil
}

// adminPageSize is the fixed page size of the admin order listing.
const adminPageSize = 10

// AdminOrder is one row of the admin listing: the order plus a trimmed
// view of the user who placed it.
type AdminOrder struct {
	models.Order
	User models.UserSummary `json:"user"`
}

// ListAll returns one skip-paginated page of orders across all users,
// optionally restricted to orders whose event log ever carried the given
// status, each with the owning user's summary attached.
func (s *OrderService) ListAll(status string, skip int) ([]AdminOrder, int64, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, 0, apperr.BadRequest(apperr.CodeInvalidOrderStatus,
			fmt.Sprintf("Invalid order status %q", status))
	}
	if skip < 0 {
		skip = 0
	}

	orders, total, err := s.orders.ListAll(status, skip, adminPageSize)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	summaries := make(map[uint]models.UserSummary)
	out := make([]AdminOrder, 0, len(orders))
	for _, order := range orders {
		summary, ok := summaries[order.UserID]
		if !ok {
			user, err := s.users.FindByID(order.UserID)
			if err != nil {
				return nil, 0, apperr.Internal(err)
			}
			summary = user.Summary()
			summaries[order.UserID] = summary
		}
		out = append(out, AdminOrder{Order: order, User: summary})
	}
	return out, total, nil
}

// CurrentStatus derives an order's current status: the cached copy when
// fresh, otherwise the latest event from the log. The log is always the
// source of truth; the cache is refreshed beside every append.
func (s *OrderService) CurrentStatus(orderID uint) (string, error) {
	var status string
	if cache.Get(orderStatusCacheKey(orderID), &status) {
		return status, nil
	}

	latest, err := s.orders.LatestEvent(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound(apperr.CodeOrderNotFound, "Order not found")
		}
		return "", apperr.Internal(err)
	}
	cache.Set(orderStatusCacheKey(orderID), latest.Status, orderStatusCacheTTL)
	return latest.Status, nil
}
