package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"gorm.io/gorm"
)

func TestOrderMaterialization(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")
	f.addressFor(t, user.ID)
	kurta := f.product(t, "Kurta", "10.00")
	diya := f.product(t, "Diya Set", "5.50")

	if _, err := f.carts.Add(user.ID, kurta.ID, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := f.carts.Add(user.ID, diya.ID, 1); err != nil {
		t.Fatal(err)
	}

	order, err := f.orders.Create(user.ID)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if got := order.NetAmount.StringFixed(2); got != "25.50" {
		t.Errorf("net amount = %s, want 25.50", got)
	}
	if want := "12 MG Road, Bengaluru, India - 560001"; order.Address != want {
		t.Errorf("address = %q, want %q", order.Address, want)
	}
	if len(order.Products) != 2 {
		t.Errorf("order lines = %d, want 2", len(order.Products))
	}
	if len(order.Events) != 1 || order.Events[0].Status != models.StatusPending {
		t.Errorf("events = %+v, want single PENDING", order.Events)
	}

	// Cart must be empty after materialization.
	cart, err := f.carts.Get(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("cart lines after order = %d, want 0", len(cart.Items))
	}

	status, err := f.orders.CurrentStatus(order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if status != models.StatusPending {
		t.Errorf("status = %s, want PENDING", status)
	}
}

func TestOrderEmptyCartRejected(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")
	f.addressFor(t, user.ID)

	_, err := f.orders.Create(user.ID)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeOrderCartEmpty {
		t.Fatalf("err = %v, want cart-empty", err)
	}
}

func TestOrderEmptyCartCheckedBeforeAddress(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")

	// No cart and no default address: the empty cart is what gets reported.
	_, err := f.orders.Create(user.ID)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeOrderCartEmpty {
		t.Fatalf("err = %v, want cart-empty", err)
	}
}

func TestCartReusableAfterCheckout(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")
	f.addressFor(t, user.ID)
	product := f.product(t, "Kurta", "10.00")

	if _, err := f.carts.Add(user.ID, product.ID, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := f.orders.Create(user.ID); err != nil {
		t.Fatal(err)
	}

	// Checkout cleared the cart; the same product must be addable again
	// without tripping the unique user+product index.
	again, err := f.carts.Add(user.ID, product.ID, 2)
	if err != nil {
		t.Fatalf("re-add after checkout: %v", err)
	}
	if again.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", again.Quantity)
	}
}

func TestOrderWithoutDefaultAddressRejected(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")
	product := f.product(t, "Kurta", "10.00")
	if _, err := f.carts.Add(user.ID, product.ID, 1); err != nil {
		t.Fatal(err)
	}

	_, err := f.orders.Create(user.ID)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeAddressNotFound {
		t.Fatalf("err = %v, want address-not-found", err)
	}

	// Failed creation must leave the cart untouched.
	cart, err := f.carts.Get(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 1 {
		t.Errorf("cart lines = %d, want 1", len(cart.Items))
	}
}

func TestOrderCreationIsAtomic(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")
	f.addressFor(t, user.ID)
	product := f.product(t, "Kurta", "10.00")
	if _, err := f.carts.Add(user.ID, product.ID, 2); err != nil {
		t.Fatal(err)
	}

	// Force the event insert, mid-transaction, to fail.
	err := f.db.Callback().Create().Before("gorm:create").
		Register("fail_order_events", func(tx *gorm.DB) {
			if tx.Statement != nil && tx.Statement.Table == "order_events" {
				tx.AddError(errors.New("injected failure"))
			}
		})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	defer f.db.Callback().Create().Remove("fail_order_events") //nolint:errcheck

	if _, err := f.orders.Create(user.ID); err == nil {
		t.Fatal("expected order creation to fail")
	}

	// Nothing may survive the rollback: no order, no lines, full cart.
	var orderCount, lineCount int64
	f.db.Model(&models.Order{}).Count(&orderCount)
	f.db.Model(&models.OrderProduct{}).Count(&lineCount)
	if orderCount != 0 || lineCount != 0 {
		t.Errorf("orders = %d, lines = %d after rollback, want 0/0", orderCount, lineCount)
	}

	cart, err := f.carts.Get(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 1 {
		t.Errorf("cart lines = %d after rollback, want 1", len(cart.Items))
	}
}

func placeOrder(t *testing.T, f *fixture, userID uint) models.Order {
	t.Helper()
	product := f.product(t, "Kurta", "10.00")
	if _, err := f.carts.Add(userID, product.ID, 1); err != nil {
		t.Fatal(err)
	}
	order, err := f.orders.Create(userID)
	if err != nil {
		t.Fatal(err)
	}
	return order
}

func TestOrderCancel(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")
	f.addressFor(t, user.ID)
	order := placeOrder(t, f, user.ID)

	canceled, err := f.orders.Cancel(user.ID, order.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if canceled.Events[0].Status != models.StatusCanceled {
		t.Errorf("latest event = %s, want CANCELED", canceled.Events[0].Status)
	}

	// Canceling again hits the terminal check and names the current status.
	_, err = f.orders.Cancel(user.ID, order.ID)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeOrderNotCancelable {
		t.Fatalf("second cancel err = %v, want not-cancelable", err)
	}
	if !strings.Contains(appErr.Message, models.StatusCanceled) {
		t.Errorf("message %q should name the blocking status", appErr.Message)
	}
}

func TestOrderCancelAfterDelivery(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")
	f.addressFor(t, user.ID)
	order := placeOrder(t, f, user.ID)

	if _, err := f.orders.SetStatus(order.ID, models.StatusDelivered); err != nil {
		t.Fatal(err)
	}

	_, err := f.orders.Cancel(user.ID, order.ID)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeOrderNotCancelable {
		t.Fatalf("err = %v, want not-cancelable", err)
	}
	if !strings.Contains(appErr.Message, models.StatusDelivered) {
		t.Errorf("message %q should name DELIVERED", appErr.Message)
	}
}

func TestOrderCancelOwnershipScoped(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	f.addressFor(t, owner.ID)
	order := placeOrder(t, f, owner.ID)

	_, err := f.orders.Cancel(other.ID, order.ID)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeOrderNotFound {
		t.Fatalf("err = %v, want order-not-found", err)
	}
}

func TestSetStatusValidation(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")
	f.addressFor(t, user.ID)
	order := placeOrder(t, f, user.ID)

	_, err := f.orders.SetStatus(order.ID, "SHIPPED")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeInvalidOrderStatus {
		t.Fatalf("err = %v, want invalid-status", err)
	}

	// No transition rule beyond the enum: DELIVERED straight from PENDING,
	// and back out of a terminal status, are both allowed for admins.
	if _, err := f.orders.SetStatus(order.ID, models.StatusDelivered); err != nil {
		t.Fatal(err)
	}
	if _, err := f.orders.SetStatus(order.ID, models.StatusAccepted); err != nil {
		t.Fatal(err)
	}

	status, err := f.orders.CurrentStatus(order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if status != models.StatusAccepted {
		t.Errorf("status = %s, want ACCEPTED", status)
	}
}

func TestCurrentStatusTieBreaksOnInsertionOrder(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")
	f.addressFor(t, user.ID)
	order := placeOrder(t, f, user.ID)

	// Two events in the same instant: the later insert must win.
	if _, err := f.orders.SetStatus(order.ID, models.StatusAccepted); err != nil {
		t.Fatal(err)
	}
	if _, err := f.orders.SetStatus(order.ID, models.StatusOutForDelivery); err != nil {
		t.Fatal(err)
	}
	f.db.Exec("UPDATE order_events SET created_at = ? WHERE order_id = ?",
		order.CreatedAt, order.ID)

	status, err := f.orders.CurrentStatus(order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if status != models.StatusOutForDelivery {
		t.Errorf("status = %s, want OUT_FOR_DELIVERY (latest insert)", status)
	}
}

func TestListAllFiltersByEverCarriedStatus(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")
	f.addressFor(t, user.ID)

	first := placeOrder(t, f, user.ID)
	second := placeOrder(t, f, user.ID)
	if _, err := f.orders.Cancel(user.ID, first.ID); err != nil {
		t.Fatal(err)
	}

	canceled, _, err := f.orders.ListAll(models.StatusCanceled, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(canceled) != 1 || canceled[0].ID != first.ID {
		t.Errorf("CANCELED filter returned %d orders", len(canceled))
	}
	if canceled[0].User.Email != "asha@example.com" {
		t.Errorf("user summary email = %q", canceled[0].User.Email)
	}

	// The canceled order still carried PENDING at some point, so the
	// PENDING filter matches both.
	pending, _, err := f.orders.ListAll(models.StatusPending, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Errorf("PENDING filter returned %d orders, want 2", len(pending))
	}

	all, total, err := f.orders.ListAll("", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || total != 2 {
		t.Errorf("unfiltered returned %d orders (total %d), want 2", len(all), total)
	}
	_ = second
}
