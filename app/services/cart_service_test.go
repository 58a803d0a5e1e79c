package services_test

import (
	"errors"
	"testing"

	"github.com/shashiranjanraj/bazaar/pkg/apperr"
)

func TestCartAddAccumulates(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")
	product := f.product(t, "Kurta", "10.00")

	first, err := f.carts.Add(user.ID, product.ID, 2)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	second, err := f.carts.Add(user.ID, product.ID, 3)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("second add created a new line (id %d vs %d)", second.ID, first.ID)
	}
	if second.Quantity != 5 {
		t.Errorf("quantity = %d, want 5", second.Quantity)
	}

	cart, err := f.carts.Get(user.ID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("cart lines = %d, want 1", len(cart.Items))
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")

	_, err := f.carts.Add(user.ID, 999, 1)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeProductNotFound {
		t.Fatalf("err = %v, want product-not-found", err)
	}
}

func TestCartLineReusableAfterRemove(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")
	product := f.product(t, "Kurta", "10.00")

	item, err := f.carts.Add(user.ID, product.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.carts.Remove(user.ID, item.ID); err != nil {
		t.Fatal(err)
	}

	// The removed line must not linger under the unique user+product index.
	again, err := f.carts.Add(user.ID, product.ID, 3)
	if err != nil {
		t.Fatalf("re-add after remove: %v", err)
	}
	if again.Quantity != 3 {
		t.Errorf("quantity = %d, want 3", again.Quantity)
	}

	cart, err := f.carts.Get(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 1 {
		t.Errorf("cart lines = %d, want 1", len(cart.Items))
	}
}

func TestCartTotalIsExactDecimal(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")
	kurta := f.product(t, "Kurta", "10.00")
	diya := f.product(t, "Diya Set", "5.50")

	if _, err := f.carts.Add(user.ID, kurta.ID, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := f.carts.Add(user.ID, diya.ID, 1); err != nil {
		t.Fatal(err)
	}

	cart, err := f.carts.Get(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got := cart.Total.StringFixed(2); got != "25.50" {
		t.Errorf("total = %s, want 25.50", got)
	}
}

func TestCartOwnershipScoped(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	product := f.product(t, "Kurta", "10.00")

	item, err := f.carts.Add(owner.ID, product.ID, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Another user can neither update nor remove the line, and the error is
	// indistinguishable from a nonexistent id.
	_, err = f.carts.SetQuantity(other.ID, item.ID, 4)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeCartItemNotFound {
		t.Fatalf("set quantity err = %v, want cart-item-not-found", err)
	}

	err = f.carts.Remove(other.ID, item.ID)
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeCartItemNotFound {
		t.Fatalf("remove err = %v, want cart-item-not-found", err)
	}

	// The owner still can.
	updated, err := f.carts.SetQuantity(owner.ID, item.ID, 4)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Quantity != 4 {
		t.Errorf("quantity = %d, want 4", updated.Quantity)
	}
	if err := f.carts.Remove(owner.ID, item.ID); err != nil {
		t.Fatal(err)
	}

	cart, err := f.carts.Get(owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("cart lines = %d, want 0", len(cart.Items))
	}
}
