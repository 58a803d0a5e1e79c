package services_test

import (
	"errors"
	"testing"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
)

func TestFirstAddressBecomesDefaults(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")

	first := f.addressFor(t, user.ID)

	reloaded, err := f.auth.Me(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.DefaultShippingAddressID == nil || *reloaded.DefaultShippingAddressID != first.ID {
		t.Error("first address should become default shipping")
	}
	if reloaded.DefaultBillingAddressID == nil || *reloaded.DefaultBillingAddressID != first.ID {
		t.Error("first address should become default billing")
	}

	// A second address must not steal the defaults.
	f.addressFor(t, user.ID)
	reloaded, err = f.auth.Me(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if *reloaded.DefaultShippingAddressID != first.ID || *reloaded.DefaultBillingAddressID != first.ID {
		t.Error("second address must not replace existing defaults")
	}
}

func TestDeleteDefaultAddressClearsPointers(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")
	address := f.addressFor(t, user.ID)

	if err := f.address.Remove(user.ID, address.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	reloaded, err := f.auth.Me(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.DefaultShippingAddressID != nil || reloaded.DefaultBillingAddressID != nil {
		t.Error("deleting the default address must clear both default pointers")
	}

	addresses, err := f.address.List(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(addresses) != 0 {
		t.Errorf("addresses = %d, want 0", len(addresses))
	}
}

func TestDeleteForeignAddressRejected(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	address := f.addressFor(t, owner.ID)

	err := f.address.Remove(other.ID, address.ID)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeAddressNotFound {
		t.Fatalf("err = %v, want address-not-found", err)
	}
}

func TestProfileDefaultPointerOwnership(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	foreign := f.addressFor(t, owner.ID)

	_, err := f.users.UpdateProfile(other.ID, services.ProfileUpdate{
		DefaultShippingAddressID: &foreign.ID,
	})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeAddressDoesNotBelong {
		t.Fatalf("err = %v, want address-does-not-belong", err)
	}

	// Owner may point at their own address.
	own := f.addressFor(t, other.ID)
	updated, err := f.users.UpdateProfile(other.ID, services.ProfileUpdate{
		DefaultShippingAddressID: &own.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.DefaultShippingAddressID == nil || *updated.DefaultShippingAddressID != own.ID {
		t.Error("default shipping pointer not updated")
	}
}
