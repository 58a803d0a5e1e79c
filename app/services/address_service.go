package services

import (
	"errors"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"gorm.io/gorm"
)

// AddressService manages a user's address book and default pointers.
type AddressService struct {
	db        *gorm.DB
	addresses *repositories.AddressRepository
	users     *repositories.UserRepository
}

func NewAddressService(db *gorm.DB, addresses *repositories.AddressRepository, users *repositories.UserRepository) *AddressService {
	return &AddressService{db: db, addresses: addresses, users: users}
}

// AddressInput carries the fields of a new address.
type AddressInput struct {
	LineOne string
	LineTwo string
	City    string
	Country string
	Pincode string
}

// Add creates an address for the user. When the user has no default
// shipping and/or billing address yet, the new address becomes that
// default — each pointer checked independently, in one transaction.
func (s *AddressService) Add(userID uint, input AddressInput) (models.Address, error) {
	address := models.Address{
		UserID:  userID,
		LineOne: input.LineOne,
		LineTwo: input.LineTwo,
		City:    input.City,
		Country: input.Country,
		Pincode: input.Pincode,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.addresses.WithTx(tx).Create(&address); err != nil {
			return err
		}

		user, err := s.users.WithTx(tx).FindByID(userID)
		if err != nil {
			return err
		}

		changed := false
		if user.DefaultShippingAddressID == nil {
			user.DefaultShippingAddressID = &address.ID
			changed = true
		}
		if user.DefaultBillingAddressID == nil {
			user.DefaultBillingAddressID = &address.ID
			changed = true
		}
		if changed {
			return s.users.WithTx(tx).Update(&user)
		}
		return nil
	})
	if err != nil {
		return models.Address{}, apperr.Internal(err)
	}

	return address, nil
}

// List returns the user's addresses, newest first.
func (s *AddressService) List(userID uint) ([]models.Address, error) {
	addresses, err := s.addresses.ListByUser(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return addresses, nil
}

// Remove deletes an owned address. If the address is currently the user's
// default shipping or billing address, the pointer is cleared in the same
// transaction — deletion never leaves a dangling default.
func (s *AddressService) Remove(userID, addressID uint) error {
	address, err := s.addresses.FindOwned(addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(apperr.CodeAddressNotFound, "Address not found")
		}
		return apperr.Internal(err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).ClearDefaultAddress(userID, address.ID); err != nil {
			return err
		}
		return s.addresses.WithTx(tx).Delete(&address)
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}
