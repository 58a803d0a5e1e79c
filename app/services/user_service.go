package services

import (
	"errors"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/orm"
	"gorm.io/gorm"
)

// UserService covers profile updates and the admin user endpoints.
type UserService struct {
	users     *repositories.UserRepository
	addresses *repositories.AddressRepository
}

func NewUserService(users *repositories.UserRepository, addresses *repositories.AddressRepository) *UserService {
	return &UserService{users: users, addresses: addresses}
}

// ProfileUpdate carries the optional fields of a profile patch. Nil means
// "leave unchanged".
type ProfileUpdate struct {
	Name                     *string
	DefaultShippingAddressID *uint
	DefaultBillingAddressID  *uint
}

// UpdateProfile applies a partial update to the user's own record. Default
// address pointers may only be set to addresses the user owns; a foreign or
// nonexistent address id fails the whole update.
func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.NotFound(apperr.CodeUserNotFound, "User not found")
		}
		return models.User{}, apperr.Internal(err)
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.DefaultShippingAddressID != nil {
		if err := s.checkOwned(*update.DefaultShippingAddressID, userID); err != nil {
			return models.User{}, err
		}
		user.DefaultShippingAddressID = update.DefaultShippingAddressID
	}
	if update.DefaultBillingAddressID != nil {
		if err := s.checkOwned(*update.DefaultBillingAddressID, userID); err != nil {
			return models.User{}, err
		}
		user.DefaultBillingAddressID = update.DefaultBillingAddressID
	}

	if err := s.users.Update(&user); err != nil {
		return models.User{}, apperr.Internal(err)
	}
	return user, nil
}

// List returns one admin page of users.
func (s *UserService) List(page, limit int) ([]models.User, orm.Pagination, error) {
	users, pagination, err := s.users.All(page, limit)
	if err != nil {
		return nil, orm.Pagination{}, apperr.Internal(err)
	}
	return users, pagination, nil
}

// Get returns any user by id (admin).
func (s *UserService) Get(id uint) (models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.NotFound(apperr.CodeUserNotFound, "User not found")
		}
		return models.User{}, apperr.Internal(err)
	}
	return user, nil
}

// ChangeRole sets a user's role to USER or ADMIN (admin).
func (s *UserService) ChangeRole(id uint, role string) (models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return models.User{}, apperr.BadRequest(apperr.CodeUnprocessableEntity, "Unprocessable entity")
	}

	user, err := s.Get(id)
	if err != nil {
		return models.User{}, err
	}

	user.Role = role
	if err := s.users.Update(&user); err != nil {
		return models.User{}, apperr.Internal(err)
	}
	return user, nil
}

func (s *UserService) checkOwned(addressID, userID uint) error {
	address, err := s.addresses.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(apperr.CodeAddressNotFound, "Address not found")
		}
		return apperr.Internal(err)
	}
	if address.UserID != userID {
		return apperr.BadRequest(apperr.CodeAddressDoesNotBelong, "Address does not belong to user")
	}
	return nil
}
