package services

import (
	"errors"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
	"gorm.io/gorm"
)

// AuthService handles signup, login and identity resolution.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Signup registers a new user with a hashed password and the USER role.
func (s *AuthService) Signup(name, email, password string) (models.User, error) {
	_, err := s.users.FindByEmail(email)
	if err == nil {
		return models.User{}, apperr.BadRequest(apperr.CodeUserAlreadyExists, "User already exists!")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, apperr.Internal(err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, apperr.Internal(err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, apperr.Internal(err)
	}

	return user, nil
}

// Login verifies credentials and issues a signed token. A wrong email and
// a wrong password produce the same error code, so the endpoint does not
// reveal which accounts exist.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", apperr.BadRequest(apperr.CodeIncorrectPassword, "Incorrect email or password")
		}
		return models.User{}, "", apperr.Internal(err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", apperr.BadRequest(apperr.CodeIncorrectPassword, "Incorrect email or password")
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", apperr.Internal(err)
	}

	return user, token, nil
}

// Me returns the authenticated user's own record.
func (s *AuthService) Me(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.NotFound(apperr.CodeUserNotFound, "User not found")
		}
		return models.User{}, apperr.Internal(err)
	}
	return user, nil
}
