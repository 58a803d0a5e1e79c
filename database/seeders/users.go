package seeders

import (
	"errors"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("admin-user", SeedAdminUser)
}

// SeedAdminUser creates the bootstrap admin account if no admin exists.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD, with dev defaults.
func SeedAdminUser(db *gorm.DB) error {
	var existing models.User
	err := db.Where("role = ?", models.RoleAdmin).First(&existing).Error
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(config.Get("ADMIN_PASSWORD", "changeme"))
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Admin",
		Email:    config.Get("ADMIN_EMAIL", "admin@bazaar.local"),
		Password: hash,
		Role:     models.RoleAdmin,
	}
	return db.Create(&admin).Error
}
