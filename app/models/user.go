package models

import "gorm.io/gorm"

// Roles a user can hold. Role changes go through the admin-only
// role-change endpoint; signup always produces RoleUser.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is the primary account model.
//
// The default address pointers are nullable and, when set, must reference
// an Address owned by this same user. Deleting the referenced address
// clears the pointer in the same transaction.
type User struct {
	gorm.Model
	Name                     string `gorm:"size:255;not null" json:"name"`
	Email                    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password                 string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role                     string `gorm:"size:50;not null;default:USER" json:"role"`
	DefaultShippingAddressID *uint  `json:"defaultShippingAddress,omitempty"`
	DefaultBillingAddressID  *uint  `json:"defaultBillingAddress,omitempty"`
}

// Summary is the trimmed shape embedded in admin order listings.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary returns the embeddable trimmed view of the user.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
