package models

import "time"

// CartItem is one line of a user's cart. A user holds at most one line per
// product: repeated adds accumulate the quantity on the existing line.
// Lines are ephemeral and hard-deleted, so there is no DeletedAt; a
// soft-deleted row would still occupy the unique index and block the
// product from being added again.
type CartItem struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint    `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"userId"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"productId"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
}
