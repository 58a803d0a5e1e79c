package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses. PENDING → ACCEPTED → OUT_FOR_DELIVERY → DELIVERED, with
// CANCELED reachable from any non-terminal status. DELIVERED and CANCELED
// are terminal for user-initiated cancellation.
const (
	StatusPending        = "PENDING"
	StatusAccepted       = "ACCEPTED"
	StatusOutForDelivery = "OUT_FOR_DELIVERY"
	StatusDelivered      = "DELIVERED"
	StatusCanceled       = "CANCELED"
)

// ValidStatus reports whether s is one of the five recognised statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusOutForDelivery, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// TerminalStatus reports whether s blocks further user cancellation.
func TerminalStatus(s string) bool {
	return s == StatusDelivered || s == StatusCanceled
}

// Order is the durable snapshot materialized from a cart. NetAmount and
// Address are computed once at creation and never recomputed; all later
// state lives in the append-only event log.
type Order struct {
	gorm.Model
	UserID    uint            `gorm:"not null;index" json:"userId"`
	NetAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"netAmount"`
	Address   string          `gorm:"size:512;not null" json:"address"`
	Products  []OrderProduct  `gorm:"foreignKey:OrderID" json:"products,omitempty"`
	Events    []OrderEvent    `gorm:"foreignKey:OrderID" json:"events,omitempty"`
}

// OrderProduct is an immutable order line copied from a CartItem.
type OrderProduct struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index" json:"orderId"`
	ProductID uint    `gorm:"not null" json:"productId"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
}

// OrderEvent is one entry in an order's append-only status log. The
// current status of an order is the status of its most recent event,
// ordered by created_at and tie-broken by the autoincrement id.
type OrderEvent struct {
	gorm.Model
	OrderID uint   `gorm:"not null;index" json:"orderId"`
	Status  string `gorm:"size:50;not null" json:"status"`
}
