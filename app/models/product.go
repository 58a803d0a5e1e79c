package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the catalogue. Price is a decimal, never
// a float: cart totals and order amounts are computed with exact decimal
// arithmetic all the way through.
type Product struct {
	gorm.Model
	Name        string          `gorm:"size:255;not null;index" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Tags        string          `gorm:"size:255" json:"tags"` // comma-joined
}

// TagList splits the stored comma-joined tags.
func (p Product) TagList() []string {
	if p.Tags == "" {
		return nil
	}
	parts := strings.Split(p.Tags, ",")
	out := make([]string, 0, len(parts))
	for _, t := range parts {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinTags normalizes a tag set into the stored comma-joined form.
func JoinTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, ",")
}
