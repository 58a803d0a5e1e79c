// Package orm carries small helpers shared by the gorm repositories.
package orm

import "gorm.io/gorm"

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Clamp normalizes page/limit into sane bounds.
func Clamp(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// Paginate is a gorm scope applying offset/limit for the given page.
//
//	db.Scopes(orm.Paginate(page, limit)).Find(&products)
func Paginate(page, limit int) func(*gorm.DB) *gorm.DB {
	page, limit = Clamp(page, limit)
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}

// NewPagination counts rows on the (unscoped) query and builds the metadata.
func NewPagination(db *gorm.DB, model interface{}, page, limit int) (Pagination, error) {
	page, limit = Clamp(page, limit)

	var total int64
	if err := db.Model(model).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}
