// Package repositories holds the persistence layer. Every repository is
// bound to a *gorm.DB; reads go through the models.Active scope so soft
// deleted rows never leak into results or aggregates.
package repositories

import "gorm.io/gorm"

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Pagination carries list metadata returned alongside items.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// clampPage normalises caller-supplied page/limit values.
func clampPage(page, limit int) (int, int) {
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

// paginate runs a counted, offset-paginated Find on the prepared query.
func paginate(query *gorm.DB, dest interface{}, page, limit int) (Pagination, error) {
	page, limit = clampPage(page, limit)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	if err := query.
		Offset((page - 1) * limit).
		Limit(limit).
		Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}
