package models

import "gorm.io/gorm"

// Active is the shared soft-delete filter. Every read and aggregate query
// goes through this scope so inactive rows are excluded in exactly one
// place, never per handler. Soft-deleted rows stay addressable by primary
// key for historical foreign keys.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
