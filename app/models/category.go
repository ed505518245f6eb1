package models

import "gorm.io/gorm"

// Category is a node in the product category tree. ParentID is nil for root
// categories; a parent must itself be an existing, active category.
type Category struct {
	gorm.Model
	Name     string `gorm:"size:50;not null;index" json:"name"`
	ParentID *uint  `gorm:"index" json:"parent_id"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}
