package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a buyer's grade of a product, optionally with a comment. A user
// holds at most one active review per product. Reviews transition only from
// active to inactive; there is no restore.
type Review struct {
	gorm.Model
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	ProductID   uint      `gorm:"not null;index" json:"product_id"`
	Comment     *string   `gorm:"type:text" json:"comment"`
	CommentDate time.Time `gorm:"autoCreateTime" json:"comment_date"`
	Grade       int       `gorm:"not null" json:"grade"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
}
