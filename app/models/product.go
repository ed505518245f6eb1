package models

import "gorm.io/gorm"

// Product is a seller-owned catalogue entry. Rating is derived from active
// reviews and is never set by clients; nil means no active reviews exist
// (deliberately distinct from a real zero-star average). SellerID is bound
// from the caller's token at creation and never reassigned.
type Product struct {
	gorm.Model
	Name        string  `gorm:"size:100;not null;index" json:"name"`
	Description string  `gorm:"size:500" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	ImageURL    string  `gorm:"size:200" json:"image_url"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	CategoryID  uint    `gorm:"not null;index" json:"category_id"`
	SellerID    uint    `gorm:"not null;index" json:"seller_id"`
	Rating      *int    `json:"rating"`
	IsActive    bool    `gorm:"not null;default:true" json:"is_active"`
}
