package models

import "gorm.io/gorm"

// Roles form a closed set. Register accepts buyer and seller; admin accounts
// exist only through the seeder.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User is an account holder. Role is immutable after creation; no endpoint
// changes it.
type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role     string `gorm:"size:50;not null" json:"role"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}
