package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
)

func init() {
	Register("admin", SeedAdmin)
	Register("categories", SeedCategories)
}

// SeedAdmin creates the administrator account. Admin has no registration
// endpoint; this seeder is the only way one comes to exist. Idempotent on
// email.
func SeedAdmin(db *gorm.DB) error {
	email := config.Get("ADMIN_EMAIL", "admin@bazaar.local")

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(config.Get("ADMIN_PASSWORD", "change-me-now"))
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
		IsActive: true,
	}).Error
}

// SeedCategories inserts a handful of root categories. Idempotent on name.
func SeedCategories(db *gorm.DB) error {
	names := []string{"Electronics", "Books", "Clothing", "Home & Garden"}

	for _, name := range names {
		var count int64
		if err := db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&models.Category{Name: name, IsActive: true}).Error; err != nil {
			return err
		}
	}
	return nil
}
