package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindActiveByEmail looks up an active user by email address.
func (r *UserRepository) FindActiveByEmail(email string) (models.User, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var user models.User
	err := r.db.Scopes(models.Active).Where("email = ?", email).First(&user).Error
	return user, err
}

// FindActiveByID looks up an active user by primary key.
func (r *UserRepository) FindActiveByID(id uint) (models.User, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var user models.User
	err := r.db.Scopes(models.Active).First(&user, id).Error
	return user, err
}

// EmailTaken reports whether any user, active or not, holds the email.
// Emails stay reserved after soft deletion so historical rows keep a unique
// owner.
func (r *UserRepository) EmailTaken(email string) (bool, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(user).Error
}
