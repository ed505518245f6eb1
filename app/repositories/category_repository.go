package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// WithTx returns the repository bound to a transaction.
func (r *CategoryRepository) WithTx(tx *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: tx}
}

// AllActive returns active categories with pagination.
func (r *CategoryRepository) AllActive(page, limit int) ([]models.Category, Pagination, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var categories []models.Category
	query := r.db.Model(&models.Category{}).Scopes(models.Active)
	pagination, err := paginate(query, &categories, page, limit)
	return categories, pagination, err
}

// FindActiveByID looks up an active category by primary key.
func (r *CategoryRepository) FindActiveByID(id uint) (models.Category, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var category models.Category
	err := r.db.Scopes(models.Active).First(&category, id).Error
	return category, err
}

// Create persists a new category record.
func (r *CategoryRepository) Create(category *models.Category) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(category).Error
}

// Save persists changes to an existing category.
func (r *CategoryRepository) Save(category *models.Category) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return r.db.Save(category).Error
}

// SoftDelete flips the active flag; the row is never physically removed.
func (r *CategoryRepository) SoftDelete(id uint) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	return r.db.Model(&models.Category{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
