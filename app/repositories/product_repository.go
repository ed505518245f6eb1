package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithTx returns the repository bound to a transaction.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

// AllActive returns active products with pagination.
func (r *ProductRepository) AllActive(page, limit int) ([]models.Product, Pagination, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var products []models.Product
	query := r.db.Model(&models.Product{}).Scopes(models.Active)
	pagination, err := paginate(query, &products, page, limit)
	return products, pagination, err
}

// ActiveByCategory returns active products in one category with pagination.
func (r *ProductRepository) ActiveByCategory(categoryID uint, page, limit int) ([]models.Product, Pagination, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var products []models.Product
	query := r.db.Model(&models.Product{}).
		Scopes(models.Active).
		Where("category_id = ?", categoryID)
	pagination, err := paginate(query, &products, page, limit)
	return products, pagination, err
}

// FindActiveByID looks up an active product by primary key.
func (r *ProductRepository) FindActiveByID(id uint) (models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var product models.Product
	err := r.db.Scopes(models.Active).First(&product, id).Error
	return product, err
}

// Create persists a new product record.
func (r *ProductRepository) Create(product *models.Product) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(product).Error
}

// Save persists changes to an existing product.
func (r *ProductRepository) Save(product *models.Product) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return r.db.Save(product).Error
}

// SoftDelete flips the active flag; the row is never physically removed.
func (r *ProductRepository) SoftDelete(id uint) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	return r.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
