package repositories

import (
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
)

// ReviewRepository handles database operations for Review, including the
// product rating aggregate.
type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// WithTx returns the repository bound to a transaction. Review writes and
// the rating recompute must share one transaction.
func (r *ReviewRepository) WithTx(tx *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: tx}
}

// AllActive returns active reviews with pagination.
func (r *ReviewRepository) AllActive(page, limit int) ([]models.Review, Pagination, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var reviews []models.Review
	query := r.db.Model(&models.Review{}).Scopes(models.Active)
	pagination, err := paginate(query, &reviews, page, limit)
	return reviews, pagination, err
}

// ActiveByProduct returns all active reviews for a product.
func (r *ReviewRepository) ActiveByProduct(productID uint) ([]models.Review, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var reviews []models.Review
	err := r.db.Scopes(models.Active).
		Where("product_id = ?", productID).
		Find(&reviews).Error
	return reviews, err
}

// FindActiveByID looks up an active review by primary key.
func (r *ReviewRepository) FindActiveByID(id uint) (models.Review, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var review models.Review
	err := r.db.Scopes(models.Active).First(&review, id).Error
	return review, err
}

// HasActiveByUserAndProduct reports whether the user already holds an active
// review for the product. Run inside the create transaction so two
// concurrent creates cannot both pass the check.
func (r *ReviewRepository) HasActiveByUserAndProduct(userID, productID uint) (bool, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var count int64
	err := r.db.Model(&models.Review{}).
		Scopes(models.Active).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

// Create persists a new review record.
func (r *ReviewRepository) Create(review *models.Review) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(review).Error
}

// SoftDelete flips the active flag; the row is never physically removed.
func (r *ReviewRepository) SoftDelete(id uint) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	return r.db.Model(&models.Review{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// RecomputeProductRating rewrites the product's rating from the current set
// of active reviews. AVG over an empty set is NULL, so a product with no
// active reviews gets its rating cleared rather than zeroed. Halves round to
// even (grades {2,3} yield 2, not 3), which SQL ROUND cannot express
// portably, so the rounding happens here. Callers run this inside the same
// transaction as the review write; idempotent and order-independent.
func (r *ReviewRepository) RecomputeProductRating(productID uint) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	var avg *float64
	err := r.db.Model(&models.Review{}).
		Scopes(models.Active).
		Where("product_id = ?", productID).
		Select("AVG(grade * 1.0)").
		Scan(&avg).Error
	if err != nil {
		return err
	}

	var rating *int
	if avg != nil {
		v := int(math.RoundToEven(*avg))
		rating = &v
	}

	return r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("rating", rating).Error
}
