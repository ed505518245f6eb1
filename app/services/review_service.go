package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/cache"
)

// ReviewService implements review create/delete and the rating aggregator.
// Each write and its rating recompute share one transaction: the rating a
// reader observes is always derived from a committed review set.
type ReviewService struct {
	db       *gorm.DB
	reviews  *repositories.ReviewRepository
	products *repositories.ProductRepository
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{
		db:       db,
		reviews:  repositories.NewReviewRepository(db),
		products: repositories.NewProductRepository(db),
	}
}

// ReviewInput is the create payload. Comment is optional but must hold at
// least 2 characters when present.
type ReviewInput struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Comment   *string `json:"comment"    validate:"nullable,min=2"`
	Grade     int     `json:"grade"      validate:"required,gte=1,lte=5"`
}

// List returns all active reviews.
func (s *ReviewService) List(page, limit int) ([]models.Review, repositories.Pagination, error) {
	return s.reviews.AllActive(page, limit)
}

// Create stores a buyer's review and recomputes the product rating. The
// product-active check, the duplicate check, the insert and the recompute
// all run inside one transaction; together with the unique index on active
// (user, product) pairs this closes the race between two concurrent creates.
func (s *ReviewService) Create(userID uint, in ReviewInput) (models.Review, error) {
	// An empty string is a present comment, not an absent one, and the
	// tag-level min=2 only sees non-zero values.
	if in.Comment != nil && *in.Comment == "" {
		return models.Review{}, apperr.Validation("comment must be at least 2 characters")
	}

	var review models.Review

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.products.WithTx(tx).FindActiveByID(in.ProductID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Product not found or inactive")
			}
			return err
		}

		reviews := s.reviews.WithTx(tx)

		exists, err := reviews.HasActiveByUserAndProduct(userID, in.ProductID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("You already have a review for this product")
		}

		review = models.Review{
			UserID:    userID,
			ProductID: in.ProductID,
			Comment:   in.Comment,
			Grade:     in.Grade,
			IsActive:  true,
		}
		if err := reviews.Create(&review); err != nil {
			return err
		}

		return reviews.RecomputeProductRating(in.ProductID)
	})
	if err != nil {
		if isDuplicateKey(err) {
			return models.Review{}, apperr.Conflict("You already have a review for this product")
		}
		return models.Review{}, err
	}

	cache.Bump("products", "reviews")
	return review, nil
}

// Delete soft-deletes a review owned by the caller (admin may delete any)
// and recomputes the product rating from the remaining active reviews. With
// none left the rating clears to null, never zero.
func (s *ReviewService) Delete(callerID uint, role string, id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		reviews := s.reviews.WithTx(tx)

		review, err := reviews.FindActiveByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Review not found or inactive")
			}
			return err
		}

		if review.UserID != callerID && role != models.RoleAdmin {
			return apperr.Forbidden("You can only delete your own reviews")
		}

		if err := reviews.SoftDelete(id); err != nil {
			return err
		}

		return reviews.RecomputeProductRating(review.ProductID)
	})
	if err != nil {
		return err
	}

	cache.Bump("products", "reviews")
	return nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
