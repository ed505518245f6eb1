package services

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/cache"
	"github.com/shashiranjanraj/bazaar/pkg/storage"
)

// ProductService implements the product operations, including the ownership
// predicates: only the owning seller may mutate a product.
type ProductService struct {
	db         *gorm.DB
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	reviews    *repositories.ReviewRepository
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{
		db:         db,
		products:   repositories.NewProductRepository(db),
		categories: repositories.NewCategoryRepository(db),
		reviews:    repositories.NewReviewRepository(db),
	}
}

// ProductInput is the create/update payload.
type ProductInput struct {
	Name        string  `json:"name"        validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"nullable,max=500"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	ImageURL    string  `json:"image_url"   validate:"nullable,url,max=200"`
	Stock       int     `json:"stock"       validate:"gte=0"`
	CategoryID  uint    `json:"category_id" validate:"required"`
}

type productPage struct {
	Items      []models.Product        `json:"items"`
	Pagination repositories.Pagination `json:"pagination"`
}

// List returns active products, served from cache when warm.
func (s *ProductService) List(page, limit int) ([]models.Product, repositories.Pagination, error) {
	key := cache.Key("products", fmt.Sprintf("list:%d:%d", page, limit))

	var cached productPage
	if cache.Get(key, &cached) {
		return cached.Items, cached.Pagination, nil
	}

	items, pagination, err := s.products.AllActive(page, limit)
	if err != nil {
		return nil, repositories.Pagination{}, err
	}

	cache.Set(key, productPage{Items: items, Pagination: pagination}, listCacheTTL)
	return items, pagination, nil
}

// Get returns one active product. A syntactically valid id whose product or
// whose category has been soft-deleted resolves to NotFound.
func (s *ProductService) Get(id uint) (models.Product, error) {
	product, err := s.products.FindActiveByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, apperr.NotFound("Product not found or inactive")
		}
		return models.Product{}, err
	}

	if _, err := s.categories.FindActiveByID(product.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, apperr.NotFound("Product not found or inactive")
		}
		return models.Product{}, err
	}

	return product, nil
}

// ListByCategory returns active products in one active category.
func (s *ProductService) ListByCategory(categoryID uint, page, limit int) ([]models.Product, repositories.Pagination, error) {
	if _, err := s.categories.FindActiveByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.Pagination{}, apperr.NotFound("Category not found or inactive")
		}
		return nil, repositories.Pagination{}, err
	}

	key := cache.Key("products", fmt.Sprintf("category:%d:%d:%d", categoryID, page, limit))

	var cached productPage
	if cache.Get(key, &cached) {
		return cached.Items, cached.Pagination, nil
	}

	items, pagination, err := s.products.ActiveByCategory(categoryID, page, limit)
	if err != nil {
		return nil, repositories.Pagination{}, err
	}

	cache.Set(key, productPage{Items: items, Pagination: pagination}, listCacheTTL)
	return items, pagination, nil
}

// Create adds a product owned by the calling seller. SellerID comes from
// the access token; any client-supplied seller is ignored. The category
// check and the insert share one transaction so a concurrent category
// soft-delete cannot slip in between.
func (s *ProductService) Create(sellerID uint, in ProductInput) (models.Product, error) {
	var product models.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.categories.WithTx(tx).FindActiveByID(in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Category not found or inactive")
			}
			return err
		}

		product = models.Product{
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			ImageURL:    in.ImageURL,
			Stock:       in.Stock,
			CategoryID:  in.CategoryID,
			SellerID:    sellerID,
			IsActive:    true,
		}
		return s.products.WithTx(tx).Create(&product)
	})
	if err != nil {
		return models.Product{}, err
	}

	cache.Bump("products")
	return product, nil
}

// Update mutates a product after the ownership check. The (possibly new)
// category is re-validated inside the same transaction. Rating and seller
// are never client-settable.
func (s *ProductService) Update(callerID, id uint, in ProductInput) (models.Product, error) {
	var product models.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = s.products.WithTx(tx).FindActiveByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Product not found or inactive")
			}
			return err
		}

		if product.SellerID != callerID {
			return apperr.Forbidden("You can only update your own products")
		}

		if _, err := s.categories.WithTx(tx).FindActiveByID(in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Category not found or inactive")
			}
			return err
		}

		product.Name = in.Name
		product.Description = in.Description
		product.Price = in.Price
		product.ImageURL = in.ImageURL
		product.Stock = in.Stock
		product.CategoryID = in.CategoryID
		return s.products.WithTx(tx).Save(&product)
	})
	if err != nil {
		return models.Product{}, err
	}

	cache.Bump("products")
	return product, nil
}

// Delete soft-deletes a product after the ownership check.
func (s *ProductService) Delete(callerID, id uint) error {
	product, err := s.products.FindActiveByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Product not found or inactive")
		}
		return err
	}

	if product.SellerID != callerID {
		return apperr.Forbidden("You can only delete your own products")
	}

	if err := s.products.SoftDelete(id); err != nil {
		return err
	}

	cache.Bump("products")
	return nil
}

// Reviews returns the active reviews of an active product.
func (s *ProductService) Reviews(productID uint) ([]models.Review, error) {
	if _, err := s.products.FindActiveByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found or inactive")
		}
		return nil, err
	}

	return s.reviews.ActiveByProduct(productID)
}

// AttachImage stores an uploaded image on the configured disk and points
// the product at its public URL. Ownership-gated like every other mutation.
func (s *ProductService) AttachImage(callerID, id uint, filename string, content io.Reader) (models.Product, error) {
	product, err := s.products.FindActiveByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, apperr.NotFound("Product not found or inactive")
		}
		return models.Product{}, err
	}

	if product.SellerID != callerID {
		return models.Product{}, apperr.Forbidden("You can only update your own products")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return models.Product{}, apperr.Validation("image must be jpg, jpeg, png or webp")
	}

	path := fmt.Sprintf("products/%d%s", product.ID, ext)
	if err := storage.PutStream(path, content); err != nil {
		return models.Product{}, err
	}

	url := storage.URL(path)
	if len(url) > 200 {
		return models.Product{}, apperr.Validation("image URL exceeds 200 characters")
	}

	product.ImageURL = url
	if err := s.products.Save(&product); err != nil {
		return models.Product{}, err
	}

	cache.Bump("products")
	return product, nil
}
