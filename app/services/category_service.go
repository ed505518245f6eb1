package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/cache"
)

const listCacheTTL = time.Minute

// CategoryService implements the category tree operations.
type CategoryService struct {
	db         *gorm.DB
	categories *repositories.CategoryRepository
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db, categories: repositories.NewCategoryRepository(db)}
}

type categoryPage struct {
	Items      []models.Category       `json:"items"`
	Pagination repositories.Pagination `json:"pagination"`
}

// List returns active categories, served from cache when warm.
func (s *CategoryService) List(page, limit int) ([]models.Category, repositories.Pagination, error) {
	key := cache.Key("categories", fmt.Sprintf("list:%d:%d", page, limit))

	var cached categoryPage
	if cache.Get(key, &cached) {
		return cached.Items, cached.Pagination, nil
	}

	items, pagination, err := s.categories.AllActive(page, limit)
	if err != nil {
		return nil, repositories.Pagination{}, err
	}

	cache.Set(key, categoryPage{Items: items, Pagination: pagination}, listCacheTTL)
	return items, pagination, nil
}

// Create adds a category. A supplied parent must resolve to an existing,
// active category.
func (s *CategoryService) Create(name string, parentID *uint) (models.Category, error) {
	if parentID != nil {
		if _, err := s.categories.FindActiveByID(*parentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Category{}, apperr.Validation("parent category not found or inactive")
			}
			return models.Category{}, err
		}
	}

	category := models.Category{Name: name, ParentID: parentID, IsActive: true}
	if err := s.categories.Create(&category); err != nil {
		return models.Category{}, err
	}

	cache.Bump("categories")
	return category, nil
}

// Update renames and/or reparents a category. Besides requiring an active
// parent, it rejects self-ancestry: a category may not become its own parent
// or appear anywhere in its new ancestor chain.
func (s *CategoryService) Update(id uint, name string, parentID *uint) (models.Category, error) {
	category, err := s.categories.FindActiveByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, apperr.NotFound("Category not found or inactive")
		}
		return models.Category{}, err
	}

	if parentID != nil {
		if err := s.checkAncestry(id, *parentID); err != nil {
			return models.Category{}, err
		}
	}

	category.Name = name
	category.ParentID = parentID
	if err := s.categories.Save(&category); err != nil {
		return models.Category{}, err
	}

	cache.Bump("categories")
	return category, nil
}

// Delete soft-deletes a category. Its products become unreachable through
// category-scoped reads even though their own active flags are untouched.
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.categories.FindActiveByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Category not found or inactive")
		}
		return err
	}

	if err := s.categories.SoftDelete(id); err != nil {
		return err
	}

	// Products under this category just became unreachable.
	cache.Bump("categories", "products")
	return nil
}

// checkAncestry validates parentID as the new parent of category id: the
// parent must be active, and walking up from it must never reach id.
func (s *CategoryService) checkAncestry(id, parentID uint) error {
	seen := map[uint]bool{}
	current := parentID

	for {
		if current == id {
			return apperr.Validation("category cannot be its own ancestor")
		}
		if seen[current] {
			// Pre-existing cycle in the chain; refuse to attach to it.
			return apperr.Validation("parent chain contains a cycle")
		}
		seen[current] = true

		parent, err := s.categories.FindActiveByID(current)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if current == parentID {
					return apperr.Validation("parent category not found or inactive")
				}
				// Inactive ancestor terminates the chain.
				return nil
			}
			return err
		}

		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
}
