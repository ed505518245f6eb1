package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/bind"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{categories: services.NewCategoryService(db)}
}

type categoryRequest struct {
	Name     string `json:"name"      validate:"required,min=3,max=50"`
	ParentID *uint  `json:"parent_id" validate:"nullable"`
}

// Index lists active categories.
func (c *CategoryController) Index(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	items, pagination, err := c.categories.List(page, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"items":      items,
		"pagination": pagination,
	})
}

// Store creates a category.
func (c *CategoryController) Store(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.categories.Create(req.Name, req.ParentID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, category)
}

// Update renames or reparents a category.
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	var req categoryRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.categories.Update(id, req.Name, req.ParentID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, category)
}

// Destroy soft-deletes a category.
func (c *CategoryController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.categories.Delete(id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"deleted": true})
}
