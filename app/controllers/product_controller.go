package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/bind"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

// maxImageBytes caps product image uploads at 10 MB.
const maxImageBytes = 10 << 20

type ProductController struct {
	products *services.ProductService
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{products: services.NewProductService(db)}
}

// Index lists active products.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	items, pagination, err := c.products.List(page, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"items":      items,
		"pagination": pagination,
	})
}

// Show returns a single active product.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	product, err := c.products.Get(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, product)
}

// ByCategory lists active products within an active category.
func (c *ProductController) ByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	page, limit := pageParams(r)
	items, pagination, err := c.products.ListByCategory(id, page, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"items":      items,
		"pagination": pagination,
	})
}

// Store creates a product owned by the authenticated seller.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var req services.ProductInput
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Create(sellerID, req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, product)
}

// Update replaces a product's fields. Only the owning seller may call it.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	var req services.ProductInput
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Update(sellerID, id, req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, product)
}

// Destroy soft-deletes a product. Only the owning seller may call it.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.products.Delete(sellerID, id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"deleted": true})
}

// Reviews lists active reviews for an active product.
func (c *ProductController) Reviews(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	reviews, err := c.products.Reviews(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, reviews)
}

// UploadImage stores a product image on the configured disk and records its
// URL on the product. Multipart field name is "image".
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		response.BadRequest(w, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		response.ValidationError(w, map[string]string{"image": "image file is required"})
		return
	}
	defer file.Close()

	product, err := c.products.AttachImage(sellerID, id, header.Filename, file)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, product)
}
