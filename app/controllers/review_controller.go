package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/bind"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{reviews: services.NewReviewService(db)}
}

// Index lists active reviews.
func (c *ReviewController) Index(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	items, pagination, err := c.reviews.List(page, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"items":      items,
		"pagination": pagination,
	})
}

// Store creates a review by the authenticated buyer.
func (c *ReviewController) Store(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var req services.ReviewInput
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	review, err := c.reviews.Create(userID, req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, review)
}

// Destroy soft-deletes a review. Authors may delete their own; admins may
// delete any.
func (c *ReviewController) Destroy(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	role, _ := middleware.RoleFromCtx(r)

	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.reviews.Delete(userID, role, id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"deleted": true})
}
