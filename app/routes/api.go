// Package routes wires the HTTP surface onto the controllers.
package routes

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/controllers"
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/rbac"
	"github.com/shashiranjanraj/bazaar/pkg/router"
)

// RegisterAPI mounts every route. Reads are public; product writes require
// the seller role, review writes the buyer role (admins may also delete
// reviews). Category writes are unauthenticated.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	authController := controllers.NewAuthController(db)
	categoryController := controllers.NewCategoryController(db)
	productController := controllers.NewProductController(db)
	reviewController := controllers.NewReviewController(db)

	users := r.Group("/users")
	users.Post("/", "users.register", authController.Register)
	users.Post("/token", "users.token", authController.Token)
	users.Post("/access-token", "users.access_token", authController.AccessToken)
	users.Post("/refresh-token", "users.refresh_token", authController.RefreshToken)
	users.Get("/me", "users.me", authController.Me, middleware.Auth)

	categories := r.Group("/categories")
	categories.Get("/", "categories.index", categoryController.Index)
	categories.Post("/", "categories.store", categoryController.Store)
	categories.Put("/{id}", "categories.update", categoryController.Update)
	categories.Delete("/{id}", "categories.destroy", categoryController.Destroy)

	products := r.Group("/products")
	products.Get("/", "products.index", productController.Index)
	products.Get("/{id}", "products.show", productController.Show)
	products.Get("/category/{id}", "products.by_category", productController.ByCategory)
	products.Get("/{id}/reviews", "products.reviews", productController.Reviews)

	sellerOnly := products.Group("", middleware.Auth, rbac.HasRole(models.RoleSeller))
	sellerOnly.Post("/", "products.store", productController.Store)
	sellerOnly.Put("/{id}", "products.update", productController.Update)
	sellerOnly.Delete("/{id}", "products.destroy", productController.Destroy)
	sellerOnly.Post("/{id}/image", "products.image", productController.UploadImage)

	reviews := r.Group("/reviews")
	reviews.Get("/", "reviews.index", reviewController.Index)
	reviews.Post("/", "reviews.store", reviewController.Store,
		middleware.Auth, rbac.HasRole(models.RoleBuyer))
	reviews.Delete("/{id}", "reviews.destroy", reviewController.Destroy,
		middleware.Auth, rbac.HasRole(models.RoleBuyer, models.RoleAdmin))
}
