package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/testkit"
)

func TestProductCreateBindsSeller(t *testing.T) {
	db := testkit.NewDB(t)
	seller := seedUser(t, db, "seller@example.com", models.RoleSeller)
	category := seedCategory(t, db, "Electronics")

	svc := services.NewProductService(db)

	product, err := svc.Create(seller.ID, services.ProductInput{
		Name:       "Widget",
		Price:      9.99,
		Stock:      10,
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, seller.ID, product.SellerID)
	assert.Nil(t, product.Rating)
}

func TestProductCreateInactiveCategory(t *testing.T) {
	db := testkit.NewDB(t)
	seller := seedUser(t, db, "seller@example.com", models.RoleSeller)
	category := seedCategory(t, db, "Electronics")
	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", category.ID).
		Update("is_active", false).Error)

	svc := services.NewProductService(db)

	_, err := svc.Create(seller.ID, services.ProductInput{
		Name:       "Widget",
		Price:      9.99,
		CategoryID: category.ID,
	})
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Status)
}

func TestProductUpdateOwnership(t *testing.T) {
	db := testkit.NewDB(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleSeller)
	rival := seedUser(t, db, "rival@example.com", models.RoleSeller)
	category := seedCategory(t, db, "Electronics")
	product := seedProduct(t, db, owner.ID, category.ID)

	svc := services.NewProductService(db)
	input := services.ProductInput{
		Name:       "Widget v2",
		Price:      19.99,
		Stock:      5,
		CategoryID: category.ID,
	}

	// A non-owner gets Forbidden, never NotFound.
	_, err := svc.Update(rival.ID, product.ID, input)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 403, appErr.Status)

	updated, err := svc.Update(owner.ID, product.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", updated.Name)
	assert.Equal(t, 19.99, updated.Price)
}

func TestProductDeleteOwnership(t *testing.T) {
	db := testkit.NewDB(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleSeller)
	rival := seedUser(t, db, "rival@example.com", models.RoleSeller)
	category := seedCategory(t, db, "Electronics")
	product := seedProduct(t, db, owner.ID, category.ID)

	svc := services.NewProductService(db)

	err := svc.Delete(rival.ID, product.ID)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 403, appErr.Status)

	require.NoError(t, svc.Delete(owner.ID, product.ID))

	_, err = svc.Get(product.ID)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Status)
}

func TestProductGetHiddenByInactiveCategory(t *testing.T) {
	db := testkit.NewDB(t)
	seller := seedUser(t, db, "seller@example.com", models.RoleSeller)
	category := seedCategory(t, db, "Electronics")
	product := seedProduct(t, db, seller.ID, category.ID)

	svc := services.NewProductService(db)

	_, err := svc.Get(product.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", category.ID).
		Update("is_active", false).Error)

	// The product itself is still active but its category is gone.
	_, err = svc.Get(product.ID)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Status)

	_, _, err = svc.ListByCategory(category.ID, 1, 20)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Status)
}

func TestProductReviewsForInactiveProduct(t *testing.T) {
	db := testkit.NewDB(t)
	seller := seedUser(t, db, "seller@example.com", models.RoleSeller)
	category := seedCategory(t, db, "Electronics")
	product := seedProduct(t, db, seller.ID, category.ID)

	svc := services.NewProductService(db)

	reviews, err := svc.Reviews(product.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	require.NoError(t, svc.Delete(seller.ID, product.ID))

	_, err = svc.Reviews(product.ID)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Status)
}
