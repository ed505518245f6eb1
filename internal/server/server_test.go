package server_test

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/internal/server"
	"github.com/shashiranjanraj/bazaar/pkg/testkit"
)

type idHolder struct {
	ID uint `json:"ID"`
}

type productBody struct {
	ID     uint    `json:"ID"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Rating *int    `json:"rating"`
	Seller uint    `json:"seller_id"`
}

type tokenBody struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func registerAndLogin(t *testing.T, h http.Handler, email, role string) tokenBody {
	t.Helper()

	rec := testkit.DoJSON(t, h, http.MethodPost, "/users/", "", map[string]string{
		"email":    email,
		"password": "s3cret-pass",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = testkit.DoForm(t, h, http.MethodPost, "/users/token", url.Values{
		"username": {email},
		"password": {"s3cret-pass"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pair tokenBody
	testkit.DataField(t, rec, &pair)
	require.NotEmpty(t, pair.AccessToken)
	return pair
}

func TestCatalogEndToEnd(t *testing.T) {
	db := testkit.NewDB(t)
	h := server.Handler(db)

	seller := registerAndLogin(t, h, "seller@example.com", "seller")
	buyer := registerAndLogin(t, h, "buyer@example.com", "buyer")

	// Create a category (no auth required).
	rec := testkit.DoJSON(t, h, http.MethodPost, "/categories/", "", map[string]interface{}{
		"name": "Electronics",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var category idHolder
	testkit.DataField(t, rec, &category)

	// Seller creates a product.
	rec = testkit.DoJSON(t, h, http.MethodPost, "/products/", seller.AccessToken, map[string]interface{}{
		"name":        "Widget",
		"price":       9.99,
		"stock":       10,
		"category_id": category.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var product productBody
	testkit.DataField(t, rec, &product)
	assert.Nil(t, product.Rating)

	// A buyer may not create products.
	rec = testkit.DoJSON(t, h, http.MethodPost, "/products/", buyer.AccessToken, map[string]interface{}{
		"name":        "Gadget",
		"price":       1.99,
		"category_id": category.ID,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	// No token at all is 401.
	rec = testkit.DoJSON(t, h, http.MethodPost, "/products/", "", map[string]interface{}{
		"name":        "Gadget",
		"price":       1.99,
		"category_id": category.ID,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())

	// Buyer reviews the product.
	rec = testkit.DoJSON(t, h, http.MethodPost, "/reviews/", buyer.AccessToken, map[string]interface{}{
		"product_id": product.ID,
		"grade":      4,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var review idHolder
	testkit.DataField(t, rec, &review)

	// Rating is now visible on the product.
	rec = testkit.DoJSON(t, h, http.MethodGet, productPath(product.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var fetched productBody
	testkit.DataField(t, rec, &fetched)
	require.NotNil(t, fetched.Rating)
	assert.Equal(t, 4, *fetched.Rating)

	// A second review from the same buyer conflicts.
	rec = testkit.DoJSON(t, h, http.MethodPost, "/reviews/", buyer.AccessToken, map[string]interface{}{
		"product_id": product.ID,
		"grade":      5,
	})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// Sellers may not review.
	rec = testkit.DoJSON(t, h, http.MethodPost, "/reviews/", seller.AccessToken, map[string]interface{}{
		"product_id": product.ID,
		"grade":      1,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	// Buyer deletes the review; the rating clears.
	rec = testkit.DoJSON(t, h, http.MethodDelete, reviewPath(review.ID), buyer.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = testkit.DoJSON(t, h, http.MethodGet, productPath(product.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	testkit.DataField(t, rec, &fetched)
	assert.Nil(t, fetched.Rating)
}

func TestProductOwnershipOverHTTP(t *testing.T) {
	db := testkit.NewDB(t)
	h := server.Handler(db)

	owner := registerAndLogin(t, h, "owner@example.com", "seller")
	rival := registerAndLogin(t, h, "rival@example.com", "seller")

	rec := testkit.DoJSON(t, h, http.MethodPost, "/categories/", "", map[string]interface{}{
		"name": "Books",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var category idHolder
	testkit.DataField(t, rec, &category)

	rec = testkit.DoJSON(t, h, http.MethodPost, "/products/", owner.AccessToken, map[string]interface{}{
		"name":        "Novel",
		"price":       14.50,
		"stock":       3,
		"category_id": category.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var product productBody
	testkit.DataField(t, rec, &product)

	update := map[string]interface{}{
		"name":        "Novel 2nd ed",
		"price":       16.00,
		"stock":       3,
		"category_id": category.ID,
	}

	rec = testkit.DoJSON(t, h, http.MethodPut, productPath(product.ID), rival.AccessToken, update)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = testkit.DoJSON(t, h, http.MethodPut, productPath(product.ID), owner.AccessToken, update)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = testkit.DoJSON(t, h, http.MethodDelete, productPath(product.ID), rival.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = testkit.DoJSON(t, h, http.MethodDelete, productPath(product.ID), owner.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = testkit.DoJSON(t, h, http.MethodGet, productPath(product.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestCategorySoftDeleteHidesProducts(t *testing.T) {
	db := testkit.NewDB(t)
	h := server.Handler(db)

	seller := registerAndLogin(t, h, "seller@example.com", "seller")

	rec := testkit.DoJSON(t, h, http.MethodPost, "/categories/", "", map[string]interface{}{
		"name": "Clothing",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var category idHolder
	testkit.DataField(t, rec, &category)

	rec = testkit.DoJSON(t, h, http.MethodPost, "/products/", seller.AccessToken, map[string]interface{}{
		"name":        "Shirt",
		"price":       25.00,
		"stock":       7,
		"category_id": category.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var product productBody
	testkit.DataField(t, rec, &product)

	rec = testkit.DoJSON(t, h, http.MethodDelete, categoryPath(category.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The product row is untouched but no longer reachable.
	var raw models.Product
	require.NoError(t, db.First(&raw, product.ID).Error)
	assert.True(t, raw.IsActive)

	rec = testkit.DoJSON(t, h, http.MethodGet, productPath(product.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestMeEndpoint(t *testing.T) {
	db := testkit.NewDB(t)
	h := server.Handler(db)

	buyer := registerAndLogin(t, h, "buyer@example.com", "buyer")

	rec := testkit.DoJSON(t, h, http.MethodGet, "/users/me", buyer.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	testkit.DataField(t, rec, &me)
	assert.Equal(t, "buyer@example.com", me.Email)
	assert.Equal(t, "buyer", me.Role)

	// A refresh token is not an access token.
	rec = testkit.DoJSON(t, h, http.MethodGet, "/users/me", buyer.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())

	rec = testkit.DoJSON(t, h, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
}

func TestTokenRefreshOverHTTP(t *testing.T) {
	db := testkit.NewDB(t)
	h := server.Handler(db)

	buyer := registerAndLogin(t, h, "buyer@example.com", "buyer")

	rec := testkit.DoJSON(t, h, http.MethodPost, "/users/access-token", "", map[string]string{
		"refresh_token": buyer.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var minted struct {
		AccessToken string `json:"access_token"`
	}
	testkit.DataField(t, rec, &minted)
	require.NotEmpty(t, minted.AccessToken)

	rec = testkit.DoJSON(t, h, http.MethodGet, "/users/me", minted.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Passing an access token where a refresh token is expected fails.
	rec = testkit.DoJSON(t, h, http.MethodPost, "/users/refresh-token", "", map[string]string{
		"refresh_token": buyer.AccessToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
}

func productPath(id uint) string  { return "/products/" + itoa(id) }
func categoryPath(id uint) string { return "/categories/" + itoa(id) }
func reviewPath(id uint) string   { return "/reviews/" + itoa(id) }

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }
