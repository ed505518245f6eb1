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

func TestCategoryCreateWithParent(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewCategoryService(db)

	root, err := svc.Create("Electronics", nil)
	require.NoError(t, err)

	child, err := svc.Create("Phones", &root.ID)
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)
}

func TestCategoryCreateMissingParent(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewCategoryService(db)

	missing := uint(999)
	_, err := svc.Create("Phones", &missing)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 422, appErr.Status)
}

func TestCategoryUpdateRejectsSelfParent(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewCategoryService(db)

	category, err := svc.Create("Electronics", nil)
	require.NoError(t, err)

	_, err = svc.Update(category.ID, "Electronics", &category.ID)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 422, appErr.Status)
}

func TestCategoryUpdateRejectsCycle(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewCategoryService(db)

	a, err := svc.Create("A", nil)
	require.NoError(t, err)
	b, err := svc.Create("B", &a.ID)
	require.NoError(t, err)
	c, err := svc.Create("C", &b.ID)
	require.NoError(t, err)

	// Reparenting A under C would close the loop A -> B -> C -> A.
	_, err = svc.Update(a.ID, "A", &c.ID)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 422, appErr.Status)
}

func TestCategorySoftDeleteHidesFromList(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewCategoryService(db)

	category, err := svc.Create("Electronics", nil)
	require.NoError(t, err)
	keep, err := svc.Create("Books", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(category.ID))

	items, _, err := svc.List(1, 20)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ID)

	// Deleting twice is a 404.
	err = svc.Delete(category.ID)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Status)

	// The row survives in the table for historical references.
	var raw models.Category
	require.NoError(t, db.Unscoped().First(&raw, category.ID).Error)
	assert.False(t, raw.IsActive)
}
