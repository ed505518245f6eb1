package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
	"github.com/shashiranjanraj/bazaar/pkg/testkit"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewAuthService(db)

	user, err := svc.Register("buyer@example.com", "s3cret-pass", models.RoleBuyer)
	require.NoError(t, err)
	assert.Equal(t, models.RoleBuyer, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	pair, err := svc.Login("buyer@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "bearer", pair.TokenType)

	claims, err := auth.ValidateToken(pair.AccessToken, auth.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleBuyer, claims.Role)

	_, err = auth.ValidateToken(pair.RefreshToken, auth.TypeRefresh)
	require.NoError(t, err)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewAuthService(db)

	_, err := svc.Register("admin@example.com", "s3cret-pass", models.RoleAdmin)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 422, appErr.Status)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewAuthService(db)

	_, err := svc.Register("dup@example.com", "s3cret-pass", models.RoleBuyer)
	require.NoError(t, err)

	_, err = svc.Register("dup@example.com", "other-pass", models.RoleSeller)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.Status)
}

func TestLoginBadCredentials(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewAuthService(db)

	_, err := svc.Register("buyer@example.com", "s3cret-pass", models.RoleBuyer)
	require.NoError(t, err)

	var appErr *apperr.Error

	_, err = svc.Login("buyer@example.com", "wrong-pass")
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 401, appErr.Status)

	_, err = svc.Login("nobody@example.com", "s3cret-pass")
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 401, appErr.Status)
}

func TestRefreshTokenFlows(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewAuthService(db)

	_, err := svc.Register("buyer@example.com", "s3cret-pass", models.RoleBuyer)
	require.NoError(t, err)
	pair, err := svc.Login("buyer@example.com", "s3cret-pass")
	require.NoError(t, err)

	access, err := svc.RefreshAccess(pair.RefreshToken)
	require.NoError(t, err)
	_, err = auth.ValidateToken(access, auth.TypeAccess)
	require.NoError(t, err)

	rotated, err := svc.RotateRefresh(pair.RefreshToken)
	require.NoError(t, err)
	_, err = auth.ValidateToken(rotated, auth.TypeRefresh)
	require.NoError(t, err)

	// An access token cannot stand in for a refresh token.
	var appErr *apperr.Error
	_, err = svc.RefreshAccess(pair.AccessToken)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 401, appErr.Status)
}

func TestRefreshRejectedForDeactivatedUser(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewAuthService(db)

	user, err := svc.Register("buyer@example.com", "s3cret-pass", models.RoleBuyer)
	require.NoError(t, err)
	pair, err := svc.Login("buyer@example.com", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("is_active", false).Error)

	var appErr *apperr.Error
	_, err = svc.RefreshAccess(pair.RefreshToken)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 401, appErr.Status)
}
