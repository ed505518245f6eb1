// Package services holds the business rules between controllers and
// repositories. Services return apperr errors; controllers map them to HTTP.
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
)

// TokenPair is the login response payload.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// AuthService implements registration, login and the two token-refresh
// operations. Access and refresh minting stay separate endpoints on purpose:
// a client may renew access repeatedly and rotate refresh independently.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{users: repositories.NewUserRepository(db)}
}

// Register creates a new buyer or seller account. The admin role is not
// registrable; admin accounts come from the seeder only.
func (s *AuthService) Register(email, password, role string) (models.User, error) {
	if role != models.RoleBuyer && role != models.RoleSeller {
		return models.User{}, apperr.Validation("role must be buyer or seller")
	}

	taken, err := s.users.EmailTaken(email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, apperr.Conflict("Email already registered")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:    email,
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login verifies credentials and issues a fresh access/refresh pair.
func (s *AuthService) Login(email, password string) (TokenPair, error) {
	user, err := s.users.FindActiveByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPair{}, apperr.Unauthorized("Invalid email or password")
		}
		return TokenPair{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return TokenPair{}, apperr.Unauthorized("Invalid email or password")
	}

	access, err := auth.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// RefreshAccess mints a new, independently-expiring access token from a
// valid refresh token.
func (s *AuthService) RefreshAccess(refreshToken string) (string, error) {
	claims, err := s.validRefresh(refreshToken)
	if err != nil {
		return "", err
	}
	return auth.GenerateAccessToken(claims.UserID, claims.Role)
}

// RotateRefresh mints a new refresh token from a valid refresh token.
func (s *AuthService) RotateRefresh(refreshToken string) (string, error) {
	claims, err := s.validRefresh(refreshToken)
	if err != nil {
		return "", err
	}
	return auth.GenerateRefreshToken(claims.UserID, claims.Role)
}

// Me returns the account behind an authenticated request.
func (s *AuthService) Me(userID uint) (models.User, error) {
	user, err := s.users.FindActiveByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.Unauthorized("Account no longer active")
		}
		return models.User{}, err
	}
	return user, nil
}

// validRefresh validates the token and re-checks the account is still
// active, so deactivated users cannot keep minting tokens.
func (s *AuthService) validRefresh(refreshToken string) (*auth.Claims, error) {
	claims, err := auth.ValidateToken(refreshToken, auth.TypeRefresh)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if _, err := s.users.FindActiveByID(claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Account no longer active")
		}
		return nil, err
	}

	return claims, nil
}
