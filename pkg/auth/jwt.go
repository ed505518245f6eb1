// Package auth handles password hashing and the two JWT flavours the API
// issues: short-lived access tokens and long-lived refresh tokens. The two
// are distinguished by the TokenType claim, so a refresh token can never be
// used on an endpoint that expects an access token and vice versa.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/bazaar/config"
)

const (
	// TypeAccess marks tokens accepted by the Authorization header.
	TypeAccess = "access"
	// TypeRefresh marks tokens accepted only by the token-refresh endpoints.
	TypeRefresh = "refresh"
)

// ErrWrongTokenType is returned when a token parses fine but carries the
// wrong type discriminator.
var ErrWrongTokenType = errors.New("auth: wrong token type")

// Claims holds the typed JWT payload.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

// GenerateAccessToken creates a signed access JWT (default lifetime 30 min).
func GenerateAccessToken(userID uint, role string) (string, error) {
	return generate(userID, role, TypeAccess, config.AccessTokenTTL())
}

// GenerateRefreshToken creates a signed refresh JWT (default lifetime 7 days).
func GenerateRefreshToken(userID uint, role string) (string, error) {
	return generate(userID, role, TypeRefresh, config.RefreshTokenTTL())
}

func generate(userID uint, role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses t, verifies signature and expiry, and checks that the
// token carries the expected type.
func ValidateToken(t, expectedType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.TokenType != expectedType {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
