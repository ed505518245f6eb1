package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/bind"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{auth: services.NewAuthService(db)}
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"required,in=buyer,seller"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Register creates a buyer or seller account.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.auth.Register(req.Email, req.Password, req.Role)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, user)
}

// Token is the password-grant login. Credentials arrive as form fields
// username and password; username carries the email.
func (c *AuthController) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "invalid form body")
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		response.ValidationError(w, map[string]string{
			"username": "username and password are required",
		})
		return
	}

	pair, err := c.auth.Login(email, password)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, pair)
}

// AccessToken mints a new access token from a valid refresh token.
func (c *AuthController) AccessToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.auth.RefreshAccess(req.RefreshToken)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// RefreshToken rotates the refresh token itself.
func (c *AuthController) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.auth.RotateRefresh(req.RefreshToken)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{
		"refresh_token": token,
		"token_type":    "bearer",
	})
}

// Me returns the authenticated user's account.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.auth.Me(userID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, user)
}
