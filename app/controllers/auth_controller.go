package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/bind"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Signup handles POST /api/auth/signup.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"     validate:"required,max=100"`
		Email    string `json:"email"    validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, apperr.BadRequest(apperr.CodeUnprocessableEntity, err.Error()))
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	user, err := c.service.Signup(body.Name, body.Email, body.Password)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Created(w, map[string]any{"user": user})
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"    validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, apperr.BadRequest(apperr.CodeUnprocessableEntity, err.Error()))
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	user, token, err := c.service.Login(body.Email, body.Password)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"user": user, "token": token})
}

// Me handles GET /api/auth/me.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromCtx(r.Context())
	if !ok {
		response.Fail(w, apperr.Unauthenticated("Unauthorized"))
		return
	}

	user, err := c.service.Me(identity.UserID)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"user": user})
}
