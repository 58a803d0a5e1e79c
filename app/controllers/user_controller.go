package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/bind"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

// UserController covers the profile, address book and admin user endpoints.
type UserController struct {
	users     *services.UserService
	addresses *services.AddressService
}

func NewUserController(users *services.UserService, addresses *services.AddressService) *UserController {
	return &UserController{users: users, addresses: addresses}
}

// UpdateProfile handles PUT /api/users. All fields are optional; absent
// fields are left unchanged.
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())

	var body struct {
		Name                     *string `json:"name"                   validate:"nullable,max=100"`
		DefaultShippingAddressID *uint   `json:"defaultShippingAddress" validate:"nullable,gt=0"`
		DefaultBillingAddressID  *uint   `json:"defaultBillingAddress"  validate:"nullable,gt=0"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, apperr.BadRequest(apperr.CodeUnprocessableEntity, err.Error()))
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	user, err := c.users.UpdateProfile(identity.UserID, services.ProfileUpdate{
		Name:                     body.Name,
		DefaultShippingAddressID: body.DefaultShippingAddressID,
		DefaultBillingAddressID:  body.DefaultBillingAddressID,
	})
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"user": user})
}

// AddAddress handles POST /api/users/address.
func (c *UserController) AddAddress(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())

	var body struct {
		LineOne string `json:"lineOne" validate:"required,max=255"`
		LineTwo string `json:"lineTwo" validate:"nullable,max=255"`
		City    string `json:"city"    validate:"required,max=100"`
		Country string `json:"country" validate:"required,max=100"`
		Pincode string `json:"pincode" validate:"required,size=6"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, apperr.BadRequest(apperr.CodeUnprocessableEntity, err.Error()))
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	address, err := c.addresses.Add(identity.UserID, services.AddressInput{
		LineOne: body.LineOne,
		LineTwo: body.LineTwo,
		City:    body.City,
		Country: body.Country,
		Pincode: body.Pincode,
	})
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Created(w, map[string]any{"address": address})
}

// ListAddresses handles GET /api/users/address.
func (c *UserController) ListAddresses(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())

	addresses, err := c.addresses.List(identity.UserID)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"addresses": addresses})
}

// DeleteAddress handles DELETE /api/users/address/{id}.
func (c *UserController) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())

	id, err := uintParam(r, "id", apperr.CodeAddressNotFound, "Address not found")
	if err != nil {
		response.Fail(w, err)
		return
	}

	if err := c.addresses.Remove(identity.UserID, id); err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"success": true})
}

// List handles GET /api/users (admin).
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	users, pagination, err := c.users.List(page, limit)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"users": users, "pagination": pagination})
}

// Get handles GET /api/users/{id} (admin).
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id", apperr.CodeUserNotFound, "User not found")
	if err != nil {
		response.Fail(w, err)
		return
	}

	user, err := c.users.Get(id)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"user": user})
}

// ChangeRole handles PUT /api/users/{id}/role (admin).
func (c *UserController) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id", apperr.CodeUserNotFound, "User not found")
	if err != nil {
		response.Fail(w, err)
		return
	}

	var body struct {
		Role string `json:"role" validate:"required,in=USER,ADMIN"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, apperr.BadRequest(apperr.CodeUnprocessableEntity, err.Error()))
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	user, err := c.users.ChangeRole(id, body.Role)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"user": user})
}
