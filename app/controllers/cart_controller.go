package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/bind"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

type CartController struct {
	service *services.CartService
}

func NewCartController(service *services.CartService) *CartController {
	return &CartController{service: service}
}

// Add handles POST /api/carts.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())

	var body struct {
		ProductID uint `json:"productId" validate:"required,gt=0"`
		Quantity  int  `json:"quantity"  validate:"required,gt=0"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, apperr.BadRequest(apperr.CodeUnprocessableEntity, err.Error()))
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	item, err := c.service.Add(identity.UserID, body.ProductID, body.Quantity)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Created(w, map[string]any{"item": item})
}

// Get handles GET /api/carts.
func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())

	cart, err := c.service.Get(identity.UserID)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, cart)
}

// SetQuantity handles PUT /api/carts/{id}.
func (c *CartController) SetQuantity(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())

	id, err := uintParam(r, "id", apperr.CodeCartItemNotFound, "Cart item not found")
	if err != nil {
		response.Fail(w, err)
		return
	}

	var body struct {
		Quantity int `json:"quantity" validate:"required,gt=0"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, apperr.BadRequest(apperr.CodeUnprocessableEntity, err.Error()))
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	item, err := c.service.SetQuantity(identity.UserID, id, body.Quantity)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"item": item})
}

// Remove handles DELETE /api/carts/{id}.
func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())

	id, err := uintParam(r, "id", apperr.CodeCartItemNotFound, "Cart item not found")
	if err != nil {
		response.Fail(w, err)
		return
	}

	if err := c.service.Remove(identity.UserID, id); err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"success": true})
}
