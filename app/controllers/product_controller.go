package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/bind"
	"github.com/shashiranjanraj/bazaar/pkg/response"
	"github.com/shopspring/decimal"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

type productBody struct {
	Name        string          `json:"name"        validate:"required,max=255"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price"       validate:"required,gte=0"`
	Tags        []string        `json:"tags"`
}

func (b productBody) input() services.ProductInput {
	return services.ProductInput{
		Name:        b.Name,
		Description: b.Description,
		Price:       b.Price,
		Tags:        b.Tags,
	}
}

// Create handles POST /api/products (admin).
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var body productBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, apperr.BadRequest(apperr.CodeUnprocessableEntity, err.Error()))
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	product, err := c.service.Create(body.input())
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Created(w, map[string]any{"product": product})
}

// Update handles PUT /api/products/{id} (admin). Full replace: every
// mutable field is taken from the body.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id", apperr.CodeProductNotFound, "Product not found")
	if err != nil {
		response.Fail(w, err)
		return
	}

	var body productBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, apperr.BadRequest(apperr.CodeUnprocessableEntity, err.Error()))
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	product, err := c.service.Update(id, body.input())
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"product": product})
}

// Delete handles DELETE /api/products/{id} (admin).
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id", apperr.CodeProductNotFound, "Product not found")
	if err != nil {
		response.Fail(w, err)
		return
	}

	if err := c.service.Delete(id); err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"success": true})
}

// List handles GET /api/products.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	products, pagination, err := c.service.List(page, limit)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"products": products, "pagination": pagination})
}

// Search handles GET /api/products/search?q=.
func (c *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.Search(r.URL.Query().Get("q"))
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"products": products})
}

// Get handles GET /api/products/{id}.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id", apperr.CodeProductNotFound, "Product not found")
	if err != nil {
		response.Fail(w, err)
		return
	}

	product, err := c.service.Get(id)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"product": product})
}
