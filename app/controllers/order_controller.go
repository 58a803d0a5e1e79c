package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/bind"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Create handles POST /api/orders: materializes the caller's cart.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())

	order, err := c.service.Create(identity.UserID)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Created(w, map[string]any{"order": order})
}

// List handles GET /api/orders: the caller's own orders.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())

	orders, err := c.service.List(identity.UserID)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"orders": orders})
}

// Get handles GET /api/orders/{id}: one of the caller's own orders, with
// its derived current status.
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())

	id, err := uintParam(r, "id", apperr.CodeOrderNotFound, "Order not found")
	if err != nil {
		response.Fail(w, err)
		return
	}

	order, err := c.service.Get(identity.UserID, id)
	if err != nil {
		response.Fail(w, err)
		return
	}

	status, err := c.service.CurrentStatus(order.ID)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"order": order, "status": status})
}

// Cancel handles PUT /api/orders/{id}/cancel.
func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())

	id, err := uintParam(r, "id", apperr.CodeOrderNotFound, "Order not found")
	if err != nil {
		response.Fail(w, err)
		return
	}

	order, err := c.service.Cancel(identity.UserID, id)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"order": order})
}

// ListAll handles GET /api/orders/admin/all (admin): all orders, optionally
// filtered by a status the order carried at any point, skip-paginated.
func (c *OrderController) ListAll(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	status := r.URL.Query().Get("status")

	orders, total, err := c.service.ListAll(status, skip)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{
		"count":      len(orders),
		"totalCount": total,
		"skip":       skip,
		"orders":     orders,
	})
}

// GetAny handles GET /api/orders/admin/{id} (admin): any user's order.
func (c *OrderController) GetAny(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id", apperr.CodeOrderNotFound, "Order not found")
	if err != nil {
		response.Fail(w, err)
		return
	}

	order, err := c.service.GetAny(id)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"order": order})
}

// SetStatus handles PUT /api/orders/{id}/status (admin).
func (c *OrderController) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id", apperr.CodeOrderNotFound, "Order not found")
	if err != nil {
		response.Fail(w, err)
		return
	}

	var body struct {
		Status string `json:"status" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, apperr.BadRequest(apperr.CodeUnprocessableEntity, err.Error()))
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	order, err := c.service.SetStatus(id, body.Status)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]any{"order": order})
}
