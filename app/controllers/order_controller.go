package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/priyadarshi/darzi/app/services"
	"github.com/priyadarshi/darzi/pkg/bind"
	"github.com/priyadarshi/darzi/pkg/response"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// List handles GET /api/orders?pageNumber&pageSize&customerId&sortBy.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("pageNumber"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	var customerID *uint
	if raw := q.Get("customerId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.ValidationError(w, map[string]string{"customerId": "must be a positive integer"})
			return
		}
		cid := uint(id)
		customerID = &cid
	}

	result, err := c.orders.List(page, pageSize, customerID, q.Get("sortBy"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, result)
}

// Get handles GET /api/orders/{id}.
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	order, err := c.orders.Get(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, order)
}

// Create handles POST /api/orders.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.OrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.Create(in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, fmt.Sprintf("/api/orders/%d", order.ID), order)
}

// Update handles PUT /api/orders/{id}. Absent body fields are untouched.
func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in services.OrderUpdate
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.Update(id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, order)
}

// UpdateStatus handles PUT /api/orders/{id}/status. The body is the bare
// numeric status code, e.g. `3`.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 64))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	code, err := strconv.Atoi(strings.TrimSpace(string(body)))
	if err != nil {
		response.ValidationError(w, map[string]string{"status": "body must be a numeric status code"})
		return
	}

	order, err := c.orders.UpdateStatus(id, code, "")
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, order)
}

// Delete handles DELETE /api/orders/{id}.
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.orders.Delete(id); err != nil {
		respondError(w, r, err)
		return
	}
	response.NoContent(w)
}

// Pending handles GET /api/orders/pending.
func (c *OrderController) Pending(w http.ResponseWriter, r *http.Request) {
	items, err := c.orders.Pending()
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, items)
}

// Progress handles GET /api/orders/{id}/progress.
func (c *OrderController) Progress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	history, err := c.orders.Progress(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, history)
}
