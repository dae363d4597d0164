package controllers

import (
	"fmt"
	"net/http"

	"github.com/priyadarshi/darzi/app/services"
	"github.com/priyadarshi/darzi/pkg/bind"
	"github.com/priyadarshi/darzi/pkg/response"
)

type CustomerController struct {
	customers    *services.CustomerService
	orders       *services.OrderService
	measurements *services.MeasurementService
}

func NewCustomerController(customers *services.CustomerService, orders *services.OrderService, measurements *services.MeasurementService) *CustomerController {
	return &CustomerController{customers: customers, orders: orders, measurements: measurements}
}

// List handles GET /api/customers.
func (c *CustomerController) List(w http.ResponseWriter, r *http.Request) {
	customers, err := c.customers.List()
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, customers)
}

// Get handles GET /api/customers/{id}.
func (c *CustomerController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	customer, err := c.customers.Get(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, customer)
}

// Create handles POST /api/customers.
func (c *CustomerController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CustomerInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	customer, err := c.customers.Create(in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, fmt.Sprintf("/api/customers/%d", customer.ID), customer)
}

// Update handles PUT /api/customers/{id}. Absent body fields are untouched.
func (c *CustomerController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in services.CustomerUpdate
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	customer, err := c.customers.Update(id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, customer)
}

// Delete handles DELETE /api/customers/{id}. Refused with 409 while the
// customer still has orders; deleting an absent customer is a no-op.
func (c *CustomerController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.customers.Delete(id); err != nil {
		respondError(w, r, err)
		return
	}
	response.NoContent(w)
}

// Orders handles GET /api/customers/{id}/orders.
func (c *CustomerController) Orders(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	orders, err := c.orders.ByCustomer(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, orders)
}

// Measurements handles GET /api/customers/{id}/measurements.
func (c *CustomerController) Measurements(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ms, err := c.measurements.ByCustomer(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, ms)
}
