package controllers

import (
	"fmt"
	"net/http"

	"github.com/priyadarshi/darzi/app/services"
	"github.com/priyadarshi/darzi/pkg/bind"
	"github.com/priyadarshi/darzi/pkg/response"
)

type MeasurementController struct {
	measurements *services.MeasurementService
}

func NewMeasurementController(measurements *services.MeasurementService) *MeasurementController {
	return &MeasurementController{measurements: measurements}
}

// Get handles GET /api/measurements/{id}.
func (c *MeasurementController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	m, err := c.measurements.Get(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, m)
}

// Create handles POST /api/measurements.
func (c *MeasurementController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.MeasurementInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	m, err := c.measurements.Create(in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, fmt.Sprintf("/api/measurements/%d", m.ID), m)
}

// Update handles PUT /api/measurements/{id}. Absent body fields are untouched.
func (c *MeasurementController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in services.MeasurementUpdate
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	m, err := c.measurements.Update(id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, m)
}

// Delete handles DELETE /api/measurements/{id}.
func (c *MeasurementController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.measurements.Delete(id); err != nil {
		respondError(w, r, err)
		return
	}
	response.NoContent(w)
}
