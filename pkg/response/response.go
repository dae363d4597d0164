// Package response writes JSON API responses.
//
// Bodies are flat JSON shapes (no envelope wrapper) because the frontend
// depends on the exact response contracts, e.g. errors are always
// {"message": "..."} with optional per-field "errors".
package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Success writes v with 200.
func Success(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Created writes v with 201 and a Location header when location is non-empty.
func Created(w http.ResponseWriter, location string, v interface{}) {
	if location != "" {
		w.Header().Set("Location", location)
	}
	JSON(w, http.StatusCreated, v)
}

// NoContent writes an empty 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes {"message": message} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// ValidationError writes a 400 with an itemized field → message map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusBadRequest, map[string]interface{}{
		"message": "Validation failed",
		"errors":  errs,
	})
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden writes a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Not found"
	}
	Error(w, http.StatusNotFound, message)
}

// Internal writes a generic 500; details stay in the server log.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal Server Error")
}
