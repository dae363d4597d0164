// Package controllers maps HTTP requests onto the service layer and
// service errors back onto status codes.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/priyadarshi/darzi/app/services"
	"github.com/priyadarshi/darzi/pkg/logger"
	"github.com/priyadarshi/darzi/pkg/response"
)

// pathID parses the {id} path segment. Returns 0 and writes a 404 when it
// is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.NotFound(w, "")
		return 0, false
	}
	return uint(id), true
}

// respondError translates service errors into HTTP responses. Anything
// untyped is logged and becomes a generic 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *services.ValidationError
	var dErr *services.DuplicateError

	switch {
	case errors.As(err, &vErr):
		response.ValidationError(w, vErr.Fields)
	case errors.As(err, &dErr):
		response.Error(w, http.StatusBadRequest, dErr.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, "")
	case errors.Is(err, services.ErrConflict):
		response.Error(w, http.StatusConflict, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
		response.Internal(w)
	}
}
