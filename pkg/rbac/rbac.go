// Package rbac provides declarative role-based access control.
//
// Instead of per-handler role checks, the application declares one Policy
// table up front and attaches Require(key) middleware to route groups:
//
//	var policy = rbac.Policy{
//	    "orders.manage":    {"Admin"},
//	    "customers.manage": {"Admin"},
//	}
//	admin := api.Group("/orders", policy.Require("orders.manage"))
//
// Require assumes middleware.Auth has already run so the role is in the
// request context.
package rbac

import (
	"net/http"

	"github.com/priyadarshi/darzi/pkg/middleware"
	"github.com/priyadarshi/darzi/pkg/response"
)

// Policy maps a permission key to the roles allowed to use it.
type Policy map[string][]string

// Require returns middleware enforcing the roles registered under key.
// An unknown key denies everyone; that makes a missing table entry a
// visible failure instead of an open route.
func (p Policy) Require(key string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool)
	for _, role := range p[key] {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r.Context())
			if !ok || !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
