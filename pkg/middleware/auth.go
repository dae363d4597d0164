package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/priyadarshi/darzi/pkg/auth"
	"github.com/priyadarshi/darzi/pkg/response"
)

type claimsKey struct{}

// Auth validates the bearer token on the request and stores the verified
// claims in the context. Missing, malformed, or expired tokens get a 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(w, "Missing bearer token")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the verified token claims stored by Auth.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFromCtx(ctx)
	if !ok {
		return "", false
	}
	return claims.Role, true
}
