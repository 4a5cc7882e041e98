package middleware

import (
	"log/slog"
	"net/http"

	"github.com/vyrtus/helpdesk/internal/auth"
)

// Require gates a route on a predicate over the session user's permission
// flags.
func Require(check func(auth.Permissions) bool, name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !check(user.Permissions) {
				slog.Warn("access denied: missing permission",
					"user_id", user.ID,
					"required_permission", name,
					"path", r.URL.Path)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireManageUsers() func(http.Handler) http.Handler {
	return Require(func(p auth.Permissions) bool { return p.CanManageUsers }, "canManageUsers")
}

func RequireViewTickets() func(http.Handler) http.Handler {
	return Require(func(p auth.Permissions) bool { return p.CanViewTickets }, "canViewTickets")
}

func RequireViewAssets() func(http.Handler) http.Handler {
	return Require(func(p auth.Permissions) bool { return p.CanViewAssets }, "canViewAssets")
}
