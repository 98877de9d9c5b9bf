package auth

import (
	"log/slog"
	"net/http"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/platform/httpx"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

const sessionRoleKey = "role"

// Middleware gates routes on the session user and its role.
type Middleware struct {
	Logger *slog.Logger
}

// RequireUser ensures a logged-in session.
func (m Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil || sess.User() == "" {
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin ensures the session user carries the admin role.
func (m Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil || sess.User() == "" {
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		if Role(sess.Get(sessionRoleKey)) != RoleAdmin {
			if m.Logger != nil {
				m.Logger.Warn("admin route denied", slog.String("path", r.URL.Path), slog.String("user", sess.User()))
			}
			httpx.RespondError(w, shared.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
