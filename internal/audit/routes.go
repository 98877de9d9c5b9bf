package audit

import (
	"github.com/go-chi/chi/v5"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/auth"
)

// The audit trail is only visible to administrators.
func (h *Handler) MountRoutes(r chi.Router, mw auth.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAdmin)
		r.Get("/", h.Timeline)
		r.Get("/export", h.Export)
	})
}
