package clients

import (
	"github.com/go-chi/chi/v5"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/auth"
)

func (h *Handler) MountRoutes(r chi.Router, mw auth.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireUser)
		r.Get("/", h.List)
		r.Get("/{id}", h.Show)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
