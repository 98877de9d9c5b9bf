package returns

import (
	"github.com/go-chi/chi/v5"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/auth"
)

func (h *Handler) MountRoutes(r chi.Router, mw auth.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireUser)
		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", h.ListSupplierReturns)
			r.Get("/{id}", h.ShowSupplierReturn)
			r.Post("/", h.CreateSupplierReturn)
			r.Delete("/{id}", h.DeleteSupplierReturn)
		})
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.ListClientReturns)
			r.Get("/{id}", h.ShowClientReturn)
			r.Post("/", h.CreateClientReturn)
			r.Delete("/{id}", h.DeleteClientReturn)
		})
	})
}
