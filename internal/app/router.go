package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/audit"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/auth"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/clients"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/employees"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/products"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/suppliers"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/vatrates"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/platform/httpx"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/purchases"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/returns"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/sales"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/users"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/report"
)

// RouterParams carries everything the HTTP surface needs.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager

	Auth      *auth.Handler
	AuthMW    auth.Middleware
	Clients   *clients.Handler
	Suppliers *suppliers.Handler
	Employees *employees.Handler
	VATRates  *vatrates.Handler
	Products  *products.Handler
	Users     *users.Handler
	Purchases *purchases.Handler
	Sales     *sales.Handler
	Returns   *returns.Handler
	Audit     *audit.Handler
	Reports   *report.Handler
	Dashboard *DashboardService
}

// NewRouter assembles the middleware stack and mounts every module.
func NewRouter(p RouterParams) chi.Router {
	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         p.Logger,
		Config:         p.Config,
		SessionManager: p.SessionManager,
		CSRFManager:    p.CSRFManager,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) { p.Auth.MountRoutes(r) })
		r.Route("/clients", func(r chi.Router) { p.Clients.MountRoutes(r, p.AuthMW) })
		r.Route("/suppliers", func(r chi.Router) { p.Suppliers.MountRoutes(r, p.AuthMW) })
		r.Route("/employees", func(r chi.Router) { p.Employees.MountRoutes(r, p.AuthMW) })
		r.Route("/vat-rates", func(r chi.Router) { p.VATRates.MountRoutes(r, p.AuthMW) })
		r.Route("/products", func(r chi.Router) { p.Products.MountRoutes(r, p.AuthMW) })
		r.Route("/users", func(r chi.Router) { p.Users.MountRoutes(r, p.AuthMW) })
		r.Route("/purchases", func(r chi.Router) { p.Purchases.MountRoutes(r, p.AuthMW) })
		r.Route("/sales", func(r chi.Router) { p.Sales.MountRoutes(r, p.AuthMW) })
		r.Route("/returns", func(r chi.Router) { p.Returns.MountRoutes(r, p.AuthMW) })
		r.Route("/audit", func(r chi.Router) { p.Audit.MountRoutes(r, p.AuthMW) })
		r.Route("/reports", func(r chi.Router) { p.Reports.MountRoutes(r, p.AuthMW) })

		r.Group(func(r chi.Router) {
			r.Use(p.AuthMW.RequireUser)
			r.Get("/dashboard", func(w http.ResponseWriter, req *http.Request) {
				summary, err := p.Dashboard.Summary(req.Context())
				if err != nil {
					p.Logger.Error("dashboard summary failed", slog.Any("error", err))
					httpx.RespondError(w, err)
					return
				}
				httpx.JSON(w, http.StatusOK, summary)
			})
		})
	})

	return r
}
