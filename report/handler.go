package report

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/auth"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/platform/httpx"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/purchases"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/sales"
)

// Handler serves printable PDF documents for registered orders.
type Handler struct {
	client    *Client
	purchases *purchases.Service
	sales     *sales.Service
	logger    *slog.Logger
}

func NewHandler(client *Client, purchaseSvc *purchases.Service, saleSvc *sales.Service, logger *slog.Logger) *Handler {
	return &Handler{client: client, purchases: purchaseSvc, sales: saleSvc, logger: logger}
}

func (h *Handler) MountRoutes(r chi.Router, mw auth.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireUser)
		r.Get("/ping", h.Ping)
		r.Get("/purchases/{id}", h.PurchaseDocument)
		r.Get("/sales/{id}", h.SaleDocument)
	})
}

func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Ping(r.Context()); err != nil {
		h.logger.Error("gotenberg ping failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusServiceUnavailable, "Service Unavailable", "document renderer is not reachable")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) PurchaseDocument(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid purchase id")
		return
	}
	purchase, err := h.purchases.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	html, err := PurchaseHTML(purchase)
	if err != nil {
		h.logger.Error("build purchase document failed", slog.Int64("id", id), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Server Error", "could not build document")
		return
	}
	h.servePDF(w, r, html, fmt.Sprintf("compra-%d.pdf", id))
}

func (h *Handler) SaleDocument(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid sale id")
		return
	}
	sale, err := h.sales.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	html, err := SaleHTML(sale)
	if err != nil {
		h.logger.Error("build sale document failed", slog.Int64("id", id), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Server Error", "could not build document")
		return
	}
	h.servePDF(w, r, html, fmt.Sprintf("venta-%d.pdf", id))
}

func (h *Handler) servePDF(w http.ResponseWriter, r *http.Request, html, filename string) {
	pdf, err := h.client.RenderHTML(r.Context(), html)
	if err != nil {
		h.logger.Error("render document failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Bad Gateway", "document rendering failed")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		h.logger.Error("write document response failed", slog.Any("error", err))
	}
}
