package audit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/platform/httpx"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func parseFilters(r *http.Request) Filters {
	q := r.URL.Query()
	filters := Filters{
		Entity: q.Get("entity"),
		Action: q.Get("action"),
	}
	if raw := q.Get("actor_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			filters.ActorID = id
		}
	}
	if t, err := time.Parse("2006-01-02", q.Get("date_from")); err == nil {
		filters.DateFrom = &t
	}
	if t, err := time.Parse("2006-01-02", q.Get("date_to")); err == nil {
		filters.DateTo = &t
	}
	filters.Page, _ = strconv.Atoi(q.Get("page"))
	filters.PerPage, _ = strconv.Atoi(q.Get("per_page"))
	return filters
}

type timelineResponse struct {
	Entries []Entry `json:"entries"`
	HasNext bool    `json:"has_next"`
}

func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	entries, hasNext, err := h.service.Timeline(r.Context(), parseFilters(r))
	if err != nil {
		h.logger.Error("audit timeline failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, timelineResponse{Entries: entries, HasNext: hasNext})
}

// Export streams the filtered timeline as CSV. The page size is pushed to
// the maximum so a single export covers a useful window.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	filters := parseFilters(r)
	filters.PerPage = shared.MaxPerPage

	entries, _, err := h.service.Timeline(r.Context(), filters)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="auditoria.csv"`)
	if err := WriteCSV(w, entries); err != nil {
		h.logger.Error("audit export failed", slog.Any("error", err))
	}
}
