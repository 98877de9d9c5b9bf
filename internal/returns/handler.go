package returns

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	mdshared "github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/platform/httpx"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

type lineRequest struct {
	ProductID  int64           `json:"product_id" validate:"required,gt=0"`
	Quantity   int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	VATPercent decimal.Decimal `json:"vat_percent"`
}

type supplierReturnRequest struct {
	PurchaseID int64         `json:"purchase_id" validate:"required,gt=0"`
	EmployeeID int64         `json:"employee_id" validate:"required,gt=0"`
	Reason     string        `json:"reason" validate:"required,max=300"`
	ReturnedAt *time.Time    `json:"returned_at,omitempty"`
	Lines      []lineRequest `json:"lines" validate:"required,min=1,dive"`
}

type clientReturnRequest struct {
	SaleID     int64         `json:"sale_id" validate:"required,gt=0"`
	EmployeeID int64         `json:"employee_id" validate:"required,gt=0"`
	Reason     string        `json:"reason" validate:"required,max=300"`
	ReturnedAt *time.Time    `json:"returned_at,omitempty"`
	Lines      []lineRequest `json:"lines" validate:"required,min=1,dive"`
}

func toLines(reqs []lineRequest) []Line {
	var lines []Line
	for _, l := range reqs {
		lines = append(lines, Line{
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			VATPercent: l.VATPercent,
		})
	}
	return lines
}

func returnedAtOrNow(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return time.Now()
}

func parseFilters(r *http.Request) Filters {
	filters := Filters{ListFilters: mdshared.ParseListFilters(r)}
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			filters.EmployeeID = &id
		}
	}
	if raw := r.URL.Query().Get("order_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			filters.OrderID = &id
		}
	}
	return filters
}

type supplierListResponse struct {
	Returns    []SupplierReturn  `json:"returns"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) ListSupplierReturns(w http.ResponseWriter, r *http.Request) {
	filters := parseFilters(r)

	returns, total, err := h.service.ListSupplierReturns(r.Context(), filters)
	if err != nil {
		h.logger.Error("list supplier returns failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, supplierListResponse{
		Returns:    returns,
		Pagination: shared.NewPagination(filters.Page, filters.Limit, total),
	})
}

func (h *Handler) ShowSupplierReturn(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid return id")
		return
	}
	ret, err := h.service.GetSupplierReturn(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ret)
}

func (h *Handler) CreateSupplierReturn(w http.ResponseWriter, r *http.Request) {
	var req supplierReturnRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	created, err := h.service.CreateSupplierReturn(r.Context(), SupplierReturn{
		PurchaseID: req.PurchaseID,
		EmployeeID: req.EmployeeID,
		Reason:     req.Reason,
		ReturnedAt: returnedAtOrNow(req.ReturnedAt),
		Lines:      toLines(req.Lines),
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) DeleteSupplierReturn(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid return id")
		return
	}
	if err := h.service.CancelSupplierReturn(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type clientListResponse struct {
	Returns    []ClientReturn    `json:"returns"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) ListClientReturns(w http.ResponseWriter, r *http.Request) {
	filters := parseFilters(r)

	returns, total, err := h.service.ListClientReturns(r.Context(), filters)
	if err != nil {
		h.logger.Error("list client returns failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, clientListResponse{
		Returns:    returns,
		Pagination: shared.NewPagination(filters.Page, filters.Limit, total),
	})
}

func (h *Handler) ShowClientReturn(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid return id")
		return
	}
	ret, err := h.service.GetClientReturn(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ret)
}

func (h *Handler) CreateClientReturn(w http.ResponseWriter, r *http.Request) {
	var req clientReturnRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	created, err := h.service.CreateClientReturn(r.Context(), ClientReturn{
		SaleID:     req.SaleID,
		EmployeeID: req.EmployeeID,
		Reason:     req.Reason,
		ReturnedAt: returnedAtOrNow(req.ReturnedAt),
		Lines:      toLines(req.Lines),
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) DeleteClientReturn(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid return id")
		return
	}
	if err := h.service.CancelClientReturn(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
