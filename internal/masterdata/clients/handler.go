package clients

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

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

type clientRequest struct {
	Name        string     `json:"name" validate:"required,max=120"`
	LegalForm   string     `json:"legal_form" validate:"required,max=40"`
	TaxID       string     `json:"tax_id" validate:"required,max=9"`
	Address     string     `json:"address" validate:"required,max=200"`
	Locality    string     `json:"locality" validate:"required,max=80"`
	Province    string     `json:"province" validate:"required,max=80"`
	Phone       string     `json:"phone" validate:"required,max=9"`
	Email       string     `json:"email" validate:"required,email,max=120"`
	OnboardedAt *time.Time `json:"onboarded_at,omitempty"`
}

func (req clientRequest) toModel() Client {
	onboarded := time.Now()
	if req.OnboardedAt != nil {
		onboarded = *req.OnboardedAt
	}
	return Client{
		Name:        req.Name,
		LegalForm:   req.LegalForm,
		TaxID:       req.TaxID,
		Address:     req.Address,
		Locality:    req.Locality,
		Province:    req.Province,
		Phone:       req.Phone,
		Email:       req.Email,
		OnboardedAt: onboarded,
	}
}

type listResponse struct {
	Clients    []Client          `json:"clients"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := mdshared.ParseListFilters(r)

	clients, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.respondListError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{
		Clients:    clients,
		Pagination: shared.NewPagination(filters.Page, filters.Limit, total),
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid client id")
		return
	}
	client, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), req.toModel())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid client id")
		return
	}
	var req clientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	updated, err := h.service.Update(r.Context(), id, req.toModel())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid client id")
		return
	}
	if err := h.service.Deactivate(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondListError(w http.ResponseWriter, err error) {
	h.logger.Error("list clients failed", slog.Any("error", err))
	httpx.RespondError(w, err)
}
