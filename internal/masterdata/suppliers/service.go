package suppliers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	mdshared "github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type Service struct {
	repo   Repository
	audit  shared.AuditRecorder
	logger *slog.Logger
}

func NewService(repo Repository, audit shared.AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

func (s *Service) List(ctx context.Context, filters mdshared.ListFilters) ([]Supplier, int, error) {
	if err := mdshared.ValidateDateRange(filters.DateFrom, filters.DateTo); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Supplier, error) {
	if id <= 0 {
		return Supplier{}, fmt.Errorf("%w: invalid supplier id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create registers a new supplier, applying the reactivation rule: a
// tax-ID or email collision with an inactive row revives that row with
// the new fields, while a collision with an active row is a duplicate.
func (s *Service) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	if err := validate(supplier); err != nil {
		return Supplier{}, err
	}
	supplier.Status = shared.StatusActive

	existing, err := s.findCollision(ctx, supplier)
	switch {
	case err == nil:
		if existing.Status == shared.StatusActive {
			return Supplier{}, fmt.Errorf("%w: tax id %s or email %s already registered", shared.ErrDuplicate, supplier.TaxID, supplier.Email)
		}
		if err := s.repo.Update(ctx, existing.ID, supplier); err != nil {
			return Supplier{}, err
		}
		s.record(ctx, "reactivate", existing.ID, "supplier reactivated by natural key collision")
		return s.repo.Get(ctx, existing.ID)
	case errors.Is(err, shared.ErrNotFound):
		created, err := s.repo.Create(ctx, supplier)
		if err != nil {
			return Supplier{}, err
		}
		s.record(ctx, "create", created.ID, "supplier created")
		return created, nil
	default:
		return Supplier{}, err
	}
}

func (s *Service) Update(ctx context.Context, id int64, supplier Supplier) (Supplier, error) {
	if id <= 0 {
		return Supplier{}, fmt.Errorf("%w: invalid supplier id", shared.ErrValidation)
	}
	if err := validate(supplier); err != nil {
		return Supplier{}, err
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Supplier{}, err
	}
	supplier.Status = current.Status
	if err := s.repo.Update(ctx, id, supplier); err != nil {
		return Supplier{}, err
	}
	s.record(ctx, "update", id, "supplier updated")
	return s.repo.Get(ctx, id)
}

// Deactivate is the logical delete; it fails on missing or already-inactive rows.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid supplier id", shared.ErrValidation)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == shared.StatusInactive {
		return fmt.Errorf("%w: supplier already inactive", shared.ErrValidation)
	}
	if err := s.repo.SetStatus(ctx, id, shared.StatusInactive); err != nil {
		return err
	}
	s.record(ctx, "deactivate", id, "supplier deactivated")
	return nil
}

func (s *Service) findCollision(ctx context.Context, supplier Supplier) (Supplier, error) {
	existing, err := s.repo.FindByTaxID(ctx, supplier.TaxID)
	if err == nil || !errors.Is(err, shared.ErrNotFound) {
		return existing, err
	}
	return s.repo.FindByEmail(ctx, supplier.Email)
}

func (s *Service) record(ctx context.Context, action string, id int64, detail string) {
	if s.audit == nil {
		return
	}
	actorID := shared.ActorIDFromContext(ctx)
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "suppliers",
		EntityID: strconv.FormatInt(id, 10),
		Detail:   detail,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("entity", "suppliers"), slog.Any("error", err))
	}
}
