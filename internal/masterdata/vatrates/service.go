package vatrates

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

func (s *Service) List(ctx context.Context, filters mdshared.ListFilters) ([]VATRate, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (VATRate, error) {
	if id <= 0 {
		return VATRate{}, fmt.Errorf("%w: invalid vat rate id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create registers a VAT bracket. Both the description and the percent are
// natural keys; a collision with an inactive row on either key reactivates
// that row in place.
func (s *Service) Create(ctx context.Context, rate VATRate) (VATRate, error) {
	if err := validate(rate); err != nil {
		return VATRate{}, err
	}
	rate.Status = shared.StatusActive

	existing, err := s.findCollision(ctx, rate)
	switch {
	case err == nil:
		if existing.Status == shared.StatusActive {
			return VATRate{}, fmt.Errorf("%w: vat rate %s (%s%%) already registered", shared.ErrDuplicate, rate.Description, rate.Percent)
		}
		if err := s.repo.Update(ctx, existing.ID, rate); err != nil {
			return VATRate{}, err
		}
		s.record(ctx, "reactivate", existing.ID, "vat rate reactivated by natural key collision")
		return s.repo.Get(ctx, existing.ID)
	case errors.Is(err, shared.ErrNotFound):
		created, err := s.repo.Create(ctx, rate)
		if err != nil {
			return VATRate{}, err
		}
		s.record(ctx, "create", created.ID, "vat rate created")
		return created, nil
	default:
		return VATRate{}, err
	}
}

func (s *Service) Update(ctx context.Context, id int64, rate VATRate) (VATRate, error) {
	if id <= 0 {
		return VATRate{}, fmt.Errorf("%w: invalid vat rate id", shared.ErrValidation)
	}
	if err := validate(rate); err != nil {
		return VATRate{}, err
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return VATRate{}, err
	}
	rate.Status = current.Status
	if err := s.repo.Update(ctx, id, rate); err != nil {
		return VATRate{}, err
	}
	s.record(ctx, "update", id, "vat rate updated")
	return s.repo.Get(ctx, id)
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid vat rate id", shared.ErrValidation)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == shared.StatusInactive {
		return fmt.Errorf("%w: vat rate already inactive", shared.ErrValidation)
	}
	if err := s.repo.SetStatus(ctx, id, shared.StatusInactive); err != nil {
		return err
	}
	s.record(ctx, "deactivate", id, "vat rate deactivated")
	return nil
}

func (s *Service) findCollision(ctx context.Context, rate VATRate) (VATRate, error) {
	existing, err := s.repo.FindByDescription(ctx, rate.Description)
	if err == nil || !errors.Is(err, shared.ErrNotFound) {
		return existing, err
	}
	return s.repo.FindByPercent(ctx, rate.Percent)
}

func (s *Service) record(ctx context.Context, action string, id int64, detail string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  shared.ActorIDFromContext(ctx),
		Action:   action,
		Entity:   "vat_rates",
		EntityID: strconv.FormatInt(id, 10),
		Detail:   detail,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("entity", "vat_rates"), slog.Any("error", err))
	}
}
