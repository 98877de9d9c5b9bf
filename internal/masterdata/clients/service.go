package clients

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

func (s *Service) List(ctx context.Context, filters mdshared.ListFilters) ([]Client, int, error) {
	if err := mdshared.ValidateDateRange(filters.DateFrom, filters.DateTo); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Client, error) {
	if id <= 0 {
		return Client{}, fmt.Errorf("%w: invalid client id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create registers a new client. Both the tax ID and the email are natural
// keys; a collision with an active row is rejected, while a collision with
// an inactive row reactivates that row in place with the submitted fields
// instead of inserting a duplicate.
func (s *Service) Create(ctx context.Context, client Client) (Client, error) {
	if err := validate(client); err != nil {
		return Client{}, err
	}
	client.Status = shared.StatusActive

	existing, err := s.findCollision(ctx, client)
	switch {
	case err == nil:
		if existing.Status == shared.StatusActive {
			return Client{}, fmt.Errorf("%w: tax id %s or email %s already registered", shared.ErrDuplicate, client.TaxID, client.Email)
		}
		if err := s.repo.Update(ctx, existing.ID, client); err != nil {
			return Client{}, err
		}
		s.record(ctx, "reactivate", existing.ID, "client reactivated by natural key collision")
		return s.repo.Get(ctx, existing.ID)
	case errors.Is(err, shared.ErrNotFound):
		created, err := s.repo.Create(ctx, client)
		if err != nil {
			return Client{}, err
		}
		s.record(ctx, "create", created.ID, "client created")
		return created, nil
	default:
		return Client{}, err
	}
}

func (s *Service) Update(ctx context.Context, id int64, client Client) (Client, error) {
	if id <= 0 {
		return Client{}, fmt.Errorf("%w: invalid client id", shared.ErrValidation)
	}
	if err := validate(client); err != nil {
		return Client{}, err
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Client{}, err
	}
	client.Status = current.Status
	if err := s.repo.Update(ctx, id, client); err != nil {
		return Client{}, err
	}
	s.record(ctx, "update", id, "client updated")
	return s.repo.Get(ctx, id)
}

// Deactivate performs the logical delete. The row stays in storage; only
// its status flips. Deactivating a missing or already-inactive row fails.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid client id", shared.ErrValidation)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == shared.StatusInactive {
		return fmt.Errorf("%w: client already inactive", shared.ErrValidation)
	}
	if err := s.repo.SetStatus(ctx, id, shared.StatusInactive); err != nil {
		return err
	}
	s.record(ctx, "deactivate", id, "client deactivated")
	return nil
}

func (s *Service) findCollision(ctx context.Context, client Client) (Client, error) {
	existing, err := s.repo.FindByTaxID(ctx, client.TaxID)
	if err == nil || !errors.Is(err, shared.ErrNotFound) {
		return existing, err
	}
	return s.repo.FindByEmail(ctx, client.Email)
}

func (s *Service) record(ctx context.Context, action string, id int64, detail string) {
	if s.audit == nil {
		return
	}
	actorID := shared.ActorIDFromContext(ctx)
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "clients",
		EntityID: strconv.FormatInt(id, 10),
		Detail:   detail,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("entity", "clients"), slog.Any("error", err))
	}
}
