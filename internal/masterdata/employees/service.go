package employees

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

func (s *Service) List(ctx context.Context, filters mdshared.ListFilters) ([]Employee, int, error) {
	if err := mdshared.ValidateDateRange(filters.DateFrom, filters.DateTo); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	if id <= 0 {
		return Employee{}, fmt.Errorf("%w: invalid employee id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create registers an employee; the reactivation rule applies to both
// natural keys, the ID document and the email.
func (s *Service) Create(ctx context.Context, employee Employee) (Employee, error) {
	if err := validate(employee); err != nil {
		return Employee{}, err
	}
	employee.Status = shared.StatusActive

	existing, err := s.findCollision(ctx, employee)
	switch {
	case err == nil:
		if existing.Status == shared.StatusActive {
			return Employee{}, fmt.Errorf("%w: id document %s or email %s already registered", shared.ErrDuplicate, employee.IDDocument, employee.Email)
		}
		if err := s.repo.Update(ctx, existing.ID, employee); err != nil {
			return Employee{}, err
		}
		s.record(ctx, "reactivate", existing.ID, "employee reactivated by natural key collision")
		return s.repo.Get(ctx, existing.ID)
	case errors.Is(err, shared.ErrNotFound):
		created, err := s.repo.Create(ctx, employee)
		if err != nil {
			return Employee{}, err
		}
		s.record(ctx, "create", created.ID, "employee created")
		return created, nil
	default:
		return Employee{}, err
	}
}

func (s *Service) Update(ctx context.Context, id int64, employee Employee) (Employee, error) {
	if id <= 0 {
		return Employee{}, fmt.Errorf("%w: invalid employee id", shared.ErrValidation)
	}
	if err := validate(employee); err != nil {
		return Employee{}, err
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	employee.Status = current.Status
	if err := s.repo.Update(ctx, id, employee); err != nil {
		return Employee{}, err
	}
	s.record(ctx, "update", id, "employee updated")
	return s.repo.Get(ctx, id)
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid employee id", shared.ErrValidation)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == shared.StatusInactive {
		return fmt.Errorf("%w: employee already inactive", shared.ErrValidation)
	}
	if err := s.repo.SetStatus(ctx, id, shared.StatusInactive); err != nil {
		return err
	}
	s.record(ctx, "deactivate", id, "employee deactivated")
	return nil
}

func (s *Service) findCollision(ctx context.Context, employee Employee) (Employee, error) {
	existing, err := s.repo.FindByIDDocument(ctx, employee.IDDocument)
	if err == nil || !errors.Is(err, shared.ErrNotFound) {
		return existing, err
	}
	return s.repo.FindByEmail(ctx, employee.Email)
}

func (s *Service) record(ctx context.Context, action string, id int64, detail string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  shared.ActorIDFromContext(ctx),
		Action:   action,
		Entity:   "employees",
		EntityID: strconv.FormatInt(id, 10),
		Detail:   detail,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("entity", "employees"), slog.Any("error", err))
	}
}
