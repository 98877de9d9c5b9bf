package products

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

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

func (s *Service) List(ctx context.Context, filters Filters) ([]Product, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("%w: invalid product id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create registers a catalogue article. A collision on either natural key
// (the name, or the brand/package-format/supplier triple) against an
// active row is rejected; against an inactive row the article is
// reactivated in place with the submitted fields.
func (s *Service) Create(ctx context.Context, product Product) (Product, error) {
	if err := validate(product); err != nil {
		return Product{}, err
	}
	product.Status = shared.StatusActive

	existing, err := s.findCollision(ctx, product)
	switch {
	case err == nil:
		if existing.Status == shared.StatusActive {
			return Product{}, fmt.Errorf("%w: product %s already in the catalogue", shared.ErrDuplicate, product.Name)
		}
		if err := s.repo.Update(ctx, existing.ID, product); err != nil {
			return Product{}, err
		}
		s.record(ctx, "reactivate", existing.ID, "product reactivated by natural key collision")
		return s.repo.Get(ctx, existing.ID)
	case errors.Is(err, shared.ErrNotFound):
		created, err := s.repo.Create(ctx, product)
		if err != nil {
			return Product{}, err
		}
		s.record(ctx, "create", created.ID, "product created")
		return created, nil
	default:
		return Product{}, err
	}
}

func (s *Service) Update(ctx context.Context, id int64, product Product) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("%w: invalid product id", shared.ErrValidation)
	}
	if err := validate(product); err != nil {
		return Product{}, err
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	product.Status = current.Status
	if err := s.repo.Update(ctx, id, product); err != nil {
		return Product{}, err
	}
	s.record(ctx, "update", id, "product updated")
	return s.repo.Get(ctx, id)
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid product id", shared.ErrValidation)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == shared.StatusInactive {
		return fmt.Errorf("%w: product already inactive", shared.ErrValidation)
	}
	if err := s.repo.SetStatus(ctx, id, shared.StatusInactive); err != nil {
		return err
	}
	s.record(ctx, "deactivate", id, "product deactivated")
	return nil
}

// ReplenishStock adds the received quantity and forces the product back to
// active. Goods-in is the one flow allowed to resurrect a retired article.
func (s *Service) ReplenishStock(ctx context.Context, id int64, qty int) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid product id", shared.ErrValidation)
	}
	if qty <= 0 {
		return fmt.Errorf("%w: replenish quantity must be positive", shared.ErrValidation)
	}
	if err := s.repo.AddStock(ctx, id, qty); err != nil {
		return err
	}
	s.record(ctx, "replenish", id, fmt.Sprintf("stock increased by %d", qty))
	return nil
}

// CountBelowMinimum feeds the dashboard and the low-stock scan job.
func (s *Service) CountBelowMinimum(ctx context.Context) (int, error) {
	return s.repo.CountBelowMinimum(ctx)
}

// ListBelowMinimum returns every active article whose stock fell under its
// minimum, unpaginated, for the alert job.
func (s *Service) ListBelowMinimum(ctx context.Context) ([]Product, error) {
	active := shared.StatusActive
	filters := Filters{BelowMinimum: true}
	filters.Status = &active
	filters.Page = 1
	filters.Limit = shared.MaxPerPage
	low, _, err := s.repo.List(ctx, filters)
	return low, err
}

func (s *Service) findCollision(ctx context.Context, product Product) (Product, error) {
	existing, err := s.repo.FindByName(ctx, product.Name)
	if err == nil || !errors.Is(err, shared.ErrNotFound) {
		return existing, err
	}
	return s.repo.FindByTriple(ctx, product.Brand, product.PackageFormat, product.SupplierID)
}

func (s *Service) record(ctx context.Context, action string, id int64, detail string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  shared.ActorIDFromContext(ctx),
		Action:   action,
		Entity:   "products",
		EntityID: strconv.FormatInt(id, 10),
		Detail:   detail,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("entity", "products"), slog.Any("error", err))
	}
}
