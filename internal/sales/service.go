package sales

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"

	mdshared "github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

var oneHundred = decimal.NewFromInt(100)

type Service struct {
	repo   Repository
	audit  shared.AuditRecorder
	logger *slog.Logger
}

func NewService(repo Repository, audit shared.AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

func (s *Service) List(ctx context.Context, filters Filters) ([]Sale, int, error) {
	if err := mdshared.ValidateDateRange(filters.DateFrom, filters.DateTo); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Sale, error) {
	if id <= 0 {
		return Sale{}, fmt.Errorf("%w: invalid sale id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create registers a sale: the whole order is validated up front, then
// header and lines are written in one transaction. Stock is not touched
// here; warehouse movements are reconciled through purchases and returns.
func (s *Service) Create(ctx context.Context, sale Sale) (Sale, error) {
	if err := validate(sale); err != nil {
		return Sale{}, err
	}

	sale.Status = shared.StatusActive
	totalNet := decimal.Zero
	totalGross := decimal.Zero
	for i := range sale.Lines {
		line := &sale.Lines[i]
		line.Status = shared.StatusActive
		line.SubtotalNet = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		factor := decimal.NewFromInt(1).Add(line.VATPercent.Div(oneHundred))
		line.SubtotalGross = line.SubtotalNet.Mul(factor).Round(2)
		totalNet = totalNet.Add(line.SubtotalNet)
		totalGross = totalGross.Add(line.SubtotalGross)
	}
	sale.TotalNet = totalNet
	sale.TotalGross = totalGross

	created, err := s.repo.Create(ctx, sale)
	if err != nil {
		return Sale{}, err
	}
	s.record(ctx, "create", created.ID, fmt.Sprintf("sale registered with %d lines", len(created.Lines)))
	return created, nil
}

func (s *Service) Cancel(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid sale id", shared.ErrValidation)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == shared.StatusInactive {
		return fmt.Errorf("%w: sale already cancelled", shared.ErrValidation)
	}
	if err := s.repo.SetStatus(ctx, id, shared.StatusInactive); err != nil {
		return err
	}
	s.record(ctx, "deactivate", id, "sale cancelled")
	return nil
}

func (s *Service) record(ctx context.Context, action string, id int64, detail string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  shared.ActorIDFromContext(ctx),
		Action:   action,
		Entity:   "sales",
		EntityID: strconv.FormatInt(id, 10),
		Detail:   detail,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("entity", "sales"), slog.Any("error", err))
	}
}
