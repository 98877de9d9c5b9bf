package returns

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

// Service covers both directions of the returns flow: goods sent back to
// suppliers and goods taken back from clients.
type Service struct {
	suppliers SupplierRepository
	clients   ClientRepository
	audit     shared.AuditRecorder
	logger    *slog.Logger
}

func NewService(suppliers SupplierRepository, clients ClientRepository, audit shared.AuditRecorder, logger *slog.Logger) *Service {
	return &Service{suppliers: suppliers, clients: clients, audit: audit, logger: logger}
}

func (s *Service) ListSupplierReturns(ctx context.Context, filters Filters) ([]SupplierReturn, int, error) {
	if err := mdshared.ValidateDateRange(filters.DateFrom, filters.DateTo); err != nil {
		return nil, 0, err
	}
	return s.suppliers.List(ctx, filters)
}

func (s *Service) GetSupplierReturn(ctx context.Context, id int64) (SupplierReturn, error) {
	if id <= 0 {
		return SupplierReturn{}, fmt.Errorf("%w: invalid return id", shared.ErrValidation)
	}
	return s.suppliers.Get(ctx, id)
}

// CreateSupplierReturn validates everything first, then writes header and
// lines in one transaction.
func (s *Service) CreateSupplierReturn(ctx context.Context, ret SupplierReturn) (SupplierReturn, error) {
	if err := validateHeader(ret.PurchaseID, ret.EmployeeID, ret.Reason, ret.ReturnedAt); err != nil {
		return SupplierReturn{}, err
	}
	if err := validateLines(ret.Lines); err != nil {
		return SupplierReturn{}, err
	}
	ret.Status = shared.StatusActive
	ret.TotalNet, ret.TotalGross = computeLines(ret.Lines)

	created, err := s.suppliers.Create(ctx, ret)
	if err != nil {
		return SupplierReturn{}, err
	}
	s.record(ctx, "create", "supplier_returns", created.ID, fmt.Sprintf("supplier return registered against purchase %d", created.PurchaseID))
	return created, nil
}

func (s *Service) CancelSupplierReturn(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid return id", shared.ErrValidation)
	}
	current, err := s.suppliers.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == shared.StatusInactive {
		return fmt.Errorf("%w: return already cancelled", shared.ErrValidation)
	}
	if err := s.suppliers.SetStatus(ctx, id, shared.StatusInactive); err != nil {
		return err
	}
	s.record(ctx, "deactivate", "supplier_returns", id, "supplier return cancelled")
	return nil
}

func (s *Service) ListClientReturns(ctx context.Context, filters Filters) ([]ClientReturn, int, error) {
	if err := mdshared.ValidateDateRange(filters.DateFrom, filters.DateTo); err != nil {
		return nil, 0, err
	}
	return s.clients.List(ctx, filters)
}

func (s *Service) GetClientReturn(ctx context.Context, id int64) (ClientReturn, error) {
	if id <= 0 {
		return ClientReturn{}, fmt.Errorf("%w: invalid return id", shared.ErrValidation)
	}
	return s.clients.Get(ctx, id)
}

func (s *Service) CreateClientReturn(ctx context.Context, ret ClientReturn) (ClientReturn, error) {
	if err := validateHeader(ret.SaleID, ret.EmployeeID, ret.Reason, ret.ReturnedAt); err != nil {
		return ClientReturn{}, err
	}
	if err := validateLines(ret.Lines); err != nil {
		return ClientReturn{}, err
	}
	ret.Status = shared.StatusActive
	ret.TotalNet, ret.TotalGross = computeLines(ret.Lines)

	created, err := s.clients.Create(ctx, ret)
	if err != nil {
		return ClientReturn{}, err
	}
	s.record(ctx, "create", "client_returns", created.ID, fmt.Sprintf("client return registered against sale %d", created.SaleID))
	return created, nil
}

func (s *Service) CancelClientReturn(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid return id", shared.ErrValidation)
	}
	current, err := s.clients.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == shared.StatusInactive {
		return fmt.Errorf("%w: return already cancelled", shared.ErrValidation)
	}
	if err := s.clients.SetStatus(ctx, id, shared.StatusInactive); err != nil {
		return err
	}
	s.record(ctx, "deactivate", "client_returns", id, "client return cancelled")
	return nil
}

func computeLines(lines []Line) (net, gross decimal.Decimal) {
	net = decimal.Zero
	gross = decimal.Zero
	for i := range lines {
		line := &lines[i]
		line.Status = shared.StatusActive
		line.SubtotalNet = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		factor := decimal.NewFromInt(1).Add(line.VATPercent.Div(oneHundred))
		line.SubtotalGross = line.SubtotalNet.Mul(factor).Round(2)
		net = net.Add(line.SubtotalNet)
		gross = gross.Add(line.SubtotalGross)
	}
	return net, gross
}

func (s *Service) record(ctx context.Context, action, entity string, id int64, detail string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  shared.ActorIDFromContext(ctx),
		Action:   action,
		Entity:   entity,
		EntityID: strconv.FormatInt(id, 10),
		Detail:   detail,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("entity", entity), slog.Any("error", err))
	}
}
