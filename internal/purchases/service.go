package purchases

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

// StockReplenisher is the slice of the product service the goods-in flow
// needs: add received units and put the article back on sale.
type StockReplenisher interface {
	ReplenishStock(ctx context.Context, productID int64, qty int) error
}

type Service struct {
	repo   Repository
	stock  StockReplenisher
	audit  shared.AuditRecorder
	logger *slog.Logger
}

func NewService(repo Repository, stock StockReplenisher, audit shared.AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, stock: stock, audit: audit, logger: logger}
}

func (s *Service) List(ctx context.Context, filters Filters) ([]Purchase, int, error) {
	if err := mdshared.ValidateDateRange(filters.DateFrom, filters.DateTo); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Purchase, error) {
	if id <= 0 {
		return Purchase{}, fmt.Errorf("%w: invalid purchase id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create registers a goods-in order. The whole order is validated first;
// the header and every line are then written in one transaction, so a
// failure leaves nothing behind. Stock replenishment runs after the
// commit, line by line: the order stays registered even if a later stock
// update fails, and that failure is reported to the caller.
func (s *Service) Create(ctx context.Context, purchase Purchase) (Purchase, error) {
	if err := validate(purchase); err != nil {
		return Purchase{}, err
	}

	purchase.Status = shared.StatusActive
	totalNet := decimal.Zero
	totalGross := decimal.Zero
	for i := range purchase.Lines {
		line := &purchase.Lines[i]
		line.Status = shared.StatusActive
		line.SubtotalNet = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		factor := decimal.NewFromInt(1).Add(line.VATPercent.Div(oneHundred))
		line.SubtotalGross = line.SubtotalNet.Mul(factor).Round(2)
		totalNet = totalNet.Add(line.SubtotalNet)
		totalGross = totalGross.Add(line.SubtotalGross)
	}
	purchase.TotalNet = totalNet
	purchase.TotalGross = totalGross

	created, err := s.repo.Create(ctx, purchase)
	if err != nil {
		return Purchase{}, err
	}
	s.record(ctx, "create", created.ID, fmt.Sprintf("purchase registered with %d lines", len(created.Lines)))

	for _, line := range created.Lines {
		if line.Quantity <= 0 {
			continue
		}
		if err := s.stock.ReplenishStock(ctx, line.ProductID, line.Quantity); err != nil {
			return created, fmt.Errorf("purchases: replenish product %d: %w", line.ProductID, err)
		}
	}
	return created, nil
}

func (s *Service) Cancel(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid purchase id", shared.ErrValidation)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == shared.StatusInactive {
		return fmt.Errorf("%w: purchase already cancelled", shared.ErrValidation)
	}
	if err := s.repo.SetStatus(ctx, id, shared.StatusInactive); err != nil {
		return err
	}
	s.record(ctx, "deactivate", id, "purchase cancelled")
	return nil
}

func (s *Service) record(ctx context.Context, action string, id int64, detail string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  shared.ActorIDFromContext(ctx),
		Action:   action,
		Entity:   "purchases",
		EntityID: strconv.FormatInt(id, 10),
		Detail:   detail,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("entity", "purchases"), slog.Any("error", err))
	}
}
