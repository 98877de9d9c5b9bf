package audit

import (
	"context"
	"fmt"
	"log/slog"

	mdshared "github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Timeline(ctx context.Context, filters Filters) ([]Entry, bool, error) {
	if err := mdshared.ValidateDateRange(filters.DateFrom, filters.DateTo); err != nil {
		return nil, false, err
	}
	return s.repo.Timeline(ctx, filters)
}

// Prune removes entries older than the retention horizon. Called from the
// scheduled retention job, never from request handlers.
func (s *Service) Prune(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("%w: retention days must be positive", shared.ErrValidation)
	}
	removed, err := s.repo.DeleteOlderThan(ctx, days)
	if err != nil {
		return 0, err
	}
	if s.logger != nil && removed > 0 {
		s.logger.Info("audit retention sweep", slog.Int64("removed", removed), slog.Int("days", days))
	}
	return removed, nil
}
