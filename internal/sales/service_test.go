package sales

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type memoryRepo struct {
	rows   map[int64]Sale
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[int64]Sale)}
}

func (r *memoryRepo) List(ctx context.Context, filters Filters) ([]Sale, int, error) {
	var result []Sale
	for _, s := range r.rows {
		if filters.Status != nil && s.Status != *filters.Status {
			continue
		}
		if filters.ClientID != nil && s.ClientID != *filters.ClientID {
			continue
		}
		result = append(result, s)
	}
	return result, len(result), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Sale, error) {
	if s, ok := r.rows[id]; ok {
		return s, nil
	}
	return Sale{}, shared.ErrNotFound
}

func (r *memoryRepo) Create(ctx context.Context, s Sale) (Sale, error) {
	r.nextID++
	s.ID = r.nextID
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	for i := range s.Lines {
		s.Lines[i].ID = int64(i + 1)
		s.Lines[i].SaleID = s.ID
	}
	r.rows[s.ID] = s
	return s, nil
}

func (r *memoryRepo) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	s, ok := r.rows[id]
	if !ok {
		return shared.ErrNotFound
	}
	s.Status = status
	r.rows[id] = s
	return nil
}

func validSale() Sale {
	return Sale{
		ClientID:   4,
		EmployeeID: 2,
		SoldAt:     time.Date(2024, 4, 12, 11, 30, 0, 0, time.UTC),
		Lines: []Line{
			{ProductID: 11, Quantity: 2, UnitPrice: decimal.RequireFromString("27.90"), VATPercent: decimal.NewFromInt(21)},
			{ProductID: 15, Quantity: 1, UnitPrice: decimal.RequireFromString("12.00"), VATPercent: decimal.NewFromInt(10)},
		},
	}
}

func TestSaleCreateComputesAmounts(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validSale())
	require.NoError(t, err)
	require.Len(t, created.Lines, 2)
	for _, l := range created.Lines {
		require.Equal(t, created.ID, l.SaleID)
	}

	// 2 x 27.90 = 55.80 net, 67.52 gross; 1 x 12.00 = 12.00 net, 13.20 gross.
	require.True(t, created.Lines[0].SubtotalGross.Equal(decimal.RequireFromString("67.52")),
		"gross was %s", created.Lines[0].SubtotalGross)
	require.True(t, created.TotalNet.Equal(decimal.RequireFromString("67.80")))
	require.True(t, created.TotalGross.Equal(decimal.RequireFromString("80.72")))
}

func TestSaleBadLineRejectedBeforePersistence(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	order := validSale()
	order.Lines[1].ProductID = 0
	_, err := svc.Create(ctx, order)
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Empty(t, repo.rows)

	order = validSale()
	order.Lines = nil
	_, err = svc.Create(ctx, order)
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Empty(t, repo.rows)
}

func TestSaleCancelGuards(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validSale())
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, created.ID))
	require.ErrorIs(t, svc.Cancel(ctx, created.ID), shared.ErrValidation)
	require.ErrorIs(t, svc.Cancel(ctx, 99), shared.ErrNotFound)
}

func TestSaleListRejectsInvertedDateRange(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	ctx := context.Background()

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	filters := Filters{}
	filters.DateFrom = &from
	filters.DateTo = &to
	_, _, err := svc.List(ctx, filters)
	require.ErrorIs(t, err, shared.ErrValidation)
}
