package purchases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type memoryRepo struct {
	rows   map[int64]Purchase
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[int64]Purchase)}
}

func (r *memoryRepo) List(ctx context.Context, filters Filters) ([]Purchase, int, error) {
	var result []Purchase
	for _, p := range r.rows {
		if filters.Status != nil && p.Status != *filters.Status {
			continue
		}
		if filters.SupplierID != nil && p.SupplierID != *filters.SupplierID {
			continue
		}
		result = append(result, p)
	}
	return result, len(result), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Purchase, error) {
	if p, ok := r.rows[id]; ok {
		return p, nil
	}
	return Purchase{}, shared.ErrNotFound
}

func (r *memoryRepo) Create(ctx context.Context, p Purchase) (Purchase, error) {
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	for i := range p.Lines {
		p.Lines[i].ID = int64(i + 1)
		p.Lines[i].PurchaseID = p.ID
	}
	r.rows[p.ID] = p
	return p, nil
}

func (r *memoryRepo) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	p, ok := r.rows[id]
	if !ok {
		return shared.ErrNotFound
	}
	p.Status = status
	r.rows[id] = p
	return nil
}

type stockRecorder struct {
	added   map[int64]int
	failOn  int64
	calls   int
	failErr error
}

func newStockRecorder() *stockRecorder {
	return &stockRecorder{added: make(map[int64]int), failErr: errors.New("stock backend down")}
}

func (s *stockRecorder) ReplenishStock(ctx context.Context, productID int64, qty int) error {
	s.calls++
	if s.failOn != 0 && productID == s.failOn {
		return s.failErr
	}
	s.added[productID] += qty
	return nil
}

func validPurchase() Purchase {
	return Purchase{
		SupplierID:  3,
		EmployeeID:  2,
		PurchasedAt: time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC),
		Lines: []Line{
			{ProductID: 11, Quantity: 5, UnitPrice: decimal.RequireFromString("10.00"), VATPercent: decimal.NewFromInt(21)},
		},
	}
}

func TestPurchaseCreateComputesAmounts(t *testing.T) {
	repo := newMemoryRepo()
	stock := newStockRecorder()
	svc := NewService(repo, stock, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validPurchase())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Len(t, created.Lines, 1)

	line := created.Lines[0]
	require.True(t, line.SubtotalNet.Equal(decimal.RequireFromString("50.00")), "net was %s", line.SubtotalNet)
	require.True(t, line.SubtotalGross.Equal(decimal.RequireFromString("60.50")), "gross was %s", line.SubtotalGross)
	require.True(t, created.TotalNet.Equal(decimal.RequireFromString("50.00")))
	require.True(t, created.TotalGross.Equal(decimal.RequireFromString("60.50")))
}

func TestPurchaseCreateReplenishesEveryLine(t *testing.T) {
	repo := newMemoryRepo()
	stock := newStockRecorder()
	svc := NewService(repo, stock, nil, nil)
	ctx := context.Background()

	order := validPurchase()
	order.Lines = append(order.Lines,
		Line{ProductID: 12, Quantity: 3, UnitPrice: decimal.RequireFromString("4.25"), VATPercent: decimal.NewFromInt(10)})

	created, err := svc.Create(ctx, order)
	require.NoError(t, err)
	require.Len(t, created.Lines, 2)
	for _, l := range created.Lines {
		require.Equal(t, created.ID, l.PurchaseID)
	}
	require.Equal(t, 5, stock.added[11])
	require.Equal(t, 3, stock.added[12])
}

func TestPurchaseBadLineRejectedBeforePersistence(t *testing.T) {
	repo := newMemoryRepo()
	stock := newStockRecorder()
	svc := NewService(repo, stock, nil, nil)
	ctx := context.Background()

	order := validPurchase()
	order.Lines = append(order.Lines, Line{ProductID: 12, Quantity: 0, UnitPrice: decimal.NewFromInt(1)})

	_, err := svc.Create(ctx, order)
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Empty(t, repo.rows)
	require.Zero(t, stock.calls)

	order = validPurchase()
	order.Lines[0].UnitPrice = decimal.RequireFromString("-1")
	_, err = svc.Create(ctx, order)
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Empty(t, repo.rows)
}

func TestPurchaseStockFailureKeepsOrderAndPropagates(t *testing.T) {
	repo := newMemoryRepo()
	stock := newStockRecorder()
	stock.failOn = 12
	svc := NewService(repo, stock, nil, nil)
	ctx := context.Background()

	order := validPurchase()
	order.Lines = append(order.Lines,
		Line{ProductID: 12, Quantity: 3, UnitPrice: decimal.RequireFromString("4.25"), VATPercent: decimal.NewFromInt(10)},
		Line{ProductID: 13, Quantity: 7, UnitPrice: decimal.RequireFromString("2.00"), VATPercent: decimal.NewFromInt(21)})

	_, err := svc.Create(ctx, order)
	require.ErrorIs(t, err, stock.failErr)

	// The order itself stays registered; the loop stops at the failing line.
	require.Len(t, repo.rows, 1)
	require.Equal(t, 5, stock.added[11])
	require.Zero(t, stock.added[13])
}

func TestPurchaseCancelGuards(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, newStockRecorder(), nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validPurchase())
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, created.ID))
	require.ErrorIs(t, svc.Cancel(ctx, created.ID), shared.ErrValidation)
}

func TestPurchaseListRejectsInvertedDateRange(t *testing.T) {
	svc := NewService(newMemoryRepo(), newStockRecorder(), nil, nil)
	ctx := context.Background()

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	filters := Filters{}
	filters.DateFrom = &from
	filters.DateTo = &to
	_, _, err := svc.List(ctx, filters)
	require.ErrorIs(t, err, shared.ErrValidation)
}
