package vatrates

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	mdshared "github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type memoryRepo struct {
	rows   map[int64]VATRate
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[int64]VATRate)}
}

func (r *memoryRepo) List(ctx context.Context, filters mdshared.ListFilters) ([]VATRate, int, error) {
	var result []VATRate
	for _, rate := range r.rows {
		if filters.Status != nil && rate.Status != *filters.Status {
			continue
		}
		result = append(result, rate)
	}
	return result, len(result), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (VATRate, error) {
	if rate, ok := r.rows[id]; ok {
		return rate, nil
	}
	return VATRate{}, shared.ErrNotFound
}

func (r *memoryRepo) FindByDescription(ctx context.Context, description string) (VATRate, error) {
	for _, rate := range r.rows {
		if rate.Description == description {
			return rate, nil
		}
	}
	return VATRate{}, shared.ErrNotFound
}

func (r *memoryRepo) FindByPercent(ctx context.Context, percent decimal.Decimal) (VATRate, error) {
	for _, rate := range r.rows {
		if rate.Percent.Equal(percent) {
			return rate, nil
		}
	}
	return VATRate{}, shared.ErrNotFound
}

func (r *memoryRepo) Create(ctx context.Context, rate VATRate) (VATRate, error) {
	r.nextID++
	rate.ID = r.nextID
	rate.CreatedAt = time.Now()
	rate.UpdatedAt = rate.CreatedAt
	r.rows[rate.ID] = rate
	return rate, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, rate VATRate) error {
	existing, ok := r.rows[id]
	if !ok {
		return shared.ErrNotFound
	}
	rate.ID = id
	rate.CreatedAt = existing.CreatedAt
	rate.UpdatedAt = time.Now()
	r.rows[id] = rate
	return nil
}

func (r *memoryRepo) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	rate, ok := r.rows[id]
	if !ok {
		return shared.ErrNotFound
	}
	rate.Status = status
	r.rows[id] = rate
	return nil
}

func generalRate() VATRate {
	return VATRate{Description: "General", Percent: decimal.NewFromInt(21)}
}

func TestVATRateCreateThenGetRoundTrip(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, generalRate())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, shared.StatusActive, created.Status)

	found, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "General", found.Description)
	require.True(t, found.Percent.Equal(decimal.NewFromInt(21)))
}

func TestVATRateDuplicateOnEitherKey(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, generalRate())
	require.NoError(t, err)

	sameDescription := VATRate{Description: "General", Percent: decimal.NewFromInt(10)}
	_, err = svc.Create(ctx, sameDescription)
	require.ErrorIs(t, err, shared.ErrDuplicate)

	samePercent := VATRate{Description: "Tipo general", Percent: decimal.NewFromInt(21)}
	_, err = svc.Create(ctx, samePercent)
	require.ErrorIs(t, err, shared.ErrDuplicate)
	require.Len(t, repo.rows, 1)
}

func TestVATRateReactivation(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, generalRate())
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, created.ID))

	revived, err := svc.Create(ctx, VATRate{Description: "General", Percent: decimal.NewFromInt(21)})
	require.NoError(t, err)
	require.Equal(t, created.ID, revived.ID)
	require.Equal(t, shared.StatusActive, revived.Status)
	require.Len(t, repo.rows, 1)
}

func TestVATRateValidationBounds(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, VATRate{Description: "Negativo", Percent: decimal.NewFromInt(-1)})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(ctx, VATRate{Description: "Imposible", Percent: decimal.NewFromInt(101)})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(ctx, VATRate{Description: "  ", Percent: decimal.NewFromInt(4)})
	require.ErrorIs(t, err, shared.ErrValidation)
}
