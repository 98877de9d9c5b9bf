package products

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type memoryRepo struct {
	rows   map[int64]Product
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[int64]Product)}
}

func (r *memoryRepo) List(ctx context.Context, filters Filters) ([]Product, int, error) {
	var result []Product
	for _, p := range r.rows {
		if filters.Status != nil && p.Status != *filters.Status {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filters.Search)) {
			continue
		}
		if filters.SupplierID != nil && p.SupplierID != *filters.SupplierID {
			continue
		}
		if filters.BelowMinimum && !p.BelowMinimum() {
			continue
		}
		result = append(result, p)
	}
	return result, len(result), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Product, error) {
	if p, ok := r.rows[id]; ok {
		return p, nil
	}
	return Product{}, shared.ErrNotFound
}

func (r *memoryRepo) FindByName(ctx context.Context, name string) (Product, error) {
	for _, p := range r.rows {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Product{}, shared.ErrNotFound
}

func (r *memoryRepo) FindByTriple(ctx context.Context, brand, packageFormat string, supplierID int64) (Product, error) {
	for _, p := range r.rows {
		if strings.EqualFold(p.Brand, brand) && strings.EqualFold(p.PackageFormat, packageFormat) && p.SupplierID == supplierID {
			return p, nil
		}
	}
	return Product{}, shared.ErrNotFound
}

func (r *memoryRepo) Create(ctx context.Context, p Product) (Product, error) {
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.rows[p.ID] = p
	return p, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, p Product) error {
	existing, ok := r.rows[id]
	if !ok {
		return shared.ErrNotFound
	}
	p.ID = id
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	r.rows[id] = p
	return nil
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

func (r *memoryRepo) AddStock(ctx context.Context, id int64, qty int) error {
	p, ok := r.rows[id]
	if !ok {
		return shared.ErrNotFound
	}
	p.Stock += qty
	p.Status = shared.StatusActive
	r.rows[id] = p
	return nil
}

func (r *memoryRepo) CountBelowMinimum(ctx context.Context) (int, error) {
	count := 0
	for _, p := range r.rows {
		if p.Status == shared.StatusActive && p.BelowMinimum() {
			count++
		}
	}
	return count, nil
}

func validProduct() Product {
	return Product{
		Name:           "Pienso Adulto Pollo 20kg",
		AnimalCategory: "perro",
		Brand:          "NutriCan",
		PackageFormat:  "saco 20kg",
		SupplierID:     1,
		VATRateID:      1,
		PurchasePrice:  decimal.RequireFromString("18.50"),
		SalePrice:      decimal.RequireFromString("27.90"),
		Stock:          40,
		MinimumStock:   10,
	}
}

func TestProductCreateThenGetRoundTrip(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validProduct())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, shared.StatusActive, created.Status)

	found, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Pienso Adulto Pollo 20kg", found.Name)
	require.True(t, found.SalePrice.Equal(decimal.RequireFromString("27.90")))
	require.Equal(t, 40, found.Stock)
}

func TestProductDuplicateOnNameOrTriple(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, validProduct())
	require.NoError(t, err)

	sameName := validProduct()
	sameName.Brand = "OtraMarca"
	_, err = svc.Create(ctx, sameName)
	require.ErrorIs(t, err, shared.ErrDuplicate)

	sameTriple := validProduct()
	sameTriple.Name = "Pienso Pollo Formato Grande"
	_, err = svc.Create(ctx, sameTriple)
	require.ErrorIs(t, err, shared.ErrDuplicate)
	require.Len(t, repo.rows, 1)

	differentSupplier := sameTriple
	differentSupplier.SupplierID = 2
	_, err = svc.Create(ctx, differentSupplier)
	require.NoError(t, err)
	require.Len(t, repo.rows, 2)
}

func TestProductReactivation(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validProduct())
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, created.ID))

	resubmit := validProduct()
	resubmit.SalePrice = decimal.RequireFromString("29.90")
	revived, err := svc.Create(ctx, resubmit)
	require.NoError(t, err)
	require.Equal(t, created.ID, revived.ID)
	require.Equal(t, shared.StatusActive, revived.Status)
	require.True(t, revived.SalePrice.Equal(decimal.RequireFromString("29.90")))
	require.Len(t, repo.rows, 1)
}

func TestReplenishStockAddsQuantityAndForcesActive(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validProduct())
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, created.ID))

	require.NoError(t, svc.ReplenishStock(ctx, created.ID, 5))

	after, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 45, after.Stock)
	require.Equal(t, shared.StatusActive, after.Status)
}

func TestReplenishStockRejectsNonPositiveQuantity(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validProduct())
	require.NoError(t, err)

	require.ErrorIs(t, svc.ReplenishStock(ctx, created.ID, 0), shared.ErrValidation)
	require.ErrorIs(t, svc.ReplenishStock(ctx, created.ID, -3), shared.ErrValidation)
}

func TestLowStockQueries(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	healthy := validProduct()
	_, err := svc.Create(ctx, healthy)
	require.NoError(t, err)

	low := validProduct()
	low.Name = "Pienso Gatitos 5kg"
	low.Brand = "FelinoPlus"
	low.Stock = 2
	low.MinimumStock = 8
	_, err = svc.Create(ctx, low)
	require.NoError(t, err)

	count, err := svc.CountBelowMinimum(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	products, err := svc.ListBelowMinimum(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Pienso Gatitos 5kg", products[0].Name)
}
