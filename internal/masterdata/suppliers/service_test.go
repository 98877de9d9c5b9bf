package suppliers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mdshared "github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type memoryRepo struct {
	rows   map[int64]Supplier
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[int64]Supplier)}
}

func (r *memoryRepo) List(ctx context.Context, filters mdshared.ListFilters) ([]Supplier, int, error) {
	var result []Supplier
	for _, s := range r.rows {
		if filters.Status != nil && s.Status != *filters.Status {
			continue
		}
		result = append(result, s)
	}
	return result, len(result), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Supplier, error) {
	if s, ok := r.rows[id]; ok {
		return s, nil
	}
	return Supplier{}, shared.ErrNotFound
}

func (r *memoryRepo) FindByTaxID(ctx context.Context, taxID string) (Supplier, error) {
	for _, s := range r.rows {
		if s.TaxID == taxID {
			return s, nil
		}
	}
	return Supplier{}, shared.ErrNotFound
}

func (r *memoryRepo) FindByEmail(ctx context.Context, email string) (Supplier, error) {
	for _, s := range r.rows {
		if strings.EqualFold(s.Email, email) {
			return s, nil
		}
	}
	return Supplier{}, shared.ErrNotFound
}

func (r *memoryRepo) Create(ctx context.Context, s Supplier) (Supplier, error) {
	r.nextID++
	s.ID = r.nextID
	r.rows[s.ID] = s
	return s, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, s Supplier) error {
	if _, ok := r.rows[id]; !ok {
		return shared.ErrNotFound
	}
	s.ID = id
	r.rows[id] = s
	return nil
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

func validSupplier() Supplier {
	return Supplier{
		Name:        "Nutricion Animal Iberica SA",
		LegalForm:   "SA",
		TaxID:       "A87654321",
		Address:     "Poligono Industrial 12",
		Locality:    "Zaragoza",
		Province:    "Zaragoza",
		Phone:       "976123456",
		Email:       "ventas@nutricioniberica.es",
		OnboardedAt: time.Date(2023, 9, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestSupplierDuplicateAndReactivation(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validSupplier())
	require.NoError(t, err)

	_, err = svc.Create(ctx, validSupplier())
	require.ErrorIs(t, err, shared.ErrDuplicate)

	require.NoError(t, svc.Deactivate(ctx, created.ID))

	resubmit := validSupplier()
	resubmit.Name = "Nutricion Animal Iberica 2025 SA"
	revived, err := svc.Create(ctx, resubmit)
	require.NoError(t, err)
	require.Equal(t, created.ID, revived.ID)
	require.Equal(t, shared.StatusActive, revived.Status)
	require.Equal(t, resubmit.Name, revived.Name)
	require.Len(t, repo.rows, 1)
}

func TestSupplierDuplicateEmail(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validSupplier())
	require.NoError(t, err)

	second := validSupplier()
	second.Name = "Otra Fabrica SA"
	second.TaxID = "A11111111"
	second.Email = "VENTAS@nutricioniberica.es"
	_, err = svc.Create(ctx, second)
	require.ErrorIs(t, err, shared.ErrDuplicate)
	require.Len(t, repo.rows, 1)

	require.NoError(t, svc.Deactivate(ctx, created.ID))
	revived, err := svc.Create(ctx, second)
	require.NoError(t, err)
	require.Equal(t, created.ID, revived.ID)
	require.Equal(t, "A11111111", revived.TaxID)
	require.Len(t, repo.rows, 1)
}

func TestSupplierDeactivateGuards(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	require.ErrorIs(t, svc.Deactivate(ctx, 99), shared.ErrNotFound)

	created, err := svc.Create(ctx, validSupplier())
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, created.ID))
	require.ErrorIs(t, svc.Deactivate(ctx, created.ID), shared.ErrValidation)
}
