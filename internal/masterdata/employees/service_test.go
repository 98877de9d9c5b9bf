package employees

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
	rows   map[int64]Employee
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[int64]Employee)}
}

func (r *memoryRepo) List(ctx context.Context, filters mdshared.ListFilters) ([]Employee, int, error) {
	var result []Employee
	for _, e := range r.rows {
		if filters.Status != nil && e.Status != *filters.Status {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(e.LastName), strings.ToLower(filters.Search)) {
			continue
		}
		result = append(result, e)
	}
	return result, len(result), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Employee, error) {
	if e, ok := r.rows[id]; ok {
		return e, nil
	}
	return Employee{}, shared.ErrNotFound
}

func (r *memoryRepo) FindByIDDocument(ctx context.Context, doc string) (Employee, error) {
	for _, e := range r.rows {
		if e.IDDocument == doc {
			return e, nil
		}
	}
	return Employee{}, shared.ErrNotFound
}

func (r *memoryRepo) FindByEmail(ctx context.Context, email string) (Employee, error) {
	for _, e := range r.rows {
		if strings.EqualFold(e.Email, email) {
			return e, nil
		}
	}
	return Employee{}, shared.ErrNotFound
}

func (r *memoryRepo) Create(ctx context.Context, e Employee) (Employee, error) {
	r.nextID++
	e.ID = r.nextID
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.rows[e.ID] = e
	return e, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, e Employee) error {
	existing, ok := r.rows[id]
	if !ok {
		return shared.ErrNotFound
	}
	e.ID = id
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = time.Now()
	r.rows[id] = e
	return nil
}

func (r *memoryRepo) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	e, ok := r.rows[id]
	if !ok {
		return shared.ErrNotFound
	}
	e.Status = status
	r.rows[id] = e
	return nil
}

func validEmployee() Employee {
	return Employee{
		IDDocument: "12345678Z",
		FirstName:  "Lucía",
		LastName:   "Martín Pérez",
		Address:    "Avenida de Burgos 14",
		Locality:   "Palencia",
		Province:   "Palencia",
		Phone:      "687654321",
		Email:      "lucia.martin@gestor.es",
		HiredAt:    time.Date(2023, 9, 11, 0, 0, 0, 0, time.UTC),
	}
}

func TestEmployeeCreateThenGetRoundTrip(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	submitted := validEmployee()
	created, err := svc.Create(ctx, submitted)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, shared.StatusActive, created.Status)

	found, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, submitted.IDDocument, found.IDDocument)
	require.Equal(t, submitted.FirstName, found.FirstName)
	require.Equal(t, submitted.HiredAt, found.HiredAt)
	require.Equal(t, "Lucía Martín Pérez", found.FullName())
}

func TestEmployeeDuplicateAndReactivation(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validEmployee())
	require.NoError(t, err)

	second := validEmployee()
	second.Email = "otro@gestor.es"
	_, err = svc.Create(ctx, second)
	require.ErrorIs(t, err, shared.ErrDuplicate)
	require.Len(t, repo.rows, 1)

	require.NoError(t, svc.Deactivate(ctx, created.ID))

	resubmit := validEmployee()
	resubmit.LastName = "Martín García"
	revived, err := svc.Create(ctx, resubmit)
	require.NoError(t, err)
	require.Equal(t, created.ID, revived.ID)
	require.Equal(t, shared.StatusActive, revived.Status)
	require.Equal(t, "Martín García", revived.LastName)
	require.Len(t, repo.rows, 1)
}

func TestEmployeeDuplicateEmail(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validEmployee())
	require.NoError(t, err)

	second := validEmployee()
	second.IDDocument = "87654321X"
	second.FirstName = "Laura"
	second.Email = "Lucia.Martin@gestor.es"
	_, err = svc.Create(ctx, second)
	require.ErrorIs(t, err, shared.ErrDuplicate)
	require.Len(t, repo.rows, 1)

	require.NoError(t, svc.Deactivate(ctx, created.ID))
	revived, err := svc.Create(ctx, second)
	require.NoError(t, err)
	require.Equal(t, created.ID, revived.ID)
	require.Equal(t, "87654321X", revived.IDDocument)
	require.Equal(t, shared.StatusActive, revived.Status)
	require.Len(t, repo.rows, 1)
}

func TestEmployeeDeactivateGuards(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validEmployee())
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, created.ID))
	require.ErrorIs(t, svc.Deactivate(ctx, created.ID), shared.ErrValidation)
	require.ErrorIs(t, svc.Deactivate(ctx, 99), shared.ErrNotFound)
}

func TestEmployeeValidationRejectsBadFormats(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	ctx := context.Background()

	bad := validEmployee()
	bad.IDDocument = "1234A"
	_, err := svc.Create(ctx, bad)
	require.ErrorIs(t, err, shared.ErrValidation)

	nie := validEmployee()
	nie.IDDocument = "X1234567L"
	created, err := svc.Create(ctx, nie)
	require.NoError(t, err)
	require.Equal(t, "X1234567L", created.IDDocument)

	bad = validEmployee()
	bad.HiredAt = time.Time{}
	_, err = svc.Create(ctx, bad)
	require.ErrorIs(t, err, shared.ErrValidation)
}
