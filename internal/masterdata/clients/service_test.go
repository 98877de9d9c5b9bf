package clients

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
	rows   map[int64]Client
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[int64]Client)}
}

func (r *memoryRepo) List(ctx context.Context, filters mdshared.ListFilters) ([]Client, int, error) {
	var result []Client
	for _, c := range r.rows {
		if filters.Status != nil && c.Status != *filters.Status {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filters.Search)) {
			continue
		}
		result = append(result, c)
	}
	return result, len(result), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Client, error) {
	if c, ok := r.rows[id]; ok {
		return c, nil
	}
	return Client{}, shared.ErrNotFound
}

func (r *memoryRepo) FindByTaxID(ctx context.Context, taxID string) (Client, error) {
	for _, c := range r.rows {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return Client{}, shared.ErrNotFound
}

func (r *memoryRepo) FindByEmail(ctx context.Context, email string) (Client, error) {
	for _, c := range r.rows {
		if strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return Client{}, shared.ErrNotFound
}

func (r *memoryRepo) Create(ctx context.Context, c Client) (Client, error) {
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.rows[c.ID] = c
	return c, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, c Client) error {
	existing, ok := r.rows[id]
	if !ok {
		return shared.ErrNotFound
	}
	c.ID = id
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	r.rows[id] = c
	return nil
}

func (r *memoryRepo) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	c, ok := r.rows[id]
	if !ok {
		return shared.ErrNotFound
	}
	c.Status = status
	r.rows[id] = c
	return nil
}

func validClient() Client {
	return Client{
		Name:        "Piensos del Norte SL",
		LegalForm:   "SL",
		TaxID:       "B12345678",
		Address:     "Calle Mayor 1",
		Locality:    "Valladolid",
		Province:    "Valladolid",
		Phone:       "612345678",
		Email:       "compras@piensosdelnorte.es",
		OnboardedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	submitted := validClient()
	created, err := svc.Create(ctx, submitted)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, shared.StatusActive, created.Status)

	found, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, submitted.Name, found.Name)
	require.Equal(t, submitted.TaxID, found.TaxID)
	require.Equal(t, submitted.Email, found.Email)
	require.Equal(t, submitted.OnboardedAt, found.OnboardedAt)
}

func TestCreateDuplicateTaxIDAgainstActiveRowIsRejected(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, validClient())
	require.NoError(t, err)

	second := validClient()
	second.Name = "Otro Distribuidor SA"
	second.Email = "info@otro.es"
	_, err = svc.Create(ctx, second)
	require.ErrorIs(t, err, shared.ErrDuplicate)
	require.Len(t, repo.rows, 1)
}

func TestCreateDuplicateEmailAgainstActiveRowIsRejected(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, validClient())
	require.NoError(t, err)

	second := validClient()
	second.Name = "Otro Distribuidor SA"
	second.TaxID = "B87654321"
	second.Email = "COMPRAS@piensosdelnorte.es"
	_, err = svc.Create(ctx, second)
	require.ErrorIs(t, err, shared.ErrDuplicate)
	require.Len(t, repo.rows, 1)
}

func TestCreateWithEmailOfInactiveRowReactivatesIt(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validClient())
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, created.ID))

	resubmit := validClient()
	resubmit.Name = "Piensos del Norte 2024 SL"
	resubmit.TaxID = "B87654321"
	revived, err := svc.Create(ctx, resubmit)
	require.NoError(t, err)

	require.Equal(t, created.ID, revived.ID)
	require.Equal(t, shared.StatusActive, revived.Status)
	require.Equal(t, "B87654321", revived.TaxID)
	require.Len(t, repo.rows, 1)
}

func TestCreateAgainstInactiveRowReactivatesIt(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validClient())
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, created.ID))

	resubmit := validClient()
	resubmit.Name = "Piensos del Norte 2024 SL"
	resubmit.Email = "nuevo@piensosdelnorte.es"
	revived, err := svc.Create(ctx, resubmit)
	require.NoError(t, err)

	require.Equal(t, created.ID, revived.ID)
	require.Equal(t, shared.StatusActive, revived.Status)
	require.Equal(t, "Piensos del Norte 2024 SL", revived.Name)
	require.Equal(t, "nuevo@piensosdelnorte.es", revived.Email)
	require.Len(t, repo.rows, 1)
}

func TestDeactivateIsLogicalOnly(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validClient())
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, created.ID))

	all, total, err := svc.List(ctx, mdshared.ListFilters{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, all, 1)

	active := shared.StatusActive
	actives, _, err := svc.List(ctx, mdshared.ListFilters{Page: 1, Limit: 10, Status: &active})
	require.NoError(t, err)
	require.Empty(t, actives)

	inactive := shared.StatusInactive
	inactives, _, err := svc.List(ctx, mdshared.ListFilters{Page: 1, Limit: 10, Status: &inactive})
	require.NoError(t, err)
	require.Len(t, inactives, 1)
}

func TestDeactivateTwiceIsRejected(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validClient())
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, created.ID))
	require.ErrorIs(t, svc.Deactivate(ctx, created.ID), shared.ErrValidation)
}

func TestListRejectsInvertedDateRange(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	ctx := context.Background()

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	_, _, err := svc.List(ctx, mdshared.ListFilters{Page: 1, Limit: 10, DateFrom: &from, DateTo: &to})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestValidationRejectsBadFormats(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	ctx := context.Background()

	bad := validClient()
	bad.TaxID = "not-a-tax-id"
	_, err := svc.Create(ctx, bad)
	require.ErrorIs(t, err, shared.ErrValidation)

	bad = validClient()
	bad.Phone = "12345"
	_, err = svc.Create(ctx, bad)
	require.ErrorIs(t, err, shared.ErrValidation)

	bad = validClient()
	bad.Email = "no-arroba"
	_, err = svc.Create(ctx, bad)
	require.ErrorIs(t, err, shared.ErrValidation)
}
