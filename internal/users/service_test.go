package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/auth"
	mdshared "github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type memoryRepo struct {
	rows   map[int64]User
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[int64]User)}
}

func (r *memoryRepo) List(ctx context.Context, filters mdshared.ListFilters) ([]User, int, error) {
	var result []User
	for _, u := range r.rows {
		if filters.Status != nil && u.Status != *filters.Status {
			continue
		}
		result = append(result, u)
	}
	return result, len(result), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (User, error) {
	if u, ok := r.rows[id]; ok {
		return u, nil
	}
	return User{}, shared.ErrNotFound
}

func (r *memoryRepo) FindByUsername(ctx context.Context, username string) (User, error) {
	for _, u := range r.rows {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return User{}, shared.ErrNotFound
}

func (r *memoryRepo) FindByEmployeeID(ctx context.Context, employeeID int64) (User, error) {
	for _, u := range r.rows {
		if u.EmployeeID == employeeID {
			return u, nil
		}
	}
	return User{}, shared.ErrNotFound
}

func (r *memoryRepo) Create(ctx context.Context, u User) (User, error) {
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.rows[u.ID] = u
	return u, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, u User) error {
	existing, ok := r.rows[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.ID = id
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now()
	r.rows[id] = u
	return nil
}

func (r *memoryRepo) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	u, ok := r.rows[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.Status = status
	r.rows[id] = u
	return nil
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo, nil, nil)
	svc.hashCost = bcrypt.MinCost
	return svc
}

func validUser() User {
	return User{EmployeeID: 7, Username: "lmartin", Role: auth.RoleStandard}
}

func TestUserCreateHashesPassword(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validUser(), "correcto-caballo")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, shared.StatusActive, created.Status)

	stored := repo.rows[created.ID]
	require.NotEqual(t, "correcto-caballo", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correcto-caballo")))
}

func TestUserCreateRejectsShortPasswordAndBadRole(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, validUser(), "corta")
	require.ErrorIs(t, err, shared.ErrValidation)

	bad := validUser()
	bad.Role = "supervisor"
	_, err = svc.Create(ctx, bad, "correcto-caballo")
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestUserDuplicateUsernameAndEmployee(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, validUser(), "correcto-caballo")
	require.NoError(t, err)

	sameName := validUser()
	sameName.EmployeeID = 8
	_, err = svc.Create(ctx, sameName, "otra-clave-larga")
	require.ErrorIs(t, err, shared.ErrDuplicate)

	sameEmployee := validUser()
	sameEmployee.Username = "lucia.m"
	_, err = svc.Create(ctx, sameEmployee, "otra-clave-larga")
	require.ErrorIs(t, err, shared.ErrDuplicate)
	require.Len(t, repo.rows, 1)
}

func TestUserReactivationRehashesPassword(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validUser(), "correcto-caballo")
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, created.ID))

	revived, err := svc.Create(ctx, validUser(), "clave-nueva-2024")
	require.NoError(t, err)
	require.Equal(t, created.ID, revived.ID)
	require.Equal(t, shared.StatusActive, revived.Status)

	stored := repo.rows[created.ID]
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-nueva-2024")))
	require.Len(t, repo.rows, 1)
}

func TestUserUpdateKeepsHashWhenPasswordEmpty(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validUser(), "correcto-caballo")
	require.NoError(t, err)
	before := repo.rows[created.ID].PasswordHash

	edited := validUser()
	edited.Role = auth.RoleAdmin
	updated, err := svc.Update(ctx, created.ID, edited, "")
	require.NoError(t, err)
	require.Equal(t, auth.RoleAdmin, updated.Role)
	require.Equal(t, before, repo.rows[created.ID].PasswordHash)
}
