package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByID(ctx context.Context, id int64) (*Account, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const accountQuery = `
	SELECT u.id, u.employee_id, u.username, u.password_hash, u.role, u.status,
	       e.first_name || ' ' || e.last_name
	FROM users u
	JOIN employees e ON e.id = u.employee_id
`

// FindByUsername fetches an account by its unique login name.
func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*Account, error) {
	return r.scanOne(r.pool.QueryRow(ctx, accountQuery+` WHERE u.username = $1`, username))
}

// FindByID fetches an account by its surrogate id.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*Account, error) {
	return r.scanOne(r.pool.QueryRow(ctx, accountQuery+` WHERE u.id = $1`, id))
}

func (r *PGRepository) scanOne(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.EmployeeID, &a.Username, &a.PasswordHash, &a.Role, &a.Status, &a.EmployeeName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("auth: scan account: %w", err)
	}
	return &a, nil
}

var _ Repository = (*PGRepository)(nil)
