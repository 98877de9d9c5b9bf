package clients

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	mdshared "github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters mdshared.ListFilters) ([]Client, int, error)
	Get(ctx context.Context, id int64) (Client, error)
	FindByTaxID(ctx context.Context, taxID string) (Client, error)
	FindByEmail(ctx context.Context, email string) (Client, error)
	Create(ctx context.Context, client Client) (Client, error)
	Update(ctx context.Context, id int64, client Client) error
	SetStatus(ctx context.Context, id int64, status shared.Status) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const clientColumns = `id, name, legal_form, tax_id, address, locality, province, phone, email, onboarded_at, status, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters mdshared.ListFilters) ([]Client, int, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM clients WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	addCond := func(cond string, value interface{}) {
		argCount++
		clause := ` AND ` + fmt.Sprintf(cond, "$"+strconv.Itoa(argCount))
		query += clause
		countQuery += clause
		args = append(args, value)
	}

	if filters.Search != "" {
		addCond(`(name ILIKE %[1]s OR tax_id ILIKE %[1]s OR email ILIKE %[1]s)`, "%"+filters.Search+"%")
	}
	if filters.Status != nil {
		addCond(`status = %s`, *filters.Status)
	}
	if filters.DateFrom != nil {
		addCond(`onboarded_at >= %s`, *filters.DateFrom)
	}
	if filters.DateTo != nil {
		addCond(`onboarded_at <= %s`, *filters.DateTo)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("clients: count: %w", err)
	}

	query += " ORDER BY " + sortOrder(filters.SortBy, filters.SortDir)
	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, filters.Limit)
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, filters.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("clients: list: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, c)
	}
	return clients, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Client, error) {
	row := r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, shared.ErrNotFound
		}
		return Client{}, fmt.Errorf("clients: get: %w", err)
	}
	return c, nil
}

func (r *repository) FindByTaxID(ctx context.Context, taxID string) (Client, error) {
	row := r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE tax_id = $1`, taxID)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, shared.ErrNotFound
		}
		return Client{}, fmt.Errorf("clients: find by tax id: %w", err)
	}
	return c, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (Client, error) {
	row := r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE LOWER(email) = LOWER($1)`, email)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, shared.ErrNotFound
		}
		return Client{}, fmt.Errorf("clients: find by email: %w", err)
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, c Client) (Client, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO clients (name, legal_form, tax_id, address, locality, province, phone, email, onboarded_at, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11) RETURNING id`,
		c.Name, c.LegalForm, c.TaxID, c.Address, c.Locality, c.Province, c.Phone, c.Email, c.OnboardedAt, c.Status, now,
	).Scan(&c.ID)
	if err != nil {
		return Client{}, translateError("clients: insert", err)
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

func (r *repository) Update(ctx context.Context, id int64, c Client) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE clients SET name = $1, legal_form = $2, tax_id = $3, address = $4, locality = $5, province = $6,
		        phone = $7, email = $8, onboarded_at = $9, status = $10, updated_at = NOW()
		 WHERE id = $11`,
		c.Name, c.LegalForm, c.TaxID, c.Address, c.Locality, c.Province, c.Phone, c.Email, c.OnboardedAt, c.Status, id)
	if err != nil {
		return translateError("clients: update", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE clients SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("clients: set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanClient(row pgx.Row) (Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.Name, &c.LegalForm, &c.TaxID, &c.Address, &c.Locality, &c.Province,
		&c.Phone, &c.Email, &c.OnboardedAt, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func translateError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", shared.ErrDuplicate, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == mdshared.SortDesc {
		dir = "DESC"
	}
	switch sortBy {
	case "tax_id":
		return "tax_id " + dir
	case "onboarded_at":
		return "onboarded_at " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}
