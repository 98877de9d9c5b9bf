package employees

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
	List(ctx context.Context, filters mdshared.ListFilters) ([]Employee, int, error)
	Get(ctx context.Context, id int64) (Employee, error)
	FindByIDDocument(ctx context.Context, doc string) (Employee, error)
	FindByEmail(ctx context.Context, email string) (Employee, error)
	Create(ctx context.Context, employee Employee) (Employee, error)
	Update(ctx context.Context, id int64, employee Employee) error
	SetStatus(ctx context.Context, id int64, status shared.Status) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const employeeColumns = `id, id_document, first_name, last_name, address, locality, province, phone, email, hired_at, status, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters mdshared.ListFilters) ([]Employee, int, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM employees WHERE 1=1`
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
		addCond(`(first_name ILIKE %[1]s OR last_name ILIKE %[1]s OR id_document ILIKE %[1]s)`, "%"+filters.Search+"%")
	}
	if filters.Status != nil {
		addCond(`status = %s`, *filters.Status)
	}
	if filters.DateFrom != nil {
		addCond(`hired_at >= %s`, *filters.DateFrom)
	}
	if filters.DateTo != nil {
		addCond(`hired_at <= %s`, *filters.DateTo)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("employees: count: %w", err)
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
		return nil, 0, fmt.Errorf("employees: list: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Employee, error) {
	row := r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, shared.ErrNotFound
		}
		return Employee{}, fmt.Errorf("employees: get: %w", err)
	}
	return e, nil
}

func (r *repository) FindByIDDocument(ctx context.Context, doc string) (Employee, error) {
	row := r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id_document = $1`, doc)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, shared.ErrNotFound
		}
		return Employee{}, fmt.Errorf("employees: find by id document: %w", err)
	}
	return e, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (Employee, error) {
	row := r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE LOWER(email) = LOWER($1)`, email)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, shared.ErrNotFound
		}
		return Employee{}, fmt.Errorf("employees: find by email: %w", err)
	}
	return e, nil
}

func (r *repository) Create(ctx context.Context, e Employee) (Employee, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO employees (id_document, first_name, last_name, address, locality, province, phone, email, hired_at, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11) RETURNING id`,
		e.IDDocument, e.FirstName, e.LastName, e.Address, e.Locality, e.Province, e.Phone, e.Email, e.HiredAt, e.Status, now,
	).Scan(&e.ID)
	if err != nil {
		return Employee{}, translateError("employees: insert", err)
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	return e, nil
}

func (r *repository) Update(ctx context.Context, id int64, e Employee) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE employees SET id_document = $1, first_name = $2, last_name = $3, address = $4, locality = $5,
		        province = $6, phone = $7, email = $8, hired_at = $9, status = $10, updated_at = NOW()
		 WHERE id = $11`,
		e.IDDocument, e.FirstName, e.LastName, e.Address, e.Locality, e.Province, e.Phone, e.Email, e.HiredAt, e.Status, id)
	if err != nil {
		return translateError("employees: update", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE employees SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("employees: set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.IDDocument, &e.FirstName, &e.LastName, &e.Address, &e.Locality, &e.Province,
		&e.Phone, &e.Email, &e.HiredAt, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	return e, err
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
	case "hired_at":
		return "hired_at " + dir
	case "id_document":
		return "id_document " + dir
	default:
		return "last_name " + dir + ", first_name " + dir
	}
}
