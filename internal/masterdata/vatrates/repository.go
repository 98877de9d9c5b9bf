package vatrates

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	mdshared "github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters mdshared.ListFilters) ([]VATRate, int, error)
	Get(ctx context.Context, id int64) (VATRate, error)
	FindByDescription(ctx context.Context, description string) (VATRate, error)
	FindByPercent(ctx context.Context, percent decimal.Decimal) (VATRate, error)
	Create(ctx context.Context, rate VATRate) (VATRate, error)
	Update(ctx context.Context, id int64, rate VATRate) error
	SetStatus(ctx context.Context, id int64, status shared.Status) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const vatRateColumns = `id, description, percent, status, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters mdshared.ListFilters) ([]VATRate, int, error) {
	query := `SELECT ` + vatRateColumns + ` FROM vat_rates WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM vat_rates WHERE 1=1`
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
		addCond(`description ILIKE %s`, "%"+filters.Search+"%")
	}
	if filters.Status != nil {
		addCond(`status = %s`, *filters.Status)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("vat rates: count: %w", err)
	}

	dir := "ASC"
	if filters.SortDir == mdshared.SortDesc {
		dir = "DESC"
	}
	query += ` ORDER BY percent ` + dir
	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, filters.Limit)
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, filters.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("vat rates: list: %w", err)
	}
	defer rows.Close()

	var rates []VATRate
	for rows.Next() {
		rate, err := scanVATRate(rows)
		if err != nil {
			return nil, 0, err
		}
		rates = append(rates, rate)
	}
	return rates, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (VATRate, error) {
	row := r.db.QueryRow(ctx, `SELECT `+vatRateColumns+` FROM vat_rates WHERE id = $1`, id)
	rate, err := scanVATRate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return VATRate{}, shared.ErrNotFound
		}
		return VATRate{}, fmt.Errorf("vat rates: get: %w", err)
	}
	return rate, nil
}

func (r *repository) FindByDescription(ctx context.Context, description string) (VATRate, error) {
	row := r.db.QueryRow(ctx, `SELECT `+vatRateColumns+` FROM vat_rates WHERE LOWER(description) = LOWER($1)`, description)
	rate, err := scanVATRate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return VATRate{}, shared.ErrNotFound
		}
		return VATRate{}, fmt.Errorf("vat rates: find by description: %w", err)
	}
	return rate, nil
}

func (r *repository) FindByPercent(ctx context.Context, percent decimal.Decimal) (VATRate, error) {
	row := r.db.QueryRow(ctx, `SELECT `+vatRateColumns+` FROM vat_rates WHERE percent = $1`, percent)
	rate, err := scanVATRate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return VATRate{}, shared.ErrNotFound
		}
		return VATRate{}, fmt.Errorf("vat rates: find by percent: %w", err)
	}
	return rate, nil
}

func (r *repository) Create(ctx context.Context, rate VATRate) (VATRate, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO vat_rates (description, percent, status, created_at, updated_at)
		 VALUES ($1, $2, $3, NOW(), NOW()) RETURNING id, created_at, updated_at`,
		rate.Description, rate.Percent, rate.Status,
	).Scan(&rate.ID, &rate.CreatedAt, &rate.UpdatedAt)
	if err != nil {
		return VATRate{}, translateError("vat rates: insert", err)
	}
	return rate, nil
}

func (r *repository) Update(ctx context.Context, id int64, rate VATRate) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE vat_rates SET description = $1, percent = $2, status = $3, updated_at = NOW() WHERE id = $4`,
		rate.Description, rate.Percent, rate.Status, id)
	if err != nil {
		return translateError("vat rates: update", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE vat_rates SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("vat rates: set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanVATRate(row pgx.Row) (VATRate, error) {
	var rate VATRate
	err := row.Scan(&rate.ID, &rate.Description, &rate.Percent, &rate.Status, &rate.CreatedAt, &rate.UpdatedAt)
	return rate, err
}

func translateError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", shared.ErrDuplicate, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}
