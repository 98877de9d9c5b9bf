package returns

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/platform/db"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type ClientRepository interface {
	List(ctx context.Context, filters Filters) ([]ClientReturn, int, error)
	Get(ctx context.Context, id int64) (ClientReturn, error)
	Create(ctx context.Context, ret ClientReturn) (ClientReturn, error)
	SetStatus(ctx context.Context, id int64, status shared.Status) error
}

type clientRepository struct {
	db *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{db: pool}
}

const clientReturnColumns = `id, sale_id, employee_id, reason, returned_at, total_net, total_gross, status, created_at, updated_at`

func (r *clientRepository) List(ctx context.Context, filters Filters) ([]ClientReturn, int, error) {
	query := `SELECT ` + clientReturnColumns + ` FROM client_returns WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM client_returns WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	addCond := func(cond string, value interface{}) {
		argCount++
		clause := ` AND ` + fmt.Sprintf(cond, "$"+strconv.Itoa(argCount))
		query += clause
		countQuery += clause
		args = append(args, value)
	}

	if filters.Status != nil {
		addCond(`status = %s`, *filters.Status)
	}
	if filters.EmployeeID != nil {
		addCond(`employee_id = %s`, *filters.EmployeeID)
	}
	if filters.OrderID != nil {
		addCond(`sale_id = %s`, *filters.OrderID)
	}
	if filters.DateFrom != nil {
		addCond(`returned_at >= %s`, *filters.DateFrom)
	}
	if filters.DateTo != nil {
		addCond(`returned_at <= %s`, *filters.DateTo)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("client returns: count: %w", err)
	}

	query += ` ORDER BY returned_at DESC`
	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, filters.Limit)
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, filters.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("client returns: list: %w", err)
	}
	defer rows.Close()

	var returns []ClientReturn
	for rows.Next() {
		ret, err := scanClientReturn(rows)
		if err != nil {
			return nil, 0, err
		}
		returns = append(returns, ret)
	}
	return returns, total, rows.Err()
}

func (r *clientRepository) Get(ctx context.Context, id int64) (ClientReturn, error) {
	row := r.db.QueryRow(ctx, `SELECT `+clientReturnColumns+` FROM client_returns WHERE id = $1`, id)
	ret, err := scanClientReturn(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ClientReturn{}, shared.ErrNotFound
		}
		return ClientReturn{}, fmt.Errorf("client returns: get: %w", err)
	}

	ret.Lines, err = scanLines(ctx, r.db, "client_return_lines", "client_return_id", id)
	if err != nil {
		return ClientReturn{}, err
	}
	return ret, nil
}

func (r *clientRepository) Create(ctx context.Context, ret ClientReturn) (ClientReturn, error) {
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO client_returns (sale_id, employee_id, reason, returned_at, total_net, total_gross, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW()) RETURNING id, created_at, updated_at`,
			ret.SaleID, ret.EmployeeID, ret.Reason, ret.ReturnedAt, ret.TotalNet, ret.TotalGross, ret.Status,
		).Scan(&ret.ID, &ret.CreatedAt, &ret.UpdatedAt)
		if err != nil {
			return fmt.Errorf("client returns: insert header: %w", err)
		}
		return insertLines(ctx, tx, "client_return_lines", "client_return_id", ret.ID, ret.Lines)
	})
	if err != nil {
		return ClientReturn{}, err
	}
	for i := range ret.Lines {
		ret.Lines[i].ParentID = ret.ID
	}
	return ret, nil
}

func (r *clientRepository) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE client_returns SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("client returns: set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanClientReturn(row pgx.Row) (ClientReturn, error) {
	var ret ClientReturn
	err := row.Scan(&ret.ID, &ret.SaleID, &ret.EmployeeID, &ret.Reason, &ret.ReturnedAt,
		&ret.TotalNet, &ret.TotalGross, &ret.Status, &ret.CreatedAt, &ret.UpdatedAt)
	return ret, err
}
