package returns

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/platform/db"

	mdshared "github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// Filters narrows return listings; the date range applies to returned_at.
type Filters struct {
	mdshared.ListFilters
	EmployeeID *int64
	OrderID    *int64
}

type SupplierRepository interface {
	List(ctx context.Context, filters Filters) ([]SupplierReturn, int, error)
	Get(ctx context.Context, id int64) (SupplierReturn, error)
	Create(ctx context.Context, ret SupplierReturn) (SupplierReturn, error)
	SetStatus(ctx context.Context, id int64, status shared.Status) error
}

type supplierRepository struct {
	db *pgxpool.Pool
}

func NewSupplierRepository(pool *pgxpool.Pool) SupplierRepository {
	return &supplierRepository{db: pool}
}

const supplierReturnColumns = `id, purchase_id, employee_id, reason, returned_at, total_net, total_gross, status, created_at, updated_at`

func (r *supplierRepository) List(ctx context.Context, filters Filters) ([]SupplierReturn, int, error) {
	query := `SELECT ` + supplierReturnColumns + ` FROM supplier_returns WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM supplier_returns WHERE 1=1`
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
		addCond(`purchase_id = %s`, *filters.OrderID)
	}
	if filters.DateFrom != nil {
		addCond(`returned_at >= %s`, *filters.DateFrom)
	}
	if filters.DateTo != nil {
		addCond(`returned_at <= %s`, *filters.DateTo)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("supplier returns: count: %w", err)
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
		return nil, 0, fmt.Errorf("supplier returns: list: %w", err)
	}
	defer rows.Close()

	var returns []SupplierReturn
	for rows.Next() {
		ret, err := scanSupplierReturn(rows)
		if err != nil {
			return nil, 0, err
		}
		returns = append(returns, ret)
	}
	return returns, total, rows.Err()
}

func (r *supplierRepository) Get(ctx context.Context, id int64) (SupplierReturn, error) {
	row := r.db.QueryRow(ctx, `SELECT `+supplierReturnColumns+` FROM supplier_returns WHERE id = $1`, id)
	ret, err := scanSupplierReturn(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SupplierReturn{}, shared.ErrNotFound
		}
		return SupplierReturn{}, fmt.Errorf("supplier returns: get: %w", err)
	}

	ret.Lines, err = scanLines(ctx, r.db, "supplier_return_lines", "supplier_return_id", id)
	if err != nil {
		return SupplierReturn{}, err
	}
	return ret, nil
}

func (r *supplierRepository) Create(ctx context.Context, ret SupplierReturn) (SupplierReturn, error) {
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO supplier_returns (purchase_id, employee_id, reason, returned_at, total_net, total_gross, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW()) RETURNING id, created_at, updated_at`,
			ret.PurchaseID, ret.EmployeeID, ret.Reason, ret.ReturnedAt, ret.TotalNet, ret.TotalGross, ret.Status,
		).Scan(&ret.ID, &ret.CreatedAt, &ret.UpdatedAt)
		if err != nil {
			return fmt.Errorf("supplier returns: insert header: %w", err)
		}
		return insertLines(ctx, tx, "supplier_return_lines", "supplier_return_id", ret.ID, ret.Lines)
	})
	if err != nil {
		return SupplierReturn{}, err
	}
	for i := range ret.Lines {
		ret.Lines[i].ParentID = ret.ID
	}
	return ret, nil
}

func (r *supplierRepository) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE supplier_returns SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("supplier returns: set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanSupplierReturn(row pgx.Row) (SupplierReturn, error) {
	var ret SupplierReturn
	err := row.Scan(&ret.ID, &ret.PurchaseID, &ret.EmployeeID, &ret.Reason, &ret.ReturnedAt,
		&ret.TotalNet, &ret.TotalGross, &ret.Status, &ret.CreatedAt, &ret.UpdatedAt)
	return ret, err
}

func scanLines(ctx context.Context, pool *pgxpool.Pool, table, fk string, parentID int64) ([]Line, error) {
	rows, err := pool.Query(ctx,
		`SELECT id, `+fk+`, product_id, quantity, unit_price, vat_percent, subtotal_net, subtotal_gross, status
		 FROM `+table+` WHERE `+fk+` = $1 ORDER BY id`, parentID)
	if err != nil {
		return nil, fmt.Errorf("%s: list: %w", table, err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.ParentID, &l.ProductID, &l.Quantity, &l.UnitPrice,
			&l.VATPercent, &l.SubtotalNet, &l.SubtotalGross, &l.Status); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", table, err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func insertLines(ctx context.Context, tx pgx.Tx, table, fk string, parentID int64, lines []Line) error {
	for i := range lines {
		line := &lines[i]
		line.ParentID = parentID
		err := tx.QueryRow(ctx,
			`INSERT INTO `+table+` (`+fk+`, product_id, quantity, unit_price, vat_percent, subtotal_net, subtotal_gross, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
			parentID, line.ProductID, line.Quantity, line.UnitPrice, line.VATPercent,
			line.SubtotalNet, line.SubtotalGross, line.Status,
		).Scan(&line.ID)
		if err != nil {
			return fmt.Errorf("%s: insert line %d: %w", table, i+1, err)
		}
	}
	return nil
}
