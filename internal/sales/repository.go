package sales

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

// Filters extends the common list filters; the date range applies to
// sold_at.
type Filters struct {
	mdshared.ListFilters
	ClientID   *int64
	EmployeeID *int64
}

type Repository interface {
	List(ctx context.Context, filters Filters) ([]Sale, int, error)
	Get(ctx context.Context, id int64) (Sale, error)
	// Create persists the header and all lines in a single transaction.
	Create(ctx context.Context, sale Sale) (Sale, error)
	SetStatus(ctx context.Context, id int64, status shared.Status) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const saleColumns = `s.id, s.client_id, s.employee_id, s.sold_at, s.total_net, s.total_gross,
	s.status, c.name, s.created_at, s.updated_at`

func (r *repository) List(ctx context.Context, filters Filters) ([]Sale, int, error) {
	query := `SELECT ` + saleColumns + ` FROM sales s JOIN clients c ON c.id = s.client_id WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM sales s JOIN clients c ON c.id = s.client_id WHERE 1=1`
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
		addCond(`c.name ILIKE %s`, "%"+filters.Search+"%")
	}
	if filters.Status != nil {
		addCond(`s.status = %s`, *filters.Status)
	}
	if filters.ClientID != nil {
		addCond(`s.client_id = %s`, *filters.ClientID)
	}
	if filters.EmployeeID != nil {
		addCond(`s.employee_id = %s`, *filters.EmployeeID)
	}
	if filters.DateFrom != nil {
		addCond(`s.sold_at >= %s`, *filters.DateFrom)
	}
	if filters.DateTo != nil {
		addCond(`s.sold_at <= %s`, *filters.DateTo)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("sales: count: %w", err)
	}

	dir := "DESC"
	if filters.SortDir == mdshared.SortAsc {
		dir = "ASC"
	}
	query += ` ORDER BY s.sold_at ` + dir
	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, filters.Limit)
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, filters.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sales: list: %w", err)
	}
	defer rows.Close()

	var sales []Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, err
		}
		sales = append(sales, s)
	}
	return sales, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Sale, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales s JOIN clients c ON c.id = s.client_id WHERE s.id = $1`, id)
	s, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Sale{}, shared.ErrNotFound
		}
		return Sale{}, fmt.Errorf("sales: get: %w", err)
	}

	lines, err := r.lines(ctx, id)
	if err != nil {
		return Sale{}, err
	}
	s.Lines = lines
	return s, nil
}

func (r *repository) lines(ctx context.Context, saleID int64) ([]Line, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sale_id, product_id, quantity, unit_price, vat_percent, subtotal_net, subtotal_gross, status
		 FROM sale_lines WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("sales: lines: %w", err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice,
			&l.VATPercent, &l.SubtotalNet, &l.SubtotalGross, &l.Status); err != nil {
			return nil, fmt.Errorf("sales: scan line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *repository) Create(ctx context.Context, s Sale) (Sale, error) {
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO sales (client_id, employee_id, sold_at, total_net, total_gross, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW()) RETURNING id, created_at, updated_at`,
			s.ClientID, s.EmployeeID, s.SoldAt, s.TotalNet, s.TotalGross, s.Status,
		).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return fmt.Errorf("sales: insert header: %w", err)
		}
		for i := range s.Lines {
			line := &s.Lines[i]
			line.SaleID = s.ID
			err := tx.QueryRow(ctx,
				`INSERT INTO sale_lines (sale_id, product_id, quantity, unit_price, vat_percent, subtotal_net, subtotal_gross, status)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
				line.SaleID, line.ProductID, line.Quantity, line.UnitPrice, line.VATPercent,
				line.SubtotalNet, line.SubtotalGross, line.Status,
			).Scan(&line.ID)
			if err != nil {
				return fmt.Errorf("sales: insert line %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return Sale{}, err
	}
	return s, nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE sales SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("sales: set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanSale(row pgx.Row) (Sale, error) {
	var s Sale
	err := row.Scan(&s.ID, &s.ClientID, &s.EmployeeID, &s.SoldAt, &s.TotalNet, &s.TotalGross,
		&s.Status, &s.ClientName, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
