package purchases

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
// purchased_at.
type Filters struct {
	mdshared.ListFilters
	SupplierID *int64
	EmployeeID *int64
}

type Repository interface {
	List(ctx context.Context, filters Filters) ([]Purchase, int, error)
	Get(ctx context.Context, id int64) (Purchase, error)
	// Create persists the header and all lines in a single transaction.
	Create(ctx context.Context, purchase Purchase) (Purchase, error)
	SetStatus(ctx context.Context, id int64, status shared.Status) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const purchaseColumns = `p.id, p.supplier_id, p.employee_id, p.purchased_at, p.total_net, p.total_gross,
	p.status, s.name, p.created_at, p.updated_at`

func (r *repository) List(ctx context.Context, filters Filters) ([]Purchase, int, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases p JOIN suppliers s ON s.id = p.supplier_id WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM purchases p JOIN suppliers s ON s.id = p.supplier_id WHERE 1=1`
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
		addCond(`s.name ILIKE %s`, "%"+filters.Search+"%")
	}
	if filters.Status != nil {
		addCond(`p.status = %s`, *filters.Status)
	}
	if filters.SupplierID != nil {
		addCond(`p.supplier_id = %s`, *filters.SupplierID)
	}
	if filters.EmployeeID != nil {
		addCond(`p.employee_id = %s`, *filters.EmployeeID)
	}
	if filters.DateFrom != nil {
		addCond(`p.purchased_at >= %s`, *filters.DateFrom)
	}
	if filters.DateTo != nil {
		addCond(`p.purchased_at <= %s`, *filters.DateTo)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("purchases: count: %w", err)
	}

	dir := "DESC"
	if filters.SortDir == mdshared.SortAsc {
		dir = "ASC"
	}
	query += ` ORDER BY p.purchased_at ` + dir
	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, filters.Limit)
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, filters.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("purchases: list: %w", err)
	}
	defer rows.Close()

	var purchases []Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, 0, err
		}
		purchases = append(purchases, p)
	}
	return purchases, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Purchase, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+purchaseColumns+` FROM purchases p JOIN suppliers s ON s.id = p.supplier_id WHERE p.id = $1`, id)
	p, err := scanPurchase(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Purchase{}, shared.ErrNotFound
		}
		return Purchase{}, fmt.Errorf("purchases: get: %w", err)
	}

	lines, err := r.lines(ctx, id)
	if err != nil {
		return Purchase{}, err
	}
	p.Lines = lines
	return p, nil
}

func (r *repository) lines(ctx context.Context, purchaseID int64) ([]Line, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, purchase_id, product_id, quantity, unit_price, vat_percent, subtotal_net, subtotal_gross, status
		 FROM purchase_lines WHERE purchase_id = $1 ORDER BY id`, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("purchases: lines: %w", err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.PurchaseID, &l.ProductID, &l.Quantity, &l.UnitPrice,
			&l.VATPercent, &l.SubtotalNet, &l.SubtotalGross, &l.Status); err != nil {
			return nil, fmt.Errorf("purchases: scan line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *repository) Create(ctx context.Context, p Purchase) (Purchase, error) {
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO purchases (supplier_id, employee_id, purchased_at, total_net, total_gross, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW()) RETURNING id, created_at, updated_at`,
			p.SupplierID, p.EmployeeID, p.PurchasedAt, p.TotalNet, p.TotalGross, p.Status,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("purchases: insert header: %w", err)
		}
		for i := range p.Lines {
			line := &p.Lines[i]
			line.PurchaseID = p.ID
			err := tx.QueryRow(ctx,
				`INSERT INTO purchase_lines (purchase_id, product_id, quantity, unit_price, vat_percent, subtotal_net, subtotal_gross, status)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
				line.PurchaseID, line.ProductID, line.Quantity, line.UnitPrice, line.VATPercent,
				line.SubtotalNet, line.SubtotalGross, line.Status,
			).Scan(&line.ID)
			if err != nil {
				return fmt.Errorf("purchases: insert line %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return Purchase{}, err
	}
	return p, nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE purchases SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("purchases: set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanPurchase(row pgx.Row) (Purchase, error) {
	var p Purchase
	err := row.Scan(&p.ID, &p.SupplierID, &p.EmployeeID, &p.PurchasedAt, &p.TotalNet, &p.TotalGross,
		&p.Status, &p.SupplierName, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
