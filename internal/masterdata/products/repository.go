package products

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	mdshared "github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// Filters extends the common list filters with catalogue-specific ones.
type Filters struct {
	mdshared.ListFilters
	SupplierID   *int64
	BelowMinimum bool
}

type Repository interface {
	List(ctx context.Context, filters Filters) ([]Product, int, error)
	Get(ctx context.Context, id int64) (Product, error)
	FindByName(ctx context.Context, name string) (Product, error)
	FindByTriple(ctx context.Context, brand, packageFormat string, supplierID int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) error
	SetStatus(ctx context.Context, id int64, status shared.Status) error
	AddStock(ctx context.Context, id int64, qty int) error
	CountBelowMinimum(ctx context.Context) (int, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, animal_category, brand, package_format, supplier_id, vat_rate_id,
	purchase_price, sale_price, stock, minimum_stock, status, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters Filters) ([]Product, int, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM products WHERE 1=1`
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
		addCond(`(name ILIKE %[1]s OR brand ILIKE %[1]s OR animal_category ILIKE %[1]s)`, "%"+filters.Search+"%")
	}
	if filters.Status != nil {
		addCond(`status = %s`, *filters.Status)
	}
	if filters.SupplierID != nil {
		addCond(`supplier_id = %s`, *filters.SupplierID)
	}
	if filters.BelowMinimum {
		clause := ` AND stock < minimum_stock`
		query += clause
		countQuery += clause
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("products: count: %w", err)
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
		return nil, 0, fmt.Errorf("products: list: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, shared.ErrNotFound
		}
		return Product{}, fmt.Errorf("products: get: %w", err)
	}
	return p, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE LOWER(name) = LOWER($1)`, name)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, shared.ErrNotFound
		}
		return Product{}, fmt.Errorf("products: find by name: %w", err)
	}
	return p, nil
}

func (r *repository) FindByTriple(ctx context.Context, brand, packageFormat string, supplierID int64) (Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE LOWER(brand) = LOWER($1) AND LOWER(package_format) = LOWER($2) AND supplier_id = $3`,
		brand, packageFormat, supplierID)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, shared.ErrNotFound
		}
		return Product{}, fmt.Errorf("products: find by brand/format/supplier: %w", err)
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, p Product) (Product, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO products (name, animal_category, brand, package_format, supplier_id, vat_rate_id,
		        purchase_price, sale_price, stock, minimum_stock, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		 RETURNING id, created_at, updated_at`,
		p.Name, p.AnimalCategory, p.Brand, p.PackageFormat, p.SupplierID, p.VATRateID,
		p.PurchasePrice, p.SalePrice, p.Stock, p.MinimumStock, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, translateError("products: insert", err)
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id int64, p Product) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET name = $1, animal_category = $2, brand = $3, package_format = $4,
		        supplier_id = $5, vat_rate_id = $6, purchase_price = $7, sale_price = $8,
		        stock = $9, minimum_stock = $10, status = $11, updated_at = NOW()
		 WHERE id = $12`,
		p.Name, p.AnimalCategory, p.Brand, p.PackageFormat, p.SupplierID, p.VATRateID,
		p.PurchasePrice, p.SalePrice, p.Stock, p.MinimumStock, p.Status, id)
	if err != nil {
		return translateError("products: update", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status shared.Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("products: set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddStock increments the counter and always leaves the row active:
// receiving goods for a retired product puts it back in the catalogue.
func (r *repository) AddStock(ctx context.Context, id int64, qty int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET stock = stock + $1, status = $2, updated_at = NOW() WHERE id = $3`,
		qty, shared.StatusActive, id)
	if err != nil {
		return fmt.Errorf("products: add stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) CountBelowMinimum(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE status = $1 AND stock < minimum_stock`,
		shared.StatusActive).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("products: count below minimum: %w", err)
	}
	return count, nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.AnimalCategory, &p.Brand, &p.PackageFormat, &p.SupplierID,
		&p.VATRateID, &p.PurchasePrice, &p.SalePrice, &p.Stock, &p.MinimumStock,
		&p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
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
	case "brand":
		return "brand " + dir
	case "stock":
		return "stock " + dir
	case "sale_price":
		return "sale_price " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}
