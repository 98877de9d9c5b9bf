package products

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// Product is a feed article in the catalogue. The name is unique on its
// own; so is the (brand, package format, supplier) triple, which mirrors
// how manufacturers label the same recipe in different bag sizes.
type Product struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	AnimalCategory string          `json:"animal_category"`
	Brand          string          `json:"brand"`
	PackageFormat  string          `json:"package_format"`
	SupplierID     int64           `json:"supplier_id"`
	VATRateID      int64           `json:"vat_rate_id"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SalePrice      decimal.Decimal `json:"sale_price"`
	Stock          int             `json:"stock"`
	MinimumStock   int             `json:"minimum_stock"`
	Status         shared.Status   `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// BelowMinimum reports whether the product needs replenishment.
func (p Product) BelowMinimum() bool {
	return p.Stock < p.MinimumStock
}
