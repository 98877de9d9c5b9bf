package purchases

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// Purchase is a goods-in order placed with a supplier. Amounts are
// derived from the lines when the order is registered and stored
// denormalised on the header.
type Purchase struct {
	ID           int64           `json:"id"`
	SupplierID   int64           `json:"supplier_id"`
	EmployeeID   int64           `json:"employee_id"`
	PurchasedAt  time.Time       `json:"purchased_at"`
	TotalNet     decimal.Decimal `json:"total_net"`
	TotalGross   decimal.Decimal `json:"total_gross"`
	Status       shared.Status   `json:"status"`
	SupplierName string          `json:"supplier_name,omitempty"`
	Lines        []Line          `json:"lines,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Line is one product position on a purchase order.
type Line struct {
	ID            int64           `json:"id"`
	PurchaseID    int64           `json:"purchase_id"`
	ProductID     int64           `json:"product_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	VATPercent    decimal.Decimal `json:"vat_percent"`
	SubtotalNet   decimal.Decimal `json:"subtotal_net"`
	SubtotalGross decimal.Decimal `json:"subtotal_gross"`
	Status        shared.Status   `json:"status"`
}
