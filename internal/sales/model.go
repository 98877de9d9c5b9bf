package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// Sale is an outgoing order invoiced to a client, registered by an
// employee. Header amounts are derived from the lines.
type Sale struct {
	ID         int64           `json:"id"`
	ClientID   int64           `json:"client_id"`
	EmployeeID int64           `json:"employee_id"`
	SoldAt     time.Time       `json:"sold_at"`
	TotalNet   decimal.Decimal `json:"total_net"`
	TotalGross decimal.Decimal `json:"total_gross"`
	Status     shared.Status   `json:"status"`
	ClientName string          `json:"client_name,omitempty"`
	Lines      []Line          `json:"lines,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Line is one product position on a sale.
type Line struct {
	ID            int64           `json:"id"`
	SaleID        int64           `json:"sale_id"`
	ProductID     int64           `json:"product_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	VATPercent    decimal.Decimal `json:"vat_percent"`
	SubtotalNet   decimal.Decimal `json:"subtotal_net"`
	SubtotalGross decimal.Decimal `json:"subtotal_gross"`
	Status        shared.Status   `json:"status"`
}
