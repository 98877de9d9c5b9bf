package returns

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// SupplierReturn sends goods back to a supplier against an earlier
// purchase order.
type SupplierReturn struct {
	ID         int64           `json:"id"`
	PurchaseID int64           `json:"purchase_id"`
	EmployeeID int64           `json:"employee_id"`
	Reason     string          `json:"reason"`
	ReturnedAt time.Time       `json:"returned_at"`
	TotalNet   decimal.Decimal `json:"total_net"`
	TotalGross decimal.Decimal `json:"total_gross"`
	Status     shared.Status   `json:"status"`
	Lines      []Line          `json:"lines,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ClientReturn takes goods back from a client against an earlier sale.
type ClientReturn struct {
	ID         int64           `json:"id"`
	SaleID     int64           `json:"sale_id"`
	EmployeeID int64           `json:"employee_id"`
	Reason     string          `json:"reason"`
	ReturnedAt time.Time       `json:"returned_at"`
	TotalNet   decimal.Decimal `json:"total_net"`
	TotalGross decimal.Decimal `json:"total_gross"`
	Status     shared.Status   `json:"status"`
	Lines      []Line          `json:"lines,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Line is one returned product position; ParentID points at the return
// header it belongs to.
type Line struct {
	ID            int64           `json:"id"`
	ParentID      int64           `json:"-"`
	ProductID     int64           `json:"product_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	VATPercent    decimal.Decimal `json:"vat_percent"`
	SubtotalNet   decimal.Decimal `json:"subtotal_net"`
	SubtotalGross decimal.Decimal `json:"subtotal_gross"`
	Status        shared.Status   `json:"status"`
}
