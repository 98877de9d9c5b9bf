package vatrates

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// VATRate is one of the tax brackets applicable to feed products
// (super-reduced, reduced and general under Spanish VAT law).
type VATRate struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Percent     decimal.Decimal `json:"percent"`
	Status      shared.Status   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
