package purchases

import (
	"fmt"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// validate checks the whole order before anything touches the database,
// so a bad line can never leave a half-written order behind.
func validate(p Purchase) error {
	if p.SupplierID <= 0 {
		return fmt.Errorf("%w: supplier is required", shared.ErrValidation)
	}
	if p.EmployeeID <= 0 {
		return fmt.Errorf("%w: employee is required", shared.ErrValidation)
	}
	if p.PurchasedAt.IsZero() {
		return fmt.Errorf("%w: purchase date is required", shared.ErrValidation)
	}
	if len(p.Lines) == 0 {
		return fmt.Errorf("%w: at least one line is required", shared.ErrValidation)
	}
	for i, line := range p.Lines {
		if line.ProductID <= 0 {
			return fmt.Errorf("%w: line %d: product is required", shared.ErrValidation, i+1)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: line %d: quantity must be positive", shared.ErrValidation, i+1)
		}
		if line.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: line %d: unit price must not be negative", shared.ErrValidation, i+1)
		}
		if line.VATPercent.IsNegative() {
			return fmt.Errorf("%w: line %d: vat percent must not be negative", shared.ErrValidation, i+1)
		}
	}
	return nil
}
