package sales

import (
	"fmt"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

func validate(s Sale) error {
	if s.ClientID <= 0 {
		return fmt.Errorf("%w: client is required", shared.ErrValidation)
	}
	if s.EmployeeID <= 0 {
		return fmt.Errorf("%w: employee is required", shared.ErrValidation)
	}
	if s.SoldAt.IsZero() {
		return fmt.Errorf("%w: sale date is required", shared.ErrValidation)
	}
	if len(s.Lines) == 0 {
		return fmt.Errorf("%w: at least one line is required", shared.ErrValidation)
	}
	for i, line := range s.Lines {
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
