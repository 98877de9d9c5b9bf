package returns

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

func validateHeader(orderID, employeeID int64, reason string, returnedAt time.Time) error {
	if orderID <= 0 {
		return fmt.Errorf("%w: originating order is required", shared.ErrValidation)
	}
	if employeeID <= 0 {
		return fmt.Errorf("%w: employee is required", shared.ErrValidation)
	}
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: reason is required", shared.ErrValidation)
	}
	if returnedAt.IsZero() {
		return fmt.Errorf("%w: return date is required", shared.ErrValidation)
	}
	return nil
}

func validateLines(lines []Line) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: at least one line is required", shared.ErrValidation)
	}
	for i, line := range lines {
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
