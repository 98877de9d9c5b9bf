package products

import (
	"fmt"
	"strings"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

func validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", shared.ErrValidation)
	}
	if strings.TrimSpace(p.AnimalCategory) == "" {
		return fmt.Errorf("%w: animal category is required", shared.ErrValidation)
	}
	if strings.TrimSpace(p.Brand) == "" {
		return fmt.Errorf("%w: brand is required", shared.ErrValidation)
	}
	if strings.TrimSpace(p.PackageFormat) == "" {
		return fmt.Errorf("%w: package format is required", shared.ErrValidation)
	}
	if p.SupplierID <= 0 {
		return fmt.Errorf("%w: supplier is required", shared.ErrValidation)
	}
	if p.VATRateID <= 0 {
		return fmt.Errorf("%w: vat rate is required", shared.ErrValidation)
	}
	if p.PurchasePrice.IsNegative() {
		return fmt.Errorf("%w: purchase price must not be negative", shared.ErrValidation)
	}
	if p.SalePrice.IsNegative() {
		return fmt.Errorf("%w: sale price must not be negative", shared.ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", shared.ErrValidation)
	}
	if p.MinimumStock < 0 {
		return fmt.Errorf("%w: minimum stock must not be negative", shared.ErrValidation)
	}
	return nil
}
