package vatrates

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

var maxPercent = decimal.NewFromInt(100)

func validate(rate VATRate) error {
	if strings.TrimSpace(rate.Description) == "" {
		return fmt.Errorf("%w: description is required", shared.ErrValidation)
	}
	if rate.Percent.IsNegative() {
		return fmt.Errorf("%w: percent must not be negative", shared.ErrValidation)
	}
	if rate.Percent.GreaterThan(maxPercent) {
		return fmt.Errorf("%w: percent must not exceed 100", shared.ErrValidation)
	}
	return nil
}
