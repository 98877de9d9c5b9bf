package shared

import (
	"fmt"
	"time"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// ValidateDateRange rejects ranges whose end precedes their start. The
// check runs before any repository call.
func ValidateDateRange(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return fmt.Errorf("%w: date range end precedes start", shared.ErrValidation)
	}
	return nil
}
