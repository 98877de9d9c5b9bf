package clients

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

var (
	taxIDPattern = regexp.MustCompile(`^[A-Z0-9][0-9]{7}[A-Z0-9]$`)
	phonePattern = regexp.MustCompile(`^[6789][0-9]{8}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func validate(c Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: client name is required", shared.ErrValidation)
	}
	if strings.TrimSpace(c.LegalForm) == "" {
		return fmt.Errorf("%w: legal form is required", shared.ErrValidation)
	}
	if !taxIDPattern.MatchString(c.TaxID) {
		return fmt.Errorf("%w: tax id %q has an invalid format", shared.ErrValidation, c.TaxID)
	}
	if strings.TrimSpace(c.Address) == "" {
		return fmt.Errorf("%w: address is required", shared.ErrValidation)
	}
	if !phonePattern.MatchString(c.Phone) {
		return fmt.Errorf("%w: phone %q has an invalid format", shared.ErrValidation, c.Phone)
	}
	if !emailPattern.MatchString(c.Email) {
		return fmt.Errorf("%w: email %q has an invalid format", shared.ErrValidation, c.Email)
	}
	if c.OnboardedAt.IsZero() {
		return fmt.Errorf("%w: onboarding date is required", shared.ErrValidation)
	}
	return nil
}
