package employees

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

var (
	idDocumentPattern = regexp.MustCompile(`^([0-9]{8}|[XYZ][0-9]{7})[A-Z]$`)
	phonePattern      = regexp.MustCompile(`^[6789][0-9]{8}$`)
	emailPattern      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func validate(e Employee) error {
	if !idDocumentPattern.MatchString(e.IDDocument) {
		return fmt.Errorf("%w: id document %q has an invalid format", shared.ErrValidation, e.IDDocument)
	}
	if strings.TrimSpace(e.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", shared.ErrValidation)
	}
	if strings.TrimSpace(e.LastName) == "" {
		return fmt.Errorf("%w: last name is required", shared.ErrValidation)
	}
	if strings.TrimSpace(e.Address) == "" {
		return fmt.Errorf("%w: address is required", shared.ErrValidation)
	}
	if !phonePattern.MatchString(e.Phone) {
		return fmt.Errorf("%w: phone %q has an invalid format", shared.ErrValidation, e.Phone)
	}
	if !emailPattern.MatchString(e.Email) {
		return fmt.Errorf("%w: email %q has an invalid format", shared.ErrValidation, e.Email)
	}
	if e.HiredAt.IsZero() {
		return fmt.Errorf("%w: hire date is required", shared.ErrValidation)
	}
	return nil
}
