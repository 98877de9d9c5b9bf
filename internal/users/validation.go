package users

import (
	"fmt"
	"regexp"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/auth"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{2,31}$`)

const minPasswordLength = 8

func validate(u User) error {
	if !usernamePattern.MatchString(u.Username) {
		return fmt.Errorf("%w: username %q has an invalid format", shared.ErrValidation, u.Username)
	}
	if u.EmployeeID <= 0 {
		return fmt.Errorf("%w: employee is required", shared.ErrValidation)
	}
	if u.Role != auth.RoleAdmin && u.Role != auth.RoleStandard {
		return fmt.Errorf("%w: role %q is not recognised", shared.ErrValidation, u.Role)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", shared.ErrValidation, minPasswordLength)
	}
	return nil
}
