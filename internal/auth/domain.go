package auth

import (
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// Role is the access level carried by a user account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "standard"
)

// Account represents a login account joined with its employee identity.
type Account struct {
	ID           int64         `json:"id"`
	EmployeeID   int64         `json:"employee_id"`
	Username     string        `json:"username"`
	PasswordHash string        `json:"-"`
	Role         Role          `json:"role"`
	Status       shared.Status `json:"status"`
	EmployeeName string        `json:"employee_name"`
}
