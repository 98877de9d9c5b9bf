package users

import (
	"time"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/auth"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// User is a login account tied one-to-one to an employee.
type User struct {
	ID           int64         `json:"id"`
	EmployeeID   int64         `json:"employee_id"`
	Username     string        `json:"username"`
	PasswordHash string        `json:"-"`
	Role         auth.Role     `json:"role"`
	Status       shared.Status `json:"status"`
	EmployeeName string        `json:"employee_name,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
