package employees

import (
	"time"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// Employee is a staff record. The national ID document and email are
// natural keys.
type Employee struct {
	ID         int64         `json:"id"`
	IDDocument string        `json:"id_document"`
	FirstName  string        `json:"first_name"`
	LastName   string        `json:"last_name"`
	Address    string        `json:"address"`
	Locality   string        `json:"locality"`
	Province   string        `json:"province"`
	Phone      string        `json:"phone"`
	Email      string        `json:"email"`
	HiredAt    time.Time     `json:"hired_at"`
	Status     shared.Status `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// FullName joins first and last name for display and audit detail.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
