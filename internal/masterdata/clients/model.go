package clients

import (
	"time"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// Client represents a buying legal entity. Tax ID and email are natural
// keys; rows are never physically deleted.
type Client struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	LegalForm   string        `json:"legal_form"`
	TaxID       string        `json:"tax_id"`
	Address     string        `json:"address"`
	Locality    string        `json:"locality"`
	Province    string        `json:"province"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email"`
	OnboardedAt time.Time     `json:"onboarded_at"`
	Status      shared.Status `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
