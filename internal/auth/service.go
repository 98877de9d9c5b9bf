package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates username/password credentials. Only accounts in
// the active state may log in; any failure collapses into
// ErrInvalidCredentials so callers cannot distinguish unknown users from
// bad passwords.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Account, error) {
	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if account.Status != shared.StatusActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return account, nil
}

// CurrentAccount resolves the full account for a session user id.
func (s *Service) CurrentAccount(ctx context.Context, id int64) (*Account, error) {
	return s.repo.FindByID(ctx, id)
}
