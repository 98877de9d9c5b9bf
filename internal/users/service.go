package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	mdshared "github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type Service struct {
	repo     Repository
	audit    shared.AuditRecorder
	logger   *slog.Logger
	hashCost int
}

func NewService(repo Repository, audit shared.AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger, hashCost: bcrypt.DefaultCost}
}

func (s *Service) List(ctx context.Context, filters mdshared.ListFilters) ([]User, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, fmt.Errorf("%w: invalid user id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create opens a login account for an employee. The username is the
// natural key; a collision with an inactive account reactivates it with
// the submitted fields and the freshly hashed password. An employee can
// hold at most one account.
func (s *Service) Create(ctx context.Context, user User, password string) (User, error) {
	if err := validate(user); err != nil {
		return User{}, err
	}
	if err := validatePassword(password); err != nil {
		return User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return User{}, fmt.Errorf("users: hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.Status = shared.StatusActive

	if byEmployee, err := s.repo.FindByEmployeeID(ctx, user.EmployeeID); err == nil {
		if byEmployee.Status == shared.StatusActive && byEmployee.Username != user.Username {
			return User{}, fmt.Errorf("%w: employee already holds account %s", shared.ErrDuplicate, byEmployee.Username)
		}
	} else if !errors.Is(err, shared.ErrNotFound) {
		return User{}, err
	}

	existing, err := s.repo.FindByUsername(ctx, user.Username)
	switch {
	case err == nil:
		if existing.Status == shared.StatusActive {
			return User{}, fmt.Errorf("%w: username %s already taken", shared.ErrDuplicate, user.Username)
		}
		if err := s.repo.Update(ctx, existing.ID, user); err != nil {
			return User{}, err
		}
		s.record(ctx, "reactivate", existing.ID, "user reactivated by username collision")
		return s.repo.Get(ctx, existing.ID)
	case errors.Is(err, shared.ErrNotFound):
		created, err := s.repo.Create(ctx, user)
		if err != nil {
			return User{}, err
		}
		s.record(ctx, "create", created.ID, "user created")
		return s.repo.Get(ctx, created.ID)
	default:
		return User{}, err
	}
}

// Update edits the account; an empty password keeps the current hash.
func (s *Service) Update(ctx context.Context, id int64, user User, password string) (User, error) {
	if id <= 0 {
		return User{}, fmt.Errorf("%w: invalid user id", shared.ErrValidation)
	}
	if err := validate(user); err != nil {
		return User{}, err
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	user.Status = current.Status
	user.PasswordHash = current.PasswordHash
	if password != "" {
		if err := validatePassword(password); err != nil {
			return User{}, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
		if err != nil {
			return User{}, fmt.Errorf("users: hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, id, user); err != nil {
		return User{}, err
	}
	s.record(ctx, "update", id, "user updated")
	return s.repo.Get(ctx, id)
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid user id", shared.ErrValidation)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == shared.StatusInactive {
		return fmt.Errorf("%w: user already inactive", shared.ErrValidation)
	}
	if err := s.repo.SetStatus(ctx, id, shared.StatusInactive); err != nil {
		return err
	}
	s.record(ctx, "deactivate", id, "user deactivated")
	return nil
}

func (s *Service) record(ctx context.Context, action string, id int64, detail string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  shared.ActorIDFromContext(ctx),
		Action:   action,
		Entity:   "users",
		EntityID: strconv.FormatInt(id, 10),
		Detail:   detail,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("entity", "users"), slog.Any("error", err))
	}
}
