// Package seeder bootstraps the accounts a fresh deployment needs.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"estatehub/internal/audit"
	"estatehub/internal/auth/models"
	id "estatehub/pkg/domain"
	"estatehub/pkg/secrets"
)

// UserStore creates the account or promotes an existing one with the same email.
type UserStore interface {
	EnsureRole(ctx context.Context, user *models.User) (bool, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Seeder struct {
	users  UserStore
	audit  AuditPublisher
	logger *slog.Logger
	hash   func(string) (string, error)
	now    func() time.Time
}

func New(users UserStore, auditPublisher AuditPublisher, logger *slog.Logger) *Seeder {
	return &Seeder{
		users:  users,
		audit:  auditPublisher,
		logger: logger,
		hash:   secrets.HashPassword,
		now:    time.Now,
	}
}

// SeedSuperAdmin makes sure a SUPER_ADMIN account exists for email. An
// existing account with that email is promoted and keeps its password.
func (s *Seeder) SeedSuperAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return errors.New("super admin email and password are required")
	}

	hash, err := s.hash(password)
	if err != nil {
		return fmt.Errorf("hash super admin password: %w", err)
	}
	now := s.now().UTC()
	user := &models.User{
		ID:                 id.NewUserID(),
		FirstName:          "Super",
		LastName:           "Admin",
		Email:              email,
		PasswordHash:       hash,
		Role:               id.RoleSuperAdmin,
		VerificationStatus: id.VerificationVerified,
		IsEmailVerified:    true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.users.EnsureRole(ctx, user)
	if err != nil {
		return fmt.Errorf("seed super admin: %w", err)
	}

	action := audit.ActionUserUpdated
	if created {
		action = audit.ActionUserRegistered
	}
	s.logger.InfoContext(ctx, "super admin ensured",
		"email", email,
		"created", created,
	)
	if s.audit != nil {
		if err := s.audit.Emit(ctx, audit.Event{
			Timestamp:  now,
			ActorID:    "seeder",
			ActorRole:  string(id.RoleSuperAdmin),
			Action:     action,
			TargetType: audit.TargetUser,
			TargetID:   email,
			Reason:     "bootstrap",
		}); err != nil {
			s.logger.WarnContext(ctx, "failed to emit seeding audit event", "error", err)
		}
	}
	return nil
}
