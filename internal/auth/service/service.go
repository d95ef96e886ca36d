package service

import (
	"context"
	"log/slog"
	"time"

	"estatehub/internal/audit"
	"estatehub/internal/auth/models"
	jwttoken "estatehub/internal/jwt_token"
	"estatehub/internal/platform/metrics"
	id "estatehub/pkg/domain"
)

// UserStore is the persistence contract for accounts.
// Error contract: lookups wrap sentinel.ErrNotFound, inserts and updates wrap
// sentinel.ErrAlreadyExists on a duplicate email or phone.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	PhoneTakenByOther(ctx context.Context, phone string, userID id.UserID) (bool, error)
	UpdateProfile(ctx context.Context, userID id.UserID, update models.ProfileUpdate) (*models.User, error)
	UpdatePassword(ctx context.Context, userID id.UserID, hash string) error
	TouchLastLogin(ctx context.Context, userID id.UserID, at time.Time) error
	Counts(ctx context.Context, userID id.UserID) (models.UserCounts, error)
	FindAgentProfile(ctx context.Context, userID id.UserID) (*models.AgentProfile, error)
	FindVerificationSummary(ctx context.Context, userID id.UserID) (*models.VerificationSummary, error)
}

// SessionStore is implemented by the Postgres and Redis session stores.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
	Delete(ctx context.Context, sessionID id.SessionID) error
	DeleteByUser(ctx context.Context, userID id.UserID) (int, error)
}

type TokenGenerator interface {
	GenerateAccessToken(ctx context.Context, userID id.UserID, sessionID id.SessionID, role id.Role) (*jwttoken.IssuedToken, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	users          UserStore
	sessions       SessionStore
	jwt            TokenGenerator
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	hashPassword   func(string) (string, error)
	verifyPassword func(password, hash string) error
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPasswordHasher swaps bcrypt for a cheaper implementation in tests.
func WithPasswordHasher(hash func(string) (string, error), verify func(password, hash string) error) Option {
	return func(s *Service) {
		s.hashPassword = hash
		s.verifyPassword = verify
	}
}

func New(users UserStore, sessions SessionStore, jwt TokenGenerator, opts ...Option) *Service {
	svc := &Service{
		users:          users,
		sessions:       sessions,
		jwt:            jwt,
		hashPassword:   defaultHash,
		verifyPassword: defaultVerify,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}
