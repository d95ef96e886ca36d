package service

import (
	"context"
	"log/slog"
	"time"

	"estatehub/internal/audit"
	"estatehub/internal/platform/metrics"
	"estatehub/internal/platform/objectstore"
	"estatehub/internal/property/models"
	id "estatehub/pkg/domain"
	"estatehub/pkg/platform/sync"
	"estatehub/pkg/requestcontext"
)

const (
	defaultViewWindow   = 30 * time.Minute
	DefaultSimilarLimit = 4
	maxSimilarLimit     = 20
)

// Store is the persistence contract for listings. Lookups wrap
// sentinel.ErrNotFound when the listing does not exist.
type Store interface {
	Create(ctx context.Context, p *models.Property) error
	FindByID(ctx context.Context, propertyID id.PropertyID) (*models.Property, error)
	FindDetail(ctx context.Context, propertyID id.PropertyID) (*models.Detail, error)
	List(ctx context.Context, f models.Filter, q models.ListQuery) ([]*models.Listing, int64, error)
	Similar(ctx context.Context, p *models.Property, limit int) ([]*models.Listing, error)
	Update(ctx context.Context, propertyID id.PropertyID, update models.Update, at time.Time) (*models.Property, error)
	Delete(ctx context.Context, propertyID id.PropertyID) error
	FindContact(ctx context.Context, userID id.UserID) (*models.Contact, error)
	RecentViewExists(ctx context.Context, propertyID id.PropertyID, userID *id.UserID, ip string, since time.Time) (bool, error)
	RecordView(ctx context.Context, v *models.View) error
}

// MediaUploader stores a data-URI payload and returns its public URL.
type MediaUploader interface {
	Upload(ctx context.Context, payload string) (*objectstore.Object, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	store          Store
	media          MediaUploader
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	viewLocks      *sync.ShardedMutex
	viewWindow     time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithViewWindow sets how long a repeat view by the same viewer is ignored.
func WithViewWindow(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.viewWindow = d
		}
	}
}

func New(store Store, media MediaUploader, opts ...Option) *Service {
	s := &Service{
		store:      store,
		media:      media,
		logger:     slog.Default(),
		viewLocks:  sync.NewShardedMutex(),
		viewWindow: defaultViewWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	s.logger.InfoContext(ctx, string(event.Action),
		"log_type", "audit",
		"actor_id", event.ActorID,
		"target_id", event.TargetID,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"error", err,
			"action", string(event.Action),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}
