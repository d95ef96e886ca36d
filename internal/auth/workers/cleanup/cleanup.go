package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SessionStore exposes cleanup for expired sessions.
type SessionStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// Result summarizes the deletions performed by a cleanup run.
type Result struct {
	DeletedSessions int
}

// Service periodically removes expired sessions. Expired sessions are already
// rejected by the auth guard; sweeping keeps the table small.
type Service struct {
	sessions SessionStore
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Service)

// WithInterval overrides the cleanup interval when greater than zero.
func WithInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(sessions SessionStore, opts ...Option) (*Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	svc := &Service{
		sessions: sessions,
		interval: 15 * time.Minute,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// Start runs cleanup periodically until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			res, err := s.RunOnce(ctx)
			if err != nil {
				s.logger.ErrorContext(ctx, "session cleanup failed", "error", err)
				continue
			}
			if res.DeletedSessions > 0 {
				s.logger.InfoContext(ctx, "expired sessions removed", "count", res.DeletedSessions)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce performs a single sweep.
func (s *Service) RunOnce(ctx context.Context) (Result, error) {
	deleted, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return Result{}, fmt.Errorf("delete expired sessions: %w", err)
	}
	return Result{DeletedSessions: deleted}, nil
}
