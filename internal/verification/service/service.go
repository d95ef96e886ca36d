package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"estatehub/internal/platform/metrics"
	"estatehub/internal/sentinel"
	"estatehub/internal/verification/models"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

// Store is the persistence contract for verification requests. Writes made
// with the context handed to a RunInTx callback commit or roll back together.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	FindByUser(ctx context.Context, userID id.UserID) (*models.Verification, error)
	Upsert(ctx context.Context, v *models.Verification) error
	ApplyDecision(ctx context.Context, verificationID id.VerificationID, d models.Decision) (id.UserID, error)
	SetUserStatus(ctx context.Context, userID id.UserID, status id.VerificationStatus, at time.Time) error
	FindDetail(ctx context.Context, verificationID id.VerificationID) (*models.Detail, error)
	List(ctx context.Context, filter models.Filter, q models.ListQuery) ([]*models.Detail, int64, error)
}

type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit files or replaces the caller's verification document. The request
// and the user's denormalized status both become PENDING.
func (s *Service) Submit(ctx context.Context, req *models.SubmitVerificationRequest) (*models.Verification, error) {
	userID := requestcontext.UserID(ctx)

	current, err := s.store.FindByUser(ctx, userID)
	switch {
	case err == nil && current.Status == id.VerificationVerified:
		return nil, dErrors.New(dErrors.CodeConflict, "Your account is already verified")
	case err != nil && !errors.Is(err, sentinel.ErrNotFound):
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error submitting verification")
	}

	now := requestcontext.Now(ctx)
	v := &models.Verification{
		ID:           id.NewVerificationID(),
		UserID:       userID,
		DocumentType: req.DocumentType,
		DocumentURL:  req.DocumentURL,
		Status:       id.VerificationPending,
		SubmittedAt:  now,
	}
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Upsert(ctx, v); err != nil {
			return err
		}
		return s.store.SetUserStatus(ctx, userID, id.VerificationPending, now)
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error submitting verification")
	}

	s.logger.InfoContext(ctx, "verification submitted",
		"verification_id", v.ID.String(),
		"user_id", userID.String(),
		"resubmitted", current != nil,
		"request_id", requestcontext.RequestID(ctx),
	)
	return v, nil
}

func (s *Service) Mine(ctx context.Context, userID id.UserID) (*models.Verification, error) {
	v, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "No verification request found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error fetching verification")
	}
	return v, nil
}

func (s *Service) List(ctx context.Context, filter models.Filter, q models.ListQuery) ([]*models.Detail, int64, error) {
	details, total, err := s.store.List(ctx, filter, q)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "Server error fetching verifications")
	}
	return details, total, nil
}

// Review applies the calling admin's verdict. The verification row and the
// user's status are written in one transaction.
func (s *Service) Review(ctx context.Context, verificationID id.VerificationID, req *models.ReviewRequest) (*models.Detail, error) {
	d := models.Decision{
		Status:     req.Status,
		Reason:     req.Reason,
		ReviewedBy: requestcontext.UserID(ctx),
		At:         requestcontext.Now(ctx),
	}
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		userID, err := s.store.ApplyDecision(ctx, verificationID, d)
		if err != nil {
			return err
		}
		return s.store.SetUserStatus(ctx, userID, d.Status, d.At)
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "Verification request not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error reviewing verification")
	}
	s.metrics.IncVerificationReviewed(string(d.Status))

	detail, err := s.store.FindDetail(ctx, verificationID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error reviewing verification")
	}
	return detail, nil
}
