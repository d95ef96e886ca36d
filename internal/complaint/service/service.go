package service

import (
	"context"
	"errors"
	"log/slog"

	"estatehub/internal/complaint/models"
	"estatehub/internal/platform/metrics"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

// Store is the persistence contract for complaints. FindDetail and Resolve
// wrap sentinel.ErrNotFound.
type Store interface {
	PropertyExists(ctx context.Context, propertyID id.PropertyID) (bool, error)
	Create(ctx context.Context, c *models.Complaint) error
	FindDetail(ctx context.Context, complaintID id.ComplaintID) (*models.Detail, error)
	List(ctx context.Context, filter models.Filter, q models.ListQuery) ([]*models.Detail, int64, error)
	Resolve(ctx context.Context, complaintID id.ComplaintID, res models.Resolution) error
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

// File records a new PENDING complaint from the caller.
func (s *Service) File(ctx context.Context, req *models.FileComplaintRequest) (*models.Detail, error) {
	exists, err := s.store.PropertyExists(ctx, req.PropertyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error filing complaint")
	}
	if !exists {
		return nil, dErrors.New(dErrors.CodeNotFound, "Property not found")
	}

	now := requestcontext.Now(ctx)
	c := &models.Complaint{
		ID:          id.NewComplaintID(),
		ClientID:    requestcontext.UserID(ctx),
		PropertyID:  req.PropertyID,
		Subject:     req.Subject,
		Description: req.Description,
		Status:      id.ComplaintPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error filing complaint")
	}
	s.metrics.IncComplaintFiled()
	s.logger.InfoContext(ctx, "complaint filed",
		"complaint_id", c.ID.String(),
		"property_id", c.PropertyID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)

	detail, err := s.store.FindDetail(ctx, c.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error filing complaint")
	}
	return detail, nil
}

func (s *Service) List(ctx context.Context, filter models.Filter, q models.ListQuery) ([]*models.Detail, int64, error) {
	details, total, err := s.store.List(ctx, filter, q)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "Server error fetching complaints")
	}
	return details, total, nil
}

// Update moves a complaint to a new status on behalf of the calling admin.
func (s *Service) Update(ctx context.Context, complaintID id.ComplaintID, req *models.UpdateComplaintRequest) (*models.Detail, error) {
	res := models.Resolution{
		Status:          req.Status,
		ResolutionNotes: req.ResolutionNotes,
		ResolvedBy:      requestcontext.UserID(ctx),
		At:              requestcontext.Now(ctx),
	}
	if err := s.store.Resolve(ctx, complaintID, res); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "Complaint not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error updating complaint")
	}
	detail, err := s.store.FindDetail(ctx, complaintID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error updating complaint")
	}
	return detail, nil
}
