package service

import (
	"context"
	"errors"
	"log/slog"

	"estatehub/internal/favorite/models"
	"estatehub/internal/platform/metrics"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

// Store is the persistence contract for favorites.
// Summary, Find and Delete wrap sentinel.ErrNotFound; Create wraps
// sentinel.ErrAlreadyExists when the pair is already saved.
type Store interface {
	Summary(ctx context.Context, propertyID id.PropertyID) (*models.PropertySummary, error)
	Create(ctx context.Context, f *models.Favorite) error
	Find(ctx context.Context, userID id.UserID, propertyID id.PropertyID) (*models.Favorite, error)
	Delete(ctx context.Context, userID id.UserID, propertyID id.PropertyID) error
	ListByUser(ctx context.Context, userID id.UserID, q models.ListQuery) ([]*models.Saved, int64, error)
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

// Add saves a property for the user.
func (s *Service) Add(ctx context.Context, userID id.UserID, propertyID id.PropertyID) (*models.Saved, error) {
	summary, err := s.store.Summary(ctx, propertyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "Property not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error adding to favorites")
	}

	f := &models.Favorite{
		ID:         id.NewFavoriteID(),
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, f); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "Property is already in your favorites")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error adding to favorites")
	}

	s.metrics.IncFavoriteAdded()
	s.logger.InfoContext(ctx, "favorite added",
		"user_id", userID.String(),
		"property_id", propertyID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	summary.FavoritedBy++
	return &models.Saved{Favorite: *f, Property: *summary}, nil
}

func (s *Service) Remove(ctx context.Context, userID id.UserID, propertyID id.PropertyID) error {
	if err := s.store.Delete(ctx, userID, propertyID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "Property not found in favorites")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Server error removing from favorites")
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID id.UserID, q models.ListQuery) ([]*models.Saved, int64, error) {
	saved, total, err := s.store.ListByUser(ctx, userID, q)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "Server error fetching favorites")
	}
	return saved, total, nil
}

// Status never fails on a missing favorite; it reports IsFavorited false.
func (s *Service) Status(ctx context.Context, userID id.UserID, propertyID id.PropertyID) (*models.Status, error) {
	f, err := s.store.Find(ctx, userID, propertyID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return &models.Status{}, nil
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error checking favorite status")
	}
	return &models.Status{IsFavorited: true, FavoriteID: &f.ID}, nil
}
