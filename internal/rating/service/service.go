package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"estatehub/internal/platform/metrics"
	"estatehub/internal/rating/models"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

// Store is the persistence contract for ratings. PropertyOwner, FindReview
// and Delete wrap sentinel.ErrNotFound.
type Store interface {
	PropertyOwner(ctx context.Context, propertyID id.PropertyID) (id.UserID, error)
	Upsert(ctx context.Context, r *models.Rating) (bool, error)
	FindReview(ctx context.Context, ratingID id.RatingID) (*models.Review, error)
	Delete(ctx context.Context, ratingID id.RatingID) error
	ListByProperty(ctx context.Context, propertyID id.PropertyID, q models.ListQuery) ([]*models.Review, int64, error)
	Summary(ctx context.Context, propertyID id.PropertyID) (*models.Summary, error)
	ListByUser(ctx context.Context, userID id.UserID, q models.ListQuery) ([]*models.Rated, int64, error)
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

// Submit records the caller's rating of a property, replacing an earlier one.
// It reports whether the rating is new.
func (s *Service) Submit(ctx context.Context, req *models.SubmitRatingRequest) (*models.Review, bool, error) {
	userID := requestcontext.UserID(ctx)

	owner, err := s.store.PropertyOwner(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, false, dErrors.Wrap(err, dErrors.CodeNotFound, "Property not found")
		}
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "Server error adding rating")
	}
	if owner == userID {
		return nil, false, dErrors.New(dErrors.CodeForbidden, "You cannot rate your own property")
	}

	now := requestcontext.Now(ctx)
	r := &models.Rating{
		ID:         id.NewRatingID(),
		UserID:     userID,
		PropertyID: req.PropertyID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	created, err := s.store.Upsert(ctx, r)
	if err != nil {
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "Server error adding rating")
	}
	s.metrics.IncRatingSubmitted()

	review, err := s.store.FindReview(ctx, r.ID)
	if err != nil {
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "Server error adding rating")
	}
	s.logger.InfoContext(ctx, "rating submitted",
		"rating_id", r.ID.String(),
		"property_id", req.PropertyID.String(),
		"created", created,
		"request_id", requestcontext.RequestID(ctx),
	)
	return review, created, nil
}

// ForProperty loads a page of reviews and the property-wide summary
// concurrently.
func (s *Service) ForProperty(ctx context.Context, propertyID id.PropertyID, q models.ListQuery) (*models.PropertyRatings, error) {
	out := &models.PropertyRatings{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reviews, total, err := s.store.ListByProperty(gctx, propertyID, q)
		if err != nil {
			return err
		}
		out.Reviews, out.Total = reviews, total
		return nil
	})
	g.Go(func() error {
		summary, err := s.store.Summary(gctx, propertyID)
		if err != nil {
			return err
		}
		out.Summary = *summary
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error fetching ratings")
	}
	return out, nil
}

// Delete removes a rating. Only its author and admins may delete it.
func (s *Service) Delete(ctx context.Context, ratingID id.RatingID) error {
	userID, role := requestcontext.UserID(ctx), requestcontext.Role(ctx)

	review, err := s.store.FindReview(ctx, ratingID)
	if err != nil {
		return translateLookup(err, "Server error deleting rating")
	}
	if review.UserID != userID && !role.IsAdmin() {
		return dErrors.New(dErrors.CodeForbidden, "You are not authorized to delete this rating")
	}
	if err := s.store.Delete(ctx, ratingID); err != nil {
		return translateLookup(err, "Server error deleting rating")
	}
	return nil
}

func (s *Service) ForUser(ctx context.Context, userID id.UserID, q models.ListQuery) ([]*models.Rated, int64, error) {
	rated, total, err := s.store.ListByUser(ctx, userID, q)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "Server error fetching user ratings")
	}
	return rated, total, nil
}

func translateLookup(err error, internalMsg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "Rating not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, internalMsg)
}
