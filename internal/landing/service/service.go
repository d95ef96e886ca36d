package service

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"estatehub/internal/landing/models"
	"estatehub/internal/platform/tracer"
	property "estatehub/internal/property/models"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

const (
	featuredLimit    = 6
	topCitiesLimit   = 5
	recentLimit      = 5
	perKindLimit     = 5
	suggestionsLimit = 10
	minQueryLength   = 2
)

type Store interface {
	CountProperties(ctx context.Context, scope models.PropertyCount) (int64, error)
	CountUsers(ctx context.Context, role id.Role) (int64, error)
	CountViews(ctx context.Context) (int64, error)
	AverageAvailablePrice(ctx context.Context) (float64, error)
	TopCities(ctx context.Context, limit int) ([]models.CityCount, error)
	RecentProperties(ctx context.Context, limit int) ([]models.RecentProperty, error)
	LocationSuggestions(ctx context.Context, term string, limit int) ([]models.Suggestion, error)
	TitleSuggestions(ctx context.Context, term string, limit int) ([]models.Suggestion, error)
}

// Listings is the property search the landing page reuses.
type Listings interface {
	List(ctx context.Context, f property.Filter, q property.ListQuery) ([]*property.Listing, int64, error)
}

type Service struct {
	store    Store
	listings Listings
	logger   *slog.Logger
	tracer   tracer.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

func New(store Store, listings Listings, opts ...Option) *Service {
	s := &Service{store: store, listings: listings, logger: slog.Default(), tracer: tracer.NewNoop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Page loads one page of matching listings, the featured showcase and the
// platform metrics concurrently. Listing failures fail the page; metric
// failures only zero the affected figure.
func (s *Service) Page(ctx context.Context, f property.Filter, q property.ListQuery) (*models.Page, error) {
	page := &models.Page{}
	featured := true

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		listings, total, err := s.listings.List(gctx, f, q)
		if err != nil {
			return err
		}
		page.Listings, page.Total = listings, total
		return nil
	})
	g.Go(func() error {
		listings, _, err := s.listings.List(gctx, property.Filter{IsFeatured: &featured}, property.ListQuery{
			Limit:   featuredLimit,
			OrderBy: "created_at DESC",
		})
		if err != nil {
			return err
		}
		page.Featured = listings
		return nil
	})
	g.Go(func() error {
		page.Metrics = s.Metrics(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error fetching landing page data")
	}
	return page, nil
}

// Metrics never fails. A figure whose query errors is left at zero.
func (s *Service) Metrics(ctx context.Context) models.Metrics {
	ctx, span := s.tracer.Start(ctx, tracer.SpanLandingMetrics)
	var m models.Metrics
	var g errgroup.Group
	var failed atomic.Int64
	run := func(name string, fn func(context.Context) error) {
		g.Go(func() error {
			if err := fn(ctx); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "landing metric unavailable",
					"metric", name,
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
			}
			return nil
		})
	}

	run("total_properties", assign(&m.TotalProperties, func(ctx context.Context) (int64, error) {
		return s.store.CountProperties(ctx, models.PropertyCount{})
	}))
	run("available_properties", assign(&m.AvailableProperties, func(ctx context.Context) (int64, error) {
		return s.store.CountProperties(ctx, models.PropertyCount{Status: id.PropertyAvailable})
	}))
	run("featured_properties", assign(&m.FeaturedProperties, func(ctx context.Context) (int64, error) {
		return s.store.CountProperties(ctx, models.PropertyCount{FeaturedOnly: true})
	}))
	run("total_users", assign(&m.TotalUsers, func(ctx context.Context) (int64, error) {
		return s.store.CountUsers(ctx, "")
	}))
	run("total_landlords", assign(&m.TotalLandlords, func(ctx context.Context) (int64, error) {
		return s.store.CountUsers(ctx, id.RoleLandlord)
	}))
	run("total_agents", assign(&m.TotalAgents, func(ctx context.Context) (int64, error) {
		return s.store.CountUsers(ctx, id.RoleAgent)
	}))
	run("total_views", assign(&m.TotalViews, s.store.CountViews))
	run("average_price", assign(&m.AveragePrice, s.store.AverageAvailablePrice))
	run("top_cities", assign(&m.TopCities, func(ctx context.Context) ([]models.CityCount, error) {
		return s.store.TopCities(ctx, topCitiesLimit)
	}))
	run("recent_activity", assign(&m.RecentActivity, func(ctx context.Context) ([]models.RecentProperty, error) {
		return s.store.RecentProperties(ctx, recentLimit)
	}))
	_ = g.Wait()
	span.SetAttributes(tracer.Int64(tracer.AttrFailed, failed.Load()))
	span.End(nil)
	return m
}

// assign adapts a query to run, storing its result in dst on success. Each
// dst is written by exactly one goroutine.
func assign[T any](dst *T, query func(context.Context) (T, error)) func(context.Context) error {
	return func(ctx context.Context) error {
		v, err := query(ctx)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// Suggestions returns autocomplete entries for term. Terms shorter than two
// characters yield no suggestions.
func (s *Service) Suggestions(ctx context.Context, term string, kind models.SuggestionKind) ([]models.Suggestion, error) {
	if len([]rune(term)) < minQueryLength {
		return []models.Suggestion{}, nil
	}

	suggestions := []models.Suggestion{}
	if kind.Includes(models.SuggestLocation) {
		locations, err := s.store.LocationSuggestions(ctx, term, perKindLimit)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error fetching search suggestions")
		}
		suggestions = append(suggestions, locations...)
	}
	if kind.Includes(models.SuggestProperty) {
		titles, err := s.store.TitleSuggestions(ctx, term, perKindLimit)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error fetching search suggestions")
		}
		suggestions = append(suggestions, titles...)
	}
	if len(suggestions) > suggestionsLimit {
		suggestions = suggestions[:suggestionsLimit]
	}
	return suggestions, nil
}
