// Package dashboard assembles the admin dashboard snapshot.
//
// Sixteen independent read queries run concurrently over a fixed lookback
// window. A failing query never fails the snapshot: it is replaced by its
// zero value, logged, counted and marked on its trace span. Only a failure
// while reshaping the results fails the whole operation.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"estatehub/internal/platform/metrics"
	"estatehub/internal/platform/tracer"
	id "estatehub/pkg/domain"
	"estatehub/pkg/requestcontext"
)

const (
	DefaultLookback = 30 * 24 * time.Hour
	recentUsersSize = 5
)

// Query names, used in logs, metric labels and span attributes.
const (
	QueryUsersByRole          = "users_by_role"
	QueryUsersByVerification  = "users_by_verification_status"
	QueryPropertiesByStatus   = "properties_by_status"
	QueryPropertiesByType     = "properties_by_type"
	QueryPropertiesByListing  = "properties_by_listing_type"
	QueryPendingVerifications = "pending_verifications"
	QueryPendingComplaints    = "pending_complaints"
	QueryEngagementTotals     = "engagement_totals"
	QueryNewUsers             = "new_users"
	QueryRecentUsers          = "recent_users"
	QueryAveragePrice         = "average_price"
	QueryRegistrations        = "registration_times"
	QueryCreations            = "property_creation_times"
	QueryUserEngagement       = "user_engagement"
	QueryProperties           = "properties"
	QueryUsers                = "users"
)

type Aggregator struct {
	source       Source
	clock        func() time.Time
	lookback     time.Duration
	queryTimeout time.Duration
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       tracer.Tracer
}

type Option func(*Aggregator)

func WithClock(clock func() time.Time) Option {
	return func(a *Aggregator) { a.clock = clock }
}

// WithLookback overrides the window used for new users and trends.
// Non-positive values are ignored.
func WithLookback(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.lookback = d
		}
	}
}

// WithQueryTimeout bounds each sub-query. Zero leaves them unbounded.
func WithQueryTimeout(d time.Duration) Option {
	return func(a *Aggregator) { a.queryTimeout = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) { a.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Aggregator) { a.metrics = m }
}

func WithTracer(t tracer.Tracer) Option {
	return func(a *Aggregator) { a.tracer = t }
}

func New(source Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		source:   source,
		clock:    time.Now,
		lookback: DefaultLookback,
		logger:   slog.Default(),
		tracer:   tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Snapshot runs every dashboard query and reshapes the results. It returns
// an error only when reshaping fails. A done ctx makes the pending queries
// fall back, so the caller still gets a complete zero-valued snapshot.
func (a *Aggregator) Snapshot(ctx context.Context) (snap *Snapshot, err error) {
	start := a.clock()
	since := start.Add(-a.lookback)

	ctx, span := a.tracer.Start(ctx, tracer.SpanDashboardSnapshot,
		tracer.Float64(tracer.AttrLookbackH, a.lookback.Hours()),
	)
	defer func() { span.End(err) }()

	r, failed := a.collect(ctx, since)
	span.SetAttributes(tracer.Int64(tracer.AttrFailed, failed))

	defer func() {
		if rec := recover(); rec != nil {
			snap, err = nil, fmt.Errorf("reshape dashboard snapshot: %v", rec)
		}
	}()
	snap = assemble(r)

	a.metrics.ObserveDashboardDuration(a.clock().Sub(start).Seconds())
	return snap, nil
}

// collect fans the sixteen queries out and waits for all of them. It
// reports how many fell back to their default.
func (a *Aggregator) collect(ctx context.Context, since time.Time) (*raw, int64) {
	r := &raw{}
	q := &fanout{aggregator: a}

	fetch(ctx, q, QueryUsersByRole, &r.byRole, a.source.UsersByRole)
	fetch(ctx, q, QueryUsersByVerification, &r.byVerification, a.source.UsersByVerificationStatus)
	fetch(ctx, q, QueryPropertiesByStatus, &r.byStatus, a.source.PropertiesByStatus)
	fetch(ctx, q, QueryPropertiesByType, &r.byType, a.source.PropertiesByType)
	fetch(ctx, q, QueryPropertiesByListing, &r.byListingType, a.source.PropertiesByListingType)
	fetch(ctx, q, QueryPendingVerifications, &r.pendingVerif, a.source.PendingVerifications)
	fetch(ctx, q, QueryPendingComplaints, &r.pendingCompl, a.source.PendingComplaints)
	fetch(ctx, q, QueryEngagementTotals, &r.totals, a.source.EngagementTotals)
	fetch(ctx, q, QueryNewUsers, &r.newUsers, func(ctx context.Context) (int64, error) {
		return a.source.UsersCreatedSince(ctx, since)
	})
	fetch(ctx, q, QueryRecentUsers, &r.recentUsers, func(ctx context.Context) ([]RecentUser, error) {
		return a.source.RecentUsers(ctx, recentUsersSize)
	})
	fetch(ctx, q, QueryAveragePrice, &r.averagePrice, a.source.AveragePrice)
	fetch(ctx, q, QueryRegistrations, &r.registrations, func(ctx context.Context) ([]time.Time, error) {
		return a.source.RegistrationTimes(ctx, since)
	})
	fetch(ctx, q, QueryCreations, &r.creations, func(ctx context.Context) ([]time.Time, error) {
		return a.source.PropertyCreationTimes(ctx, since)
	})
	fetch(ctx, q, QueryUserEngagement, &r.activity, func(ctx context.Context) ([]UserActivity, error) {
		return a.source.UserEngagement(ctx, id.SelfServiceRoles)
	})
	fetch(ctx, q, QueryProperties, &r.properties, a.source.Properties)
	fetch(ctx, q, QueryUsers, &r.users, a.source.Users)

	_ = q.group.Wait() // isolated queries never return an error
	return r, q.failed.Load()
}

type fanout struct {
	aggregator *Aggregator
	group      errgroup.Group
	failed     atomic.Int64
}

// fetch schedules one isolated query and stores its result in dst. Each dst
// is written by exactly one goroutine.
func fetch[T any](ctx context.Context, q *fanout, name string, dst *T, query func(context.Context) (T, error)) {
	q.group.Go(func() error {
		var zero T
		v, ok := isolate(ctx, q.aggregator, name, zero, query)
		if !ok {
			q.failed.Add(1)
		}
		*dst = v
		return nil
	})
}

// isolate runs query in its own span and converts an error or a panic into
// fallback. ok reports whether query succeeded.
func isolate[T any](ctx context.Context, a *Aggregator, name string, fallback T,
	query func(context.Context) (T, error),
) (result T, ok bool) {
	ctx, span := a.tracer.Start(ctx, tracer.SpanDashboardQuery, tracer.String(tracer.AttrQuery, name))
	if a.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.queryTimeout)
		defer cancel()
	}

	defer func() {
		if rec := recover(); rec != nil {
			a.fallback(ctx, span, name, "panic", fmt.Errorf("query panicked: %v", rec))
			result, ok = fallback, false
		}
	}()

	v, err := query(ctx)
	if err != nil {
		a.fallback(ctx, span, name, "error", err)
		return fallback, false
	}
	span.End(nil)
	return v, true
}

func (a *Aggregator) fallback(ctx context.Context, span tracer.Span, name, cause string, err error) {
	a.logger.WarnContext(ctx, "dashboard query failed, using default",
		"query", name,
		"cause", cause,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	a.metrics.IncDashboardQueryFailure(name, cause)
	span.SetAttributes(
		tracer.Bool(tracer.AttrFallback, true),
		tracer.Bool(tracer.AttrPanicked, cause == "panic"),
	)
	span.End(err)
}
