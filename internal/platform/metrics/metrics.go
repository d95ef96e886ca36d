// Package metrics holds the application's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the domain counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	UsersRegistered       *prometheus.CounterVec
	LoginAttempts         *prometheus.CounterVec
	SessionsRevoked       prometheus.Counter
	PropertiesCreated     *prometheus.CounterVec
	PropertyViews         *prometheus.CounterVec
	FavoritesAdded        prometheus.Counter
	RatingsSubmitted      prometheus.Counter
	ComplaintsFiled       prometheus.Counter
	VerificationsReviewed *prometheus.CounterVec
	MediaUploads          *prometheus.CounterVec
	AdminActions          *prometheus.CounterVec
	DashboardQueryErrors  *prometheus.CounterVec
	DashboardDuration     prometheus.Histogram
}

// New registers the instruments with reg; pass prometheus.DefaultRegisterer in main
// and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UsersRegistered: f.NewCounterVec(prometheus.CounterOpts{
			Name: "estatehub_users_registered_total",
			Help: "Users registered, labeled by role",
		}, []string{"role"}),
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "estatehub_login_attempts_total",
			Help: "Login attempts, labeled by outcome",
		}, []string{"outcome"}),
		SessionsRevoked: f.NewCounter(prometheus.CounterOpts{
			Name: "estatehub_sessions_revoked_total",
			Help: "Sessions removed by logout or password change",
		}),
		PropertiesCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "estatehub_properties_created_total",
			Help: "Property listings created, labeled by listing type",
		}, []string{"listing_type"}),
		PropertyViews: f.NewCounterVec(prometheus.CounterOpts{
			Name: "estatehub_property_views_total",
			Help: "Property views recorded, labeled by device class",
		}, []string{"device"}),
		FavoritesAdded: f.NewCounter(prometheus.CounterOpts{
			Name: "estatehub_favorites_added_total",
			Help: "Favorites added",
		}),
		RatingsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "estatehub_ratings_submitted_total",
			Help: "Ratings created or updated",
		}),
		ComplaintsFiled: f.NewCounter(prometheus.CounterOpts{
			Name: "estatehub_complaints_filed_total",
			Help: "Complaints filed",
		}),
		VerificationsReviewed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "estatehub_verifications_reviewed_total",
			Help: "Verification reviews, labeled by resulting status",
		}, []string{"status"}),
		MediaUploads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "estatehub_media_uploads_total",
			Help: "Object storage uploads, labeled by outcome",
		}, []string{"outcome"}),
		AdminActions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "estatehub_admin_actions_total",
			Help: "Mutating admin actions, labeled by action",
		}, []string{"action"}),
		DashboardQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "estatehub_dashboard_query_failures_total",
			Help: "Dashboard sub-queries replaced by their default, labeled by query and cause",
		}, []string{"query", "cause"}),
		DashboardDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "estatehub_dashboard_snapshot_duration_seconds",
			Help:    "Time to assemble one dashboard snapshot",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncUserRegistered(role string) {
	if m == nil {
		return
	}
	m.UsersRegistered.WithLabelValues(role).Inc()
}

func (m *Metrics) IncLogin(success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AddSessionsRevoked(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SessionsRevoked.Add(float64(n))
}

func (m *Metrics) IncPropertyCreated(listingType string) {
	if m == nil {
		return
	}
	m.PropertiesCreated.WithLabelValues(listingType).Inc()
}

func (m *Metrics) IncPropertyView(device string) {
	if m == nil {
		return
	}
	m.PropertyViews.WithLabelValues(device).Inc()
}

func (m *Metrics) IncFavoriteAdded() {
	if m == nil {
		return
	}
	m.FavoritesAdded.Inc()
}

func (m *Metrics) IncRatingSubmitted() {
	if m == nil {
		return
	}
	m.RatingsSubmitted.Inc()
}

func (m *Metrics) IncComplaintFiled() {
	if m == nil {
		return
	}
	m.ComplaintsFiled.Inc()
}

func (m *Metrics) IncVerificationReviewed(status string) {
	if m == nil {
		return
	}
	m.VerificationsReviewed.WithLabelValues(status).Inc()
}

func (m *Metrics) IncMediaUpload(success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.MediaUploads.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncAdminAction(action string) {
	if m == nil {
		return
	}
	m.AdminActions.WithLabelValues(action).Inc()
}

// IncDashboardQueryFailure counts a sub-query that fell back to its default.
// cause is "error" or "panic".
func (m *Metrics) IncDashboardQueryFailure(query, cause string) {
	if m == nil {
		return
	}
	m.DashboardQueryErrors.WithLabelValues(query, cause).Inc()
}

func (m *Metrics) ObserveDashboardDuration(seconds float64) {
	if m == nil {
		return
	}
	m.DashboardDuration.Observe(seconds)
}
