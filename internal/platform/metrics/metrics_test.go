package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncUserRegistered("CLIENT")
	m.IncUserRegistered("CLIENT")
	m.IncLogin(true)
	m.IncLogin(false)
	m.AddSessionsRevoked(3)
	m.AddSessionsRevoked(0)
	m.IncPropertyView("mobile")
	m.IncVerificationReviewed("VERIFIED")
	m.IncMediaUpload(false)
	m.IncDashboardQueryFailure("pending_complaints", "error")
	m.IncDashboardQueryFailure("pending_complaints", "panic")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.UsersRegistered.WithLabelValues("CLIENT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("failure")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SessionsRevoked))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PropertyViews.WithLabelValues("mobile")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VerificationsReviewed.WithLabelValues("VERIFIED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MediaUploads.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DashboardQueryErrors.WithLabelValues("pending_complaints", "panic")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncUserRegistered("AGENT")
		m.IncLogin(true)
		m.IncPropertyCreated("FOR_RENT")
		m.IncFavoriteAdded()
		m.IncRatingSubmitted()
		m.IncComplaintFiled()
		m.IncAdminAction("user_deleted")
		m.IncDashboardQueryFailure("users", "error")
		m.ObserveDashboardDuration(0.2)
	})
}
