package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,Listings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"estatehub/internal/landing/models"
	"estatehub/internal/landing/service/mocks"
	"estatehub/internal/platform/tracer"
	property "estatehub/internal/property/models"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
)

func newService(t *testing.T) (*Service, *mocks.MockStore, *mocks.MockListings) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	listings := mocks.NewMockListings(ctrl)
	return New(store, listings), store, listings
}

func expectMetrics(store *mocks.MockStore, failing error) {
	store.EXPECT().CountProperties(gomock.Any(), models.PropertyCount{}).Return(int64(40), nil)
	store.EXPECT().CountProperties(gomock.Any(), models.PropertyCount{Status: id.PropertyAvailable}).Return(int64(31), nil)
	store.EXPECT().CountProperties(gomock.Any(), models.PropertyCount{FeaturedOnly: true}).Return(int64(4), nil)
	store.EXPECT().CountUsers(gomock.Any(), id.Role("")).Return(int64(120), nil)
	store.EXPECT().CountUsers(gomock.Any(), id.RoleLandlord).Return(int64(0), failing)
	store.EXPECT().CountUsers(gomock.Any(), id.RoleAgent).Return(int64(9), nil)
	store.EXPECT().CountViews(gomock.Any()).Return(int64(800), nil)
	store.EXPECT().AverageAvailablePrice(gomock.Any()).Return(1_250_000.0, nil)
	store.EXPECT().TopCities(gomock.Any(), 5).Return([]models.CityCount{{City: "Lagos", Count: 22}}, nil)
	store.EXPECT().RecentProperties(gomock.Any(), 5).Return(nil, failing)
}

func TestMetricsFallBackToZero(t *testing.T) {
	svc, store, _ := newService(t)
	expectMetrics(store, errors.New("relation does not exist"))

	m := svc.Metrics(context.Background())
	assert.EqualValues(t, 40, m.TotalProperties)
	assert.EqualValues(t, 120, m.TotalUsers)
	assert.Zero(t, m.TotalLandlords)
	assert.EqualValues(t, 9, m.TotalAgents)
	assert.Equal(t, 1_250_000.0, m.AveragePrice)
	assert.Len(t, m.TopCities, 1)
	assert.Empty(t, m.RecentActivity)
}

func TestMetricsSpanCountsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	rec := tracer.NewRecorder()
	svc := New(store, mocks.NewMockListings(ctrl), WithTracer(rec))
	expectMetrics(store, errors.New("timeout"))

	svc.Metrics(context.Background())

	spans := rec.Named(tracer.SpanLandingMetrics)
	require.Len(t, spans, 1)
	assert.EqualValues(t, 2, spans[0].Attributes[tracer.AttrFailed])
}

func TestPage(t *testing.T) {
	filter := property.Filter{City: "Lagos"}
	q := property.ListQuery{Limit: 12, OrderBy: "created_at DESC"}

	t.Run("joins listings, featured and metrics", func(t *testing.T) {
		svc, store, listings := newService(t)
		expectMetrics(store, nil)
		listings.EXPECT().List(gomock.Any(), filter, q).Return([]*property.Listing{{}, {}}, int64(14), nil)
		listings.EXPECT().List(gomock.Any(), gomock.Any(), property.ListQuery{Limit: 6, OrderBy: "created_at DESC"}).DoAndReturn(
			func(_ context.Context, f property.Filter, _ property.ListQuery) ([]*property.Listing, int64, error) {
				require.NotNil(t, f.IsFeatured)
				assert.True(t, *f.IsFeatured)
				return []*property.Listing{{}}, int64(1), nil
			})

		page, err := svc.Page(context.Background(), filter, q)
		require.NoError(t, err)
		assert.Len(t, page.Listings, 2)
		assert.EqualValues(t, 14, page.Total)
		assert.Len(t, page.Featured, 1)
		assert.EqualValues(t, 31, page.Metrics.AvailableProperties)
	})

	t.Run("listing failure fails the page", func(t *testing.T) {
		svc, store, listings := newService(t)
		store.EXPECT().CountProperties(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
		store.EXPECT().CountUsers(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
		store.EXPECT().CountViews(gomock.Any()).Return(int64(0), nil).AnyTimes()
		store.EXPECT().AverageAvailablePrice(gomock.Any()).Return(0.0, nil).AnyTimes()
		store.EXPECT().TopCities(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		store.EXPECT().RecentProperties(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		listings.EXPECT().List(gomock.Any(), filter, q).Return(nil, int64(0), errors.New("timeout"))
		listings.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, int64(0), nil).AnyTimes()

		_, err := svc.Page(context.Background(), filter, q)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func TestSuggestions(t *testing.T) {
	location := models.Suggestion{Type: models.SuggestLocation, Value: "Ikeja, Lagos", Label: "Ikeja, Lagos"}
	title := models.Suggestion{Type: models.SuggestProperty, Value: id.NewPropertyID().String(), Label: "Ikeja duplex", Subtitle: "Ikeja"}

	t.Run("short terms return nothing", func(t *testing.T) {
		svc, _, _ := newService(t)
		got, err := svc.Suggestions(context.Background(), "I", models.SuggestAll)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("all merges locations before titles", func(t *testing.T) {
		svc, store, _ := newService(t)
		store.EXPECT().LocationSuggestions(gomock.Any(), "Ike", 5).Return([]models.Suggestion{location}, nil)
		store.EXPECT().TitleSuggestions(gomock.Any(), "Ike", 5).Return([]models.Suggestion{title}, nil)

		got, err := svc.Suggestions(context.Background(), "Ike", models.SuggestAll)
		require.NoError(t, err)
		assert.Equal(t, []models.Suggestion{location, title}, got)
	})

	t.Run("property only skips locations", func(t *testing.T) {
		svc, store, _ := newService(t)
		store.EXPECT().TitleSuggestions(gomock.Any(), "Ike", 5).Return([]models.Suggestion{title}, nil)

		got, err := svc.Suggestions(context.Background(), "Ike", models.SuggestProperty)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
