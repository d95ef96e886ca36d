//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"estatehub/internal/property/models"
	"estatehub/internal/property/store"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	"estatehub/pkg/testutil/containers"
)

type GormStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.GormStore
	owner    id.UserID
}

func TestGormStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(GormStoreSuite))
}

func (s *GormStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewGorm(s.postgres.Gorm)
}

func (s *GormStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateAll(ctx))
	s.owner = s.postgres.CreateTestUser(ctx, s.T(), id.RoleLandlord)
}

func (s *GormStoreSuite) newProperty(city string, price float64) *models.Property {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Property{
		ID:          id.NewPropertyID(),
		Title:       "Two bedroom flat",
		Description: "Close to the market",
		Type:        id.PropertyApartment,
		ListingType: id.ListingForRent,
		Status:      id.PropertyAvailable,
		Price:       price,
		Currency:    id.DefaultCurrency,
		Address:     "4 Allen Avenue",
		City:        city,
		State:       "Lagos",
		ImageURLs:   []string{"https://cdn.example.com/a.jpg"},
		Amenities:   []string{"pool", "parking"},
		PostedByID:  s.owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *GormStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	p := s.newProperty("Ikeja", 1_000_000)
	s.Require().NoError(s.store.Create(ctx, p))

	got, err := s.store.FindByID(ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(p.Title, got.Title)
	s.Equal([]string{"pool", "parking"}, got.Amenities)
	s.Empty(got.VideoURLs)

	_, err = s.store.FindByID(ctx, id.NewPropertyID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *GormStoreSuite) TestListFilters() {
	ctx := context.Background()
	cheap := s.newProperty("Ikeja", 500_000)
	pricey := s.newProperty("Lekki", 5_000_000)
	pricey.Amenities = []string{"gym"}
	rented := s.newProperty("Ikeja", 700_000)
	rented.Status = id.PropertyRented
	for _, p := range []*models.Property{cheap, pricey, rented} {
		s.Require().NoError(s.store.Create(ctx, p))
	}
	q := models.ListQuery{Limit: 10, OrderBy: "price ASC"}

	s.Run("public listing shows only available", func() {
		got, total, err := s.store.List(ctx, models.Filter{}, q)
		s.Require().NoError(err)
		s.EqualValues(2, total)
		s.Equal(cheap.ID, got[0].Property.ID)
		s.Require().NotNil(got[0].PostedBy)
		s.Equal(s.owner, got[0].PostedBy.ID)
	})

	s.Run("city matches case-insensitively", func() {
		_, total, err := s.store.List(ctx, models.Filter{City: "ikej"}, q)
		s.Require().NoError(err)
		s.EqualValues(1, total)
	})

	s.Run("amenities match any", func() {
		got, total, err := s.store.List(ctx, models.Filter{Amenities: []string{"gym", "sauna"}}, q)
		s.Require().NoError(err)
		s.EqualValues(1, total)
		s.Equal(pricey.ID, got[0].Property.ID)
	})

	s.Run("price range", func() {
		minPrice, maxPrice := 400_000.0, 600_000.0
		_, total, err := s.store.List(ctx, models.Filter{MinPrice: &minPrice, MaxPrice: &maxPrice}, q)
		s.Require().NoError(err)
		s.EqualValues(1, total)
	})

	s.Run("own listings include every status", func() {
		_, total, err := s.store.List(ctx, models.Filter{PostedBy: &s.owner}, q)
		s.Require().NoError(err)
		s.EqualValues(3, total)
	})
}

func (s *GormStoreSuite) TestSimilar() {
	ctx := context.Background()
	base := s.newProperty("Ikeja", 1_000_000)
	near := s.newProperty("Ikeja", 1_200_000)
	far := s.newProperty("Ikeja", 2_000_000)
	elsewhere := s.newProperty("Lekki", 1_000_000)
	for _, p := range []*models.Property{base, near, far, elsewhere} {
		s.Require().NoError(s.store.Create(ctx, p))
	}

	got, err := s.store.Similar(ctx, base, 4)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(near.ID, got[0].Property.ID)
}

func (s *GormStoreSuite) TestUpdateAndDelete() {
	ctx := context.Background()
	p := s.newProperty("Ikeja", 1_000_000)
	s.Require().NoError(s.store.Create(ctx, p))

	price := 1_500_000.0
	at := time.Now().UTC().Add(time.Hour).Truncate(time.Microsecond)
	got, err := s.store.Update(ctx, p.ID, models.Update{Price: &price, Amenities: []string{}}, at)
	s.Require().NoError(err)
	s.Equal(price, got.Price)
	s.Empty(got.Amenities)
	s.True(got.UpdatedAt.Equal(at))

	_, err = s.store.Update(ctx, id.NewPropertyID(), models.Update{Price: &price}, at)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Delete(ctx, p.ID))
	s.ErrorIs(s.store.Delete(ctx, p.ID), sentinel.ErrNotFound)
}

func (s *GormStoreSuite) TestViews() {
	ctx := context.Background()
	propertyID := s.postgres.CreateTestProperty(ctx, s.T(), s.owner, 900_000)
	viewer := s.postgres.CreateTestUser(ctx, s.T(), id.RoleClient)
	now := time.Now().UTC()

	s.Require().NoError(s.store.RecordView(ctx, &models.View{
		PropertyID: propertyID, IPAddress: "198.51.100.7", Device: "mobile", ViewedAt: now,
	}))
	s.Require().NoError(s.store.RecordView(ctx, &models.View{
		PropertyID: propertyID, UserID: &viewer, IPAddress: "198.51.100.7", Device: "desktop", ViewedAt: now,
	}))

	since := now.Add(-30 * time.Minute)
	seen, err := s.store.RecentViewExists(ctx, propertyID, nil, "198.51.100.7", since)
	s.Require().NoError(err)
	s.True(seen)

	seen, err = s.store.RecentViewExists(ctx, propertyID, nil, "192.0.2.1", since)
	s.Require().NoError(err)
	s.False(seen)

	seen, err = s.store.RecentViewExists(ctx, propertyID, &viewer, "", since)
	s.Require().NoError(err)
	s.True(seen)

	detail, err := s.store.FindDetail(ctx, propertyID)
	s.Require().NoError(err)
	s.EqualValues(2, detail.Counts.Views)
	s.Empty(detail.Reviews)
}
