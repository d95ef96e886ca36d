package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"estatehub/internal/favorite/models"
	"estatehub/internal/favorite/service/mocks"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockStore  *mocks.MockStore
	service    *Service
	ctx        context.Context
	userID     id.UserID
	propertyID id.PropertyID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockStore(s.ctrl)
	s.service = New(s.mockStore)
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	s.userID = id.NewUserID()
	s.propertyID = id.NewPropertyID()
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) TestAdd() {
	s.Run("saves and returns the card", func() {
		s.mockStore.EXPECT().Summary(gomock.Any(), s.propertyID).
			Return(&models.PropertySummary{ID: s.propertyID, Title: "Loft", FavoritedBy: 2}, nil)
		s.mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, f *models.Favorite) error {
				s.Equal(s.userID, f.UserID)
				s.Equal(s.propertyID, f.PropertyID)
				s.False(f.ID.IsNil())
				return nil
			})

		saved, err := s.service.Add(s.ctx, s.userID, s.propertyID)
		s.Require().NoError(err)
		s.Equal("Loft", saved.Property.Title)
		s.EqualValues(3, saved.Property.FavoritedBy)
	})

	s.Run("missing property is not found", func() {
		s.mockStore.EXPECT().Summary(gomock.Any(), s.propertyID).
			Return(nil, fmt.Errorf("property not found: %w", sentinel.ErrNotFound))

		_, err := s.service.Add(s.ctx, s.userID, s.propertyID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("Property not found", err.Error())
	})

	s.Run("second save is a conflict", func() {
		s.mockStore.EXPECT().Summary(gomock.Any(), s.propertyID).Return(&models.PropertySummary{}, nil)
		s.mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("favorite: %w", sentinel.ErrAlreadyExists))

		_, err := s.service.Add(s.ctx, s.userID, s.propertyID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *ServiceSuite) TestRemove() {
	s.mockStore.EXPECT().Delete(gomock.Any(), s.userID, s.propertyID).
		Return(fmt.Errorf("favorite not found: %w", sentinel.ErrNotFound))

	err := s.service.Remove(s.ctx, s.userID, s.propertyID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal("Property not found in favorites", err.Error())
}

func (s *ServiceSuite) TestStatus() {
	s.Run("not favorited", func() {
		s.mockStore.EXPECT().Find(gomock.Any(), s.userID, s.propertyID).
			Return(nil, fmt.Errorf("favorite not found: %w", sentinel.ErrNotFound))

		st, err := s.service.Status(s.ctx, s.userID, s.propertyID)
		s.Require().NoError(err)
		s.False(st.IsFavorited)
		s.Nil(st.FavoriteID)
	})

	s.Run("favorited", func() {
		favoriteID := id.NewFavoriteID()
		s.mockStore.EXPECT().Find(gomock.Any(), s.userID, s.propertyID).
			Return(&models.Favorite{ID: favoriteID}, nil)

		st, err := s.service.Status(s.ctx, s.userID, s.propertyID)
		s.Require().NoError(err)
		s.True(st.IsFavorited)
		s.Equal(favoriteID, *st.FavoriteID)
	})

	s.Run("store failure is internal", func() {
		s.mockStore.EXPECT().Find(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

		_, err := s.service.Status(s.ctx, s.userID, s.propertyID)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
