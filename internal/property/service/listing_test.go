package service

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"estatehub/internal/property/models"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
)

func (s *ServiceSuite) TestGet() {
	owner := id.NewUserID()
	p := s.newProperty(owner)
	detail := &models.Detail{Listing: models.Listing{Property: p}}

	s.Run("anonymous first view is recorded by ip", func() {
		s.mockStore.EXPECT().FindDetail(gomock.Any(), p.ID).Return(detail, nil)
		s.mockStore.EXPECT().RecentViewExists(gomock.Any(), p.ID, nil, "203.0.113.9", s.now.Add(-defaultViewWindow)).
			Return(false, nil)
		s.mockStore.EXPECT().RecordView(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, v *models.View) error {
				s.Nil(v.UserID)
				s.Equal("desktop", v.Device)
				s.Equal("Firefox", v.Browser)
				s.Equal(s.now, v.ViewedAt)
				return nil
			})

		got, err := s.service.Get(s.callerCtx(id.UserID{}, ""), p.ID, true)
		s.Require().NoError(err)
		s.Equal(p.ID, got.Property.ID)
	})

	s.Run("repeat view within the window is not recorded", func() {
		viewer := id.NewUserID()
		s.mockStore.EXPECT().FindDetail(gomock.Any(), p.ID).Return(detail, nil)
		s.mockStore.EXPECT().RecentViewExists(gomock.Any(), p.ID, &viewer, gomock.Any(), gomock.Any()).Return(true, nil)
		s.mockStore.EXPECT().RecordView(gomock.Any(), gomock.Any()).Times(0)

		_, err := s.service.Get(s.callerCtx(viewer, id.RoleClient), p.ID, true)
		s.NoError(err)
	})

	s.Run("trackView=false skips tracking", func() {
		s.mockStore.EXPECT().FindDetail(gomock.Any(), p.ID).Return(detail, nil)
		s.mockStore.EXPECT().RecentViewExists(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := s.service.Get(s.callerCtx(id.UserID{}, ""), p.ID, false)
		s.NoError(err)
	})

	s.Run("view tracking failure does not fail the read", func() {
		s.mockStore.EXPECT().FindDetail(gomock.Any(), p.ID).Return(detail, nil)
		s.mockStore.EXPECT().RecentViewExists(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, assert.AnError)

		_, err := s.service.Get(s.callerCtx(id.UserID{}, ""), p.ID, true)
		s.NoError(err)
	})

	s.Run("missing property is not found", func() {
		s.mockStore.EXPECT().FindDetail(gomock.Any(), p.ID).
			Return(nil, fmt.Errorf("property not found: %w", sentinel.ErrNotFound))

		_, err := s.service.Get(s.callerCtx(id.UserID{}, ""), p.ID, true)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("Property not found", err.Error())
	})
}

func (s *ServiceSuite) TestSimilar() {
	p := s.newProperty(id.NewUserID())

	s.Run("defaults the limit to four", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.mockStore.EXPECT().Similar(gomock.Any(), p, DefaultSimilarLimit).Return([]*models.Listing{}, nil)

		_, err := s.service.Similar(s.callerCtx(id.UserID{}, ""), p.ID, 0)
		s.NoError(err)
	})

	s.Run("caps large limits", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.mockStore.EXPECT().Similar(gomock.Any(), p, maxSimilarLimit).Return(nil, nil)

		_, err := s.service.Similar(s.callerCtx(id.UserID{}, ""), p.ID, 500)
		s.NoError(err)
	})
}

func (s *ServiceSuite) TestList() {
	s.mockStore.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, int64(0), assert.AnError)

	_, _, err := s.service.List(s.callerCtx(id.UserID{}, ""), models.Filter{}, models.ListQuery{Limit: 10})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
