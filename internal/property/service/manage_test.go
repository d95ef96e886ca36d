package service

import (
	"fmt"
	"time"

	"go.uber.org/mock/gomock"

	"estatehub/internal/audit"
	"estatehub/internal/platform/objectstore"
	"estatehub/internal/property/models"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
)

func (s *ServiceSuite) createRequest() *models.CreatePropertyRequest {
	return &models.CreatePropertyRequest{
		Title:       "Shop on the high street",
		Description: "Ground floor shop",
		Type:        id.PropertyShop,
		ListingType: id.ListingForRent,
		Price:       500_000,
		Address:     "12 Broad St",
		City:        "Lagos",
		State:       "Lagos",
		IsFeatured:  true,
		ImageURLs:   []string{"https://cdn.example.com/front.jpg", "data:image/png;base64,AAAA"},
	}
}

func (s *ServiceSuite) TestCreate() {
	landlord := id.NewUserID()

	s.Run("uploads payloads and keeps urls in order", func() {
		s.mockMedia.EXPECT().Upload(gomock.Any(), "data:image/png;base64,AAAA").
			Return(&objectstore.Object{URL: "https://cdn.example.com/properties/1.png"}, nil)
		s.mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, p *models.Property) error {
				s.Equal([]string{"https://cdn.example.com/front.jpg", "https://cdn.example.com/properties/1.png"}, p.ImageURLs)
				s.Equal(landlord, p.PostedByID)
				s.Equal(id.PropertyAvailable, p.Status)
				s.Equal("NGN", p.Currency)
				s.False(p.IsFeatured, "featured is admin-only")
				s.Equal(s.now, p.CreatedAt)
				return nil
			})

		_, err := s.service.Create(s.callerCtx(landlord, id.RoleLandlord), s.createRequest())
		s.NoError(err)
	})

	s.Run("admins may feature a listing", func() {
		req := s.createRequest()
		req.ImageURLs = req.ImageURLs[:1]
		s.mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, p *models.Property) error {
				s.True(p.IsFeatured)
				return nil
			})

		_, err := s.service.Create(s.callerCtx(id.NewUserID(), id.RoleAdmin), req)
		s.NoError(err)
	})

	s.Run("clients may not post", func() {
		_, err := s.service.Create(s.callerCtx(id.NewUserID(), id.RoleClient), s.createRequest())
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("rejected upload is a bad request", func() {
		s.mockMedia.EXPECT().Upload(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("%w: status 400", objectstore.ErrRejected))

		_, err := s.service.Create(s.callerCtx(landlord, id.RoleLandlord), s.createRequest())
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("storage outage is unavailable", func() {
		s.mockMedia.EXPECT().Upload(gomock.Any(), gomock.Any()).Return(nil, objectstore.ErrUnavailable)

		_, err := s.service.Create(s.callerCtx(landlord, id.RoleLandlord), s.createRequest())
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	s.Run("managing agent must be an agent", func() {
		req := s.createRequest()
		agent := id.NewUserID()
		req.ManagedByAgentID = &agent
		s.mockStore.EXPECT().FindContact(gomock.Any(), agent).Return(&models.Contact{ID: agent, Role: id.RoleClient}, nil)

		_, err := s.service.Create(s.callerCtx(landlord, id.RoleLandlord), req)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *ServiceSuite) TestUpdate() {
	owner, agent := id.NewUserID(), id.NewUserID()
	p := s.newProperty(owner)
	p.ManagedByAgentID = &agent
	price := 900_000.0
	featured := true

	s.Run("managing agent may edit but not feature", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.mockStore.EXPECT().Update(gomock.Any(), p.ID, models.Update{Price: &price}, s.now).Return(p, nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, e audit.Event) error {
				s.Equal(audit.ActionPropertyUpdated, e.Action)
				return nil
			})

		_, err := s.service.Update(s.callerCtx(agent, id.RoleAgent), p.ID, models.Update{Price: &price, IsFeatured: &featured})
		s.NoError(err)
	})

	s.Run("featured-only change by a non-admin is a no-op", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.mockStore.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		got, err := s.service.Update(s.callerCtx(owner, id.RoleLandlord), p.ID, models.Update{IsFeatured: &featured})
		s.Require().NoError(err)
		s.Same(p, got)
	})

	s.Run("strangers are forbidden", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)

		_, err := s.service.Update(s.callerCtx(id.NewUserID(), id.RoleLandlord), p.ID, models.Update{Price: &price})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Equal("You are not authorized to update this property", err.Error())
	})

	s.Run("super admin may feature", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.mockStore.EXPECT().Update(gomock.Any(), p.ID, models.Update{IsFeatured: &featured}, gomock.Any()).Return(p, nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.service.Update(s.callerCtx(id.NewUserID(), id.RoleSuperAdmin), p.ID, models.Update{IsFeatured: &featured})
		s.NoError(err)
	})
}

func (s *ServiceSuite) TestDelete() {
	owner, agent := id.NewUserID(), id.NewUserID()
	p := s.newProperty(owner)
	p.ManagedByAgentID = &agent

	s.Run("poster deletes", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.mockStore.EXPECT().Delete(gomock.Any(), p.ID).Return(nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		s.NoError(s.service.Delete(s.callerCtx(owner, id.RoleLandlord), p.ID))
	})

	s.Run("managing agent may not delete", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)

		err := s.service.Delete(s.callerCtx(agent, id.RoleAgent), p.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("missing property is not found", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), p.ID).
			Return(nil, fmt.Errorf("property not found: %w", sentinel.ErrNotFound))

		err := s.service.Delete(s.callerCtx(owner, id.RoleAdmin), p.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestTrackViewWindow() {
	svc := New(s.mockStore, s.mockMedia, WithViewWindow(5*time.Minute))
	p := s.newProperty(id.NewUserID())
	s.mockStore.EXPECT().RecentViewExists(gomock.Any(), p.ID, gomock.Any(), gomock.Any(), s.now.Add(-5*time.Minute)).Return(true, nil)

	recorded, err := svc.trackView(s.callerCtx(id.UserID{}, ""), p.ID)
	s.NoError(err)
	s.False(recorded)
}
