package service

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"estatehub/internal/auth/models"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
)

func (s *ServiceSuite) TestProfile() {
	user := s.newTestUser(id.RoleAgent)

	s.Run("assembles counts and sub-records", func() {
		s.mockUsers.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
		s.mockUsers.EXPECT().Counts(gomock.Any(), user.ID).Return(models.UserCounts{PropertiesManaged: 4}, nil)
		s.mockUsers.EXPECT().FindVerificationSummary(gomock.Any(), user.ID).Return(nil, nil)
		s.mockUsers.EXPECT().FindAgentProfile(gomock.Any(), user.ID).
			Return(&models.AgentProfile{UserID: user.ID, Experience: 2}, nil)

		profile, err := s.service.Profile(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(int64(4), profile.Counts.PropertiesManaged)
		s.Nil(profile.Verification)
		s.Equal(2, profile.Agent.Experience)
	})

	s.Run("missing user is not found", func() {
		s.mockUsers.EXPECT().FindByID(gomock.Any(), user.ID).
			Return(nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound))

		_, err := s.service.Profile(s.ctx, user.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestUpdateProfile() {
	user := s.newTestUser(id.RoleClient)
	phone := "08099999999"

	s.Run("phone held by someone else is a conflict", func() {
		s.mockUsers.EXPECT().PhoneTakenByOther(gomock.Any(), phone, user.ID).Return(true, nil)

		_, err := s.service.UpdateProfile(s.ctx, user.ID, models.ProfileUpdate{Phone: &phone})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("applies the update", func() {
		updated := *user
		updated.Phone = phone
		s.mockUsers.EXPECT().PhoneTakenByOther(gomock.Any(), phone, user.ID).Return(false, nil)
		s.mockUsers.EXPECT().UpdateProfile(gomock.Any(), user.ID, models.ProfileUpdate{Phone: &phone}).Return(&updated, nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		got, err := s.service.UpdateProfile(s.ctx, user.ID, models.ProfileUpdate{Phone: &phone})
		s.Require().NoError(err)
		s.Equal(phone, got.Phone)
	})

	s.Run("clearing the phone skips the ownership check", func() {
		empty := ""
		s.mockUsers.EXPECT().UpdateProfile(gomock.Any(), user.ID, gomock.Any()).Return(user, nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.service.UpdateProfile(s.ctx, user.ID, models.ProfileUpdate{Phone: &empty})
		s.NoError(err)
	})
}

func (s *ServiceSuite) TestChangePassword() {
	user := s.newTestUser(id.RoleClient)

	s.Run("rehashes and ends every session", func() {
		s.mockUsers.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
		s.mockUsers.EXPECT().UpdatePassword(gomock.Any(), user.ID, "hashed:newpass").Return(nil)
		s.mockSessions.EXPECT().DeleteByUser(gomock.Any(), user.ID).Return(3, nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		err := s.service.ChangePassword(s.ctx, user.ID, &models.ChangePasswordRequest{
			CurrentPassword: "secret1", NewPassword: "newpass",
		})
		s.NoError(err)
	})

	s.Run("wrong current password is a bad request", func() {
		s.mockUsers.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)

		err := s.service.ChangePassword(s.ctx, user.ID, &models.ChangePasswordRequest{
			CurrentPassword: "guess", NewPassword: "newpass",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Equal("Current password is incorrect", err.Error())
	})

	s.Run("session purge failure is internal", func() {
		s.mockUsers.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
		s.mockUsers.EXPECT().UpdatePassword(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.mockSessions.EXPECT().DeleteByUser(gomock.Any(), user.ID).Return(0, assert.AnError)

		err := s.service.ChangePassword(s.ctx, user.ID, &models.ChangePasswordRequest{
			CurrentPassword: "secret1", NewPassword: "newpass",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
