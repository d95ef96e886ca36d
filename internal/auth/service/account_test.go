package service

import (
	"fmt"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"estatehub/internal/audit"
	"estatehub/internal/auth/models"
	jwttoken "estatehub/internal/jwt_token"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
)

func (s *ServiceSuite) TestRegister() {
	req := func() *models.RegisterRequest {
		return &models.RegisterRequest{
			FirstName: "Ada",
			LastName:  "Obi",
			Email:     "ada@example.com",
			Phone:     "08012345678",
			Password:  "secret1",
			Role:      id.RoleLandlord,
		}
	}
	notFound := fmt.Errorf("user not found: %w", sentinel.ErrNotFound)

	s.Run("creates the account with a hashed password", func() {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), "ada@example.com").Return(nil, notFound)
		s.mockUsers.EXPECT().FindByPhone(gomock.Any(), "08012345678").Return(nil, notFound)
		s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, u *models.User) error {
				s.Equal("hashed:secret1", u.PasswordHash)
				s.Equal(id.RoleLandlord, u.Role)
				s.Equal(id.VerificationUnverified, u.VerificationStatus)
				s.False(u.ID.IsNil())
				return nil
			})
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, e audit.Event) error {
				s.Equal(audit.ActionUserRegistered, e.Action)
				return nil
			})

		user, err := s.service.Register(s.ctx, req())
		s.Require().NoError(err)
		s.Equal("Ada", user.FirstName)
	})

	s.Run("duplicate email is a conflict", func() {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), "ada@example.com").Return(s.newTestUser(id.RoleClient), nil)

		_, err := s.service.Register(s.ctx, req())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal("Email is already in use", err.Error())
	})

	s.Run("duplicate phone is a conflict", func() {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), "ada@example.com").Return(nil, notFound)
		s.mockUsers.EXPECT().FindByPhone(gomock.Any(), "08012345678").Return(s.newTestUser(id.RoleClient), nil)

		_, err := s.service.Register(s.ctx, req())
		s.Require().Error(err)
		s.Equal("Phone number is already in use", err.Error())
	})

	s.Run("insert race maps to conflict", func() {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, notFound)
		s.mockUsers.EXPECT().FindByPhone(gomock.Any(), gomock.Any()).Return(nil, notFound)
		s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("user users_email_key: %w", sentinel.ErrAlreadyExists))

		_, err := s.service.Register(s.ctx, req())
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("store failure is internal", func() {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

		_, err := s.service.Register(s.ctx, req())
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestLogin() {
	user := s.newTestUser(id.RoleAgent)
	// Login stamps LastLogin on the user it loaded, so every lookup hands out
	// its own copy.
	stored := func() *models.User {
		u := *user
		return &u
	}
	expires := s.now.Add(7 * 24 * time.Hour)

	s.Run("issues a token bound to a new session", func() {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), "ada@example.com").Return(stored(), nil)
		s.mockJWT.EXPECT().GenerateAccessToken(gomock.Any(), user.ID, gomock.Any(), id.RoleAgent).
			Return(&jwttoken.IssuedToken{Token: "tok", JTI: "jti-1", ExpiresAt: expires}, nil)
		s.mockSessions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, sess *models.Session) error {
				s.Equal(user.ID, sess.UserID)
				s.Equal("jti-1", sess.TokenID)
				s.Equal(expires, sess.ExpiresAt)
				s.Equal(s.now, sess.CreatedAt)
				return nil
			})
		s.mockUsers.EXPECT().TouchLastLogin(gomock.Any(), user.ID, s.now).Return(nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		res, err := s.service.Login(s.ctx, &models.LoginRequest{Email: "ada@example.com", Password: "secret1"})
		s.Require().NoError(err)
		s.Equal("tok", res.Token)
		s.Require().NotNil(res.User.LastLogin)
		s.Equal(s.now, *res.User.LastLogin)
	})

	s.Run("login by phone", func() {
		s.mockUsers.EXPECT().FindByPhone(gomock.Any(), "08012345678").Return(stored(), nil)
		s.mockJWT.EXPECT().GenerateAccessToken(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&jwttoken.IssuedToken{Token: "tok", JTI: "jti-2", ExpiresAt: expires}, nil)
		s.mockSessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.mockUsers.EXPECT().TouchLastLogin(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.service.Login(s.ctx, &models.LoginRequest{Phone: "08012345678", Password: "secret1"})
		s.NoError(err)
	})

	s.Run("wrong password is unauthorized", func() {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(stored(), nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.service.Login(s.ctx, &models.LoginRequest{Email: "ada@example.com", Password: "nope"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Equal("Invalid credentials", err.Error())
	})

	s.Run("unknown account is indistinguishable from a wrong password", func() {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound))
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.service.Login(s.ctx, &models.LoginRequest{Email: "who@example.com", Password: "secret1"})
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Equal("Invalid credentials", err.Error())
	})

	s.Run("last login failure does not fail the login", func() {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(stored(), nil)
		s.mockJWT.EXPECT().GenerateAccessToken(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&jwttoken.IssuedToken{Token: "tok", JTI: "jti-3", ExpiresAt: expires}, nil)
		s.mockSessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.mockUsers.EXPECT().TouchLastLogin(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		res, err := s.service.Login(s.ctx, &models.LoginRequest{Email: "ada@example.com", Password: "secret1"})
		s.Require().NoError(err)
		s.Nil(res.User.LastLogin)
	})

	s.Run("session store failure is internal", func() {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(stored(), nil)
		s.mockJWT.EXPECT().GenerateAccessToken(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&jwttoken.IssuedToken{Token: "tok", JTI: "jti-4", ExpiresAt: expires}, nil)
		s.mockSessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(assert.AnError)

		_, err := s.service.Login(s.ctx, &models.LoginRequest{Email: "ada@example.com", Password: "secret1"})
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestLogout() {
	userID, sessionID := id.NewUserID(), id.NewSessionID()

	s.mockSessions.EXPECT().Delete(gomock.Any(), sessionID).Return(nil)
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)
	s.NoError(s.service.Logout(s.ctx, userID, sessionID))

	s.mockSessions.EXPECT().Delete(gomock.Any(), sessionID).Return(assert.AnError)
	err := s.service.Logout(s.ctx, userID, sessionID)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestResolveSession() {
	user := s.newTestUser(id.RoleAdmin)
	live := &models.Session{
		ID:        id.NewSessionID(),
		UserID:    user.ID,
		ExpiresAt: s.now.Add(time.Hour),
	}

	s.Run("live session returns the current role", func() {
		s.mockSessions.EXPECT().FindByID(gomock.Any(), live.ID).Return(live, nil)
		s.mockUsers.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)

		role, err := s.service.ResolveSession(s.ctx, user.ID, live.ID)
		s.Require().NoError(err)
		s.Equal(id.RoleAdmin, role)
	})

	s.Run("deleted session is unauthorized", func() {
		s.mockSessions.EXPECT().FindByID(gomock.Any(), live.ID).
			Return(nil, fmt.Errorf("session not found: %w", sentinel.ErrNotFound))

		_, err := s.service.ResolveSession(s.ctx, user.ID, live.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("expired session is unauthorized", func() {
		expired := *live
		expired.ExpiresAt = s.now
		s.mockSessions.EXPECT().FindByID(gomock.Any(), live.ID).Return(&expired, nil)

		_, err := s.service.ResolveSession(s.ctx, user.ID, live.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("session of another user is unauthorized", func() {
		s.mockSessions.EXPECT().FindByID(gomock.Any(), live.ID).Return(live, nil)

		_, err := s.service.ResolveSession(s.ctx, id.NewUserID(), live.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("store outage is internal, not unauthorized", func() {
		s.mockSessions.EXPECT().FindByID(gomock.Any(), live.ID).Return(nil, assert.AnError)

		_, err := s.service.ResolveSession(s.ctx, user.ID, live.ID)
		require.Error(s.T(), err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
