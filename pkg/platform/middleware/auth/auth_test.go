package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

const (
	testUserID    = "550e8400-e29b-41d4-a716-446655440001"
	testSessionID = "550e8400-e29b-41d4-a716-446655440002"
)

type MockJWTValidator struct {
	mock.Mock
}

func (m *MockJWTValidator) ValidateToken(tokenString string) (*JWTClaims, error) {
	args := m.Called(tokenString)
	if claims := args.Get(0); claims != nil {
		return claims.(*JWTClaims), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSessionResolver struct {
	mock.Mock
}

func (m *MockSessionResolver) ResolveSession(ctx context.Context, userID id.UserID, sessionID id.SessionID) (id.Role, error) {
	args := m.Called(ctx, userID, sessionID)
	return args.Get(0).(id.Role), args.Error(1)
}

type mockHandler struct {
	called  bool
	context context.Context
}

func (m *mockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.called = true
	m.context = r.Context()
	w.WriteHeader(http.StatusOK)
}

type AuthMiddlewareTestSuite struct {
	suite.Suite
	validator   *MockJWTValidator
	sessions    *MockSessionResolver
	logger      *slog.Logger
	nextHandler *mockHandler
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	s.validator = new(MockJWTValidator)
	s.sessions = new(MockSessionResolver)
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.nextHandler = &mockHandler{}
}

func (s *AuthMiddlewareTestSuite) TearDownTest() {
	s.validator.AssertExpectations(s.T())
	s.sessions.AssertExpectations(s.T())
}

func (s *AuthMiddlewareTestSuite) serve(mw func(http.Handler) http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	mw(s.nextHandler).ServeHTTP(w, req)
	return w
}

func (s *AuthMiddlewareTestSuite) validClaims() *JWTClaims {
	return &JWTClaims{UserID: testUserID, SessionID: testSessionID, Role: "CLIENT"}
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("valid token and live session populate context", func() {
		s.SetupTest()
		s.validator.On("ValidateToken", "good").Return(s.validClaims(), nil)
		s.sessions.On("ResolveSession", mock.Anything, mock.Anything, mock.Anything).Return(id.RoleLandlord, nil)

		w := s.serve(RequireAuth(s.validator, s.sessions, s.logger), "Bearer good")

		require.True(s.T(), s.nextHandler.called)
		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), testUserID, requestcontext.UserID(s.nextHandler.context).String())
		assert.Equal(s.T(), testSessionID, requestcontext.SessionID(s.nextHandler.context).String())
		assert.Equal(s.T(), id.RoleLandlord, requestcontext.Role(s.nextHandler.context))
	})

	s.Run("missing header", func() {
		s.SetupTest()
		w := s.serve(RequireAuth(s.validator, s.sessions, s.logger), "")

		assert.False(s.T(), s.nextHandler.called)
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
		assert.JSONEq(s.T(), `{"success":false,"message":"No token provided"}`, w.Body.String())
	})

	s.Run("invalid token", func() {
		s.SetupTest()
		s.validator.On("ValidateToken", "bad").Return(nil, dErrors.New(dErrors.CodeUnauthorized, "token expired"))

		w := s.serve(RequireAuth(s.validator, s.sessions, s.logger), "Bearer bad")

		assert.False(s.T(), s.nextHandler.called)
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
		assert.JSONEq(s.T(), `{"success":false,"message":"Invalid or expired token"}`, w.Body.String())
	})

	s.Run("session logged out", func() {
		s.SetupTest()
		s.validator.On("ValidateToken", "good").Return(s.validClaims(), nil)
		s.sessions.On("ResolveSession", mock.Anything, mock.Anything, mock.Anything).
			Return(id.Role(""), dErrors.New(dErrors.CodeUnauthorized, "session not found"))

		w := s.serve(RequireAuth(s.validator, s.sessions, s.logger), "Bearer good")

		assert.False(s.T(), s.nextHandler.called)
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})

	s.Run("session store failure is a 500", func() {
		s.SetupTest()
		s.validator.On("ValidateToken", "good").Return(s.validClaims(), nil)
		s.sessions.On("ResolveSession", mock.Anything, mock.Anything, mock.Anything).
			Return(id.Role(""), dErrors.Wrap(errors.New("redis down"), dErrors.CodeInternal, "failed to load session"))

		w := s.serve(RequireAuth(s.validator, s.sessions, s.logger), "Bearer good")

		assert.False(s.T(), s.nextHandler.called)
		assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
	})

	s.Run("malformed subject", func() {
		s.SetupTest()
		s.validator.On("ValidateToken", "odd").Return(&JWTClaims{UserID: "nope", SessionID: testSessionID}, nil)

		w := s.serve(RequireAuth(s.validator, s.sessions, s.logger), "Bearer odd")

		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *AuthMiddlewareTestSuite) TestOptionalAuth() {
	s.Run("anonymous passes through", func() {
		s.SetupTest()
		w := s.serve(OptionalAuth(s.validator, s.sessions, s.logger), "")

		require.True(s.T(), s.nextHandler.called)
		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.True(s.T(), requestcontext.UserID(s.nextHandler.context).IsNil())
	})

	s.Run("bad token degrades to anonymous", func() {
		s.SetupTest()
		s.validator.On("ValidateToken", "bad").Return(nil, errors.New("signature invalid"))

		w := s.serve(OptionalAuth(s.validator, s.sessions, s.logger), "Bearer bad")

		require.True(s.T(), s.nextHandler.called)
		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.True(s.T(), requestcontext.UserID(s.nextHandler.context).IsNil())
	})

	s.Run("good token attaches identity", func() {
		s.SetupTest()
		s.validator.On("ValidateToken", "good").Return(s.validClaims(), nil)
		s.sessions.On("ResolveSession", mock.Anything, mock.Anything, mock.Anything).Return(id.RoleClient, nil)

		s.serve(OptionalAuth(s.validator, s.sessions, s.logger), "Bearer good")

		assert.Equal(s.T(), testUserID, requestcontext.UserID(s.nextHandler.context).String())
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireRole() {
	tests := []struct {
		name   string
		role   id.Role
		anon   bool
		status int
	}{
		{name: "admin allowed", role: id.RoleAdmin, status: http.StatusOK},
		{name: "super admin allowed", role: id.RoleSuperAdmin, status: http.StatusOK},
		{name: "agent forbidden", role: id.RoleAgent, status: http.StatusForbidden},
		{name: "anonymous unauthorized", anon: true, status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			ctx := context.Background()
			if !tt.anon {
				ctx = requestcontext.WithUserID(ctx, id.NewUserID())
				ctx = requestcontext.WithRole(ctx, tt.role)
			}
			req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil).WithContext(ctx)
			w := httptest.NewRecorder()

			RequireRole(s.logger, id.RoleAdmin, id.RoleSuperAdmin)(s.nextHandler).ServeHTTP(w, req)

			assert.Equal(s.T(), tt.status, w.Code)
			assert.Equal(s.T(), tt.status == http.StatusOK, s.nextHandler.called)
		})
	}
}
