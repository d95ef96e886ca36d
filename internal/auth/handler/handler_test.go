package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"estatehub/internal/auth/handler/mocks"
	"estatehub/internal/auth/models"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type AuthHandlerSuite struct {
	suite.Suite
	userID    id.UserID
	sessionID id.SessionID
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) SetupTest() {
	s.userID = id.NewUserID()
	s.sessionID = id.NewSessionID()
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *AuthHandlerSuite) TestHandleRegister() {
	s.T().Run("201 with the public user projection", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Register(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, req *models.RegisterRequest) (*models.User, error) {
				assert.Equal(t, "ada@example.com", req.Email)
				assert.Equal(t, id.RoleClient, req.Role, "ADMIN is not self-service")
				return &models.User{ID: s.userID, FirstName: "Ada", Email: req.Email, PasswordHash: "x", Role: req.Role}, nil
			})

		body := `{"firstName":"Ada","lastName":"Obi","email":" ADA@example.com ","password":"secret1","role":"ADMIN"}`
		status, env := s.do(t, router, http.MethodPost, "/register", body, false)

		require.Equal(t, http.StatusCreated, status)
		assert.True(t, env.Success)
		assert.Equal(t, "User registered successfully", env.Message)
		assert.NotContains(t, string(env.Data), "passwordHash")
		assert.NotContains(t, string(env.Data), `"x"`)
	})

	s.T().Run("400 when neither email nor phone given", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0)

		status, env := s.do(t, router, http.MethodPost, "/register",
			`{"firstName":"Ada","lastName":"Obi","password":"secret1"}`, false)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.False(t, env.Success)
		assert.Equal(t, "Please provide an email or phone number", env.Message)
	})

	s.T().Run("400 on malformed json", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0)

		status, _ := s.do(t, router, http.MethodPost, "/register", `{"email":`, false)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	s.T().Run("409 passes through", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeConflict, "Email is already in use"))

		status, env := s.do(t, router, http.MethodPost, "/register",
			`{"firstName":"Ada","lastName":"Obi","email":"ada@example.com","password":"secret1"}`, false)

		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "Email is already in use", env.Message)
	})
}

func (s *AuthHandlerSuite) TestHandleLogin() {
	s.T().Run("200 with token", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		userID := id.NewUserID()
		mockService.EXPECT().Login(gomock.Any(), &models.LoginRequest{Phone: "08012345678", Password: "secret1"}).
			Return(&models.LoginResult{Token: "tok", User: models.UserResponse{ID: userID}}, nil)

		status, env := s.do(t, router, http.MethodPost, "/login", `{"phone":"08012345678","password":"secret1"}`, false)

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Login successful", env.Message)
		var res models.LoginResult
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, "tok", res.Token)
		assert.Equal(t, userID, res.User.ID)
	})

	s.T().Run("401 on bad credentials", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials"))

		status, env := s.do(t, router, http.MethodPost, "/login", `{"email":"a@b.co","password":"nope"}`, false)

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid credentials", env.Message)
	})

	s.T().Run("400 without password", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Login(gomock.Any(), gomock.Any()).Times(0)

		status, _ := s.do(t, router, http.MethodPost, "/login", `{"email":"a@b.co"}`, false)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func (s *AuthHandlerSuite) TestHandleLogout() {
	s.T().Run("deletes the current session", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Logout(gomock.Any(), s.userID, s.sessionID).Return(nil)

		status, env := s.do(t, router, http.MethodPost, "/logout", "", true)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Successfully logged out", env.Message)
	})

	s.T().Run("500 when identity is missing", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Logout(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		status, _ := s.do(t, router, http.MethodPost, "/logout", "", false)
		assert.Equal(t, http.StatusInternalServerError, status)
	})
}

func (s *AuthHandlerSuite) TestHandleProfile() {
	s.T().Run("get returns counts under _count", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Profile(gomock.Any(), s.userID).Return(&models.Profile{
			User:   &models.User{ID: s.userID, FirstName: "Ada"},
			Counts: models.UserCounts{Favorites: 3},
		}, nil)

		status, env := s.do(t, router, http.MethodGet, "/profile", "", true)

		require.Equal(t, http.StatusOK, status)
		var got map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "Ada", got["firstName"])
		counts, ok := got["_count"].(map[string]any)
		require.True(t, ok)
		assert.EqualValues(t, 3, counts["favorites"])
	})

	s.T().Run("put forwards only non-blank names", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().UpdateProfile(gomock.Any(), s.userID, gomock.Any()).DoAndReturn(
			func(_ any, _ id.UserID, u models.ProfileUpdate) (*models.User, error) {
				assert.Nil(t, u.FirstName)
				require.NotNil(t, u.LastName)
				assert.Equal(t, "Obi", *u.LastName)
				return &models.User{ID: s.userID, LastName: "Obi"}, nil
			})

		status, env := s.do(t, router, http.MethodPut, "/profile", `{"firstName":"  ","lastName":"Obi"}`, true)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Profile updated successfully", env.Message)
	})

	s.T().Run("put rejects a malformed phone", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().UpdateProfile(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		status, _ := s.do(t, router, http.MethodPut, "/profile", `{"phone":"call me"}`, true)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func (s *AuthHandlerSuite) TestHandleChangePassword() {
	s.T().Run("200 asks the user to log in again", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().ChangePassword(gomock.Any(), s.userID,
			&models.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"}).Return(nil)

		status, env := s.do(t, router, http.MethodPut, "/change-password",
			`{"currentPassword":"secret1","newPassword":"secret2"}`, true)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Password changed successfully. Please log in again.", env.Message)
	})

	s.T().Run("400 on short new password", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().ChangePassword(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		status, env := s.do(t, router, http.MethodPut, "/change-password",
			`{"currentPassword":"secret1","newPassword":"abc"}`, true)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "New password must be at least 6 characters long", env.Message)
	})
}

func (s *AuthHandlerSuite) newHandler(t *testing.T) (*mocks.MockService, *chi.Mux) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockService := mocks.NewMockService(ctrl)
	h := New(mockService, logger)
	r := chi.NewRouter()
	h.RegisterPublic(r)
	h.RegisterAuthenticated(r)
	return mockService, r
}

// do sends a request; authenticated simulates what RequireAuth attaches.
func (s *AuthHandlerSuite) do(t *testing.T, router http.Handler, method, path, body string, authenticated bool) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authenticated {
		ctx := requestcontext.WithUserID(req.Context(), s.userID)
		ctx = requestcontext.WithSessionID(ctx, s.sessionID)
		req = req.WithContext(ctx)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return rr.Code, env
}
