package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/platform/middleware/auth"
	"estatehub/pkg/requestcontext"
)

type fakeValidator struct {
	tokens map[string]*auth.JWTClaims
}

func (f *fakeValidator) ValidateToken(token string) (*auth.JWTClaims, error) {
	if c, ok := f.tokens[token]; ok {
		return c, nil
	}
	return nil, errors.New("bad token")
}

type fakeSessions struct {
	roles map[id.UserID]id.Role
}

func (f *fakeSessions) ResolveSession(_ context.Context, userID id.UserID, _ id.SessionID) (id.Role, error) {
	if role, ok := f.roles[userID]; ok {
		return role, nil
	}
	return "", dErrors.New(dErrors.CodeUnauthorized, "session expired")
}

// echo answers with the path and the caller's user id.
func echo(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"path": r.URL.Path,
		"user": requestcontext.UserID(r.Context()).String(),
	})
}

type stubRegistrar struct{}

func (stubRegistrar) Register(r chi.Router) { r.Get("/", echo) }

type stubSplit struct{}

func (stubSplit) RegisterPublic(r chi.Router)        { r.Get("/public", echo) }
func (stubSplit) RegisterAuthenticated(r chi.Router) { r.Get("/private", echo) }

type stubProperties struct{ stubSplit }

func (stubProperties) HandleListMine(w http.ResponseWriter, r *http.Request) { echo(w, r) }

type stubAdmin struct{}

func (stubAdmin) Register(r chi.Router) { r.Get("/dashboard", echo) }

type routerFixture struct {
	handler http.Handler
	client  id.UserID
	admin   id.UserID
}

func newFixture(t *testing.T) routerFixture {
	t.Helper()
	client, adminID, superID := id.NewUserID(), id.NewUserID(), id.NewUserID()
	validator := &fakeValidator{tokens: map[string]*auth.JWTClaims{
		"client-token": {UserID: client.String(), SessionID: id.NewSessionID().String()},
		"admin-token":  {UserID: adminID.String(), SessionID: id.NewSessionID().String()},
		"super-token":  {UserID: superID.String(), SessionID: id.NewSessionID().String()},
	}}
	sessions := &fakeSessions{roles: map[id.UserID]id.Role{
		client:  id.RoleClient,
		adminID: id.RoleAdmin,
		superID: id.RoleSuperAdmin,
	}}

	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "# metrics")
	})

	h := NewRouter(Handlers{
		Auth:          stubSplit{},
		Properties:    stubProperties{},
		Ratings:       stubSplit{},
		Favorites:     stubRegistrar{},
		Complaints:    stubRegistrar{},
		Verifications: stubRegistrar{},
		Landing:       stubRegistrar{},
		Admin:         stubAdmin{},
	}, Config{
		Validator:      validator,
		Sessions:       sessions,
		MetricsHandler: metricsHandler,
		MetricsToken:   "scrape",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return routerFixture{handler: h, client: client, admin: adminID}
}

func (f routerFixture) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	f := newFixture(t)

	t.Run("anonymous caller is unauthorized", func(t *testing.T) {
		rr := f.do(http.MethodGet, "/api/admin/dashboard", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "No token provided")
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		rr := f.do(http.MethodGet, "/api/admin/dashboard", "forged")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("client is forbidden", func(t *testing.T) {
		rr := f.do(http.MethodGet, "/api/admin/dashboard", "client-token")
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "Access denied: insufficient permissions")
	})

	t.Run("admin and super admin are allowed", func(t *testing.T) {
		for _, token := range []string{"admin-token", "super-token"} {
			rr := f.do(http.MethodGet, "/api/admin/dashboard", token)
			assert.Equal(t, http.StatusOK, rr.Code, token)
		}
	})
}

func TestUserRoutes(t *testing.T) {
	f := newFixture(t)

	rr := f.do(http.MethodGet, "/api/users/public", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(http.MethodGet, "/api/users/private", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = f.do(http.MethodGet, "/api/users/properties", "client-token")
	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, f.client.String(), body["user"])
}

func TestPublicPropertyRoutesAttachOptionalIdentity(t *testing.T) {
	f := newFixture(t)

	rr := f.do(http.MethodGet, "/api/properties/public", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var anon map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &anon))
	assert.Equal(t, id.UserID{}.String(), anon["user"])

	rr = f.do(http.MethodGet, "/api/properties/public", "admin-token")
	require.Equal(t, http.StatusOK, rr.Code)
	var known map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &known))
	assert.Equal(t, f.admin.String(), known["user"])

	rr = f.do(http.MethodGet, "/api/properties/public", "forged")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(http.MethodGet, "/api/properties/private", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticatedContexts(t *testing.T) {
	f := newFixture(t)
	for _, path := range []string{"/api/favorites/", "/api/complaints/", "/api/verifications/", "/api/ratings/private"} {
		assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, path, "").Code, path)
		assert.Equal(t, http.StatusOK, f.do(http.MethodGet, path, "client-token").Code, path)
	}
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/ratings/public", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/landing/", "").Code)
}

func TestMetricsRequireOperatorToken(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/metrics", "").Code)

	rr := f.do(http.MethodGet, "/metrics", "scrape")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "# metrics", rr.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)
	rr := f.do(http.MethodGet, "/api/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":false`)
}

func TestRequestsCarryRequestID(t *testing.T) {
	f := newFixture(t)
	rr := f.do(http.MethodGet, "/api/landing/", "")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}
