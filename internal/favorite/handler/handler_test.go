package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

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
	"go.uber.org/mock/gomock"

	"estatehub/internal/favorite/handler/mocks"
	"estatehub/internal/favorite/models"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T, caller id.UserID) (*mocks.MockService, http.Handler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockService(ctrl)
	h := New(mockService, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(requestcontext.WithUserID(req.Context(), caller)))
		})
	})
	h.Register(r)
	return mockService, r
}

func send(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestAdd(t *testing.T) {
	caller, propertyID := id.NewUserID(), id.NewPropertyID()

	t.Run("201", func(t *testing.T) {
		mockService, router := setup(t, caller)
		mockService.EXPECT().Add(gomock.Any(), caller, propertyID).Return(&models.Saved{
			Favorite: models.Favorite{ID: id.NewFavoriteID(), UserID: caller, PropertyID: propertyID},
			Property: models.PropertySummary{ID: propertyID, Title: "Loft", AverageRating: 3.66},
		}, nil)

		rec, env := send(t, router, http.MethodPost, "/", `{"propertyId":"`+propertyID.String()+`"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Property added to favorites", env.Message)
		var got map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &got))
		property := got["property"].(map[string]any)
		assert.InDelta(t, 3.7, property["averageRating"], 0.0001)
		assert.Equal(t, []any{}, property["imageUrls"])
	})

	t.Run("400 without property id", func(t *testing.T) {
		mockService, router := setup(t, caller)
		mockService.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		rec, env := send(t, router, http.MethodPost, "/", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Property ID is required", env.Message)
	})

	t.Run("409 passes through", func(t *testing.T) {
		mockService, router := setup(t, caller)
		mockService.EXPECT().Add(gomock.Any(), caller, propertyID).
			Return(nil, dErrors.New(dErrors.CodeConflict, "Property is already in your favorites"))

		rec, _ := send(t, router, http.MethodPost, "/", `{"propertyId":"`+propertyID.String()+`"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestRemoveAndStatus(t *testing.T) {
	caller, propertyID := id.NewUserID(), id.NewPropertyID()

	t.Run("remove", func(t *testing.T) {
		mockService, router := setup(t, caller)
		mockService.EXPECT().Remove(gomock.Any(), caller, propertyID).Return(nil)

		rec, env := send(t, router, http.MethodDelete, "/"+propertyID.String(), "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Property removed from favorites", env.Message)
	})

	t.Run("status when not favorited", func(t *testing.T) {
		mockService, router := setup(t, caller)
		mockService.EXPECT().Status(gomock.Any(), caller, propertyID).Return(&models.Status{}, nil)

		rec, env := send(t, router, http.MethodGet, "/status/"+propertyID.String(), "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"isFavorited":false,"favoriteId":null}`, string(env.Data))
	})

	t.Run("malformed property id", func(t *testing.T) {
		mockService, router := setup(t, caller)
		mockService.EXPECT().Status(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		rec, _ := send(t, router, http.MethodGet, "/status/123", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestList(t *testing.T) {
	caller := id.NewUserID()
	mockService, router := setup(t, caller)
	mockService.EXPECT().List(gomock.Any(), caller, models.ListQuery{Offset: 5, Limit: 5}).
		Return([]*models.Saved{}, int64(6), nil)

	rec, _ := send(t, router, http.MethodGet, "/?page=2&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Pagination struct {
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Pagination.TotalPages)
}
