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

	"estatehub/internal/rating/handler/mocks"
	"estatehub/internal/rating/models"
	id "estatehub/pkg/domain"
	"estatehub/pkg/requestcontext"
)

type response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func router(t *testing.T, caller id.UserID) (*mocks.MockService, http.Handler) {
	t.Helper()
	mockService := mocks.NewMockService(gomock.NewController(t))
	h := New(mockService, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	h.RegisterPublic(r)
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(requestcontext.WithUserID(req.Context(), caller)))
			})
		})
		h.RegisterAuthenticated(r)
	})
	return mockService, r
}

func call(t *testing.T, h http.Handler, method, target, body string) (int, response) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestHandleSubmit(t *testing.T) {
	caller, propertyID := id.NewUserID(), id.NewPropertyID()
	body := `{"propertyId":"` + propertyID.String() + `","rating":5,"comment":"  Lovely  "}`

	t.Run("201 on first rating", func(t *testing.T) {
		mockService, h := router(t, caller)
		mockService.EXPECT().Submit(gomock.Any(), &models.SubmitRatingRequest{PropertyID: propertyID, Rating: 5, Comment: "Lovely"}).
			Return(&models.Review{Rating: models.Rating{Rating: 5}, Client: models.Author{FirstName: "Ada"}}, true, nil)

		status, resp := call(t, h, http.MethodPost, "/", body)
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "Rating added successfully", resp.Message)
	})

	t.Run("200 on update", func(t *testing.T) {
		mockService, h := router(t, caller)
		mockService.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(&models.Review{}, false, nil)

		status, resp := call(t, h, http.MethodPost, "/", body)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Rating updated successfully", resp.Message)
	})

	for name, tc := range map[string]struct {
		body    string
		message string
	}{
		"missing rating": {`{"propertyId":"` + propertyID.String() + `"}`, "Property ID and rating are required"},
		"out of range":   {`{"propertyId":"` + propertyID.String() + `","rating":6}`, "Rating must be between 1 and 5"},
	} {
		t.Run("400 on "+name, func(t *testing.T) {
			mockService, h := router(t, caller)
			mockService.EXPECT().Submit(gomock.Any(), gomock.Any()).Times(0)

			status, resp := call(t, h, http.MethodPost, "/", tc.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tc.message, resp.Message)
		})
	}
}

func TestHandleForProperty(t *testing.T) {
	propertyID := id.NewPropertyID()
	mockService, h := router(t, id.NewUserID())
	mockService.EXPECT().ForProperty(gomock.Any(), propertyID, models.ListQuery{Offset: 0, Limit: 10}).
		Return(&models.PropertyRatings{
			Reviews: []*models.Review{{Rating: models.Rating{Rating: 4}}},
			Total:   3,
			Summary: models.Summary{Average: 3.6667, Total: 3, Distribution: [5]int64{0, 0, 1, 2, 0}},
		}, nil)

	status, resp := call(t, h, http.MethodGet, "/property/"+propertyID.String(), "")
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Ratings []map[string]any `json:"ratings"`
		Summary struct {
			AverageRating float64 `json:"averageRating"`
			Distribution  []struct {
				Rating int   `json:"rating"`
				Count  int64 `json:"count"`
			} `json:"distribution"`
		} `json:"summary"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Len(t, data.Ratings, 1)
	assert.Equal(t, 3.7, data.Summary.AverageRating)
	require.Len(t, data.Summary.Distribution, 5)
	assert.Equal(t, 4, data.Summary.Distribution[3].Rating)
	assert.EqualValues(t, 2, data.Summary.Distribution[3].Count)
	assert.EqualValues(t, 3, data.Pagination.Total)
}

func TestHandleDelete(t *testing.T) {
	ratingID := id.NewRatingID()
	mockService, h := router(t, id.NewUserID())
	mockService.EXPECT().Delete(gomock.Any(), ratingID).Return(nil)

	status, resp := call(t, h, http.MethodDelete, "/"+ratingID.String(), "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Rating deleted successfully", resp.Message)
}
