package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"estatehub/internal/property/handler/mocks"
	"estatehub/internal/property/models"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/platform/httputil"
	"estatehub/pkg/requestcontext"
)

type envelope struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Data       json.RawMessage      `json:"data"`
	Pagination *httputil.Pagination `json:"pagination"`
}

func newRouter(t *testing.T, caller *id.UserID) (*mocks.MockService, http.Handler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockService(ctrl)

	h := New(mockService, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if caller != nil {
				req = req.WithContext(requestcontext.WithUserID(req.Context(), *caller))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/users/properties", h.HandleListMine)
	r.Route("/properties", func(r chi.Router) {
		h.RegisterPublic(r)
		h.RegisterAuthenticated(r)
	})
	return mockService, r
}

func do(t *testing.T, router http.Handler, method, target, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func listing(owner id.UserID) *models.Listing {
	p := &models.Property{
		ID:          id.NewPropertyID(),
		Title:       "Two bedroom flat",
		Type:        id.PropertyApartment,
		ListingType: id.ListingForRent,
		Status:      id.PropertyAvailable,
		Price:       1_200_000,
		Currency:    id.DefaultCurrency,
		PostedByID:  owner,
		CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	return &models.Listing{
		Property:      p,
		PostedBy:      &models.Contact{ID: owner, FirstName: "Ada", LastName: "Obi"},
		Counts:        models.Counts{Views: 12, Favorites: 2, Ratings: 3},
		AverageRating: 4.333,
	}
}

func TestHandleList(t *testing.T) {
	t.Run("filters and pagination reach the service", func(t *testing.T) {
		mockService, router := newRouter(t, nil)
		owner := id.NewUserID()
		mockService.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, f models.Filter, q models.ListQuery) ([]*models.Listing, int64, error) {
				assert.Equal(t, id.ListingForSale, f.ListingType)
				assert.Equal(t, "Lagos", f.City)
				require.NotNil(t, f.MinPrice)
				assert.Equal(t, 1000.0, *f.MinPrice)
				require.NotNil(t, f.Bedrooms)
				assert.Equal(t, 3, *f.Bedrooms)
				assert.Equal(t, []string{"pool", "gym"}, f.Amenities)
				assert.Nil(t, f.IsFeatured)
				assert.Equal(t, 10, q.Offset)
				assert.Equal(t, 10, q.Limit)
				assert.Equal(t, "price ASC", q.OrderBy)
				return []*models.Listing{listing(owner)}, 11, nil
			})

		params := url.Values{
			"listingType": {"FOR_SALE"},
			"city":        {"Lagos"},
			"minPrice":    {"1000"},
			"bedrooms":    {"3"},
			"amenities":   {"pool, gym,"},
			"isFeatured":  {"maybe"},
			"page":        {"2"},
			"sortBy":      {"price"},
			"sortOrder":   {"asc"},
		}
		status, env := do(t, router, http.MethodGet, "/properties?"+params.Encode(), "")

		require.Equal(t, http.StatusOK, status)
		require.NotNil(t, env.Pagination)
		assert.Equal(t, httputil.Pagination{Total: 11, Limit: 10, Page: 2, TotalPages: 2}, *env.Pagination)

		var got []map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &got))
		require.Len(t, got, 1)
		assert.InDelta(t, 4.3, got[0]["averageRating"], 0.0001)
		counts := got[0]["_count"].(map[string]any)
		assert.EqualValues(t, 2, counts["favoritedBy"])
	})

	for _, tc := range []struct {
		name  string
		query string
	}{
		{"unknown listing type", "listingType=LEASE"},
		{"unknown property type", "propertyType=CASTLE"},
		{"malformed user id", "userId=nope"},
		{"unsupported sort field", "sortBy=password_hash"},
	} {
		t.Run("400 on "+tc.name, func(t *testing.T) {
			mockService, router := newRouter(t, nil)
			mockService.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			status, env := do(t, router, http.MethodGet, "/properties?"+tc.query, "")
			assert.Equal(t, http.StatusBadRequest, status)
			assert.False(t, env.Success)
		})
	}
}

func TestHandleListMine(t *testing.T) {
	caller := id.NewUserID()

	t.Run("scopes to the caller with any status", func(t *testing.T) {
		mockService, router := newRouter(t, &caller)
		mockService.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, f models.Filter, _ models.ListQuery) ([]*models.Listing, int64, error) {
				require.NotNil(t, f.PostedBy)
				assert.Equal(t, caller, *f.PostedBy)
				assert.Equal(t, id.PropertyRented, f.Status)
				return nil, 0, nil
			})

		status, env := do(t, router, http.MethodGet, "/users/properties?status=RENTED", "")
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `[]`, string(env.Data))
	})

	t.Run("500 without an authenticated caller", func(t *testing.T) {
		mockService, router := newRouter(t, nil)
		mockService.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		status, _ := do(t, router, http.MethodGet, "/users/properties", "")
		assert.Equal(t, http.StatusInternalServerError, status)
	})
}

func TestHandleGet(t *testing.T) {
	owner := id.NewUserID()
	l := listing(owner)

	t.Run("tracks views by default", func(t *testing.T) {
		mockService, router := newRouter(t, nil)
		mockService.EXPECT().Get(gomock.Any(), l.Property.ID, true).Return(&models.Detail{
			Listing: *l,
			Reviews: []models.Review{{ID: id.NewRatingID(), Rating: 5, Comment: "Great", ClientName: "Bola A."}},
		}, nil)

		status, env := do(t, router, http.MethodGet, "/properties/"+l.Property.ID.String(), "")

		require.Equal(t, http.StatusOK, status)
		var got map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, l.Property.ID.String(), got["id"])
		assert.EqualValues(t, 3, got["totalRatings"])
		assert.Len(t, got["ratings"], 1)
	})

	t.Run("trackView=false is forwarded", func(t *testing.T) {
		mockService, router := newRouter(t, nil)
		mockService.EXPECT().Get(gomock.Any(), l.Property.ID, false).Return(&models.Detail{Listing: *l}, nil)

		status, _ := do(t, router, http.MethodGet, "/properties/"+l.Property.ID.String()+"?trackView=false", "")
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("404 from the service", func(t *testing.T) {
		mockService, router := newRouter(t, nil)
		mockService.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "Property not found"))

		status, env := do(t, router, http.MethodGet, "/properties/"+id.NewPropertyID().String(), "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Property not found", env.Message)
	})

	t.Run("400 on a malformed id", func(t *testing.T) {
		mockService, router := newRouter(t, nil)
		mockService.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		status, _ := do(t, router, http.MethodGet, "/properties/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestHandleSimilar(t *testing.T) {
	mockService, router := newRouter(t, nil)
	propertyID := id.NewPropertyID()
	mockService.EXPECT().Similar(gomock.Any(), propertyID, 6).Return([]*models.Listing{listing(id.NewUserID())}, nil)

	status, env := do(t, router, http.MethodGet, "/properties/"+propertyID.String()+"/similar?limit=6", "")

	require.Equal(t, http.StatusOK, status)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 1)
}

func TestHandleCreate(t *testing.T) {
	caller := id.NewUserID()
	body := `{"title":" Shop ","description":"Corner shop","type":"shop","listingType":"for_rent",
		"price":500000,"address":"12 Broad St","city":"Lagos","state":"Lagos",
		"imageUrls":["https://cdn.example.com/a.jpg","https://cdn.example.com/a.jpg"]}`

	t.Run("201 with the stored property", func(t *testing.T) {
		mockService, router := newRouter(t, &caller)
		mockService.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, req *models.CreatePropertyRequest) (*models.Property, error) {
				assert.Equal(t, "Shop", req.Title)
				assert.Equal(t, id.PropertyShop, req.Type)
				assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, req.ImageURLs)
				return &models.Property{ID: id.NewPropertyID(), Title: req.Title, ImageURLs: req.ImageURLs}, nil
			})

		status, env := do(t, router, http.MethodPost, "/properties", body)

		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "Property created successfully", env.Message)
	})

	t.Run("400 without images", func(t *testing.T) {
		mockService, router := newRouter(t, &caller)
		mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		status, env := do(t, router, http.MethodPost, "/properties",
			`{"title":"Shop","description":"d","type":"SHOP","listingType":"FOR_RENT","price":1,"address":"a","city":"c","state":"s","imageUrls":[]}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "At least one image is required.", env.Message)
	})

	t.Run("403 passes through", func(t *testing.T) {
		mockService, router := newRouter(t, &caller)
		mockService.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeForbidden, "Only landlords, agents, and admins can post."))

		status, _ := do(t, router, http.MethodPost, "/properties", body)
		assert.Equal(t, http.StatusForbidden, status)
	})
}

func TestHandleUpdateAndDelete(t *testing.T) {
	caller := id.NewUserID()
	propertyID := id.NewPropertyID()

	t.Run("update converts the request", func(t *testing.T) {
		mockService, router := newRouter(t, &caller)
		mockService.EXPECT().Update(gomock.Any(), propertyID, gomock.Any()).DoAndReturn(
			func(_ any, _ id.PropertyID, u models.Update) (*models.Property, error) {
				require.NotNil(t, u.Price)
				assert.Equal(t, 750_000.0, *u.Price)
				assert.Nil(t, u.Title)
				return &models.Property{ID: propertyID, Price: *u.Price}, nil
			})

		status, env := do(t, router, http.MethodPut, "/properties/"+propertyID.String(), `{"price":750000}`)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Property updated successfully", env.Message)
	})

	t.Run("update rejects an unknown status", func(t *testing.T) {
		mockService, router := newRouter(t, &caller)
		mockService.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		status, _ := do(t, router, http.MethodPut, "/properties/"+propertyID.String(), `{"status":"GONE"}`)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("delete", func(t *testing.T) {
		mockService, router := newRouter(t, &caller)
		mockService.EXPECT().Delete(gomock.Any(), propertyID).Return(nil)

		status, env := do(t, router, http.MethodDelete, "/properties/"+propertyID.String(), "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Property deleted successfully", env.Message)
	})
}
