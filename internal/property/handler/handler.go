package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"estatehub/internal/property/models"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/platform/httputil"
	"estatehub/pkg/requestcontext"
)

// SortFields is the sortBy allow-list for property listings.
var SortFields = httputil.SortFields{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"price":     "price",
	"title":     "title",
}

type Service interface {
	List(ctx context.Context, f models.Filter, q models.ListQuery) ([]*models.Listing, int64, error)
	Get(ctx context.Context, propertyID id.PropertyID, trackView bool) (*models.Detail, error)
	Similar(ctx context.Context, propertyID id.PropertyID, limit int) ([]*models.Listing, error)
	Create(ctx context.Context, req *models.CreatePropertyRequest) (*models.Property, error)
	Update(ctx context.Context, propertyID id.PropertyID, update models.Update) (*models.Property, error)
	Delete(ctx context.Context, propertyID id.PropertyID) error
}

// Handler serves /api/properties and the caller's own listings.
type Handler struct {
	properties Service
	logger     *slog.Logger
}

func New(properties Service, logger *slog.Logger) *Handler {
	return &Handler{properties: properties, logger: logger}
}

// RegisterPublic mounts the read endpoints. They run behind OptionalAuth so a
// signed-in viewer is attributed in the view log.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	r.Get("/{id}/similar", h.HandleSimilar)
}

// RegisterAuthenticated mounts the write endpoints behind RequireAuth.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
}

// HandleList implements GET /api/properties.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter, err := ParseFilter(q)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	page := httputil.ParsePage(q, httputil.DefaultPageSize)
	sort, err := httputil.ParseSort(q, SortFields, "createdAt")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	listings, total, err := h.properties.List(ctx, filter, models.ListQuery{
		Offset: page.Offset(), Limit: page.Limit, OrderBy: sort.Clause(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list properties",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WritePage(w, models.NewListingResponses(listings), page.Result(total))
}

// HandleListMine implements GET /api/users/properties: every listing the
// caller posted, whatever its status unless ?status= narrows it.
func (h *Handler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	q := r.URL.Query()
	filter := models.Filter{PostedBy: &userID}
	if raw := q.Get("status"); raw != "" {
		filter.Status = id.PropertyStatus(raw)
		if !filter.Status.IsValid() {
			httputil.WriteError(w, r, dErrors.Newf(dErrors.CodeBadRequest, "unknown status %q", raw))
			return
		}
	}
	page := httputil.ParsePage(q, httputil.DefaultPageSize)

	listings, total, err := h.properties.List(ctx, filter, models.ListQuery{
		Offset: page.Offset(), Limit: page.Limit, OrderBy: "created_at DESC",
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list own properties",
			"error", err,
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WritePage(w, models.NewListingResponses(listings), page.Result(total))
}

// HandleGet implements GET /api/properties/{id}?trackView=true|false.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propertyID, ok := h.propertyID(w, r)
	if !ok {
		return
	}

	trackView := r.URL.Query().Get("trackView") != "false"
	detail, err := h.properties.Get(ctx, propertyID, trackView)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to get property",
			"error", err,
			"property_id", propertyID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, models.NewDetailResponse(detail))
}

// HandleSimilar implements GET /api/properties/{id}/similar?limit=4.
func (h *Handler) HandleSimilar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propertyID, ok := h.propertyID(w, r)
	if !ok {
		return
	}

	limit := httputil.QueryInt(r.URL.Query(), "limit", 0)
	listings, err := h.properties.Similar(ctx, propertyID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to find similar properties",
			"error", err,
			"property_id", propertyID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, models.NewListingResponses(listings))
}

// HandleCreate implements POST /api/properties.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.CreatePropertyRequest](w, r, h.logger)
	if !ok {
		return
	}

	p, err := h.properties.Create(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to create property",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteMessage(w, http.StatusCreated, "Property created successfully", models.NewPropertyResponse(p))
}

// HandleUpdate implements PUT /api/properties/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propertyID, ok := h.propertyID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.UpdatePropertyRequest](w, r, h.logger)
	if !ok {
		return
	}

	p, err := h.properties.Update(ctx, propertyID, req.ToUpdate())
	if err != nil {
		h.logger.WarnContext(ctx, "failed to update property",
			"error", err,
			"property_id", propertyID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Property updated successfully", models.NewPropertyResponse(p))
}

// HandleDelete implements DELETE /api/properties/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propertyID, ok := h.propertyID(w, r)
	if !ok {
		return
	}

	if err := h.properties.Delete(ctx, propertyID); err != nil {
		h.logger.WarnContext(ctx, "failed to delete property",
			"error", err,
			"property_id", propertyID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Property deleted successfully", nil)
}

func (h *Handler) propertyID(w http.ResponseWriter, r *http.Request) (id.PropertyID, bool) {
	propertyID, err := id.ParsePropertyID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, dErrors.New(dErrors.CodeBadRequest, "Invalid property id"))
		return id.PropertyID{}, false
	}
	return propertyID, true
}

// ParseFilter reads the listing filters from the query string. Enum values are
// checked so a typo answers 400 instead of an empty page.
func ParseFilter(q url.Values) (models.Filter, error) {
	f := models.Filter{
		City:       q.Get("city"),
		State:      q.Get("state"),
		Search:     q.Get("search"),
		MinPrice:   httputil.QueryFloat(q, "minPrice"),
		MaxPrice:   httputil.QueryFloat(q, "maxPrice"),
		Bedrooms:   queryIntPtr(q, "bedrooms"),
		Bathrooms:  queryIntPtr(q, "bathrooms"),
		Amenities:  httputil.QueryCSV(q, "amenities"),
		IsFeatured: httputil.QueryBool(q, "isFeatured"),
	}
	if raw := q.Get("listingType"); raw != "" {
		f.ListingType = id.ListingType(raw)
		if !f.ListingType.IsValid() {
			return models.Filter{}, dErrors.Newf(dErrors.CodeBadRequest, "unknown listingType %q", raw)
		}
	}
	if raw := q.Get("propertyType"); raw != "" {
		f.Type = id.PropertyType(raw)
		if !f.Type.IsValid() {
			return models.Filter{}, dErrors.Newf(dErrors.CodeBadRequest, "unknown propertyType %q", raw)
		}
	}
	if raw := q.Get("userId"); raw != "" {
		userID, err := id.ParseUserID(raw)
		if err != nil {
			return models.Filter{}, dErrors.New(dErrors.CodeBadRequest, "Invalid userId")
		}
		f.PostedBy = &userID
	}
	return f, nil
}

func queryIntPtr(q url.Values, key string) *int {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return nil
	}
	return &v
}
