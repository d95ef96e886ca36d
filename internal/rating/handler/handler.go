package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"estatehub/internal/rating/models"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/platform/httputil"
	"estatehub/pkg/requestcontext"
)

type Service interface {
	Submit(ctx context.Context, req *models.SubmitRatingRequest) (*models.Review, bool, error)
	ForProperty(ctx context.Context, propertyID id.PropertyID, q models.ListQuery) (*models.PropertyRatings, error)
	Delete(ctx context.Context, ratingID id.RatingID) error
	ForUser(ctx context.Context, userID id.UserID, q models.ListQuery) ([]*models.Rated, int64, error)
}

type Handler struct {
	ratings Service
	logger  *slog.Logger
}

func New(ratings Service, logger *slog.Logger) *Handler {
	return &Handler{ratings: ratings, logger: logger}
}

func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/property/{propertyId}", h.HandleForProperty)
}

func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Post("/", h.HandleSubmit)
	r.Get("/user", h.HandleForUser)
	r.Delete("/{ratingId}", h.HandleDelete)
}

// propertyRatingsResponse carries pagination inside data, next to the summary.
type propertyRatingsResponse struct {
	Ratings    []models.RatingResponse `json:"ratings"`
	Summary    models.SummaryResponse  `json:"summary"`
	Pagination httputil.Pagination     `json:"pagination"`
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.SubmitRatingRequest](w, r, h.logger)
	if !ok {
		return
	}

	review, created, err := h.ratings.Submit(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to submit rating",
			"error", err,
			"property_id", req.PropertyID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	if created {
		httputil.WriteMessage(w, http.StatusCreated, "Rating added successfully", models.NewReviewResponse(review))
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Rating updated successfully", models.NewReviewResponse(review))
}

func (h *Handler) HandleForProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propertyID, err := id.ParsePropertyID(chi.URLParam(r, "propertyId"))
	if err != nil {
		httputil.WriteError(w, r, dErrors.New(dErrors.CodeBadRequest, "Invalid property id"))
		return
	}
	page := httputil.ParsePage(r.URL.Query(), httputil.DefaultPageSize)

	result, err := h.ratings.ForProperty(ctx, propertyID, models.ListQuery{Offset: page.Offset(), Limit: page.Limit})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to fetch property ratings",
			"error", err,
			"property_id", propertyID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	resp := propertyRatingsResponse{
		Ratings:    make([]models.RatingResponse, 0, len(result.Reviews)),
		Summary:    models.NewSummaryResponse(result.Summary),
		Pagination: page.Result(result.Total),
	}
	for _, review := range result.Reviews {
		resp.Ratings = append(resp.Ratings, models.NewReviewResponse(review))
	}
	httputil.WriteData(w, http.StatusOK, resp)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ratingID, err := id.ParseRatingID(chi.URLParam(r, "ratingId"))
	if err != nil {
		httputil.WriteError(w, r, dErrors.New(dErrors.CodeBadRequest, "Invalid rating id"))
		return
	}

	if err := h.ratings.Delete(ctx, ratingID); err != nil {
		h.logger.WarnContext(ctx, "failed to delete rating",
			"error", err,
			"rating_id", ratingID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Rating deleted successfully", nil)
}

func (h *Handler) HandleForUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	page := httputil.ParsePage(r.URL.Query(), httputil.DefaultPageSize)

	rated, total, err := h.ratings.ForUser(ctx, userID, models.ListQuery{Offset: page.Offset(), Limit: page.Limit})
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WritePage(w, models.NewRatedResponses(rated), page.Result(total))
}
