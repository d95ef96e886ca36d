package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"estatehub/internal/favorite/models"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/platform/httputil"
	"estatehub/pkg/requestcontext"
)

type Service interface {
	Add(ctx context.Context, userID id.UserID, propertyID id.PropertyID) (*models.Saved, error)
	Remove(ctx context.Context, userID id.UserID, propertyID id.PropertyID) error
	List(ctx context.Context, userID id.UserID, q models.ListQuery) ([]*models.Saved, int64, error)
	Status(ctx context.Context, userID id.UserID, propertyID id.PropertyID) (*models.Status, error)
}

// Handler serves /api/favorites. Every route requires an authenticated caller.
type Handler struct {
	favorites Service
	logger    *slog.Logger
}

func New(favorites Service, logger *slog.Logger) *Handler {
	return &Handler{favorites: favorites, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/", h.HandleAdd)
	r.Get("/", h.HandleList)
	r.Delete("/{propertyId}", h.HandleRemove)
	r.Get("/status/{propertyId}", h.HandleStatus)
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.AddFavoriteRequest](w, r, h.logger)
	if !ok {
		return
	}

	saved, err := h.favorites.Add(ctx, userID, req.PropertyID)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to add favorite",
			"error", err,
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteMessage(w, http.StatusCreated, "Property added to favorites", models.NewFavoriteResponse(saved))
}

func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, propertyID, ok := h.target(w, r)
	if !ok {
		return
	}

	if err := h.favorites.Remove(ctx, userID, propertyID); err != nil {
		h.logger.WarnContext(ctx, "failed to remove favorite",
			"error", err,
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Property removed from favorites", nil)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	page := httputil.ParsePage(r.URL.Query(), httputil.DefaultPageSize)

	saved, total, err := h.favorites.List(ctx, userID, models.ListQuery{Offset: page.Offset(), Limit: page.Limit})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list favorites",
			"error", err,
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WritePage(w, models.NewFavoriteResponses(saved), page.Result(total))
}

func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, propertyID, ok := h.target(w, r)
	if !ok {
		return
	}

	st, err := h.favorites.Status(ctx, userID, propertyID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, models.StatusResponse{IsFavorited: st.IsFavorited, FavoriteID: st.FavoriteID})
}

func (h *Handler) target(w http.ResponseWriter, r *http.Request) (id.UserID, id.PropertyID, bool) {
	userID, err := httputil.RequireUserID(r.Context(), h.logger)
	if err != nil {
		httputil.WriteError(w, r, err)
		return id.UserID{}, id.PropertyID{}, false
	}
	propertyID, err := id.ParsePropertyID(chi.URLParam(r, "propertyId"))
	if err != nil {
		httputil.WriteError(w, r, dErrors.New(dErrors.CodeBadRequest, "Invalid property id"))
		return id.UserID{}, id.PropertyID{}, false
	}
	return userID, propertyID, true
}
