package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"estatehub/internal/complaint/models"
	"estatehub/pkg/platform/httputil"
	"estatehub/pkg/requestcontext"
)

type Service interface {
	File(ctx context.Context, req *models.FileComplaintRequest) (*models.Detail, error)
	List(ctx context.Context, filter models.Filter, q models.ListQuery) ([]*models.Detail, int64, error)
}

// Handler serves the client side of /api/complaints. Admin review lives
// under /api/admin.
type Handler struct {
	complaints Service
	logger     *slog.Logger
}

func New(complaints Service, logger *slog.Logger) *Handler {
	return &Handler{complaints: complaints, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/", h.HandleFile)
	r.Get("/mine", h.HandleMine)
}

func (h *Handler) HandleFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, err := httputil.RequireUserID(ctx, h.logger); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.FileComplaintRequest](w, r, h.logger)
	if !ok {
		return
	}

	detail, err := h.complaints.File(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to file complaint",
			"error", err,
			"property_id", req.PropertyID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteMessage(w, http.StatusCreated, "Complaint submitted successfully", models.NewDetailResponse(detail))
}

func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	page := httputil.ParsePage(r.URL.Query(), httputil.DefaultPageSize)

	details, total, err := h.complaints.List(ctx, models.Filter{ClientID: userID}, models.ListQuery{Offset: page.Offset(), Limit: page.Limit})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list complaints",
			"error", err,
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WritePage(w, models.NewDetailResponses(details), page.Result(total))
}
