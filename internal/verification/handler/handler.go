package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"estatehub/internal/verification/models"
	id "estatehub/pkg/domain"
	"estatehub/pkg/platform/httputil"
	"estatehub/pkg/requestcontext"
)

type Service interface {
	Submit(ctx context.Context, req *models.SubmitVerificationRequest) (*models.Verification, error)
	Mine(ctx context.Context, userID id.UserID) (*models.Verification, error)
}

// Handler serves the applicant side of /api/verifications.
type Handler struct {
	verifications Service
	logger        *slog.Logger
}

func New(verifications Service, logger *slog.Logger) *Handler {
	return &Handler{verifications: verifications, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/", h.HandleSubmit)
	r.Get("/mine", h.HandleMine)
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.SubmitVerificationRequest](w, r, h.logger)
	if !ok {
		return
	}

	v, err := h.verifications.Submit(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to submit verification",
			"error", err,
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteMessage(w, http.StatusCreated, "Verification request submitted successfully", models.NewVerificationResponse(v))
}

func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	v, err := h.verifications.Mine(ctx, userID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, models.NewVerificationResponse(v))
}
