package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"estatehub/internal/auth/models"
	id "estatehub/pkg/domain"
	"estatehub/pkg/platform/httputil"
	"estatehub/pkg/requestcontext"
)

// Service defines the account operations exposed over HTTP.
type Service interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error)
	Logout(ctx context.Context, userID id.UserID, sessionID id.SessionID) error
	Profile(ctx context.Context, userID id.UserID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID id.UserID, update models.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, userID id.UserID, req *models.ChangePasswordRequest) error
}

// Handler serves the /api/users account endpoints.
type Handler struct {
	auth   Service
	logger *slog.Logger
}

func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// RegisterPublic mounts the endpoints that need no token.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
}

// RegisterAuthenticated mounts the endpoints that run behind RequireAuth.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Post("/logout", h.HandleLogout)
	r.Get("/profile", h.HandleGetProfile)
	r.Put("/profile", h.HandleUpdateProfile)
	r.Put("/change-password", h.HandleChangePassword)
}

// HandleRegister implements POST /api/users/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.RegisterRequest](w, r, h.logger)
	if !ok {
		return
	}

	user, err := h.auth.Register(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "registration failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "user registered",
		"user_id", user.ID.String(),
		"role", user.Role,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteMessage(w, http.StatusCreated, "User registered successfully", models.NewUserResponse(user))
}

// HandleLogin implements POST /api/users/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.LoginRequest](w, r, h.logger)
	if !ok {
		return
	}

	res, err := h.auth.Login(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Login successful", res)
}

// HandleLogout implements POST /api/users/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	if err := h.auth.Logout(ctx, userID, requestcontext.SessionID(ctx)); err != nil {
		h.logger.ErrorContext(ctx, "logout failed",
			"error", err,
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Successfully logged out", nil)
}

// HandleGetProfile implements GET /api/users/profile.
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	profile, err := h.auth.Profile(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load profile",
			"error", err,
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, models.NewProfileResponse(profile))
}

// HandleUpdateProfile implements PUT /api/users/profile.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.UpdateProfileRequest](w, r, h.logger)
	if !ok {
		return
	}

	user, err := h.auth.UpdateProfile(ctx, userID, req.ToUpdate())
	if err != nil {
		h.logger.WarnContext(ctx, "profile update failed",
			"error", err,
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Profile updated successfully", models.NewUserResponse(user))
}

// HandleChangePassword implements PUT /api/users/change-password. Every
// session of the user ends, including the one making the request.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.ChangePasswordRequest](w, r, h.logger)
	if !ok {
		return
	}

	if err := h.auth.ChangePassword(ctx, userID, req); err != nil {
		h.logger.WarnContext(ctx, "password change failed",
			"error", err,
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Password changed successfully. Please log in again.", nil)
}
