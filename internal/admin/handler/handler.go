package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"estatehub/internal/admin/dashboard"
	adminmodels "estatehub/internal/admin/models"
	"estatehub/internal/audit"
	authmodels "estatehub/internal/auth/models"
	complaintmodels "estatehub/internal/complaint/models"
	propertyhandler "estatehub/internal/property/handler"
	propertymodels "estatehub/internal/property/models"
	verificationmodels "estatehub/internal/verification/models"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/platform/httputil"
	"estatehub/pkg/requestcontext"
)

// UserSortFields is the sortBy allow-list for the admin user listing.
var UserSortFields = httputil.SortFields{
	"createdAt": "created_at",
	"lastLogin": "last_login",
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"role":      "role",
}

type Service interface {
	Dashboard(ctx context.Context) (*dashboard.Snapshot, error)
	ListUsers(ctx context.Context, filter authmodels.UserFilter, q authmodels.ListQuery) ([]*authmodels.User, int64, error)
	GetUser(ctx context.Context, userID id.UserID) (*authmodels.Profile, error)
	UpdateUser(ctx context.Context, userID id.UserID, update authmodels.AdminUserUpdate) (*authmodels.User, error)
	DeleteUser(ctx context.Context, userID id.UserID) error
	ListVerifications(ctx context.Context, filter verificationmodels.Filter, q verificationmodels.ListQuery) ([]*verificationmodels.Detail, int64, error)
	ReviewVerification(ctx context.Context, verificationID id.VerificationID, req *verificationmodels.ReviewRequest) (*verificationmodels.Detail, error)
	ListComplaints(ctx context.Context, filter complaintmodels.Filter, q complaintmodels.ListQuery) ([]*complaintmodels.Detail, int64, error)
	UpdateComplaint(ctx context.Context, complaintID id.ComplaintID, req *complaintmodels.UpdateComplaintRequest) (*complaintmodels.Detail, error)
	ListProperties(ctx context.Context, filter propertymodels.Filter, q propertymodels.ListQuery) ([]*propertymodels.Listing, int64, error)
	UpdateProperty(ctx context.Context, propertyID id.PropertyID, update propertymodels.Update) (*propertymodels.Property, error)
	DeleteProperty(ctx context.Context, propertyID id.PropertyID) error
	RecentAudit(ctx context.Context, limit int) ([]audit.Event, error)
}

// Handler serves /api/admin. The router mounting it must already require an
// ADMIN or SUPER_ADMIN caller.
type Handler struct {
	admin  Service
	logger *slog.Logger
}

func New(admin Service, logger *slog.Logger) *Handler {
	return &Handler{admin: admin, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard", h.HandleDashboard)

	r.Get("/users", h.HandleListUsers)
	r.Get("/users/{id}", h.HandleGetUser)
	r.Put("/users/{id}", h.HandleUpdateUser)
	r.Delete("/users/{id}", h.HandleDeleteUser)

	r.Get("/verifications", h.HandleListVerifications)
	r.Put("/verifications/{id}/review", h.HandleReviewVerification)

	r.Get("/complaints", h.HandleListComplaints)
	r.Put("/complaints/{id}", h.HandleUpdateComplaint)

	r.Get("/properties", h.HandleListProperties)
	r.Put("/properties/{id}", h.HandleUpdateProperty)
	r.Delete("/properties/{id}", h.HandleDeleteProperty)

	r.Get("/audit/recent", h.HandleRecentAudit)
}

// HandleDashboard implements GET /api/admin/dashboard.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap, err := h.admin.Dashboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build dashboard snapshot",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, snap)
}

func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter, err := parseUserFilter(q)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	page := httputil.ParsePage(q, httputil.DefaultPageSize)
	sort, err := httputil.ParseSort(q, UserSortFields, "createdAt")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	users, total, err := h.admin.ListUsers(ctx, filter, authmodels.ListQuery{
		Offset: page.Offset(), Limit: page.Limit, OrderBy: sort.Clause(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list users",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	data := make([]authmodels.UserResponse, 0, len(users))
	for _, u := range users {
		data = append(data, authmodels.NewUserResponse(u))
	}
	httputil.WritePage(w, data, page.Result(total))
}

func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := pathID(w, r, id.ParseUserID, "Invalid user id")
	if !ok {
		return
	}

	profile, err := h.admin.GetUser(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to fetch user",
			"error", err,
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, authmodels.NewProfileResponse(profile))
}

func (h *Handler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := pathID(w, r, id.ParseUserID, "Invalid user id")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[adminmodels.UpdateUserRequest](w, r, h.logger)
	if !ok {
		return
	}

	user, err := h.admin.UpdateUser(ctx, userID, req.ToUpdate())
	if err != nil {
		h.logger.WarnContext(ctx, "failed to update user",
			"error", err,
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "User updated successfully", authmodels.NewUserResponse(user))
}

func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := pathID(w, r, id.ParseUserID, "Invalid user id")
	if !ok {
		return
	}

	if err := h.admin.DeleteUser(ctx, userID); err != nil {
		h.logger.WarnContext(ctx, "failed to delete user",
			"error", err,
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "User deleted successfully", nil)
}

func (h *Handler) HandleListVerifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var filter verificationmodels.Filter
	if raw := q.Get("status"); raw != "" {
		filter.Status = id.VerificationStatus(raw)
		if !filter.Status.IsValid() {
			httputil.WriteError(w, r, dErrors.Newf(dErrors.CodeBadRequest, "unknown verification status %q", raw))
			return
		}
	}
	page := httputil.ParsePage(q, httputil.DefaultPageSize)

	details, total, err := h.admin.ListVerifications(ctx, filter, verificationmodels.ListQuery{
		Offset: page.Offset(), Limit: page.Limit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list verifications",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WritePage(w, verificationmodels.NewDetailResponses(details), page.Result(total))
}

func (h *Handler) HandleReviewVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	verificationID, ok := pathID(w, r, id.ParseVerificationID, "Invalid verification id")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[verificationmodels.ReviewRequest](w, r, h.logger)
	if !ok {
		return
	}

	detail, err := h.admin.ReviewVerification(ctx, verificationID, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to review verification",
			"error", err,
			"verification_id", verificationID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, reviewMessage(req.Status), verificationmodels.NewDetailResponse(detail))
}

func reviewMessage(status id.VerificationStatus) string {
	if status == id.VerificationRejected {
		return "User verification has been rejected."
	}
	return "User verification has been verified."
}

func (h *Handler) HandleListComplaints(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var filter complaintmodels.Filter
	if raw := q.Get("status"); raw != "" {
		filter.Status = id.ComplaintStatus(raw)
		if !filter.Status.IsValid() {
			httputil.WriteError(w, r, dErrors.Newf(dErrors.CodeBadRequest, "unknown complaint status %q", raw))
			return
		}
	}
	page := httputil.ParsePage(q, httputil.DefaultPageSize)

	details, total, err := h.admin.ListComplaints(ctx, filter, complaintmodels.ListQuery{
		Offset: page.Offset(), Limit: page.Limit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list complaints",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WritePage(w, complaintmodels.NewDetailResponses(details), page.Result(total))
}

func (h *Handler) HandleUpdateComplaint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	complaintID, ok := pathID(w, r, id.ParseComplaintID, "Invalid complaint id")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[complaintmodels.UpdateComplaintRequest](w, r, h.logger)
	if !ok {
		return
	}

	detail, err := h.admin.UpdateComplaint(ctx, complaintID, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to update complaint",
			"error", err,
			"complaint_id", complaintID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Complaint updated successfully", complaintmodels.NewDetailResponse(detail))
}

// HandleListProperties implements GET /api/admin/properties. It takes the
// public listing filters and sort keys but spans every status.
func (h *Handler) HandleListProperties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter, err := propertyhandler.ParseFilter(q)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if raw := q.Get("status"); raw != "" {
		filter.Status = id.PropertyStatus(raw)
		if !filter.Status.IsValid() {
			httputil.WriteError(w, r, dErrors.Newf(dErrors.CodeBadRequest, "unknown status %q", raw))
			return
		}
	}
	page := httputil.ParsePage(q, httputil.DefaultPageSize)
	sort, err := httputil.ParseSort(q, propertyhandler.SortFields, "createdAt")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	listings, total, err := h.admin.ListProperties(ctx, filter, propertymodels.ListQuery{
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
	httputil.WritePage(w, propertymodels.NewListingResponses(listings), page.Result(total))
}

func (h *Handler) HandleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propertyID, ok := pathID(w, r, id.ParsePropertyID, "Invalid property id")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[propertymodels.UpdatePropertyRequest](w, r, h.logger)
	if !ok {
		return
	}

	p, err := h.admin.UpdateProperty(ctx, propertyID, req.ToUpdate())
	if err != nil {
		h.logger.WarnContext(ctx, "failed to update property",
			"error", err,
			"property_id", propertyID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Property updated successfully", propertymodels.NewPropertyResponse(p))
}

func (h *Handler) HandleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propertyID, ok := pathID(w, r, id.ParsePropertyID, "Invalid property id")
	if !ok {
		return
	}

	if err := h.admin.DeleteProperty(ctx, propertyID); err != nil {
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

// HandleRecentAudit implements GET /api/admin/audit/recent?limit=N.
func (h *Handler) HandleRecentAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := httputil.QueryInt(r.URL.Query(), "limit", 0)

	events, err := h.admin.RecentAudit(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get recent audit events",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, events)
}

func parseUserFilter(q url.Values) (authmodels.UserFilter, error) {
	f := authmodels.UserFilter{Search: q.Get("search")}
	if raw := q.Get("role"); raw != "" {
		f.Role = id.Role(raw)
		if !f.Role.IsValid() {
			return f, dErrors.Newf(dErrors.CodeBadRequest, "unknown role %q", raw)
		}
	}
	if raw := q.Get("verificationStatus"); raw != "" {
		f.VerificationStatus = id.VerificationStatus(raw)
		if !f.VerificationStatus.IsValid() {
			return f, dErrors.Newf(dErrors.CodeBadRequest, "unknown verification status %q", raw)
		}
	}
	return f, nil
}

func pathID[T any](w http.ResponseWriter, r *http.Request, parse func(string) (T, error), message string) (T, bool) {
	v, err := parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, dErrors.New(dErrors.CodeBadRequest, message))
		var zero T
		return zero, false
	}
	return v, true
}
