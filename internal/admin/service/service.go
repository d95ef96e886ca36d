package service

import (
	"context"
	"errors"
	"log/slog"

	"estatehub/internal/admin/dashboard"
	"estatehub/internal/audit"
	authmodels "estatehub/internal/auth/models"
	complaintmodels "estatehub/internal/complaint/models"
	"estatehub/internal/platform/metrics"
	propertymodels "estatehub/internal/property/models"
	"estatehub/internal/sentinel"
	verificationmodels "estatehub/internal/verification/models"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

const DefaultAuditLimit = 50

type Dashboard interface {
	Snapshot(ctx context.Context) (*dashboard.Snapshot, error)
}

// UserStore is the slice of the auth user store that administrators drive.
// UpdateAdminFields and Delete wrap sentinel.ErrNotFound.
type UserStore interface {
	List(ctx context.Context, filter authmodels.UserFilter, q authmodels.ListQuery) ([]*authmodels.User, int64, error)
	UpdateAdminFields(ctx context.Context, userID id.UserID, update authmodels.AdminUserUpdate) (*authmodels.User, error)
	Delete(ctx context.Context, userID id.UserID) error
}

type Profiles interface {
	Profile(ctx context.Context, userID id.UserID) (*authmodels.Profile, error)
}

type SessionRevoker interface {
	RevokeAll(ctx context.Context, userID id.UserID) (int, error)
}

type Verifications interface {
	List(ctx context.Context, filter verificationmodels.Filter, q verificationmodels.ListQuery) ([]*verificationmodels.Detail, int64, error)
	Review(ctx context.Context, verificationID id.VerificationID, req *verificationmodels.ReviewRequest) (*verificationmodels.Detail, error)
}

type Complaints interface {
	List(ctx context.Context, filter complaintmodels.Filter, q complaintmodels.ListQuery) ([]*complaintmodels.Detail, int64, error)
	Update(ctx context.Context, complaintID id.ComplaintID, req *complaintmodels.UpdateComplaintRequest) (*complaintmodels.Detail, error)
}

// Properties emits its own audit events for updates and deletes.
type Properties interface {
	List(ctx context.Context, f propertymodels.Filter, q propertymodels.ListQuery) ([]*propertymodels.Listing, int64, error)
	Update(ctx context.Context, propertyID id.PropertyID, update propertymodels.Update) (*propertymodels.Property, error)
	Delete(ctx context.Context, propertyID id.PropertyID) error
}

type AuditLog interface {
	Emit(ctx context.Context, event audit.Event) error
	Recent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Service backs /api/admin. Every mutation is attributed to the calling admin
// in the audit log.
type Service struct {
	dashboard     Dashboard
	users         UserStore
	profiles      Profiles
	sessions      SessionRevoker
	verifications Verifications
	complaints    Complaints
	properties    Properties
	auditLog      AuditLog
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

// Deps groups the collaborators New requires.
type Deps struct {
	Dashboard     Dashboard
	Users         UserStore
	Profiles      Profiles
	Sessions      SessionRevoker
	Verifications Verifications
	Complaints    Complaints
	Properties    Properties
	AuditLog      AuditLog
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(deps Deps, opts ...Option) (*Service, error) {
	switch {
	case deps.Dashboard == nil:
		return nil, errors.New("dashboard is required")
	case deps.Users == nil:
		return nil, errors.New("user store is required")
	case deps.Profiles == nil:
		return nil, errors.New("profiles are required")
	case deps.Verifications == nil:
		return nil, errors.New("verifications are required")
	case deps.Complaints == nil:
		return nil, errors.New("complaints are required")
	case deps.Properties == nil:
		return nil, errors.New("properties are required")
	case deps.AuditLog == nil:
		return nil, errors.New("audit log is required")
	}

	s := &Service{
		dashboard:     deps.Dashboard,
		users:         deps.Users,
		profiles:      deps.Profiles,
		sessions:      deps.Sessions,
		verifications: deps.Verifications,
		complaints:    deps.Complaints,
		properties:    deps.Properties,
		auditLog:      deps.AuditLog,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) Dashboard(ctx context.Context) (*dashboard.Snapshot, error) {
	snap, err := s.dashboard.Snapshot(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error fetching dashboard stats")
	}
	return snap, nil
}

func (s *Service) ListUsers(ctx context.Context, filter authmodels.UserFilter, q authmodels.ListQuery) ([]*authmodels.User, int64, error) {
	users, total, err := s.users.List(ctx, filter, q)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "Server error fetching users")
	}
	return users, total, nil
}

func (s *Service) GetUser(ctx context.Context, userID id.UserID) (*authmodels.Profile, error) {
	return s.profiles.Profile(ctx, userID)
}

// UpdateUser applies an administrator's edit. Only a SUPER_ADMIN may grant
// the SUPER_ADMIN role.
func (s *Service) UpdateUser(ctx context.Context, userID id.UserID, update authmodels.AdminUserUpdate) (*authmodels.User, error) {
	if update.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "No update data provided.")
	}
	if update.Role == id.RoleSuperAdmin && requestcontext.Role(ctx) != id.RoleSuperAdmin {
		return nil, dErrors.New(dErrors.CodeForbidden, "Only a super admin can grant the SUPER_ADMIN role")
	}

	user, err := s.users.UpdateAdminFields(ctx, userID, update)
	if err != nil {
		return nil, translate(err, "User not found", "Server error updating user")
	}

	reason := ""
	if update.Role != "" {
		reason = "role=" + string(update.Role)
	}
	s.record(ctx, audit.ActionUserUpdated, audit.TargetUser, userID.String(), reason)
	return user, nil
}

// DeleteUser removes an account and revokes its sessions. Administrators
// cannot delete themselves.
func (s *Service) DeleteUser(ctx context.Context, userID id.UserID) error {
	if userID == requestcontext.UserID(ctx) {
		return dErrors.New(dErrors.CodeBadRequest, "Admin cannot delete their own account.")
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return translate(err, "User not found", "Server error deleting user")
	}

	if s.sessions != nil {
		revoked, err := s.sessions.RevokeAll(ctx, userID)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to revoke sessions of deleted user",
				"error", err,
				"user_id", userID.String(),
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		s.metrics.AddSessionsRevoked(revoked)
	}

	s.record(ctx, audit.ActionUserDeleted, audit.TargetUser, userID.String(), "")
	return nil
}

func (s *Service) ListVerifications(ctx context.Context, filter verificationmodels.Filter, q verificationmodels.ListQuery) ([]*verificationmodels.Detail, int64, error) {
	return s.verifications.List(ctx, filter, q)
}

func (s *Service) ReviewVerification(ctx context.Context, verificationID id.VerificationID, req *verificationmodels.ReviewRequest) (*verificationmodels.Detail, error) {
	detail, err := s.verifications.Review(ctx, verificationID, req)
	if err != nil {
		return nil, err
	}
	s.record(ctx, audit.ActionVerificationReviewed, audit.TargetVerification, verificationID.String(), string(req.Status))
	return detail, nil
}

func (s *Service) ListComplaints(ctx context.Context, filter complaintmodels.Filter, q complaintmodels.ListQuery) ([]*complaintmodels.Detail, int64, error) {
	return s.complaints.List(ctx, filter, q)
}

func (s *Service) UpdateComplaint(ctx context.Context, complaintID id.ComplaintID, req *complaintmodels.UpdateComplaintRequest) (*complaintmodels.Detail, error) {
	detail, err := s.complaints.Update(ctx, complaintID, req)
	if err != nil {
		return nil, err
	}
	s.record(ctx, audit.ActionComplaintUpdated, audit.TargetComplaint, complaintID.String(), string(req.Status))
	return detail, nil
}

// ListProperties lists listings in every status unless the filter narrows it.
func (s *Service) ListProperties(ctx context.Context, filter propertymodels.Filter, q propertymodels.ListQuery) ([]*propertymodels.Listing, int64, error) {
	filter.AnyStatus = true
	return s.properties.List(ctx, filter, q)
}

func (s *Service) UpdateProperty(ctx context.Context, propertyID id.PropertyID, update propertymodels.Update) (*propertymodels.Property, error) {
	p, err := s.properties.Update(ctx, propertyID, update)
	if err != nil {
		return nil, err
	}
	s.metrics.IncAdminAction(string(audit.ActionPropertyUpdated))
	return p, nil
}

func (s *Service) DeleteProperty(ctx context.Context, propertyID id.PropertyID) error {
	if err := s.properties.Delete(ctx, propertyID); err != nil {
		return err
	}
	s.metrics.IncAdminAction(string(audit.ActionPropertyDeleted))
	return nil
}

func (s *Service) RecentAudit(ctx context.Context, limit int) ([]audit.Event, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	events, err := s.auditLog.Recent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error fetching audit events")
	}
	if events == nil {
		events = []audit.Event{}
	}
	return events, nil
}

// record emits the audit event for an admin mutation. Audit failures never
// fail the request.
func (s *Service) record(ctx context.Context, action audit.Action, targetType, targetID, reason string) {
	s.metrics.IncAdminAction(string(action))
	event := audit.Event{
		Timestamp:  requestcontext.Now(ctx),
		ActorID:    requestcontext.UserID(ctx).String(),
		ActorRole:  string(requestcontext.Role(ctx)),
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     reason,
		RequestID:  requestcontext.RequestID(ctx),
	}
	s.logger.InfoContext(ctx, string(action),
		"log_type", "audit",
		"actor_id", event.ActorID,
		"target_id", targetID,
		"request_id", event.RequestID,
	)
	if err := s.auditLog.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"error", err,
			"action", string(action),
			"request_id", event.RequestID,
		)
	}
}

func translate(err error, notFound, internal string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, notFound)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, internal)
}
