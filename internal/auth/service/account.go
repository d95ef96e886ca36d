package service

import (
	"context"
	"errors"

	"estatehub/internal/audit"
	"estatehub/internal/auth/models"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

// Register creates a self-service account. The request must already be prepared
// (sanitized, normalized and validated).
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if err := s.ensureContactFree(ctx, req.Email, req.Phone); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error during registration")
	}

	user := &models.User{
		ID:                 id.NewUserID(),
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		Phone:              req.Phone,
		PasswordHash:       hash,
		Role:               req.Role,
		VerificationStatus: id.VerificationUnverified,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			// Lost a race with a concurrent registration.
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "Email or phone number is already in use")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error during registration")
	}

	s.metrics.IncUserRegistered(string(user.Role))
	s.emitAudit(ctx, audit.Event{
		ActorID:    user.ID.String(),
		ActorRole:  string(user.Role),
		Action:     audit.ActionUserRegistered,
		TargetType: audit.TargetUser,
		TargetID:   user.ID.String(),
	})
	return user, nil
}

func (s *Service) ensureContactFree(ctx context.Context, email, phone string) error {
	if email != "" {
		_, err := s.users.FindByEmail(ctx, email)
		switch {
		case err == nil:
			return dErrors.New(dErrors.CodeConflict, "Email is already in use")
		case !errors.Is(err, sentinel.ErrNotFound):
			return dErrors.Wrap(err, dErrors.CodeInternal, "Server error during registration")
		}
	}
	if phone != "" {
		_, err := s.users.FindByPhone(ctx, phone)
		switch {
		case err == nil:
			return dErrors.New(dErrors.CodeConflict, "Phone number is already in use")
		case !errors.Is(err, sentinel.ErrNotFound):
			return dErrors.Wrap(err, dErrors.CodeInternal, "Server error during registration")
		}
	}
	return nil
}

// Login verifies credentials, opens a session and issues an access token bound to it.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	user, err := s.lookupLogin(ctx, req)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			s.metrics.IncLogin(false)
			s.emitAudit(ctx, audit.Event{
				Action:     audit.ActionLoginFailed,
				TargetType: audit.TargetUser,
				Reason:     "unknown_account",
			})
		}
		return nil, err
	}

	if err := s.verifyPassword(req.Password, user.PasswordHash); err != nil {
		s.metrics.IncLogin(false)
		s.emitAudit(ctx, audit.Event{
			ActorID:    user.ID.String(),
			Action:     audit.ActionLoginFailed,
			TargetType: audit.TargetUser,
			TargetID:   user.ID.String(),
			Reason:     "bad_password",
		})
		return nil, invalidCredentials(nil)
	}

	now := requestcontext.Now(ctx)
	sessionID := id.NewSessionID()
	issued, err := s.jwt.GenerateAccessToken(ctx, user.ID, sessionID, user.Role)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error during login")
	}

	device, _ := requestcontext.Device(ctx)
	session := &models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		TokenID:   issued.JTI,
		Device:    device,
		IPAddress: requestcontext.ClientIP(ctx),
		CreatedAt: now,
		ExpiresAt: issued.ExpiresAt,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error during login")
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.logger.WarnContext(ctx, "failed to stamp last login",
			"error", err,
			"user_id", user.ID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
	} else {
		user.LastLogin = &now
	}

	s.metrics.IncLogin(true)
	s.emitAudit(ctx, audit.Event{
		ActorID:    user.ID.String(),
		ActorRole:  string(user.Role),
		Action:     audit.ActionLoginSucceeded,
		TargetType: audit.TargetUser,
		TargetID:   user.ID.String(),
	})

	return &models.LoginResult{
		User:      models.NewUserResponse(user),
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}

func (s *Service) lookupLogin(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	if req.Email != "" {
		user, err = s.users.FindByEmail(ctx, req.Email)
	} else {
		user, err = s.users.FindByPhone(ctx, req.Phone)
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, invalidCredentials(err)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error during login")
	}
	return user, nil
}

// Logout deletes the caller's current session, which invalidates its token.
func (s *Service) Logout(ctx context.Context, userID id.UserID, sessionID id.SessionID) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "Server error during logout")
	}
	s.metrics.AddSessionsRevoked(1)
	s.emitAudit(ctx, audit.Event{
		ActorID:    userID.String(),
		Action:     audit.ActionLoggedOut,
		TargetType: audit.TargetUser,
		TargetID:   userID.String(),
	})
	return nil
}

// ResolveSession backs the auth guard: the session must exist, belong to
// userID and be unexpired. It returns the user's current role, so a role change
// takes effect on the next request.
func (s *Service) ResolveSession(ctx context.Context, userID id.UserID, sessionID id.SessionID) (id.Role, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.Wrap(err, dErrors.CodeUnauthorized, "session not found")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "session lookup failed")
	}
	if session.UserID != userID {
		return "", dErrors.New(dErrors.CodeUnauthorized, "session does not belong to token subject")
	}
	if session.IsExpired(requestcontext.Now(ctx)) {
		return "", dErrors.New(dErrors.CodeUnauthorized, "session expired")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.Wrap(err, dErrors.CodeUnauthorized, "user no longer exists")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "session lookup failed")
	}
	return user.Role, nil
}
