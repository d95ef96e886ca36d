package service

import (
	"context"
	"errors"

	"estatehub/internal/audit"
	"estatehub/internal/auth/models"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
)

// Profile assembles the caller's account with counts and optional sub-records.
func (s *Service) Profile(ctx context.Context, userID id.UserID) (*models.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, translateUserLookup(err, "Server error fetching profile")
	}
	counts, err := s.users.Counts(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error fetching profile")
	}
	verification, err := s.users.FindVerificationSummary(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error fetching profile")
	}
	agent, err := s.users.FindAgentProfile(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error fetching profile")
	}
	return &models.Profile{User: user, Counts: counts, Verification: verification, Agent: agent}, nil
}

// UpdateProfile applies self-service edits. A phone number held by another
// account is rejected with a conflict.
func (s *Service) UpdateProfile(ctx context.Context, userID id.UserID, update models.ProfileUpdate) (*models.User, error) {
	if update.Phone != nil && *update.Phone != "" {
		taken, err := s.users.PhoneTakenByOther(ctx, *update.Phone, userID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error updating profile")
		}
		if taken {
			return nil, dErrors.New(dErrors.CodeConflict, "Phone number is already in use")
		}
	}

	user, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "Phone number is already in use")
		}
		return nil, translateUserLookup(err, "Server error updating profile")
	}

	s.emitAudit(ctx, audit.Event{
		ActorID:    userID.String(),
		ActorRole:  string(user.Role),
		Action:     audit.ActionUserUpdated,
		TargetType: audit.TargetUser,
		TargetID:   userID.String(),
		Reason:     "self_service",
	})
	return user, nil
}

// ChangePassword verifies the current password, stores the new hash and ends
// every session of the user, including the current one.
func (s *Service) ChangePassword(ctx context.Context, userID id.UserID, req *models.ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return translateUserLookup(err, "Server error changing password")
	}
	if err := s.verifyPassword(req.CurrentPassword, user.PasswordHash); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "Current password is incorrect")
	}

	hash, err := s.hashPassword(req.NewPassword)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "Server error changing password")
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return translateUserLookup(err, "Server error changing password")
	}

	revoked, err := s.sessions.DeleteByUser(ctx, userID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "Server error changing password")
	}
	s.metrics.AddSessionsRevoked(revoked)
	s.emitAudit(ctx, audit.Event{
		ActorID:    userID.String(),
		ActorRole:  string(user.Role),
		Action:     audit.ActionPasswordChanged,
		TargetType: audit.TargetUser,
		TargetID:   userID.String(),
	})
	return nil
}
