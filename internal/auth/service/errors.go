package service

import (
	"errors"

	"estatehub/internal/sentinel"
	dErrors "estatehub/pkg/domain-errors"
)

// Store error translation. Stores return sentinel errors; the service turns
// them into domain errors exactly once.

func translateUserLookup(err error, internalMsg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "User not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, internalMsg)
}

// invalidCredentials hides whether the account or the password was wrong.
func invalidCredentials(cause error) error {
	if cause == nil {
		return dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials")
	}
	return &dErrors.Error{Code: dErrors.CodeUnauthorized, Message: "Invalid credentials", Err: cause}
}
