package models

import (
	"strings"

	authmodels "estatehub/internal/auth/models"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	s "estatehub/pkg/string"
	v "estatehub/pkg/validation"
)

// UpdateUserRequest is PUT /api/admin/users/{id}. Empty fields are left alone.
type UpdateUserRequest struct {
	FirstName          string                `json:"firstName" validate:"max=100"`
	LastName           string                `json:"lastName" validate:"max=100"`
	Role               id.Role               `json:"role"`
	VerificationStatus id.VerificationStatus `json:"verificationStatus"`
}

func (r *UpdateUserRequest) Sanitize() {
	s.TrimStrings(&r.FirstName, &r.LastName)
}

func (r *UpdateUserRequest) Normalize() {
	r.Role = id.Role(strings.ToUpper(strings.TrimSpace(string(r.Role))))
	r.VerificationStatus = id.VerificationStatus(strings.ToUpper(strings.TrimSpace(string(r.VerificationStatus))))
}

func (r *UpdateUserRequest) Validate() error {
	if r.FirstName == "" && r.LastName == "" && r.Role == "" && r.VerificationStatus == "" {
		return dErrors.New(dErrors.CodeBadRequest, "No update data provided.")
	}
	if r.Role != "" && !r.Role.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown role %q", r.Role)
	}
	if r.VerificationStatus != "" && !r.VerificationStatus.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown verification status %q", r.VerificationStatus)
	}
	return v.Validate(r)
}

func (r *UpdateUserRequest) ToUpdate() authmodels.AdminUserUpdate {
	return authmodels.AdminUserUpdate{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Role:               r.Role,
		VerificationStatus: r.VerificationStatus,
	}
}
