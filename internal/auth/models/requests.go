package models

import (
	"slices"
	"strings"

	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	s "estatehub/pkg/string"
	v "estatehub/pkg/validation"
)

const MinPasswordLength = 6

type RegisterRequest struct {
	FirstName string  `json:"firstName" validate:"required,notblank,max=100"`
	LastName  string  `json:"lastName" validate:"required,notblank,max=100"`
	Email     string  `json:"email" validate:"omitempty,email,max=255"`
	Phone     string  `json:"phone" validate:"omitempty,phone"`
	Password  string  `json:"password" validate:"required,min=6,max=128"`
	Role      id.Role `json:"role"`
}

func (r *RegisterRequest) Sanitize() {
	s.TrimStrings(&r.FirstName, &r.LastName, &r.Email, &r.Phone)
}

// Normalize lowercases the email and downgrades any role a visitor may not pick
// to CLIENT.
func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(r.Email)
	r.Role = id.Role(strings.ToUpper(strings.TrimSpace(string(r.Role))))
	if !slices.Contains(id.SelfServiceRoles, r.Role) {
		r.Role = id.RoleClient
	}
}

func (r *RegisterRequest) Validate() error {
	if r.Email == "" && r.Phone == "" {
		return dErrors.New(dErrors.CodeValidation, "Please provide an email or phone number")
	}
	if len(r.Password) < MinPasswordLength && r.Password != "" {
		return dErrors.New(dErrors.CodeValidation, "Password must be at least 6 characters long")
	}
	return v.Validate(r)
}

// LoginRequest identifies the account by email or phone.
type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Sanitize() {
	s.TrimStrings(&r.Email, &r.Phone)
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(r.Email)
}

func (r *LoginRequest) Validate() error {
	if (r.Email == "" && r.Phone == "") || r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "Please provide your email or phone and password")
	}
	return v.Validate(r)
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,max=2048"`
}

func (r *UpdateProfileRequest) Sanitize() {
	r.FirstName = s.TrimPtr(r.FirstName)
	r.LastName = s.TrimPtr(r.LastName)
	r.Phone = s.TrimPtr(r.Phone)
	r.AvatarURL = s.TrimPtr(r.AvatarURL)
}

func (r *UpdateProfileRequest) Validate() error {
	if err := v.Validate(r); err != nil {
		return err
	}
	if r.Phone != nil && *r.Phone != "" && !v.IsPhone(*r.Phone) {
		return dErrors.New(dErrors.CodeValidation, "phone must be a valid phone number")
	}
	return nil
}

// ToUpdate drops empty names; blank first or last names are ignored, matching
// the profile form which always sends every field.
func (r *UpdateProfileRequest) ToUpdate() ProfileUpdate {
	u := ProfileUpdate{Phone: r.Phone, AvatarURL: r.AvatarURL}
	if r.FirstName != nil && *r.FirstName != "" {
		u.FirstName = r.FirstName
	}
	if r.LastName != nil && *r.LastName != "" {
		u.LastName = r.LastName
	}
	return u
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r *ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" || r.NewPassword == "" {
		return dErrors.New(dErrors.CodeValidation, "Please provide both current and new password")
	}
	if len(r.NewPassword) < MinPasswordLength {
		return dErrors.New(dErrors.CodeValidation, "New password must be at least 6 characters long")
	}
	return nil
}
