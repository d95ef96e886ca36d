package models

import (
	"strings"

	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	v "estatehub/pkg/validation"
)

type FileComplaintRequest struct {
	PropertyID  id.PropertyID `json:"propertyId"`
	Subject     string        `json:"subject" validate:"max=200"`
	Description string        `json:"description" validate:"max=5000"`
}

func (r *FileComplaintRequest) Sanitize() {
	r.Subject = strings.TrimSpace(r.Subject)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *FileComplaintRequest) Validate() error {
	if r.PropertyID.IsNil() || r.Subject == "" || r.Description == "" {
		return dErrors.New(dErrors.CodeValidation, "Property ID, subject and description are required")
	}
	return v.Validate(r)
}

type UpdateComplaintRequest struct {
	Status          id.ComplaintStatus `json:"status"`
	ResolutionNotes *string            `json:"resolutionNotes"`
}

func (r *UpdateComplaintRequest) Normalize() {
	r.Status = id.ComplaintStatus(strings.ToUpper(strings.TrimSpace(string(r.Status))))
	if r.ResolutionNotes != nil {
		notes := strings.TrimSpace(*r.ResolutionNotes)
		r.ResolutionNotes = &notes
	}
}

func (r *UpdateComplaintRequest) Validate() error {
	if r.Status == "" {
		return dErrors.New(dErrors.CodeValidation, "Status is required")
	}
	if !r.Status.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "Invalid complaint status")
	}
	return nil
}
