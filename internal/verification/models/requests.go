package models

import (
	"strings"

	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	v "estatehub/pkg/validation"
)

type SubmitVerificationRequest struct {
	DocumentType string `json:"documentType" validate:"max=100"`
	DocumentURL  string `json:"documentUrl" validate:"url"`
}

func (r *SubmitVerificationRequest) Sanitize() {
	r.DocumentType = strings.TrimSpace(r.DocumentType)
	r.DocumentURL = strings.TrimSpace(r.DocumentURL)
}

func (r *SubmitVerificationRequest) Validate() error {
	if r.DocumentType == "" || r.DocumentURL == "" {
		return dErrors.New(dErrors.CodeValidation, "Document type and document URL are required")
	}
	return v.Validate(r)
}

type ReviewRequest struct {
	Status id.VerificationStatus `json:"status"`
	Reason string                `json:"reason"`
}

func (r *ReviewRequest) Sanitize() {
	r.Reason = strings.TrimSpace(r.Reason)
}

func (r *ReviewRequest) Normalize() {
	r.Status = id.VerificationStatus(strings.ToUpper(strings.TrimSpace(string(r.Status))))
}

func (r *ReviewRequest) Validate() error {
	if r.Status != id.VerificationVerified && r.Status != id.VerificationRejected {
		return dErrors.New(dErrors.CodeValidation, "Status must be VERIFIED or REJECTED")
	}
	if r.Status == id.VerificationRejected && r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "A reason is required when rejecting a verification")
	}
	return nil
}
