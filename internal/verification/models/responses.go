package models

import (
	"time"

	id "estatehub/pkg/domain"
)

type ApplicantResponse struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Role      id.Role `json:"role"`
}

type VerificationResponse struct {
	ID           id.VerificationID     `json:"id"`
	UserID       id.UserID             `json:"userId"`
	DocumentType string                `json:"documentType"`
	DocumentURL  string                `json:"documentUrl"`
	Status       id.VerificationStatus `json:"status"`
	StatusReason *string               `json:"statusReason"`
	SubmittedAt  time.Time             `json:"submittedAt"`
	ReviewedAt   *time.Time            `json:"reviewedAt"`
	ReviewedBy   *id.UserID            `json:"reviewedBy"`
	User         *ApplicantResponse    `json:"user,omitempty"`
}

func NewVerificationResponse(v *Verification) VerificationResponse {
	return VerificationResponse{
		ID:           v.ID,
		UserID:       v.UserID,
		DocumentType: v.DocumentType,
		DocumentURL:  v.DocumentURL,
		Status:       v.Status,
		StatusReason: optional(v.StatusReason),
		SubmittedAt:  v.SubmittedAt,
		ReviewedAt:   v.ReviewedAt,
		ReviewedBy:   v.ReviewedBy,
	}
}

func NewDetailResponse(d *Detail) VerificationResponse {
	resp := NewVerificationResponse(&d.Verification)
	resp.User = &ApplicantResponse{
		FirstName: d.User.FirstName,
		LastName:  d.User.LastName,
		Email:     optional(d.User.Email),
		Phone:     optional(d.User.Phone),
		Role:      d.User.Role,
	}
	return resp
}

func NewDetailResponses(details []*Detail) []VerificationResponse {
	out := make([]VerificationResponse, 0, len(details))
	for _, d := range details {
		out = append(out, NewDetailResponse(d))
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
