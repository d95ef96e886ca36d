package models

import (
	"time"

	id "estatehub/pkg/domain"
)

// Verification is a user's identity-document submission. Each user has at
// most one; resubmitting replaces the document and resets it to PENDING.
type Verification struct {
	ID           id.VerificationID
	UserID       id.UserID
	DocumentType string
	DocumentURL  string
	Status       id.VerificationStatus
	StatusReason string
	SubmittedAt  time.Time
	ReviewedAt   *time.Time
	ReviewedBy   *id.UserID
}

type Applicant struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      id.Role
}

// Detail is a verification joined with the applicant, as listed for admins.
type Detail struct {
	Verification
	User Applicant
}

type Filter struct {
	Status id.VerificationStatus
}

type ListQuery struct {
	Offset int
	Limit  int
}

// Decision is an admin's verdict on a pending verification.
type Decision struct {
	Status     id.VerificationStatus
	Reason     string
	ReviewedBy id.UserID
	At         time.Time
}
