package models

import (
	"strings"
	"time"

	id "estatehub/pkg/domain"
)

// User is a marketplace account. Email and Phone are empty when absent; at
// least one of them is always set.
type User struct {
	ID                 id.UserID
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	PasswordHash       string
	Role               id.Role
	VerificationStatus id.VerificationStatus
	IsEmailVerified    bool
	AvatarURL          string
	LastLogin          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// FullName joins first and last name, trimmed.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// AgentProfile holds the extra fields of AGENT accounts.
type AgentProfile struct {
	UserID      id.UserID
	Experience  int
	Specialties []string
}

// Session backs one issued access token. Logging out deletes it, which makes
// the token unusable even before it expires.
type Session struct {
	ID        id.SessionID
	UserID    id.UserID
	TokenID   string
	Device    string
	IPAddress string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// UserCounts summarizes a user's footprint on the marketplace.
type UserCounts struct {
	PropertiesPosted  int64
	PropertiesManaged int64
	Ratings           int64
	Favorites         int64
	Complaints        int64
}

// VerificationSummary is the user's identity verification request, if any.
type VerificationSummary struct {
	Status       id.VerificationStatus
	StatusReason string
	SubmittedAt  time.Time
	ReviewedAt   *time.Time
}

// ProfileUpdate carries optional self-service changes. Nil leaves a field alone;
// an empty Phone or AvatarURL clears it.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	AvatarURL *string
}

// UserFilter narrows the admin user listing. Zero values match everything;
// Search is a case-insensitive contains over names, email and phone.
type UserFilter struct {
	Role               id.Role
	VerificationStatus id.VerificationStatus
	Search             string
}

// ListQuery is a resolved page of a filtered listing. OrderBy is an
// allow-listed column clause, never raw client input.
type ListQuery struct {
	Offset  int
	Limit   int
	OrderBy string
}

// AdminUserUpdate carries the fields an administrator may change. Zero values
// leave a field alone.
type AdminUserUpdate struct {
	FirstName          string
	LastName           string
	Role               id.Role
	VerificationStatus id.VerificationStatus
}

func (u AdminUserUpdate) IsEmpty() bool {
	return u.FirstName == "" && u.LastName == "" && u.Role == "" && u.VerificationStatus == ""
}
