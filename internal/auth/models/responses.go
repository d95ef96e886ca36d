package models

import (
	"time"

	id "estatehub/pkg/domain"
)

// UserResponse is the public projection of a User. It never carries the hash.
type UserResponse struct {
	ID                 id.UserID             `json:"id"`
	Email              *string               `json:"email"`
	FirstName          string                `json:"firstName"`
	LastName           string                `json:"lastName"`
	Phone              *string               `json:"phone"`
	AvatarURL          *string               `json:"avatarUrl"`
	Role               id.Role               `json:"role"`
	IsEmailVerified    bool                  `json:"isEmailVerified"`
	VerificationStatus id.VerificationStatus `json:"verificationStatus"`
	CreatedAt          time.Time             `json:"createdAt"`
	LastLogin          *time.Time            `json:"lastLogin"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Email:              optional(u.Email),
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Phone:              optional(u.Phone),
		AvatarURL:          optional(u.AvatarURL),
		Role:               u.Role,
		IsEmailVerified:    u.IsEmailVerified,
		VerificationStatus: u.VerificationStatus,
		CreatedAt:          u.CreatedAt,
		LastLogin:          u.LastLogin,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type LoginResult struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

type CountsResponse struct {
	PropertiesPosted  int64 `json:"propertiesPosted"`
	PropertiesManaged int64 `json:"propertiesManaged"`
	Ratings           int64 `json:"ratings"`
	Complaints        int64 `json:"complaints"`
	Favorites         int64 `json:"favorites"`
}

type VerificationInfoResponse struct {
	Status       id.VerificationStatus `json:"status"`
	StatusReason *string               `json:"statusReason"`
	SubmittedAt  time.Time             `json:"submittedAt"`
	ReviewedAt   *time.Time            `json:"reviewedAt"`
}

type AgentProfileResponse struct {
	Experience  int      `json:"experience"`
	Specialties []string `json:"specialties"`
}

// ProfileResponse is GET /api/users/profile.
type ProfileResponse struct {
	UserResponse
	VerificationInfo *VerificationInfoResponse `json:"verificationInfo"`
	AgentProfile     *AgentProfileResponse     `json:"agentProfile"`
	Count            CountsResponse            `json:"_count"`
}

// Profile is the service-level aggregate behind ProfileResponse.
type Profile struct {
	User         *User
	Counts       UserCounts
	Verification *VerificationSummary
	Agent        *AgentProfile
}

func NewProfileResponse(p *Profile) ProfileResponse {
	resp := ProfileResponse{
		UserResponse: NewUserResponse(p.User),
		Count: CountsResponse{
			PropertiesPosted:  p.Counts.PropertiesPosted,
			PropertiesManaged: p.Counts.PropertiesManaged,
			Ratings:           p.Counts.Ratings,
			Complaints:        p.Counts.Complaints,
			Favorites:         p.Counts.Favorites,
		},
	}
	if v := p.Verification; v != nil {
		resp.VerificationInfo = &VerificationInfoResponse{
			Status:       v.Status,
			StatusReason: optional(v.StatusReason),
			SubmittedAt:  v.SubmittedAt,
			ReviewedAt:   v.ReviewedAt,
		}
	}
	if a := p.Agent; a != nil {
		specialties := a.Specialties
		if specialties == nil {
			specialties = []string{}
		}
		resp.AgentProfile = &AgentProfileResponse{Experience: a.Experience, Specialties: specialties}
	}
	return resp
}
