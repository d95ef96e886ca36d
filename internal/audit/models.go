package audit

import "time"

// Event records a security or administrative action. It stays transport-agnostic
// so the store and the Kafka sink can both consume it.
type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	ActorID    string    `json:"actorId"`
	ActorRole  string    `json:"actorRole,omitempty"`
	Action     Action    `json:"action"`
	TargetType string    `json:"targetType,omitempty"`
	TargetID   string    `json:"targetId,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	RequestID  string    `json:"requestId,omitempty"`
}

type Action string

const (
	ActionUserRegistered       Action = "user_registered"
	ActionLoginSucceeded       Action = "login_succeeded"
	ActionLoginFailed          Action = "login_failed"
	ActionLoggedOut            Action = "logged_out"
	ActionPasswordChanged      Action = "password_changed"
	ActionUserUpdated          Action = "user_updated"
	ActionUserDeleted          Action = "user_deleted"
	ActionVerificationReviewed Action = "verification_reviewed"
	ActionComplaintUpdated     Action = "complaint_updated"
	ActionPropertyUpdated      Action = "property_updated"
	ActionPropertyDeleted      Action = "property_deleted"
)

const (
	TargetUser         = "user"
	TargetProperty     = "property"
	TargetVerification = "verification"
	TargetComplaint    = "complaint"
)
