// Package domain provides type-safe identifiers and the shared marketplace vocabulary.
package domain

import (
	"github.com/google/uuid"

	dErrors "estatehub/pkg/domain-errors"
)

// Distinct ID types - the compiler rejects a PropertyID where a UserID is expected.
type (
	UserID         uuid.UUID
	SessionID      uuid.UUID
	PropertyID     uuid.UUID
	FavoriteID     uuid.UUID
	RatingID       uuid.UUID
	ComplaintID    uuid.UUID
	VerificationID uuid.UUID
)

// Parse functions - use at trust boundaries (handlers, path params, token claims).

func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, "user ID")
	return UserID(id), err
}

func ParseSessionID(s string) (SessionID, error) {
	id, err := parseUUID(s, "session ID")
	return SessionID(id), err
}

func ParsePropertyID(s string) (PropertyID, error) {
	id, err := parseUUID(s, "property ID")
	return PropertyID(id), err
}

func ParseFavoriteID(s string) (FavoriteID, error) {
	id, err := parseUUID(s, "favorite ID")
	return FavoriteID(id), err
}

func ParseRatingID(s string) (RatingID, error) {
	id, err := parseUUID(s, "rating ID")
	return RatingID(id), err
}

func ParseComplaintID(s string) (ComplaintID, error) {
	id, err := parseUUID(s, "complaint ID")
	return ComplaintID(id), err
}

func ParseVerificationID(s string) (VerificationID, error) {
	id, err := parseUUID(s, "verification ID")
	return VerificationID(id), err
}

func NewUserID() UserID                 { return UserID(uuid.New()) }
func NewSessionID() SessionID           { return SessionID(uuid.New()) }
func NewPropertyID() PropertyID         { return PropertyID(uuid.New()) }
func NewFavoriteID() FavoriteID         { return FavoriteID(uuid.New()) }
func NewRatingID() RatingID             { return RatingID(uuid.New()) }
func NewComplaintID() ComplaintID       { return ComplaintID(uuid.New()) }
func NewVerificationID() VerificationID { return VerificationID(uuid.New()) }

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id SessionID) String() string      { return uuid.UUID(id).String() }
func (id PropertyID) String() string     { return uuid.UUID(id).String() }
func (id FavoriteID) String() string     { return uuid.UUID(id).String() }
func (id RatingID) String() string       { return uuid.UUID(id).String() }
func (id ComplaintID) String() string    { return uuid.UUID(id).String() }
func (id VerificationID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id PropertyID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id FavoriteID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id RatingID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id ComplaintID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id VerificationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// JSON encodes ids as their canonical string form. Decoding accepts the nil
// UUID that a zero id encodes to, so values read back unchanged; request
// models reject zero ids in their own validation.

func (id UserID) MarshalText() ([]byte, error)         { return []byte(id.String()), nil }
func (id SessionID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id PropertyID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id FavoriteID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id RatingID) MarshalText() ([]byte, error)       { return []byte(id.String()), nil }
func (id ComplaintID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id VerificationID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	return unmarshalID(b, "user ID", (*uuid.UUID)(id))
}

func (id *SessionID) UnmarshalText(b []byte) error {
	return unmarshalID(b, "session ID", (*uuid.UUID)(id))
}

func (id *PropertyID) UnmarshalText(b []byte) error {
	return unmarshalID(b, "property ID", (*uuid.UUID)(id))
}

func (id *FavoriteID) UnmarshalText(b []byte) error {
	return unmarshalID(b, "favorite ID", (*uuid.UUID)(id))
}

func (id *RatingID) UnmarshalText(b []byte) error {
	return unmarshalID(b, "rating ID", (*uuid.UUID)(id))
}

func (id *ComplaintID) UnmarshalText(b []byte) error {
	return unmarshalID(b, "complaint ID", (*uuid.UUID)(id))
}

func (id *VerificationID) UnmarshalText(b []byte) error {
	return unmarshalID(b, "verification ID", (*uuid.UUID)(id))
}

func unmarshalID(b []byte, label string, dst *uuid.UUID) error {
	if string(b) == uuid.Nil.String() {
		*dst = uuid.Nil
		return nil
	}
	parsed, err := parseUUID(string(b), label)
	*dst = parsed
	return err
}

// parseUUID rejects empty, malformed and nil UUIDs.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return id, nil
}
