package models

import (
	"time"

	id "estatehub/pkg/domain"
)

// Complaint is a client's report about a property. It starts PENDING and is
// moved through its lifecycle by admins only.
type Complaint struct {
	ID              id.ComplaintID
	ClientID        id.UserID
	PropertyID      id.PropertyID
	Subject         string
	Description     string
	Status          id.ComplaintStatus
	ResolutionNotes string
	ResolvedAt      *time.Time
	ResolvedBy      *id.UserID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Party struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type PropertyRef struct {
	Title string
	City  string
	State string
}

// Detail is a complaint joined with the filing client and the property.
type Detail struct {
	Complaint
	Client   Party
	Property PropertyRef
}

// Filter narrows complaint listings. Zero values match everything.
type Filter struct {
	Status   id.ComplaintStatus
	ClientID id.UserID
}

type ListQuery struct {
	Offset int
	Limit  int
}

// Resolution is the admin-side change to a complaint. ResolvedBy and At are
// stamped only when Status is RESOLVED.
type Resolution struct {
	Status          id.ComplaintStatus
	ResolutionNotes *string
	ResolvedBy      id.UserID
	At              time.Time
}
