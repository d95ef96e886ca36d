package models

import (
	"reflect"
	"time"

	id "estatehub/pkg/domain"
)

// Property is a listing as stored.
type Property struct {
	ID               id.PropertyID
	Title            string
	Description      string
	Type             id.PropertyType
	ListingType      id.ListingType
	Status           id.PropertyStatus
	Price            float64
	Currency         string
	Address          string
	City             string
	State            string
	ZipCode          *string
	Latitude         *float64
	Longitude        *float64
	Bedrooms         *int
	Bathrooms        *int
	Area             *float64
	YearBuilt        *int
	ImageURLs        []string
	VideoURLs        []string
	Amenities        []string
	IsFeatured       bool
	AvailableFrom    *time.Time
	PostedByID       id.UserID
	ManagedByAgentID *id.UserID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanEdit reports whether a caller may update the listing: its poster, its
// managing agent or an administrator.
func (p *Property) CanEdit(userID id.UserID, role id.Role) bool {
	if role.IsAdmin() || p.PostedByID == userID {
		return true
	}
	return p.ManagedByAgentID != nil && *p.ManagedByAgentID == userID
}

// CanDelete reports whether a caller may delete the listing.
func (p *Property) CanDelete(userID id.UserID, role id.Role) bool {
	return role.IsAdmin() || p.PostedByID == userID
}

// Contact is the public slice of a poster or managing agent.
type Contact struct {
	ID        id.UserID
	FirstName string
	LastName  string
	AvatarURL string
	Role      id.Role
	Phone     string
	Email     string
}

type Counts struct {
	Views      int64
	Favorites  int64
	Ratings    int64
	Complaints int64
}

// Listing is a property with the records shown alongside it in lists.
type Listing struct {
	Property      *Property
	PostedBy      *Contact
	ManagedBy     *Contact
	Counts        Counts
	AverageRating float64
}

// Review is a rating as shown on the detail page.
type Review struct {
	ID         id.RatingID
	Rating     int
	Comment    string
	ClientName string
	AvatarURL  string
	CreatedAt  time.Time
}

// Detail is the single-property page.
type Detail struct {
	Listing
	Reviews []Review
}

// Filter narrows a property listing. Zero values match everything.
// Without PostedBy or AnyStatus only AVAILABLE listings match.
type Filter struct {
	ListingType id.ListingType
	Type        id.PropertyType
	Status      id.PropertyStatus
	City        string
	State       string
	MinPrice    *float64
	MaxPrice    *float64
	Bedrooms    *int
	Bathrooms   *int
	Amenities   []string
	Search      string
	IsFeatured  *bool
	PostedBy    *id.UserID
	AnyStatus   bool
}

// ListQuery is a resolved page. OrderBy is an allow-listed clause.
type ListQuery struct {
	Offset  int
	Limit   int
	OrderBy string
}

// View is one recorded page view.
type View struct {
	PropertyID id.PropertyID
	UserID     *id.UserID
	IPAddress  string
	UserAgent  string
	Device     string
	Browser    string
	ViewedAt   time.Time
}

// Update carries optional changes. Nil leaves a field alone.
type Update struct {
	Title            *string
	Description      *string
	Type             *id.PropertyType
	ListingType      *id.ListingType
	Status           *id.PropertyStatus
	Price            *float64
	Address          *string
	City             *string
	State            *string
	ZipCode          *string
	Latitude         *float64
	Longitude        *float64
	Bedrooms         *int
	Bathrooms        *int
	Area             *float64
	YearBuilt        *int
	ImageURLs        []string
	VideoURLs        []string
	Amenities        []string
	IsFeatured       *bool
	AvailableFrom    *time.Time
	ManagedByAgentID *id.UserID
}

func (u Update) IsEmpty() bool {
	if u.ImageURLs != nil || u.VideoURLs != nil || u.Amenities != nil {
		return false
	}
	scalars := u
	scalars.ImageURLs, scalars.VideoURLs, scalars.Amenities = nil, nil, nil
	return reflect.ValueOf(scalars).IsZero()
}
