package models

import (
	"time"

	id "estatehub/pkg/domain"
)

// Rating is one user's score of a property, 1 to 5. A user rates a property
// at most once; a second submission replaces the first.
type Rating struct {
	ID         id.RatingID
	UserID     id.UserID
	PropertyID id.PropertyID
	Rating     int
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Author struct {
	FirstName string
	LastName  string
	AvatarURL string
}

// Review is a rating with its author, as listed under a property.
type Review struct {
	Rating
	Client Author
}

type PropertyCard struct {
	ID        id.PropertyID
	Title     string
	Type      id.PropertyType
	Price     float64
	City      string
	State     string
	ImageURLs []string
}

// Rated is a rating with the property it scores, as listed for its author.
type Rated struct {
	Rating
	Property PropertyCard
}

// Summary aggregates every rating of a property. Distribution[i] counts
// ratings of i+1 stars.
type Summary struct {
	Average      float64
	Total        int64
	Distribution [5]int64
}

// PropertyRatings is one page of reviews plus the property-wide summary.
type PropertyRatings struct {
	Reviews []*Review
	Total   int64
	Summary Summary
}

type ListQuery struct {
	Offset int
	Limit  int
}
