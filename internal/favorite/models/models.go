package models

import (
	"time"

	id "estatehub/pkg/domain"
)

// Favorite is a property saved by a user. A user can save a property once.
type Favorite struct {
	ID         id.FavoriteID
	UserID     id.UserID
	PropertyID id.PropertyID
	CreatedAt  time.Time
}

// PropertySummary is the card shown for a saved property.
type PropertySummary struct {
	ID            id.PropertyID
	Title         string
	Type          id.PropertyType
	ListingType   id.ListingType
	Status        id.PropertyStatus
	Price         float64
	Currency      string
	City          string
	State         string
	ImageURLs     []string
	PosterFirst   string
	PosterLast    string
	PosterAvatar  string
	Views         int64
	FavoritedBy   int64
	TotalRatings  int64
	AverageRating float64
}

// Saved pairs a favorite with the property it points at.
type Saved struct {
	Favorite
	Property PropertySummary
}

// Status answers whether a user has saved a property.
type Status struct {
	IsFavorited bool
	FavoriteID  *id.FavoriteID
}

type ListQuery struct {
	Offset int
	Limit  int
}
