package models

import (
	"time"

	property "estatehub/internal/property/models"
	id "estatehub/pkg/domain"
)

// Metrics are the platform figures shown on the landing page. Each figure is
// computed independently and reads as zero when its query fails.
type Metrics struct {
	TotalProperties     int64
	AvailableProperties int64
	FeaturedProperties  int64
	TotalUsers          int64
	TotalLandlords      int64
	TotalAgents         int64
	TotalViews          int64
	AveragePrice        float64
	TopCities           []CityCount
	RecentActivity      []RecentProperty
}

type CityCount struct {
	City  string
	Count int64
}

type RecentProperty struct {
	ID        id.PropertyID
	Title     string
	City      string
	Price     float64
	CreatedAt time.Time
	FirstName string
	LastName  string
}

// Page is everything GET /api/landing returns.
type Page struct {
	Listings []*property.Listing
	Total    int64
	Featured []*property.Listing
	Metrics  Metrics
}

type SuggestionKind string

const (
	SuggestAll      SuggestionKind = "all"
	SuggestLocation SuggestionKind = "location"
	SuggestProperty SuggestionKind = "property"
)

func (k SuggestionKind) IsValid() bool {
	return k == SuggestAll || k == SuggestLocation || k == SuggestProperty
}

func (k SuggestionKind) Includes(other SuggestionKind) bool {
	return k == SuggestAll || k == other
}

type Suggestion struct {
	Type     SuggestionKind
	Value    string
	Label    string
	Subtitle string
}

// PropertyCount scopes a property count. The zero value counts every listing.
type PropertyCount struct {
	Status       id.PropertyStatus
	FeaturedOnly bool
}
