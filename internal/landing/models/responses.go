package models

import (
	"time"

	property "estatehub/internal/property/models"
	id "estatehub/pkg/domain"
	"estatehub/pkg/platform/httputil"
)

type CityCountResponse struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}

type PosterNameResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type RecentPropertyResponse struct {
	ID        id.PropertyID      `json:"id"`
	Title     string             `json:"title"`
	City      string             `json:"city"`
	Price     float64            `json:"price"`
	CreatedAt time.Time          `json:"createdAt"`
	PostedBy  PosterNameResponse `json:"postedBy"`
}

type MetricsResponse struct {
	TotalProperties     int64                    `json:"totalProperties"`
	AvailableProperties int64                    `json:"availableProperties"`
	FeaturedProperties  int64                    `json:"featuredProperties"`
	TotalUsers          int64                    `json:"totalUsers"`
	TotalLandlords      int64                    `json:"totalLandlords"`
	TotalAgents         int64                    `json:"totalAgents"`
	TotalViews          int64                    `json:"totalViews"`
	AveragePrice        float64                  `json:"averagePrice"`
	TopCities           []CityCountResponse      `json:"topCities"`
	RecentActivity      []RecentPropertyResponse `json:"recentActivity"`
}

type PageResponse struct {
	Properties         []property.ListingResponse `json:"properties"`
	FeaturedProperties []property.ListingResponse `json:"featuredProperties"`
	Metrics            MetricsResponse            `json:"metrics"`
	Pagination         httputil.Pagination        `json:"pagination"`
}

func NewPageResponse(p *Page, pagination httputil.Pagination) PageResponse {
	m := p.Metrics
	metrics := MetricsResponse{
		TotalProperties:     m.TotalProperties,
		AvailableProperties: m.AvailableProperties,
		FeaturedProperties:  m.FeaturedProperties,
		TotalUsers:          m.TotalUsers,
		TotalLandlords:      m.TotalLandlords,
		TotalAgents:         m.TotalAgents,
		TotalViews:          m.TotalViews,
		AveragePrice:        m.AveragePrice,
		TopCities:           make([]CityCountResponse, 0, len(m.TopCities)),
		RecentActivity:      make([]RecentPropertyResponse, 0, len(m.RecentActivity)),
	}
	for _, c := range m.TopCities {
		metrics.TopCities = append(metrics.TopCities, CityCountResponse{City: c.City, Count: c.Count})
	}
	for _, r := range m.RecentActivity {
		metrics.RecentActivity = append(metrics.RecentActivity, RecentPropertyResponse{
			ID:        r.ID,
			Title:     r.Title,
			City:      r.City,
			Price:     r.Price,
			CreatedAt: r.CreatedAt,
			PostedBy:  PosterNameResponse{FirstName: r.FirstName, LastName: r.LastName},
		})
	}
	return PageResponse{
		Properties:         property.NewListingResponses(p.Listings),
		FeaturedProperties: property.NewListingResponses(p.Featured),
		Metrics:            metrics,
		Pagination:         pagination,
	}
}

type SuggestionResponse struct {
	Type     SuggestionKind `json:"type"`
	Value    string         `json:"value"`
	Label    string         `json:"label"`
	Subtitle string         `json:"subtitle,omitempty"`
}

func NewSuggestionResponses(suggestions []Suggestion) []SuggestionResponse {
	out := make([]SuggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, SuggestionResponse(s))
	}
	return out
}
