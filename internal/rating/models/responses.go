package models

import (
	"math"
	"time"

	id "estatehub/pkg/domain"
)

type ClientResponse struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	AvatarURL *string `json:"avatarUrl"`
}

type RatingResponse struct {
	ID         id.RatingID     `json:"id"`
	PropertyID id.PropertyID   `json:"propertyId"`
	ClientID   id.UserID       `json:"clientId"`
	Rating     int             `json:"rating"`
	Comment    *string         `json:"comment"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Client     *ClientResponse `json:"client,omitempty"`
}

func newRatingResponse(r Rating) RatingResponse {
	return RatingResponse{
		ID:         r.ID,
		PropertyID: r.PropertyID,
		ClientID:   r.UserID,
		Rating:     r.Rating,
		Comment:    optional(r.Comment),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func NewReviewResponse(r *Review) RatingResponse {
	resp := newRatingResponse(r.Rating)
	resp.Client = &ClientResponse{
		FirstName: r.Client.FirstName,
		LastName:  r.Client.LastName,
		AvatarURL: optional(r.Client.AvatarURL),
	}
	return resp
}

type DistributionEntry struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

type SummaryResponse struct {
	AverageRating float64             `json:"averageRating"`
	TotalRatings  int64               `json:"totalRatings"`
	Distribution  []DistributionEntry `json:"distribution"`
}

func NewSummaryResponse(s Summary) SummaryResponse {
	resp := SummaryResponse{
		AverageRating: math.Round(s.Average*10) / 10,
		TotalRatings:  s.Total,
		Distribution:  make([]DistributionEntry, 0, len(s.Distribution)),
	}
	for i, n := range s.Distribution {
		resp.Distribution = append(resp.Distribution, DistributionEntry{Rating: i + 1, Count: n})
	}
	return resp
}

type PropertyCardResponse struct {
	ID        id.PropertyID   `json:"id"`
	Title     string          `json:"title"`
	Type      id.PropertyType `json:"type"`
	Price     float64         `json:"price"`
	City      string          `json:"city"`
	State     string          `json:"state"`
	ImageURLs []string        `json:"imageUrls"`
}

type RatedResponse struct {
	RatingResponse
	Property PropertyCardResponse `json:"property"`
}

func NewRatedResponses(rated []*Rated) []RatedResponse {
	out := make([]RatedResponse, 0, len(rated))
	for _, r := range rated {
		images := r.Property.ImageURLs
		if images == nil {
			images = []string{}
		}
		out = append(out, RatedResponse{
			RatingResponse: newRatingResponse(r.Rating),
			Property: PropertyCardResponse{
				ID:        r.Property.ID,
				Title:     r.Property.Title,
				Type:      r.Property.Type,
				Price:     r.Property.Price,
				City:      r.Property.City,
				State:     r.Property.State,
				ImageURLs: images,
			},
		})
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
