package models

import (
	"math"
	"time"

	id "estatehub/pkg/domain"
)

type PosterResponse struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	AvatarURL *string `json:"avatarUrl"`
}

type SummaryCountResponse struct {
	Views       int64 `json:"views"`
	FavoritedBy int64 `json:"favoritedBy"`
}

type PropertySummaryResponse struct {
	ID            id.PropertyID        `json:"id"`
	Title         string               `json:"title"`
	Type          id.PropertyType      `json:"type"`
	ListingType   id.ListingType       `json:"listingType"`
	Status        id.PropertyStatus    `json:"status"`
	Price         float64              `json:"price"`
	Currency      string               `json:"currency"`
	City          string               `json:"city"`
	State         string               `json:"state"`
	ImageURLs     []string             `json:"imageUrls"`
	PostedBy      PosterResponse       `json:"postedBy"`
	AverageRating float64              `json:"averageRating"`
	TotalRatings  int64                `json:"totalRatings"`
	Count         SummaryCountResponse `json:"_count"`
}

type FavoriteResponse struct {
	ID         id.FavoriteID           `json:"id"`
	UserID     id.UserID               `json:"userId"`
	PropertyID id.PropertyID           `json:"propertyId"`
	CreatedAt  time.Time               `json:"createdAt"`
	Property   PropertySummaryResponse `json:"property"`
}

func NewFavoriteResponse(s *Saved) FavoriteResponse {
	p := s.Property
	images := p.ImageURLs
	if images == nil {
		images = []string{}
	}
	resp := FavoriteResponse{
		ID:         s.ID,
		UserID:     s.UserID,
		PropertyID: s.PropertyID,
		CreatedAt:  s.CreatedAt,
		Property: PropertySummaryResponse{
			ID:            p.ID,
			Title:         p.Title,
			Type:          p.Type,
			ListingType:   p.ListingType,
			Status:        p.Status,
			Price:         p.Price,
			Currency:      p.Currency,
			City:          p.City,
			State:         p.State,
			ImageURLs:     images,
			PostedBy:      PosterResponse{FirstName: p.PosterFirst, LastName: p.PosterLast},
			AverageRating: math.Round(p.AverageRating*10) / 10,
			TotalRatings:  p.TotalRatings,
			Count:         SummaryCountResponse{Views: p.Views, FavoritedBy: p.FavoritedBy},
		},
	}
	if p.PosterAvatar != "" {
		avatar := p.PosterAvatar
		resp.Property.PostedBy.AvatarURL = &avatar
	}
	return resp
}

func NewFavoriteResponses(saved []*Saved) []FavoriteResponse {
	out := make([]FavoriteResponse, 0, len(saved))
	for _, s := range saved {
		out = append(out, NewFavoriteResponse(s))
	}
	return out
}

type StatusResponse struct {
	IsFavorited bool           `json:"isFavorited"`
	FavoriteID  *id.FavoriteID `json:"favoriteId"`
}
