package models

import (
	"math"
	"time"

	id "estatehub/pkg/domain"
)

type PropertyResponse struct {
	ID               id.PropertyID     `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Type             id.PropertyType   `json:"type"`
	ListingType      id.ListingType    `json:"listingType"`
	Status           id.PropertyStatus `json:"status"`
	Price            float64           `json:"price"`
	Currency         string            `json:"currency"`
	Address          string            `json:"address"`
	City             string            `json:"city"`
	State            string            `json:"state"`
	ZipCode          *string           `json:"zipCode"`
	Latitude         *float64          `json:"latitude"`
	Longitude        *float64          `json:"longitude"`
	Bedrooms         *int              `json:"bedrooms"`
	Bathrooms        *int              `json:"bathrooms"`
	Area             *float64          `json:"area"`
	YearBuilt        *int              `json:"yearBuilt"`
	ImageURLs        []string          `json:"imageUrls"`
	VideoURLs        []string          `json:"videoUrls"`
	Amenities        []string          `json:"amenities"`
	IsFeatured       bool              `json:"isFeatured"`
	AvailableFrom    *time.Time        `json:"availableFrom"`
	PostedByID       id.UserID         `json:"postedById"`
	ManagedByAgentID *id.UserID        `json:"managedByAgentId"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

func NewPropertyResponse(p *Property) PropertyResponse {
	return PropertyResponse{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		Type:             p.Type,
		ListingType:      p.ListingType,
		Status:           p.Status,
		Price:            p.Price,
		Currency:         p.Currency,
		Address:          p.Address,
		City:             p.City,
		State:            p.State,
		ZipCode:          p.ZipCode,
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
		Bedrooms:         p.Bedrooms,
		Bathrooms:        p.Bathrooms,
		Area:             p.Area,
		YearBuilt:        p.YearBuilt,
		ImageURLs:        nonNil(p.ImageURLs),
		VideoURLs:        nonNil(p.VideoURLs),
		Amenities:        nonNil(p.Amenities),
		IsFeatured:       p.IsFeatured,
		AvailableFrom:    p.AvailableFrom,
		PostedByID:       p.PostedByID,
		ManagedByAgentID: p.ManagedByAgentID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type ContactResponse struct {
	ID        id.UserID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	AvatarURL *string   `json:"avatarUrl"`
	Role      id.Role   `json:"role,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
}

func newContactResponse(c *Contact) *ContactResponse {
	if c == nil {
		return nil
	}
	return &ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		AvatarURL: optional(c.AvatarURL),
		Role:      c.Role,
		Phone:     optional(c.Phone),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type CountResponse struct {
	Views       int64 `json:"views"`
	FavoritedBy int64 `json:"favoritedBy"`
	Ratings     int64 `json:"ratings"`
	Complaints  int64 `json:"complaints"`
}

type ListingResponse struct {
	PropertyResponse
	PostedBy       *ContactResponse `json:"postedBy"`
	ManagedByAgent *ContactResponse `json:"managedByAgent"`
	AverageRating  float64          `json:"averageRating"`
	Count          CountResponse    `json:"_count"`
}

func NewListingResponse(l *Listing) ListingResponse {
	return ListingResponse{
		PropertyResponse: NewPropertyResponse(l.Property),
		PostedBy:         newContactResponse(l.PostedBy),
		ManagedByAgent:   newContactResponse(l.ManagedBy),
		AverageRating:    RoundRating(l.AverageRating),
		Count: CountResponse{
			Views:       l.Counts.Views,
			FavoritedBy: l.Counts.Favorites,
			Ratings:     l.Counts.Ratings,
			Complaints:  l.Counts.Complaints,
		},
	}
}

func NewListingResponses(ls []*Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, NewListingResponse(l))
	}
	return out
}

type ReviewResponse struct {
	ID        id.RatingID `json:"id"`
	Rating    int         `json:"rating"`
	Comment   *string     `json:"comment"`
	CreatedAt time.Time   `json:"createdAt"`
	Client    struct {
		Name      string  `json:"name"`
		AvatarURL *string `json:"avatarUrl"`
	} `json:"client"`
}

type DetailResponse struct {
	ListingResponse
	TotalRatings int64            `json:"totalRatings"`
	Ratings      []ReviewResponse `json:"ratings"`
}

func NewDetailResponse(d *Detail) DetailResponse {
	resp := DetailResponse{
		ListingResponse: NewListingResponse(&d.Listing),
		TotalRatings:    d.Counts.Ratings,
		Ratings:         make([]ReviewResponse, 0, len(d.Reviews)),
	}
	for _, r := range d.Reviews {
		rr := ReviewResponse{ID: r.ID, Rating: r.Rating, Comment: optional(r.Comment), CreatedAt: r.CreatedAt}
		rr.Client.Name = r.ClientName
		rr.Client.AvatarURL = optional(r.AvatarURL)
		resp.Ratings = append(resp.Ratings, rr)
	}
	return resp
}

// RoundRating rounds an average rating to one decimal place.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
