package models

import (
	"strings"
	"time"

	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	limits "estatehub/pkg/platform/validation"
	s "estatehub/pkg/string"
	v "estatehub/pkg/validation"
)

// CreatePropertyRequest is POST /api/properties. Entries of ImageURLs and
// VideoURLs are either public URLs or data-URI payloads still to be uploaded.
type CreatePropertyRequest struct {
	Title            string          `json:"title"`
	Description      string          `json:"description" validate:"max=10000"`
	Type             id.PropertyType `json:"type"`
	ListingType      id.ListingType  `json:"listingType"`
	Price            float64         `json:"price"`
	Address          string          `json:"address" validate:"max=500"`
	City             string          `json:"city" validate:"max=100"`
	State            string          `json:"state" validate:"max=100"`
	ZipCode          *string         `json:"zipCode" validate:"omitempty,max=20"`
	Latitude         *float64        `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude        *float64        `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Bedrooms         *int            `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms        *int            `json:"bathrooms" validate:"omitempty,gte=0"`
	Area             *float64        `json:"area" validate:"omitempty,gt=0"`
	YearBuilt        *int            `json:"yearBuilt" validate:"omitempty,gte=1800,lte=2100"`
	Amenities        []string        `json:"amenities"`
	IsFeatured       bool            `json:"isFeatured"`
	AvailableFrom    *time.Time      `json:"availableFrom"`
	ImageURLs        []string        `json:"imageUrls"`
	VideoURLs        []string        `json:"videoUrls"`
	ManagedByAgentID *id.UserID      `json:"managedByAgentId"`
}

func (r *CreatePropertyRequest) Sanitize() {
	s.TrimStrings(&r.Title, &r.Description, &r.Address, &r.City, &r.State)
	r.ZipCode = s.TrimPtr(r.ZipCode)
	r.Amenities = s.DedupeAndTrim(r.Amenities)
	r.ImageURLs = s.DedupeAndTrim(r.ImageURLs)
	r.VideoURLs = s.DedupeAndTrim(r.VideoURLs)
}

func (r *CreatePropertyRequest) Normalize() {
	r.Type = id.PropertyType(strings.ToUpper(string(r.Type)))
	r.ListingType = id.ListingType(strings.ToUpper(string(r.ListingType)))
	if r.Amenities == nil {
		r.Amenities = []string{}
	}
	if r.VideoURLs == nil {
		r.VideoURLs = []string{}
	}
}

func (r *CreatePropertyRequest) Validate() error {
	if r.Title == "" || r.Description == "" || r.Type == "" || r.ListingType == "" ||
		r.Price == 0 || r.Address == "" || r.City == "" || r.State == "" {
		return dErrors.New(dErrors.CodeValidation, "Missing required fields.")
	}
	if len(r.ImageURLs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "At least one image is required.")
	}
	if r.Price < 0 {
		return dErrors.New(dErrors.CodeValidation, "price must be greater than 0")
	}
	if !r.Type.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown property type %q", r.Type)
	}
	if !r.ListingType.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown listing type %q", r.ListingType)
	}
	if err := limits.CheckStringLength("title", r.Title, limits.MaxTitleLength); err != nil {
		return err
	}
	if err := checkCollections(r.ImageURLs, r.VideoURLs, r.Amenities); err != nil {
		return err
	}
	return v.Validate(r)
}

// UpdatePropertyRequest is PUT /api/properties/{id}. Absent fields are left alone.
type UpdatePropertyRequest struct {
	Title            *string            `json:"title" validate:"omitempty,notblank"`
	Description      *string            `json:"description" validate:"omitempty,notblank,max=10000"`
	Type             *id.PropertyType   `json:"type"`
	ListingType      *id.ListingType    `json:"listingType"`
	Status           *id.PropertyStatus `json:"status"`
	Price            *float64           `json:"price" validate:"omitempty,gt=0"`
	Address          *string            `json:"address" validate:"omitempty,notblank,max=500"`
	City             *string            `json:"city" validate:"omitempty,notblank,max=100"`
	State            *string            `json:"state" validate:"omitempty,notblank,max=100"`
	ZipCode          *string            `json:"zipCode" validate:"omitempty,max=20"`
	Latitude         *float64           `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude        *float64           `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Bedrooms         *int               `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms        *int               `json:"bathrooms" validate:"omitempty,gte=0"`
	Area             *float64           `json:"area" validate:"omitempty,gt=0"`
	YearBuilt        *int               `json:"yearBuilt" validate:"omitempty,gte=1800,lte=2100"`
	Amenities        []string           `json:"amenities"`
	IsFeatured       *bool              `json:"isFeatured"`
	AvailableFrom    *time.Time         `json:"availableFrom"`
	ImageURLs        []string           `json:"imageUrls"`
	VideoURLs        []string           `json:"videoUrls"`
	ManagedByAgentID *id.UserID         `json:"managedByAgentId"`
}

func (r *UpdatePropertyRequest) Sanitize() {
	r.Title = s.TrimPtr(r.Title)
	r.Description = s.TrimPtr(r.Description)
	r.Address = s.TrimPtr(r.Address)
	r.City = s.TrimPtr(r.City)
	r.State = s.TrimPtr(r.State)
	r.ZipCode = s.TrimPtr(r.ZipCode)
	if r.Amenities != nil {
		r.Amenities = s.DedupeAndTrim(r.Amenities)
	}
	if r.ImageURLs != nil {
		r.ImageURLs = s.DedupeAndTrim(r.ImageURLs)
	}
	if r.VideoURLs != nil {
		r.VideoURLs = s.DedupeAndTrim(r.VideoURLs)
	}
}

func (r *UpdatePropertyRequest) Normalize() {
	if r.Type != nil {
		t := id.PropertyType(strings.ToUpper(string(*r.Type)))
		r.Type = &t
	}
	if r.ListingType != nil {
		l := id.ListingType(strings.ToUpper(string(*r.ListingType)))
		r.ListingType = &l
	}
	if r.Status != nil {
		st := id.PropertyStatus(strings.ToUpper(string(*r.Status)))
		r.Status = &st
	}
}

func (r *UpdatePropertyRequest) Validate() error {
	if r.Type != nil && !r.Type.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown property type %q", *r.Type)
	}
	if r.ListingType != nil && !r.ListingType.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown listing type %q", *r.ListingType)
	}
	if r.Status != nil && !r.Status.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown property status %q", *r.Status)
	}
	if r.ImageURLs != nil && len(r.ImageURLs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "At least one image is required.")
	}
	if r.Title != nil {
		if err := limits.CheckStringLength("title", *r.Title, limits.MaxTitleLength); err != nil {
			return err
		}
	}
	if err := checkCollections(r.ImageURLs, r.VideoURLs, r.Amenities); err != nil {
		return err
	}
	return v.Validate(r)
}

func checkCollections(images, videos, amenities []string) error {
	if err := limits.CheckSliceCount("images", len(images), limits.MaxImages); err != nil {
		return err
	}
	if err := limits.CheckSliceCount("videos", len(videos), limits.MaxVideos); err != nil {
		return err
	}
	if err := limits.CheckSliceCount("amenities", len(amenities), limits.MaxAmenities); err != nil {
		return err
	}
	return limits.CheckEachStringLength("amenity", amenities, limits.MaxAmenityLength)
}

func (r *UpdatePropertyRequest) ToUpdate() Update {
	return Update{
		Title:            r.Title,
		Description:      r.Description,
		Type:             r.Type,
		ListingType:      r.ListingType,
		Status:           r.Status,
		Price:            r.Price,
		Address:          r.Address,
		City:             r.City,
		State:            r.State,
		ZipCode:          r.ZipCode,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		Bedrooms:         r.Bedrooms,
		Bathrooms:        r.Bathrooms,
		Area:             r.Area,
		YearBuilt:        r.YearBuilt,
		ImageURLs:        r.ImageURLs,
		VideoURLs:        r.VideoURLs,
		Amenities:        r.Amenities,
		IsFeatured:       r.IsFeatured,
		AvailableFrom:    r.AvailableFrom,
		ManagedByAgentID: r.ManagedByAgentID,
	}
}
