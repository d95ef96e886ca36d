package models

import (
	"time"

	id "estatehub/pkg/domain"
)

type ClientResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type PropertyRefResponse struct {
	ID    id.PropertyID `json:"id"`
	Title string        `json:"title"`
	City  string        `json:"city"`
	State string        `json:"state"`
}

type ComplaintResponse struct {
	ID              id.ComplaintID       `json:"id"`
	ClientID        id.UserID            `json:"clientId"`
	PropertyID      id.PropertyID        `json:"propertyId"`
	Subject         string               `json:"subject"`
	Description     string               `json:"description"`
	Status          id.ComplaintStatus   `json:"status"`
	ResolutionNotes *string              `json:"resolutionNotes"`
	ResolvedAt      *time.Time           `json:"resolvedAt"`
	ResolvedBy      *id.UserID           `json:"resolvedBy"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
	Client          *ClientResponse      `json:"client,omitempty"`
	Property        *PropertyRefResponse `json:"property,omitempty"`
}

func NewComplaintResponse(c *Complaint) ComplaintResponse {
	resp := ComplaintResponse{
		ID:          c.ID,
		ClientID:    c.ClientID,
		PropertyID:  c.PropertyID,
		Subject:     c.Subject,
		Description: c.Description,
		Status:      c.Status,
		ResolvedAt:  c.ResolvedAt,
		ResolvedBy:  c.ResolvedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.ResolutionNotes != "" {
		notes := c.ResolutionNotes
		resp.ResolutionNotes = &notes
	}
	return resp
}

func NewDetailResponse(d *Detail) ComplaintResponse {
	resp := NewComplaintResponse(&d.Complaint)
	resp.Client = &ClientResponse{
		FirstName: d.Client.FirstName,
		LastName:  d.Client.LastName,
		Email:     d.Client.Email,
		Phone:     d.Client.Phone,
	}
	resp.Property = &PropertyRefResponse{
		ID:    d.PropertyID,
		Title: d.Property.Title,
		City:  d.Property.City,
		State: d.Property.State,
	}
	return resp
}

func NewDetailResponses(details []*Detail) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(details))
	for _, d := range details {
		out = append(out, NewDetailResponse(d))
	}
	return out
}
