package models

import (
	"strings"

	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	v "estatehub/pkg/validation"
)

type SubmitRatingRequest struct {
	PropertyID id.PropertyID `json:"propertyId"`
	Rating     int           `json:"rating"`
	Comment    string        `json:"comment" validate:"max=2000"`
}

func (r *SubmitRatingRequest) Sanitize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r *SubmitRatingRequest) Validate() error {
	if r.PropertyID.IsNil() || r.Rating == 0 {
		return dErrors.New(dErrors.CodeValidation, "Property ID and rating are required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return dErrors.New(dErrors.CodeValidation, "Rating must be between 1 and 5")
	}
	return v.Validate(r)
}
