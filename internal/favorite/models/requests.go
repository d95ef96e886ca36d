package models

import (
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
)

type AddFavoriteRequest struct {
	PropertyID id.PropertyID `json:"propertyId"`
}

func (r *AddFavoriteRequest) Validate() error {
	if r == nil || r.PropertyID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "Property ID is required")
	}
	return nil
}
