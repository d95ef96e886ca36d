package validation

import (
	"fmt"

	dErrors "estatehub/pkg/domain-errors"
)

// MaxBodySize covers JSON bodies with a handful of base64 images inlined.
const MaxBodySize = 25 << 20

// Listing limits
const (
	MaxTitleLength   = 200
	MaxImages        = 30
	MaxVideos        = 10
	MaxAmenities     = 50
	MaxAmenityLength = 60
)

// MaxSearchLength bounds free-text search terms.
const MaxSearchLength = 100

// CheckSliceCount validates that a slice does not exceed the maximum count.
func CheckSliceCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}

// CheckEachStringLength validates every element of values against max.
func CheckEachStringLength(fieldName string, values []string, max int) error {
	for _, v := range values {
		if err := CheckStringLength(fieldName, v, max); err != nil {
			return err
		}
	}
	return nil
}
