package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "estatehub/pkg/domain-errors"
)

type registerInput struct {
	FirstName string `json:"firstName" validate:"notblank"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	Password  string `json:"password" validate:"min=6"`
	Role      string `json:"role" validate:"omitempty,oneof=CLIENT LANDLORD AGENT"`
	Rating    int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

func TestValidate(t *testing.T) {
	valid := registerInput{FirstName: "Ada", Email: "ada@example.com", Phone: "+234 803 000 0000", Password: "secret1", Role: "AGENT"}
	require.NoError(t, Validate(valid))

	tests := []struct {
		name    string
		mutate  func(*registerInput)
		message string
	}{
		{name: "blank name", mutate: func(r *registerInput) { r.FirstName = "   " }, message: "firstName must not be blank"},
		{name: "bad email", mutate: func(r *registerInput) { r.Email = "ada" }, message: "email must be a valid email"},
		{name: "bad phone", mutate: func(r *registerInput) { r.Phone = "call me" }, message: "phone must be a valid phone number"},
		{name: "short password", mutate: func(r *registerInput) { r.Password = "123" }, message: "password must be at least 6"},
		{name: "admin role", mutate: func(r *registerInput) { r.Role = "ADMIN" }, message: "role must be one of [CLIENT LANDLORD AGENT]"},
		{name: "rating too high", mutate: func(r *registerInput) { r.Rating = 6 }, message: "rating must be at most 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := Validate(in)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}
