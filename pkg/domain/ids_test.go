package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "estatehub/pkg/domain-errors"
)

func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParsePropertyID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseRatingID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		raw := uuid.New()
		got, err := ParseUserID(raw.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(raw), got)
	})
}

func TestIDsEncodeAsStrings(t *testing.T) {
	propertyID := NewPropertyID()
	out, err := json.Marshal(struct {
		ID PropertyID `json:"id"`
	}{ID: propertyID})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+propertyID.String()+`"}`, string(out))

	var in struct {
		ID PropertyID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(out, &in))
	assert.Equal(t, propertyID, in.ID)
}

func TestZeroIDsRoundTrip(t *testing.T) {
	type payload struct {
		User     UserID     `json:"user"`
		Property PropertyID `json:"property"`
	}

	out, err := json.Marshal(payload{})
	require.NoError(t, err)

	in := payload{User: NewUserID(), Property: NewPropertyID()}
	require.NoError(t, json.Unmarshal(out, &in))
	assert.True(t, in.User.IsNil())
	assert.True(t, in.Property.IsNil())

	require.Error(t, json.Unmarshal([]byte(`{"user":"not-a-uuid"}`), &in))

	rating := NewRatingID()
	encoded, err := json.Marshal(map[string]RatingID{"id": rating})
	require.NoError(t, err)
	var decoded map[string]RatingID
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, rating, decoded["id"])
	_, err = ParseUserID(uuid.Nil.String())
	assert.Error(t, err, "parsing still refuses the nil UUID")
}
