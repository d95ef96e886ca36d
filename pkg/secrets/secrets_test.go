package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dErrors "estatehub/pkg/domain-errors"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := hashWithCost("hunter22", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword("hunter22", hash))
	assert.True(t, dErrors.HasCode(VerifyPassword("hunter23", hash), dErrors.CodeUnauthorized))
}

func TestHashPassword_Rejects(t *testing.T) {
	_, err := hashWithCost("", bcrypt.MinCost)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = hashWithCost(strings.Repeat("p", 80), bcrypt.MinCost)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestRandomHex(t *testing.T) {
	a, err := RandomHex(16)
	require.NoError(t, err)
	b, err := RandomHex(16)
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
