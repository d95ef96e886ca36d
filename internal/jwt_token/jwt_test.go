package jwttoken

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

var (
	userID    = id.NewUserID()
	sessionID = id.NewSessionID()
)

func newService(ttl time.Duration) *JWTService {
	return NewJWTService("test-signing-key", "estatehub", ttl)
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService(time.Hour)
	issued, err := svc.GenerateAccessToken(context.Background(), userID, sessionID, id.RoleLandlord)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	require.NotEmpty(t, issued.JTI)

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, sessionID.String(), claims.SessionID)
	assert.Equal(t, string(id.RoleLandlord), claims.Role)
	assert.Equal(t, issued.JTI, claims.ID)
	assert.WithinDuration(t, issued.ExpiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestGenerate_UsesRequestTime(t *testing.T) {
	svc := newService(time.Hour)
	at := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), at)

	issued, err := svc.GenerateAccessToken(ctx, userID, sessionID, id.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, at.Add(time.Hour), issued.ExpiresAt)
}

func TestGenerate_RequiresIDs(t *testing.T) {
	_, err := newService(time.Hour).GenerateAccessToken(context.Background(), id.UserID{}, sessionID, id.RoleClient)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestValidate_Expired(t *testing.T) {
	svc := newService(time.Minute)
	ctx := requestcontext.WithTime(context.Background(), time.Now().Add(-2*time.Minute))
	issued, err := svc.GenerateAccessToken(ctx, userID, sessionID, id.RoleClient)
	require.NoError(t, err)

	_, err = svc.ValidateToken(issued.Token)
	require.ErrorContains(t, err, "token expired")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidate_Garbage(t *testing.T) {
	_, err := newService(time.Hour).ValidateToken("not-a-token")
	assert.ErrorContains(t, err, "invalid token")
}

func TestValidate_WrongKeyOrIssuer(t *testing.T) {
	issued, err := NewJWTService("other-key", "estatehub", time.Hour).
		GenerateAccessToken(context.Background(), userID, sessionID, id.RoleClient)
	require.NoError(t, err)
	_, err = newService(time.Hour).ValidateToken(issued.Token)
	assert.Error(t, err)

	issued, err = NewJWTService("test-signing-key", "someone-else", time.Hour).
		GenerateAccessToken(context.Background(), userID, sessionID, id.RoleClient)
	require.NoError(t, err)
	_, err = newService(time.Hour).ValidateToken(issued.Token)
	assert.Error(t, err)
}

func TestValidate_RejectsAlgorithmConfusion(t *testing.T) {
	claims := AccessTokenClaims{
		SessionID: sessionID.String(),
		Role:      string(id.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "estatehub",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newService(time.Hour).ValidateToken(unsigned)
	assert.Error(t, err)
}

func TestMiddlewareValidator(t *testing.T) {
	svc := newService(time.Hour)

	t.Run("maps claims", func(t *testing.T) {
		issued, err := svc.GenerateAccessToken(context.Background(), userID, sessionID, id.RoleAgent)
		require.NoError(t, err)

		claims, err := svc.Middleware().ValidateToken(issued.Token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, sessionID.String(), claims.SessionID)
		assert.Equal(t, "AGENT", claims.Role)
	})

	t.Run("token without session is refused", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessTokenClaims{
			Role: string(id.RoleAdmin),
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   userID.String(),
				Issuer:    "estatehub",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		}).SignedString([]byte("test-signing-key"))
		require.NoError(t, err)

		_, err = svc.Middleware().ValidateToken(signed)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
