package jwttoken

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

// AccessTokenClaims carries the user in sub, the backing session in sid and the
// role the user held at login. The role is advisory; the auth middleware reloads
// it from the live session.
type AccessTokenClaims struct {
	SessionID string `json:"sid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed access token and its identifiers.
type IssuedToken struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

type JWTService struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
}

func NewJWTService(signingKey string, issuer string, tokenTTL time.Duration) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
	}
}

// TTL is the lifetime of issued tokens; sessions expire with their token.
func (s *JWTService) TTL() time.Duration {
	return s.tokenTTL
}

func (s *JWTService) GenerateAccessToken(
	ctx context.Context,
	userID id.UserID,
	sessionID id.SessionID,
	role id.Role,
) (*IssuedToken, error) {
	if userID.IsNil() || sessionID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user and session are required")
	}

	now := requestcontext.Now(ctx)
	expiresAt := now.Add(s.tokenTTL)
	jti := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessTokenClaims{
		SessionID: sessionID.String(),
		Role:      string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        jti,
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return &IssuedToken{Token: signed, JTI: jti, ExpiresAt: expiresAt}, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*AccessTokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &AccessTokenClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*AccessTokenClaims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}
