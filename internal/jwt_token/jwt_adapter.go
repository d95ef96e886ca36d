package jwttoken

import (
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/platform/middleware/auth"
)

// Middleware returns the validator the auth middleware runs on every bearer
// token. Tokens must name both a subject and a session.
func (s *JWTService) Middleware() auth.JWTValidator {
	return middlewareValidator{s}
}

type middlewareValidator struct{ svc *JWTService }

func (m middlewareValidator) ValidateToken(token string) (*auth.JWTClaims, error) {
	c, err := m.svc.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if c.Subject == "" || c.SessionID == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return &auth.JWTClaims{UserID: c.Subject, SessionID: c.SessionID, Role: c.Role}, nil
}
