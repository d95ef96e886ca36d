package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/platform/httputil"
	"estatehub/pkg/requestcontext"
)

// JWTValidator validates a bearer token and returns its claims.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// SessionResolver confirms that the session behind a token is still live and
// returns the caller's current role. Implementations return a domain
// unauthorized error for missing or expired sessions.
type SessionResolver interface {
	ResolveSession(ctx context.Context, userID id.UserID, sessionID id.SessionID) (id.Role, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	UserID    string
	SessionID string
	Role      string
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Envelope{Success: false, Message: message})
}

func bearerToken(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

type identity struct {
	userID    id.UserID
	sessionID id.SessionID
	role      id.Role
}

// authenticate runs the token and session checks shared by RequireAuth and OptionalAuth.
func authenticate(ctx context.Context, token string, validator JWTValidator, sessions SessionResolver) (*identity, error) {
	claims, err := validator.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("validate token: %w", err)
	}

	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid sub: %w", err)
	}
	sessionID, err := id.ParseSessionID(claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid sid: %w", err)
	}

	role, err := sessions.ResolveSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	return &identity{userID: userID, sessionID: sessionID, role: role}, nil
}

func withIdentity(ctx context.Context, who *identity) context.Context {
	ctx = requestcontext.WithUserID(ctx, who.userID)
	ctx = requestcontext.WithSessionID(ctx, who.sessionID)
	return requestcontext.WithRole(ctx, who.role)
}

// RequireAuth rejects requests without a valid bearer token backed by a live
// session, and stores the caller's typed ids and role in the context.
func RequireAuth(validator JWTValidator, sessions SessionResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token, ok := bearerToken(r)
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeUnauthorized(w, "No token provided")
				return
			}

			who, err := authenticate(ctx, token, validator, sessions)
			if err != nil {
				if dErrors.HasCode(err, dErrors.CodeInternal) {
					logger.ErrorContext(ctx, "session lookup failed",
						"error", err,
						"request_id", requestID,
					)
					httputil.WriteError(w, r, err)
					return
				}
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(ctx, who)))
		})
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present
// and otherwise lets the request through anonymously.
func OptionalAuth(validator JWTValidator, sessions SessionResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			who, err := authenticate(ctx, token, validator, sessions)
			if err != nil {
				logger.DebugContext(ctx, "optional auth ignored token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(ctx, who)))
		})
	}
}

// RequireRole allows only callers whose role is in roles. It must run after RequireAuth.
func RequireRole(logger *slog.Logger, roles ...id.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if requestcontext.UserID(ctx).IsNil() {
				writeUnauthorized(w, "Not authorized")
				return
			}

			role := requestcontext.Role(ctx)
			if !slices.Contains(roles, role) {
				logger.WarnContext(ctx, "forbidden - role not allowed",
					"role", role,
					"user_id", requestcontext.UserID(ctx).String(),
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteJSON(w, http.StatusForbidden, httputil.Envelope{
					Success: false,
					Message: "Access denied: insufficient permissions",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
