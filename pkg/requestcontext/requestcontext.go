// Package requestcontext carries request-scoped values (request id, caller
// identity, client metadata, request time) through context.Context.
package requestcontext

import (
	"context"
	"time"

	id "estatehub/pkg/domain"
)

type (
	requestIDKey struct{}
	userIDKey    struct{}
	sessionIDKey struct{}
	roleKey      struct{}
	clientIPKey  struct{}
	userAgentKey struct{}
	timeKey      struct{}
	exposeKey    struct{}
	deviceKey    struct{}
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

func WithUserID(ctx context.Context, userID id.UserID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the authenticated caller, or a nil id for anonymous requests.
func UserID(ctx context.Context) id.UserID {
	v, _ := ctx.Value(userIDKey{}).(id.UserID)
	return v
}

func WithSessionID(ctx context.Context, sessionID id.SessionID) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

func SessionID(ctx context.Context) id.SessionID {
	v, _ := ctx.Value(sessionIDKey{}).(id.SessionID)
	return v
}

func WithRole(ctx context.Context, role id.Role) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

func Role(ctx context.Context) id.Role {
	v, _ := ctx.Value(roleKey{}).(id.Role)
	return v
}

// WithClientMetadata stores the resolved client IP and raw User-Agent.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey{}, clientIP)
	return context.WithValue(ctx, userAgentKey{}, userAgent)
}

func ClientIP(ctx context.Context) string {
	v, _ := ctx.Value(clientIPKey{}).(string)
	return v
}

func UserAgent(ctx context.Context) string {
	v, _ := ctx.Value(userAgentKey{}).(string)
	return v
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, timeKey{}, t)
}

// Now returns the request-scoped time, falling back to the wall clock outside
// of HTTP requests (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(timeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithExposeErrors marks the request as allowed to see internal error detail.
func WithExposeErrors(ctx context.Context, expose bool) context.Context {
	return context.WithValue(ctx, exposeKey{}, expose)
}

func ExposeErrors(ctx context.Context) bool {
	v, _ := ctx.Value(exposeKey{}).(bool)
	return v
}

type deviceInfo struct {
	device  string
	browser string
}

// WithDevice stores the device class and browser parsed from the User-Agent.
func WithDevice(ctx context.Context, device, browser string) context.Context {
	return context.WithValue(ctx, deviceKey{}, deviceInfo{device: device, browser: browser})
}

func Device(ctx context.Context) (device, browser string) {
	v, _ := ctx.Value(deviceKey{}).(deviceInfo)
	return v.device, v.browser
}
