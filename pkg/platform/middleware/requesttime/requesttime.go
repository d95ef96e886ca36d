// Package requesttime pins a single "now" per request so timestamps written
// during one request (view tracking, lastLogin, reviewedAt) agree.
package requesttime

import (
	"net/http"
	"time"

	"estatehub/pkg/requestcontext"
)

// Middleware stores the request start time in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
