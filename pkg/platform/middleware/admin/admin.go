// Package admin guards operator-only surfaces (the Prometheus scrape endpoint)
// with a static bearer token.
package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"estatehub/pkg/platform/httputil"
	"estatehub/pkg/requestcontext"
)

// RequireToken rejects requests whose bearer token does not match expected.
// An empty expected token disables the check.
func RequireToken(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if expected == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
				ctx := r.Context()
				logger.WarnContext(ctx, "operator token mismatch",
					"path", r.URL.Path,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Envelope{Success: false, Message: "operator token required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
