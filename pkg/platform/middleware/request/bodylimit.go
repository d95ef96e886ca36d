package request

import (
	"net/http"

	"estatehub/pkg/platform/httputil"
)

// BodyLimit caps request bodies at maxBytes. Requests that declare a larger
// Content-Length are refused up front; streamed bodies fail inside the decoder.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				httputil.WriteJSON(w, http.StatusRequestEntityTooLarge, httputil.Envelope{
					Success: false,
					Message: "Request body too large",
				})
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
