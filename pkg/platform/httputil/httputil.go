package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

// Envelope is the response body shape shared by every endpoint.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      string      `json:"error,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; an encoding failure cannot change the status.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteData writes a success envelope around data.
func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Envelope{Success: true, Data: data})
}

// WriteMessage writes a success envelope with a message and optional data.
func WriteMessage(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// WritePage writes a paginated list envelope.
func WritePage(w http.ResponseWriter, data any, p Pagination) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: &p})
}

// WriteError translates a domain error into a status code and a failure envelope.
// The cause is only exposed when the request carries the error-detail flag
// (development environment).
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	env := Envelope{Success: false, Message: "Server error"}
	status := http.StatusInternalServerError

	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		status = DomainCodeToHTTPStatus(domainErr.Code)
		if domainErr.Message != "" {
			env.Message = domainErr.Message
		}
		if r != nil && requestcontext.ExposeErrors(r.Context()) {
			env.Error = domainErr.Detail()
		}
	} else if r != nil && requestcontext.ExposeErrors(r.Context()) {
		env.Error = err.Error()
	}

	WriteJSON(w, status, env)
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RequireUserID extracts the authenticated user ID from context.
// A missing id behind RequireAuth is a wiring bug, so it maps to an internal error.
func RequireUserID(ctx context.Context, logger *slog.Logger) (id.UserID, error) {
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		if logger != nil {
			logger.ErrorContext(ctx, "userID missing from context despite auth middleware",
				"request_id", requestcontext.RequestID(ctx))
		}
		return id.UserID{}, dErrors.New(dErrors.CodeInternal, "authentication context error")
	}
	return userID, nil
}
