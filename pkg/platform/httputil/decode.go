package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

// DecodeJSON reads exactly one JSON value from the body into T. It answers
// 413 when the body ran past the BodyLimit cap and 400 for anything else it
// cannot use, returning false in both cases.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	var req T
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(&req)
	if err == nil && dec.More() {
		err = errTrailingData
	}
	if err == nil {
		return &req, true
	}

	ctx := r.Context()
	logger.WarnContext(ctx, "request body rejected",
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		WriteJSON(w, http.StatusRequestEntityTooLarge, Envelope{Message: "Request body too large"})
	case errors.Is(err, io.EOF):
		WriteError(w, r, dErrors.New(dErrors.CodeBadRequest, "Request body is required"))
	default:
		WriteError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
	}
	return nil, false
}

var errTrailingData = errors.New("unexpected data after JSON body")

// Validatable is implemented by request types that support validation.
type Validatable interface {
	Validate() error
}

// Normalizable is implemented by request types that support normalization.
type Normalizable interface {
	Normalize()
}

// Sanitizable is implemented by request types that support sanitization.
type Sanitizable interface {
	Sanitize()
}

// PrepareRequest sanitizes, normalizes, and validates a request, in that order.
func PrepareRequest(req any) error {
	if s, ok := req.(Sanitizable); ok {
		s.Sanitize()
	}
	if n, ok := req.(Normalizable); ok {
		n.Normalize()
	}
	if v, ok := req.(Validatable); ok {
		return v.Validate()
	}
	return nil
}

// DecodeAndPrepare combines JSON decoding with PrepareRequest. Validation
// failures that are not already domain errors are reported as validation_failed.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	req, ok := DecodeJSON[T](w, r, logger)
	if !ok {
		return nil, false
	}

	if err := PrepareRequest(req); err != nil {
		ctx := r.Context()
		logger.WarnContext(ctx, "invalid request",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		var domainErr *dErrors.Error
		if errors.As(err, &domainErr) {
			WriteError(w, r, err)
		} else {
			WriteError(w, r, dErrors.New(dErrors.CodeValidation, err.Error()))
		}
		return nil, false
	}

	return req, true
}
