// Package objectstore uploads listing media to an external object-storage API
// and returns the public URL of each stored object.
package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"estatehub/pkg/platform/circuit"
)

var (
	ErrNotConfigured = errors.New("object storage not configured")
	ErrRejected      = errors.New("object storage rejected upload")
	ErrUnavailable   = errors.New("object storage unavailable")
)

// HTTPDoer is the part of *http.Client the uploader needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	UploadURL  string
	APIKey     string
	Folder     string
	Timeout    time.Duration
	HTTPClient HTTPDoer
	Breaker    *circuit.Breaker
}

// Uploader posts payloads as multipart forms: file, folder and api_key.
// The API answers with {"secure_url": "...", "public_id": "..."}.
type Uploader struct {
	uploadURL string
	apiKey    string
	folder    string
	client    HTTPDoer
	breaker   *circuit.Breaker
}

// Object is a stored upload.
type Object struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
}

func New(cfg Config) *Uploader {
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	breaker := cfg.Breaker
	if breaker == nil {
		breaker = circuit.New("objectstore", circuit.WithFailureThreshold(3))
	}
	return &Uploader{
		uploadURL: cfg.UploadURL,
		apiKey:    cfg.APIKey,
		folder:    cfg.Folder,
		client:    client,
		breaker:   breaker,
	}
}

// Upload stores one payload. payload is either a data URI ("data:image/png;base64,...")
// or raw base64 that the storage API accepts in its file field.
func (u *Uploader) Upload(ctx context.Context, payload string) (*Object, error) {
	if u.uploadURL == "" {
		return nil, ErrNotConfigured
	}

	var obj *Object
	var rejected error
	err := u.breaker.Do(func() error {
		var err error
		obj, err = u.post(ctx, payload)
		if errors.Is(err, ErrRejected) {
			// a bad payload says nothing about upstream health
			rejected = err
			return nil
		}
		return err
	})
	switch {
	case errors.Is(err, circuit.ErrOpen):
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	case err != nil:
		return nil, err
	case rejected != nil:
		return nil, rejected
	}
	return obj, nil
}

func (u *Uploader) post(ctx context.Context, payload string) (*Object, error) {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	fields := map[string]string{"file": payload, "folder": u.folder, "api_key": u.apiKey}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := form.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("build upload form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, body)
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: upload timed out: %w", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var obj Object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}
	if obj.URL == "" {
		return nil, fmt.Errorf("%w: response missing secure_url", ErrUnavailable)
	}
	return &obj, nil
}

// IsPayload reports whether s should be uploaded rather than stored as a URL.
func IsPayload(s string) bool {
	return strings.HasPrefix(s, "data:")
}
