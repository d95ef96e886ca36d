package httputil

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	dErrors "estatehub/pkg/domain-errors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a parsed page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) Offset() int { return (p.Page - 1) * p.Limit }

// Pagination is the pagination block returned with list responses.
type Pagination struct {
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
}

func (p PageRequest) Result(total int64) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return Pagination{Total: total, Limit: p.Limit, Page: p.Page, TotalPages: pages}
}

// ParsePage reads page and limit, falling back to defaults for missing or
// non-positive values and capping limit at MaxPageSize.
func ParsePage(q url.Values, defaultLimit int) PageRequest {
	page := QueryInt(q, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := QueryInt(q, "limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return PageRequest{Page: page, Limit: limit}
}

// Sort is a validated ORDER BY clause.
type Sort struct {
	Column string
	Desc   bool
}

func (s Sort) Clause() string {
	if s.Desc {
		return s.Column + " DESC"
	}
	return s.Column + " ASC"
}

// SortFields maps accepted sortBy values to column names.
type SortFields map[string]string

// ParseSort resolves sortBy/sortOrder against the allow-list. Unknown sortBy or
// sortOrder values are rejected rather than passed through to the query.
func ParseSort(q url.Values, allowed SortFields, defaultKey string) (Sort, error) {
	key := q.Get("sortBy")
	if key == "" {
		key = defaultKey
	}
	column, ok := allowed[key]
	if !ok {
		return Sort{}, dErrors.Newf(dErrors.CodeBadRequest, "unsupported sortBy %q", key)
	}

	desc := true
	switch strings.ToLower(q.Get("sortOrder")) {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return Sort{}, dErrors.New(dErrors.CodeBadRequest, "sortOrder must be asc or desc")
	}
	return Sort{Column: column, Desc: desc}, nil
}

func QueryInt(q url.Values, key string, fallback int) int {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return fallback
	}
	return v
}

// QueryFloat returns nil when the parameter is absent or malformed.
func QueryFloat(q url.Values, key string) *float64 {
	v, err := strconv.ParseFloat(q.Get(key), 64)
	if err != nil {
		return nil
	}
	return &v
}

// QueryBool returns nil unless the parameter is exactly "true" or "false".
func QueryBool(q url.Values, key string) *bool {
	switch q.Get(key) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}

// QueryCSV splits a comma separated parameter, dropping blanks.
func QueryCSV(q url.Values, key string) []string {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
