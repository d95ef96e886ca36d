package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"estatehub/internal/landing/models"
	propertyhandler "estatehub/internal/property/handler"
	property "estatehub/internal/property/models"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/platform/httputil"
	limits "estatehub/pkg/platform/validation"
	"estatehub/pkg/requestcontext"
)

const landingPageSize = 12

type Service interface {
	Page(ctx context.Context, f property.Filter, q property.ListQuery) (*models.Page, error)
	Suggestions(ctx context.Context, term string, kind models.SuggestionKind) ([]models.Suggestion, error)
}

// Handler serves the public /api/landing routes.
type Handler struct {
	landing Service
	logger  *slog.Logger
}

func New(landing Service, logger *slog.Logger) *Handler {
	return &Handler{landing: landing, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandlePage)
	r.Get("/search-suggestions", h.HandleSuggestions)
}

// HandlePage accepts the same filters, sort keys and paging as the property
// listing, with a larger default page.
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter, err := propertyhandler.ParseFilter(q)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	page := httputil.ParsePage(q, landingPageSize)
	sort, err := httputil.ParseSort(q, propertyhandler.SortFields, "createdAt")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	result, err := h.landing.Page(ctx, filter, property.ListQuery{
		Offset: page.Offset(), Limit: page.Limit, OrderBy: sort.Clause(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load landing page",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, models.NewPageResponse(result, page.Result(result.Total)))
}

func (h *Handler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	term := q.Get("query")
	if term == "" {
		term = q.Get("q")
	}
	term = strings.TrimSpace(term)
	if err := limits.CheckStringLength("query", term, limits.MaxSearchLength); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	kind := models.SuggestAll
	if raw := q.Get("type"); raw != "" {
		kind = models.SuggestionKind(strings.ToLower(raw))
		if !kind.IsValid() {
			httputil.WriteError(w, r, dErrors.Newf(dErrors.CodeBadRequest, "unknown suggestion type %q", raw))
			return
		}
	}

	suggestions, err := h.landing.Suggestions(ctx, term, kind)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load search suggestions",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, models.NewSuggestionResponses(suggestions))
}
