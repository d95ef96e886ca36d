package httptransport

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"

	id "estatehub/pkg/domain"
	"estatehub/pkg/platform/httputil"
	"estatehub/pkg/platform/middleware/admin"
	"estatehub/pkg/platform/middleware/auth"
	"estatehub/pkg/platform/middleware/metadata"
	"estatehub/pkg/platform/middleware/request"
	"estatehub/pkg/platform/middleware/requesttime"
	limits "estatehub/pkg/platform/validation"
)

const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxBodyBytes   = limits.MaxBodySize
)

// Registrar mounts one bounded context's routes on a sub-router.
type Registrar interface {
	Register(r chi.Router)
}

// SplitRegistrar mounts routes that are split between anonymous and
// authenticated callers.
type SplitRegistrar interface {
	RegisterPublic(r chi.Router)
	RegisterAuthenticated(r chi.Router)
}

// PropertyRegistrar also serves the caller's own listings under /api/users.
type PropertyRegistrar interface {
	SplitRegistrar
	HandleListMine(w http.ResponseWriter, r *http.Request)
}

// Handlers groups the per-context HTTP handlers. Nil handlers are skipped.
type Handlers struct {
	Auth          SplitRegistrar
	Properties    PropertyRegistrar
	Ratings       SplitRegistrar
	Favorites     Registrar
	Complaints    Registrar
	Verifications Registrar
	Landing       Registrar
	Admin         Registrar
	Health        Registrar
}

// Config carries the cross-cutting settings of the HTTP surface.
type Config struct {
	Validator      auth.JWTValidator
	Sessions       auth.SessionResolver
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	ExposeErrors   bool
	TrustedProxies []netip.Prefix
	Latency        *request.Metrics
	MetricsHandler http.Handler
	MetricsToken   string
}

// NewRouter wires every public endpoint with the shared middleware stack.
func NewRouter(h Handlers, cfg Config, logger *slog.Logger) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()

	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.NewMiddleware(metadata.Config{TrustedProxies: cfg.TrustedProxies}).Handler)
	r.Use(request.Logger(logger))
	r.Use(request.ErrorDetail(cfg.ExposeErrors))
	r.Use(request.BodyLimit(cfg.MaxBodyBytes))
	r.Use(request.ContentTypeJSON)
	r.Use(request.LatencyMiddleware(cfg.Latency))

	requireAuth := auth.RequireAuth(cfg.Validator, cfg.Sessions, logger)
	optionalAuth := auth.OptionalAuth(cfg.Validator, cfg.Sessions, logger)

	if h.Health != nil {
		h.Health.Register(r)
	}
	if cfg.MetricsHandler != nil {
		r.With(admin.RequireToken(cfg.MetricsToken, logger)).Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(request.Timeout(cfg.RequestTimeout))

		api.Route("/users", func(users chi.Router) {
			if h.Auth != nil {
				h.Auth.RegisterPublic(users)
			}
			users.Group(func(private chi.Router) {
				private.Use(requireAuth)
				if h.Auth != nil {
					h.Auth.RegisterAuthenticated(private)
				}
				if h.Properties != nil {
					private.Get("/properties", h.Properties.HandleListMine)
				}
			})
		})

		if h.Properties != nil {
			api.Route("/properties", func(props chi.Router) {
				props.Group(func(public chi.Router) {
					public.Use(optionalAuth)
					h.Properties.RegisterPublic(public)
				})
				props.Group(func(private chi.Router) {
					private.Use(requireAuth)
					h.Properties.RegisterAuthenticated(private)
				})
			})
		}

		if h.Ratings != nil {
			api.Route("/ratings", func(ratings chi.Router) {
				h.Ratings.RegisterPublic(ratings)
				ratings.Group(func(private chi.Router) {
					private.Use(requireAuth)
					h.Ratings.RegisterAuthenticated(private)
				})
			})
		}

		mountAuthenticated(api, "/favorites", h.Favorites, requireAuth)
		mountAuthenticated(api, "/complaints", h.Complaints, requireAuth)
		mountAuthenticated(api, "/verifications", h.Verifications, requireAuth)

		if h.Landing != nil {
			api.Route("/landing", func(landing chi.Router) {
				landing.Use(optionalAuth)
				h.Landing.Register(landing)
			})
		}

		if h.Admin != nil {
			api.Route("/admin", func(adm chi.Router) {
				adm.Use(requireAuth)
				adm.Use(auth.RequireRole(logger, id.RoleAdmin, id.RoleSuperAdmin))
				h.Admin.Register(adm)
			})
		}
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.Envelope{Success: false, Message: "Route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.Envelope{Success: false, Message: "Method not allowed"})
	})

	return r
}

func mountAuthenticated(api chi.Router, pattern string, reg Registrar, requireAuth func(http.Handler) http.Handler) {
	if reg == nil {
		return
	}
	api.Route(pattern, func(sub chi.Router) {
		sub.Use(requireAuth)
		reg.Register(sub)
	})
}
