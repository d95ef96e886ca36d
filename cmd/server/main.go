package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	adminadapters "estatehub/internal/admin/adapters"
	"estatehub/internal/admin/dashboard"
	adminhandler "estatehub/internal/admin/handler"
	adminservice "estatehub/internal/admin/service"
	"estatehub/internal/audit"
	authhandler "estatehub/internal/auth/handler"
	authservice "estatehub/internal/auth/service"
	sessionstore "estatehub/internal/auth/store/session"
	userstore "estatehub/internal/auth/store/user"
	"estatehub/internal/auth/workers/cleanup"
	complainthandler "estatehub/internal/complaint/handler"
	complaintservice "estatehub/internal/complaint/service"
	complaintstore "estatehub/internal/complaint/store"
	favoritehandler "estatehub/internal/favorite/handler"
	favoriteservice "estatehub/internal/favorite/service"
	favoritestore "estatehub/internal/favorite/store"
	jwttoken "estatehub/internal/jwt_token"
	landinghandler "estatehub/internal/landing/handler"
	landingservice "estatehub/internal/landing/service"
	landingstore "estatehub/internal/landing/store"
	"estatehub/internal/platform/config"
	"estatehub/internal/platform/database"
	"estatehub/internal/platform/health"
	"estatehub/internal/platform/kafka/producer"
	"estatehub/internal/platform/logger"
	"estatehub/internal/platform/metrics"
	"estatehub/internal/platform/objectstore"
	"estatehub/internal/platform/redis"
	"estatehub/internal/platform/tracer"
	propertyhandler "estatehub/internal/property/handler"
	propertyservice "estatehub/internal/property/service"
	propertystore "estatehub/internal/property/store"
	ratinghandler "estatehub/internal/rating/handler"
	ratingservice "estatehub/internal/rating/service"
	ratingstore "estatehub/internal/rating/store"
	"estatehub/internal/seeder"
	httptransport "estatehub/internal/transport/http"
	verificationhandler "estatehub/internal/verification/handler"
	verificationservice "estatehub/internal/verification/service"
	verificationstore "estatehub/internal/verification/store"
	"estatehub/pkg/platform/middleware/metadata"
	"estatehub/pkg/platform/middleware/request"
)

const (
	tokenIssuer          = "estatehub"
	auditBufferSize      = 1024
	auditMemoryCapacity  = 10000
	sessionSweepInterval = time.Hour
	shutdownTimeout      = 10 * time.Second
)

// sessionBackend is satisfied by both the Postgres and the Redis session stores.
type sessionBackend interface {
	authservice.SessionStore
	adminadapters.AuthSessionStore
	cleanup.SessionStore
}

// infra holds the process-wide clients that must be closed on shutdown.
type infra struct {
	pool     *database.Pool
	db       *gorm.DB
	redis    *redis.Client
	producer *producer.Producer
	audit    *audit.Publisher
}

func (i *infra) close(log *slog.Logger) {
	if i.audit != nil {
		i.audit.Close()
	}
	if i.producer != nil {
		if err := i.producer.Close(); err != nil {
			log.Error("failed to close kafka producer", "error", err)
		}
	}
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			log.Error("failed to close redis client", "error", err)
		}
	}
	if err := i.pool.Close(); err != nil {
		log.Error("failed to close database pool", "error", err)
	}
}

func main() {
	seedOnly := flag.Bool("seed", false, "seed the SUPER_ADMIN account and exit")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log, *seedOnly); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger, seedOnly bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("initializing estatehub",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	if err := database.MigrateUp(cfg.Database.URL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	deps, err := openInfra(cfg, log)
	if err != nil {
		return err
	}
	defer deps.close(log)

	m := metrics.New(prometheus.DefaultRegisterer)
	prometheus.MustRegister(deps.pool.Collector())
	users := userstore.NewGorm(deps.db)

	if cfg.Seed.SuperAdminEmail != "" || seedOnly {
		s := seeder.New(users, deps.audit, log)
		if err := s.SeedSuperAdmin(ctx, cfg.Seed.SuperAdminEmail, cfg.Seed.SuperAdminPassword); err != nil {
			return fmt.Errorf("seed super admin: %w", err)
		}
		if seedOnly {
			return nil
		}
	}

	var sessions sessionBackend = sessionstore.NewGorm(deps.db)
	if deps.redis != nil {
		sessions = sessionstore.NewRedis(deps.redis.Client)
		prometheus.MustRegister(deps.redis.Collector())
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, tokenIssuer, cfg.TokenTTL)
	authSvc := authservice.New(users, sessions, jwtService,
		authservice.WithLogger(log),
		authservice.WithAuditPublisher(deps.audit),
		authservice.WithMetrics(m),
	)

	uploader := objectstore.New(objectstore.Config{
		UploadURL: cfg.Storage.UploadURL,
		APIKey:    cfg.Storage.APIKey,
		Folder:    cfg.Storage.Folder,
		Timeout:   cfg.Storage.Timeout,
	})
	propertySvc := propertyservice.New(propertystore.NewGorm(deps.db), uploader,
		propertyservice.WithLogger(log),
		propertyservice.WithAuditPublisher(deps.audit),
		propertyservice.WithMetrics(m),
	)
	favoriteSvc := favoriteservice.New(favoritestore.NewGorm(deps.db), favoriteservice.WithLogger(log), favoriteservice.WithMetrics(m))
	ratingSvc := ratingservice.New(ratingstore.NewGorm(deps.db), ratingservice.WithLogger(log), ratingservice.WithMetrics(m))
	complaintSvc := complaintservice.New(complaintstore.NewGorm(deps.db), complaintservice.WithLogger(log), complaintservice.WithMetrics(m))
	verificationSvc := verificationservice.New(verificationstore.NewGorm(deps.db),
		verificationservice.WithLogger(log),
		verificationservice.WithMetrics(m),
	)
	otel := tracer.NewOTel()
	landingSvc := landingservice.New(landingstore.NewGorm(deps.db), propertySvc,
		landingservice.WithLogger(log),
		landingservice.WithTracer(otel),
	)

	aggregator := dashboard.New(dashboard.NewGormSource(deps.db),
		dashboard.WithLookback(cfg.Dashboard.Lookback),
		dashboard.WithQueryTimeout(cfg.Dashboard.QueryTimeout),
		dashboard.WithLogger(log),
		dashboard.WithMetrics(m),
		dashboard.WithTracer(otel),
	)
	adminSvc, err := adminservice.New(adminservice.Deps{
		Dashboard:     aggregator,
		Users:         users,
		Profiles:      authSvc,
		Sessions:      adminadapters.NewSessionStoreAdapter(sessions),
		Verifications: verificationSvc,
		Complaints:    complaintSvc,
		Properties:    propertySvc,
		AuditLog:      deps.audit,
	}, adminservice.WithLogger(log), adminservice.WithMetrics(m))
	if err != nil {
		return fmt.Errorf("admin service: %w", err)
	}

	sweeper, err := cleanup.New(sessions, cleanup.WithInterval(sessionSweepInterval), cleanup.WithLogger(log))
	if err != nil {
		return fmt.Errorf("session cleanup: %w", err)
	}
	go func() {
		if err := sweeper.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("session cleanup stopped", "error", err)
		}
	}()

	probes := health.New(cfg.Environment)
	probes.RegisterCheck("database", deps.pool.Health)
	if deps.redis != nil {
		probes.RegisterCheck("redis", deps.redis.Health)
	}
	if deps.producer != nil {
		probes.RegisterCheck("kafka", deps.producer.Health)
	}

	trusted, err := metadata.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}

	router := httptransport.NewRouter(httptransport.Handlers{
		Auth:          authhandler.New(authSvc, log),
		Properties:    propertyhandler.New(propertySvc, log),
		Ratings:       ratinghandler.New(ratingSvc, log),
		Favorites:     favoritehandler.New(favoriteSvc, log),
		Complaints:    complainthandler.New(complaintSvc, log),
		Verifications: verificationhandler.New(verificationSvc, log),
		Landing:       landinghandler.New(landingSvc, log),
		Admin:         adminhandler.New(adminSvc, log),
		Health:        probes,
	}, httptransport.Config{
		Validator:      jwtService.Middleware(),
		Sessions:       authSvc,
		RequestTimeout: cfg.RequestTimeout,
		ExposeErrors:   cfg.IsDevelopment(),
		TrustedProxies: trusted,
		Latency:        request.NewMetrics(),
		MetricsHandler: promhttp.Handler(),
		MetricsToken:   cfg.MetricsToken,
	}, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// openInfra connects to Postgres and, when configured, Redis and Kafka. The
// audit publisher always keeps a bounded in-memory window for /api/admin/audit.
func openInfra(cfg config.Server, log *slog.Logger) (*infra, error) {
	pool, err := database.New(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	deps := &infra{pool: pool}

	deps.db, err = database.OpenGorm(pool, log)
	if err != nil {
		deps.close(log)
		return nil, fmt.Errorf("gorm: %w", err)
	}

	deps.redis, err = redis.New(cfg.Redis)
	if err != nil {
		deps.close(log)
		return nil, fmt.Errorf("redis: %w", err)
	}
	if deps.redis == nil {
		log.Info("REDIS_URL not set, sessions are stored in postgres")
	}

	publisherOpts := []audit.PublisherOption{
		audit.WithAsyncBuffer(auditBufferSize),
		audit.WithPublisherLogger(log),
	}
	if cfg.Kafka.Brokers != "" {
		deps.producer, err = producer.New(producer.DefaultConfig(cfg.Kafka.Brokers), log)
		if err != nil {
			deps.close(log)
			return nil, fmt.Errorf("kafka: %w", err)
		}
		publisherOpts = append(publisherOpts, audit.WithSink(audit.NewKafkaSink(deps.producer, cfg.Kafka.AuditTopic)))
	}
	deps.audit = audit.NewPublisher(audit.NewInMemoryStore(auditMemoryCapacity), publisherOpts...)

	return deps, nil
}
