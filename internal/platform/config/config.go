package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures everything cmd/server needs to wire the application.
type Server struct {
	Addr           string
	Environment    string
	LogLevel       string
	JWTSigningKey  string
	TokenTTL       time.Duration
	RequestTimeout time.Duration
	TrustedProxies []string
	MetricsToken   string

	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Storage   StorageConfig
	Dashboard DashboardConfig
	Seed      SeedConfig
}

// DatabaseConfig configures the Postgres pool shared by database/sql and gorm.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogQueries      bool
}

// RedisConfig configures the optional Redis session store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional audit event sink.
type KafkaConfig struct {
	Brokers    string
	AuditTopic string
}

// StorageConfig points at the object-storage upload API for listing media.
type StorageConfig struct {
	UploadURL string
	APIKey    string
	Folder    string
	Timeout   time.Duration
}

// DashboardConfig tunes the admin dashboard aggregator.
type DashboardConfig struct {
	Lookback     time.Duration
	QueryTimeout time.Duration
}

// SeedConfig describes the bootstrap super admin account.
type SeedConfig struct {
	SuperAdminEmail    string
	SuperAdminPassword string
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultSigningKey = "dev-secret-key-change-in-production"
)

// IsDevelopment reports whether internal error detail may be returned to clients.
func (s Server) IsDevelopment() bool {
	return s.Environment == EnvDevelopment
}

// FromEnv resolves configuration from defaults, then the optional YAML file named by
// ESTATEHUB_CONFIG, then environment variables.
func FromEnv() (Server, error) {
	return Load(os.Getenv("ESTATEHUB_CONFIG"))
}

// Load is FromEnv with an explicit config file path. An empty path skips the file.
func Load(path string) (Server, error) {
	cfg := defaults()
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Server{}, err
		}
	}
	applyEnv(&cfg)

	if cfg.Environment == EnvProduction && cfg.JWTSigningKey == defaultSigningKey {
		return Server{}, fmt.Errorf("JWT_SIGNING_KEY must be set in production")
	}
	if cfg.Database.URL == "" {
		return Server{}, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func defaults() Server {
	return Server{
		Addr:           ":8080",
		Environment:    EnvProduction,
		LogLevel:       "info",
		JWTSigningKey:  defaultSigningKey,
		TokenTTL:       7 * 24 * time.Hour,
		RequestTimeout: 30 * time.Second,
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka:     KafkaConfig{AuditTopic: "estatehub.audit"},
		Storage:   StorageConfig{Folder: "properties", Timeout: 20 * time.Second},
		Dashboard: DashboardConfig{Lookback: 30 * 24 * time.Hour},
	}
}

func applyEnv(cfg *Server) {
	cfg.Addr = getenv("ESTATEHUB_ADDR", cfg.Addr)
	cfg.Environment = getenv("APP_ENV", cfg.Environment)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.JWTSigningKey = getenv("JWT_SIGNING_KEY", cfg.JWTSigningKey)
	cfg.TokenTTL = durationEnv("TOKEN_TTL", cfg.TokenTTL)
	cfg.RequestTimeout = durationEnv("REQUEST_TIMEOUT", cfg.RequestTimeout)
	if proxies := listEnv("TRUSTED_PROXIES"); proxies != nil {
		cfg.TrustedProxies = proxies
	}
	cfg.MetricsToken = getenv("METRICS_TOKEN", cfg.MetricsToken)

	cfg.Database.URL = getenv("DATABASE_URL", cfg.Database.URL)
	cfg.Database.MaxOpenConns = intEnv("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = intEnv("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)
	cfg.Database.ConnMaxLifetime = durationEnv("DB_CONN_MAX_LIFETIME", cfg.Database.ConnMaxLifetime)
	if v := os.Getenv("DB_LOG_QUERIES"); v != "" {
		cfg.Database.LogQueries = v == "true"
	}

	cfg.Redis.URL = getenv("REDIS_URL", cfg.Redis.URL)
	cfg.Redis.PoolSize = intEnv("REDIS_POOL_SIZE", cfg.Redis.PoolSize)
	cfg.Redis.MinIdleConns = intEnv("REDIS_MIN_IDLE_CONNS", cfg.Redis.MinIdleConns)
	cfg.Redis.DialTimeout = durationEnv("REDIS_DIAL_TIMEOUT", cfg.Redis.DialTimeout)
	cfg.Redis.ReadTimeout = durationEnv("REDIS_READ_TIMEOUT", cfg.Redis.ReadTimeout)
	cfg.Redis.WriteTimeout = durationEnv("REDIS_WRITE_TIMEOUT", cfg.Redis.WriteTimeout)

	cfg.Kafka.Brokers = getenv("KAFKA_BROKERS", cfg.Kafka.Brokers)
	cfg.Kafka.AuditTopic = getenv("AUDIT_TOPIC", cfg.Kafka.AuditTopic)

	cfg.Storage.UploadURL = getenv("STORAGE_UPLOAD_URL", cfg.Storage.UploadURL)
	cfg.Storage.APIKey = getenv("STORAGE_API_KEY", cfg.Storage.APIKey)
	cfg.Storage.Folder = getenv("STORAGE_FOLDER", cfg.Storage.Folder)
	cfg.Storage.Timeout = durationEnv("STORAGE_TIMEOUT", cfg.Storage.Timeout)

	cfg.Dashboard.Lookback = durationEnv("DASHBOARD_LOOKBACK", cfg.Dashboard.Lookback)
	cfg.Dashboard.QueryTimeout = durationEnv("DASHBOARD_QUERY_TIMEOUT", cfg.Dashboard.QueryTimeout)

	cfg.Seed.SuperAdminEmail = getenv("SEED_SUPER_ADMIN_EMAIL", cfg.Seed.SuperAdminEmail)
	cfg.Seed.SuperAdminPassword = getenv("SEED_SUPER_ADMIN_PASSWORD", cfg.Seed.SuperAdminPassword)
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// durationEnv ignores malformed values and keeps the default.
func durationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func listEnv(key string) []string {
	raw := os.Getenv(key)
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
