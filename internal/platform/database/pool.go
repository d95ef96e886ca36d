package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"estatehub/internal/platform/config"
)

const (
	pingAttempts = 5
	pingTimeout  = 5 * time.Second
	pingBackoff  = time.Second

	uniqueViolation = "23505"
)

// Pool is the process-wide Postgres connection pool.
type Pool struct {
	db         *sql.DB
	logQueries bool
}

// New opens the pool and waits for Postgres to answer a ping. The server
// container may still be starting, so a failed ping is retried a few times
// with growing pauses.
func New(cfg config.DatabaseConfig) (*Pool, error) {
	if cfg.URL == "" {
		return nil, errors.New("database url not configured")
	}
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Pool{db: db, logQueries: cfg.LogQueries}, nil
}

func ping(db *sql.DB) error {
	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		err = db.PingContext(ctx)
		cancel()
		if err == nil {
			return nil
		}
		if attempt < pingAttempts {
			time.Sleep(time.Duration(attempt) * pingBackoff)
		}
	}
	return fmt.Errorf("ping database after %d attempts: %w", pingAttempts, err)
}

func (p *Pool) DB() *sql.DB {
	return p.db
}

// Health is the readiness check for the database.
func (p *Pool) Health(ctx context.Context) error {
	if p == nil || p.db == nil {
		return errors.New("database not configured")
	}
	return p.db.PingContext(ctx)
}

func (p *Pool) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// Collector exports the pool's connection statistics to Prometheus.
func (p *Pool) Collector() prometheus.Collector {
	return collectors.NewDBStatsCollector(p.db, "estatehub")
}

// IsUniqueViolation reports whether a unique constraint rejected the write.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// ConstraintName is the constraint a Postgres error names, or "".
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
