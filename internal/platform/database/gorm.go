package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenGorm layers gorm over the existing pool so both share one set of connections.
func OpenGorm(pool *Pool, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: pool.DB()}), &gorm.Config{
		Logger: gormlogger.NewSlogLogger(logger, gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormLogLevel(pool),
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return db, nil
}

// gormLogLevel logs every statement when DB_LOG_QUERIES is on and only slow
// queries and errors otherwise.
func gormLogLevel(pool *Pool) gormlogger.LogLevel {
	if pool.logQueries {
		return gormlogger.Info
	}
	return gormlogger.Warn
}
