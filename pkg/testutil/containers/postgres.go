//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"estatehub/internal/platform/database"
	id "estatehub/pkg/domain"
)

// PostgresContainer wraps a testcontainers Postgres instance.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
	Gorm      *gorm.DB
}

// NewPostgresContainer starts a new Postgres container with migrations applied.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("estatehub_test"),
		postgres.WithUsername("estatehub"),
		postgres.WithPassword("estatehub_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	if err := database.MigrateUp(dsn); err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to run migrations: %v", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	gdb, err := gorm.Open(gormpg.New(gormpg.Config{Conn: db}), &gorm.Config{
		Logger:  gormlogger.NewSlogLogger(slog.Default(), gormlogger.Config{LogLevel: gormlogger.Silent}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open gorm: %v", err)
	}

	// The container is shared by the Manager across suites; Ryuk removes it
	// when the test process exits.
	return &PostgresContainer{
		Container: container,
		DSN:       dsn,
		DB:        db,
		Gorm:      gdb,
	}
}

// TruncateTables clears all data from the specified tables.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	_, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+strings.Join(tables, ", ")+" CASCADE")
	if err != nil {
		return fmt.Errorf("truncate %v: %w", tables, err)
	}
	return nil
}

// TruncateAll empties every application table.
func (p *PostgresContainer) TruncateAll(ctx context.Context) error {
	return p.TruncateTables(ctx,
		"sessions",
		"property_views",
		"complaints",
		"ratings",
		"favorites",
		"properties",
		"user_verifications",
		"agent_profiles",
		"users",
	)
}

func (p *PostgresContainer) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return p.DB.ExecContext(ctx, query, args...)
}

// CreateTestUser inserts a user with the given role and returns its ID.
func (p *PostgresContainer) CreateTestUser(ctx context.Context, t testing.TB, role id.Role) id.UserID {
	t.Helper()
	userID := id.NewUserID()
	_, err := p.Exec(ctx, `
		INSERT INTO users (id, first_name, last_name, email, password_hash, role)
		VALUES ($1, 'Test', 'User', $2, 'x', $3)
	`, userID.String(), "test-"+userID.String()+"@example.com", string(role))
	if err != nil {
		t.Fatalf("CreateTestUser: %v", err)
	}
	return userID
}

// CreateTestProperty inserts an AVAILABLE listing posted by owner and returns its ID.
func (p *PostgresContainer) CreateTestProperty(ctx context.Context, t testing.TB, owner id.UserID, price float64) id.PropertyID {
	t.Helper()
	propertyID := id.NewPropertyID()
	_, err := p.Exec(ctx, `
		INSERT INTO properties (id, title, description, type, listing_type, price, address, city, state, image_urls, posted_by_id)
		VALUES ($1, 'Test listing', 'desc', 'HOUSE', 'FOR_RENT', $2, '1 Test St', 'Lagos', 'Lagos', '{https://img.example/1.jpg}', $3)
	`, propertyID.String(), price, owner.String())
	if err != nil {
		t.Fatalf("CreateTestProperty: %v", err)
	}
	return propertyID
}
