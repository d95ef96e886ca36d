package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estatehub/internal/auth/models"
	"estatehub/internal/platform/database"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
)

type sessionRow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid"`
	TokenID   string
	Device    *string
	IPAddress *string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (sessionRow) TableName() string { return "sessions" }

// GormStore keeps sessions in the Postgres sessions table. It is used when no
// Redis URL is configured.
type GormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, session *models.Session) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}
	row := sessionRow{
		ID:        uuid.UUID(session.ID),
		UserID:    uuid.UUID(session.UserID),
		TokenID:   session.TokenID,
		Device:    optional(session.Device),
		IPAddress: optional(session.IPAddress),
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("session token reused: %w", sentinel.ErrAlreadyExists)
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *GormStore) FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error) {
	var row sessionRow
	err := s.db.WithContext(ctx).Where("id = ?", uuid.UUID(sessionID)).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find session by id: %w", err)
	}
	return &models.Session{
		ID:        id.SessionID(row.ID),
		UserID:    id.UserID(row.UserID),
		TokenID:   row.TokenID,
		Device:    value(row.Device),
		IPAddress: value(row.IPAddress),
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

// Delete removes one session. Deleting a missing session is not an error.
func (s *GormStore) Delete(ctx context.Context, sessionID id.SessionID) error {
	err := s.db.WithContext(ctx).Where("id = ?", uuid.UUID(sessionID)).Delete(&sessionRow{}).Error
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteByUser removes every session of userID and returns how many were removed.
func (s *GormStore) DeleteByUser(ctx context.Context, userID id.UserID) (int, error) {
	res := s.db.WithContext(ctx).Where("user_id = ?", uuid.UUID(userID)).Delete(&sessionRow{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete sessions by user: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

// DeleteExpired purges sessions whose expiry is at or before now.
func (s *GormStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&sessionRow{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
