package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"estatehub/internal/auth/models"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
)

const (
	sessionKeyPrefix     = "session:"
	userSessionKeyPrefix = "user_sessions:"

	// userSetGrace keeps the per-user index around slightly longer than its
	// newest session so DeleteByUser can still find stragglers.
	userSetGrace = time.Hour
)

type sessionJSON struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	TokenID   string `json:"token_id"`
	Device    string `json:"device,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
	CreatedAt int64  `json:"created_at"` // Unix nano
	ExpiresAt int64  `json:"expires_at"` // Unix nano
}

func sessionToJSON(s *models.Session) *sessionJSON {
	return &sessionJSON{
		ID:        s.ID.String(),
		UserID:    s.UserID.String(),
		TokenID:   s.TokenID,
		Device:    s.Device,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt.UnixNano(),
		ExpiresAt: s.ExpiresAt.UnixNano(),
	}
}

func sessionFromJSON(j *sessionJSON) (*models.Session, error) {
	sessionID, err := uuid.Parse(j.ID)
	if err != nil {
		return nil, fmt.Errorf("parse session id: %w", err)
	}
	userID, err := uuid.Parse(j.UserID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	return &models.Session{
		ID:        id.SessionID(sessionID),
		UserID:    id.UserID(userID),
		TokenID:   j.TokenID,
		Device:    j.Device,
		IPAddress: j.IPAddress,
		CreatedAt: time.Unix(0, j.CreatedAt).UTC(),
		ExpiresAt: time.Unix(0, j.ExpiresAt).UTC(),
	}, nil
}

// RedisStore keeps sessions in Redis so several server instances share them.
// Keys expire with the session, so no sweeper is needed.
type RedisStore struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewRedis(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func sessionKey(sessionID id.SessionID) string {
	return sessionKeyPrefix + sessionID.String()
}

func userSessionsKey(userID id.UserID) string {
	return userSessionKeyPrefix + userID.String()
}

func (s *RedisStore) Create(ctx context.Context, session *models.Session) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("session already expired: %w", sentinel.ErrInvalidInput)
	}

	data, err := json.Marshal(sessionToJSON(session))
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	userKey := userSessionsKey(session.UserID)
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(session.ID), data, ttl)
	pipe.SAdd(ctx, userKey, session.ID.String())
	pipe.Expire(ctx, userKey, ttl+userSetGrace)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find session by id: %w", err)
	}

	var j sessionJSON
	if err := json.Unmarshal([]byte(data), &j); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return sessionFromJSON(&j)
}

// Delete removes one session. Deleting a missing session is not an error.
func (s *RedisStore) Delete(ctx context.Context, sessionID id.SessionID) error {
	session, err := s.FindByID(ctx, sessionID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKey(sessionID))
	pipe.SRem(ctx, userSessionsKey(session.UserID), sessionID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteByUser removes every live session of userID and returns how many existed.
func (s *RedisStore) DeleteByUser(ctx context.Context, userID id.UserID) (int, error) {
	userKey := userSessionsKey(userID)
	sessionIDs, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return 0, fmt.Errorf("list session ids for delete: %w", err)
	}
	if len(sessionIDs) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(sessionIDs))
	for _, sid := range sessionIDs {
		keys = append(keys, sessionKeyPrefix+sid)
	}

	pipe := s.client.TxPipeline()
	deleted := pipe.Del(ctx, keys...)
	pipe.Del(ctx, userKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("delete sessions by user: %w", err)
	}
	return int(deleted.Val()), nil
}

// DeleteExpired is a no-op: Redis expires session keys on its own.
func (s *RedisStore) DeleteExpired(context.Context, time.Time) (int, error) {
	return 0, nil
}
