//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"estatehub/internal/auth/models"
	"estatehub/internal/auth/store/session"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	"estatehub/pkg/testutil/containers"
)

type sessionStore interface {
	Create(ctx context.Context, s *models.Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
	Delete(ctx context.Context, sessionID id.SessionID) error
	DeleteByUser(ctx context.Context, userID id.UserID) (int, error)
}

// StoreSuite runs the same contract against the Postgres and Redis stores.
type StoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    sessionStore
	reset    func(ctx context.Context) error
	userID   id.UserID
}

func TestGormStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	suite.Run(t, &StoreSuite{
		postgres: pg,
		store:    session.NewGorm(pg.Gorm),
		reset:    pg.TruncateAll,
	})
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)
	suite.Run(t, &StoreSuite{
		postgres: containers.GetManager().GetPostgres(t),
		store:    session.NewRedis(rc.Client),
		reset:    rc.Flush,
	})
}

func (s *StoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateAll(ctx))
	s.Require().NoError(s.reset(ctx))
	s.userID = s.postgres.CreateTestUser(ctx, s.T(), id.RoleClient)
}

func (s *StoreSuite) newSession() *models.Session {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Session{
		ID:        id.NewSessionID(),
		UserID:    s.userID,
		TokenID:   uuid.NewString(),
		Device:    "desktop",
		IPAddress: "10.0.0.0",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func (s *StoreSuite) TestCreateFindDelete() {
	ctx := context.Background()
	sess := s.newSession()
	s.Require().NoError(s.store.Create(ctx, sess))

	found, err := s.store.FindByID(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(sess.UserID, found.UserID)
	s.Equal(sess.TokenID, found.TokenID)
	s.True(sess.ExpiresAt.Equal(found.ExpiresAt))

	s.Require().NoError(s.store.Delete(ctx, sess.ID))
	_, err = s.store.FindByID(ctx, sess.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.NoError(s.store.Delete(ctx, sess.ID), "deleting twice is a no-op")
}

func (s *StoreSuite) TestDeleteByUser() {
	ctx := context.Background()
	first, second := s.newSession(), s.newSession()
	s.Require().NoError(s.store.Create(ctx, first))
	s.Require().NoError(s.store.Create(ctx, second))

	n, err := s.store.DeleteByUser(ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(2, n)

	_, err = s.store.FindByID(ctx, first.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	n, err = s.store.DeleteByUser(ctx, s.userID)
	s.Require().NoError(err)
	s.Zero(n)
}
