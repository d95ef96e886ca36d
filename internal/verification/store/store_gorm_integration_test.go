//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"estatehub/internal/sentinel"
	"estatehub/internal/verification/models"
	"estatehub/internal/verification/store"
	id "estatehub/pkg/domain"
	"estatehub/pkg/testutil/containers"
)

type GormStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.GormStore
	user     id.UserID
	admin    id.UserID
}

func TestGormStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(GormStoreSuite))
}

func (s *GormStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewGorm(s.postgres.Gorm)
}

func (s *GormStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateAll(ctx))
	s.user = s.postgres.CreateTestUser(ctx, s.T(), id.RoleLandlord)
	s.admin = s.postgres.CreateTestUser(ctx, s.T(), id.RoleAdmin)
}

func (s *GormStoreSuite) userStatus() string {
	var status string
	s.Require().NoError(s.postgres.Gorm.Raw(`SELECT verification_status FROM users WHERE id = ?`, s.user.String()).Scan(&status).Error)
	return status
}

func (s *GormStoreSuite) submit(docURL string) *models.Verification {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	v := &models.Verification{
		ID:           id.NewVerificationID(),
		UserID:       s.user,
		DocumentType: "NIN",
		DocumentURL:  docURL,
		Status:       id.VerificationPending,
		SubmittedAt:  now,
	}
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Upsert(ctx, v); err != nil {
			return err
		}
		return s.store.SetUserStatus(ctx, s.user, id.VerificationPending, now)
	})
	s.Require().NoError(err)
	return v
}

func (s *GormStoreSuite) TestResubmitKeepsOneRow() {
	ctx := context.Background()
	first := s.submit("https://cdn.example.com/one.png")
	second := s.submit("https://cdn.example.com/two.png")
	s.Equal(first.ID, second.ID)

	got, err := s.store.FindByUser(ctx, s.user)
	s.Require().NoError(err)
	s.Equal("https://cdn.example.com/two.png", got.DocumentURL)
	s.Equal("PENDING", s.userStatus())

	_, total, err := s.store.List(ctx, models.Filter{Status: id.VerificationPending}, models.ListQuery{Limit: 10})
	s.Require().NoError(err)
	s.EqualValues(1, total)
}

func (s *GormStoreSuite) TestDecisionRollsBackTogether() {
	ctx := context.Background()
	v := s.submit("https://cdn.example.com/one.png")

	boom := errors.New("abort")
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		userID, err := s.store.ApplyDecision(ctx, v.ID, models.Decision{
			Status: id.VerificationVerified, ReviewedBy: s.admin, At: time.Now(),
		})
		s.Require().NoError(err)
		s.Require().NoError(s.store.SetUserStatus(ctx, userID, id.VerificationVerified, time.Now()))
		return boom
	})
	s.ErrorIs(err, boom)

	got, err := s.store.FindByUser(ctx, s.user)
	s.Require().NoError(err)
	s.Equal(id.VerificationPending, got.Status)
	s.Equal("PENDING", s.userStatus())
}

func (s *GormStoreSuite) TestDecisionOnUnknownRequest() {
	_, err := s.store.ApplyDecision(context.Background(), id.NewVerificationID(), models.Decision{
		Status: id.VerificationVerified, ReviewedBy: s.admin, At: time.Now(),
	})
	s.ErrorIs(err, sentinel.ErrNotFound)
}
