//go:build integration

package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"estatehub/internal/auth/models"
	"estatehub/internal/auth/store/user"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	"estatehub/pkg/testutil/containers"
)

type GormStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *user.GormStore
}

func TestGormStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(GormStoreSuite))
}

func (s *GormStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = user.NewGorm(s.postgres.Gorm)
}

func (s *GormStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateAll(context.Background()))
}

func (s *GormStoreSuite) newUser(email, phone string, role id.Role) *models.User {
	return &models.User{
		ID:                 id.NewUserID(),
		FirstName:          "Ada",
		LastName:           "Obi",
		Email:              email,
		Phone:              phone,
		PasswordHash:       "hash",
		Role:               role,
		VerificationStatus: id.VerificationUnverified,
	}
}

func (s *GormStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	u := s.newUser("Ada@Example.com", "", id.RoleClient)
	s.Require().NoError(s.store.Create(ctx, u))
	s.False(u.CreatedAt.IsZero())

	byEmail, err := s.store.FindByEmail(ctx, "ada@example.com")
	s.Require().NoError(err)
	s.Equal(u.ID, byEmail.ID)
	s.Empty(byEmail.Phone)

	_, err = s.store.FindByID(ctx, id.NewUserID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *GormStoreSuite) TestCreateDuplicateEmail() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newUser("dup@example.com", "", id.RoleClient)))

	err := s.store.Create(ctx, s.newUser("dup@example.com", "", id.RoleLandlord))
	s.ErrorIs(err, sentinel.ErrAlreadyExists)
}

func (s *GormStoreSuite) TestUpdateProfile() {
	ctx := context.Background()
	u := s.newUser("a@example.com", "0800000001", id.RoleClient)
	other := s.newUser("b@example.com", "0800000002", id.RoleClient)
	s.Require().NoError(s.store.Create(ctx, u))
	s.Require().NoError(s.store.Create(ctx, other))

	taken, err := s.store.PhoneTakenByOther(ctx, "0800000002", u.ID)
	s.Require().NoError(err)
	s.True(taken)
	taken, err = s.store.PhoneTakenByOther(ctx, "0800000001", u.ID)
	s.Require().NoError(err)
	s.False(taken)

	name, empty := "Grace", ""
	updated, err := s.store.UpdateProfile(ctx, u.ID, models.ProfileUpdate{FirstName: &name, Phone: &empty})
	s.Require().NoError(err)
	s.Equal("Grace", updated.FirstName)
	s.Empty(updated.Phone)
}

func (s *GormStoreSuite) TestCountsAndSubRecords() {
	ctx := context.Background()
	agent := s.newUser("agent@example.com", "", id.RoleAgent)
	s.Require().NoError(s.store.Create(ctx, agent))
	s.postgres.CreateTestProperty(ctx, s.T(), agent.ID, 1000)
	s.postgres.CreateTestProperty(ctx, s.T(), agent.ID, 2000)

	counts, err := s.store.Counts(ctx, agent.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), counts.PropertiesPosted)
	s.Zero(counts.Favorites)

	profile, err := s.store.FindAgentProfile(ctx, agent.ID)
	s.Require().NoError(err)
	s.Nil(profile)

	s.Require().NoError(s.store.UpsertAgentProfile(ctx, &models.AgentProfile{
		UserID: agent.ID, Experience: 3, Specialties: []string{"rentals"},
	}))
	profile, err = s.store.FindAgentProfile(ctx, agent.ID)
	s.Require().NoError(err)
	s.Equal(3, profile.Experience)
	s.Equal([]string{"rentals"}, profile.Specialties)

	summary, err := s.store.FindVerificationSummary(ctx, agent.ID)
	s.Require().NoError(err)
	s.Nil(summary)
}

func (s *GormStoreSuite) TestListFilterAndSearch() {
	ctx := context.Background()
	for _, u := range []*models.User{
		s.newUser("one@example.com", "", id.RoleClient),
		s.newUser("two@example.com", "", id.RoleLandlord),
		s.newUser("three@estate.ng", "", id.RoleClient),
	} {
		s.Require().NoError(s.store.Create(ctx, u))
		time.Sleep(5 * time.Millisecond)
	}

	users, total, err := s.store.List(ctx,
		models.UserFilter{Role: id.RoleClient},
		models.ListQuery{Offset: 0, Limit: 10, OrderBy: "created_at DESC"},
	)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Equal("three@estate.ng", users[0].Email)

	_, total, err = s.store.List(ctx,
		models.UserFilter{Search: "ESTATE"},
		models.ListQuery{Limit: 10, OrderBy: "created_at DESC"},
	)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
}

func (s *GormStoreSuite) TestEnsureRole() {
	ctx := context.Background()
	admin := s.newUser("root@example.com", "", id.RoleSuperAdmin)

	created, err := s.store.EnsureRole(ctx, admin)
	s.Require().NoError(err)
	s.True(created)

	again := s.newUser("root@example.com", "", id.RoleSuperAdmin)
	created, err = s.store.EnsureRole(ctx, again)
	s.Require().NoError(err)
	s.False(created)

	stored, err := s.store.FindByEmail(ctx, "root@example.com")
	s.Require().NoError(err)
	s.Equal(admin.ID, stored.ID)
}

func (s *GormStoreSuite) TestDelete() {
	ctx := context.Background()
	u := s.newUser("gone@example.com", "", id.RoleClient)
	s.Require().NoError(s.store.Create(ctx, u))

	s.Require().NoError(s.store.Delete(ctx, u.ID))
	s.ErrorIs(s.store.Delete(ctx, u.ID), sentinel.ErrNotFound)
}
