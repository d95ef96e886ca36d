package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"estatehub/internal/rating/models"
	"estatehub/internal/rating/service/mocks"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

func newService(t *testing.T) (*Service, *mocks.MockStore) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	return New(store), store
}

func asUser(userID id.UserID, role id.Role) context.Context {
	ctx := requestcontext.WithUserID(context.Background(), userID)
	return requestcontext.WithRole(ctx, role)
}

func TestSubmit(t *testing.T) {
	client, owner, propertyID := id.NewUserID(), id.NewUserID(), id.NewPropertyID()
	req := &models.SubmitRatingRequest{PropertyID: propertyID, Rating: 4, Comment: "Quiet street"}

	t.Run("new rating is created", func(t *testing.T) {
		svc, store := newService(t)
		store.EXPECT().PropertyOwner(gomock.Any(), propertyID).Return(owner, nil)
		store.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, r *models.Rating) (bool, error) {
				assert.Equal(t, client, r.UserID)
				assert.Equal(t, 4, r.Rating)
				return true, nil
			})
		store.EXPECT().FindReview(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, ratingID id.RatingID) (*models.Review, error) {
				return &models.Review{Rating: models.Rating{ID: ratingID, Rating: 4}}, nil
			})

		review, created, err := svc.Submit(asUser(client, id.RoleClient), req)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, 4, review.Rating.Rating)
	})

	t.Run("resubmission updates", func(t *testing.T) {
		svc, store := newService(t)
		store.EXPECT().PropertyOwner(gomock.Any(), propertyID).Return(owner, nil)
		store.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(false, nil)
		store.EXPECT().FindReview(gomock.Any(), gomock.Any()).Return(&models.Review{}, nil)

		_, created, err := svc.Submit(asUser(client, id.RoleClient), req)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("poster cannot rate own property", func(t *testing.T) {
		svc, store := newService(t)
		store.EXPECT().PropertyOwner(gomock.Any(), propertyID).Return(owner, nil)

		_, _, err := svc.Submit(asUser(owner, id.RoleLandlord), req)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
		assert.Equal(t, "You cannot rate your own property", err.Error())
	})

	t.Run("missing property", func(t *testing.T) {
		svc, store := newService(t)
		store.EXPECT().PropertyOwner(gomock.Any(), propertyID).
			Return(id.UserID{}, fmt.Errorf("property not found: %w", sentinel.ErrNotFound))

		_, _, err := svc.Submit(asUser(client, id.RoleClient), req)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestForProperty(t *testing.T) {
	propertyID := id.NewPropertyID()
	q := models.ListQuery{Limit: 10}

	t.Run("joins reviews and summary", func(t *testing.T) {
		svc, store := newService(t)
		store.EXPECT().ListByProperty(gomock.Any(), propertyID, q).Return([]*models.Review{{}}, int64(7), nil)
		store.EXPECT().Summary(gomock.Any(), propertyID).
			Return(&models.Summary{Average: 4.2857, Total: 7, Distribution: [5]int64{0, 0, 1, 3, 3}}, nil)

		got, err := svc.ForProperty(context.Background(), propertyID, q)
		require.NoError(t, err)
		assert.Len(t, got.Reviews, 1)
		assert.EqualValues(t, 7, got.Total)
		assert.EqualValues(t, 3, got.Summary.Distribution[4])
	})

	t.Run("either query failing fails the read", func(t *testing.T) {
		svc, store := newService(t)
		store.EXPECT().ListByProperty(gomock.Any(), propertyID, q).Return(nil, int64(0), nil).AnyTimes()
		store.EXPECT().Summary(gomock.Any(), propertyID).Return(nil, assert.AnError)

		_, err := svc.ForProperty(context.Background(), propertyID, q)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func TestDelete(t *testing.T) {
	author, ratingID := id.NewUserID(), id.NewRatingID()
	review := &models.Review{Rating: models.Rating{ID: ratingID, UserID: author}}

	tests := []struct {
		name     string
		caller   id.UserID
		role     id.Role
		wantCode dErrors.Code
	}{
		{"author", author, id.RoleClient, ""},
		{"admin", id.NewUserID(), id.RoleAdmin, ""},
		{"super admin", id.NewUserID(), id.RoleSuperAdmin, ""},
		{"someone else", id.NewUserID(), id.RoleLandlord, dErrors.CodeForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newService(t)
			store.EXPECT().FindReview(gomock.Any(), ratingID).Return(review, nil)
			if tt.wantCode == "" {
				store.EXPECT().Delete(gomock.Any(), ratingID).Return(nil)
			}

			err := svc.Delete(asUser(tt.caller, tt.role), ratingID)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, dErrors.HasCode(err, tt.wantCode))
		})
	}

	t.Run("missing rating", func(t *testing.T) {
		svc, store := newService(t)
		store.EXPECT().FindReview(gomock.Any(), ratingID).
			Return(nil, fmt.Errorf("rating not found: %w", sentinel.ErrNotFound))

		err := svc.Delete(asUser(author, id.RoleClient), ratingID)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
