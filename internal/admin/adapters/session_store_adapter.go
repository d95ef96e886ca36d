package adapters

import (
	"context"
	"fmt"

	id "estatehub/pkg/domain"
)

// AuthSessionStore is the part of the auth session store admin needs. Both the
// Postgres and the Redis session stores implement it.
type AuthSessionStore interface {
	DeleteByUser(ctx context.Context, userID id.UserID) (int, error)
}

// SessionStoreAdapter adapts an auth session store to admin's SessionRevoker.
type SessionStoreAdapter struct {
	store AuthSessionStore
}

func NewSessionStoreAdapter(store AuthSessionStore) *SessionStoreAdapter {
	return &SessionStoreAdapter{store: store}
}

// RevokeAll drops every session the user holds and reports how many went.
func (a *SessionStoreAdapter) RevokeAll(ctx context.Context, userID id.UserID) (int, error) {
	n, err := a.store.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("revoke sessions of user %s: %w", userID, err)
	}
	return n, nil
}
