package audit

import "context"

type Store interface {
	Append(ctx context.Context, event Event) error
	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]Event, error)
	ListByActor(ctx context.Context, actorID string) ([]Event, error)
}

// Sink receives every event after it has been stored.
type Sink interface {
	Forward(ctx context.Context, event Event) error
}
