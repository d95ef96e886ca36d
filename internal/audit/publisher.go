package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"estatehub/pkg/requestcontext"
)

// Publisher is the append-only entry point for audit events. Events go to the
// store and then to the optional sink; sink failures are logged, never returned.
type Publisher struct {
	store  Store
	sink   Sink
	events chan queued
	wg     sync.WaitGroup
	logger *slog.Logger
	async  bool
	now    func() time.Time
}

type queued struct {
	ctx   context.Context
	event Event
}

type PublisherOption func(*Publisher)

// WithAsyncBuffer queues events and persists them in a background goroutine.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		if size > 0 {
			p.events = make(chan queued, size)
			p.async = true
		}
	}
}

func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithSink forwards stored events, e.g. to Kafka.
func WithSink(sink Sink) PublisherOption {
	return func(p *Publisher) {
		p.sink = sink
	}
}

func WithClock(now func() time.Time) PublisherOption {
	return func(p *Publisher) {
		p.now = now
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	if p.async {
		p.wg.Add(1)
		go p.processEvents()
	}
	return p
}

func (p *Publisher) processEvents() {
	defer p.wg.Done()
	for q := range p.events {
		if err := p.persist(q.ctx, q.event); err != nil {
			p.logger.Error("failed to persist audit event",
				"error", err,
				"action", q.event.Action,
				"actor_id", q.event.ActorID,
			)
		}
	}
}

// Close drains queued events.
func (p *Publisher) Close() {
	if p.async && p.events != nil {
		close(p.events)
		p.wg.Wait()
	}
}

// Emit stamps the timestamp and request id when missing. In async mode a full
// buffer drops the event rather than blocking the request.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if !p.async {
		return p.persist(ctx, event)
	}

	select {
	case p.events <- queued{ctx: context.WithoutCancel(ctx), event: event}:
	default:
		p.logger.WarnContext(ctx, "audit buffer full, event dropped",
			"action", event.Action,
			"actor_id", event.ActorID,
		)
	}
	return nil
}

func (p *Publisher) persist(ctx context.Context, event Event) error {
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	if p.sink != nil {
		if err := p.sink.Forward(ctx, event); err != nil {
			p.logger.WarnContext(ctx, "audit sink forward failed",
				"error", err,
				"action", event.Action,
			)
		}
	}
	return nil
}

func (p *Publisher) Recent(ctx context.Context, limit int) ([]Event, error) {
	return p.store.Recent(ctx, limit)
}

func (p *Publisher) ListByActor(ctx context.Context, actorID string) ([]Event, error) {
	return p.store.ListByActor(ctx, actorID)
}
