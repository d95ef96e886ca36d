package audit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"estatehub/internal/platform/kafka/producer"
	"estatehub/pkg/requestcontext"
)

type PublisherSuite struct {
	suite.Suite
	store *InMemoryStore
	now   time.Time
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	s.store = NewInMemoryStore(10)
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *PublisherSuite) TestEmitStampsTimestampAndRequestID() {
	p := NewPublisher(s.store, WithClock(func() time.Time { return s.now }))
	ctx := requestcontext.WithRequestID(context.Background(), "req-1")

	s.Require().NoError(p.Emit(ctx, Event{ActorID: "admin-1", Action: ActionUserDeleted}))

	events, err := p.Recent(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(s.now, events[0].Timestamp)
	s.Equal("req-1", events[0].RequestID)
}

func (s *PublisherSuite) TestSinkReceivesStoredEvents() {
	sink := &recordingSink{}
	p := NewPublisher(s.store, WithSink(sink))

	s.Require().NoError(p.Emit(context.Background(), Event{ActorID: "a", Action: ActionComplaintUpdated}))
	s.Len(sink.events, 1)
}

func (s *PublisherSuite) TestSinkFailureIsNotReturned() {
	p := NewPublisher(s.store, WithSink(&recordingSink{err: errors.New("broker down")}))

	s.NoError(p.Emit(context.Background(), Event{ActorID: "a", Action: ActionUserUpdated}))
	events, _ := p.Recent(context.Background(), 0)
	s.Len(events, 1)
}

func (s *PublisherSuite) TestAsyncDrainsOnClose() {
	p := NewPublisher(s.store, WithAsyncBuffer(5))
	for range 3 {
		s.Require().NoError(p.Emit(context.Background(), Event{ActorID: "a", Action: ActionLoggedOut}))
	}
	p.Close()

	events, err := p.ListByActor(context.Background(), "a")
	s.Require().NoError(err)
	s.Len(events, 3)
}

func TestInMemoryStore_RingKeepsNewest(t *testing.T) {
	store := NewInMemoryStore(3)
	ctx := context.Background()
	for _, actor := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, store.Append(ctx, Event{ActorID: actor}))
	}

	recent, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "e", recent[0].ActorID)
	assert.Equal(t, "c", recent[2].ActorID)

	limited, _ := store.Recent(ctx, 2)
	assert.Len(t, limited, 2)

	byActor, _ := store.ListByActor(ctx, "a")
	assert.Empty(t, byActor, "evicted")

	store.Clear()
	recent, _ = store.Recent(ctx, 0)
	assert.Empty(t, recent)
}

func TestKafkaSink_Forward(t *testing.T) {
	prod := &fakeProducer{}
	sink := NewKafkaSink(prod, "estatehub.audit")

	event := Event{ActorID: "admin-9", Action: ActionPropertyDeleted, TargetType: TargetProperty, TargetID: "p-1"}
	require.NoError(t, sink.Forward(context.Background(), event))

	require.Len(t, prod.msgs, 1)
	msg := prod.msgs[0]
	assert.Equal(t, "estatehub.audit", msg.Topic)
	assert.Equal(t, []byte("admin-9"), msg.Key)
	assert.Equal(t, "property_deleted", msg.Headers["event_type"])

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "p-1", decoded.TargetID)
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (r *recordingSink) Forward(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

type fakeProducer struct {
	msgs []*producer.Message
}

func (f *fakeProducer) ProduceAsync(_ context.Context, msg *producer.Message) error {
	f.msgs = append(f.msgs, msg)
	return nil
}
