package tracer

import (
	"context"
	"errors"
	"sync"
)

// NoopTracer discards every span.
type NoopTracer struct{}

func NewNoop() *NoopTracer {
	return &NoopTracer{}
}

func (t *NoopTracer) Start(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(_ error)                       {}
func (noopSpan) SetAttributes(_ ...Attribute)      {}
func (noopSpan) AddEvent(_ string, _ ...Attribute) {}

// Recorder keeps finished spans in memory for assertions in tests.
type Recorder struct {
	mu    sync.Mutex
	spans []RecordedSpan
}

type RecordedSpan struct {
	Name       string
	Attributes map[string]any
	Events     []string
	Err        error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span) {
	s := &recordingSpan{recorder: r, span: RecordedSpan{Name: name, Attributes: map[string]any{}}}
	s.SetAttributes(attrs...)
	return ctx, s
}

// Spans returns the spans ended so far.
func (r *Recorder) Spans() []RecordedSpan {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedSpan, len(r.spans))
	copy(out, r.spans)
	return out
}

// Named returns the ended spans with the given name.
func (r *Recorder) Named(name string) []RecordedSpan {
	var out []RecordedSpan
	for _, s := range r.Spans() {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}

type recordingSpan struct {
	recorder *Recorder
	mu       sync.Mutex
	span     RecordedSpan
}

func (s *recordingSpan) End(err error) {
	s.mu.Lock()
	s.span.Err = err
	if errors.Is(err, context.DeadlineExceeded) {
		s.span.Attributes[AttrTimedOut] = true
	}
	done := s.span
	s.mu.Unlock()

	s.recorder.mu.Lock()
	s.recorder.spans = append(s.recorder.spans, done)
	s.recorder.mu.Unlock()
}

func (s *recordingSpan) SetAttributes(attrs ...Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range attrs {
		s.span.Attributes[a.Key] = a.Value
	}
}

func (s *recordingSpan) AddEvent(name string, _ ...Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.span.Events = append(s.span.Events, name)
}

var (
	_ Tracer = (*NoopTracer)(nil)
	_ Tracer = (*Recorder)(nil)
)
