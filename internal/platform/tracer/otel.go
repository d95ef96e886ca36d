package tracer

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelTracer emits spans through an OpenTelemetry tracer, the global
// provider's "estatehub" tracer unless one is injected.
type OTelTracer struct {
	tracer trace.Tracer
}

type OTelOption func(*OTelTracer)

func WithOTelTracer(t trace.Tracer) OTelOption {
	return func(o *OTelTracer) { o.tracer = t }
}

func NewOTel(opts ...OTelOption) *OTelTracer {
	t := &OTelTracer{tracer: otel.Tracer("estatehub")}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *OTelTracer) Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span) {
	ctx, s := t.tracer.Start(ctx, name, trace.WithAttributes(otelKVs(attrs)...))
	return ctx, otelSpan{s}
}

type otelSpan struct{ span trace.Span }

// End flags deadline overruns with timed_out so they can be told apart from
// query errors in the trace backend.
func (s otelSpan) End(err error) {
	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded):
		s.span.SetAttributes(attribute.Bool(AttrTimedOut, true))
		s.span.SetStatus(codes.Error, "timed out")
	default:
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.End()
}

func (s otelSpan) SetAttributes(attrs ...Attribute) {
	s.span.SetAttributes(otelKVs(attrs)...)
}

func (s otelSpan) AddEvent(name string, attrs ...Attribute) {
	s.span.AddEvent(name, trace.WithAttributes(otelKVs(attrs)...))
}

func otelKVs(attrs []Attribute) []attribute.KeyValue {
	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for _, a := range attrs {
		if kv, ok := otelKV(a); ok {
			kvs = append(kvs, kv)
		}
	}
	return kvs
}

// otelKV converts the value types the constructors in this package produce.
// Anything else is dropped.
func otelKV(a Attribute) (attribute.KeyValue, bool) {
	key := attribute.Key(a.Key)
	switch v := a.Value.(type) {
	case string:
		return key.String(v), true
	case bool:
		return key.Bool(v), true
	case int64:
		return key.Int64(v), true
	case int:
		return key.Int(v), true
	case float64:
		return key.Float64(v), true
	case []string:
		return key.StringSlice(v), true
	}
	return attribute.KeyValue{}, false
}

var _ Tracer = (*OTelTracer)(nil)
