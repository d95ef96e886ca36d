// Package tracer is a small tracing abstraction over OpenTelemetry.
//
// Callers depend on Tracer and Span rather than the OTel API so that tests can
// use NoopTracer or a Recorder without a tracer provider.
package tracer

import (
	"context"
	"time"
)

// Span is an active trace span. End must be called exactly once.
type Span interface {
	// End completes the span and marks it failed when err is non-nil.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans and must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration records the value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanDashboardSnapshot = "dashboard.snapshot"
	SpanDashboardQuery    = "dashboard.query"
	SpanLandingMetrics    = "landing.metrics"
)

// Attribute keys.
const (
	AttrQuery     = "query"
	AttrFallback  = "fallback"
	AttrPanicked  = "panicked"
	AttrFailed    = "failed_queries"
	AttrLookbackH = "lookback_hours"
	AttrTimedOut  = "timed_out"
)
