// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otelslog provides a OpenTelemetry aware slog.Handler implementation.
package otelslog

import (
	"context"
	"log/slog"

	"github.com/meialau/sayori/pkg/slogfield"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Handler correlates log records with the span found in the
// logging context. Every record gets the trace and span ids added and
// records at or above the event level are also added to the span as
// span events.
type Handler struct {
	next       slog.Handler
	eventLevel slog.Level
}

// Option configures a Handler.
type Option func(*Handler)

// EventLevel sets the minimum level of records which are added to
// the current span as events. The default is slog.LevelWarn.
func EventLevel(lvl slog.Level) Option {
	return func(h *Handler) {
		h.eventLevel = lvl
	}
}

// NewHandler wraps h.
func NewHandler(h slog.Handler, opts ...Option) *Handler {
	oh := &Handler{
		next:       h,
		eventLevel: slog.LevelWarn,
	}
	for _, opt := range opts {
		opt(oh)
	}
	return oh
}

// New is shorthand for slog.New(NewHandler(h, opts...)).
func New(h slog.Handler, opts ...Option) *slog.Logger {
	return slog.New(NewHandler(h, opts...))
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.next.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	span := trace.SpanFromContext(ctx)
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return h.next.Handle(ctx, record)
	}

	if record.Level >= h.eventLevel && span.IsRecording() {
		span.AddEvent(
			record.Message,
			trace.WithTimestamp(record.Time),
			trace.WithAttributes(eventAttributes(record)...),
		)
	}

	r := record.Clone()
	r.AddAttrs(
		slogfield.String("trace_id", spanCtx.TraceID().String()),
		slogfield.String("span_id", spanCtx.SpanID().String()),
	)
	return h.next.Handle(ctx, r)
}

func eventAttributes(record slog.Record) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, record.NumAttrs()+1)
	attrs = append(attrs, attribute.String("log.severity", record.Level.String()))
	record.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, attribute.String(a.Key, a.Value.Resolve().String()))
		return true
	})
	return attrs
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{next: h.next.WithAttrs(attrs), eventLevel: h.eventLevel}
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{next: h.next.WithGroup(name), eventLevel: h.eventLevel}
}
