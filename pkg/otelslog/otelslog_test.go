// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otelslog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type record struct {
	Message string `json:"msg"`
	TraceID string `json:"trace_id"`
	SpanID  string `json:"span_id"`
}

func TestHandler_Handle(t *testing.T) {
	t.Run("will not add trace id and span id", func(t *testing.T) {
		t.Run("if the span context is invalid", func(t *testing.T) {
			var buf bytes.Buffer
			log := New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{}))

			log.InfoContext(context.Background(), "accepted")

			var r record
			require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
			assert.Equal(t, "accepted", r.Message)
			assert.Empty(t, r.TraceID)
			assert.Empty(t, r.SpanID)
		})
	})

	t.Run("will add trace id and span id", func(t *testing.T) {
		t.Run("if the span context is valid", func(t *testing.T) {
			var buf bytes.Buffer
			log := New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{})).With("component", "server")

			tp := sdktrace.NewTracerProvider()
			defer tp.Shutdown(context.Background())

			ctx, span := tp.Tracer("otelslog").Start(context.Background(), "conn")
			defer span.End()

			log.InfoContext(ctx, "accepted")

			var r record
			require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
			assert.Equal(t, span.SpanContext().TraceID().String(), r.TraceID)
			assert.Equal(t, span.SpanContext().SpanID().String(), r.SpanID)
		})
	})
}

func TestHandler_SpanEvents(t *testing.T) {
	newLogger := func(t *testing.T, opts ...Option) (*slog.Logger, *tracetest.SpanRecorder, *sdktrace.TracerProvider) {
		sr := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
		t.Cleanup(func() {
			tp.Shutdown(context.Background())
		})

		var buf bytes.Buffer
		return New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}), opts...), sr, tp
	}

	t.Run("will add a span event", func(t *testing.T) {
		t.Run("if the record level is at least warn", func(t *testing.T) {
			log, sr, tp := newLogger(t)

			ctx, span := tp.Tracer("otelslog").Start(context.Background(), "conn")
			log.WarnContext(ctx, "failed to write response", slog.String("remote_addr", "127.0.0.1:5000"))
			span.End()

			spans := sr.Ended()
			if !assert.Len(t, spans, 1) {
				return
			}

			events := spans[0].Events()
			if !assert.Len(t, events, 1) {
				return
			}
			assert.Equal(t, "failed to write response", events[0].Name)
			assert.Contains(t, events[0].Attributes, attribute.String("log.severity", "WARN"))
			assert.Contains(t, events[0].Attributes, attribute.String("remote_addr", "127.0.0.1:5000"))
		})

		t.Run("if the record level meets a custom event level", func(t *testing.T) {
			log, sr, tp := newLogger(t, EventLevel(slog.LevelDebug))

			ctx, span := tp.Tracer("otelslog").Start(context.Background(), "conn")
			log.DebugContext(ctx, "malformed request")
			span.End()

			spans := sr.Ended()
			if !assert.Len(t, spans, 1) {
				return
			}
			assert.Len(t, spans[0].Events(), 1)
		})
	})

	t.Run("will not add a span event", func(t *testing.T) {
		t.Run("if the record level is below the event level", func(t *testing.T) {
			log, sr, tp := newLogger(t)

			ctx, span := tp.Tracer("otelslog").Start(context.Background(), "conn")
			log.InfoContext(ctx, "received request")
			span.End()

			spans := sr.Ended()
			if !assert.Len(t, spans, 1) {
				return
			}
			assert.Empty(t, spans[0].Events())
		})
	})
}
