// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package maskslog provides a slog.Handler which hides the values of sensitive attributes.
package maskslog

import (
	"context"
	"log/slog"
)

// Mask is the value logged in place of a masked attribute.
const Mask = "****"

// Handler replaces the value of any top level attribute whose key was
// registered with [NewHandler], whether it is added per record or via
// [Handler.WithAttrs].
type Handler struct {
	slog slog.Handler
	keys map[string]struct{}
}

// NewHandler wraps h, masking attributes with any of the given keys.
func NewHandler(h slog.Handler, keys ...string) *Handler {
	ks := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		ks[k] = struct{}{}
	}
	return &Handler{slog: h, keys: ks}
}

func (h *Handler) mask(a slog.Attr) slog.Attr {
	if _, ok := h.keys[a.Key]; ok {
		return slog.String(a.Key, Mask)
	}
	return a
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.slog.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if len(h.keys) == 0 {
		return h.slog.Handle(ctx, record)
	}

	nr := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(a slog.Attr) bool {
		nr.AddAttrs(h.mask(a))
		return true
	})
	return h.slog.Handle(ctx, nr)
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.mask(a)
	}
	return &Handler{slog: h.slog.WithAttrs(masked), keys: h.keys}
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{slog: h.slog.WithGroup(name), keys: h.keys}
}
