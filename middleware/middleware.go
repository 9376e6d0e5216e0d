// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package middleware provides ready made [web.MiddlewareFunc]s.
package middleware

import (
	"context"
	"log/slog"

	"github.com/meialau/sayori/pkg/noop"
	"github.com/meialau/sayori/pkg/slogfield"
	"github.com/meialau/sayori/web"

	"github.com/google/uuid"
)

// RequestIDHeader is the default header carrying the request id.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the id stored by [RequestID].
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

type requestIDOptions struct {
	header   string
	generate func() string
}

// RequestIDOption configures [RequestID].
type RequestIDOption func(*requestIDOptions)

// Header overrides the header the request id is read from and written to.
func Header(name string) RequestIDOption {
	return func(o *requestIDOptions) {
		o.header = name
	}
}

// Generator overrides how new request ids are created.
func Generator(f func() string) RequestIDOption {
	return func(o *requestIDOptions) {
		o.generate = f
	}
}

// RequestID reuses the request id sent by the client or generates a
// random UUID. The id is echoed in the response headers and stored in
// the request context.
func RequestID(opts ...RequestIDOption) web.MiddlewareFunc {
	o := &requestIDOptions{
		header:   RequestIDHeader,
		generate: uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}

	return func(req *web.Request, resp *web.Response) bool {
		id := req.Header(o.header)
		if id == "" {
			id = o.generate()
			req.SetHeader(o.header, id)
		}
		resp.SetHeader(o.header, id)
		req.SetContext(context.WithValue(req.Context(), requestIDKey{}, id))
		return true
	}
}

// AccessLog logs every request which reaches it. A nil log discards
// everything.
func AccessLog(log *slog.Logger) web.MiddlewareFunc {
	if log == nil {
		log = slog.New(noop.LogHandler{})
	}

	return func(req *web.Request, resp *web.Response) bool {
		attrs := []any{
			slogfield.String("method", string(req.Method())),
			slogfield.String("path", req.Path()),
			slogfield.String("version", req.Version().Name()),
			slogfield.String("remote_addr", req.RemoteAddr()),
		}
		if id, ok := RequestIDFromContext(req.Context()); ok {
			attrs = append(attrs, slogfield.String("request_id", id))
		}
		log.InfoContext(req.Context(), "received request", attrs...)
		return true
	}
}

// NotFound answers 404 Not Found with body as plain text, or with no
// body if body is empty. Register it after every mapping, since it is
// only reached when none of them matched.
func NotFound(body string) web.MiddlewareFunc {
	return func(req *web.Request, resp *web.Response) bool {
		resp.SendStatus(web.StatusNotFound)
		if body != "" {
			resp.WriteContent(body, web.ContentTypeText)
		}
		return false
	}
}
