// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package server

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/meialau/sayori/internal/try"
	"github.com/meialau/sayori/internal/wire"
	"github.com/meialau/sayori/pkg/slogfield"
	"github.com/meialau/sayori/web"

	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	s.metrics.active.Inc()
	defer s.metrics.active.Dec()

	ctx, span := s.tracer.Start(
		ctx,
		"sayori.conn",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(semconv.ClientAddress(conn.RemoteAddr().String())),
	)
	defer span.End()

	log := s.log.With(slogfield.Addr("remote_addr", conn.RemoteAddr()))
	defer func() {
		err := conn.Close()
		if err != nil && !errors.Is(err, net.ErrClosed) {
			log.ErrorContext(ctx, "failed to close connection", slogfield.Error(err))
		}
	}()

	if s.readTimeout > 0 {
		err := conn.SetReadDeadline(time.Now().Add(s.readTimeout))
		if err != nil {
			log.ErrorContext(ctx, "failed to set read deadline", slogfield.Error(err))
			return
		}
	}

	req, err := readRequest(bufio.NewReader(conn))
	if err != nil {
		s.metrics.malformed.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed request")
		log.DebugContext(ctx, "closing connection without a response", slogfield.Error(err))
		return
	}
	req.SetRemoteAddr(conn.RemoteAddr().String())
	req.SetContext(ctx)

	span.SetAttributes(
		semconv.HTTPRequestMethodKey.String(string(req.Method())),
		semconv.URLPath(req.Path()),
		semconv.NetworkProtocolVersion(req.Version().Name()),
	)

	start := time.Now()
	resp := web.NewResponse()
	s.dispatch(ctx, log, req, resp)

	status := resp.Status()
	span.SetAttributes(semconv.HTTPResponseStatusCode(status.Code))
	s.metrics.requests.WithLabelValues(string(req.Method()), strconv.Itoa(status.Code)).Inc()

	err = wire.WriteResponse(
		bufio.NewWriter(conn),
		wire.StatusLine{
			Version: req.Version().Name(),
			Code:    status.Code,
			Reason:  status.Message,
		},
		resp.Headers(),
		resp.Data(),
	)
	s.metrics.duration.WithLabelValues(string(req.Method())).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.writeErrors.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write response")
		log.ErrorContext(ctx, "failed to write response", slogfield.Error(err))
		return
	}

	log.DebugContext(
		ctx,
		"served request",
		slogfield.String("method", string(req.Method())),
		slogfield.String("path", req.Path()),
		slogfield.Int("status", status.Code),
	)
}

func readRequest(br *bufio.Reader) (*web.Request, error) {
	head, err := wire.ReadRequestHead(br)
	if err != nil {
		return nil, err
	}

	req := web.NewRequest(head.Method, head.Target, head.Version)
	for name, value := range head.Header {
		req.SetHeader(name, value)
	}

	body, err := wire.ReadBody(br, head.Header)
	if err != nil {
		return nil, err
	}
	req.SetRawBody(body)
	return req, nil
}

// dispatch runs the router and turns a handler panic into a bodiless
// 500 response, discarding anything the handler had already set.
func (s *Server) dispatch(ctx context.Context, log *slog.Logger, req *web.Request, resp *web.Response) {
	err := func() (err error) {
		defer try.Recover(&err)
		s.router.Dispatch(req, resp)
		return nil
	}()
	if err == nil {
		return
	}

	s.metrics.panics.Inc()
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, "handler panicked")
	log.ErrorContext(
		ctx,
		"recovered from handler panic",
		slogfield.String("method", string(req.Method())),
		slogfield.String("path", req.Path()),
		slogfield.Error(err),
	)

	*resp = *web.NewResponse()
	resp.SendStatus(web.StatusInternalServerError)
}
