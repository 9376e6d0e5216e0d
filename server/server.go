// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/meialau/sayori/pkg/health"
	"github.com/meialau/sayori/pkg/noop"
	"github.com/meialau/sayori/pkg/slogfield"
	"github.com/meialau/sayori/web"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/meialau/sayori/server"

type options struct {
	logHandler  slog.Handler
	tp          trace.TracerProvider
	reg         prometheus.Registerer
	readTimeout time.Duration
	readiness   *health.Binary
}

// Option configures a [Server].
type Option func(*options)

// LogHandler sets the slog.Handler used by the server.
// By default nothing is logged.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

// TracerProvider sets where connection spans are recorded.
// Defaults to the global otel TracerProvider.
func TracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tp = tp
	}
}

// Registerer sets where the server metrics are registered. Defaults to
// a private registry, in which case the metrics are not exposed.
func Registerer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.reg = reg
	}
}

// ReadTimeout bounds the time spent reading a request from a connection.
// Zero, the default, means no deadline.
func ReadTimeout(d time.Duration) Option {
	return func(o *options) {
		o.readTimeout = d
	}
}

// Readiness is set healthy while the server accepts connections.
func Readiness(b *health.Binary) Option {
	return func(o *options) {
		o.readiness = b
	}
}

// AcceptError is returned by [Server.Run] when the listener fails
// while the server is still running.
type AcceptError struct {
	Cause error
}

// Error implements the error interface.
func (e AcceptError) Error() string {
	return fmt.Sprintf("failed to accept connection: %s", e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e AcceptError) Unwrap() error {
	return e.Cause
}

// Server serves one request per accepted connection.
type Server struct {
	ls          net.Listener
	router      *web.Router
	log         *slog.Logger
	tracer      trace.Tracer
	metrics     *metrics
	readTimeout time.Duration
	readiness   *health.Binary

	running atomic.Bool

	mu       sync.Mutex
	entered  bool
	stopped  bool
	stopCh   chan struct{}
	closeErr error
	workers  sync.WaitGroup

	done   chan struct{}
	runErr error
}

// New returns a Server which will accept connections from ls and
// dispatch them through r once [Server.Run] is called.
func New(ls net.Listener, r *web.Router, opts ...Option) *Server {
	o := &options{
		logHandler: noop.LogHandler{},
		tp:         otel.GetTracerProvider(),
		reg:        prometheus.NewRegistry(),
		readiness:  &health.Binary{},
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Server{
		ls:          ls,
		router:      r,
		log:         slog.New(o.logHandler),
		tracer:      o.tp.Tracer(tracerName),
		metrics:     newMetrics(o.reg),
		readTimeout: o.readTimeout,
		readiness:   o.readiness,
		stopCh:      make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start is like calling [New] followed by [Server.Run] on a new goroutine.
// The returned Server is already running; use [Server.Wait] to collect
// the result of Run.
func Start(ctx context.Context, ls net.Listener, r *web.Router, opts ...Option) *Server {
	s := New(ls, r, opts...)
	s.running.Store(true)
	go s.Run(ctx)
	return s
}

// ErrRunning is returned by [Server.Run] when it has already been
// called and the server has not been stopped yet.
var ErrRunning = errors.New("server is already running")

// Run accepts connections until ctx is cancelled or [Server.Shutdown]
// is called, in which case it returns nil. If accepting fails while the
// server is running an [AcceptError] is returned. Run does not wait for
// in-flight connections; Shutdown does.
//
// Only the first call serves. Later calls return nil once the server
// has been stopped and [ErrRunning] before that.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.entered {
		stopped := s.stopped
		s.mu.Unlock()
		if stopped {
			return nil
		}
		return ErrRunning
	}
	s.entered = true
	defer close(s.done)

	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.running.Store(true)
	s.readiness.Set(true)
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-s.stopCh:
		}

		s.log.InfoContext(ctx, "shutting down server")
		return s.stop()
	})
	g.Go(func() error {
		s.log.InfoContext(ctx, "started server", slogfield.Addr("addr", s.ls.Addr()))
		return s.acceptLoop(context.WithoutCancel(ctx))
	})

	err := g.Wait()
	s.runErr = err
	if err != nil {
		s.log.ErrorContext(ctx, "server encountered unexpected error", slogfield.Error(err))
	}
	return err
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		conn, err := s.ls.Accept()
		if err != nil {
			s.mu.Lock()
			stopped := s.stopped
			s.mu.Unlock()
			if stopped {
				return nil
			}
			return AcceptError{Cause: err}
		}

		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			conn.Close()
			return nil
		}
		s.workers.Add(1)
		s.mu.Unlock()

		s.metrics.accepted.Inc()
		go func() {
			defer s.workers.Done()
			s.serveConn(ctx, conn)
		}()
	}
}

// stop marks the server as no longer running and closes the listener.
// Only the first call has any effect.
func (s *Server) stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return s.closeErr
	}

	s.stopped = true
	s.running.Store(false)
	s.readiness.Set(false)
	close(s.stopCh)

	err := s.ls.Close()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		s.closeErr = err
	}
	return s.closeErr
}

// Shutdown stops accepting connections and waits for in-flight
// connections to finish or ctx to be done, whichever happens first.
// It is safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.stop()

	idle := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(idle)
	}()

	select {
	case <-idle:
		return err
	case <-ctx.Done():
		return errors.Join(err, ctx.Err())
	}
}

// Wait blocks until [Server.Run] returns and then returns its result.
func (s *Server) Wait() error {
	<-s.done
	return s.runErr
}

// Running reports whether the server is accepting connections.
func (s *Server) Running() bool {
	return s.running.Load()
}

// Addr returns the listener's network address.
func (s *Server) Addr() net.Addr {
	return s.ls.Addr()
}
