// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otelconfig builds OpenTelemetry TracerProviders.
package otelconfig

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Initializer builds a TracerProvider.
type Initializer interface {
	Init() (trace.TracerProvider, error)
}

// InitializerFunc is a func which implements the Initializer interface.
type InitializerFunc func() (trace.TracerProvider, error)

// Init implements the Initializer interface.
func (f InitializerFunc) Init() (trace.TracerProvider, error) {
	return f()
}

// Noop returns an Initializer whose TracerProvider records nothing.
func Noop() Initializer {
	return InitializerFunc(func() (trace.TracerProvider, error) {
		return noop.NewTracerProvider(), nil
	})
}

// LocalConfig configures a TracerProvider which writes spans as JSON.
type LocalConfig struct {
	ServiceName string
	Out         io.Writer
}

// LocalOption configures [Local].
type LocalOption func(*LocalConfig)

// ServiceName sets the service.name resource attribute.
func ServiceName(name string) LocalOption {
	return func(lc *LocalConfig) {
		lc.ServiceName = name
	}
}

// Output sets where spans are written. Defaults to os.Stdout.
func Output(w io.Writer) LocalOption {
	return func(lc *LocalConfig) {
		lc.Out = w
	}
}

// Local returns an Initializer for a TracerProvider which batches spans
// and writes them to an io.Writer.
func Local(opts ...LocalOption) Initializer {
	cfg := LocalConfig{
		Out: os.Stdout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Init implements the Initializer interface.
func (cfg LocalConfig) Init() (trace.TracerProvider, error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(cfg.Out),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(
		context.Background(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return tp, nil
}

// Shutdown flushes and stops tp if it supports being shut down.
func Shutdown(ctx context.Context, tp trace.TracerProvider) error {
	s, ok := tp.(interface{ Shutdown(context.Context) error })
	if !ok {
		return nil
	}
	return s.Shutdown(ctx)
}
