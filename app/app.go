// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package app provides wrappers which add common behaviour to a [sayori.App].
package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/meialau/sayori"
	"github.com/meialau/sayori/internal/try"
)

// Recover converts a panic in app into a [try.PanicError].
func Recover(app sayori.App) sayori.App {
	return sayori.AppFunc(func(ctx context.Context) (err error) {
		defer try.Recover(&err)

		return app.Run(ctx)
	})
}

// WithSignalNotifications cancels the context passed to app when any
// of the signals is received.
func WithSignalNotifications(app sayori.App, signals ...os.Signal) sayori.App {
	return sayori.AppFunc(func(ctx context.Context) error {
		sigCtx, cancel := signal.NotifyContext(ctx, signals...)
		defer cancel()

		return app.Run(sigCtx)
	})
}

// LifecycleHook is run before or after an App.
type LifecycleHook interface {
	Run(context.Context) error
}

// LifecycleHookFunc is a func which implements the LifecycleHook interface.
type LifecycleHookFunc func(context.Context) error

// Run implements the LifecycleHook interface.
func (f LifecycleHookFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// ComposeLifecycleHooks runs every hook in order, even if some fail,
// and joins their errors.
func ComposeLifecycleHooks(hooks ...LifecycleHook) LifecycleHook {
	return LifecycleHookFunc(func(ctx context.Context) error {
		errs := make([]error, 0, len(hooks))
		for _, hook := range hooks {
			err := hook.Run(ctx)
			if err == nil {
				continue
			}
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})
}

// Lifecycle holds the hooks run around an App.
type Lifecycle struct {
	// PreRun is executed before the App. If it fails the App is not run
	// but PostRun still is.
	PreRun LifecycleHook

	// PostRun is always executed regardless if the underlying App
	// returns an error or panics.
	PostRun LifecycleHook
}

// WithLifecycleHooks wraps app with the hooks in lifecycle.
func WithLifecycleHooks(app sayori.App, lifecycle Lifecycle) sayori.App {
	return sayori.AppFunc(func(ctx context.Context) (err error) {
		defer runPostRunHook(ctx, lifecycle.PostRun, &err)

		if lifecycle.PreRun != nil {
			err = lifecycle.PreRun.Run(ctx)
			if err != nil {
				return err
			}
		}
		return app.Run(ctx)
	})
}

func runPostRunHook(ctx context.Context, hook LifecycleHook, err *error) {
	if hook == nil {
		return
	}

	// ctx is most likely cancelled by now, which must not cut hooks short.
	hookErr := hook.Run(context.WithoutCancel(ctx))

	*err = errors.Join(*err, hookErr)
}

// Shutdowner is implemented by anything that can be gracefully stopped,
// e.g. *server.Server.
type Shutdowner interface {
	Shutdown(context.Context) error
}

// ShutdownHook returns a LifecycleHook which shuts s down, waiting at
// most timeout for in-flight work to complete.
func ShutdownHook(s Shutdowner, timeout time.Duration) LifecycleHook {
	return LifecycleHookFunc(func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return s.Shutdown(ctx)
	})
}
