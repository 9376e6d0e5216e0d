// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package command implements the sayori command line interface.
package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/meialau/sayori"
	"github.com/meialau/sayori/app"
	"github.com/meialau/sayori/config"
	"github.com/meialau/sayori/handler"
	"github.com/meialau/sayori/keystore"
	"github.com/meialau/sayori/middleware"
	"github.com/meialau/sayori/pkg/health"
	"github.com/meialau/sayori/pkg/maskslog"
	"github.com/meialau/sayori/pkg/otelconfig"
	"github.com/meialau/sayori/pkg/otelslog"
	"github.com/meialau/sayori/pkg/slogfield"
	"github.com/meialau/sayori/server"
	"github.com/meialau/sayori/static"
	"github.com/meialau/sayori/web"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/term"
)

type command struct {
	fs           afero.Fs
	stdin        *os.File
	stdout       io.Writer
	stderr       io.Writer
	readPassword func(fd int) ([]byte, error)

	configFile       string
	envFile          string
	promptPassphrase bool
}

// New returns the root sayori command.
func New() *cobra.Command {
	c := &command{
		fs:           afero.NewOsFs(),
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		readPassword: term.ReadPassword,
	}
	return c.cobra()
}

func (c *command) cobra() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sayori",
		Short:         "Serve a directory of static files over HTTP or HTTPS",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.run,
	}
	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)

	flags := cmd.Flags()
	flags.StringVar(&c.configFile, "config", "", "path to a yaml or json config file, rendered as a text/template")
	flags.StringVar(&c.envFile, "env-file", "", "path to a .env file with "+envPrefix+" prefixed overrides")
	flags.BoolVar(&c.promptPassphrase, "prompt-passphrase", false, "read the keystore passphrase from the terminal")
	flags.Uint("port", 0, "port to listen on")
	flags.String("static-dir", "", "directory of files to serve")
	flags.String("static-prefix", "", "route prefix the static files are served under")
	flags.String("keystore", "", "PKCS12 keystore enabling HTTPS")
	flags.Bool("trace-stdout", false, "write trace spans to stdout")
	flags.String("log-level", "", "minimum log level (debug, info, warn, error)")

	return cmd
}

func (c *command) run(cmd *cobra.Command, args []string) error {
	srcs := sources(c.fs, c.configFile, c.envFile, cmd.Flags())
	if c.promptPassphrase {
		passphrase, err := c.prompt()
		if err != nil {
			return err
		}
		srcs = append(srcs, config.Map{"tls": map[string]any{"passphrase": passphrase}})
	}

	err := sayori.Run(cmd.Context(), sayori.AppBuilderFunc[Config](c.build), srcs...)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
	}
	return err
}

func (c *command) prompt() (string, error) {
	fmt.Fprint(c.stderr, "keystore passphrase: ")
	defer fmt.Fprintln(c.stderr)

	b, err := c.readPassword(int(c.stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(b), nil
}

func (c *command) build(ctx context.Context, cfg Config) (sayori.App, error) {
	logHandler := maskslog.NewHandler(
		otelslog.NewHandler(slog.NewJSONHandler(c.stderr, &slog.HandlerOptions{
			AddSource: true,
			Level:     cfg.Log.Level,
		})),
		"passphrase",
	)
	log := slog.New(logHandler)

	var initer otelconfig.Initializer = otelconfig.Noop()
	if cfg.Trace.Stdout {
		initer = otelconfig.Local(
			otelconfig.ServiceName(cfg.Service.Name),
			otelconfig.Output(c.stdout),
		)
	}
	tp, err := initer.Init()
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ls, certHealth, err := c.listen(ctx, log, cfg)
	if err != nil {
		return nil, err
	}

	ready := &health.Binary{}
	healthy := health.And(ready)
	if certHealth != nil {
		healthy = health.And(ready, certHealth)
	}

	r := web.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(log))
	r.Get(cfg.Endpoints.Metrics, handler.Metrics(reg))
	r.Get(cfg.Endpoints.Health, handler.Health(healthy))

	n, err := static.Register(r, c.fs, cfg.Static.Prefix, cfg.Static.Dir)
	if err != nil {
		ls.Close()
		return nil, err
	}
	log.InfoContext(ctx, "registered static files", slogfield.String("dir", cfg.Static.Dir), slogfield.Int("files", n))
	r.Use(middleware.NotFound(web.StatusNotFound.Message))

	srv := server.New(
		ls,
		r,
		server.LogHandler(logHandler),
		server.TracerProvider(tp),
		server.Registerer(reg),
		server.ReadTimeout(cfg.Server.Timeout),
		server.Readiness(ready),
	)

	return app.Recover(
		app.WithSignalNotifications(
			app.WithLifecycleHooks(srv, app.Lifecycle{
				PostRun: app.ComposeLifecycleHooks(
					app.ShutdownHook(srv, cfg.Shutdown.Timeout),
					app.LifecycleHookFunc(func(ctx context.Context) error {
						return otelconfig.Shutdown(ctx, tp)
					}),
				),
			}),
			os.Interrupt,
			syscall.SIGTERM,
		),
	), nil
}

// listen returns a plain TCP listener, or a TLS listener together with
// a metric which turns unhealthy once the certificate expires.
func (c *command) listen(ctx context.Context, log *slog.Logger, cfg Config) (net.Listener, health.Metric, error) {
	if cfg.TLS.Keystore == "" {
		log.InfoContext(ctx, "listening for http", slogfield.Uint("port", cfg.Server.Port))
		ls, err := server.ListenTCP(cfg.Server.Port)
		return ls, nil, err
	}

	log.InfoContext(
		ctx,
		"listening for https",
		slogfield.Uint("port", cfg.Server.Port),
		slogfield.String("keystore", cfg.TLS.Keystore),
	)
	tlsCfg, err := keystore.TLSConfig(c.fs, cfg.TLS.Keystore, cfg.TLS.Passphrase)
	if err != nil {
		return nil, nil, err
	}

	certHealth, err := newCertMetric(tlsCfg.Certificates[0])
	if err != nil {
		return nil, nil, err
	}

	ls, err := server.ListenTLS(cfg.Server.Port, tlsCfg)
	if err != nil {
		return nil, nil, err
	}
	log.InfoContext(ctx, "loaded certificate", slogfield.String("expires", certHealth.notAfter.Format(time.RFC3339)))
	return ls, certHealth, nil
}
