// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/meialau/sayori"
	"github.com/meialau/sayori/app"
	"github.com/meialau/sayori/config"
	"github.com/meialau/sayori/middleware"
	"github.com/meialau/sayori/server"
	"github.com/meialau/sayori/web"

	"github.com/spf13/afero"
)

type Config struct {
	Port       uint   `config:"port"`
	Keystore   string `config:"keystore"`
	Passphrase string `config:"passphrase"`
}

type guestbook struct {
	mu    sync.Mutex
	names []string
}

func (g *guestbook) sign(req *web.Request, resp *web.Response) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.names = append(g.names, req.Param("name"))
	resp.SendStatus(web.StatusCreated)
}

func (g *guestbook) list(req *web.Request, resp *web.Response) {
	g.mu.Lock()
	defer g.mu.Unlock()

	resp.WriteContent(strings.Join(g.names, "\n"), web.ContentTypeText)
}

func build(ctx context.Context, cfg Config) (sayori.App, error) {
	logHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{AddSource: true})

	g := &guestbook{}
	r := web.NewRouter()
	r.Use(middleware.AccessLog(slog.New(logHandler)))
	r.Post("/sign/:name", g.sign)
	r.Get("/", g.list)

	ls, err := listen(cfg)
	if err != nil {
		return nil, err
	}

	srv := server.New(ls, r, server.LogHandler(logHandler))
	return app.WithSignalNotifications(
		app.WithLifecycleHooks(srv, app.Lifecycle{
			PostRun: app.ShutdownHook(srv, 5*time.Second),
		}),
		os.Interrupt,
	), nil
}

func listen(cfg Config) (net.Listener, error) {
	if cfg.Keystore == "" {
		return server.ListenTCP(cfg.Port)
	}
	return server.ListenKeystore(afero.NewOsFs(), cfg.Port, cfg.Keystore, cfg.Passphrase)
}

func main() {
	err := sayori.Run(
		context.Background(),
		sayori.AppBuilderFunc[Config](build),
		config.Map{"port": 8080},
		config.FromEnv(config.EnvPrefix("GUESTBOOK_")),
	)
	if err != nil {
		os.Exit(1)
	}
}
