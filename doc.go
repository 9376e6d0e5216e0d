// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package sayori is a small web server library answering one HTTP/1.x
// request per TCP or TLS connection.
//
// Routes and middleware are registered on a [web.Router] and served by
// [server.Server]. This package ties configuration to that runtime: [Run]
// reads config sources, decodes them into a custom type and hands the
// result to an [AppBuilder] which builds the [App] to run.
//
//	type Config struct {
//		Port uint `config:"port"`
//	}
//
//	err := sayori.Run(ctx, sayori.AppBuilderFunc[Config](func(ctx context.Context, cfg Config) (sayori.App, error) {
//		r := web.NewRouter()
//		r.Get("/hello/:name", func(req *web.Request, resp *web.Response) {
//			resp.WriteContent("hello "+req.Param("name"), web.ContentTypeText)
//		})
//
//		ls, err := server.ListenTCP(cfg.Port)
//		if err != nil {
//			return nil, err
//		}
//		return server.New(ls, r), nil
//	}), config.Map{"port": 8080})
package sayori
