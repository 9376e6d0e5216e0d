// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package web holds the request and response model and the route table
// which dispatches requests to registered handlers.
//
// # Route Table
//
// A [Router] is an ordered list of entries, each either a [MiddlewareFunc]
// or a [Mapping]. Dispatch walks the list in registration order:
//
//   - middleware runs as it is reached and may stop the walk by returning false
//   - the first Mapping whose pattern and method set both match the request
//     is invoked and the walk stops
//   - if nothing matched, the [Response] is left untouched
//
// There is no specificity ranking, so more specific patterns must be
// registered before more general ones:
//
//	r := web.NewRouter()
//	r.Get("/users/me", me)
//	r.Get("/users/:id", user)
//
// # Path Patterns
//
// Patterns are "/" separated. A segment beginning with ":" captures exactly
// one non-empty path segment under the name that follows the colon. Every
// other segment must match literally and the whole path must match.
//
// # Concurrency
//
// A Router is read concurrently by every connection being served. Register
// all entries, and finish any [Mapping.Allow] or [Mapping.Disallow] calls,
// before the server starts accepting connections.
package web
