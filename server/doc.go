// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package server accepts TCP or TLS connections and answers exactly one
// HTTP/1.x request per connection using a [web.Router].
//
// Every accepted connection is handled on its own goroutine which decodes
// the request, dispatches it through the router, writes the response and
// closes the connection. There is no keep-alive, pipelining or pooling.
//
// The router must be fully populated before the server starts; it is
// read without synchronization while serving.
package server
