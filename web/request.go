// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package web

import (
	"context"
	"maps"
	"net/url"
	"strings"
)

// Request is a single decoded request. Method and version are fixed at
// construction; everything else is filled in while the request is read
// and dispatched.
type Request struct {
	ctx        context.Context
	method     Method
	version    Version
	path       string
	query      string
	remoteAddr string
	headers    map[string]string
	params     map[string]string
	rawBody    []byte
	mapping    *Mapping
}

// NewRequest parses method and version leniently, see [ParseMethod] and
// [ParseVersion]. Anything after the first "?" in target is the raw query
// and its keys are stored as parameters, first value winning per key.
//
// Mappings only ever see the path, never the query. A mapping for
// "/users/:id" matches "/users/42?x=1" and binds id to "42" rather than
// "42?x=1", and the query keys stay readable through [Request.Param]
// unless a path parameter of the same name overrides them.
func NewRequest(method, target, version string) *Request {
	r := &Request{
		ctx:     context.Background(),
		method:  ParseMethod(method),
		version: ParseVersion(version),
		headers: make(map[string]string),
		params:  make(map[string]string),
	}
	r.path, r.query, _ = strings.Cut(target, "?")
	if r.query == "" {
		return r
	}

	// a malformed query keeps whatever pairs parsed before the bad one
	values, _ := url.ParseQuery(r.query)
	for k, vs := range values {
		if len(vs) > 0 {
			r.params[k] = vs[0]
		}
	}
	return r
}

// Context returns the request's context, never nil.
func (r *Request) Context() context.Context {
	return r.ctx
}

// SetContext replaces the request's context. A nil ctx is ignored.
func (r *Request) SetContext(ctx context.Context) {
	if ctx == nil {
		return
	}
	r.ctx = ctx
}

// Method returns the request method.
func (r *Request) Method() Method {
	return r.method
}

// Version returns the protocol version of the request.
func (r *Request) Version() Version {
	return r.version
}

// Path returns the request path without the query.
func (r *Request) Path() string {
	return r.path
}

// SetPath replaces the request path. It only affects routing if called
// before dispatch, e.g. by middleware.
func (r *Request) SetPath(path string) {
	r.path = path
}

// Query returns the raw query, without the leading "?".
func (r *Request) Query() string {
	return r.query
}

// RemoteAddr returns the peer address of the connection, if known.
func (r *Request) RemoteAddr() string {
	return r.remoteAddr
}

// SetRemoteAddr records the peer address of the connection.
func (r *Request) SetRemoteAddr(addr string) {
	r.remoteAddr = addr
}

// Header returns the value of the named header or "" if absent.
// Names are case-sensitive.
func (r *Request) Header(name string) string {
	return r.headers[name]
}

// LookupHeader is like [Request.Header] but reports presence.
func (r *Request) LookupHeader(name string) (string, bool) {
	v, ok := r.headers[name]
	return v, ok
}

// SetHeader sets the named header, replacing any previous value.
func (r *Request) SetHeader(name, value string) {
	r.headers[name] = value
}

// Headers returns a copy of all headers.
func (r *Request) Headers() map[string]string {
	return maps.Clone(r.headers)
}

// Param returns the named query or path parameter or "" if absent.
func (r *Request) Param(name string) string {
	return r.params[name]
}

// SetParam sets the named parameter, replacing any previous value.
func (r *Request) SetParam(name, value string) {
	r.params[name] = value
}

// Params returns a copy of all parameters.
func (r *Request) Params() map[string]string {
	return maps.Clone(r.params)
}

// RawBody returns the body bytes, nil if the request had none.
func (r *Request) RawBody() []byte {
	return r.rawBody
}

// SetRawBody replaces the body bytes.
func (r *Request) SetRawBody(b []byte) {
	r.rawBody = b
}

// Body returns the body as a string, "" if the request had none.
func (r *Request) Body() string {
	if r.rawBody == nil {
		return ""
	}
	return string(r.rawBody)
}

// Mapping returns the Mapping the request was dispatched to, or nil.
func (r *Request) Mapping() *Mapping {
	return r.mapping
}

// SetMapping binds the request to m.
func (r *Request) SetMapping(m *Mapping) {
	r.mapping = m
}
