// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package web

import "strings"

// Method is a request method token.
type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodPatch   Method = "PATCH"
)

var methods = []Method{
	MethodGet,
	MethodHead,
	MethodPost,
	MethodPut,
	MethodDelete,
	MethodConnect,
	MethodOptions,
	MethodTrace,
	MethodPatch,
}

// ParseMethod matches s case-insensitively against the known methods.
// Unknown tokens resolve to [MethodGet].
func ParseMethod(s string) Method {
	for _, m := range methods {
		if strings.EqualFold(string(m), s) {
			return m
		}
	}
	return MethodGet
}

// Version is a protocol version.
type Version struct {
	name  string
	ident string
}

// Name returns the wire token, e.g. "HTTP/1.1".
func (v Version) Name() string {
	return v.name
}

// String implements the [fmt.Stringer] interface.
func (v Version) String() string {
	return v.name
}

var (
	HTTP09 = Version{name: "HTTP/0.9", ident: "HTTP09"}
	HTTP10 = Version{name: "HTTP/1.0", ident: "HTTP10"}
	HTTP11 = Version{name: "HTTP/1.1", ident: "HTTP11"}
	HTTP2  = Version{name: "HTTP/2", ident: "HTTP2"}
	HTTP3  = Version{name: "HTTP/3", ident: "HTTP3"}
)

var versions = []Version{HTTP09, HTTP10, HTTP11, HTTP2, HTTP3}

// ParseVersion matches s case-insensitively against either the wire token
// ("HTTP/1.0") or the identifier ("HTTP10") of each known version.
// Unknown tokens resolve to [HTTP11].
func ParseVersion(s string) Version {
	for _, v := range versions {
		if strings.EqualFold(v.name, s) || strings.EqualFold(v.ident, s) {
			return v
		}
	}
	return HTTP11
}
