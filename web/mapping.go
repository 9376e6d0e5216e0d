// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package web

import (
	"regexp"
	"slices"
	"strings"
)

// Action handles a request which matched a [Mapping].
type Action func(*Request, *Response)

// MiddlewareFunc runs before route matching. Returning false stops
// dispatch and the response is sent as it currently is.
type MiddlewareFunc func(*Request, *Response) bool

// Mapping binds a path pattern and a set of methods to an [Action].
type Mapping struct {
	path    string
	pattern *regexp.Regexp
	params  []string

	action  Action
	methods map[Method]struct{}
}

// NewMapping compiles path and returns a Mapping allowing only method.
// It panics if action is nil.
func NewMapping(path string, method Method, action Action) *Mapping {
	if action == nil {
		panic("web: nil action for mapping " + path)
	}
	pattern, params := compilePattern(path)
	return &Mapping{
		path:    path,
		pattern: pattern,
		params:  params,
		action:  action,
		methods: map[Method]struct{}{method: {}},
	}
}

// compilePattern turns each ":name" segment into a capture group for one
// non-empty segment and quotes every other segment literally.
func compilePattern(path string) (*regexp.Regexp, []string) {
	segments := strings.Split(path, "/")
	var params []string
	for i, segment := range segments {
		if len(segment) > 1 && segment[0] == ':' {
			params = append(params, segment[1:])
			segments[i] = "([^/]+)"
			continue
		}
		segments[i] = regexp.QuoteMeta(segment)
	}
	return regexp.MustCompile("^" + strings.Join(segments, "/") + "$"), params
}

// Path returns the pattern the Mapping was registered with.
func (m *Mapping) Path() string {
	return m.path
}

// ParamNames returns the names of the ":name" segments in declaration order.
func (m *Mapping) ParamNames() []string {
	return slices.Clone(m.params)
}

// SetAction replaces the handler. A nil action is ignored.
func (m *Mapping) SetAction(action Action) {
	if action == nil {
		return
	}
	m.action = action
}

// Allow adds method to the allowed set and reports whether it was absent.
func (m *Mapping) Allow(method Method) bool {
	if _, ok := m.methods[method]; ok {
		return false
	}
	m.methods[method] = struct{}{}
	return true
}

// Disallow removes method from the allowed set and reports whether it was present.
func (m *Mapping) Disallow(method Method) bool {
	if _, ok := m.methods[method]; !ok {
		return false
	}
	delete(m.methods, method)
	return true
}

// Allows reports whether method is in the allowed set.
func (m *Mapping) Allows(method Method) bool {
	_, ok := m.methods[method]
	return ok
}

// Methods returns the allowed methods, sorted.
func (m *Mapping) Methods() []Method {
	ms := make([]Method, 0, len(m.methods))
	for method := range m.methods {
		ms = append(ms, method)
	}
	slices.Sort(ms)
	return ms
}

// Execute invokes the Mapping's action.
func (m *Mapping) Execute(req *Request, resp *Response) {
	m.action(req, resp)
}

// match returns the captured segment values, in declaration order, if
// path and method both match.
func (m *Mapping) match(path string, method Method) ([]string, bool) {
	if !m.Allows(method) {
		return nil, false
	}
	groups := m.pattern.FindStringSubmatch(path)
	if groups == nil {
		return nil, false
	}
	return groups[1:], true
}
