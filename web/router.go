// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package web

type entryKind int

const (
	middlewareEntry entryKind = iota
	mappingEntry
)

type entry struct {
	kind       entryKind
	middleware MiddlewareFunc
	mapping    *Mapping
}

// Router is the ordered route table. The zero value is ready to use.
type Router struct {
	entries []entry
}

// NewRouter returns an empty Router.
func NewRouter() *Router {
	return &Router{}
}

// Use appends a middleware entry.
func (r *Router) Use(f MiddlewareFunc) {
	if f == nil {
		return
	}
	r.entries = append(r.entries, entry{kind: middlewareEntry, middleware: f})
}

// AddMapping appends a new Mapping for path which allows only method.
func (r *Router) AddMapping(path string, method Method, action Action) *Mapping {
	m := NewMapping(path, method, action)
	r.entries = append(r.entries, entry{kind: mappingEntry, mapping: m})
	return m
}

// Get is shorthand for AddMapping(path, MethodGet, action).
func (r *Router) Get(path string, action Action) *Mapping {
	return r.AddMapping(path, MethodGet, action)
}

// Head is shorthand for AddMapping(path, MethodHead, action).
func (r *Router) Head(path string, action Action) *Mapping {
	return r.AddMapping(path, MethodHead, action)
}

// Post is shorthand for AddMapping(path, MethodPost, action).
func (r *Router) Post(path string, action Action) *Mapping {
	return r.AddMapping(path, MethodPost, action)
}

// Put is shorthand for AddMapping(path, MethodPut, action).
func (r *Router) Put(path string, action Action) *Mapping {
	return r.AddMapping(path, MethodPut, action)
}

// Delete is shorthand for AddMapping(path, MethodDelete, action).
func (r *Router) Delete(path string, action Action) *Mapping {
	return r.AddMapping(path, MethodDelete, action)
}

// Connect is shorthand for AddMapping(path, MethodConnect, action).
func (r *Router) Connect(path string, action Action) *Mapping {
	return r.AddMapping(path, MethodConnect, action)
}

// Options is shorthand for AddMapping(path, MethodOptions, action).
func (r *Router) Options(path string, action Action) *Mapping {
	return r.AddMapping(path, MethodOptions, action)
}

// Trace is shorthand for AddMapping(path, MethodTrace, action).
func (r *Router) Trace(path string, action Action) *Mapping {
	return r.AddMapping(path, MethodTrace, action)
}

// Patch is shorthand for AddMapping(path, MethodPatch, action).
func (r *Router) Patch(path string, action Action) *Mapping {
	return r.AddMapping(path, MethodPatch, action)
}

// Lookup returns the first Mapping matching path and method, or nil.
// Middleware is not run.
func (r *Router) Lookup(path string, method Method) *Mapping {
	for _, e := range r.entries {
		if e.kind != mappingEntry {
			continue
		}
		if _, ok := e.mapping.match(path, method); ok {
			return e.mapping
		}
	}
	return nil
}

// Len returns the number of entries in the table.
func (r *Router) Len() int {
	return len(r.entries)
}

// Dispatch walks the table in registration order. Middleware runs as it
// is reached and a false return ends the walk. The first matching
// Mapping has its parameters bound onto req, is attached to req, and
// runs; the walk then ends. Dispatch reports whether a Mapping ran.
func (r *Router) Dispatch(req *Request, resp *Response) bool {
	for _, e := range r.entries {
		switch e.kind {
		case middlewareEntry:
			if !e.middleware(req, resp) {
				return false
			}
		case mappingEntry:
			values, ok := e.mapping.match(req.Path(), req.Method())
			if !ok {
				continue
			}
			for i, name := range e.mapping.params {
				req.SetParam(name, values[i])
			}
			req.SetMapping(e.mapping)
			e.mapping.Execute(req, resp)
			return true
		}
	}
	return false
}
