// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package key defines how config values are addressed within a Store.
package key

import "strings"

// Keyer identifies a location within a config Store.
type Keyer interface {
	Key() string
}

// Chain is a path of nested keys, e.g. server.port.
type Chain []Keyer

// Key implements the Keyer interface.
func (k Chain) Key() string {
	ss := make([]string, len(k))
	for i := range k {
		ss[i] = k[i].Key()
	}
	return strings.Join(ss, ".")
}

// Name is a single level key.
type Name string

// Key implements the Keyer interface.
func (k Name) Key() string {
	return string(k)
}

// Split converts a dot separated key into a Chain.
// Empty segments are dropped.
func Split(s, sep string) Chain {
	parts := strings.Split(s, sep)
	chain := make(Chain, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		chain = append(chain, Name(p))
	}
	return chain
}
