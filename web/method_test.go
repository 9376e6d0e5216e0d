// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMethod(t *testing.T) {
	testCases := []struct {
		Token    string
		Expected Method
	}{
		{"GET", MethodGet},
		{"post", MethodPost},
		{"Patch", MethodPatch},
		{"CONNECT", MethodConnect},
		{"PROPFIND", MethodGet},
		{"", MethodGet},
	}

	for _, testCase := range testCases {
		t.Run("will parse "+testCase.Token, func(t *testing.T) {
			assert.Equal(t, testCase.Expected, ParseMethod(testCase.Token))
		})
	}
}

func TestParseVersion(t *testing.T) {
	testCases := []struct {
		Token    string
		Expected Version
	}{
		{"HTTP/0.9", HTTP09},
		{"HTTP/1.0", HTTP10},
		{"http/1.1", HTTP11},
		{"HTTP/2", HTTP2},
		{"HTTP/3", HTTP3},
		{"HTTP10", HTTP10},
		{"SPDY/3", HTTP11},
	}

	for _, testCase := range testCases {
		t.Run("will parse "+testCase.Token, func(t *testing.T) {
			v := ParseVersion(testCase.Token)
			assert.Equal(t, testCase.Expected, v)
			assert.Equal(t, testCase.Expected.Name(), v.String())
		})
	}
}
