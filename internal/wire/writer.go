// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package wire

import (
	"bufio"
	"fmt"
	"sort"
)

// WriteError wraps any failure hit while writing a response.
type WriteError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e WriteError) Error() string {
	return fmt.Sprintf("error sending data: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e WriteError) Unwrap() error {
	return e.Cause
}

// StatusLine is the first line of a response.
type StatusLine struct {
	Version string
	Code    int
	Reason  string
}

// WriteResponse writes the status line and headers, then the body
// preceded by an empty line. A nil body writes no body section at all,
// not even the empty line. Headers are emitted sorted by name.
func WriteResponse(bw *bufio.Writer, status StatusLine, header map[string]string, body []byte) error {
	_, err := fmt.Fprintf(bw, "%s %d %s\r\n", status.Version, status.Code, status.Reason)
	if err != nil {
		return WriteError{Cause: err}
	}

	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		_, err = fmt.Fprintf(bw, "%s: %s\r\n", name, header[name])
		if err != nil {
			return WriteError{Cause: err}
		}
	}

	if body != nil {
		_, err = bw.WriteString("\r\n")
		if err != nil {
			return WriteError{Cause: err}
		}
		_, err = bw.Write(body)
		if err != nil {
			return WriteError{Cause: err}
		}
	}

	err = bw.Flush()
	if err != nil {
		return WriteError{Cause: err}
	}
	return nil
}
