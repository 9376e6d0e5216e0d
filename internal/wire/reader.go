// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package wire reads HTTP/1.x request heads and bodies off a byte stream
// and writes responses back onto one.
package wire

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MaxHeaderLines caps how many header lines are read per request.
// Hitting the cap ends the header section without an error.
const MaxHeaderLines = 50

// ErrMalformedRequest is matched by every [MalformedRequestError].
var ErrMalformedRequest = errors.New("malformed request")

// MalformedRequestError reports a request head which could not be decoded.
type MalformedRequestError struct {
	Reason string
	Cause  error
}

// Error implements the [builtin.error] interface.
func (e MalformedRequestError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("malformed request: %s", e.Reason)
	}
	return fmt.Sprintf("malformed request: %s: %s", e.Reason, e.Cause)
}

// Is reports true for [ErrMalformedRequest].
func (e MalformedRequestError) Is(target error) bool {
	return target == ErrMalformedRequest
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e MalformedRequestError) Unwrap() error {
	return e.Cause
}

// RequestHead is the request line and header section of a request.
type RequestHead struct {
	Method  string
	Target  string
	Version string
	Header  map[string]string
}

// ReadRequestHead decodes the request line and up to [MaxHeaderLines]
// header lines. Header names keep their case; a repeated name keeps
// the last value.
func ReadRequestHead(br *bufio.Reader) (RequestHead, error) {
	line, err := readLine(br)
	if err != nil {
		return RequestHead{}, MalformedRequestError{Reason: "missing request line", Cause: err}
	}

	parts := strings.Split(line, " ")
	if len(parts) < 3 {
		return RequestHead{}, MalformedRequestError{Reason: fmt.Sprintf("request line has %d tokens", len(parts))}
	}

	head := RequestHead{
		Method:  parts[0],
		Target:  parts[1],
		Version: parts[2],
		Header:  make(map[string]string),
	}
	for i := 0; i < MaxHeaderLines; i++ {
		line, err := readLine(br)
		if err != nil {
			return RequestHead{}, MalformedRequestError{Reason: "unterminated header section", Cause: err}
		}
		if line == "" {
			break
		}

		name, value, ok := strings.Cut(line, ": ")
		if !ok {
			return RequestHead{}, MalformedRequestError{Reason: fmt.Sprintf("invalid header line %q", line)}
		}
		head.Header[name] = value
	}
	return head, nil
}

// ReadBody reads exactly Content-Length bytes when the header holds a
// positive 32-bit integer; larger values are treated like any other
// non-numeric length and yield no body. The body grows with the bytes
// actually received, so a stream ending early yields the bytes read so
// far without an error. Any other read failure is returned as is.
func ReadBody(r io.Reader, header map[string]string) ([]byte, error) {
	v, ok := header["Content-Length"]
	if !ok {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n <= 0 {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(r, n))
	if err != nil {
		return nil, err
	}
	return body, nil
}

// readLine returns the next line without its trailing "\r\n" or "\n".
// A final line missing its terminator is still returned.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
