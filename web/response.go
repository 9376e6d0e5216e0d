// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package web

import (
	"fmt"
	"maps"
	"strconv"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding/htmlindex"
)

// Response is built up by middleware and handlers and written once after dispatch.
type Response struct {
	status  Status
	headers map[string]string
	data    []byte
}

// NewResponse returns a 200 OK response with no headers and no body.
func NewResponse() *Response {
	return &Response{
		status:  StatusOK,
		headers: make(map[string]string),
	}
}

// Status returns the current status.
func (resp *Response) Status() Status {
	return resp.status
}

// SendStatus sets the status to write.
func (resp *Response) SendStatus(status Status) {
	resp.status = status
}

// Header returns the value of the named header or "".
func (resp *Response) Header(name string) string {
	return resp.headers[name]
}

// SetHeader sets the named header, replacing any previous value.
func (resp *Response) SetHeader(name, value string) {
	resp.headers[name] = value
}

// DeleteHeader removes the named header.
func (resp *Response) DeleteHeader(name string) {
	delete(resp.headers, name)
}

// Headers returns a copy of all headers.
func (resp *Response) Headers() map[string]string {
	return maps.Clone(resp.headers)
}

// Data returns the body bytes. A nil body means no body section is written.
func (resp *Response) Data() []byte {
	return resp.data
}

// Redirect responds with 301 Moved Permanently to path.
func (resp *Response) Redirect(path string) {
	resp.SetHeader("Content-Length", "0")
	resp.SetHeader("Connection", "close")
	resp.SetHeader("Location", path)

	resp.SendStatus(StatusMovedPermanently)
	resp.data = []byte("Location: " + path)
}

// WriteContent writes s as UTF-8 text of the given content type.
func (resp *Response) WriteContent(s string, ct ContentType) {
	resp.WriteBytes([]byte(s), ct.Name+"; charset=UTF-8")
}

// UnknownCharsetError is returned for a charset name with no known encoding.
type UnknownCharsetError struct {
	Charset string
	Cause   error
}

// Error implements the [builtin.error] interface.
func (e UnknownCharsetError) Error() string {
	return fmt.Sprintf("unknown charset %q: %s", e.Charset, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e UnknownCharsetError) Unwrap() error {
	return e.Cause
}

// WriteContentCharset encodes s into the named charset (any WHATWG
// encoding label, e.g. "ISO-8859-1" or "Shift_JIS") and writes it with
// the given content type. The response is untouched on error.
func (resp *Response) WriteContentCharset(s string, ct ContentType, charset string) error {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return UnknownCharsetError{Charset: charset, Cause: err}
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = charset
	}

	b, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return err
	}
	resp.WriteBytes(b, ct.Name+"; charset="+name)
	return nil
}

// WriteBytes replaces the body with b and sets Content-Type and
// Content-Length to match. Previous values are discarded.
func (resp *Response) WriteBytes(b []byte, contentType string) {
	if b == nil {
		b = []byte{}
	}
	resp.SetHeader("Content-Type", contentType)
	resp.SetHeader("Content-Length", strconv.Itoa(len(b)))
	resp.data = b
}

// WriteFile writes the file at path from the OS filesystem, see [Response.WriteFileFS].
func (resp *Response) WriteFile(path string) error {
	return resp.WriteFileFS(afero.NewOsFs(), path)
}

// WriteFileFS writes the contents of the file at path with a content type
// derived from its extension. The response is untouched on error.
func (resp *Response) WriteFileFS(fs afero.Fs, path string) error {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return err
	}
	resp.WriteBytes(b, ContentTypeByExtension(Extension(path)).Name)
	return nil
}
