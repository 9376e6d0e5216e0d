// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package wire

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRequestHead(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		testCases := []struct {
			Name string
			Raw  string
		}{
			{
				Name: "if the stream is empty",
				Raw:  "",
			},
			{
				Name: "if the request line has fewer than 3 tokens",
				Raw:  "GET /\r\n\r\n",
			},
			{
				Name: "if a header line is missing the separator",
				Raw:  "GET / HTTP/1.1\r\nHost example.com\r\n\r\n",
			},
			{
				Name: "if the stream ends inside the header section",
				Raw:  "GET / HTTP/1.1\r\nHost: example.com\r\n",
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				br := bufio.NewReader(strings.NewReader(testCase.Raw))

				_, err := ReadRequestHead(br)

				var merr MalformedRequestError
				if !assert.ErrorAs(t, err, &merr) {
					return
				}
				if !assert.ErrorIs(t, err, ErrMalformedRequest) {
					return
				}
				assert.NotEmpty(t, merr.Error())
			})
		}
	})

	t.Run("will decode the request line and headers", func(t *testing.T) {
		t.Run("if lines are terminated by CRLF", func(t *testing.T) {
			raw := "POST /users/42 HTTP/1.1\r\nHost: example.com\r\nX-Token: a: b\r\n\r\n"

			head, err := ReadRequestHead(bufio.NewReader(strings.NewReader(raw)))
			require.NoError(t, err)

			assert.Equal(t, "POST", head.Method)
			assert.Equal(t, "/users/42", head.Target)
			assert.Equal(t, "HTTP/1.1", head.Version)
			assert.Equal(t, map[string]string{
				"Host":    "example.com",
				"X-Token": "a: b",
			}, head.Header)
		})

		t.Run("if lines are terminated by a bare LF", func(t *testing.T) {
			raw := "GET / HTTP/1.0\nAccept: */*\n\n"

			head, err := ReadRequestHead(bufio.NewReader(strings.NewReader(raw)))
			require.NoError(t, err)

			assert.Equal(t, "GET", head.Method)
			assert.Equal(t, "HTTP/1.0", head.Version)
			assert.Equal(t, "*/*", head.Header["Accept"])
		})

		t.Run("if a header name repeats", func(t *testing.T) {
			raw := "GET / HTTP/1.1\r\nX-A: 1\r\nX-A: 2\r\nx-a: 3\r\n\r\n"

			head, err := ReadRequestHead(bufio.NewReader(strings.NewReader(raw)))
			require.NoError(t, err)

			assert.Equal(t, "2", head.Header["X-A"])
			assert.Equal(t, "3", head.Header["x-a"])
		})
	})

	t.Run("will stop reading headers", func(t *testing.T) {
		t.Run("if the header line cap is reached", func(t *testing.T) {
			var sb strings.Builder
			sb.WriteString("GET / HTTP/1.1\r\n")
			for i := 0; i < MaxHeaderLines+5; i++ {
				fmt.Fprintf(&sb, "X-H%d: %d\r\n", i, i)
			}
			sb.WriteString("\r\n")

			br := bufio.NewReader(strings.NewReader(sb.String()))
			head, err := ReadRequestHead(br)
			require.NoError(t, err)

			assert.Len(t, head.Header, MaxHeaderLines)
			assert.NotContains(t, head.Header, fmt.Sprintf("X-H%d", MaxHeaderLines))

			rest, err := br.ReadString('\n')
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("X-H%d: %d\r\n", MaxHeaderLines, MaxHeaderLines), rest)
		})
	})
}

type readFunc func([]byte) (int, error)

func (f readFunc) Read(b []byte) (int, error) {
	return f(b)
}

func TestReadBody(t *testing.T) {
	t.Run("will return no body", func(t *testing.T) {
		testCases := []struct {
			Name   string
			Header map[string]string
		}{
			{
				Name:   "if Content-Length is absent",
				Header: map[string]string{},
			},
			{
				Name:   "if Content-Length is zero",
				Header: map[string]string{"Content-Length": "0"},
			},
			{
				Name:   "if Content-Length is negative",
				Header: map[string]string{"Content-Length": "-4"},
			},
			{
				Name:   "if Content-Length is not numeric",
				Header: map[string]string{"Content-Length": "ten"},
			},
			{
				Name:   "if Content-Length overflows a 32-bit integer",
				Header: map[string]string{"Content-Length": "9223372036854775807"},
			},
			{
				Name:   "if Content-Length is just above the 32-bit range",
				Header: map[string]string{"Content-Length": "2147483648"},
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				body, err := ReadBody(strings.NewReader("hello"), testCase.Header)
				require.NoError(t, err)
				assert.Nil(t, body)
			})
		}
	})

	t.Run("will read exactly Content-Length bytes", func(t *testing.T) {
		t.Run("if the stream delivers them across partial reads", func(t *testing.T) {
			chunks := []string{"he", "l", "lo wor", "ld"}
			r := readFunc(func(b []byte) (int, error) {
				if len(chunks) == 0 {
					return 0, io.EOF
				}
				n := copy(b, chunks[0])
				chunks[0] = chunks[0][n:]
				if chunks[0] == "" {
					chunks = chunks[1:]
				}
				return n, nil
			})

			body, err := ReadBody(r, map[string]string{"Content-Length": "5"})
			require.NoError(t, err)
			assert.Equal(t, "hello", string(body))
		})
	})

	t.Run("will return the partial body", func(t *testing.T) {
		t.Run("if the stream ends before Content-Length bytes arrive", func(t *testing.T) {
			body, err := ReadBody(strings.NewReader("abc"), map[string]string{"Content-Length": "10"})
			require.NoError(t, err)
			assert.Equal(t, "abc", string(body))
		})

		t.Run("if Content-Length is large but only a few bytes arrive", func(t *testing.T) {
			body, err := ReadBody(strings.NewReader("hi"), map[string]string{"Content-Length": "2147483647"})
			require.NoError(t, err)
			assert.Equal(t, "hi", string(body))
			assert.Less(t, cap(body), 1<<20)
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the stream fails for a reason other than EOF", func(t *testing.T) {
			readErr := errors.New("connection reset")
			r := readFunc(func(b []byte) (int, error) {
				return 0, readErr
			})

			_, err := ReadBody(r, map[string]string{"Content-Length": "3"})
			assert.ErrorIs(t, err, readErr)
		})
	})
}
