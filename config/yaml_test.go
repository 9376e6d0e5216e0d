// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/meialau/sayori/internal/try"

	"github.com/stretchr/testify/assert"
)

type readCloser struct {
	io.Reader
	closeErr error
	closed   bool
}

func (rc *readCloser) Close() error {
	rc.closed = true
	return rc.closeErr
}

type failReader struct {
	err error
}

func (r failReader) Read(_ []byte) (int, error) {
	return 0, r.err
}

func TestYaml_Apply(t *testing.T) {
	t.Run("will return an InvalidYamlError", func(t *testing.T) {
		t.Run("if the document is not valid yaml", func(t *testing.T) {
			_, err := Read(FromYaml(strings.NewReader("server: [")))

			var yerr InvalidYamlError
			if !assert.ErrorAs(t, err, &yerr) {
				return
			}
			assert.NotNil(t, yerr.Unwrap())
		})
	})

	t.Run("will return the read error", func(t *testing.T) {
		t.Run("if the reader fails", func(t *testing.T) {
			readErr := errors.New("read failed")
			_, err := Read(FromYaml(failReader{err: readErr}))
			assert.ErrorIs(t, err, readErr)
		})
	})

	t.Run("will close the reader", func(t *testing.T) {
		t.Run("if it implements io.Closer", func(t *testing.T) {
			rc := &readCloser{Reader: strings.NewReader("port: 80\n")}
			_, err := Read(FromYaml(rc))
			if !assert.Nil(t, err) {
				return
			}
			assert.True(t, rc.closed)
		})

		t.Run("and report a CloseError if closing fails", func(t *testing.T) {
			closeErr := errors.New("close failed")
			rc := &readCloser{Reader: strings.NewReader("port: 80\n"), closeErr: closeErr}
			_, err := Read(FromYaml(rc))

			var cerr try.CloseError
			if !assert.ErrorAs(t, err, &cerr) {
				return
			}
			assert.Equal(t, closeErr, cerr.Cause)
		})
	})
}

func TestJson_Apply(t *testing.T) {
	t.Run("will return an InvalidJsonError", func(t *testing.T) {
		t.Run("if the document is not a json object", func(t *testing.T) {
			_, err := Read(FromJson(strings.NewReader("[1, 2]")))

			var jerr InvalidJsonError
			assert.ErrorAs(t, err, &jerr)
		})
	})

	t.Run("will set nested values", func(t *testing.T) {
		m, err := Read(FromJson(strings.NewReader(`{"server": {"port": 8443, "tls": true}}`)))
		if !assert.Nil(t, err) {
			return
		}

		var cfg struct {
			Server struct {
				Port uint `config:"port"`
				TLS  bool `config:"tls"`
			} `config:"server"`
		}
		err = m.Unmarshal(&cfg)
		if !assert.Nil(t, err) {
			return
		}
		assert.Equal(t, uint(8443), cfg.Server.Port)
		assert.True(t, cfg.Server.TLS)
	})
}
