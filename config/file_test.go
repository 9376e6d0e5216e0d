// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"io"
	"io/fs"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReader_Read(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the file does not exist", func(t *testing.T) {
			r := NewFileReader(afero.NewMemMapFs(), "config.yaml")

			_, err := io.ReadAll(r)
			assert.ErrorIs(t, err, fs.ErrNotExist)
		})

		t.Run("if the reader has been closed", func(t *testing.T) {
			memFs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(memFs, "config.yaml", []byte("port: 80\n"), 0o644))

			r := NewFileReader(memFs, "config.yaml")
			_, err := r.Read(make([]byte, 1))
			require.NoError(t, err)
			require.NoError(t, r.Close())

			_, err = r.Read(make([]byte, 1))
			assert.ErrorIs(t, err, os.ErrClosed)
		})
	})

	t.Run("will read the file contents", func(t *testing.T) {
		memFs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(memFs, "/etc/sayori/config.yaml", []byte("server:\n  port: 8443\n"), 0o644))

		m, err := Read(FromYaml(NewFileReader(memFs, "/etc/sayori/config.yaml")))
		if !assert.Nil(t, err) {
			return
		}

		var cfg serverConfig
		err = m.Unmarshal(&cfg)
		if !assert.Nil(t, err) {
			return
		}
		assert.Equal(t, uint(8443), cfg.Server.Port)
	})
}

func TestFileReader_Close(t *testing.T) {
	t.Run("will not fail", func(t *testing.T) {
		t.Run("if the file was never opened", func(t *testing.T) {
			r := NewFileReader(afero.NewMemMapFs(), "config.yaml")
			assert.Nil(t, r.Close())
		})
	})
}
