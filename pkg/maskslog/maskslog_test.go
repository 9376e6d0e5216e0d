// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package maskslog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Message    string `json:"msg"`
	Keystore   string `json:"keystore"`
	Passphrase string `json:"passphrase"`
}

func TestHandler_Handle(t *testing.T) {
	t.Run("will not mask attrs", func(t *testing.T) {
		t.Run("if no keys are registered", func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(NewHandler(slog.NewJSONHandler(&buf, nil)))

			log.Info("loading keystore", slog.String("passphrase", "hunter2"))

			var r record
			require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
			assert.Equal(t, "hunter2", r.Passphrase)
		})
	})

	t.Run("will mask attrs", func(t *testing.T) {
		t.Run("if the key is registered and the attr is added per record", func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(NewHandler(slog.NewJSONHandler(&buf, nil), "passphrase"))

			log.Info("loading keystore",
				slog.String("keystore", "/etc/sayori/server.p12"),
				slog.String("passphrase", "hunter2"),
			)

			var r record
			require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
			assert.Equal(t, "loading keystore", r.Message)
			assert.Equal(t, "/etc/sayori/server.p12", r.Keystore)
			assert.Equal(t, Mask, r.Passphrase)
		})

		t.Run("if the key is registered and the attr is added with With", func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(NewHandler(slog.NewJSONHandler(&buf, nil), "passphrase")).
				With(slog.String("passphrase", "hunter2"))

			log.Info("loading keystore", slog.String("keystore", "server.p12"))

			var r record
			require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
			assert.Equal(t, Mask, r.Passphrase)
		})
	})
}
