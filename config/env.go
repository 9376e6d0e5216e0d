// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"os"
	"strings"

	"github.com/meialau/sayori/config/key"
)

// EnvOption configures the environment backed sources.
type EnvOption func(*envOptions)

type envOptions struct {
	prefix string
}

// EnvPrefix restricts the source to variables starting with prefix.
// The prefix is stripped, the remainder is lower cased and split on
// "_" into nested keys, so SAYORI_SERVER_PORT sets server.port.
func EnvPrefix(prefix string) EnvOption {
	return func(eo *envOptions) {
		eo.prefix = prefix
	}
}

// Env is a Source backed by the process environment.
type Env struct {
	environ func() []string
	prefix  string
}

// FromEnv returns a Source which reads os.Environ. Without a prefix
// every variable is set as a top level key with its name unchanged.
func FromEnv(opts ...EnvOption) Env {
	eo := &envOptions{}
	for _, opt := range opts {
		opt(eo)
	}
	return Env{
		environ: os.Environ,
		prefix:  eo.prefix,
	}
}

// Apply implements the Source interface.
func (src Env) Apply(store Store) error {
	vars := make(map[string]string)
	for _, pair := range src.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		vars[k] = v
	}
	return applyVars(store, vars, src.prefix)
}

func applyVars(store Store, vars map[string]string, prefix string) error {
	for k, v := range vars {
		if prefix == "" {
			err := store.Set(key.Name(k), v)
			if err != nil {
				return err
			}
			continue
		}

		name, ok := strings.CutPrefix(k, prefix)
		if !ok {
			continue
		}
		chain := key.Split(strings.ToLower(name), "_")
		if len(chain) == 0 {
			continue
		}
		err := store.Set(chain, v)
		if err != nil {
			return err
		}
	}
	return nil
}
