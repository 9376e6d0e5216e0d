// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package command

import (
	"bytes"
	_ "embed"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/meialau/sayori/config"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

//go:embed default_config.yaml
var defaultConfig []byte

// envPrefix scopes environment overrides, e.g. SAYORI_SERVER_PORT.
const envPrefix = "SAYORI_"

// Config is everything the sayori command can be configured with.
// Keys avoid "_" so they can be set from the environment.
type Config struct {
	Service struct {
		Name string `config:"name"`
	} `config:"service"`

	Server struct {
		Port    uint          `config:"port"`
		Timeout time.Duration `config:"timeout"`
	} `config:"server"`

	Shutdown struct {
		Timeout time.Duration `config:"timeout"`
	} `config:"shutdown"`

	Static struct {
		Dir    string `config:"dir"`
		Prefix string `config:"prefix"`
	} `config:"static"`

	TLS struct {
		Keystore   string `config:"keystore"`
		Passphrase string `config:"passphrase"`
	} `config:"tls"`

	Log struct {
		Level slog.Level `config:"level"`
	} `config:"log"`

	Trace struct {
		Stdout bool `config:"stdout"`
	} `config:"trace"`

	Endpoints struct {
		Metrics string `config:"metrics"`
		Health  string `config:"health"`
	} `config:"endpoints"`
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string][]string{
	"port":          {"server", "port"},
	"static-dir":    {"static", "dir"},
	"static-prefix": {"static", "prefix"},
	"keystore":      {"tls", "keystore"},
	"trace-stdout":  {"trace", "stdout"},
	"log-level":     {"log", "level"},
}

// sources lists config sources from lowest to highest precedence:
// embedded defaults, config file, .env file, environment, flags.
func sources(fs afero.Fs, configFile, envFile string, flags *pflag.FlagSet) []config.Source {
	srcs := []config.Source{
		config.FromYaml(config.RenderTextTemplate(bytes.NewReader(defaultConfig))),
	}
	if configFile != "" {
		srcs = append(srcs, configFileSource(fs, configFile))
	}
	if envFile != "" {
		srcs = append(srcs, config.FromDotEnv(config.NewFileReader(fs, envFile), config.EnvPrefix(envPrefix)))
	}
	srcs = append(srcs, config.FromEnv(config.EnvPrefix(envPrefix)), flagSource(flags))
	return srcs
}

// configFileSource decodes a .json config file as JSON and anything
// else as YAML. Either is rendered as a text/template first.
func configFileSource(fs afero.Fs, path string) config.Source {
	r := config.RenderTextTemplate(config.NewFileReader(fs, path))
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return config.FromJson(r)
	}
	return config.FromYaml(r)
}

func flagSource(flags *pflag.FlagSet) config.Source {
	return config.SourceFunc(func(store config.Store) error {
		m := make(config.Map)
		flags.Visit(func(f *pflag.Flag) {
			path, ok := flagKeys[f.Name]
			if !ok {
				return
			}
			section, ok := m[path[0]].(map[string]any)
			if !ok {
				section = make(map[string]any)
				m[path[0]] = section
			}
			section[path[1]] = f.Value.String()
		})
		return m.Apply(store)
	})
}
