// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config provides layered configuration management.
//
// Values are collected from one or more [Source]s into a [Store], where
// later sources override earlier ones, and are then decoded into a
// struct using the "config" field tag.
//
//	type Config struct {
//		Server struct {
//			Port        uint          `config:"port"`
//			ReadTimeout time.Duration `config:"read_timeout"`
//		} `config:"server"`
//	}
//
//	m, err := config.Read(
//		config.FromYaml(config.RenderTextTemplate(f)),
//		config.FromEnv(config.EnvPrefix("SAYORI_")),
//	)
//	if err != nil {
//		return err
//	}
//
//	var cfg Config
//	err = m.Unmarshal(&cfg)
package config
