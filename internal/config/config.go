// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads default settings for the qr command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unixdj/qrgen"
	"github.com/unixdj/qrgen/coding"
)

// Types lists the output types, in the order shown in usage.
var Types = []string{"bmp", "png", "pbm", "utf8", "ascii", "eps"}

// Config holds settings that flags may override.
type Config struct {
	Version  int    `yaml:"version"`  // QR version, 1 to 40
	Level    string `yaml:"level"`    // error correction level: l, m, q or h
	Output   string `yaml:"output"`   // output file, "-" for standard output
	Type     string `yaml:"type"`     // one of Types, or "" to guess
	Charset  string `yaml:"charset"`  // payload charset
	LogLevel string `yaml:"loglevel"` // debug, info, warn or error
}

// Defaults returns a Config populated with all default values.
func Defaults() *Config {
	return &Config{
		Version:  1,
		Level:    "m",
		Output:   "./output-qrcode.bmp",
		Charset:  "utf-8",
		LogLevel: "warn",
	}
}

// Load reads a YAML config file at path.  Settings missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path in YAML format, creating parent directories
// as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports all invalid settings of cfg.
func (cfg *Config) Validate() error {
	var errs []error
	if !coding.Version(cfg.Version).IsValid() {
		errs = append(errs, fmt.Errorf("version %d: %w",
			cfg.Version, coding.ErrVersion))
	}
	if _, err := coding.ParseLevel(cfg.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := qr.ParseCharset(cfg.Charset); err != nil {
		errs = append(errs, err)
	}
	if cfg.Type != "" && !slices.Contains(Types, cfg.Type) {
		errs = append(errs, fmt.Errorf("unknown type %q", cfg.Type))
	}
	if _, err := cfg.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel returns the log level as a slog.Level.
func (cfg *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("loglevel: %w", err)
	}
	return l, nil
}

// GuessType returns the output type matching the extension of the
// output file name, or "" if there is none.
func GuessType(fn string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fn), "."))
	switch ext {
	case "bmp", "png", "pbm":
		return ext
	case "txt":
		return "utf8"
	case "eps", "ps":
		return "eps"
	}
	return ""
}
