// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration
// struct for the ladder demo host.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cogentcore.org/ladder/base/errors"
	"cogentcore.org/ladder/base/iox/tomlx"
	"cogentcore.org/ladder/base/iox/yamlx"
	"cogentcore.org/ladder/gpu"
)

// Config is the main config struct that contains all
// of the configuration options for the ladder host.
// Fields left zero in a file keep their defaults.
type Config struct {

	// the name of the demo to run
	Demo string `toml:"demo" yaml:"demo" def:"dice-cube" desc:"the name of the demo to run"`

	// the initial window width in screen coordinates
	Width int `toml:"width" yaml:"width" def:"800" desc:"the initial window width"`

	// the initial window height in screen coordinates
	Height int `toml:"height" yaml:"height" def:"600" desc:"the initial window height"`

	// the window title; the demo title is used when empty
	Title string `toml:"title" yaml:"title" desc:"the window title; the demo title is used when empty"`

	// the animation tick interval in milliseconds
	Interval int `toml:"interval" yaml:"interval" def:"16" desc:"the animation tick interval in milliseconds"`

	// the rotation added per tick, in degrees
	Step float32 `toml:"step" yaml:"step" def:"1" desc:"the rotation added per tick, in degrees"`

	// the directory that relative texture paths are resolved against;
	// the directory of the executable when empty
	TextureDir string `toml:"texture_dir" yaml:"texture_dir" desc:"the directory that relative texture paths are resolved against"`

	// the fallback image style for textures that cannot be loaded;
	// each demo has its own style when empty
	Fallback string `toml:"fallback" yaml:"fallback" desc:"the fallback image style (checker or label)"`

	// the background color as RGBA in [0, 1], overriding the demo's
	ClearColor []float32 `toml:"clear_color" yaml:"clear_color" desc:"the background color as RGBA in [0, 1]"`

	// the minimum log level: debug, info, warn or error
	LogLevel string `toml:"log_level" yaml:"log_level" def:"info" desc:"the minimum log level (debug, info, warn, error)"`
}

// Defaults sets the default values from the `def:` field tags.
func (cf *Config) Defaults() {
	errors.Log(SetFromDefaultTags(cf))
}

// TickInterval returns the tick interval as a duration.
func (cf *Config) TickInterval() time.Duration {
	return time.Duration(cf.Interval) * time.Millisecond
}

// FallbackStyle returns the configured fallback style,
// and false if none is configured.
func (cf *Config) FallbackStyle() (gpu.FallbackStyles, bool, error) {
	if cf.Fallback == "" {
		return 0, false, nil
	}
	var fs gpu.FallbackStyles
	if err := fs.UnmarshalText([]byte(cf.Fallback)); err != nil {
		return 0, false, err
	}
	return fs, true, nil
}

// Validate checks the configuration values.
func (cf *Config) Validate() error {
	switch {
	case cf.Width <= 0 || cf.Height <= 0:
		return fmt.Errorf("config: window size must be positive, got %dx%d", cf.Width, cf.Height)
	case cf.Interval <= 0:
		return fmt.Errorf("config: interval must be positive, got %d", cf.Interval)
	case len(cf.ClearColor) != 0 && len(cf.ClearColor) != 4:
		return fmt.Errorf("config: clear_color needs 4 components, got %d", len(cf.ClearColor))
	}
	if _, _, err := cf.FallbackStyle(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Open reads the config file into cf, as TOML or YAML depending on
// its extension. Values not in the file are left unchanged.
func Open(cf *Config, filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return tomlx.Open(cf, filename)
	case ".yaml", ".yml":
		return yamlx.Open(cf, filename)
	}
	return fmt.Errorf("config: unsupported config file type %q", filename)
}

// Save writes cf to the file, as TOML or YAML depending on its extension.
func Save(cf *Config, filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return tomlx.Save(cf, filename)
	case ".yaml", ".yml":
		return yamlx.Save(cf, filename)
	}
	return fmt.Errorf("config: unsupported config file type %q", filename)
}
