// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package config loads the booking configuration file and optional .env files
// and builds the location source and submission sinks it describes.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/choria-io/booking"
	"github.com/choria-io/booking/locations"
	"github.com/choria-io/booking/sink"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultListen is the address the API listens on when none is configured
const DefaultListen = "localhost:8080"

// ErrNoLocationSource indicates neither an endpoint nor a locations file was configured
var ErrNoLocationSource = errors.New("no location source configured")

// Config is the booking configuration
type Config struct {
	// Endpoint is the GraphQL endpoint serving the location tree
	Endpoint string `yaml:"endpoint"`
	// APIKey is sent with every location query
	APIKey string `yaml:"api_key"`
	// Path is the content path of the location root
	Path string `yaml:"path"`
	// Language is the content language to query
	Language string `yaml:"language"`
	// Timeout limits a single location query
	Timeout time.Duration `yaml:"timeout"`
	// LocationsFile reads the location tree from a file instead of the endpoint
	LocationsFile string `yaml:"locations_file"`
	// Listen is the address the API listens on
	Listen string `yaml:"listen"`
	// AllowedOrigins restricts cross origin access to the API
	AllowedOrigins []string `yaml:"allowed_origins"`
	// SessionLimit caps the open API sessions, 0 uses the server default
	SessionLimit int `yaml:"session_limit"`
	// SessionIdleTimeout discards API sessions unused for this long, 0 uses the server default
	SessionIdleTimeout time.Duration `yaml:"session_idle_timeout"`
	// Sink configures where valid bookings are submitted
	Sink SinkConfig `yaml:"sink"`
}

// SinkConfig configures submission sinks, every configured sink receives each booking
type SinkConfig struct {
	// Format writes bookings to the output as json or yaml
	Format string `yaml:"format"`
	// Template renders bookings through a template
	Template *sink.TemplateConfig `yaml:"template"`
	// Exec runs a command for every booking
	Exec string `yaml:"exec"`
}

// Load reads the configuration file f, an empty f gives the default configuration
func Load(f string) (*Config, error) {
	cfg := &Config{}

	if f != "" {
		cb, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}

		err = yaml.Unmarshal(cb, cfg)
		if err != nil {
			return nil, fmt.Errorf("invalid configuration %s: %w", f, err)
		}
	}

	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}

	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("invalid configuration %s: timeout cannot be negative", f)
	}

	if cfg.SessionLimit < 0 || cfg.SessionIdleTimeout < 0 {
		return nil, fmt.Errorf("invalid configuration %s: session limits cannot be negative", f)
	}

	return cfg, nil
}

// LoadEnvFiles loads environment variables from the given files without
// overriding variables already set. Without files .env is loaded when present.
func LoadEnvFiles(files ...string) error {
	if len(files) > 0 {
		return godotenv.Load(files...)
	}

	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

// Query is the location query described by the configuration
func (c *Config) Query() locations.Query {
	return locations.Query{Path: c.Path, Language: c.Language}.WithDefaults()
}

// LocationSource creates the configured source, a locations file takes precedence over the endpoint
func (c *Config) LocationSource() (booking.LocationSource, error) {
	switch {
	case c.LocationsFile != "":
		return locations.NewFileSource(c.LocationsFile), nil

	case c.Endpoint != "":
		var opts []locations.GraphQLOption
		if c.Timeout > 0 {
			opts = append(opts, locations.WithTimeout(c.Timeout))
		}

		src, err := locations.NewGraphQLSource(c.Endpoint, c.APIKey, opts...)
		if err != nil {
			return nil, err
		}

		return src, nil

	default:
		return nil, ErrNoLocationSource
	}
}

// Sinks creates the configured sinks writing to w, nil is returned when none are configured
func (c *Config) Sinks(w io.Writer, log booking.Logger) (booking.Sink, error) {
	var sinks sink.Multi

	if c.Sink.Format != "" {
		s, err := sink.NewEncoder(c.Sink.Format, w)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}

	if c.Sink.Template != nil {
		s, err := sink.NewTemplate(*c.Sink.Template, w)
		if err != nil {
			return nil, err
		}
		if log != nil {
			s.Logger(log)
		}
		sinks = append(sinks, s)
	}

	if c.Sink.Exec != "" {
		s, err := sink.NewExec(c.Sink.Exec)
		if err != nil {
			return nil, err
		}
		if log != nil {
			s.Logger(log)
		}
		sinks = append(sinks, s)
	}

	switch len(sinks) {
	case 0:
		return nil, nil
	case 1:
		return sinks[0], nil
	default:
		return sinks, nil
	}
}
