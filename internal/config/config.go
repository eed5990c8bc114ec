// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package config

import (
	"net"
	"strconv"
	"time"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageBadger = "badger"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Storage  StorageConfig  `koanf:"storage"`
	Tagging  TaggingConfig  `koanf:"tagging"`
	TMDB     TMDBConfig     `koanf:"tmdb"`
	Events   EventsConfig   `koanf:"events"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// APIConfig holds API pagination settings.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// StorageConfig selects and configures the catalog backend.
type StorageConfig struct {
	// Backend is memory or badger.
	Backend string `koanf:"backend"`

	// Path is the BadgerDB data directory.
	Path string `koanf:"path"`

	// SyncWrites fsyncs every BadgerDB write.
	SyncWrites bool `koanf:"sync_writes"`

	// SeedCSVPath is loaded into an empty catalog at startup when set.
	SeedCSVPath string `koanf:"seed_csv_path"`

	// GCInterval is how often BadgerDB value log GC runs. 0 disables it.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// TaggingConfig holds tag engine settings.
type TaggingConfig struct {
	// BatchWorkers is the worker count for batch evaluation. 0 or 1 runs
	// sequentially.
	BatchWorkers int `koanf:"batch_workers"`

	// ConfidenceThreshold is the default threshold for batch runs that ask
	// for high-confidence results only and do not supply one.
	ConfidenceThreshold int `koanf:"confidence_threshold"`
}

// TMDBConfig configures the optional TMDB discover importer.
type TMDBConfig struct {
	Enabled           bool          `koanf:"enabled"`
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
}

// EventsConfig configures the in-process event bus.
type EventsConfig struct {
	Enabled bool `koanf:"enabled"`

	// BufferSize is the per-subscriber output channel buffer.
	BufferSize int64 `koanf:"buffer_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Addr returns the HTTP listen address.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ClampPageSize applies the API page size bounds to a requested limit.
// Zero or negative falls back to the default.
func (a *APIConfig) ClampPageSize(limit int) int {
	if limit <= 0 {
		return a.DefaultPageSize
	}
	if limit > a.MaxPageSize {
		return a.MaxPageSize
	}
	return limit
}
