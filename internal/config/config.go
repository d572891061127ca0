// Package config defines the runtime configuration for dnsq.
//
// The CLI fills a Config from flags; Validate normalizes defaults and
// rejects out-of-range values before anything touches the network.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/dnsq/dnsq/internal/helpers"
)

// Defaults applied by Validate.
const (
	DefaultServer   = "8.8.8.8:53"
	DefaultType     = "A"
	DefaultTimeout  = 3 * time.Second
	DefaultRecvSize = 2048
	DefaultAPIHost  = "127.0.0.1"
	DefaultAPIPort  = 8080

	minRecvSize = 512
	maxRecvSize = 65535
)

// QueryConfig contains settings for one-shot lookups and serve-mode upstream
// exchanges.
type QueryConfig struct {
	Server   string
	Type     string
	Timeout  time.Duration
	RecvSize int
	Recurse  bool
}

// HistoryConfig controls the local lookup journal.
type HistoryConfig struct {
	Enabled bool
	Path    string // empty means the per-user default location
}

// APIConfig contains HTTP lookup API settings.
//
// Note: APIKey is a secret and must never appear in logs or API responses.
type APIConfig struct {
	Enabled bool
	Host    string
	Port    int
	APIKey  string
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string
	Format     string // "text" or "json"
	IncludePID bool
}

// Config is the root configuration structure.
type Config struct {
	Query   QueryConfig
	History HistoryConfig
	API     APIConfig
	Logging LoggingConfig
}

// Validate validates and normalizes the configuration.
func (cfg *Config) Validate() error {
	if cfg.Query.Server == "" {
		cfg.Query.Server = DefaultServer
	}
	if cfg.Query.Type == "" {
		cfg.Query.Type = DefaultType
	}
	if cfg.Query.Timeout <= 0 {
		cfg.Query.Timeout = DefaultTimeout
	}
	if cfg.Query.RecvSize == 0 {
		cfg.Query.RecvSize = DefaultRecvSize
	}
	cfg.Query.RecvSize = helpers.ClampInt(cfg.Query.RecvSize, minRecvSize, maxRecvSize)

	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return errors.New(`logging.format must be "text" or "json"`)
	}

	// Normalize the lookup API
	if cfg.API.Host == "" {
		cfg.API.Host = DefaultAPIHost
	}
	if cfg.API.Enabled {
		if cfg.API.Port == 0 {
			cfg.API.Port = DefaultAPIPort
		}
		if cfg.API.Port < 0 || cfg.API.Port > 65535 {
			return errors.New("api.port must be 1..65535")
		}
	}

	return nil
}
