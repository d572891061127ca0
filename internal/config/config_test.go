package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultServer, cfg.Query.Server)
	assert.Equal(t, DefaultType, cfg.Query.Type)
	assert.Equal(t, DefaultTimeout, cfg.Query.Timeout)
	assert.Equal(t, DefaultRecvSize, cfg.Query.RecvSize)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, DefaultAPIHost, cfg.API.Host)
}

func TestValidateKeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Query: QueryConfig{
			Server:   "9.9.9.9:53",
			Type:     "AAAA",
			Timeout:  time.Second,
			RecvSize: 4096,
			Recurse:  true,
		},
	}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "9.9.9.9:53", cfg.Query.Server)
	assert.Equal(t, "AAAA", cfg.Query.Type)
	assert.Equal(t, time.Second, cfg.Query.Timeout)
	assert.Equal(t, 4096, cfg.Query.RecvSize)
}

func TestValidateClampsRecvSize(t *testing.T) {
	cfg := &Config{Query: QueryConfig{RecvSize: 64}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 512, cfg.Query.RecvSize)

	cfg = &Config{Query: QueryConfig{RecvSize: 1 << 20}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 65535, cfg.Query.RecvSize)
}

func TestValidateNormalizesLogging(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Level: "debug", Format: "JSON"}}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestValidateRejectsBadFormat(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Format: "yaml"}}
	assert.Error(t, cfg.Validate())
}

func TestValidateAPIPort(t *testing.T) {
	cfg := &Config{API: APIConfig{Enabled: true}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultAPIPort, cfg.API.Port)

	cfg = &Config{API: APIConfig{Enabled: true, Port: 70000}}
	assert.Error(t, cfg.Validate())

	// Port checks only apply when serve mode is on.
	cfg = &Config{API: APIConfig{Enabled: false, Port: 70000}}
	assert.NoError(t, cfg.Validate())
}
