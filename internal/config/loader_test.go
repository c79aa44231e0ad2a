package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "sandbox")
	t.Setenv("APP_SERVICE_VERSION", "1.0.0")
	t.Setenv("APP_COMMIT_SHA", "1234xwz")
	t.Setenv("LOGGING_LEVEL", "debug")
	t.Setenv("POSAPI_BASE_URL", "http://192.168.1.20:7080/")
	t.Setenv("POSAPI_TIMEOUT", "5s")
	t.Setenv("POSAPI_CB_MAX_REQUESTS", "2")

	cfg, err := Init()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "sandbox", cfg.AppConfig.Env)
	assert.Equal(t, "ebarimt", cfg.AppConfig.ServiceName)
	assert.Equal(t, "1.0.0", cfg.AppConfig.ServiceVersion)
	assert.Equal(t, "1234xwz", cfg.AppConfig.CommitSHA)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "http://192.168.1.20:7080", cfg.PosAPI.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.PosAPI.Timeout)
	assert.Equal(t, uint32(2), cfg.PosAPI.CircuitBreaker.MaxRequests)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Init()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:7080", cfg.PosAPI.BaseURL)
	assert.Equal(t, "http://info.ebarimt.mn", cfg.MerchantRegistry.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.PosAPI.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.PosAPI.ResyncTimeout)
	assert.True(t, cfg.PosAPI.CircuitBreaker.Enabled)
	assert.InDelta(t, 0.8, cfg.PosAPI.CircuitBreaker.FailureRatio, 1e-9)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Telemetry.Metrics.Enabled)
	assert.Equal(t, 5, cfg.Backoff.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Backoff.BaseDelay)
	assert.True(t, cfg.HTTPServer.AccessLog.Enabled)
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	t.Setenv("POSAPI_BASE_URL", "localhost:7080")

	cfg, err := Init()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "POSAPI_BASE_URL")
}

func TestLoad_InvalidFailureRatio(t *testing.T) {
	t.Setenv("POSAPI_CB_FAILURE_RATIO", "1.5")

	_, err := Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSAPI_CB_FAILURE_RATIO")
}

func TestLoad_InvalidMaxAttempts(t *testing.T) {
	t.Setenv("INIT_MAX_ATTEMPTS", "0")

	_, err := Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INIT_MAX_ATTEMPTS")
}

func TestDumpConfig(t *testing.T) {
	cfg, err := Init()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, DumpConfig(&buf, cfg))

	assert.Contains(t, buf.String(), `"base_url": "http://localhost:7080"`)
}
