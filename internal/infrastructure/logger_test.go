package infrastructure

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zolbooo/ebarimt/internal/config"
)

func TestNewWithWriter_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("dropped")
	componentLogger := logger.Component("posapi")
	componentLogger.Warn().Str("endpoint", "/checkApi").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "posapi", entry["component"])
	assert.Equal(t, "/checkApi", entry["endpoint"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNewWithWriter_UnknownLevel(t *testing.T) {
	t.Parallel()

	logger := NewWithWriter(config.LoggingConfig{Level: "chatty"}, &bytes.Buffer{})

	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
