package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "production", "warn")

	logger.Info().Msg("dropped")
	logger.Warn().Str("field", "x").Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "x", line["field"])
	assert.Equal(t, "productdesc", line["service"])
}

func TestNewWithWriterLevelFallback(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, zerolog.InfoLevel, NewWithWriter(&buf, "production", "").GetLevel())
	assert.Equal(t, zerolog.DebugLevel, NewWithWriter(&buf, "development", "").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewWithWriter(&buf, "production", "loud").GetLevel())
}
