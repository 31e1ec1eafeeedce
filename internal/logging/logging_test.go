package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}

func TestNew_JSONRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.WarnLevel, Format: "json", Output: &buf})

	logger.Info().Msg("hidden")
	logger.Warn().Str("path", "a.al").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "a.al", entry["path"])
	assert.Equal(t, "warn", entry["level"])
}
