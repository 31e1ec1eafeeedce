package cli

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   string
		verbose bool
		want    zerolog.Level
	}{
		{"info", false, zerolog.InfoLevel},
		{"warn", false, zerolog.WarnLevel},
		{"off", false, zerolog.Disabled},
		{"", false, zerolog.InfoLevel},
		{"error", true, zerolog.DebugLevel},
	}
	for _, tt := range tests {
		cfg := loggingConfig(tt.level, tt.verbose)
		assert.Equal(t, tt.want, cfg.Level, "level=%q verbose=%v", tt.level, tt.verbose)
		assert.Equal(t, os.Stderr, cfg.Output)
	}
}

func TestLogLevelFlag(t *testing.T) {
	t.Parallel()

	flag := rootCmd.PersistentFlags().Lookup("log-level")
	if assert.NotNil(t, flag) {
		assert.Equal(t, "info", flag.DefValue)
	}
}
