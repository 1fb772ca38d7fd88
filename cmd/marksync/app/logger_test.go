package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{name: "default", config: &Config{}, expected: "info"},
		{name: "verbose", config: &Config{Verbose: true}, expected: "debug"},
		{name: "quiet", config: &Config{Quiet: true}, expected: "warn"},
		{name: "both verbose and quiet", config: &Config{Verbose: true, Quiet: true}, expected: "warn"},
		{name: "explicit level wins over verbose", config: &Config{LogLevel: "error", Verbose: true}, expected: "error"},
		{name: "explicit level wins over quiet", config: &Config{LogLevel: "trace", Quiet: true}, expected: "trace"},
		{name: "environment", config: &Config{LogLevelEnv: "debug"}, expected: "debug"},
		{name: "verbose wins over environment", config: &Config{LogLevelEnv: "error", Verbose: true}, expected: "debug"},
		{name: "invalid explicit level", config: &Config{LogLevel: "loud"}, expected: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, determineLogLevel(tt.config))
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, closer := NewLogger(&Config{LogOutput: "discard", LogFormat: "json", Quiet: true})
	defer closer.Close()

	assert.Equal(t, "warn", logger.GetLevel().String())
}
