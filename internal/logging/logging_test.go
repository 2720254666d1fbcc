package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		json  bool
		debug bool
		level zapcore.Level
	}{
		{"console info", false, false, zapcore.InfoLevel},
		{"json debug", true, true, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.json, tt.debug)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level))
			assert.False(t, logger.Core().Enabled(tt.level-1))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("  hello  ", 10))
	assert.Equal(t, "hel...", Truncate("hello", 3))
	assert.Equal(t, "", Truncate("hello", 0))
	assert.Equal(t, "héé...", Truncate("héééé", 3))
}
