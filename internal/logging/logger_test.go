package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		level   string
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{"development debug", "development", "debug", zapcore.DebugLevel, zapcore.InvalidLevel},
		{"production default", "production", "", zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", "production", "WARN", zapcore.WarnLevel, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.env, tt.level)
			require.NoError(t, err)

			assert.True(t, logger.Core().Enabled(tt.enabled))
			if tt.muted != zapcore.InvalidLevel {
				assert.False(t, logger.Core().Enabled(tt.muted))
			}
		})
	}
}
