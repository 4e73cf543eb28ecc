package logger_test

import (
	"testing"

	"go-gemtrack/internal/shared/config"
	"go-gemtrack/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, logger.ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, logger.ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, logger.ParseLevel("nonsense"))
}

func TestNew_RespectsLevel(t *testing.T) {
	l := logger.New(config.LogConfig{Level: "warn", Format: "console", Output: "stderr"}, "development")

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}
