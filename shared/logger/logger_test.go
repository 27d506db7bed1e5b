package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"daybooker/config"
	"daybooker/shared/constant"
	"daybooker/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	original, level := log.Logger, zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestSetupProductionWritesJSON(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "daybooker"

	var buf bytes.Buffer
	logger.Setup(cfg, "worker", &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("job", "expire-pending").Msg("job finished")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	assert.Equal(t, "worker", entry["component"])
	assert.Equal(t, "daybooker", entry["app"])
	assert.Equal(t, "expire-pending", entry["job"])
	assert.Equal(t, "job finished", entry["message"])
}

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.TraceLevel},
		{"loud", zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.level

			logger.Setup(cfg, "api", &bytes.Buffer{})

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.ErrorWithStack(errors.New("write failed"))

	assert.Contains(t, buf.String(), "write failed")
	assert.Contains(t, buf.String(), "logger_test")
}
