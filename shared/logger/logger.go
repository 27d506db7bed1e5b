package logger

import (
	"io"
	"os"
	"time"

	"daybooker/config"
	"daybooker/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console logger at trace level until the config is read.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

// Configure applies the configured level. Production emits JSON lines tagged
// with the app name and the running binary.
func Configure(cfg *config.Config, component string) {
	Setup(cfg, component, os.Stdout)
}

func Setup(cfg *config.Config, component string, out io.Writer) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == "" {
		level = zerolog.TraceLevel
	}

	if cfg.Server.Env != constant.ServerEnvProduction {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	context := zerolog.New(out).With().Timestamp().Str("component", component)
	if cfg.App.Name != "" {
		context = context.Str("app", cfg.App.Name)
	}

	log.Logger = context.Logger()
	zerolog.SetGlobalLevel(level)

	log.Debug().Str("loglevel", level.String()).Msg("logger configured")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
