// Package logging configures zerolog for the service and adapts it to the
// calculation engine's Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. Outside production logs are written
// in the human-readable console format.
func Setup(env, level string) zerolog.Logger {
	return SetupWriter(os.Stderr, env, level)
}

// SetupWriter is Setup with an explicit destination
func SetupWriter(w io.Writer, env, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	out := w
	if env != "production" {
		out = zerolog.ConsoleWriter{Out: w}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	logger := zerolog.New(out).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// ZerologAdapter sends engine log lines to a zerolog logger
type ZerologAdapter struct {
	Logger zerolog.Logger
}

// NewZerologAdapter wraps a logger
func NewZerologAdapter(l zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{Logger: l}
}

func (a *ZerologAdapter) Debugf(format string, args ...any) {
	a.Logger.Debug().Msg(fmt.Sprintf(format, args...))
}

func (a *ZerologAdapter) Infof(format string, args ...any) {
	a.Logger.Info().Msg(fmt.Sprintf(format, args...))
}

func (a *ZerologAdapter) Warnf(format string, args ...any) {
	a.Logger.Warn().Msg(fmt.Sprintf(format, args...))
}

func (a *ZerologAdapter) Errorf(format string, args ...any) {
	a.Logger.Error().Msg(fmt.Sprintf(format, args...))
}
