// Package logging configures zerolog for the CLI and the server and adapts it
// to the calculation engine's Logger interface.
package logging

import (
	"io"
	"os"

	"github.com/defycont/SIFIDE2025-v1.0/internal/calculation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. Outside production the output is
// human-readable; a nil writer means stderr.
func Setup(level zerolog.Level, production bool, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(level)
	if !production {
		w = zerolog.ConsoleWriter{Out: w}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return log.Logger
}

// Calc adapts a zerolog.Logger to calculation.Logger.
type Calc struct {
	L zerolog.Logger
}

var _ calculation.Logger = Calc{}

// NewCalc tags every engine message with component=calculation.
func NewCalc(l zerolog.Logger) Calc {
	return Calc{L: l.With().Str("component", "calculation").Logger()}
}

func (c Calc) Debugf(format string, args ...any) { c.L.Debug().Msgf(format, args...) }
func (c Calc) Infof(format string, args ...any)  { c.L.Info().Msgf(format, args...) }
func (c Calc) Warnf(format string, args ...any)  { c.L.Warn().Msgf(format, args...) }
func (c Calc) Errorf(format string, args ...any) { c.L.Error().Msgf(format, args...) }
