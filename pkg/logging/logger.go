// Package logging provides structured logging for revcheck using zerolog.
//
// Every stage of a run pulls its logger from the context, so callers decide
// where events go and which fields they carry. Human-readable console output
// is used when stderr is a terminal and JSON otherwise, so batch runs can be
// shipped to a log pipeline unchanged.
//
// Example usage:
//
//	ctx := logging.WithLogger(context.Background(), logging.Default())
//	ctx = logging.WithStage(ctx, "dedupe")
//	logging.FromContext(ctx).Warn().Msg("Call Number column missing")
//
// The default logger reads LOG_LEVEL, DEBUG, LOG_FORMAT and NO_COLOR at
// start up. The CLI replaces it with SetDefault once flags are parsed.
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is returned by FromContext when a context carries none.
var defaultLogger = build(envConfig())

// Default returns the package default logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the package default logger and zerolog's global
// log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
