package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/revcheck/pkg/constants"
)

// Format selects how log events are rendered.
type Format string

// Supported log formats.
const (
	// FormatAuto renders console output when writing to a terminal on
	// stderr and JSON everywhere else.
	FormatAuto Format = "auto"
	// FormatJSON renders one JSON object per event.
	FormatJSON Format = "json"
	// FormatConsole renders human-readable, optionally colored lines.
	FormatConsole Format = "console"
)

// Config describes a logger. The zero Config logs at info level to stderr,
// choosing the format from the terminal.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error or off.
	// Empty and unrecognized values mean info.
	Level string

	// Format is auto, json or console ("pretty" is accepted for console).
	Format string

	// Output is stderr, stdout, discard, or a file path opened for append.
	// A file that cannot be opened falls back to stderr.
	Output string

	// TimeFormat applies to console output: kitchen, rfc3339, unix, or a
	// Go time layout.
	TimeFormat string

	// NoColor disables ANSI colors in console output.
	NoColor bool

	// AddCaller includes file:line on every event. Debug and trace
	// levels always include it.
	AddCaller bool
}

// DefaultConfig returns the configuration used when none is given. It
// honours NO_COLOR.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     string(FormatAuto),
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// envConfig builds the configuration the package default logger starts
// with, before any command line flags are seen.
func envConfig() *Config {
	cfg := DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	return cfg
}

// NewLoggerFromConfig builds a logger from cfg and makes its level the
// zerolog global level, so events below it are dropped everywhere. A nil
// cfg uses DefaultConfig.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	return build(cfg)
}

// build creates the logger without touching global state.
func build(cfg *Config) zerolog.Logger {
	level := parseLevel(cfg.Level)
	logger := zerolog.New(cfg.writer()).
		Level(level).
		With().
		Timestamp().
		Logger()

	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// writer resolves the output destination and wraps it for console output
// when the format calls for it.
func (cfg *Config) writer() io.Writer {
	out := openOutput(cfg.Output)

	format := Format(strings.ToLower(cfg.Format))
	switch format {
	case "", FormatAuto:
		if out == os.Stderr && stderrIsTerminal() {
			format = FormatConsole
		} else {
			format = FormatJSON
		}
	case "pretty":
		format = FormatConsole
	}

	if format != FormatConsole {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: parseTimeFormat(cfg.TimeFormat),
		NoColor:    cfg.NoColor,
	}
}

func openOutput(output string) io.Writer {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	}
	file, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr
	}
	return file
}

// parseLevel maps a level name to a zerolog level. Anything it does not
// recognise, including the empty string, is info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "", "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "none", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// parseTimeFormat maps a time format name to a layout. Unix time is the
// empty layout in zerolog's console writer.
func parseTimeFormat(format string) string {
	switch strings.ToLower(format) {
	case "kitchen", "":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "unix", "epoch":
		return ""
	}
	if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
		return format
	}
	return time.Kitchen
}
