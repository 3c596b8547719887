// Package app provides the application context and dependency management
// for the revcheck CLI. It centralizes configuration, logging and checker
// construction so commands depend only on the application interface.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/revcheck"
	"github.com/agentstation/revcheck/cmd/application"
	"github.com/agentstation/revcheck/pkg/errors"
)

// App represents the revcheck application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from files and the environment and can be
// overridden using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Settings returns the configured command defaults.
func (a *App) Settings() application.Settings {
	return application.Settings{
		Client:          a.config.Client,
		Home:            a.config.Home,
		Output:          a.config.Output,
		FormattedOutput: a.config.FormattedOutput,
		Report:          a.config.Report,
		HistoryDB:       a.config.HistoryDB,
		HistoryLimit:    a.config.HistoryLimit,
		Concurrency:     a.config.Concurrency,
		SkipStyling:     a.config.SkipStyling,
	}
}

// Checker creates a revision checker with the given options.
func (a *App) Checker(opts ...revcheck.Option) (revcheck.Checker, error) {
	checker, err := revcheck.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "checker", "", err)
	}
	return checker, nil
}

// Shutdown performs graceful shutdown of the application. Commands own
// their resources, so only the logger is flushed.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
