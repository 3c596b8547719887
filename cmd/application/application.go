// Package application provides the application interface for revcheck commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            checker, err := app.Checker(revcheck.WithClientPath(args[0]))
//	            if err != nil {
//	                return err
//	            }
//	            _, err = checker.Run(cmd.Context())
//	            return err
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    SettingsFunc: func() application.Settings {
//	        return application.Settings{Output: "out.csv"}
//	    },
//	}
//	cmd := compare.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/revcheck"
)

// Application provides the application interface that commands need.
// The App struct from cmd/revcheck/app implements this interface.
type Application interface {
	// Checker creates a revision checker with the given options.
	Checker(opts ...revcheck.Option) (revcheck.Checker, error)

	// Settings returns the configured defaults for command arguments and flags.
	Settings() Settings

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

// Settings are the configured defaults commands fall back to when an
// argument or flag is not given.
type Settings struct {
	Client          string
	Home            string
	Output          string
	FormattedOutput string
	Report          string
	HistoryDB       string
	HistoryLimit    int
	Concurrency     int
	SkipStyling     bool
}
