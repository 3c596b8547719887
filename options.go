package revcheck

import (
	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/reconciler"
)

// Option is a function that configures a Checker instance
type Option func(*config) error

// config holds the run configuration.
type config struct {
	clientPath    string
	homePath      string
	outputPath    string
	formattedPath string
	reportPath    string
	historyPath   string
	styling       bool

	reconcilerOpts []reconciler.Option
}

func defaultConfig() *config {
	return &config{
		outputPath:    constants.DefaultOutputFile,
		formattedPath: constants.DefaultFormattedFile,
		styling:       true,
	}
}

func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	if c.clientPath == "" {
		return &errors.ValidationError{Field: "client", Message: "a client file is required"}
	}
	if c.homePath == "" {
		return &errors.ValidationError{Field: "home", Message: "a home file is required"}
	}
	return nil
}

// WithClientPath sets the client ledger to check.
func WithClientPath(path string) Option {
	return func(c *config) error {
		c.clientPath = path
		return nil
	}
}

// WithHomePath sets the home catalog to check against.
func WithHomePath(path string) Option {
	return func(c *config) error {
		c.homePath = path
		return nil
	}
}

// WithOutputPath sets where the annotated client ledger is written.
// The extension selects the format.
func WithOutputPath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return &errors.ValidationError{Field: "output", Value: path, Message: "cannot be empty"}
		}
		c.outputPath = path
		return nil
	}
}

// WithFormattedPath sets where the prepared client ledger is written
// before matching. An empty path disables the intermediate file.
func WithFormattedPath(path string) Option {
	return func(c *config) error {
		c.formattedPath = path
		return nil
	}
}

// WithReportPath enables the markdown run report.
func WithReportPath(path string) Option {
	return func(c *config) error {
		c.reportPath = path
		return nil
	}
}

// WithStyling configures whether result cells of an xlsx output are highlighted
func WithStyling(enabled bool) Option {
	return func(c *config) error {
		c.styling = enabled
		return nil
	}
}

// WithHistory records each run in the SQLite database at path.
func WithHistory(path string) Option {
	return func(c *config) error {
		c.historyPath = path
		return nil
	}
}

// WithReconcilerOptions passes options through to the reconciliation engine.
func WithReconcilerOptions(opts ...reconciler.Option) Option {
	return func(c *config) error {
		c.reconcilerOpts = append(c.reconcilerOpts, opts...)
		return nil
	}
}
