// Package revcheck checks a client's document revision ledger against the
// home document catalog. A Checker loads both spreadsheets, runs the
// reconciliation engine and writes the annotated ledger along with any
// configured side outputs.
package revcheck

import (
	"context"
	"time"

	"github.com/agentstation/revcheck/internal/history"
	"github.com/agentstation/revcheck/internal/report"
	"github.com/agentstation/revcheck/internal/tabular"
	"github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/logging"
	"github.com/agentstation/revcheck/pkg/prepare"
	"github.com/agentstation/revcheck/pkg/reconciler"
	"github.com/agentstation/revcheck/pkg/summary"
)

// Checker runs revision checks with event hooks
type Checker interface {
	// Run loads the inputs, reconciles them and writes every output
	Run(ctx context.Context) (*Report, error)

	// OnUnverified registers a callback for records that did not verify
	OnUnverified(UnverifiedHook)

	// OnComplete registers a callback for finished runs
	OnComplete(CompleteHook)
}

// Report describes a finished run.
type Report struct {
	Result *reconciler.Result

	ClientPath    string
	HomePath      string
	OutputPath    string
	FormattedPath string
	ReportPath    string

	// Styled is the number of highlighted cells in the output workbook.
	Styled int
	// Run is the history entry, when history is enabled.
	Run *history.Run
	// Warnings holds engine warnings plus any side output that failed.
	Warnings []string
}

// Summary returns the run's verdict counts.
func (r *Report) Summary() summary.Summary {
	if r == nil || r.Result == nil {
		return summary.Summary{}
	}
	return r.Result.Summary
}

// checker is the internal implementation of the Checker interface
type checker struct {
	config *config
	*hooks
}

// New creates a new Checker with the given options
func New(opts ...Option) (Checker, error) {
	cfg := defaultConfig()
	if err := cfg.apply(opts...); err != nil {
		return nil, err
	}
	// Surface engine option errors at construction time.
	if _, err := reconciler.New(cfg.reconcilerOpts...); err != nil {
		return nil, err
	}
	return &checker{config: cfg, hooks: newHooks()}, nil
}

// Run executes the full check.
func (c *checker) Run(ctx context.Context) (*Report, error) {
	ctx = logging.WithOperation(ctx, "compare")
	logger := logging.FromContext(ctx)
	started := time.Now()

	client, err := tabular.Read(ctx, c.config.clientPath)
	if err != nil {
		return nil, err
	}
	home, err := tabular.Read(ctx, c.config.homePath)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		ClientPath: c.config.clientPath,
		HomePath:   c.config.homePath,
		OutputPath: c.config.outputPath,
		ReportPath: c.config.reportPath,
	}

	if c.config.formattedPath != "" {
		formatted := client.Clone()
		prepare.Client(ctx, formatted)
		if err := tabular.Write(ctx, c.config.formattedPath, formatted); err != nil {
			return nil, err
		}
		rep.FormattedPath = c.config.formattedPath
	}

	engine, err := reconciler.New(c.config.reconcilerOpts...)
	if err != nil {
		return nil, err
	}
	result, err := engine.Reconcile(ctx, client, home)
	if err != nil {
		return nil, err
	}
	rep.Result = result
	rep.Warnings = append(rep.Warnings, result.Warnings...)

	if err := tabular.Write(ctx, c.config.outputPath, result.Client); err != nil {
		return nil, err
	}

	if c.config.styling {
		c.style(ctx, rep)
	}

	if c.config.reportPath != "" {
		in := report.Input{
			ClientPath: rep.ClientPath,
			HomePath:   rep.HomePath,
			OutputPath: rep.OutputPath,
			Result:     result,
		}
		if err := report.WriteFile(ctx, c.config.reportPath, in); err != nil {
			return nil, err
		}
	}

	if c.config.historyPath != "" {
		run, err := c.record(ctx, rep, started)
		if err != nil {
			logger.Warn().Err(err).Str("path", c.config.historyPath).Msg("Could not record run history")
			rep.Warnings = append(rep.Warnings, "history: "+err.Error())
		}
		rep.Run = run
	}

	logger.Info().
		Str("output", rep.OutputPath).
		Int("total", result.Summary.Total).
		Int("verified", result.Summary.Verified).
		Dur("elapsed", time.Since(started)).
		Msg("Revision check complete")

	c.trigger(rep)
	return rep, nil
}

// style highlights the output workbook. Failures are recorded as warnings.
func (c *checker) style(ctx context.Context, rep *Report) {
	format, err := tabular.DetectFormat(rep.OutputPath)
	if err != nil || format != tabular.FormatXLSX {
		return
	}
	n, err := tabular.StyleWorkbook(ctx, rep.OutputPath)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("path", rep.OutputPath).Msg("Could not apply styling")
		rep.Warnings = append(rep.Warnings, "styling: "+err.Error())
		return
	}
	rep.Styled = n
}

func (c *checker) record(ctx context.Context, rep *Report, started time.Time) (*history.Run, error) {
	store, err := history.Open(ctx, c.config.historyPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	sum := rep.Result.Summary
	run := &history.Run{
		StartedAt:  started,
		Client:     rep.ClientPath,
		Home:       rep.HomePath,
		Output:     rep.OutputPath,
		Total:      sum.Total,
		Verified:   sum.Verified,
		NeedsCheck: sum.NeedsCheck,
		NotFound:   sum.NotFound,
		Warnings:   len(rep.Warnings),
		Duration:   time.Since(started),
	}
	if err := store.Record(ctx, run); err != nil {
		return nil, errors.WrapResource("record", "run", rep.ClientPath, err)
	}
	return run, nil
}
