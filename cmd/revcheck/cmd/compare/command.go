// Package compare implements the full revision check command.
package compare

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/revcheck"
	"github.com/agentstation/revcheck/cmd/application"
	"github.com/agentstation/revcheck/internal/cmd/output"
	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/ledger"
	"github.com/agentstation/revcheck/pkg/logging"
	"github.com/agentstation/revcheck/pkg/reconciler"
	"github.com/agentstation/revcheck/pkg/summary"
)

// Flags holds the compare command flags.
type Flags struct {
	Formatted   string
	Report      string
	HistoryDB   string
	NoStyle     bool
	Concurrency int
}

// NewCommand creates the compare command using app context.
func NewCommand(app application.Application) *cobra.Command {
	settings := app.Settings()
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "compare [client] [home] [output]",
		GroupID: "core",
		Short:   "Check client document revisions against the home catalog",
		Long: `Compare loads the client ledger and the home catalog, cleans the client
revision numbers, removes duplicate home entries and classifies every client
row as verified, needing a check, or not found.

The annotated client ledger is written to the output file (csv or xlsx). For
xlsx output the Result and Note cells are highlighted:
  red     Result is "Not found"
  yellow  Result is a revision/date mismatch, or no revision date was given

Arguments fall back to the client, home and output config keys.`,
		Example: `  revcheck compare client.xlsx home.xlsx
  revcheck compare client.csv home.csv result.csv --no-style
  revcheck compare client.xlsx home.xlsx --report report.md -o json`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.Formatted, "formatted", settings.FormattedOutput,
		"write the prepared client ledger here before matching (empty disables)")
	cmd.Flags().StringVar(&flags.Report, "report", settings.Report, "write a markdown run report")
	cmd.Flags().StringVar(&flags.HistoryDB, "history-db", settings.HistoryDB, "record the run in this SQLite database")
	cmd.Flags().BoolVar(&flags.NoStyle, "no-style", settings.SkipStyling, "do not highlight xlsx result cells")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", settings.Concurrency, "client rows classified in parallel")

	return cmd
}

// Result is the structured output of a compare run.
type Result struct {
	Client    string                      `json:"client" yaml:"client"`
	Home      string                      `json:"home" yaml:"home"`
	Output    string                      `json:"output" yaml:"output"`
	Formatted string                      `json:"formatted,omitempty" yaml:"formatted,omitempty"`
	Report    string                      `json:"report,omitempty" yaml:"report,omitempty"`
	Summary   summary.Summary             `json:"summary" yaml:"summary"`
	Stats     reconciler.ResultStatistics `json:"stats" yaml:"stats"`
	Warnings  []string                    `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func run(cmd *cobra.Command, app application.Application, args []string, flags *Flags) error {
	settings := app.Settings()
	flags.withDefaults(cmd, settings)
	client := argOr(args, 0, settings.Client)
	home := argOr(args, 1, settings.Home)
	out := argOr(args, 2, settings.Output)
	if out == "" {
		out = constants.DefaultOutputFile
	}
	if client == "" || home == "" {
		return &errors.ValidationError{
			Field:   "arguments",
			Message: "a client file and a home file are required",
		}
	}

	opts := []revcheck.Option{
		revcheck.WithClientPath(client),
		revcheck.WithHomePath(home),
		revcheck.WithOutputPath(out),
		revcheck.WithFormattedPath(flags.Formatted),
		revcheck.WithReportPath(flags.Report),
		revcheck.WithHistory(flags.HistoryDB),
		revcheck.WithStyling(!flags.NoStyle),
	}
	if flags.Concurrency > 0 {
		opts = append(opts, revcheck.WithReconcilerOptions(reconciler.WithConcurrency(flags.Concurrency)))
	}

	checker, err := app.Checker(opts...)
	if err != nil {
		return err
	}

	logger := app.Logger()
	checker.OnUnverified(func(rec ledger.ClientRecord) {
		logger.Debug().
			Int("row", rec.Index+1).
			Str("doc", rec.DocNumber.String()).
			Str("result", rec.Result).
			Str("note", rec.Note).
			Msg("Needs attention")
	})

	ctx := logging.WithLogger(cmd.Context(), logger)
	rep, err := checker.Run(ctx)
	if err != nil {
		return err
	}

	for _, w := range rep.Warnings {
		cmd.PrintErrln("Warning: " + w)
	}

	format := output.DetectFormat(app.OutputFormat())
	formatter := output.NewFormatter(format)
	switch format {
	case output.FormatTable, output.FormatWide:
		if err := formatter.Format(cmd.OutOrStdout(), output.SummaryData(rep.Summary())); err != nil {
			return err
		}
		if format == output.FormatWide {
			meta := rep.Result.Metadata
			if err := formatter.Format(cmd.OutOrStdout(), output.CountsData("Tier", meta.Tiers, meta.Stats.TierHits)); err != nil {
				return err
			}
		}
		cmd.PrintErrln("Results written to " + rep.OutputPath)
		return nil
	default:
		return formatter.Format(cmd.OutOrStdout(), Result{
			Client:    rep.ClientPath,
			Home:      rep.HomePath,
			Output:    rep.OutputPath,
			Formatted: rep.FormattedPath,
			Report:    rep.ReportPath,
			Summary:   rep.Summary(),
			Stats:     rep.Result.Metadata.Stats,
			Warnings:  rep.Warnings,
		})
	}
}

// withDefaults refreshes unset flags from settings, which may have been
// reloaded from --config after the flags were defined.
func (f *Flags) withDefaults(cmd *cobra.Command, settings application.Settings) {
	set := cmd.Flags().Changed
	if !set("formatted") {
		f.Formatted = settings.FormattedOutput
	}
	if !set("report") {
		f.Report = settings.Report
	}
	if !set("history-db") {
		f.HistoryDB = settings.HistoryDB
	}
	if !set("no-style") {
		f.NoStyle = settings.SkipStyling
	}
	if !set("concurrency") {
		f.Concurrency = settings.Concurrency
	}
}

func argOr(args []string, i int, fallback string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return fallback
}
