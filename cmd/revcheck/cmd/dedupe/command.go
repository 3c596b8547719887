// Package dedupe implements the home catalog deduplication command.
package dedupe

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/revcheck/cmd/application"
	"github.com/agentstation/revcheck/internal/cmd/output"
	"github.com/agentstation/revcheck/internal/tabular"
	"github.com/agentstation/revcheck/pkg/dedupe"
	"github.com/agentstation/revcheck/pkg/logging"
)

// Result is the structured output of a dedupe run.
type Result struct {
	Input    string   `json:"input" yaml:"input"`
	Output   string   `json:"output" yaml:"output"`
	Rows     int      `json:"rows" yaml:"rows"`
	Kept     int      `json:"kept" yaml:"kept"`
	Removed  int      `json:"removed" yaml:"removed"`
	Stripped int      `json:"stripped" yaml:"stripped"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewCommand creates the dedupe command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "dedupe <home> [output]",
		GroupID: "management",
		Short:   "Remove duplicate entries from the home catalog",
		Long: `Dedupe runs only the home catalog stage: leading zeros are stripped from
Revision Num, then rows repeating an earlier Call Number and Revision
Description pair are dropped. The first occurrence is kept.

The output defaults to <home>_deduplicated with the input's extension.`,
		Example: `  revcheck dedupe home.xlsx
  revcheck dedupe home.csv unique.csv`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := DefaultOutput(args[0])
			if len(args) > 1 {
				out = args[1]
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			table, err := tabular.Read(ctx, args[0])
			if err != nil {
				return err
			}
			stats := dedupe.Home(ctx, table)
			if err := tabular.Write(ctx, out, table); err != nil {
				return err
			}

			for _, w := range stats.Warnings {
				cmd.PrintErrln("Warning: " + w)
			}
			formatter := output.NewFormatter(output.DetectFormat(app.OutputFormat()))
			return formatter.Format(cmd.OutOrStdout(), Result{
				Input:    args[0],
				Output:   out,
				Rows:     stats.Rows,
				Kept:     stats.Kept,
				Removed:  stats.Removed,
				Stripped: stats.Stripped,
				Warnings: stats.Warnings,
			})
		},
	}
}

// DefaultOutput derives the output path for input: home.xlsx becomes
// home_deduplicated.xlsx next to it.
func DefaultOutput(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_deduplicated" + ext
}
