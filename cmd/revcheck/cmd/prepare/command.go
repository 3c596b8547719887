// Package prepare implements the client ledger preparation command.
package prepare

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/revcheck/cmd/application"
	"github.com/agentstation/revcheck/internal/cmd/output"
	"github.com/agentstation/revcheck/internal/tabular"
	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/logging"
	"github.com/agentstation/revcheck/pkg/prepare"
)

// Result is the structured output of a prepare run.
type Result struct {
	Input    string   `json:"input" yaml:"input"`
	Output   string   `json:"output" yaml:"output"`
	Rows     int      `json:"rows" yaml:"rows"`
	Cleaned  int      `json:"cleaned" yaml:"cleaned"`
	Hinted   int      `json:"hinted" yaml:"hinted"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewCommand creates the prepare command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "prepare <client> [output]",
		GroupID: "management",
		Short:   "Clean client revision numbers and derive the Formatted hint",
		Long: `Prepare runs only the client cleaning stage: every Revision No. is
reduced to its leading revision (keeping STATEMENT suffixes) and the
Formatted column is filled with the hint used during matching.

The output defaults to the formatted_output config key.`,
		Example: `  revcheck prepare client.xlsx
  revcheck prepare client.xlsx prepared.csv -o yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := app.Settings().FormattedOutput
			if len(args) > 1 {
				out = args[1]
			}
			if out == "" {
				out = constants.DefaultFormattedFile
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			table, err := tabular.Read(ctx, args[0])
			if err != nil {
				return err
			}
			stats := prepare.Client(ctx, table)
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
				Cleaned:  stats.Cleaned,
				Hinted:   stats.Hinted,
				Warnings: stats.Warnings,
			})
		},
	}
}
