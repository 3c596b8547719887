// Package history implements the run history command.
package history

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/revcheck/cmd/application"
	"github.com/agentstation/revcheck/internal/cmd/output"
	"github.com/agentstation/revcheck/internal/history"
	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/logging"
)

// Flags holds the history command flags.
type Flags struct {
	DB    string
	Limit int
	Prune int
}

// NewCommand creates the history command using app context.
func NewCommand(app application.Application) *cobra.Command {
	settings := app.Settings()
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "history",
		GroupID: "management",
		Short:   "List recorded compare runs",
		Long: `History lists the compare runs recorded in the history database,
newest first. Runs are only recorded when compare is given --history-db
or the history_db config key is set.`,
		Example: `  revcheck history --history-db ~/.revcheck/history.db
  revcheck history --limit 5 -o json
  revcheck history --prune 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("history-db") {
				flags.DB = app.Settings().HistoryDB
			}
			if flags.DB == "" {
				return &errors.ValidationError{Field: "history-db", Message: "no history database configured"}
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			store, err := history.Open(ctx, flags.DB)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if cmd.Flags().Changed("prune") {
				removed, err := store.Prune(ctx, flags.Prune)
				if err != nil {
					return err
				}
				cmd.PrintErrln(fmt.Sprintf("Pruned %d run(s)", removed))
			}

			runs, err := store.List(ctx, flags.Limit)
			if err != nil {
				return err
			}
			if runs == nil {
				runs = []history.Run{}
			}
			formatter := output.NewFormatter(output.DetectFormat(app.OutputFormat()))
			return formatter.Format(cmd.OutOrStdout(), runs)
		},
	}

	limit := settings.HistoryLimit
	if limit == 0 {
		limit = constants.DefaultHistoryLimit
	}
	cmd.Flags().StringVar(&flags.DB, "history-db", settings.HistoryDB, "history database path")
	cmd.Flags().IntVar(&flags.Limit, "limit", limit, "maximum runs to list (0 lists all)")
	cmd.Flags().IntVar(&flags.Prune, "prune", 0, "delete all but the newest N runs before listing")

	return cmd
}
