package app

import (
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/agentstation/revcheck/cmd/revcheck/cmd/compare"
	"github.com/agentstation/revcheck/cmd/revcheck/cmd/dedupe"
	"github.com/agentstation/revcheck/cmd/revcheck/cmd/history"
	"github.com/agentstation/revcheck/cmd/revcheck/cmd/prepare"
)

// NewCompareCommand creates the compare command with app dependencies.
func (a *App) NewCompareCommand() *cobra.Command {
	return compare.NewCommand(a)
}

// NewPrepareCommand creates the prepare command with app dependencies.
func (a *App) NewPrepareCommand() *cobra.Command {
	return prepare.NewCommand(a)
}

// NewDedupeCommand creates the dedupe command with app dependencies.
func (a *App) NewDedupeCommand() *cobra.Command {
	return dedupe.NewCommand(a)
}

// NewHistoryCommand creates the history command with app dependencies.
func (a *App) NewHistoryCommand() *cobra.Command {
	return history.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("revcheck %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}

// NewManCommand creates the man command.
func (a *App) NewManCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate man page",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			header := &doc.GenManHeader{
				Title:   "REVCHECK",
				Section: "1",
				Source:  "revcheck " + a.version,
				Manual:  "revcheck Manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
