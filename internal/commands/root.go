package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/dbook/internal/buildinfo"
)

type rootFlags struct {
	repo    string
	envFile string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "dbook",
		Short:   "Double-entry bookkeeping over a chart of accounts",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.repo, "repo", ".", "project directory")
	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "dotenv file with DBOOK_* overrides")

	rootCmd.AddCommand(
		newInitCommand(),
		newChartCommand(flags),
		newPostCommand(flags),
		newBalanceCommand(flags),
		newShowCommand(flags),
		newExportCommand(flags),
	)

	return rootCmd
}
