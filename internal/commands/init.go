package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/dbook/internal/accounts"
	"github.com/cleared-dev/dbook/internal/config"
	"github.com/cleared-dev/dbook/internal/logging"
	"github.com/cleared-dev/dbook/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string
	var entityType string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new dbook project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.Context(), cmd.OutOrStdout(), absDir, name, entityType)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&entityType, "entity-type", "llc_single_member", "entity type")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, dir, name, entityType string) error {
	for _, d := range []string{"accounts", "journal"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write dbook.yaml.
	cfg := config.Default(name, entityType)
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write chart of accounts.
	svc, err := accounts.NewService(accounts.DefaultChart(entityType), cfg.Currency)
	if err != nil {
		return fmt.Errorf("building default chart: %w", err)
	}
	if err := svc.Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	// Provision the ledger and seed it with the chart.
	st, err := store.Open(dbPath(dir, cfg), store.WithLogger(logging.Discard()))
	if err != nil {
		return fmt.Errorf("creating ledger: %w", err)
	}
	defer st.Close()

	if err := st.SaveAccounts(ctx, svc.All()); err != nil {
		return fmt.Errorf("seeding ledger: %w", err)
	}

	// Write .gitignore.
	gitignore := cfg.Storage.DBPath + "\n" + cfg.Storage.DBPath + "-*\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Fprintf(out, "Initialized dbook project at %s (%d accounts)\n", dir, len(svc.All()))
	return nil
}
