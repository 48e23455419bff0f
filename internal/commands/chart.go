package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/dbook/internal/accounts"
	"github.com/cleared-dev/dbook/internal/chart"
)

func newChartCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the chart of accounts with balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer p.Close()

			svc, err := p.chart(cmd.Context())
			if err != nil {
				return err
			}

			printer := chart.NewPrinter(cmd.OutOrStdout(), svc.Currency())
			if err := printer.Print(svc.Root()); err != nil {
				return fmt.Errorf("printing chart: %w", err)
			}
			return nil
		},
	}

	cmd.AddCommand(newChartSyncCommand(flags))

	return cmd
}

func newChartSyncCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replace the ledger's chart with " + accounts.ChartFile,
		Long: "Reads " + accounts.ChartFile + " and makes it the ledger's chart. " +
			"Accounts already in the ledger keep their posted balances; new accounts " +
			"take the CSV balances as opening balances. Accounts missing from the CSV " +
			"are removed unless they have postings.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer p.Close()

			return runChartSync(cmd.Context(), cmd.OutOrStdout(), p)
		},
	}
}

func runChartSync(ctx context.Context, out io.Writer, p *project) error {
	file, err := accounts.Load(p.root, p.cfg.Currency)
	if err != nil {
		return err
	}
	ledger, err := p.chart(ctx)
	if err != nil {
		return err
	}

	var added int
	for _, a := range file.All() {
		acct, _ := file.Get(a.Nominal)
		if posted, ok := ledger.Get(a.Nominal); ok {
			acct.Debit, acct.Credit = posted.Debit, posted.Credit
			continue
		}
		added++
	}

	synced := file.All()
	if err := p.store.SaveAccounts(ctx, synced); err != nil {
		return fmt.Errorf("syncing chart: %w", err)
	}
	removed := len(ledger.All()) - (len(synced) - added)

	p.log.WithField("accounts", len(synced)).Info("synced chart")
	fmt.Fprintf(out, "Synced chart: %d accounts (%d added, %d removed)\n", len(synced), added, removed)
	return nil
}
