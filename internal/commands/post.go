package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/dbook/internal/chart"
	"github.com/cleared-dev/dbook/internal/journal"
	"github.com/cleared-dev/dbook/internal/model"
	"github.com/cleared-dev/dbook/internal/posting"
)

func newPostCommand(flags *rootFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "post <journal.csv>",
		Short: "Validate and post transactions from a journal CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer p.Close()

			return runPost(cmd.Context(), cmd.OutOrStdout(), p, args[0], dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and post in memory without saving")

	return cmd
}

func runPost(ctx context.Context, out io.Writer, p *project, path string, dryRun bool) error {
	svc, err := p.chart(ctx)
	if err != nil {
		return err
	}
	cur := svc.Currency()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	txns, err := journal.ReadTransactions(f, cur)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	if errs := journal.Validate(txns, svc); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(out, e.Error())
		}
		return fmt.Errorf("journal has %d validation errors", len(errs))
	}

	// Posting to the in-memory chart first resolves every leg before
	// anything is written to the ledger.
	poster := posting.NewPoster(svc.Root(), posting.WithLogger(p.log))
	receipts, err := poster.PostAll(txns)
	if err != nil {
		return err
	}

	var total int64
	for _, r := range receipts {
		if total, err = model.AddAmounts(total, r.Amount); err != nil {
			return fmt.Errorf("journal total: %w", err)
		}
	}

	if dryRun {
		fmt.Fprintf(out, "Dry run: %d transactions (%s) would be posted\n", len(receipts), cur.Format(total))
		return nil
	}

	if _, err := p.store.SaveTransactions(ctx, txns); err != nil {
		return fmt.Errorf("saving journal (nothing saved): %w", err)
	}

	fmt.Fprintf(out, "Posted %d transactions (%s)\n", len(receipts), cur.Format(total))
	if !chart.TrialBalanced(svc.Root()) {
		p.log.Warn("trial balance does not agree")
	}
	return nil
}
