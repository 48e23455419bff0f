package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/dbook/internal/journal"
	"github.com/cleared-dev/dbook/internal/model"
)

func newExportCommand(flags *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every stored transaction as a journal CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer p.Close()

			if output == "" {
				return runExport(cmd.Context(), cmd.OutOrStdout(), p)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := runExport(cmd.Context(), f, p); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write instead of stdout")

	return cmd
}

func runExport(ctx context.Context, out io.Writer, p *project) error {
	ids, err := p.store.TransactionIDs(ctx)
	if err != nil {
		return err
	}

	txns := make([]*model.SplitTransaction, 0, len(ids))
	for _, id := range ids {
		txn, err := p.store.Transaction(ctx, id)
		if err != nil {
			return err
		}
		txns = append(txns, txn)
	}

	if err := journal.WriteTransactions(out, txns, p.cfg.Currency); err != nil {
		return fmt.Errorf("exporting journal: %w", err)
	}
	p.log.WithField("transactions", len(txns)).Debug("exported journal")
	return nil
}
