package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/dbook/internal/model"
	"github.com/cleared-dev/dbook/internal/money"
)

func newShowCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <txn-id>",
		Short: "Show a posted transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parsing transaction id %q: %w", args[0], err)
			}

			p, err := openProject(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer p.Close()

			txn, err := p.store.Transaction(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printTransaction(cmd.OutOrStdout(), txn, p.cfg.Currency)
		},
	}
}

func printTransaction(out io.Writer, txn *model.SplitTransaction, cur money.Currency) error {
	id, _ := txn.ID()
	kind := "split"
	if txn.IsSimple() {
		kind = "simple"
	}

	fmt.Fprintf(out, "Transaction %d (%s) %s\n", id, kind, txn.Date().Format("2006-01-02"))
	if txn.Note() != "" {
		fmt.Fprintf(out, "  Note:      %s\n", txn.Note())
	}
	if txn.Source() != "" {
		fmt.Fprintf(out, "  Source:    %s\n", txn.Source())
	}
	if txn.Reference() != 0 {
		fmt.Fprintf(out, "  Reference: %d\n", txn.Reference())
	}

	for _, e := range txn.Entries().All() {
		fmt.Fprintf(out, "  %-8s %s %s\n", e.Nominal, e.Side, cur.Format(e.Amount))
	}
	fmt.Fprintf(out, "  DR accounts: %s\n", joinNominals(txn.DebitAccounts()))
	fmt.Fprintf(out, "  CR accounts: %s\n", joinNominals(txn.CreditAccounts()))

	amount, err := txn.Amount()
	switch {
	case errors.Is(err, model.ErrUnbalancedTransaction):
		fmt.Fprintln(out, "  Amount: unbalanced")
	case err != nil:
		return err
	default:
		fmt.Fprintf(out, "  Amount: %s\n", cur.Format(amount))
	}
	return nil
}

func joinNominals(ns []model.Nominal) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}
