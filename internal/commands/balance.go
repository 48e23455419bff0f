package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/dbook/internal/accounts"
	"github.com/cleared-dev/dbook/internal/chart"
	"github.com/cleared-dev/dbook/internal/model"
)

func newBalanceCommand(flags *rootFlags) *cobra.Command {
	var accountType string

	cmd := &cobra.Command{
		Use:   "balance [nominal]",
		Short: "Show an account's balance, or totals by account type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer p.Close()

			svc, err := p.chart(cmd.Context())
			if err != nil {
				return err
			}

			if accountType != "" {
				if len(args) > 0 {
					return errors.New("--type cannot be combined with a nominal")
				}
				at, err := model.ParseAccountType(accountType)
				if err != nil {
					return err
				}
				printTypeBalances(cmd.OutOrStdout(), svc, at)
				return nil
			}
			if len(args) == 0 {
				return printTrialBalance(cmd.OutOrStdout(), svc)
			}
			nominal, err := model.NewNominal(args[0])
			if err != nil {
				return err
			}
			return printAccountBalance(cmd.OutOrStdout(), svc, nominal)
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "", "list the own balance of every account of this type")

	return cmd
}

// printTypeBalances lists each account's own postings, not its subtree's.
func printTypeBalances(out io.Writer, svc *accounts.Service, at model.AccountType) {
	cur := svc.Currency()
	var net int64
	for _, a := range svc.ByType(at) {
		fmt.Fprintf(out, "%-6s %-30s %s\n", a.Nominal, a.Name, cur.Format(a.Balance()))
		net += a.Balance()
	}
	fmt.Fprintf(out, "Total %s %s\n", at, cur.Format(net))
}

func printAccountBalance(out io.Writer, svc *accounts.Service, n model.Nominal) error {
	node := chart.Find(svc.Root(), n)
	if node == nil {
		return fmt.Errorf("account %s not in chart", n)
	}
	acct := node.Value()
	cur := svc.Currency()
	t := chart.SubtreeTotals(node)

	fmt.Fprintf(out, "%s %s (%s)\n", acct.Nominal, acct.Name, acct.Type)
	fmt.Fprintf(out, "  DR      %s\n", cur.Format(t.Debit))
	fmt.Fprintf(out, "  CR      %s\n", cur.Format(t.Credit))
	fmt.Fprintf(out, "  Balance %s\n", cur.Format(acct.Type.Balance(t.Debit, t.Credit)))
	return nil
}

func printTrialBalance(out io.Writer, svc *accounts.Service) error {
	cur := svc.Currency()
	byType := chart.ByType(svc.Root())
	for _, at := range model.AccountTypes {
		if at == model.AccountTypeReal {
			continue
		}
		t := byType[at]
		fmt.Fprintf(out, "%-10s DR %s  CR %s  Balance %s\n",
			at, cur.Format(t.Debit), cur.Format(t.Credit), cur.Format(at.Balance(t.Debit, t.Credit)))
	}
	if chart.TrialBalanced(svc.Root()) {
		fmt.Fprintln(out, "Trial balance: balanced")
		return nil
	}
	fmt.Fprintln(out, "Trial balance: NOT balanced")
	return fmt.Errorf("trial balance does not agree")
}
