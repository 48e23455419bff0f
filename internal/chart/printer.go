package chart

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cleared-dev/dbook/internal/model"
	"github.com/cleared-dev/dbook/internal/money"
	"github.com/cleared-dev/dbook/internal/tree"
)

// Printer writes the chart as an indented table. Balances shown for each
// node are totals over its subtree.
type Printer struct {
	tw     *tabwriter.Writer
	format money.Formatter
	depth  int
}

// NewPrinter returns a Printer writing to w and formatting amounts with f.
func NewPrinter(w io.Writer, f money.Formatter) *Printer {
	return &Printer{
		tw:     tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		format: f,
	}
}

// Print writes the header and every node under root.
func (p *Printer) Print(root *Node) error {
	p.depth = 0
	if _, err := fmt.Fprintln(p.tw, "Nominal\tName\tType\tDR\tCR\tBalance\t"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := tree.Accept[*model.Account, error](root, p); err != nil {
		return err
	}
	return p.tw.Flush()
}

// Visit writes one row for n and then its children, one level deeper.
func (p *Printer) Visit(n *Node) error {
	acct := n.Value()
	if acct != nil {
		t := SubtreeTotals(n)
		balance := acct.Type.Balance(t.Debit, t.Credit)
		name := strings.Repeat("  ", p.depth) + acct.Name
		if _, err := fmt.Fprintf(p.tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			acct.Nominal, name, acct.Type,
			p.format.Format(t.Debit), p.format.Format(t.Credit), p.format.Format(balance)); err != nil {
			return fmt.Errorf("writing %s: %w", acct.Nominal, err)
		}
	}

	p.depth++
	defer func() { p.depth-- }()
	for _, child := range n.Children() {
		if err := tree.Accept[*model.Account, error](child, p); err != nil {
			return err
		}
	}
	return nil
}
