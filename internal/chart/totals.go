package chart

import (
	"github.com/cleared-dev/dbook/internal/model"
	"github.com/cleared-dev/dbook/internal/tree"
)

// Totals is the aggregate of debit and credit balances over a subtree.
type Totals struct {
	Debit  int64
	Credit int64
}

// Net returns Debit - Credit.
func (t Totals) Net() int64 {
	return t.Debit - t.Credit
}

// TotalsVisitor sums balances over every node of a subtree.
type TotalsVisitor struct{}

func (v TotalsVisitor) Visit(n *Node) Totals {
	var t Totals
	if acct := n.Value(); acct != nil {
		t.Debit, t.Credit = acct.Debit, acct.Credit
	}
	for _, child := range n.Children() {
		ct := tree.Accept[*model.Account, Totals](child, v)
		t.Debit += ct.Debit
		t.Credit += ct.Credit
	}
	return t
}

// SubtreeTotals returns the aggregate balances of n and all its descendants.
func SubtreeTotals(n *Node) Totals {
	return tree.Accept[*model.Account, Totals](n, TotalsVisitor{})
}

// TrialBalanced reports whether total debits equal total credits across the
// whole chart.
func TrialBalanced(root *Node) bool {
	return SubtreeTotals(root).Net() == 0
}

// ByType sums balances of all accounts of each type.
func ByType(root *Node) map[model.AccountType]Totals {
	out := make(map[model.AccountType]Totals)
	tree.Walk(root, func(n *Node, _ int) bool {
		acct := n.Value()
		if acct == nil {
			return true
		}
		t := out[acct.Type]
		t.Debit += acct.Debit
		t.Credit += acct.Credit
		out[acct.Type] = t
		return true
	})
	return out
}
