// Package chart holds the chart of accounts as a tree of accounts and the
// visitors run over it.
package chart

import (
	"errors"
	"fmt"

	"github.com/cleared-dev/dbook/internal/model"
	"github.com/cleared-dev/dbook/internal/tree"
)

// Node is one account in the chart tree.
type Node = tree.Node[*model.Account]

var (
	ErrDuplicateNominal = errors.New("duplicate nominal")
	ErrUnknownParent    = errors.New("unknown parent nominal")
	ErrInvalidRoot      = errors.New("chart must have exactly one root of type real")
	ErrCycle            = errors.New("accounts not reachable from root")
)

// Build assembles a chart tree from flat account rows linked by
// ParentNominal. Children keep the order in which they appear in accounts.
// Accounts are copied; the tree owns its payloads.
func Build(accounts []model.Account) (*Node, error) {
	nodes := make(map[model.Nominal]*Node, len(accounts))
	for _, a := range accounts {
		if _, dup := nodes[a.Nominal]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNominal, a.Nominal)
		}
		acct := a
		nodes[a.Nominal] = tree.New(&acct)
	}

	var root *Node
	for _, a := range accounts {
		node := nodes[a.Nominal]
		if a.ParentNominal == "" {
			if root != nil || a.Type != model.AccountTypeReal {
				return nil, fmt.Errorf("%w: found %s (%s)", ErrInvalidRoot, a.Nominal, a.Type)
			}
			root = node
			continue
		}
		parent, ok := nodes[a.ParentNominal]
		if !ok {
			return nil, fmt.Errorf("%w: %s (parent of %s)", ErrUnknownParent, a.ParentNominal, a.Nominal)
		}
		parent.AddChild(node)
	}
	if root == nil {
		return nil, ErrInvalidRoot
	}

	if n := tree.Count(root); n != len(accounts) {
		return nil, fmt.Errorf("%w: %d of %d", ErrCycle, len(accounts)-n, len(accounts))
	}
	return root, nil
}

// Flatten returns copies of every account in pre-order with ParentNominal
// set from the tree structure.
func Flatten(root *Node) []model.Account {
	var out []model.Account
	var parents []model.Nominal
	tree.Walk(root, func(n *Node, depth int) bool {
		parents = parents[:depth]
		acct := *n.Value()
		acct.ParentNominal = ""
		if depth > 0 {
			acct.ParentNominal = parents[depth-1]
		}
		out = append(out, acct)
		parents = append(parents, acct.Nominal)
		return true
	})
	return out
}
