package chart

import (
	"github.com/cleared-dev/dbook/internal/model"
	"github.com/cleared-dev/dbook/internal/tree"
)

// NodeFinder searches a chart depth first for the account with a given
// nominal.
type NodeFinder struct {
	target model.Nominal
}

// NewNodeFinder returns a finder for nominal.
func NewNodeFinder(nominal model.Nominal) *NodeFinder {
	return &NodeFinder{target: nominal}
}

// Visit returns the first node in pre-order whose account matches the
// target, or nil if none does.
func (f *NodeFinder) Visit(n *Node) *Node {
	if acct := n.Value(); acct != nil && acct.Nominal == f.target {
		return n
	}
	for _, child := range n.Children() {
		if found := tree.Accept[*model.Account, *Node](child, f); found != nil {
			return found
		}
	}
	return nil
}

// Find returns the node for nominal under root, or nil.
func Find(root *Node, nominal model.Nominal) *Node {
	return tree.Accept[*model.Account, *Node](root, NewNodeFinder(nominal))
}
