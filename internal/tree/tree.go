// Package tree provides a generic ordered tree with visitor-based traversal.
package tree

// Node is a tree node owning a value and an ordered list of children.
// A child belongs to exactly one parent.
type Node[T any] struct {
	value    T
	children []*Node[T]
}

// New creates a node with the given children.
func New[T any](value T, children ...*Node[T]) *Node[T] {
	return &Node[T]{value: value, children: children}
}

// Value returns the node's payload.
func (n *Node[T]) Value() T {
	return n.value
}

// Children returns the node's children in order. Callers must not modify
// the returned slice.
func (n *Node[T]) Children() []*Node[T] {
	return n.children
}

// AddChild appends child and returns the receiver.
func (n *Node[T]) AddChild(child *Node[T]) *Node[T] {
	n.children = append(n.children, child)
	return n
}

// IsLeaf reports whether the node has no children.
func (n *Node[T]) IsLeaf() bool {
	return len(n.children) == 0
}

// Visitor is a read-only operation run over a tree. Each implementation
// decides how far to recurse, typically by calling Accept on children.
type Visitor[T, R any] interface {
	Visit(n *Node[T]) R
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc[T, R any] func(n *Node[T]) R

func (f VisitorFunc[T, R]) Visit(n *Node[T]) R {
	return f(n)
}

// Accept hands n to v and returns v's result.
func Accept[T, R any](n *Node[T], v Visitor[T, R]) R {
	return v.Visit(n)
}

// Walk calls fn for every node in pre-order, left to right, with its depth
// below n. Returning false from fn skips that node's children.
func Walk[T any](n *Node[T], fn func(node *Node[T], depth int) bool) {
	walk(n, 0, fn)
}

func walk[T any](n *Node[T], depth int, fn func(*Node[T], int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		walk(c, depth+1, fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func Count[T any](n *Node[T]) int {
	count := 0
	Walk(n, func(*Node[T], int) bool {
		count++
		return true
	})
	return count
}
