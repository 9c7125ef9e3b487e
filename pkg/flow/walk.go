package flow

import "errors"

// SkipChildren can be returned by a WalkFunc to skip a node's subtree.
// Identifiers passed to later nodes still account for the skipped ones.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node with the flow id it compiles to (when
// the walk starts at FirstFlowID) and its depth below the starting node.
type WalkFunc func(n Node, id, depth int) error

// Walk visits the tree in the same pre-order used for identifier assignment.
func Walk(root Node, fn WalkFunc) error {
	_, err := walk(root, FirstFlowID, 0, fn)
	return err
}

func walk(n Node, id, depth int, fn WalkFunc) (int, error) {
	err := fn(n, id, depth)
	skip := errors.Is(err, SkipChildren)
	if err != nil && !skip {
		return 0, err
	}
	last := id
	for _, child := range n.Children() {
		if skip {
			last += Count(child)
			continue
		}
		end, err := walk(child, last+1, depth+1, fn)
		if err != nil {
			return 0, err
		}
		last = end
	}
	return last, nil
}

// Count returns the number of nodes in the subtree, n included.
func Count(n Node) int {
	total := 1
	for _, child := range n.Children() {
		total += Count(child)
	}
	return total
}
