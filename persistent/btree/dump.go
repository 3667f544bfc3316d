package btree

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// dumpNode renders a node's structure as an indented tree, depth-first,
// for debugging and for the library's own invariant-failure diagnostics.
func dumpNode[K any, V any](n *Node[K, V]) string {
	tp := treeprint.New()
	if n.isEmpty() {
		tp.SetValue("(empty)")
		return tp.String()
	}
	tp.SetValue(fmt.Sprintf("%s (count=%d, depth=%d)", n.String(), n.count, n.depth))
	addChildren(tp, n)
	return tp.String()
}

func addChildren[K any, V any](tp treeprint.Tree, n *Node[K, V]) {
	if n.isLeaf() {
		return
	}
	for i, ch := range n.children {
		label := fmt.Sprintf("%s (count=%d, depth=%d)", ch.String(), ch.count, ch.depth)
		branch := tp.AddBranch(label)
		if i < len(n.keys) {
			branch.AddNode(fmt.Sprintf("-- sep: %v", n.keys[i]))
		}
		addChildren(branch, ch)
	}
}
