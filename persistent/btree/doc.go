/*
Package btree implements a shareable, copy-on-write B-tree: the storage
engine underneath the persistent/ordmap and persistent/ordlist façades.

A tree is a value: copying a Tree[K, V] is cheap and the copy shares every
node with the original until one of them is mutated. Mutation always
produces a new incarnation of the tree; the previous incarnation, and any
other tree sharing its nodes, is left untouched.

The package is organised bottom-up:

  - node.go holds the Node type and its structural invariants.
  - path.go holds the shared root-to-element navigation trail used by the
    two read-only path flavours (Iterator, Index).
  - cursor.go is the mutating path: insertion, removal, and rebalancing.
  - builder.go bulk-loads a balanced tree from an ordered stream of
    elements and/or whole subtrees.
  - tree.go is the public handle: Get/InsertOrReplace/Remove/Subtree/Iterate.
  - merger.go implements the bulk set-algebra operators.

Absence is reported with github.com/attaswift/BTree-sub001/maybe.Maybe rather than a
bare (T, bool), except at the low-level spots (Node, path, Cursor) and the
position/iterator lookups (IndexOf, IterateFrom, IndexFrom), where a plain
(..., found bool) return is clearer and cheaper; see DESIGN.md for the
rationale.
*/
package btree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'persistent.btree'.
func tracer() tracing.Trace {
	return tracing.Select("persistent.btree")
}
