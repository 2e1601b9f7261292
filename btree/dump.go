package btree

import (
	"fmt"
	"strings"

	"kvlite/node"
)

// Dump renders a human-readable recursive tree dump rooted at page 0,
// in the format of the `.btree` meta-command (spec §6 / original
// db_tutorial print_tree): each leaf shows its cell count and keys;
// each internal node shows its children interleaved with separator
// keys, followed by its rightmost child.
func (t *Btree) Dump() ([]string, error) {
	return t.dump(rootPage, 0)
}

func (t *Btree) dump(page uint32, level int) ([]string, error) {
	p, err := t.pager.GetPage(page)
	if err != nil {
		return nil, err
	}
	indent := strings.Repeat("  ", level)

	if node.NodeType(p) == node.Leaf {
		n := node.LeafNumCells(p)
		lines := []string{fmt.Sprintf("%s- leaf (size %d)", indent, n)}
		childIndent := strings.Repeat("  ", level+1)
		for i := uint32(0); i < n; i++ {
			lines = append(lines, fmt.Sprintf("%s- %d", childIndent, node.LeafKey(p, i)))
		}
		return lines, nil
	}

	numKeys := node.InternalNumKeys(p)
	lines := []string{fmt.Sprintf("%s- internal (size %d)", indent, numKeys)}
	for i := uint32(0); i < numKeys; i++ {
		child := node.InternalChild(p, i)
		childLines, err := t.dump(child, level+1)
		if err != nil {
			return nil, err
		}
		lines = append(lines, childLines...)
		lines = append(lines, fmt.Sprintf("%s- key %d", indent, node.InternalKey(p, i)))
	}
	rightLines, err := t.dump(node.InternalRightChild(p), level+1)
	if err != nil {
		return nil, err
	}
	lines = append(lines, rightLines...)
	return lines, nil
}
