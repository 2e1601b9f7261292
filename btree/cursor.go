package btree

import (
	"github.com/pkg/errors"

	"kvlite/node"
	"kvlite/record"
)

// Cursor is a logical position (page, cell) inside the tree. It must
// not outlive the single Insert that produced it.
type Cursor struct {
	tree       *Btree
	Page       uint32
	Cell       uint32
	EndOfTable bool
}

// ReadRow reads the row at the cursor's current cell.
func (c *Cursor) ReadRow() (record.Row, error) {
	p, err := c.tree.pager.GetPage(c.Page)
	if err != nil {
		return record.Row{}, errors.Wrap(err, "cursor: read row")
	}
	return record.Deserialize(node.LeafValue(p, c.Cell)), nil
}

// Advance moves the cursor to the next cell in key order, following
// the leaf's sibling link when it runs off the end of the current
// page, and setting EndOfTable once the chain is exhausted.
func (c *Cursor) Advance() error {
	p, err := c.tree.pager.GetPage(c.Page)
	if err != nil {
		return errors.Wrap(err, "cursor: advance")
	}
	c.Cell++
	if c.Cell < node.LeafNumCells(p) {
		return nil
	}
	next := node.LeafNextLeaf(p)
	if next == 0 {
		c.EndOfTable = true
		return nil
	}
	c.Page = next
	c.Cell = 0
	return nil
}
