// Package btree implements the sorted B+tree index over a pager: point
// lookup, ordered insert with leaf splitting and root promotion, and a
// Cursor for sequential scan. The root always lives at page 0.
package btree

import (
	"github.com/pkg/errors"

	"kvlite/node"
	"kvlite/pager"
	"kvlite/record"
)

const rootPage = 0

// ErrDuplicateKey is returned by Insert when the key is already
// present in the tree.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrNonRootSplitUnimplemented is returned when a non-root leaf split
// would require updating a parent internal node — the single-level
// internal tree this engine supports does not implement that
// (spec Non-goal: no internal-node splitting).
var ErrNonRootSplitUnimplemented = errors.New("not implemented: update parent after non-root leaf split")

// Btree indexes rows by uint32 key over a page file.
type Btree struct {
	pager *pager.Pager
}

// New wraps an already-open pager. The caller is responsible for
// ensuring page 0 holds a valid root node (see table.Open).
func New(p *pager.Pager) *Btree {
	return &Btree{pager: p}
}

// InitializeEmpty marks page 0 as a fresh, empty leaf root. Call only
// when the pager has no pages yet.
func InitializeEmpty(p *pager.Pager) error {
	root, err := p.GetPage(rootPage)
	if err != nil {
		return errors.Wrap(err, "btree: initialize empty root")
	}
	node.InitializeLeaf(root)
	node.SetIsRoot(root, true)
	return nil
}

// Find descends from the root and returns a cursor positioned at the
// leaf cell where key is, or where it would be inserted.
func (t *Btree) Find(key uint32) (*Cursor, error) {
	page := uint32(rootPage)
	for {
		p, err := t.pager.GetPage(page)
		if err != nil {
			return nil, errors.Wrap(err, "btree: find")
		}
		if node.NodeType(p) == node.Leaf {
			idx := leafFindIndex(p, key)
			return &Cursor{tree: t, Page: page, Cell: idx}, nil
		}
		idx := internalFindChildIndex(p, key)
		page = node.InternalChild(p, idx)
	}
}

// Leftmost returns a cursor at the first row in key order, with
// EndOfTable set if the tree is empty.
func (t *Btree) Leftmost() (*Cursor, error) {
	c, err := t.Find(0)
	if err != nil {
		return nil, err
	}
	p, err := t.pager.GetPage(c.Page)
	if err != nil {
		return nil, errors.Wrap(err, "btree: leftmost")
	}
	c.EndOfTable = node.LeafNumCells(p) == 0
	return c, nil
}

// leafFindIndex performs the binary search of spec §4.3: the half-open
// interval [min, onePastMax) narrows to the unique index where key
// either matches exactly or would be inserted.
func leafFindIndex(p *pager.Page, key uint32) uint32 {
	min, max := uint32(0), node.LeafNumCells(p)
	for min != max {
		mid := (min + max) / 2
		k := node.LeafKey(p, mid)
		if key == k {
			return mid
		}
		if key < k {
			max = mid
		} else {
			min = mid + 1
		}
	}
	return min
}

// internalFindChildIndex returns the smallest index i with keys[i] >=
// key; equality routes left.
func internalFindChildIndex(p *pager.Page, key uint32) uint32 {
	min, max := uint32(0), node.InternalNumKeys(p)
	for min != max {
		mid := (min + max) / 2
		if node.InternalKey(p, mid) >= key {
			max = mid
		} else {
			min = mid + 1
		}
	}
	return min
}

// Insert adds key/row at the position described by cursor, splitting
// the leaf (and promoting a new root, if the leaf is the root) when
// it is full.
func (t *Btree) Insert(c *Cursor, key uint32, row record.Row) error {
	leaf, err := t.pager.GetPage(c.Page)
	if err != nil {
		return errors.Wrap(err, "btree: insert")
	}
	numCells := node.LeafNumCells(leaf)
	if c.Cell < numCells && node.LeafKey(leaf, c.Cell) == key {
		return ErrDuplicateKey
	}
	if numCells < node.LeafMaxCells {
		for i := numCells; i > c.Cell; i-- {
			node.CopyLeafCell(leaf, i, leaf, i-1)
		}
		node.SetLeafCell(leaf, c.Cell, key, row)
		node.SetLeafNumCells(leaf, numCells+1)
		return nil
	}
	return t.splitLeafAndInsert(leaf, c, key, row)
}

// splitLeafAndInsert implements the leaf-split-and-insert protocol of
// spec §4.3: the LeafMaxCells+1 cells (LeafMaxCells old plus the new
// one) are redistributed LeafLeftSplitCount/LeafRightSplitCount
// between the old leaf and a freshly allocated sibling.
func (t *Btree) splitLeafAndInsert(old *pager.Page, c *Cursor, key uint32, row record.Row) error {
	// A non-root split would require updating the parent internal
	// node, which this engine does not implement (spec Non-goal: no
	// internal-node splitting). Bail out before touching old or
	// allocating a sibling, so the tree is left byte-for-byte
	// unchanged — matching the source, which aborts at this point.
	if !node.IsRoot(old) {
		return ErrNonRootSplitUnimplemented
	}

	newPageNum := t.pager.AllocatePage()
	newLeaf, err := t.pager.GetPage(newPageNum)
	if err != nil {
		return errors.Wrap(err, "btree: split: allocate sibling")
	}
	node.InitializeLeaf(newLeaf)

	oldNextLeaf := node.LeafNextLeaf(old)

	for i := int32(node.LeafMaxCells); i >= 0; i-- {
		src := uint32(i)
		var destPage *pager.Page
		var destIdx uint32
		if src >= node.LeafLeftSplitCount {
			destPage, destIdx = newLeaf, src-node.LeafLeftSplitCount
		} else {
			destPage, destIdx = old, src
		}

		var k uint32
		var rw record.Row
		switch {
		case src == c.Cell:
			k, rw = key, row
		case src > c.Cell:
			k, rw = node.LeafKey(old, src-1), record.Deserialize(node.LeafValue(old, src-1))
		default:
			k, rw = node.LeafKey(old, src), record.Deserialize(node.LeafValue(old, src))
		}
		node.SetLeafCell(destPage, destIdx, k, rw)
	}

	node.SetLeafNumCells(old, node.LeafLeftSplitCount)
	node.SetLeafNumCells(newLeaf, node.LeafRightSplitCount)
	node.SetLeafNextLeaf(newLeaf, oldNextLeaf)
	node.SetLeafNextLeaf(old, newPageNum)

	return t.promoteRoot(newPageNum)
}

// promoteRoot implements root promotion (spec §4.3): the full root is
// copied to a new left-sibling page, and page 0 is re-initialized as
// the internal node over that left sibling and the new right sibling.
func (t *Btree) promoteRoot(rightPage uint32) error {
	leftPageNum := t.pager.AllocatePage()
	leftPage, err := t.pager.GetPage(leftPageNum)
	if err != nil {
		return errors.Wrap(err, "btree: promote: allocate left sibling")
	}
	root, err := t.pager.GetPage(rootPage)
	if err != nil {
		return errors.Wrap(err, "btree: promote: get root")
	}

	leftPage.Data = root.Data
	node.SetIsRoot(leftPage, false)

	node.InitializeInternal(root)
	node.SetIsRoot(root, true)
	node.SetInternalNumKeys(root, 1)
	node.SetInternalChild(root, 0, leftPageNum)
	node.SetInternalKey(root, 0, maxKey(leftPage))
	node.SetInternalRightChild(root, rightPage)
	return nil
}

// maxKey returns the largest key reachable under p, whichever node
// type it is.
func maxKey(p *pager.Page) uint32 {
	if node.NodeType(p) == node.Leaf {
		return node.LeafMaxKey(p)
	}
	return node.InternalMaxKey(p)
}
