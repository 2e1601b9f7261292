// Package node interprets a raw 4096-byte page as either a B+tree
// leaf or internal node, providing typed accessors over the fixed
// binary layout. It performs no bounds checking beyond a node's own
// declared num_cells/num_keys; callers are expected to respect those.
package node

import (
	"encoding/binary"

	"kvlite/pager"
	"kvlite/record"
)

// Type identifies whether a page holds a leaf or an internal node.
type Type uint8

const (
	Internal Type = 0
	Leaf     Type = 1
)

// Common header layout, shared by both node kinds.
const (
	nodeTypeOffset   = 0
	nodeTypeSize     = 1
	isRootOffset     = nodeTypeOffset + nodeTypeSize
	isRootSize       = 1
	parentOffset     = isRootOffset + isRootSize // reserved, unused
	parentSize       = 4
	commonHeaderSize = nodeTypeSize + isRootSize + parentSize // 6
)

// Leaf node layout.
const (
	leafNumCellsOffset = commonHeaderSize
	leafNumCellsSize   = 4
	leafNextLeafOffset = leafNumCellsOffset + leafNumCellsSize
	leafNextLeafSize   = 4
	LeafHeaderSize     = leafNextLeafOffset + leafNextLeafSize // 14

	leafKeySize   = 4
	LeafCellSize  = leafKeySize + record.Size
	leafSpaceForCells = pager.PageSize - LeafHeaderSize

	// LeafMaxCells is the maximum number of (key, row) cells a leaf
	// page can hold.
	LeafMaxCells = leafSpaceForCells / LeafCellSize

	// LeafRightSplitCount and LeafLeftSplitCount are the cell counts
	// assigned to the right and left leaf after a split.
	LeafRightSplitCount = (LeafMaxCells + 1) / 2
	LeafLeftSplitCount  = (LeafMaxCells + 1) - LeafRightSplitCount
)

// Internal node layout.
const (
	internalNumKeysOffset    = commonHeaderSize
	internalNumKeysSize      = 4
	internalRightChildOffset = internalNumKeysOffset + internalNumKeysSize
	internalRightChildSize   = 4
	InternalHeaderSize       = internalRightChildOffset + internalRightChildSize // 14

	internalCellSize = 8 // child uint32 + key uint32
)

// Constants is the set of layout numbers printed by the REPL's
// `.constants` meta-command.
type Constants struct {
	RowSize                uint32
	CommonNodeHeaderSize   uint32
	LeafNodeHeaderSize     uint32
	LeafNodeCellSize       uint32
	LeafNodeSpaceForCells  uint32
	LeafNodeMaxCells       uint32
}

// Layout returns the fixed layout constants.
func Layout() Constants {
	return Constants{
		RowSize:               record.Size,
		CommonNodeHeaderSize:  commonHeaderSize,
		LeafNodeHeaderSize:    LeafHeaderSize,
		LeafNodeCellSize:      LeafCellSize,
		LeafNodeSpaceForCells: leafSpaceForCells,
		LeafNodeMaxCells:      LeafMaxCells,
	}
}

// NodeType reads the single node-type byte (REDESIGN FLAG #5: read
// exactly one byte, not a 4-byte word at the 1-byte offset).
func NodeType(p *pager.Page) Type {
	return Type(p.Data[nodeTypeOffset])
}

func SetNodeType(p *pager.Page, t Type) {
	p.Data[nodeTypeOffset] = byte(t)
	p.Dirty = true
}

func IsRoot(p *pager.Page) bool {
	return p.Data[isRootOffset] != 0
}

func SetIsRoot(p *pager.Page, isRoot bool) {
	if isRoot {
		p.Data[isRootOffset] = 1
	} else {
		p.Data[isRootOffset] = 0
	}
	p.Dirty = true
}

func le32(b []byte) uint32           { return binary.LittleEndian.Uint32(b) }
func putLE32(b []byte, v uint32)     { binary.LittleEndian.PutUint32(b, v) }
