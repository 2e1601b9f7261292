package node

import (
	"kvlite/pager"
	"kvlite/record"
)

// InitializeLeaf resets p to an empty, non-root leaf node.
func InitializeLeaf(p *pager.Page) {
	SetNodeType(p, Leaf)
	SetIsRoot(p, false)
	SetLeafNumCells(p, 0)
	SetLeafNextLeaf(p, 0)
}

func LeafNumCells(p *pager.Page) uint32 {
	return le32(p.Data[leafNumCellsOffset : leafNumCellsOffset+leafNumCellsSize])
}

func SetLeafNumCells(p *pager.Page, n uint32) {
	putLE32(p.Data[leafNumCellsOffset:leafNumCellsOffset+leafNumCellsSize], n)
	p.Dirty = true
}

// LeafNextLeaf returns the page index of the next leaf in key order,
// or 0 if this is the last leaf.
func LeafNextLeaf(p *pager.Page) uint32 {
	return le32(p.Data[leafNextLeafOffset : leafNextLeafOffset+leafNextLeafSize])
}

func SetLeafNextLeaf(p *pager.Page, next uint32) {
	putLE32(p.Data[leafNextLeafOffset:leafNextLeafOffset+leafNextLeafSize], next)
	p.Dirty = true
}

func leafCellOffset(i uint32) int {
	return LeafHeaderSize + int(i)*LeafCellSize
}

// LeafKey returns the key stored in cell i.
func LeafKey(p *pager.Page, i uint32) uint32 {
	off := leafCellOffset(i)
	return le32(p.Data[off : off+leafKeySize])
}

func setLeafKey(p *pager.Page, i uint32, key uint32) {
	off := leafCellOffset(i)
	putLE32(p.Data[off:off+leafKeySize], key)
}

// LeafValue returns the raw row bytes stored in cell i.
func LeafValue(p *pager.Page, i uint32) []byte {
	off := leafCellOffset(i) + leafKeySize
	return p.Data[off : off+record.Size]
}

// SetLeafCell writes the (key, row) pair at cell i.
func SetLeafCell(p *pager.Page, i uint32, key uint32, row record.Row) {
	setLeafKey(p, i, key)
	record.Serialize(row, LeafValue(p, i))
	p.Dirty = true
}

// CopyLeafCell copies cell src of page srcPage into cell dst of page
// dstPage, used during leaf split.
func CopyLeafCell(dstPage *pager.Page, dst uint32, srcPage *pager.Page, src uint32) {
	dstOff := leafCellOffset(dst)
	srcOff := leafCellOffset(src)
	copy(dstPage.Data[dstOff:dstOff+LeafCellSize], srcPage.Data[srcOff:srcOff+LeafCellSize])
	dstPage.Dirty = true
}

// LeafMaxKey returns the key of the last cell. Undefined for an empty
// leaf.
func LeafMaxKey(p *pager.Page) uint32 {
	return LeafKey(p, LeafNumCells(p)-1)
}
