package node

import (
	"kvlite/pager"
)

// InitializeInternal resets p to an empty, non-root internal node.
func InitializeInternal(p *pager.Page) {
	SetNodeType(p, Internal)
	SetIsRoot(p, false)
	SetInternalNumKeys(p, 0)
}

func InternalNumKeys(p *pager.Page) uint32 {
	return le32(p.Data[internalNumKeysOffset : internalNumKeysOffset+internalNumKeysSize])
}

func SetInternalNumKeys(p *pager.Page, n uint32) {
	putLE32(p.Data[internalNumKeysOffset:internalNumKeysOffset+internalNumKeysSize], n)
	p.Dirty = true
}

func InternalRightChild(p *pager.Page) uint32 {
	return le32(p.Data[internalRightChildOffset : internalRightChildOffset+internalRightChildSize])
}

func SetInternalRightChild(p *pager.Page, child uint32) {
	putLE32(p.Data[internalRightChildOffset:internalRightChildOffset+internalRightChildSize], child)
	p.Dirty = true
}

func internalCellOffset(i uint32) int {
	return InternalHeaderSize + int(i)*internalCellSize
}

// InternalChild returns the child page at index i, returning the
// right child when i equals NumKeys.
func InternalChild(p *pager.Page, i uint32) uint32 {
	if i == InternalNumKeys(p) {
		return InternalRightChild(p)
	}
	off := internalCellOffset(i)
	return le32(p.Data[off : off+4])
}

func SetInternalChild(p *pager.Page, i uint32, child uint32) {
	off := internalCellOffset(i)
	putLE32(p.Data[off:off+4], child)
	p.Dirty = true
}

func InternalKey(p *pager.Page, i uint32) uint32 {
	off := internalCellOffset(i) + 4
	return le32(p.Data[off : off+4])
}

func SetInternalKey(p *pager.Page, i uint32, key uint32) {
	off := internalCellOffset(i) + 4
	putLE32(p.Data[off:off+4], key)
	p.Dirty = true
}

// SetInternalCell writes the (child, key) pair at cell i.
func SetInternalCell(p *pager.Page, i uint32, child, key uint32) {
	SetInternalChild(p, i, child)
	SetInternalKey(p, i, key)
}

// InternalMaxKey returns the key at index NumKeys-1. Undefined for an
// empty internal node.
func InternalMaxKey(p *pager.Page) uint32 {
	return InternalKey(p, InternalNumKeys(p)-1)
}
