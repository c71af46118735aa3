package table

import (
	"encoding/binary"

	"bptreedb/pager"
)

// This file is the pure byte-offset layer: small accessor functions over
// a page's raw 4096-byte buffer. Nothing here touches the pager or the
// tree algorithms; it only knows how to read and write fields at fixed
// offsets, little-endian.

func nodeType(pg *pager.Page) NodeType {
	return NodeType(pg.Data[NodeTypeOffset])
}

func setNodeType(pg *pager.Page, t NodeType) {
	pg.Data[NodeTypeOffset] = byte(t)
}

func isRoot(pg *pager.Page) bool {
	return pg.Data[IsRootOffset] != 0
}

func setIsRoot(pg *pager.Page, v bool) {
	if v {
		pg.Data[IsRootOffset] = 1
	} else {
		pg.Data[IsRootOffset] = 0
	}
}

// --- leaf node accessors ---

func leafNumCells(pg *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(pg.Data[LeafNodeNumCellsOffset : LeafNodeNumCellsOffset+LeafNodeNumCellsSize])
}

func setLeafNumCells(pg *pager.Page, n uint32) {
	binary.LittleEndian.PutUint32(pg.Data[LeafNodeNumCellsOffset:LeafNodeNumCellsOffset+LeafNodeNumCellsSize], n)
}

func leafCellOffset(i uint32) uint32 {
	return LeafNodeHeaderSize + i*LeafNodeCellSize
}

func leafKey(pg *pager.Page, i uint32) uint32 {
	off := leafCellOffset(i)
	return binary.LittleEndian.Uint32(pg.Data[off : off+LeafNodeKeySize])
}

func setLeafKey(pg *pager.Page, i uint32, key uint32) {
	off := leafCellOffset(i)
	binary.LittleEndian.PutUint32(pg.Data[off:off+LeafNodeKeySize], key)
}

func leafValue(pg *pager.Page, i uint32) []byte {
	off := leafCellOffset(i) + LeafNodeKeySize
	return pg.Data[off : off+LeafNodeValueSize]
}

// copyLeafCell copies the i-th cell of src into the j-th cell slot of dst.
func copyLeafCell(dst *pager.Page, j uint32, src *pager.Page, i uint32) {
	d := dst.Data[leafCellOffset(j) : leafCellOffset(j)+LeafNodeCellSize]
	s := src.Data[leafCellOffset(i) : leafCellOffset(i)+LeafNodeCellSize]
	copy(d, s)
}

func initializeLeaf(pg *pager.Page) {
	pg.Data = [pager.PageSize]byte{}
	setNodeType(pg, NodeTypeLeaf)
	setIsRoot(pg, false)
	setLeafNumCells(pg, 0)
}

// --- internal node accessors ---

func internalNumKeys(pg *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(pg.Data[InternalNodeNumKeysOffset : InternalNodeNumKeysOffset+InternalNodeNumKeysSize])
}

func setInternalNumKeys(pg *pager.Page, n uint32) {
	binary.LittleEndian.PutUint32(pg.Data[InternalNodeNumKeysOffset:InternalNodeNumKeysOffset+InternalNodeNumKeysSize], n)
}

func internalRightChild(pg *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(pg.Data[InternalNodeRightChildOffset : InternalNodeRightChildOffset+InternalNodeRightChildSize])
}

func setInternalRightChild(pg *pager.Page, child uint32) {
	binary.LittleEndian.PutUint32(pg.Data[InternalNodeRightChildOffset:InternalNodeRightChildOffset+InternalNodeRightChildSize], child)
}

func internalCellOffset(i uint32) uint32 {
	return InternalNodeHeaderSize + i*InternalNodeCellSize
}

func internalChild(pg *pager.Page, i uint32) uint32 {
	if i == internalNumKeys(pg) {
		return internalRightChild(pg)
	}
	off := internalCellOffset(i)
	return binary.LittleEndian.Uint32(pg.Data[off : off+InternalNodeChildSize])
}

func setInternalChild(pg *pager.Page, i uint32, child uint32) {
	off := internalCellOffset(i)
	binary.LittleEndian.PutUint32(pg.Data[off:off+InternalNodeChildSize], child)
}

func internalKey(pg *pager.Page, i uint32) uint32 {
	off := internalCellOffset(i) + InternalNodeChildSize
	return binary.LittleEndian.Uint32(pg.Data[off : off+InternalNodeKeySize])
}

func setInternalKey(pg *pager.Page, i uint32, key uint32) {
	off := internalCellOffset(i) + InternalNodeChildSize
	binary.LittleEndian.PutUint32(pg.Data[off:off+InternalNodeKeySize], key)
}

func initializeInternal(pg *pager.Page) {
	pg.Data = [pager.PageSize]byte{}
	setNodeType(pg, NodeTypeInternal)
	setIsRoot(pg, false)
	setInternalNumKeys(pg, 0)
}

// nodeMaxKey returns the split key propagated upward for this node: the
// key of its last cell, for both leaf and internal nodes.
func nodeMaxKey(pg *pager.Page) uint32 {
	if nodeType(pg) == NodeTypeLeaf {
		return leafKey(pg, leafNumCells(pg)-1)
	}
	return internalKey(pg, internalNumKeys(pg)-1)
}
