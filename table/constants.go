package table

import "bptreedb/pager"

// Row layout: id, username, email packed in that order.
const (
	IDSize   = 4
	IDOffset = 0

	UsernameMaxChars = 32
	UsernameSize     = UsernameMaxChars + 1 // +1 for the NUL terminator
	UsernameOffset   = IDOffset + IDSize

	EmailMaxChars = 255
	EmailSize     = EmailMaxChars + 1 // +1 for the NUL terminator
	EmailOffset   = UsernameOffset + UsernameSize

	RowSize = IDOffset + IDSize + UsernameSize + EmailSize // 293
)

// Common node header: node_type(1) + is_root(1) + parent_page_num(4).
const (
	NodeTypeSize        = 1
	NodeTypeOffset      = 0
	IsRootSize          = 1
	IsRootOffset        = NodeTypeOffset + NodeTypeSize
	ParentPointerSize   = 4
	ParentPointerOffset = IsRootOffset + IsRootSize

	CommonNodeHeaderSize = NodeTypeSize + IsRootSize + ParentPointerSize // 6
)

// Leaf node header: common header + num_cells(4).
const (
	LeafNodeNumCellsSize   = 4
	LeafNodeNumCellsOffset = CommonNodeHeaderSize

	LeafNodeHeaderSize = CommonNodeHeaderSize + LeafNodeNumCellsSize // 10
)

// Leaf node body: packed (key, row) cells.
const (
	LeafNodeKeySize     = 4
	LeafNodeKeyOffset   = 0
	LeafNodeValueSize   = RowSize
	LeafNodeValueOffset = LeafNodeKeyOffset + LeafNodeKeySize

	LeafNodeCellSize = LeafNodeKeySize + LeafNodeValueSize // 297

	LeafNodeSpaceForCells = pager.PageSize - LeafNodeHeaderSize // 4086
	LeafNodeMaxCells      = LeafNodeSpaceForCells / LeafNodeCellSize // 13

	// A full leaf plus the cell being inserted splits into two leaves of
	// these sizes: RIGHT = ceil((MAX+1)/2), LEFT = (MAX+1) - RIGHT.
	LeafNodeRightSplitCount = (LeafNodeMaxCells + 1 + 1) / 2
	LeafNodeLeftSplitCount  = (LeafNodeMaxCells + 1) - LeafNodeRightSplitCount
)

// Internal node header: common header + num_keys(4) + right_child(4).
const (
	InternalNodeNumKeysSize      = 4
	InternalNodeNumKeysOffset    = CommonNodeHeaderSize
	InternalNodeRightChildSize   = 4
	InternalNodeRightChildOffset = InternalNodeNumKeysOffset + InternalNodeNumKeysSize

	InternalNodeHeaderSize = CommonNodeHeaderSize + InternalNodeNumKeysSize + InternalNodeRightChildSize // 14
)

// Internal node body: packed (child_page_num, key) cells.
const (
	InternalNodeChildSize = 4
	InternalNodeKeySize   = 4
	InternalNodeCellSize  = InternalNodeChildSize + InternalNodeKeySize // 8
)

// NodeType discriminates a page's on-disk layout.
type NodeType byte

const (
	NodeTypeInternal NodeType = 0
	NodeTypeLeaf     NodeType = 1
)
