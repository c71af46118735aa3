package table

import (
	"errors"
	"sort"

	"bptreedb/pager"
)

// ErrDuplicateKey is returned by Insert when the key already exists.
var ErrDuplicateKey = errors.New("Error: Duplicate key.")

// ErrTableFull is returned by Insert when a full, non-root leaf would
// need to split. Splitting a non-root leaf (and, transitively, internal
// nodes) is not implemented.
var ErrTableFull = errors.New("Error: Table full.")

// rootPageNum never changes for the lifetime of a database: it is
// always page 0. A leaf root that overflows is re-initialized in place
// as the new internal root (see createNewRoot).
const rootPageNum = 0

// BTree is the ordered key -> Row mapping backing the single table.
// It owns no state beyond a pager and the (fixed) root page number.
type BTree struct {
	pager *pager.Pager
}

// openBTree returns a BTree over p, initializing page 0 as an empty
// leaf root if the file is brand new.
func openBTree(p *pager.Pager) (*BTree, error) {
	t := &BTree{pager: p}
	if p.NumPages() == 0 {
		pg, err := p.GetPage(rootPageNum)
		if err != nil {
			return nil, err
		}
		initializeLeaf(pg)
		setIsRoot(pg, true)
	}
	return t, nil
}

// frame records one step of a root-to-leaf descent: the internal page
// visited and the index of the child taken from it. Cursor uses the
// stack of frames to backtrack to the next leaf during a scan without
// any on-disk sibling pointer.
type frame struct {
	page  uint32
	index uint32
}

// find descends to the leaf that should contain key, returning a
// Cursor at the matching cell, or at the insertion point if key is
// absent.
func (t *BTree) find(key uint32) (*Cursor, error) {
	var path []frame
	pageNum := uint32(rootPageNum)
	for {
		pg, err := t.pager.GetPage(pageNum)
		if err != nil {
			return nil, err
		}
		if nodeType(pg) == NodeTypeLeaf {
			numCells := leafNumCells(pg)
			cellNum := uint32(sort.Search(int(numCells), func(i int) bool {
				return leafKey(pg, uint32(i)) >= key
			}))
			return &Cursor{tree: t, page: pageNum, cellNum: cellNum, path: path}, nil
		}

		numKeys := internalNumKeys(pg)
		i := uint32(sort.Search(int(numKeys), func(i int) bool {
			return internalKey(pg, uint32(i)) >= key
		}))
		path = append(path, frame{page: pageNum, index: i})
		pageNum = internalChild(pg, i)
	}
}

// Insert adds key/row into the tree, splitting and promoting the root
// if the root leaf overflows. Duplicate keys are rejected.
func (t *BTree) Insert(key uint32, row Row) error {
	cur, err := t.find(key)
	if err != nil {
		return err
	}
	pg, err := t.pager.GetPage(cur.page)
	if err != nil {
		return err
	}
	if cur.cellNum < leafNumCells(pg) && leafKey(pg, cur.cellNum) == key {
		return ErrDuplicateKey
	}
	return t.leafInsert(cur, key, row)
}

// leafInsert writes (key, row) into the leaf cur points at, shifting
// later cells right, or splits the leaf (root promotion only) if it is
// already full.
func (t *BTree) leafInsert(cur *Cursor, key uint32, row Row) error {
	pg, err := t.pager.GetPage(cur.page)
	if err != nil {
		return err
	}
	numCells := leafNumCells(pg)

	if numCells < LeafNodeMaxCells {
		for i := numCells; i > cur.cellNum; i-- {
			copyLeafCell(pg, i, pg, i-1)
		}
		setLeafKey(pg, cur.cellNum, key)
		if err := SerializeRow(row, leafValue(pg, cur.cellNum)); err != nil {
			return err
		}
		setLeafNumCells(pg, numCells+1)
		return nil
	}

	return t.leafSplitAndInsert(cur, key, row)
}

// leafSplitAndInsert handles an insert into a full leaf. Root promotion
// (the only split case implemented) allocates a right sibling, splits
// the 14 conceptual cells 7/7 between the old page and the sibling,
// then promotes a fresh internal root above them. A full non-root leaf
// cannot be split and reports ErrTableFull instead.
func (t *BTree) leafSplitAndInsert(cur *Cursor, key uint32, row Row) error {
	oldPg, err := t.pager.GetPage(cur.page)
	if err != nil {
		return err
	}
	if !isRoot(oldPg) {
		return ErrTableFull
	}

	// Snapshot the old leaf's 13 cells plus the new one, 14 total, in
	// key order, without mutating oldPg yet.
	type cell struct {
		key   uint32
		value [RowSize]byte
	}
	cells := make([]cell, 0, LeafNodeMaxCells+1)
	for i := uint32(0); i < LeafNodeMaxCells; i++ {
		if i == cur.cellNum {
			var c cell
			c.key = key
			if err := SerializeRow(row, c.value[:]); err != nil {
				return err
			}
			cells = append(cells, c)
		}
		var c cell
		c.key = leafKey(oldPg, i)
		copy(c.value[:], leafValue(oldPg, i))
		cells = append(cells, c)
	}
	if cur.cellNum == LeafNodeMaxCells {
		var c cell
		c.key = key
		if err := SerializeRow(row, c.value[:]); err != nil {
			return err
		}
		cells = append(cells, c)
	}

	rightPageNum := t.pager.AllocatePage()
	rightPg, err := t.pager.GetPage(rightPageNum)
	if err != nil {
		return err
	}
	initializeLeaf(rightPg)
	for i := uint32(0); i < LeafNodeRightSplitCount; i++ {
		c := cells[LeafNodeLeftSplitCount+i]
		setLeafKey(rightPg, i, c.key)
		copy(leafValue(rightPg, i), c.value[:])
	}
	setLeafNumCells(rightPg, LeafNodeRightSplitCount)

	initializeLeaf(oldPg)
	for i := uint32(0); i < LeafNodeLeftSplitCount; i++ {
		c := cells[i]
		setLeafKey(oldPg, i, c.key)
		copy(leafValue(oldPg, i), c.value[:])
	}
	setLeafNumCells(oldPg, LeafNodeLeftSplitCount)

	// The isRoot check above guarantees we only ever reach this point
	// when splitting the root leaf.
	return t.createNewRoot(rightPageNum)
}

// createNewRoot re-homes the current root leaf's contents onto a fresh
// left page, then re-initializes the root page itself (still page 0)
// as an internal node pointing at the left page and rightPage.
func (t *BTree) createNewRoot(rightPage uint32) error {
	root, err := t.pager.GetPage(rootPageNum)
	if err != nil {
		return err
	}
	leftPageNum := t.pager.AllocatePage()
	leftPg, err := t.pager.GetPage(leftPageNum)
	if err != nil {
		return err
	}
	leftPg.Data = root.Data
	setIsRoot(leftPg, false)

	initializeInternal(root)
	setIsRoot(root, true)
	setInternalNumKeys(root, 1)
	setInternalChild(root, 0, leftPageNum)
	setInternalKey(root, 0, nodeMaxKey(leftPg))
	setInternalRightChild(root, rightPage)
	return nil
}

// descendLeftmost walks from pageNum to its leftmost leaf, recording
// the path taken, and returns the leaf's page number.
func (t *BTree) descendLeftmost(pageNum uint32, path []frame) (uint32, []frame, error) {
	for {
		pg, err := t.pager.GetPage(pageNum)
		if err != nil {
			return 0, nil, err
		}
		if nodeType(pg) == NodeTypeLeaf {
			return pageNum, path, nil
		}
		path = append(path, frame{page: pageNum, index: 0})
		pageNum = internalChild(pg, 0)
	}
}

// Start returns a cursor positioned at the first cell of the leftmost
// leaf (i.e. the lowest key in the tree).
func (t *BTree) Start() (*Cursor, error) {
	leaf, path, err := t.descendLeftmost(rootPageNum, nil)
	if err != nil {
		return nil, err
	}
	pg, err := t.pager.GetPage(leaf)
	if err != nil {
		return nil, err
	}
	return &Cursor{
		tree:       t,
		page:       leaf,
		cellNum:    0,
		path:       path,
		endOfTable: leafNumCells(pg) == 0,
	}, nil
}
