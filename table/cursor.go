package table

// Cursor addresses one cell of the tree: either a scan position
// (produced by Start, advanced by Next) or a search result (produced
// by find, pointing at a match or an insertion point). A cursor is
// cheap, short-lived, and never outlives the statement that created it.
type Cursor struct {
	tree    *BTree
	page    uint32
	cellNum uint32

	// path is the stack of internal-node frames visited from the root
	// to reach page. Next backtracks through it to reach the next leaf
	// when the current leaf is exhausted, with no on-disk sibling
	// pointer required.
	path []frame

	endOfTable bool
}

// Valid reports whether the cursor addresses an existing cell.
func (c *Cursor) Valid() bool {
	return !c.endOfTable
}

// Value deserializes the row at the cursor's current position.
func (c *Cursor) Value() (Row, error) {
	pg, err := c.tree.pager.GetPage(c.page)
	if err != nil {
		return Row{}, err
	}
	return DeserializeRow(leafValue(pg, c.cellNum))
}

// Next advances the cursor to the next cell in key order, crossing leaf
// boundaries by backtracking up the descent path and back down to the
// next subtree's leftmost leaf.
func (c *Cursor) Next() error {
	if c.endOfTable {
		return nil
	}
	pg, err := c.tree.pager.GetPage(c.page)
	if err != nil {
		return err
	}
	c.cellNum++
	if c.cellNum < leafNumCells(pg) {
		return nil
	}

	for len(c.path) > 0 {
		top := &c.path[len(c.path)-1]
		parent, err := c.tree.pager.GetPage(top.page)
		if err != nil {
			return err
		}
		if top.index >= internalNumKeys(parent) {
			// No next child at this level; keep climbing.
			c.path = c.path[:len(c.path)-1]
			continue
		}
		top.index++
		nextChild := internalChild(parent, top.index)
		leaf, path, err := c.tree.descendLeftmost(nextChild, c.path)
		if err != nil {
			return err
		}
		leafPg, err := c.tree.pager.GetPage(leaf)
		if err != nil {
			return err
		}
		c.page = leaf
		c.cellNum = 0
		c.path = path
		c.endOfTable = leafNumCells(leafPg) == 0
		return nil
	}

	c.endOfTable = true
	return nil
}
