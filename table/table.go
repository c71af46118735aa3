// Package table implements the persistent B+tree storage engine on top
// of package pager's page cache: the leaf/internal node byte layout, the
// tree's search/insert/split algorithms, the cursor abstraction, and
// the Table façade that ties them to the fixed (id, username, email)
// row schema.
package table

import (
	"fmt"
	"strings"

	"bptreedb/pager"
)

// Table owns the pager and the B+tree built on top of it, and is the
// only entry point statement execution should need.
type Table struct {
	pager *pager.Pager
	tree  *BTree
}

// Open opens (or creates) the database file at path.
func Open(path string) (*Table, error) {
	p, err := pager.Open(path)
	if err != nil {
		return nil, err
	}
	return openWithPager(p)
}

// openWithPager builds a Table over an already-open pager.
func openWithPager(p *pager.Pager) (*Table, error) {
	tree, err := openBTree(p)
	if err != nil {
		return nil, err
	}
	return &Table{pager: p, tree: tree}, nil
}

// Close flushes every cached page and closes the underlying file.
func (t *Table) Close() error {
	return t.pager.Close()
}

// Insert adds row under its ID, rejecting duplicates.
func (t *Table) Insert(row Row) error {
	return t.tree.Insert(row.ID, row)
}

// SelectAll returns every row in ascending key order.
func (t *Table) SelectAll() ([]Row, error) {
	cur, err := t.tree.Start()
	if err != nil {
		return nil, err
	}
	var rows []Row
	for cur.Valid() {
		row, err := cur.Value()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
		if err := cur.Next(); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// PrintTree renders the tree structure for the `.btree` meta-command.
func (t *Table) PrintTree() (string, error) {
	var b strings.Builder
	if err := t.printNode(&b, rootPageNum, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (t *Table) printNode(b *strings.Builder, pageNum uint32, indent int) error {
	pg, err := t.pager.GetPage(pageNum)
	if err != nil {
		return err
	}
	pad := strings.Repeat("  ", indent)

	if nodeType(pg) == NodeTypeLeaf {
		n := leafNumCells(pg)
		fmt.Fprintf(b, "%sleaf (size %d)\n", pad, n)
		for i := uint32(0); i < n; i++ {
			fmt.Fprintf(b, "%s  - %d : %d\n", pad, i, leafKey(pg, i))
		}
		return nil
	}

	n := internalNumKeys(pg)
	fmt.Fprintf(b, "%s- internal (size %d)\n", pad, n)
	for i := uint32(0); i < n; i++ {
		if err := t.printNode(b, internalChild(pg, i), indent+1); err != nil {
			return err
		}
		fmt.Fprintf(b, "%s  - key %d\n", pad, internalKey(pg, i))
	}
	return t.printNode(b, internalRightChild(pg), indent+1)
}

// PrintConstants renders the `.constants` meta-command output.
func PrintConstants() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ROW_SIZE: %d\n", RowSize)
	fmt.Fprintf(&b, "COMMON_NODE_HEADER_SIZE: %d\n", CommonNodeHeaderSize)
	fmt.Fprintf(&b, "LEAF_NODE_HEADER_SIZE: %d\n", LeafNodeHeaderSize)
	fmt.Fprintf(&b, "LEAF_NODE_CELL_SIZE: %d\n", LeafNodeCellSize)
	fmt.Fprintf(&b, "LEAF_NODE_SPACE_FOR_CELLS: %d\n", LeafNodeSpaceForCells)
	fmt.Fprintf(&b, "LEAF_NODE_MAX_CELLS: %d\n", LeafNodeMaxCells)
	return b.String()
}
