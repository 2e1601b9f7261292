package btree

import (
	"errors"
	"os"
	"testing"

	"kvlite/node"
	"kvlite/pager"
	"kvlite/record"
)

func newEmptyTree(t *testing.T) (*Btree, *pager.Pager) {
	t.Helper()
	tmp, err := os.CreateTemp("", "btree_test_*.db")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	path := tmp.Name()
	tmp.Close()
	t.Cleanup(func() { os.Remove(path) })

	p, err := pager.Open(path)
	if err != nil {
		t.Fatalf("pager.Open: %v", err)
	}
	t.Cleanup(func() { p.Close() })

	if err := InitializeEmpty(p); err != nil {
		t.Fatalf("InitializeEmpty: %v", err)
	}
	return New(p), p
}

func insertRow(t *testing.T, tree *Btree, id uint32, username, email string) {
	t.Helper()
	row, err := record.New(id, username, email)
	if err != nil {
		t.Fatalf("record.New(%d): %v", id, err)
	}
	c, err := tree.Find(id)
	if err != nil {
		t.Fatalf("Find(%d): %v", id, err)
	}
	if err := tree.Insert(c, id, row); err != nil {
		t.Fatalf("Insert(%d): %v", id, err)
	}
}

func selectAll(t *testing.T, tree *Btree) []record.Row {
	t.Helper()
	c, err := tree.Leftmost()
	if err != nil {
		t.Fatalf("Leftmost: %v", err)
	}
	var rows []record.Row
	for !c.EndOfTable {
		row, err := c.ReadRow()
		if err != nil {
			t.Fatalf("ReadRow: %v", err)
		}
		rows = append(rows, row)
		if err := c.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	return rows
}

func TestEmptyTreeSelectsNothing(t *testing.T) {
	tree, _ := newEmptyTree(t)
	rows := selectAll(t, tree)
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
}

func TestInsertAndSelectInAscendingOrder(t *testing.T) {
	tree, _ := newEmptyTree(t)
	ids := []uint32{5, 1, 9, 3, 7}
	for _, id := range ids {
		insertRow(t, tree, id, "user", "user@example.com")
	}

	rows := selectAll(t, tree)
	if len(rows) != len(ids) {
		t.Fatalf("len(rows) = %d, want %d", len(rows), len(ids))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].ID >= rows[i].ID {
			t.Errorf("rows not in ascending order at %d: %d >= %d", i, rows[i-1].ID, rows[i].ID)
		}
	}
}

func TestDuplicateKeyRejected(t *testing.T) {
	tree, _ := newEmptyTree(t)
	insertRow(t, tree, 1, "alice", "alice@example.com")

	row, err := record.New(1, "bob", "bob@example.com")
	if err != nil {
		t.Fatalf("record.New: %v", err)
	}
	c, err := tree.Find(1)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if err := tree.Insert(c, 1, row); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("Insert duplicate: got %v, want ErrDuplicateKey", err)
	}

	rows := selectAll(t, tree)
	if len(rows) != 1 || rows[0].Username != "alice" {
		t.Errorf("table changed after rejected duplicate insert: %+v", rows)
	}
}

func TestLeafSplitPromotesRoot(t *testing.T) {
	tree, pgr := newEmptyTree(t)

	// One past LeafMaxCells forces a split of the (root) leaf.
	for i := uint32(0); i < 14; i++ {
		insertRow(t, tree, i, "user", "user@example.com")
	}

	root, err := pgr.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage(0): %v", err)
	}
	if node.NodeType(root) != node.Internal {
		t.Fatalf("root after split: NodeType = %v, want Internal", node.NodeType(root))
	}

	rows := selectAll(t, tree)
	if len(rows) != 14 {
		t.Fatalf("len(rows) = %d, want 14", len(rows))
	}
	for i, row := range rows {
		if row.ID != uint32(i) {
			t.Errorf("rows[%d].ID = %d, want %d", i, row.ID, i)
		}
	}
}

func TestNonRootSplitAbortsWithoutMutation(t *testing.T) {
	tree, pgr := newEmptyTree(t)

	// Force a root split first, so further inserts land on a non-root
	// leaf. 14 rows (one past LeafMaxCells) promotes the root.
	for i := uint32(0); i < 14; i++ {
		insertRow(t, tree, i*2, "user", "user@example.com")
	}

	numPagesBefore := pgr.NumPages
	rowsBefore := selectAll(t, tree)

	// Filling the right leaf past LeafMaxCells would require a
	// non-root split; the source aborts here rather than silently
	// leaving the parent internal node stale.
	var lastErr error
	inserted := 0
	next := uint32(1000)
	for i := 0; i < int(node.LeafMaxCells)+2; i++ {
		_, err := insertAllowError(tree, next+uint32(i))
		if err != nil {
			lastErr = err
			break
		}
		inserted++
	}
	if lastErr == nil {
		t.Fatalf("expected a non-root split to eventually abort with ErrNonRootSplitUnimplemented")
	}
	if lastErr != ErrNonRootSplitUnimplemented {
		t.Fatalf("got error %v, want ErrNonRootSplitUnimplemented", lastErr)
	}

	if pgr.NumPages != numPagesBefore {
		t.Errorf("NumPages changed from %d to %d after aborted split: sibling was allocated despite the abort", numPagesBefore, pgr.NumPages)
	}

	rowsAfter := selectAll(t, tree)
	// The inserts before the abort still fit in the right leaf and are
	// kept; only the aborted one must leave no row behind.
	if len(rowsAfter) != len(rowsBefore)+inserted {
		t.Errorf("row count = %d after aborted split, want %d (%d before plus %d successful inserts)", len(rowsAfter), len(rowsBefore)+inserted, len(rowsBefore), inserted)
	}
}

func insertAllowError(tree *Btree, id uint32) (bool, error) {
	row, err := record.New(id, "user", "user@example.com")
	if err != nil {
		return false, err
	}
	c, err := tree.Find(id)
	if err != nil {
		return false, err
	}
	if err := tree.Insert(c, id, row); err != nil {
		return false, err
	}
	return true, nil
}

func TestCloseReopenPreservesData(t *testing.T) {
	tmp, err := os.CreateTemp("", "btree_test_reopen_*.db")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	p, err := pager.Open(path)
	if err != nil {
		t.Fatalf("pager.Open: %v", err)
	}
	if err := InitializeEmpty(p); err != nil {
		t.Fatalf("InitializeEmpty: %v", err)
	}
	tree := New(p)
	insertRow(t, tree, 1, "alice", "alice@example.com")
	insertRow(t, tree, 2, "bob", "bob@example.com")
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	p2, err := pager.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer p2.Close()
	tree2 := New(p2)

	rows := selectAll(t, tree2)
	if len(rows) != 2 || rows[0].Username != "alice" || rows[1].Username != "bob" {
		t.Errorf("rows after reopen = %+v", rows)
	}
}
