// Package table is the facade the REPL drives: it opens/closes the
// database file, owns the pager, and exposes Insert/Select over the
// B+tree index.
package table

import (
	"github.com/pkg/errors"

	"kvlite/btree"
	"kvlite/node"
	"kvlite/pager"
	"kvlite/record"
)

// Table owns the pager and B+tree for one open database file.
type Table struct {
	pager *pager.Pager
	tree  *btree.Btree
}

// Open opens path, creating it if necessary, and initializes a fresh
// empty root leaf when the file is new.
func Open(path string) (*Table, error) {
	p, err := pager.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "table: open")
	}
	if p.NumPages == 0 {
		if err := btree.InitializeEmpty(p); err != nil {
			return nil, errors.Wrap(err, "table: initialize empty")
		}
	}
	return &Table{pager: p, tree: btree.New(p)}, nil
}

// Close flushes every cached page and closes the file.
func (t *Table) Close() error {
	return t.pager.Close()
}

// Insert adds a new row keyed by id. It returns btree.ErrDuplicateKey
// if id is already present; the table is left unchanged in that case.
func (t *Table) Insert(id uint32, username, email string) error {
	row, err := record.New(id, username, email)
	if err != nil {
		return err
	}
	cursor, err := t.tree.Find(id)
	if err != nil {
		return errors.Wrap(err, "table: insert")
	}
	return t.tree.Insert(cursor, id, row)
}

// Select returns every row in ascending id order.
func (t *Table) Select() ([]record.Row, error) {
	cursor, err := t.tree.Leftmost()
	if err != nil {
		return nil, errors.Wrap(err, "table: select")
	}
	var rows []record.Row
	for !cursor.EndOfTable {
		row, err := cursor.ReadRow()
		if err != nil {
			return nil, errors.Wrap(err, "table: select")
		}
		rows = append(rows, row)
		if err := cursor.Advance(); err != nil {
			return nil, errors.Wrap(err, "table: select")
		}
	}
	return rows, nil
}

// Dump renders the `.btree` meta-command's recursive tree dump.
func (t *Table) Dump() ([]string, error) {
	return t.tree.Dump()
}

// Constants reports the `.constants` meta-command's layout numbers.
func (t *Table) Constants() node.Constants {
	return node.Layout()
}
