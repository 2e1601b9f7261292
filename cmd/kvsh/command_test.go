package main

import (
	"os"
	"testing"

	"kvlite/table"
)

func openTestTable(t *testing.T) *table.Table {
	t.Helper()
	tmp, err := os.CreateTemp("", "kvsh_test_*.db")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	path := tmp.Name()
	tmp.Close()
	t.Cleanup(func() { os.Remove(path) })

	tbl, err := table.Open(path)
	if err != nil {
		t.Fatalf("table.Open: %v", err)
	}
	t.Cleanup(func() { tbl.Close() })
	return tbl
}

func TestDoMetaCommandUnrecognized(t *testing.T) {
	tbl := openTestTable(t)
	if got := doMetaCommand(".nonsense", tbl); got != MetaCommandUnrecognizedCommand {
		t.Errorf("doMetaCommand = %v, want MetaCommandUnrecognizedCommand", got)
	}
}

func TestDoMetaCommandConstants(t *testing.T) {
	tbl := openTestTable(t)
	if got := doMetaCommand(".constants", tbl); got != MetaCommandSuccess {
		t.Errorf("doMetaCommand = %v, want MetaCommandSuccess", got)
	}
}

func TestDoMetaCommandBtree(t *testing.T) {
	tbl := openTestTable(t)
	if got := doMetaCommand(".btree", tbl); got != MetaCommandSuccess {
		t.Errorf("doMetaCommand = %v, want MetaCommandSuccess", got)
	}
}
