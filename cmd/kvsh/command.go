package main

import (
	"fmt"
	"os"

	"kvlite/node"
	"kvlite/table"
)

// MetaCommandResult is the outcome of handling a line starting with
// '.'.
type MetaCommandResult int

const (
	MetaCommandSuccess MetaCommandResult = iota
	MetaCommandUnrecognizedCommand
)

// doMetaCommand dispatches a '.'-prefixed line. ".exit" flushes the
// table and terminates the process; it never returns.
func doMetaCommand(input string, tbl *table.Table) MetaCommandResult {
	switch input {
	case ".exit":
		fmt.Println("Bye~")
		if err := tbl.Close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	case ".constants":
		fmt.Println("Constants:")
		printConstants(tbl.Constants())
	case ".btree":
		fmt.Println("Tree:")
		lines, err := tbl.Dump()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	default:
		return MetaCommandUnrecognizedCommand
	}
	return MetaCommandSuccess
}

func printConstants(c node.Constants) {
	fmt.Printf("ROW_SIZE: %d\n", c.RowSize)
	fmt.Printf("COMMON_NODE_HEADER_SIZE: %d\n", c.CommonNodeHeaderSize)
	fmt.Printf("LEAF_NODE_HEADER_SIZE: %d\n", c.LeafNodeHeaderSize)
	fmt.Printf("LEAF_NODE_CELL_SIZE: %d\n", c.LeafNodeCellSize)
	fmt.Printf("LEAF_NODE_SPACE_FOR_CELLS: %d\n", c.LeafNodeSpaceForCells)
	fmt.Printf("LEAF_NODE_MAX_CELLS: %d\n", c.LeafNodeMaxCells)
}
