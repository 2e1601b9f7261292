// Command kvsh is the line-oriented REPL for the embedded key/value
// store: it tokenizes `insert`/`select` statements and '.'-prefixed
// meta-commands, and drives the kvlite/table facade. The storage
// engine itself (kvlite/pager, kvlite/node, kvlite/btree,
// kvlite/table) has no knowledge of this REPL surface.
package main

import (
	"bufio"
	"fmt"
	"os"

	"kvlite/table"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Must supply a database filename")
		os.Exit(0)
	}

	tbl, err := table.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		printPrompt()
		input, err := readInput(reader)
		if err != nil {
			// EOF on stdin behaves like ".exit".
			doMetaCommand(".exit", tbl)
			return
		}
		if input == "" {
			continue
		}

		if input[0] == '.' {
			switch doMetaCommand(input, tbl) {
			case MetaCommandSuccess:
				continue
			case MetaCommandUnrecognizedCommand:
				fmt.Printf("Unrecognized command %s\n", input)
				continue
			}
		}

		var stmt Statement
		result, message := prepareStatement(input, &stmt)
		switch result {
		case PrepareSuccess:
			executeStatement(&stmt, tbl)
		case PrepareNegativeID, PrepareStringTooLong, PrepareSyntaxError, PrepareUnrecognizedStatement:
			fmt.Println(message)
		}
	}
}
