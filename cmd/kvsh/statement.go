package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"kvlite/btree"
	"kvlite/record"
	"kvlite/table"
)

// StatementType distinguishes the two recognized statements.
type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

// Statement is the parsed result of one input line.
type Statement struct {
	Type        StatementType
	RowToInsert record.Row
}

// PrepareResult is the outcome of parsing one input line into a
// Statement.
type PrepareResult int

const (
	PrepareSuccess PrepareResult = iota
	PrepareNegativeID
	PrepareStringTooLong
	PrepareSyntaxError
	PrepareUnrecognizedStatement
)

// prepareStatement tokenizes input and, for "insert", validates field
// lengths and the id's sign (spec §6/§7).
func prepareStatement(input string, stmt *Statement) (PrepareResult, string) {
	if strings.HasPrefix(input, "insert") {
		return prepareInsert(input, stmt)
	}
	if input == "select" {
		stmt.Type = StatementSelect
		return PrepareSuccess, ""
	}
	return PrepareUnrecognizedStatement, fmt.Sprintf("Unrecognized keyword at start of %s", input)
}

func prepareInsert(input string, stmt *Statement) (PrepareResult, string) {
	fields := strings.Fields(input)
	if len(fields) != 4 {
		return PrepareSyntaxError, "Syntax error. Could not parse statement"
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return PrepareSyntaxError, "Syntax error. Could not parse statement"
	}
	if id < 0 {
		return PrepareNegativeID, "ID must be positive"
	}
	username, email := fields[2], fields[3]
	if len(username) > record.MaxUsernameLen || len(email) > record.MaxEmailLen {
		return PrepareStringTooLong, "String is too long"
	}

	stmt.Type = StatementInsert
	stmt.RowToInsert = record.Row{ID: uint32(id), Username: username, Email: email}
	return PrepareSuccess, ""
}

// executeStatement runs a prepared statement against tbl, printing
// its output per spec §6. ErrDuplicateKey is the one recoverable
// error this engine produces; anything else reaching here (a
// non-root split, an out-of-bounds page, a disk I/O failure) is a
// fatal condition per spec §7, and terminates the process rather than
// continuing the REPL over a tree that may be left inconsistent.
func executeStatement(stmt *Statement, tbl *table.Table) {
	switch stmt.Type {
	case StatementInsert:
		row := stmt.RowToInsert
		if err := tbl.Insert(row.ID, row.Username, row.Email); err != nil {
			if errors.Is(err, btree.ErrDuplicateKey) {
				fmt.Println("Error: Duplicate key.")
				return
			}
			fatal(err)
		}
		fmt.Println("Executed")

	case StatementSelect:
		rows, err := tbl.Select()
		if err != nil {
			fatal(err)
		}
		for _, row := range rows {
			fmt.Printf("(%d %s %s)\n", row.ID, row.Username, row.Email)
		}
		fmt.Println("Executed")
	}
}

// fatal prints a diagnostic and terminates the process.
func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
