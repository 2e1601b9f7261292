package main

import "testing"

func TestPrepareInsertSuccess(t *testing.T) {
	var stmt Statement
	result, msg := prepareStatement("insert 1 alice alice@example.com", &stmt)
	if result != PrepareSuccess {
		t.Fatalf("result = %v, msg = %q, want PrepareSuccess", result, msg)
	}
	if stmt.Type != StatementInsert {
		t.Errorf("stmt.Type = %v, want StatementInsert", stmt.Type)
	}
	if stmt.RowToInsert.ID != 1 || stmt.RowToInsert.Username != "alice" || stmt.RowToInsert.Email != "alice@example.com" {
		t.Errorf("stmt.RowToInsert = %+v", stmt.RowToInsert)
	}
}

func TestPrepareSelectSuccess(t *testing.T) {
	var stmt Statement
	result, _ := prepareStatement("select", &stmt)
	if result != PrepareSuccess || stmt.Type != StatementSelect {
		t.Errorf("result = %v, stmt.Type = %v", result, stmt.Type)
	}
}

func TestPrepareInsertSyntaxError(t *testing.T) {
	var stmt Statement
	result, _ := prepareStatement("insert 1 alice", &stmt)
	if result != PrepareSyntaxError {
		t.Errorf("result = %v, want PrepareSyntaxError", result)
	}
}

func TestPrepareInsertNonNumericID(t *testing.T) {
	var stmt Statement
	result, _ := prepareStatement("insert foo alice alice@example.com", &stmt)
	if result != PrepareSyntaxError {
		t.Errorf("result = %v, want PrepareSyntaxError", result)
	}
}

func TestPrepareInsertNegativeID(t *testing.T) {
	var stmt Statement
	result, _ := prepareStatement("insert -1 alice alice@example.com", &stmt)
	if result != PrepareNegativeID {
		t.Errorf("result = %v, want PrepareNegativeID", result)
	}
}

func TestPrepareInsertStringTooLong(t *testing.T) {
	var stmt Statement
	longUsername := make([]byte, 33)
	for i := range longUsername {
		longUsername[i] = 'a'
	}
	result, _ := prepareStatement("insert 1 "+string(longUsername)+" a@b.com", &stmt)
	if result != PrepareStringTooLong {
		t.Errorf("result = %v, want PrepareStringTooLong", result)
	}
}

func TestPrepareUnrecognizedStatement(t *testing.T) {
	var stmt Statement
	result, _ := prepareStatement("delete 1", &stmt)
	if result != PrepareUnrecognizedStatement {
		t.Errorf("result = %v, want PrepareUnrecognizedStatement", result)
	}
}
