package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bptreedb/table"
)

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origLine, origOut := writeLine, writeOut
	writeLine = func(s string) { lines = append(lines, s) }
	writeOut = func(s string) { lines = append(lines, s) }
	t.Cleanup(func() { writeLine, writeOut = origLine, origOut })
	return &lines
}

func newTestREPL(t *testing.T) *REPL {
	t.Helper()
	f, err := os.CreateTemp("", "repl_test_*.db")
	require.NoError(t, err)
	path := f.Name()
	require.NoError(t, f.Close())
	t.Cleanup(func() { os.Remove(path) })

	tbl, err := table.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { tbl.Close() })

	return &REPL{tbl: tbl, log: zap.NewNop().Sugar()}
}

// S1: basic persistence within one session.
func TestRunStatementInsertThenSelect(t *testing.T) {
	r := newTestREPL(t)
	out := captureOutput(t)

	r.runStatement("insert 1 user1 person1@example.com")
	r.runStatement("select")

	require.Equal(t, []string{
		"Executed.",
		"(1, user1, person1@example.com)",
		"Executed.",
	}, *out)
}

// S2: duplicate key keeps the first row and reports the exact message.
func TestRunStatementDuplicateKey(t *testing.T) {
	r := newTestREPL(t)
	out := captureOutput(t)

	r.runStatement("insert 1 a a@a")
	r.runStatement("insert 1 b b@b")
	r.runStatement("select")

	require.Equal(t, []string{
		"Executed.",
		"Error: Duplicate key.",
		"(1, a, a@a)",
		"Executed.",
	}, *out)
}

// S3: select returns rows sorted by key regardless of insert order.
func TestRunStatementSelectSortOrder(t *testing.T) {
	r := newTestREPL(t)
	out := captureOutput(t)

	r.runStatement("insert 3 c c@c")
	r.runStatement("insert 1 a a@a")
	r.runStatement("insert 2 b b@b")
	r.runStatement("select")

	require.Equal(t, []string{
		"Executed.", "Executed.", "Executed.",
		"(1, a, a@a)",
		"(2, b, b@b)",
		"(3, c, c@c)",
		"Executed.",
	}, *out)
}

// S4: validation error messages.
func TestRunStatementValidationErrors(t *testing.T) {
	r := newTestREPL(t)
	out := captureOutput(t)

	r.runStatement("insert -1 x x@x")
	r.runStatement("insert 1 " + string(make([]byte, 33, 33)) + " x@x")
	r.runStatement("insert 1 ok")

	got := *out
	require.Len(t, got, 3)
	require.Equal(t, "ID must be positive.", got[0])
	require.Equal(t, "String is too long.", got[1])
	require.Equal(t, "Syntax error. Could not parse statement.", got[2])
}
