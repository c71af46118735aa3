package main

import (
	"fmt"

	"bptreedb/table"
)

// errExitRequested is a sentinel handed back up to the REPL loop so it
// can close the table and exit 0 without command.go importing os.
var errExitRequested = fmt.Errorf("exit requested")

// handleMetaCommand dispatches a line beginning with '.'. It writes
// output to out and returns errExitRequested for `.exit`.
func handleMetaCommand(tbl *table.Table, line string, out func(string)) error {
	switch line {
	case ".exit":
		return errExitRequested
	case ".btree":
		tree, err := tbl.PrintTree()
		if err != nil {
			return err
		}
		out(tree)
		return nil
	case ".constants":
		out(table.PrintConstants())
		return nil
	default:
		out(fmt.Sprintf("Unrecognized command '%s'\n", line))
		return nil
	}
}
