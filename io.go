package main

import (
	"fmt"
	"os"
)

// writeOut and writeLine are the REPL's only output points, so tests
// can substitute a buffer instead of going through stdout.
var writeOut = func(s string) { fmt.Fprint(os.Stdout, s) }
var writeLine = func(s string) { fmt.Fprintln(os.Stdout, s) }
