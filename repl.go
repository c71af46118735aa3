package main

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"bptreedb/table"
)

// REPL is the line-oriented front end driving the database. It owns
// no storage-engine state beyond the Table it drives.
type REPL struct {
	rl  *readline.Instance
	tbl *table.Table
	log *zap.SugaredLogger
}

// NewREPL opens dbPath and wires up interactive line editing.
func NewREPL(dbPath string, log *zap.SugaredLogger) (*REPL, error) {
	tbl, err := table.Open(dbPath)
	if err != nil {
		return nil, err
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "db > ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		tbl.Close()
		return nil, err
	}
	return &REPL{rl: rl, tbl: tbl, log: log}, nil
}

// Run drives the read-parse-execute loop until `.exit` or a fatal
// error. It returns the process exit code.
func (r *REPL) Run() int {
	defer r.rl.Close()

	for {
		line, err := r.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err == io.EOF {
			r.log.Error("Error reading input")
			return 1
		}
		if err != nil {
			r.log.Errorw("Error reading input", "err", err)
			return 1
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if code, done := r.runMetaCommand(line); done {
				return code
			}
			continue
		}

		r.runStatement(line)
	}
}

func (r *REPL) runMetaCommand(line string) (code int, exit bool) {
	err := handleMetaCommand(r.tbl, line, writeOut)
	if errors.Is(err, errExitRequested) {
		if cerr := r.tbl.Close(); cerr != nil {
			r.log.Errorw("error closing database", "err", cerr)
			return 1, true
		}
		return 0, true
	}
	if err != nil {
		r.log.Errorw("fatal error handling meta-command", "err", err)
		return 1, true
	}
	return 0, false
}

func (r *REPL) runStatement(line string) {
	stmt, err := PrepareStatement(line)
	if err != nil {
		writeLine(err.Error())
		return
	}

	switch stmt.Type {
	case StatementInsert:
		if err := r.tbl.Insert(stmt.RowToInsert); err != nil {
			if errors.Is(err, table.ErrDuplicateKey) || errors.Is(err, table.ErrTableFull) {
				writeLine(err.Error())
				return
			}
			r.log.Fatalw("fatal storage error", "err", err)
		}
		writeLine("Executed.")

	case StatementSelect:
		rows, err := r.tbl.SelectAll()
		if err != nil {
			r.log.Fatalw("fatal storage error", "err", err)
		}
		for _, row := range rows {
			writeLine(row.String())
		}
		writeLine("Executed.")
	}
}
