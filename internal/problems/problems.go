// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package problems builds the reference systems used both by the jddbench
// command and by the tests of package jdd: Milner's scheduler and the
// N-queens problem. The functions return a BDD together with a referenced
// node encoding the solutions, so callers can inspect the result further.
package problems

import (
	"io"
	"log/slog"
)

// orDiscard returns log, or a logger that drops everything if log is nil.
func orDiscard(log *slog.Logger) *slog.Logger {
	if log != nil {
		return log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
