// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd

import (
	"errors"
	"fmt"

	"golang.org/x/xerrors"
)

// ErrExhausted is returned (wrapped) when the node table cannot provide a new
// slot: a garbage collection freed nothing and the table cannot grow because
// of the Maxnodesize limit or of the size of the id space.
var ErrExhausted = errors.New("node table exhausted")

// ErrConfig is returned (wrapped) by New when the configuration options are
// inconsistent.
var ErrConfig = errors.New("invalid configuration")

// ContractViolation is the value of the panics raised, in debug builds only,
// when an operation is called with arguments breaking its preconditions, such
// as a stale node or an unknown variable. This is always a programming error
// in the calling code.
type ContractViolation struct {
	Msg string
}

func (c *ContractViolation) Error() string {
	return "jdd: contract violation: " + c.Msg
}

func contract(format string, a ...interface{}) {
	panic(&ContractViolation{Msg: fmt.Sprintf(format, a...)})
}

// exhaustion is used to unwind a recursive computation when the node table
// is full. It is recovered by the guard of the public operation.
type exhaustion struct {
	err error
}

// ************************************************************

// Err returns the error status of the BDD, or nil.
func (b *BDD) Err() error {
	return b.err
}

// Errored returns true if there was an error during a computation.
func (b *BDD) Errored() bool {
	return b.err != nil
}

func (b *BDD) seterror(err error) Node {
	if b.err != nil {
		b.err = xerrors.Errorf("%s: %w", b.err.Error(), err)
	} else {
		b.err = err
	}
	if _LOGLEVEL > 0 {
		logf("error", "err", b.err)
	}
	return Invalid
}
