// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build debug

package jdd

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// violation runs f and returns the message of the contract violation it
// raises. The test fails if f returns normally or panics with another value.
func violation(t *testing.T, f func()) (msg string) {
	t.Helper()
	defer func() {
		r := recover()
		cv, ok := r.(*ContractViolation)
		require.True(t, ok, "expected a contract violation, got %v", r)
		msg = cv.Msg
	}()
	f()
	return ""
}

func TestContractStaleNode(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	n := b.And(b.Ithvar(0), b.Ithvar(1))
	require.True(t, b.isvalid(int(n)))
	b.GC()
	require.False(t, b.isvalid(int(n)))
	assert.Equal(t, fmt.Sprintf("node %d is not a valid node", n), violation(t, func() { b.Not(n) }))
	assert.Equal(t, "node -2 is not a valid node", violation(t, func() { b.And(Unchanged, True) }))
	// Invalid is not a contract violation
	assert.Equal(t, Invalid, b.Or(Invalid, True))
}

func TestContractMakenode(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	x0, x1 := int(b.Ithvar(0)), int(b.Ithvar(1))
	assert.Contains(t, violation(t, func() { b.makenode(0, 1, 1) }), "identical successors")
	assert.Contains(t, violation(t, func() { b.makenode(1, x0, 1) }), "breaks the variable order")
	assert.Contains(t, violation(t, func() { b.makenode(0, x1, b.size()+3) }), "invalid successor")
	assert.Contains(t, violation(t, func() { b.makenode(-1, 0, 1) }), "out of range")
}

func TestContractVariables(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	assert.Equal(t, "unknown variable (5) in call to Ithvar", violation(t, func() { b.Ithvar(5) }))
	assert.Equal(t, "unknown variable (-1) in call to NIthvar", violation(t, func() { b.NIthvar(-1) }))
	assert.Equal(t, "unknown variable (2) in call to Makeset", violation(t, func() { b.Makeset([]int{0, 2}) }))
	assert.Equal(t, "unmatched length of slices in Restrict", violation(t, func() { b.Restrict(True, []int{0}, nil) }))
	assert.Equal(t, "bound (3) out of range in call to SupportBelow", violation(t, func() { b.SupportBelow(True, 3) }))
}

func TestContractOperations(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	assert.Contains(t, violation(t, func() { b.Apply(True, False, Operator(99)) }), "unauthorized operation (unknown)")
	n := b.And(b.Ithvar(0), b.Ithvar(1))
	assert.Equal(t, fmt.Sprintf("dereference of node %d with a null reference count", n), violation(t, func() { b.DelRef(n) }))
}

func TestContractSelfCheck(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	x1 := int(b.Ithvar(1))
	n := int(b.AddRef(b.And(b.Ithvar(0), Node(x1))))
	// a referenced node that is no longer reduced survives the collection
	b.nodes[n] = nodeWord(0, x1, x1)
	msg := violation(t, func() { b.GC() })
	assert.Contains(t, msg, "after GC")
	assert.Contains(t, msg, fmt.Sprintf("node %d is not reduced", n))
}

func TestSelfCheckDuringOperations(t *testing.T) {
	const varnum = 8
	rnd := rand.New(rand.NewSource(41))
	b := smallBDD(t, varnum)
	all := assignments(varnum)
	require.NotPanics(t, func() {
		for i := 0; i < 60; i++ {
			f := randomFormula(rnd, varnum, 6)
			n := f.build(b)
			for _, a := range all {
				require.Equal(t, f.eval(a), b.Evaluate(n, a))
			}
			b.DelRef(n)
		}
	})
	// every collection ran the automatic self-check
	assert.Greater(t, b.collections, 0)
	require.NoError(t, b.Check())
}
