// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd

import (
	"golang.org/x/xerrors"
)

// Node is a reference to an element of a BDD. It represents the atomic unit
// of interactions and computations within a BDD. A Node is only valid for the
// BDD that produced it, and only as long as it is protected from garbage
// collection: either it is the result of the last operation, or its reference
// count was increased with AddRef.
type Node int

const (
	// False is the constant false function.
	False Node = 0
	// True is the constant true function.
	True Node = 1
	// Invalid is returned by an operation that failed, for instance because
	// the node table is exhausted. Operations receiving Invalid as operand
	// return Invalid.
	Invalid Node = -1
	// Unchanged is used in the replacement vectors of Compose for variables
	// that are not substituted.
	Unchanged Node = -2
)

// BDD is a shared Binary Decision Diagram. It stores the node table, the
// operation caches and the list of variables. A BDD is not safe for
// concurrent use.
type BDD struct {
	*nodetable
	cache
	vars   [][2]int // positive and negative literal of each variable
	varnum int
	err    error
}

// New returns a new BDD with varnum variables, numbered from 0 to varnum-1,
// configured with the given options, like Nodesize or Cachedivider. More
// variables can be added later with Variable. We return an error wrapping
// ErrConfig if the options are inconsistent.
func New(varnum int, options ...Option) (*BDD, error) {
	cfg := makeconfigs(varnum)
	for _, f := range options {
		f(cfg)
	}
	// we build enough nodes to include all the variables
	if size := 2*varnum + 2; cfg.nodesize < size {
		cfg.nodesize = size
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	b := &BDD{}
	b.nodetable = newtable(cfg)
	b.cacheinit(cfg, b.size())
	b.invalidate = func() {
		b.cachereset(b.size())
	}
	b.vars = make([][2]int, 0, varnum)
	for k := 0; k < varnum; k++ {
		if b.Variable() == Invalid {
			return nil, b.err
		}
	}
	return b, nil
}

// ************************************************************

// checkptr returns true if n cannot be used as an operand. Stale and
// out-of-range nodes break the contract of the operations and are only
// detected in debug builds; in other builds we only test the range of n.
func (b *BDD) checkptr(n Node) bool {
	if n == Invalid {
		return true
	}
	if _DEBUG && !b.isvalid(int(n)) {
		contract("node %d is not a valid node", n)
	}
	return n < 0 || int(n) >= b.size()
}

// protect pushes the operands of a public operation on the work stack and
// returns the height of the stack before the call. It must be paired with a
// deferred call to release, so that the operands and all the intermediate
// results are protected from garbage collection during the operation, and
// only during the operation.
func (b *BDD) protect(nodes ...int) int {
	top := len(b.refstack)
	b.refstack = append(b.refstack, nodes...)
	return top
}

// release truncates the work stack to the height returned by protect. If the
// operation was interrupted because the node table is exhausted, we record
// the error and the result of the operation becomes Invalid. Any other panic
// is propagated.
func (b *BDD) release(top int, res *Node) {
	b.refstack = b.refstack[:top]
	if r := recover(); r != nil {
		e, ok := r.(exhaustion)
		if !ok {
			panic(r)
		}
		*res = b.seterror(e.err)
	}
}

// ************************************************************

// IsVariable reports whether n is the positive literal of a variable.
func (b *BDD) IsVariable(n Node) bool {
	if n < 2 || int(n) >= b.size() || !b.isvalid(int(n)) {
		return false
	}
	return b.low(int(n)) == 0 && b.high(int(n)) == 1
}

// IsVariableNegated reports whether n is the negative literal of a variable.
func (b *BDD) IsVariableNegated(n Node) bool {
	if n < 2 || int(n) >= b.size() || !b.isvalid(int(n)) {
		return false
	}
	return b.low(int(n)) == 1 && b.high(int(n)) == 0
}

// IsVariableOrNegated reports whether n is a literal, positive or negative.
func (b *BDD) IsVariableOrNegated(n Node) bool {
	return b.IsVariable(n) || b.IsVariableNegated(n)
}

// Label returns the variable (index) corresponding to node n in the BDD. We
// set the BDD to its error state and return -1 if we try to access a constant
// node.
func (b *BDD) Label(n Node) int {
	if b.checkptr(n) {
		return -1
	}
	if n < 2 {
		b.seterror(xerrors.New("try to access label of a constant node"))
		return -1
	}
	return b.level(int(n))
}

// Low returns the false branch of a BDD or Invalid if there is an error.
func (b *BDD) Low(n Node) Node {
	if b.checkptr(n) || n < 2 {
		return Invalid
	}
	return Node(b.low(int(n)))
}

// High returns the true branch of a BDD or Invalid if there is an error.
func (b *BDD) High(n Node) Node {
	if b.checkptr(n) || n < 2 {
		return Invalid
	}
	return Node(b.high(int(n)))
}

// ************************************************************

// AddRef increases the reference count on node n and returns n so that calls
// can be easily chained together. Nodes that are referenced, directly or
// through one of their ancestors, survive garbage collections. The counter
// has a fixed width; a node whose counter overflows becomes saturated and is
// never collected.
func (b *BDD) AddRef(n Node) Node {
	if b.checkptr(n) {
		return n
	}
	b.reference(int(n))
	return n
}

// DelRef decreases the reference count on a node and returns n so that calls
// can be easily chained together. It has no effect on constants and saturated
// nodes.
func (b *BDD) DelRef(n Node) Node {
	if b.checkptr(n) {
		return n
	}
	b.dereference(int(n))
	return n
}

// UpdateWith references result and dereferences input, in this order, and
// returns result. It is used to replace a referenced node with the result of
// an operation on it, like in:
//
//	acc = b.UpdateWith(b.And(acc, x), acc)
func (b *BDD) UpdateWith(result, input Node) Node {
	b.AddRef(result)
	b.DelRef(input)
	return result
}

// GC forces a garbage collection and returns the number of free nodes in the
// table. Only referenced nodes, and their descendants, survive.
func (b *BDD) GC() int {
	b.collect()
	return b.freenum
}

// Check verifies the internal consistency of the node table and returns an
// error describing the first problem found.
func (b *BDD) Check() error {
	return b.check()
}
