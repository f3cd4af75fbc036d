// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd

// nodetable is the arena storing all the nodes of a BDD. A node is identified
// by its index in two parallel slices of packed words (see bits.go). Slots 0
// and 1 hold the constants False and True.
//
// The NEXT field of a reference word is shared between two lists: for a valid
// node it links the hash chain of its bucket, for a free slot it links the
// free list. The CHAIN field of slot h is the start of the hash chain for
// bucket h, whether slot h is valid or not.
type nodetable struct {
	nodes      []uint64 // <VAR><HIGH><LOW><MARK>
	refs       []uint64 // <CHAIN><NEXT><REF><SAT>
	freepos    int      // first free slot, 0 if none
	freenum    int      // number of free slots
	maxvalid   int      // no valid node above this index
	refstack   []int    // work stack, nodes protected during an operation
	markstack  []int    // explicit stack used by the mark phase
	cfg        *configs
	invalidate func() // called after every collection or resize
	tablestat
}

// tablestat stores status information about the node table
type tablestat struct {
	produced     int // number of nodes created
	uniqueAccess int // accesses to the unique node table
	uniqueChain  int // iterations through the hash chains
	uniqueHit    int // entries actually found in the unique node table
	uniqueMiss   int // entries not found in the unique node table
	collections  int // number of garbage collections
	resizes      int // number of resize events
}

// freeWord is the content of the node word of a free slot.
var freeWord = nodeWord(_INVALIDVAR, 0, 0)

// ************************************************************

func (t *nodetable) level(n int) int {
	return wordLevel(t.nodes[n])
}

func (t *nodetable) low(n int) int {
	return wordLow(t.nodes[n])
}

func (t *nodetable) high(n int) int {
	return wordHigh(t.nodes[n])
}

// isvalid reports whether n is a constant or the index of a valid node.
func (t *nodetable) isvalid(n int) bool {
	if n < 2 {
		return n >= 0
	}
	return n < len(t.nodes) && wordLevel(t.nodes[n]) != _INVALIDVAR
}

func (t *nodetable) ismarked(n int) bool {
	return wordMarked(t.nodes[n])
}

func (t *nodetable) marknode(n int) {
	t.nodes[n] = setBit(t.nodes[n], _MARKOFFSET)
}

func (t *nodetable) unmarknode(n int) {
	t.nodes[n] = clearBit(t.nodes[n], _MARKOFFSET)
}

// ************************************************************

func (t *nodetable) refcount(n int) int {
	return refCount(t.refs[n])
}

func (t *nodetable) issaturated(n int) bool {
	return refSaturated(t.refs[n])
}

func (t *nodetable) isreferenced(n int) bool {
	r := t.refs[n]
	return refSaturated(r) || refCount(r) > 0
}

// saturate pins node n in the table for the lifetime of the BDD.
func (t *nodetable) saturate(n int) {
	if n < 2 {
		return
	}
	t.refs[n] = setBit(withCount(t.refs[n], 0), _SATOFFSET)
}

// reference increases the reference count of node n. The node becomes
// saturated when the counter overflows.
func (t *nodetable) reference(n int) {
	if n < 2 || t.issaturated(n) {
		return
	}
	c := t.refcount(n)
	if c == _MAXREFCOUNT {
		t.saturate(n)
		return
	}
	t.refs[n] = withCount(t.refs[n], c+1)
}

// dereference decreases the reference count of node n. It has no effect on
// constants, saturated nodes, and nodes with a null count.
func (t *nodetable) dereference(n int) {
	if n < 2 || t.issaturated(n) {
		return
	}
	c := t.refcount(n)
	if c == 0 {
		if _DEBUG {
			contract("dereference of node %d with a null reference count", n)
		}
		return
	}
	t.refs[n] = withCount(t.refs[n], c-1)
}
