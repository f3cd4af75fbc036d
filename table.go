// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd

import (
	"golang.org/x/xerrors"
)

// newtable returns a node table with at least size slots (rounded to a prime
// and capped by the id space) holding only the two constants.
func newtable(cfg *configs) *nodetable {
	size := primeGte(cfg.nodesize)
	if size > _MAXID {
		size = primeLte(_MAXID)
	}
	t := &nodetable{
		nodes:      make([]uint64, size),
		refs:       make([]uint64, size),
		cfg:        cfg,
		invalidate: func() {},
	}
	// Constants always have the highest level and are never collected.
	t.nodes[0] = nodeWord(_INVALIDVAR, 0, 0)
	t.nodes[1] = nodeWord(_INVALIDVAR, 1, 1)
	t.refs[0] = setBit(0, _SATOFFSET)
	t.refs[1] = setBit(0, _SATOFFSET)
	for n := size - 1; n > 1; n-- {
		t.nodes[n] = freeWord
		t.refs[n] = withNext(0, t.freepos)
		t.freepos = n
	}
	t.freenum = size - 2
	t.maxvalid = 1
	return t
}

func (t *nodetable) size() int {
	return len(t.nodes)
}

// makenode returns the unique node with the given level and successors,
// creating it if needed. Callers are responsible for reduction: low and high
// must be different. The successors must be protected (referenced, saturated
// or on the work stack) since the call may trigger a garbage collection. When
// the table cannot provide a new slot, makenode panics with an exhaustion
// value that is recovered by the guard of the current operation.
func (t *nodetable) makenode(level, low, high int) int {
	if _DEBUG {
		switch {
		case low == high:
			contract("makenode(%d, %d, %d) with identical successors", level, low, high)
		case level < 0 || level >= _INVALIDVAR:
			contract("makenode with level %d out of range", level)
		case !t.isvalid(low) || !t.isvalid(high):
			contract("makenode(%d, %d, %d) with an invalid successor", level, low, high)
		case level >= t.level(low) || level >= t.level(high):
			contract("makenode(%d, %d, %d) breaks the variable order", level, low, high)
		}
	}
	t.uniqueAccess++
	key := nodeWord(level, low, high)
	hash := t.nodehash(level, low, high)
	for res := refChain(t.refs[hash]); res != 0; res = refNext(t.refs[res]) {
		if wordKey(t.nodes[res]) == key {
			t.uniqueHit++
			return res
		}
		t.uniqueChain++
	}
	t.uniqueMiss++

	if t.freenum == 0 {
		t.grow()
		// the size of the table may have changed
		hash = t.nodehash(level, low, high)
	}

	res := t.freepos
	t.freepos = refNext(t.refs[res])
	t.freenum--
	t.produced++
	if res > t.maxvalid {
		t.maxvalid = res
	}
	t.nodes[res] = key
	// a fresh slot has a null reference count
	t.refs[res] = withNext(withCount(clearBit(t.refs[res], _SATOFFSET), 0), refChain(t.refs[hash]))
	t.refs[hash] = withChain(t.refs[hash], res)
	return res
}

// ************************************************************

// growsize returns the number of slots added to a table of the given size. It
// is a piecewise-linear function: mingrowth for small tables, maxgrowth for
// big ones, and a linear interpolation in between.
func (c *configs) growsize(size int) int {
	switch {
	case size <= c.smalltable:
		return c.mingrowth
	case size >= c.bigtable:
		return c.maxgrowth
	}
	span := c.bigtable - c.smalltable
	return c.mingrowth + int(int64(c.maxgrowth-c.mingrowth)*int64(size-c.smalltable)/int64(span))
}

// enoughfree reports whether the number of free nodes after a garbage
// collection is sufficient to avoid a resize.
func (t *nodetable) enoughfree() bool {
	if t.freenum == 0 {
		return false
	}
	return t.freenum > t.cfg.minfreecount || t.freenum*100 > t.cfg.minfreenodes*len(t.nodes)
}

// grow is called when the free list is empty. We first try to reclaim nodes
// with a garbage collection and resize the table only if there is not
// enough free nodes left.
func (t *nodetable) grow() {
	t.collect()
	if t.enoughfree() {
		return
	}
	oldsize := len(t.nodes)
	limit := _MAXID
	if t.cfg.maxnodesize > 0 && t.cfg.maxnodesize < limit {
		limit = t.cfg.maxnodesize
	}
	newsize := primeGte(oldsize + t.cfg.growsize(oldsize))
	if newsize > limit {
		newsize = limit
	}
	if newsize <= oldsize {
		if t.freenum > 0 {
			return
		}
		panic(exhaustion{xerrors.Errorf("cannot grow node table beyond %d nodes: %w", oldsize, ErrExhausted)})
	}
	t.resize(newsize)
}

// resize extends the table to newsize slots, then rebuilds the hash chains
// and the free list.
func (t *nodetable) resize(newsize int) {
	oldsize := len(t.nodes)
	if _LOGLEVEL > 0 {
		logf("resizing node table", "from", oldsize, "to", newsize)
	}
	nodes := make([]uint64, newsize)
	refs := make([]uint64, newsize)
	copy(nodes, t.nodes)
	copy(refs, t.refs)
	for n := oldsize; n < newsize; n++ {
		nodes[n] = freeWord
	}
	t.nodes = nodes
	t.refs = refs
	t.resizes++
	t.rehash()
	if _DEBUG {
		if err := t.check(); err != nil {
			t.logTable()
			contract("after resize: %s", err)
		}
	}
	t.invalidate()
}

// rehash rebuilds the hash chains of all valid nodes and the free list, in
// ascending order, with all the invalid slots.
func (t *nodetable) rehash() {
	for n := range t.refs {
		t.refs[n] = withChain(withNext(t.refs[n], 0), 0)
	}
	t.freepos = 0
	t.freenum = 0
	t.maxvalid = 1
	for n := len(t.nodes) - 1; n > 1; n-- {
		if wordLevel(t.nodes[n]) == _INVALIDVAR {
			t.nodes[n] = freeWord
			t.refs[n] = withNext(withCount(clearBit(t.refs[n], _SATOFFSET), 0), t.freepos)
			t.freepos = n
			t.freenum++
			continue
		}
		if t.maxvalid == 1 {
			t.maxvalid = n
		}
		hash := t.ptrhash(n)
		t.refs[n] = withNext(t.refs[n], refChain(t.refs[hash]))
		t.refs[hash] = withChain(t.refs[hash], n)
	}
}

// ************************************************************

// check verifies the consistency of the table: the free list is sorted and
// contains exactly the invalid slots, every valid node is in the hash chain
// of its bucket, there are no duplicate triples, and every node is reduced
// and ordered with valid successors.
func (t *nodetable) check() error {
	size := len(t.nodes)
	if len(t.refs) != size {
		return xerrors.Errorf("node (%d) and reference (%d) storage have different sizes", size, len(t.refs))
	}
	if !t.issaturated(0) || !t.issaturated(1) {
		return xerrors.New("constants are not saturated")
	}
	// free list
	free := make([]bool, size)
	count := 0
	last := 1
	for n := t.freepos; n != 0; n = refNext(t.refs[n]) {
		switch {
		case n <= last || n >= size:
			return xerrors.Errorf("free list not sorted at slot %d (previous %d)", n, last)
		case t.isvalid(n):
			return xerrors.Errorf("valid node %d in the free list", n)
		case t.isreferenced(n):
			return xerrors.Errorf("free slot %d is referenced", n)
		}
		free[n] = true
		last = n
		count++
	}
	if count != t.freenum {
		return xerrors.Errorf("free list has %d slots, expected %d", count, t.freenum)
	}
	// valid nodes
	seen := make(map[uint64]int)
	valid := 0
	for n := 2; n < size; n++ {
		if !t.isvalid(n) {
			if !free[n] {
				return xerrors.Errorf("invalid slot %d not in the free list", n)
			}
			continue
		}
		valid++
		if n > t.maxvalid {
			return xerrors.Errorf("valid node %d above the bound %d", n, t.maxvalid)
		}
		if t.ismarked(n) {
			return xerrors.Errorf("node %d is marked", n)
		}
		level, low, high := t.level(n), t.low(n), t.high(n)
		switch {
		case low == high:
			return xerrors.Errorf("node %d is not reduced", n)
		case !t.isvalid(low) || !t.isvalid(high):
			return xerrors.Errorf("node %d has an invalid successor (%d, %d)", n, low, high)
		case level >= t.level(low) || level >= t.level(high):
			return xerrors.Errorf("node %d breaks the variable order", n)
		}
		key := wordKey(t.nodes[n])
		if m, ok := seen[key]; ok {
			return xerrors.Errorf("nodes %d and %d are duplicates", m, n)
		}
		seen[key] = n
		found := false
		for m := refChain(t.refs[t.ptrhash(n)]); m != 0; m = refNext(t.refs[m]) {
			if m == n {
				found = true
				break
			}
		}
		if !found {
			return xerrors.Errorf("node %d missing from its hash chain", n)
		}
	}
	if valid+t.freenum+2 != size {
		return xerrors.Errorf("%d valid and %d free slots in a table of size %d", valid, t.freenum, size)
	}
	return nil
}
