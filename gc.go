// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd

// collect is the garbage collector called for reclaiming memory, inside a
// call to makenode, when there are no free positions available. Nodes that
// are not reclaimed do not move. Every node reachable from the work stack or
// from a referenced (or saturated) node survives. Reclaimed slots are put back
// in the free list, in ascending order, and the caches are invalidated since
// their indices will be reused.
func (t *nodetable) collect() {
	if _LOGLEVEL > 0 {
		logf("starting GC", "size", len(t.nodes), "free", t.freenum)
	}
	t.collections++
	for _, n := range t.refstack {
		t.markTree(n)
	}
	for n := 2; n <= t.maxvalid; n++ {
		if t.isvalid(n) && t.isreferenced(n) {
			t.markTree(n)
		}
	}

	// Sweep: we clear every hash chain and rebuild the free list starting
	// from the top of the table. The slots above maxvalid are already free.
	for n := range t.refs {
		t.refs[n] = withChain(t.refs[n], 0)
	}
	t.freepos = 0
	t.freenum = 0
	for n := len(t.nodes) - 1; n > t.maxvalid; n-- {
		t.refs[n] = withNext(t.refs[n], t.freepos)
		t.freepos = n
		t.freenum++
	}
	maxvalid := 1
	for n := t.maxvalid; n > 1; n-- {
		if t.isvalid(n) && t.ismarked(n) {
			t.unmarknode(n)
			if maxvalid == 1 {
				maxvalid = n
			}
			continue
		}
		t.nodes[n] = freeWord
		t.refs[n] = withNext(withCount(t.refs[n], 0), t.freepos)
		t.freepos = n
		t.freenum++
	}
	t.maxvalid = maxvalid
	for n := t.maxvalid; n > 1; n-- {
		if !t.isvalid(n) {
			continue
		}
		hash := t.ptrhash(n)
		t.refs[n] = withNext(t.refs[n], refChain(t.refs[hash]))
		t.refs[hash] = withChain(t.refs[hash], n)
	}

	if _DEBUG {
		if err := t.check(); err != nil {
			t.logTable()
			contract("after GC: %s", err)
		}
	}
	t.invalidate()
	if _LOGLEVEL > 0 {
		logf("end GC", "free", t.freenum)
	}
}

// ************************************************************
// MARK / UNMARK

// markTree marks all the nodes reachable from n. The traversal stops at
// marked nodes and uses an explicit stack.
func (t *nodetable) markTree(n int) {
	if n < 2 || t.ismarked(n) {
		return
	}
	stack := append(t.markstack[:0], n)
	t.marknode(n)
	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range [2]int{t.low(m), t.high(m)} {
			if s >= 2 && !t.ismarked(s) {
				t.marknode(s)
				stack = append(stack, s)
			}
		}
	}
	t.markstack = stack[:0]
}

// unmarkTree clears the marks set by markTree, or by any traversal that marks
// a node only after marking its parent. It stops at unmarked nodes.
func (t *nodetable) unmarkTree(n int) {
	if n < 2 || !t.ismarked(n) {
		return
	}
	stack := append(t.markstack[:0], n)
	t.unmarknode(n)
	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range [2]int{t.low(m), t.high(m)} {
			if s >= 2 && t.ismarked(s) {
				t.unmarknode(s)
				stack = append(stack, s)
			}
		}
	}
	t.markstack = stack[:0]
}

// markcount marks the nodes reachable from n and returns the number of nodes
// that were not already marked.
func (t *nodetable) markcount(n int) int {
	if n < 2 || t.ismarked(n) {
		return 0
	}
	count := 1
	stack := append(t.markstack[:0], n)
	t.marknode(n)
	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range [2]int{t.low(m), t.high(m)} {
			if s >= 2 && !t.ismarked(s) {
				t.marknode(s)
				count++
				stack = append(stack, s)
			}
		}
	}
	t.markstack = stack[:0]
	return count
}

// ************************************************************
// private functions to manipulate the work stack (refstack); used to prevent
// nodes that are currently being built (e.g. transient nodes built during an
// apply) to be reclaimed during GC.

func (t *nodetable) pushref(n int) int {
	t.refstack = append(t.refstack, n)
	return n
}

func (t *nodetable) popref(a int) {
	t.refstack = t.refstack[:len(t.refstack)-a]
}
