// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd

import "golang.org/x/xerrors"

// Varnum returns the number of variables defined in b.
func (b *BDD) Varnum() int {
	return b.varnum
}

// Variable adds a new variable, with an index equal to the previous value of
// Varnum, and returns its positive literal. The positive and negative literals
// of a variable are never collected.
func (b *BDD) Variable() (res Node) {
	if b.varnum >= _MAXVAR {
		return b.seterror(xerrors.Errorf("cannot create more than %d variables: %w", _MAXVAR, ErrExhausted))
	}
	top := b.protect()
	defer b.release(top, &res)
	v := b.varnum
	// literals are saturated only once both exist
	pos := b.pushref(b.makenode(v, 0, 1))
	neg := b.makenode(v, 1, 0)
	b.saturate(pos)
	b.saturate(neg)
	b.vars = append(b.vars, [2]int{pos, neg})
	b.varnum++
	b.varnumChanged()
	_, hash, _ := b.matchnot(pos)
	b.setnot(hash, pos, neg)
	_, hash, _ = b.matchnot(neg)
	b.setnot(hash, neg, pos)
	return Node(pos)
}

// varnumChanged is the only place where we react to a change in the number of
// variables. We size the stacks used in recursive traversals, which are
// bounded by the number of variables, and we invalidate the regions whose
// results depend on this number.
func (b *BDD) varnumChanged() {
	if need := 2*b.varnum + 4; cap(b.refstack) < need {
		stack := make([]int, len(b.refstack), 2*need)
		copy(stack, b.refstack)
		b.refstack = stack
	}
	if need := 4*b.varnum + 3; cap(b.markstack) < need {
		b.markstack = make([]int, 0, 2*need)
	}
	b.regions[SatisfactionRegion].reallocate(b.size())
	b.regions[SubstitutionRegion].reallocate(b.size())
}

// Ithvar returns a BDD representing the i'th variable on success (the
// expression xi), otherwise we set the error status in the BDD and returns
// Invalid. The requested variable must be in the range [0..Varnum).
func (b *BDD) Ithvar(i int) Node {
	if i < 0 || i >= b.varnum {
		if _DEBUG {
			contract("unknown variable (%d) in call to Ithvar", i)
		}
		return b.seterror(xerrors.Errorf("unknown variable (%d) in call to Ithvar", i))
	}
	return Node(b.vars[i][0])
}

// NIthvar returns a node representing the negation of the i'th variable on
// success (the expression !xi), otherwise Invalid. See *Ithvar* for further
// info.
func (b *BDD) NIthvar(i int) Node {
	if i < 0 || i >= b.varnum {
		if _DEBUG {
			contract("unknown variable (%d) in call to NIthvar", i)
		}
		return b.seterror(xerrors.Errorf("unknown variable (%d) in call to NIthvar", i))
	}
	return Node(b.vars[i][1])
}
