// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/xerrors"
)

// _MAXREPLACEMENTS is the number of replacement vectors remembered between
// two invalidations of the cache.
const _MAXREPLACEMENTS = 1024

// replacements interns the vectors used in calls to Compose so that the
// substitution region can be keyed with a small identifier instead of the
// whole vector. Identifiers are never reused, even after a reset, so that an
// entry stored with an old identifier can never be mistaken for the result of
// another vector.
type replacements struct {
	table   map[uint64][]composition
	count   int
	nextid  uint64
	scratch []byte
}

type composition struct {
	id    uint64
	nodes []int
}

func (r *replacements) reset() {
	r.table = make(map[uint64][]composition)
	r.count = 0
	if r.nextid == 0 {
		r.nextid = 1
	}
}

// intern returns the identifier of the replacement vector vec.
func (r *replacements) intern(vec []int) uint64 {
	buf := binary.LittleEndian.AppendUint32(r.scratch[:0], uint32(len(vec)))
	for _, v := range vec {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
	}
	r.scratch = buf
	key := xxhash.Sum64(buf)
	for _, c := range r.table[key] {
		if slices.Equal(c.nodes, vec) {
			return c.id
		}
	}
	if r.count >= _MAXREPLACEMENTS {
		r.table = make(map[uint64][]composition)
		r.count = 0
	}
	c := composition{id: r.nextid, nodes: slices.Clone(vec)}
	r.nextid++
	r.count++
	r.table[key] = append(r.table[key], c)
	return c.id
}

// ************************************************************

// NewReplacer returns a replacement vector, suitable for Compose, for
// substituting variable oldvars[k] with newvars[k]. We return an error if the
// two slices do not have the same length or if we find the same index twice
// in either of them. All values must be in [0..Varnum).
func (b *BDD) NewReplacer(oldvars []int, newvars []int) ([]Node, error) {
	if len(oldvars) != len(newvars) {
		return nil, xerrors.New("unmatched length of slices")
	}
	varnum := b.Varnum()
	res := make([]Node, varnum)
	for k := range res {
		res[k] = Unchanged
	}
	image := make([]bool, varnum)
	for k, v := range oldvars {
		if v < 0 || v >= varnum {
			return nil, xerrors.Errorf("invalid variable in oldvars (%d)", v)
		}
		if newvars[k] < 0 || newvars[k] >= varnum {
			return nil, xerrors.Errorf("invalid variable in newvars (%d)", newvars[k])
		}
		if res[v] != Unchanged {
			return nil, xerrors.Errorf("duplicate variable (%d) in oldvars", v)
		}
		if image[newvars[k]] {
			return nil, xerrors.Errorf("duplicate variable (%d) in newvars", newvars[k])
		}
		image[newvars[k]] = true
		res[v] = b.Ithvar(newvars[k])
	}
	return res, nil
}

// Compose returns the result of substituting, in n, each variable i with the
// function replacements[i]. Variables with an Unchanged entry, or beyond the
// end of the slice, are left untouched. Substitutions are simultaneous.
func (b *BDD) Compose(n Node, replacements []Node) (res Node) {
	if b.checkptr(n) {
		return Invalid
	}
	top := b.protect(int(n))
	defer b.release(top, &res)
	vec := make([]int, 0, len(replacements))
	last := -1
	for v, r := range replacements {
		if v >= b.varnum {
			if _DEBUG {
				contract("replacement for unknown variable %d", v)
			}
			break
		}
		switch {
		case r == Unchanged:
			vec = append(vec, b.vars[v][0])
			continue
		case b.checkptr(r):
			return Invalid
		}
		vec = append(vec, int(r))
		if int(r) != b.vars[v][0] {
			last = v
			if !b.issaturated(int(r)) {
				b.pushref(int(r))
			}
		}
	}
	if last < 0 {
		return n
	}
	vec = vec[:last+1]
	return Node(b.compose(int(n), vec, b.intern(vec)))
}

func (b *BDD) compose(n int, vec []int, id uint64) int {
	if n < 2 {
		return n
	}
	level := b.level(n)
	if level >= len(vec) {
		return n
	}
	res, hash, ok := b.matchreplace(id, n)
	if ok {
		return res
	}
	low := b.pushref(b.compose(b.low(n), vec, id))
	high := b.pushref(b.compose(b.high(n), vec, id))
	res = b.ite(vec[level], high, low)
	b.popref(2)
	return b.setreplace(hash, id, n, res)
}

// Restrict returns the restriction (cofactor) of n where each variable
// vars[k] is replaced by the constant values[k].
func (b *BDD) Restrict(n Node, vars []int, values []bool) Node {
	if len(vars) != len(values) {
		if _DEBUG {
			contract("unmatched length of slices in Restrict")
		}
		return Invalid
	}
	repl := make([]Node, b.varnum)
	for k := range repl {
		repl[k] = Unchanged
	}
	for k, v := range vars {
		if v < 0 || v >= b.varnum {
			if _DEBUG {
				contract("unknown variable %d in Restrict", v)
			}
			return Invalid
		}
		repl[v] = False
		if values[k] {
			repl[v] = True
		}
	}
	return b.Compose(n, repl)
}
