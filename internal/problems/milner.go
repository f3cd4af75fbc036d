// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package problems

import (
	"log/slog"
	"math"

	"github.com/dalzilio/jdd"
)

// MilnerStates is the number of reachable states of N cyclers, counted over
// the 6N variables of the system.
func MilnerStates(N int) float64 {
	return math.Ldexp(float64(N), 4*N+1)
}

// Milner returns a BDD with 6N variables and a referenced node encoding the
// reachable states of N cyclers, as in Milner's scheduler, computed with a
// monolithic transition relation. Cycler n uses variables 6n to 6n+5 for c,
// c', t, t', h and h'; the even variables hold the current state and the odd
// ones the next state. With fast set, images are computed with AndExist
// instead of an Exist over a conjunction. We return the error of the BDD if
// the node table is exhausted.
func Milner(log *slog.Logger, N int, fast bool, options ...jdd.Option) (*jdd.BDD, jdd.Node, error) {
	log = orDiscard(log)
	b, err := jdd.New(N*6, options...)
	if err != nil {
		return nil, jdd.Invalid, err
	}
	v := func(n, k int) jdd.Node { return b.Ithvar(n*6 + k) }
	nv := func(n, k int) jdd.Node { return b.NIthvar(n*6 + k) }
	const c, cp, t, tp, h, hp = 0, 1, 2, 3, 4, 5

	nvar := make([]int, N*3)
	pvar := make([]int, N*3)
	for n := range nvar {
		nvar[n] = n * 2
		pvar[n] = n*2 + 1
	}
	replacer, err := b.NewReplacer(pvar, nvar)
	if err != nil {
		return nil, jdd.Invalid, err
	}

	// initial state: the first cycler holds the token
	initial := b.AddRef(b.And(v(0, c), nv(0, h), nv(0, t)))
	for i := 1; i < N; i++ {
		initial = b.UpdateWith(b.And(initial, nv(i, c), nv(i, h), nv(i, t)), initial)
	}

	// unchanged returns a referenced node stating that variable k of all
	// the cyclers, except z, keeps its value.
	unchanged := func(k, z int) jdd.Node {
		res := b.True()
		for i := 0; i < N; i++ {
			if i != z {
				res = b.UpdateWith(b.And(res, b.Equiv(v(i, k), v(i, k+1))), res)
			}
		}
		return res
	}
	// rule returns the referenced conjunction of the literals and of the
	// frame conditions, and releases the latter.
	rule := func(frames [3]jdd.Node, literals ...jdd.Node) jdd.Node {
		res := b.AddRef(b.And(append(literals, frames[:]...)...))
		for _, f := range frames {
			b.DelRef(f)
		}
		return res
	}

	trans := b.False()
	for i := 0; i < N; i++ {
		next := (i + 1) % N
		p1 := rule([3]jdd.Node{unchanged(c, i), unchanged(t, i), unchanged(h, i)},
			v(i, c), nv(i, cp), v(i, tp), nv(i, t), v(i, hp))
		p2 := rule([3]jdd.Node{unchanged(c, next), unchanged(h, i), unchanged(t, N)},
			v(i, h), nv(i, hp), v(next, cp))
		e := rule([3]jdd.Node{unchanged(t, i), unchanged(h, N), unchanged(c, N)},
			v(i, t), nv(i, tp))
		trans = b.UpdateWith(b.Or(trans, p1, p2, e), trans)
		b.DelRef(p1)
		b.DelRef(p2)
		b.DelRef(e)
	}
	log.Debug("transition relation", "nodes", b.NodeCount(trans))

	current := b.AddRef(b.Makeset(nvar))
	states := initial
	for step := 1; ; step++ {
		var image jdd.Node
		if fast {
			image = b.AndExist(current, states, trans)
		} else {
			image = b.Exist(b.And(states, trans), current)
		}
		next := b.Or(b.Compose(image, replacer), states)
		if next == states || next == jdd.Invalid {
			break
		}
		states = b.UpdateWith(next, states)
		log.Debug("fixpoint iteration", "step", step, "nodes", b.NodeCount(states))
	}
	b.DelRef(trans)
	b.DelRef(current)
	if b.Errored() {
		return nil, jdd.Invalid, b.Err()
	}
	return b, states, nil
}
