// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// formula is a random Boolean syntax tree used to check the operations of a
// BDD against a direct evaluation.
type formula struct {
	op    string // "var", "const", "not", "and", "or", "xor", "nand", "imp", "equiv", "ite"
	v     int
	value bool
	args  []*formula
}

var formulaOps = []string{"not", "and", "or", "xor", "nand", "imp", "equiv", "ite"}

func randomFormula(rnd *rand.Rand, varnum, depth int) *formula {
	if depth == 0 || rnd.Intn(4) == 0 {
		if rnd.Intn(10) == 0 {
			return &formula{op: "const", value: rnd.Intn(2) == 0}
		}
		return &formula{op: "var", v: rnd.Intn(varnum)}
	}
	f := &formula{op: formulaOps[rnd.Intn(len(formulaOps))]}
	arity := 2
	switch f.op {
	case "not":
		arity = 1
	case "ite":
		arity = 3
	}
	for k := 0; k < arity; k++ {
		f.args = append(f.args, randomFormula(rnd, varnum, depth-1))
	}
	return f
}

func (f *formula) eval(assignment []bool) bool {
	switch f.op {
	case "const":
		return f.value
	case "var":
		return assignment[f.v]
	case "not":
		return !f.args[0].eval(assignment)
	case "ite":
		if f.args[0].eval(assignment) {
			return f.args[1].eval(assignment)
		}
		return f.args[2].eval(assignment)
	}
	x, y := f.args[0].eval(assignment), f.args[1].eval(assignment)
	switch f.op {
	case "and":
		return x && y
	case "or":
		return x || y
	case "xor":
		return x != y
	case "nand":
		return !(x && y)
	case "imp":
		return !x || y
	default:
		return x == y
	}
}

// build returns the BDD of f. The result is referenced, intermediate results
// are released.
func (f *formula) build(b *BDD) Node {
	var res Node
	switch f.op {
	case "const":
		return b.From(f.value)
	case "var":
		return b.Ithvar(f.v)
	}
	args := make([]Node, len(f.args))
	for k, a := range f.args {
		args[k] = a.build(b)
	}
	switch f.op {
	case "not":
		res = b.Not(args[0])
	case "and":
		res = b.And(args[0], args[1])
	case "or":
		res = b.Or(args[0], args[1])
	case "xor":
		res = b.Xor(args[0], args[1])
	case "nand":
		res = b.Nand(args[0], args[1])
	case "imp":
		res = b.Imp(args[0], args[1])
	case "equiv":
		res = b.Equiv(args[0], args[1])
	case "ite":
		res = b.Ite(args[0], args[1], args[2])
	}
	b.AddRef(res)
	for _, a := range args {
		b.DelRef(a)
	}
	return res
}

// assignments returns all the assignments over varnum variables.
func assignments(varnum int) [][]bool {
	res := make([][]bool, 0, 1<<varnum)
	for k := 0; k < 1<<varnum; k++ {
		a := make([]bool, varnum)
		for v := range a {
			a[v] = k&(1<<v) != 0
		}
		res = append(res, a)
	}
	return res
}

// smallBDD returns a BDD with a small table and small growth increments so
// that garbage collections and resizes happen often.
func smallBDD(t testing.TB, varnum int) *BDD {
	b, err := New(varnum, Nodesize(100), Mingrowth(100), Maxgrowth(100), Minfreecount(10), Minfreenodes(10), Cacheminimum(7))
	require.NoError(t, err)
	return b
}

// sameNode checks that g computes the node n. The node is protected during the
// computation of g.
func sameNode(t *testing.T, b *BDD, n Node, g func() Node) {
	t.Helper()
	b.AddRef(n)
	assert.Equal(t, n, g())
	b.DelRef(n)
}

func TestFormulaEvaluation(t *testing.T) {
	const varnum = 8
	rnd := rand.New(rand.NewSource(42))
	b := smallBDD(t, varnum)
	all := assignments(varnum)
	for i := 0; i < 100; i++ {
		f := randomFormula(rnd, varnum, 6)
		n := f.build(b)
		require.False(t, b.Errored())
		count := 0
		for _, a := range all {
			require.Equal(t, f.eval(a), b.Evaluate(n, a))
			if f.eval(a) {
				count++
			}
		}
		assert.Equal(t, float64(count), b.Satcount(n))
		b.DelRef(n)
	}
	require.NoError(t, b.Check())
	assert.Greater(t, b.collections, 0)
}

func TestAlgebraLaws(t *testing.T) {
	const varnum = 12
	rnd := rand.New(rand.NewSource(7))
	b := smallBDD(t, varnum)
	for i := 0; i < 50; i++ {
		x := randomFormula(rnd, varnum, 5).build(b)
		y := randomFormula(rnd, varnum, 5).build(b)
		z := randomFormula(rnd, varnum, 5).build(b)

		// commutativity and associativity
		sameNode(t, b, b.And(x, y), func() Node { return b.And(y, x) })
		sameNode(t, b, b.Or(x, y), func() Node { return b.Or(y, x) })
		xy := b.AddRef(b.And(x, y))
		yz := b.AddRef(b.And(y, z))
		sameNode(t, b, b.And(xy, z), func() Node { return b.And(x, yz) })
		b.DelRef(xy)
		b.DelRef(yz)
		xy = b.AddRef(b.Or(x, y))
		yz = b.AddRef(b.Or(y, z))
		sameNode(t, b, b.Or(xy, z), func() Node { return b.Or(x, yz) })
		b.DelRef(xy)
		b.DelRef(yz)

		// De Morgan
		nx := b.AddRef(b.Not(x))
		ny := b.AddRef(b.Not(y))
		left := b.AddRef(b.Not(b.And(x, y)))
		assert.Equal(t, left, b.Or(nx, ny))
		b.DelRef(left)

		// ite(f,g,h) == or(and(f,g), and(not(f),h))
		fg := b.AddRef(b.And(x, y))
		nfh := b.AddRef(b.And(nx, z))
		ite := b.AddRef(b.Ite(x, y, z))
		assert.Equal(t, ite, b.Or(fg, nfh))
		b.DelRef(fg)
		b.DelRef(nfh)
		b.DelRef(ite)

		// implication(a,b) == or(not(a),b)
		imp := b.AddRef(b.Imp(x, y))
		assert.Equal(t, imp, b.Or(nx, y))
		b.DelRef(imp)

		// a implies b iff or(a,b) == b
		assert.Equal(t, b.Implies(x, y), b.Or(x, y) == y)
		xy = b.AddRef(b.And(x, y))
		assert.True(t, b.Implies(xy, x))
		assert.Equal(t, x, b.Or(xy, x))
		b.DelRef(xy)

		// idempotence
		assert.Equal(t, x, b.And(x, x))
		assert.Equal(t, x, b.Or(x, x))
		assert.Equal(t, x, b.Not(nx))

		// xor, nand and equivalence
		xor := b.AddRef(b.Xor(x, y))
		assert.Equal(t, b.Not(b.Equiv(x, y)), xor)
		b.DelRef(xor)
		nand := b.AddRef(b.Nand(x, y))
		assert.Equal(t, b.Not(b.And(x, y)), nand)
		b.DelRef(nand)

		for _, n := range []Node{x, y, z, nx, ny} {
			b.DelRef(n)
		}
	}
	require.NoError(t, b.Check())
	require.False(t, b.Errored())
}

func TestSatcountBruteForce(t *testing.T) {
	for _, varnum := range []int{1, 5, 10, 16} {
		rnd := rand.New(rand.NewSource(int64(varnum)))
		b := smallBDD(t, varnum)
		all := assignments(varnum)
		for i := 0; i < 10; i++ {
			n := randomFormula(rnd, varnum, 6).build(b)
			count := 0
			for _, a := range all {
				if b.Evaluate(n, a) {
					count++
				}
			}
			assert.Equal(t, float64(count), b.Satcount(n), "varnum %d", varnum)
			b.DelRef(n)
		}
		assert.Equal(t, float64(int(1)<<varnum), b.Satcount(b.True()))
		assert.Equal(t, 0.0, b.Satcount(b.False()))
	}
}

func TestSatcountAfterNewVariable(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	n := b.And(b.Ithvar(0), b.Ithvar(1))
	assert.Equal(t, 1.0, b.Satcount(n))
	b.Variable()
	assert.Equal(t, 2.0, b.Satcount(n))
	b.Variable()
	assert.Equal(t, 4.0, b.Satcount(n))
}

func TestSupport(t *testing.T) {
	const varnum = 10
	rnd := rand.New(rand.NewSource(3))
	b := smallBDD(t, varnum)
	for i := 0; i < 30; i++ {
		f := randomFormula(rnd, varnum, 5)
		n := f.build(b)
		support := b.Support(n)
		for v := 0; v < varnum; v++ {
			// v is in the support iff the two cofactors are different
			r0 := b.AddRef(b.Restrict(n, []int{v}, []bool{false}))
			r1 := b.Restrict(n, []int{v}, []bool{true})
			assert.Equal(t, r0 != r1, support.Contains(v), "variable %d", v)
			b.DelRef(r0)
		}
		b.DelRef(n)
		require.NoError(t, b.Check())
	}
}

func TestComposeBruteForce(t *testing.T) {
	const varnum = 6
	rnd := rand.New(rand.NewSource(11))
	b := smallBDD(t, varnum)
	all := assignments(varnum)
	for i := 0; i < 30; i++ {
		f := randomFormula(rnd, varnum, 5)
		n := f.build(b)
		repl := make([]Node, varnum)
		subst := make([]*formula, varnum)
		for v := range repl {
			if rnd.Intn(2) == 0 {
				repl[v] = Unchanged
				continue
			}
			subst[v] = randomFormula(rnd, varnum, 3)
			repl[v] = subst[v].build(b)
		}
		c := b.AddRef(b.Compose(n, repl))
		for _, a := range all {
			image := make([]bool, varnum)
			for v := range image {
				image[v] = a[v]
				if subst[v] != nil {
					image[v] = subst[v].eval(a)
				}
			}
			require.Equal(t, f.eval(image), b.Evaluate(c, a))
		}
		b.DelRef(c)
		b.DelRef(n)
		for _, r := range repl {
			if r != Unchanged {
				b.DelRef(r)
			}
		}
	}
	require.NoError(t, b.Check())
}

func TestExistBruteForce(t *testing.T) {
	const varnum = 6
	rnd := rand.New(rand.NewSource(5))
	b := smallBDD(t, varnum)
	all := assignments(varnum)
	for i := 0; i < 30; i++ {
		f := randomFormula(rnd, varnum, 5)
		g := randomFormula(rnd, varnum, 5)
		n := f.build(b)
		m := g.build(b)
		vars := []int{rnd.Intn(varnum), rnd.Intn(varnum)}
		cube := b.AddRef(b.Makeset(vars))
		ex := b.AddRef(b.Exist(n, cube))
		andex := b.AddRef(b.AndExist(cube, n, m))
		for _, a := range all {
			expected, expectedAnd := false, false
			for k := 0; k < 4; k++ {
				image := append([]bool{}, a...)
				image[vars[0]] = k&1 != 0
				image[vars[1]] = k&2 != 0
				expected = expected || f.eval(image)
				expectedAnd = expectedAnd || (f.eval(image) && g.eval(image))
			}
			require.Equal(t, expected, b.Evaluate(ex, a))
			require.Equal(t, expectedAnd, b.Evaluate(andex, a))
		}
		for _, x := range []Node{n, m, cube, ex, andex} {
			b.DelRef(x)
		}
	}
	require.NoError(t, b.Check())
}

// dependsOn reports whether the value of f changes when we flip variable v in
// some assignment.
func (f *formula) dependsOn(v int, all [][]bool) bool {
	for _, a := range all {
		flipped := append([]bool(nil), a...)
		flipped[v] = !flipped[v]
		if f.eval(a) != f.eval(flipped) {
			return true
		}
	}
	return false
}

func TestLiteralsBruteForce(t *testing.T) {
	const varnum = 4
	rnd := rand.New(rand.NewSource(23))
	b := smallBDD(t, varnum)
	all := assignments(varnum)
	hits := 0
	for i := 0; i < 200; i++ {
		f := randomFormula(rnd, varnum, 2)
		n := f.build(b)
		positive, negative := false, false
		for v := 0; v < varnum; v++ {
			pos, neg := true, true
			for _, a := range all {
				pos = pos && f.eval(a) == a[v]
				neg = neg && f.eval(a) == !a[v]
			}
			positive = positive || pos
			negative = negative || neg
		}
		if positive || negative {
			hits++
		}
		assert.Equal(t, positive, b.IsVariable(n))
		assert.Equal(t, negative, b.IsVariableNegated(n))
		assert.Equal(t, positive || negative, b.IsVariableOrNegated(n))
		b.DelRef(n)
	}
	assert.Greater(t, hits, 0)
}

func TestSupportBelowBruteForce(t *testing.T) {
	const varnum = 8
	rnd := rand.New(rand.NewSource(29))
	b := smallBDD(t, varnum)
	all := assignments(varnum)
	for i := 0; i < 30; i++ {
		f := randomFormula(rnd, varnum, 5)
		n := f.build(b)
		var support []int
		for v := 0; v < varnum; v++ {
			if f.dependsOn(v, all) {
				support = append(support, v)
			}
		}
		for highest := 0; highest <= varnum; highest++ {
			res := b.SupportBelow(n, highest)
			var expected []int
			for _, v := range support {
				if v < highest {
					expected = append(expected, v)
				}
			}
			assert.ElementsMatch(t, expected, res.ToSlice(), "bound %d", highest)
		}
		assert.ElementsMatch(t, support, b.Support(n).ToSlice())
		b.DelRef(n)
		require.NoError(t, b.Check())
	}
}

// lexLess compares two assignments, with false smaller than true and variable
// 0 the most significant.
func lexLess(a, b []bool) bool {
	for k := range a {
		if a[k] != b[k] {
			return b[k]
		}
	}
	return false
}

func TestMinimalSolutionsBruteForce(t *testing.T) {
	const varnum = 6
	rnd := rand.New(rand.NewSource(31))
	b := smallBDD(t, varnum)
	all := assignments(varnum)
	for i := 0; i < 40; i++ {
		f := randomFormula(rnd, varnum, 5)
		n := f.build(b)
		var sols [][]bool
		require.NoError(t, b.MinimalSolutions(n, func(sol []bool) error {
			sols = append(sols, append([]bool(nil), sol...))
			return nil
		}))
		for k, s := range sols {
			assert.True(t, f.eval(s))
			if k > 0 {
				assert.True(t, lexLess(sols[k-1], s), "solutions out of order")
			}
		}
		// one solution per path, and every model extends the solution of
		// its path
		paths := 0
		require.NoError(t, b.Allsat(n, func([]int) error {
			paths++
			return nil
		}))
		assert.Len(t, sols, paths)
		for _, a := range all {
			if !f.eval(a) {
				continue
			}
			covered := false
			for _, s := range sols {
				included := true
				for v := range s {
					included = included && (!s[v] || a[v])
				}
				covered = covered || included
			}
			assert.True(t, covered, "model %v", a)
		}
		b.DelRef(n)
	}
}

func TestMinimalSolutions(t *testing.T) {
	b, err := New(3)
	require.NoError(t, err)
	collect := func(n Node) [][]bool {
		var res [][]bool
		require.NoError(t, b.MinimalSolutions(n, func(sol []bool) error {
			res = append(res, append([]bool(nil), sol...))
			return nil
		}))
		return res
	}
	x0, x1, x2 := b.Ithvar(0), b.Ithvar(1), b.Ithvar(2)
	assert.Equal(t, [][]bool{{false, true, false}, {true, false, false}}, collect(b.Or(x0, x1)))
	assert.Equal(t, [][]bool{{false, false, false}}, collect(b.True()))
	assert.Empty(t, collect(b.False()))
	assert.Equal(t, [][]bool{{false, false, false}, {true, false, true}}, collect(b.Imp(x0, x2)))
	assert.Error(t, b.MinimalSolutions(Invalid, func([]bool) error { return nil }))
	// the error of the callback stops the enumeration
	calls := 0
	stop := errors.New("stop")
	err = b.MinimalSolutions(b.Or(x0, x1, x2), func([]bool) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}
