// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd

import (
	"math"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/xerrors"
)

// reduce returns the node with the given level and successors, or the
// common successor when low and high are equal.
func (b *BDD) reduce(level, low, high int) int {
	if low == high {
		return low
	}
	return b.makenode(level, low, high)
}

// Scanset returns the set of variables (levels) found when following the high
// branch of node n. This is the dual of function Makeset. The result is nil
// for constants.
func (b *BDD) Scanset(n Node) []int {
	if b.checkptr(n) || n < 2 {
		return nil
	}
	res := []int{}
	for i := int(n); i > 1; i = b.high(i) {
		res = append(res, b.level(i))
	}
	return res
}

// Makeset returns a node corresponding to the conjunction (the cube) of all the
// variable in varset, in their positive form. It is such that
// Scanset(Makeset(a)) == a, when a is sorted and without duplicates.
func (b *BDD) Makeset(varset []int) (res Node) {
	vars := slices.Clone(varset)
	slices.Sort(vars)
	vars = slices.Compact(vars)
	for _, v := range vars {
		if v < 0 || v >= b.varnum {
			if _DEBUG {
				contract("unknown variable (%d) in call to Makeset", v)
			}
			return Invalid
		}
	}
	top := b.protect()
	defer b.release(top, &res)
	cube := 1
	for k := len(vars) - 1; k >= 0; k-- {
		b.pushref(cube)
		cube = b.makenode(vars[k], 0, cube)
		b.popref(1)
	}
	return Node(cube)
}

// ************************************************************

// Not returns the negation of the expression corresponding to node n. It
// negates a BDD by exchanging all references to the zero-terminal with
// references to the one-terminal and vice versa.
func (b *BDD) Not(n Node) (res Node) {
	if b.checkptr(n) {
		return Invalid
	}
	top := b.protect(int(n))
	defer b.release(top, &res)
	return Node(b.not(int(n)))
}

func (b *BDD) not(n int) int {
	if n < 2 {
		return 1 - n
	}
	res, hash, ok := b.matchnot(n)
	if ok {
		return res
	}
	low := b.pushref(b.not(b.low(n)))
	high := b.pushref(b.not(b.high(n)))
	res = b.makenode(b.level(n), low, high)
	b.popref(2)
	return b.setnot(hash, n, res)
}

// Apply performs all of the basic bdd operations with two operands, such as
// AND, OR etc. Left and right are the operand and opr is the requested
// operation and must be one of the following:
//
//	Identifier    Description            Truth table
//
//	OPand         logical and            [0,0,0,1]
//	OPxor         logical xor            [0,1,1,0]
//	OPor          logical or             [0,1,1,1]
//	OPnand        logical not-and        [1,1,1,0]
//	OPnor         logical not-or         [1,0,0,0]
//	OPimp         implication            [1,1,0,1]
//	OPbiimp       equivalence            [1,0,0,1]
//	OPdiff        set difference         [0,0,1,0]
//	OPless        less than              [0,1,0,0]
//	OPinvimp      reverse implication    [1,0,1,1]
func (b *BDD) Apply(left Node, right Node, op Operator) (res Node) {
	if b.checkptr(left) || b.checkptr(right) {
		return Invalid
	}
	if op < OPand || op > OPinvimp {
		if _DEBUG {
			contract("unauthorized operation (%s) in apply", op)
		}
		return Invalid
	}
	top := b.protect(int(left), int(right))
	defer b.release(top, &res)
	return Node(b.apply(op, int(left), int(right)))
}

// terminal returns the result of op when it can be computed without
// recursion, or -1 otherwise.
func (b *BDD) terminal(op Operator, left, right int) int {
	switch op {
	case OPand:
		switch {
		case left == right:
			return left
		case left == 0 || right == 0:
			return 0
		case left == 1:
			return right
		case right == 1:
			return left
		}
	case OPor:
		switch {
		case left == right:
			return left
		case left == 1 || right == 1:
			return 1
		case left == 0:
			return right
		case right == 0:
			return left
		}
	case OPxor:
		switch {
		case left == right:
			return 0
		case left == 0:
			return right
		case right == 0:
			return left
		case left == 1:
			return b.not(right)
		case right == 1:
			return b.not(left)
		}
	case OPnand:
		switch {
		case left == 0 || right == 0:
			return 1
		case left == 1:
			return b.not(right)
		case right == 1 || left == right:
			return b.not(left)
		}
	case OPnor:
		switch {
		case left == 1 || right == 1:
			return 0
		case left == 0:
			return b.not(right)
		case right == 0 || left == right:
			return b.not(left)
		}
	case OPimp:
		switch {
		case left == 0 || right == 1 || left == right:
			return 1
		case left == 1:
			return right
		case right == 0:
			return b.not(left)
		}
	case OPbiimp:
		switch {
		case left == right:
			return 1
		case left == 1:
			return right
		case right == 1:
			return left
		case left == 0:
			return b.not(right)
		case right == 0:
			return b.not(left)
		}
	case OPdiff:
		switch {
		case left == right || left == 0 || right == 1:
			return 0
		case right == 0:
			return left
		case left == 1:
			return b.not(right)
		}
	case OPless:
		switch {
		case left == right || right == 0 || left == 1:
			return 0
		case left == 0:
			return right
		case right == 1:
			return b.not(left)
		}
	case OPinvimp:
		switch {
		case right == 0 || left == 1 || left == right:
			return 1
		case right == 1:
			return left
		case left == 0:
			return b.not(right)
		}
	}
	if left < 2 && right < 2 {
		return opres[op][left][right]
	}
	return -1
}

func (b *BDD) apply(op Operator, left, right int) int {
	if res := b.terminal(op, left, right); res >= 0 {
		return res
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	// we put the operand with the smallest variable first, then the smallest
	// index, to share cache entries between (a op b) and (b op a)
	if op.commutative() && (leftlvl > rightlvl || (leftlvl == rightlvl && left > right)) {
		left, right = right, left
		leftlvl, rightlvl = rightlvl, leftlvl
	}
	res, hash, ok := b.matchapply(op, left, right)
	if ok {
		return res
	}
	var level, low, high int
	switch {
	case leftlvl == rightlvl:
		level = leftlvl
		low = b.pushref(b.apply(op, b.low(left), b.low(right)))
		high = b.pushref(b.apply(op, b.high(left), b.high(right)))
	case leftlvl < rightlvl:
		level = leftlvl
		low = b.pushref(b.apply(op, b.low(left), right))
		high = b.pushref(b.apply(op, b.high(left), right))
	default:
		level = rightlvl
		low = b.pushref(b.apply(op, left, b.low(right)))
		high = b.pushref(b.apply(op, left, b.high(right)))
	}
	res = b.reduce(level, low, high)
	b.popref(2)
	return b.setapply(hash, op, left, right, res)
}

// ************************************************************

// Ite, short for if-then-else operator, computes the BDD for the expression [(f
// /\ g) \/ (not f /\ h)] more efficiently than doing the three operations
// separately.
func (b *BDD) Ite(f, g, h Node) (res Node) {
	if b.checkptr(f) || b.checkptr(g) || b.checkptr(h) {
		return Invalid
	}
	top := b.protect(int(f), int(g), int(h))
	defer b.release(top, &res)
	return Node(b.ite(int(f), int(g), int(h)))
}

// itelow returns n if its level p is strictly higher than q or r, otherwise
// it returns the low successor of n. This is used in function ite to know
// which node to follow: we always follow the smallest(s) nodes.
func (b *BDD) itelow(p, q, r, n int) int {
	if (p > q) || (p > r) {
		return n
	}
	return b.low(n)
}

func (b *BDD) itehigh(p, q, r, n int) int {
	if (p > q) || (p > r) {
		return n
	}
	return b.high(n)
}

// min3 returns the smallest value between p, q and r. This is used in function
// ite to compute the smallest level.
func min3(p, q, r int) int {
	if p <= q {
		if p <= r { // p <= q && p <= r
			return p
		}
		return r // r < p <= q
	}
	if q <= r { // q < p && q <= r
		return q
	}
	return r // r < q < p
}

func (b *BDD) ite(f, g, h int) int {
	switch {
	case f == 1:
		return g
	case f == 0:
		return h
	case g == h:
		return g
	case g == 1 && h == 0:
		return f
	case g == 0 && h == 1:
		return b.not(f)
	case g == 1 || f == g:
		return b.apply(OPor, f, h)
	case g == 0:
		return b.apply(OPless, f, h)
	case h == 0 || f == h:
		return b.apply(OPand, f, g)
	case h == 1:
		return b.apply(OPimp, f, g)
	}
	res, hash, ok := b.matchite(f, g, h)
	if ok {
		return res
	}
	p := b.level(f)
	q := b.level(g)
	r := b.level(h)
	low := b.pushref(b.ite(b.itelow(p, q, r, f), b.itelow(q, p, r, g), b.itelow(r, p, q, h)))
	high := b.pushref(b.ite(b.itehigh(p, q, r, f), b.itehigh(q, p, r, g), b.itehigh(r, p, q, h)))
	res = b.reduce(min3(p, q, r), low, high)
	b.popref(2)
	return b.setite(hash, f, g, h, res)
}

// ************************************************************

// Implies reports whether left implies right, that is whether (left & !right)
// is False, without building any node.
func (b *BDD) Implies(left, right Node) bool {
	if b.checkptr(left) || b.checkptr(right) {
		return false
	}
	return b.implies(int(left), int(right))
}

func (b *BDD) implies(left, right int) bool {
	switch {
	case left == 0 || right == 1 || left == right:
		return true
	case left == 1 || right == 0:
		return false
	}
	if res, _, ok := b.matchapply(OPimp, left, right); ok {
		return res == 1
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	switch {
	case leftlvl == rightlvl:
		return b.implies(b.low(left), b.low(right)) && b.implies(b.high(left), b.high(right))
	case leftlvl < rightlvl:
		return b.implies(b.low(left), right) && b.implies(b.high(left), right)
	default:
		return b.implies(left, b.low(right)) && b.implies(left, b.high(right))
	}
}

// Equal tests equivalence between nodes. Since nodes are canonical, this is
// an equality test on the indices.
func (b *BDD) Equal(left, right Node) bool {
	return left == right && left != Invalid
}

// ************************************************************

// Evaluate returns the value of the function n for the given assignment,
// where assignment[i] is the value of variable i. Variables outside of the
// slice are false.
func (b *BDD) Evaluate(n Node, assignment []bool) bool {
	if b.checkptr(n) {
		return false
	}
	k := int(n)
	for k > 1 {
		if v := b.level(k); v < len(assignment) && assignment[v] {
			k = b.high(k)
		} else {
			k = b.low(k)
		}
	}
	return k == 1
}

// Satcount computes the number of satisfying variable assignments for the
// function denoted by n, over all the Varnum variables of b. The result is
// zero if there is an error. Intermediate results are kept in the
// satisfaction region of the cache.
func (b *BDD) Satcount(n Node) float64 {
	if b.checkptr(n) {
		return 0
	}
	switch n {
	case False:
		return 0
	case True:
		return math.Ldexp(1, b.varnum)
	}
	k := int(n)
	return math.Ldexp(b.satcount(k), b.level(k))
}

// satcount returns the number of satisfying assignments of n over the
// variables with an index at least equal to the level of n.
func (b *BDD) satcount(n int) float64 {
	res, hash, ok := b.matchsatcount(n)
	if ok {
		return res
	}
	level := b.level(n)
	res = b.satcountEdge(level, b.low(n)) + b.satcountEdge(level, b.high(n))
	return b.setsatcount(hash, n, res)
}

// satcountEdge returns the number of assignments contributed by successor s
// of a node with the given level, taking into account the variables skipped
// along the edge.
func (b *BDD) satcountEdge(level, s int) float64 {
	switch s {
	case 0:
		return 0
	case 1:
		return math.Ldexp(1, b.varnum-level-1)
	}
	return math.Ldexp(b.satcount(s), b.level(s)-level-1)
}

// Allsat Iterates through all legal variable assignments for n and calls the
// function f on each of them. We pass an int slice of length varnum to f where
// each entry is either  0 if the variable is false, 1 if it is true, and -1 if
// it is a don't care. We stop and return an error if f returns an error at some
// point. The slice is reused between calls.
//
// The following is an example of a callback handler that counts the number of
// possible assignments (such that we do not count don't care twice):
//
//	acc := new(int)
//	b.Allsat(n, func(varset []int) error {
//		*acc++
//		return nil
//	})
func (b *BDD) Allsat(n Node, f func([]int) error) error {
	if b.checkptr(n) {
		return xerrors.Errorf("wrong node in call to Allsat (%d)", n)
	}
	prof := make([]int, b.varnum)
	for k := range prof {
		prof[k] = -1
	}
	// the function does not create new nodes, so we do not need to take care of
	// possible resizing
	return b.allsat(int(n), prof, f)
}

func (b *BDD) allsat(n int, prof []int, f func([]int) error) error {
	if n == 1 {
		return f(prof)
	}
	if n == 0 {
		return nil
	}
	level := b.level(n)
	for k, s := range [2]int{b.low(n), b.high(n)} {
		if s == 0 {
			continue
		}
		prof[level] = k
		for v := min(b.level(s), b.varnum) - 1; v > level; v-- {
			prof[v] = -1
		}
		if err := b.allsat(s, prof, f); err != nil {
			return err
		}
	}
	return nil
}

// MinimalSolutions calls f on the assignment associated with every path from
// n to True, in ascending lexicographic order (false before true, variable 0
// first). The variables that are not on a path are false, so each assignment
// is the smallest one following its path. We pass a slice of length varnum,
// reused between calls, and stop with the error returned by f, if any.
func (b *BDD) MinimalSolutions(n Node, f func([]bool) error) error {
	if b.checkptr(n) {
		return xerrors.Errorf("wrong node in call to MinimalSolutions (%d)", n)
	}
	return b.minimal(int(n), make([]bool, b.varnum), f)
}

// minimal expects every entry of sol at a level greater or equal to the level
// of n to be false, and leaves them so.
func (b *BDD) minimal(n int, sol []bool, f func([]bool) error) error {
	switch n {
	case 0:
		return nil
	case 1:
		return f(sol)
	}
	level := b.level(n)
	if low := b.low(n); low != 0 {
		if err := b.minimal(low, sol, f); err != nil {
			return err
		}
	}
	if high := b.high(n); high != 0 {
		sol[level] = true
		err := b.minimal(high, sol, f)
		sol[level] = false
		return err
	}
	return nil
}

// Support returns the set of variables on which the function n depends.
func (b *BDD) Support(n Node) mapset.Set[int] {
	return b.SupportBelow(n, b.varnum)
}

// SupportBelow returns the variables of the support of n that are strictly
// smaller than highest. The traversal does not visit the nodes labeled with a
// variable greater or equal to highest.
func (b *BDD) SupportBelow(n Node, highest int) mapset.Set[int] {
	res := mapset.NewThreadUnsafeSet[int]()
	if highest < 0 || highest > b.varnum {
		if _DEBUG {
			contract("bound (%d) out of range in call to SupportBelow", highest)
		}
		return res
	}
	if b.checkptr(n) || n < 2 || b.level(int(n)) >= highest {
		return res
	}
	k := int(n)
	stack := append(b.markstack[:0], k)
	b.marknode(k)
	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		res.Add(b.level(m))
		for _, s := range [2]int{b.low(m), b.high(m)} {
			if s >= 2 && !b.ismarked(s) && b.level(s) < highest {
				b.marknode(s)
				stack = append(stack, s)
			}
		}
	}
	b.markstack = stack[:0]
	b.unmarkTree(k)
	return res
}

// NodeCount returns the number of nodes reachable from n, constants
// excluded.
func (b *BDD) NodeCount(n Node) int {
	if b.checkptr(n) {
		return 0
	}
	res := b.markcount(int(n))
	b.unmarkTree(int(n))
	return res
}
