// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd

// Exist returns the existential quantification of n for the variables in
// varset, where varset is a node built with a method such as Makeset.
func (b *BDD) Exist(n, varset Node) (res Node) {
	if b.checkptr(n) || b.checkptr(varset) {
		return Invalid
	}
	if varset < 2 { // we have an empty set or a constant
		return n
	}
	top := b.protect(int(n), int(varset))
	defer b.release(top, &res)
	return Node(b.exist(int(n), int(varset)))
}

func (b *BDD) exist(n, cube int) int {
	if n < 2 {
		return n
	}
	level := b.level(n)
	for cube > 1 && b.level(cube) < level {
		cube = b.high(cube)
	}
	if cube < 2 {
		return n
	}
	res, hash, ok := b.matchexist(n, cube)
	if ok {
		return res
	}
	if b.level(cube) == level {
		next := b.high(cube)
		low := b.pushref(b.exist(b.low(n), next))
		if low == 1 {
			b.popref(1)
			return b.setexist(hash, n, cube, 1)
		}
		high := b.pushref(b.exist(b.high(n), next))
		res = b.apply(OPor, low, high)
		b.popref(2)
		return b.setexist(hash, n, cube, res)
	}
	low := b.pushref(b.exist(b.low(n), cube))
	high := b.pushref(b.exist(b.high(n), cube))
	res = b.reduce(level, low, high)
	b.popref(2)
	return b.setexist(hash, n, cube, res)
}

// AndExist returns the "relational composition" of two nodes with respect to
// varset, meaning the result of (Exists varset . left & right). This is
// computed in a single pass, without building the conjunction.
func (b *BDD) AndExist(varset, left, right Node) (res Node) {
	if b.checkptr(varset) || b.checkptr(left) || b.checkptr(right) {
		return Invalid
	}
	top := b.protect(int(varset), int(left), int(right))
	defer b.release(top, &res)
	if varset < 2 {
		return Node(b.apply(OPand, int(left), int(right)))
	}
	return Node(b.andexist(int(left), int(right), int(varset)))
}

func (b *BDD) andexist(left, right, cube int) int {
	switch {
	case left == 0 || right == 0:
		return 0
	case left == right || right == 1:
		return b.exist(left, cube)
	case left == 1:
		return b.exist(right, cube)
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	if leftlvl > rightlvl || (leftlvl == rightlvl && left > right) {
		left, right = right, left
		leftlvl, rightlvl = rightlvl, leftlvl
	}
	level := leftlvl
	for cube > 1 && b.level(cube) < level {
		cube = b.high(cube)
	}
	if cube < 2 {
		return b.apply(OPand, left, right)
	}
	res, hash, ok := b.matchandexist(left, right, cube)
	if ok {
		return res
	}
	l0, l1 := b.low(left), b.high(left)
	r0, r1 := right, right
	if rightlvl == level {
		r0, r1 = b.low(right), b.high(right)
	}
	if b.level(cube) == level {
		next := b.high(cube)
		low := b.pushref(b.andexist(l0, r0, next))
		if low == 1 {
			b.popref(1)
			return b.setandexist(hash, left, right, cube, 1)
		}
		high := b.pushref(b.andexist(l1, r1, next))
		res = b.apply(OPor, low, high)
		b.popref(2)
		return b.setandexist(hash, left, right, cube, res)
	}
	low := b.pushref(b.andexist(l0, r0, cube))
	high := b.pushref(b.andexist(l1, r1, cube))
	res = b.reduce(level, low, high)
	b.popref(2)
	return b.setandexist(hash, left, right, cube, res)
}
