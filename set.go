// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd

// And returns the logical 'and' of a sequence of nodes. Intermediate results
// are protected during the whole computation.
func (b *BDD) And(n ...Node) Node {
	return b.fold(OPand, True, n)
}

// Or returns the logical 'or' of a sequence of BDDs.
func (b *BDD) Or(n ...Node) Node {
	return b.fold(OPor, False, n)
}

func (b *BDD) fold(op Operator, unit Node, n []Node) (res Node) {
	for _, v := range n {
		if b.checkptr(v) {
			return Invalid
		}
	}
	top := b.protect()
	defer b.release(top, &res)
	for _, v := range n {
		b.pushref(int(v))
	}
	acc := int(unit)
	for k := len(n) - 1; k >= 0; k-- {
		acc = b.pushref(b.apply(op, int(n[k]), acc))
	}
	return Node(acc)
}

// Xor returns the logical 'exclusive or' between two BDDs.
func (b *BDD) Xor(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPxor)
}

// Nand returns the negation of the conjunction of two BDDs.
func (b *BDD) Nand(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPnand)
}

// Imp returns the logical 'implication' between two BDDs.
func (b *BDD) Imp(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPimp)
}

// Equiv returns the logical 'bi-implication' between two BDDs.
func (b *BDD) Equiv(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPbiimp)
}

// True returns the constant true BDD
func (b *BDD) True() Node {
	return True
}

// False returns the constant false BDD
func (b *BDD) False() Node {
	return False
}

// From returns a (constant) Node from a boolean value.
func (b *BDD) From(v bool) Node {
	if v {
		return True
	}
	return False
}
