// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package jdd defines a concrete type for Binary Decision Diagrams (BDD), a data
structure used to efficiently represent Boolean functions over a set of
variables or, equivalently, sets of Boolean vectors.

# Basics

Each BDD starts with a number of variables, declared when it is initialized
(using the method New), and can be extended with the method Variable. Each
variable is represented by an (integer) index, called a level, and variables
are ordered by their index.

Most operations over BDD return a Node; that is the index of a "vertex" in the
node table of the BDD, that stores a variable level and the indices of the low
and high branch of the vertex. The indices 1 and 0 are reserved for the
constant functions True and False. Nodes are canonical: two functions are equal
if and only if they are the same Node.

# Memory management

Nodes are stored in a table of packed 64-bit words and reclaimed by a
mark-and-sweep garbage collector that runs when the table is full, before
trying to grow it. A node survives a collection only if it is reachable from a
node with a positive reference count (see AddRef and DelRef) or from the
operands and intermediate results of the operation in progress. Hence a Node
returned by an operation must be referenced before the next call to an
operation that may build new nodes, if it is used afterward.

	acc := b.AddRef(b.True())
	for _, x := range xs {
		acc = b.UpdateWith(b.And(acc, x), acc)
	}

Results of the recursive operations are memoized in a cache divided into five
regions (unary, binary, ternary, satisfaction count and substitution). The
cache is cleared whenever the node table is collected or resized.

# Errors

An operation fails only when the node table cannot provide a new node, either
because of the limit set with Maxnodesize or because the id space is full. In
this case it returns Invalid and records an error wrapping ErrExhausted (see
Err). Calling an operation with a stale node is a programming error that is
only detected when compiling with the build tag `debug`, in which case the
operation panics with a *ContractViolation. The `debug` tag also enables the
logging of collections and resizes, and consistency checks of the node table
after each one of them.

A BDD is not safe for concurrent use.
*/
package jdd
