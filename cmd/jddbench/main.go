// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command jddbench runs classic BDD benchmarks, like the N-queens problem or
// Milner's scheduler, on top of the jdd package.
package main

func main() {
	execute()
}
