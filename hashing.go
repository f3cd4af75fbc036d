// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd

// Hash functions

const (
	_FNVOFFSET uint64 = 14695981039346656037
	_FNVPRIME  uint64 = 1099511628211
)

// fnvStep folds the 8 bytes of x into the FNV-1a state h.
func fnvStep(h, x uint64) uint64 {
	for i := 0; i < 8; i++ {
		h ^= x & 0xFF
		h *= _FNVPRIME
		x >>= 8
	}
	return h
}

// hashWord is the 64-bit FNV-1a hash of a word.
func hashWord(x uint64) uint64 {
	return fnvStep(_FNVOFFSET, x)
}

// hashWords is the FNV-1a hash of the sequence (a, b).
func hashWords(a, b uint64) uint64 {
	return fnvStep(fnvStep(_FNVOFFSET, a), b)
}

// ************************************************************

// The hash function for nodes is #(level, low, high), computed on the packed
// node word without its mark bit.

func (t *nodetable) nodehash(level, low, high int) int {
	return int(hashWord(nodeWord(level, low, high)) % uint64(len(t.nodes)))
}

func (t *nodetable) ptrhash(n int) int {
	return int(hashWord(wordKey(t.nodes[n])) % uint64(len(t.nodes)))
}
