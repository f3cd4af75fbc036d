// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskLength(t *testing.T) {
	assert.Equal(t, uint64(0), maskLength(0))
	assert.Equal(t, uint64(1), maskLength(1))
	assert.Equal(t, uint64(0xFF), maskLength(8))
	assert.Equal(t, uint64(1<<25-1), maskLength(25))
	assert.Equal(t, ^uint64(0), maskLength(64))
}

func TestFields(t *testing.T) {
	var fieldTests = []struct {
		value        uint64
		bits, offset uint
	}{
		{0, 1, 0},
		{1, 1, 0},
		{12345, 25, 1},
		{1<<25 - 1, 25, 26},
		{8190, 13, 51},
		{3, 2, 62},
	}
	for _, tt := range fieldTests {
		w := setField(^uint64(0), tt.value, tt.bits, tt.offset)
		assert.Equal(t, tt.value, getField(w, tt.bits, tt.offset))
		// other bits are untouched
		mask := maskLength(tt.bits) << tt.offset
		assert.Equal(t, ^mask, w&^mask)
		w = setField(0, tt.value, tt.bits, tt.offset)
		assert.Equal(t, tt.value<<tt.offset, w)
	}
	assert.True(t, fits(1<<13-1, 13))
	assert.False(t, fits(1<<13, 13))
}

func TestBits(t *testing.T) {
	w := setBit(0, 5)
	assert.True(t, getBit(w, 5))
	assert.False(t, getBit(w, 4))
	assert.Equal(t, uint64(0), clearBit(w, 5))
	assert.Equal(t, w, clearBit(w, 6))
}

func TestNodeWord(t *testing.T) {
	w := nodeWord(42, 1234567, 7654321)
	assert.Equal(t, 42, wordLevel(w))
	assert.Equal(t, 1234567, wordLow(w))
	assert.Equal(t, 7654321, wordHigh(w))
	assert.False(t, wordMarked(w))
	m := setBit(w, _MARKOFFSET)
	assert.True(t, wordMarked(m))
	assert.Equal(t, w, wordKey(m))
	assert.Equal(t, hashWord(w), hashWord(wordKey(m)))

	r := withChain(withNext(withCount(0, 17), 99), 1<<25-1)
	assert.Equal(t, 17, refCount(r))
	assert.Equal(t, 99, refNext(r))
	assert.Equal(t, 1<<25-1, refChain(r))
	assert.False(t, refSaturated(r))
	r = withNext(r, 3)
	assert.Equal(t, 3, refNext(r))
	assert.Equal(t, 1<<25-1, refChain(r))
	assert.Equal(t, 17, refCount(r))
}

func TestHash(t *testing.T) {
	assert.NotEqual(t, hashWord(1), hashWord(2))
	assert.NotEqual(t, hashWords(1, 2), hashWords(2, 1))
	assert.Equal(t, hashWords(1, 2), fnvStep(hashWord(1), 2))
}

func TestPrimes(t *testing.T) {
	var primeTests = []struct {
		n, gte, lte int
	}{
		{0, 2, 2},
		{2, 2, 2},
		{4, 5, 3},
		{25, 29, 23},
		{100, 101, 97},
		{1000, 1009, 997},
		{7919, 7919, 7919},
	}
	for _, tt := range primeTests {
		assert.Equal(t, tt.gte, primeGte(tt.n), "primeGte(%d)", tt.n)
		assert.Equal(t, tt.lte, primeLte(tt.n), "primeLte(%d)", tt.n)
	}
	assert.True(t, isPrime(1<<25-39))
	assert.False(t, isPrime(1<<25))
}
