// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd

// Every per-node field is stored in one of two uint64 words. All packing and
// unpacking goes through the helpers in this file.
//
//	node word:      <VAR 13><HIGH 25><LOW 25><MARK 1>
//	reference word: <CHAIN 25><NEXT 25><REF 13><SAT 1>

const (
	_IDBITS  = 25 // width of a node id
	_VARBITS = 13 // width of a variable index
	_REFBITS = 13 // width of the reference counter

	_MARKOFFSET = 0
	_LOWOFFSET  = 1
	_HIGHOFFSET = _LOWOFFSET + _IDBITS
	_VAROFFSET  = _HIGHOFFSET + _IDBITS

	_SATOFFSET   = 0
	_REFOFFSET   = 1
	_NEXTOFFSET  = _REFOFFSET + _REFBITS
	_CHAINOFFSET = _NEXTOFFSET + _IDBITS
)

const (
	// _MAXID is the largest number of slots the node table can address.
	_MAXID = 1 << _IDBITS
	// _INVALIDVAR is the variable stored in free slots and in the two
	// terminals. It is bigger than any real variable index.
	_INVALIDVAR = 1<<_VARBITS - 1
	// _MAXVAR is the maximal number of variables.
	_MAXVAR = _INVALIDVAR
	// _MAXREFCOUNT is the largest value of the reference counter before a node
	// becomes saturated.
	_MAXREFCOUNT = 1<<_REFBITS - 1
)

// maskLength returns a word with the n lowest bits set.
func maskLength(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return 1<<n - 1
}

// getField extracts a field of width bits starting at offset.
func getField(word uint64, bits, offset uint) uint64 {
	return (word >> offset) & maskLength(bits)
}

// setField returns word with the field of width bits at offset replaced by
// value. Extra bits in value are an error in debug mode.
func setField(word, value uint64, bits, offset uint) uint64 {
	if _DEBUG && !fits(value, bits) {
		contract("value %d does not fit in %d bits", value, bits)
	}
	mask := maskLength(bits) << offset
	return (word &^ mask) | ((value << offset) & mask)
}

// fits reports whether value can be stored in a field of width bits.
func fits(value uint64, bits uint) bool {
	return value&^maskLength(bits) == 0
}

func getBit(word uint64, pos uint) bool {
	return word&(1<<pos) != 0
}

func setBit(word uint64, pos uint) uint64 {
	return word | 1<<pos
}

func clearBit(word uint64, pos uint) uint64 {
	return word &^ (1 << pos)
}

// ************************************************************

// nodeWord packs a (variable, low, high) triple with a cleared mark bit.
func nodeWord(level, low, high int) uint64 {
	w := setField(0, uint64(low), _IDBITS, _LOWOFFSET)
	w = setField(w, uint64(high), _IDBITS, _HIGHOFFSET)
	return setField(w, uint64(level), _VARBITS, _VAROFFSET)
}

func wordLevel(w uint64) int { return int(getField(w, _VARBITS, _VAROFFSET)) }
func wordLow(w uint64) int   { return int(getField(w, _IDBITS, _LOWOFFSET)) }
func wordHigh(w uint64) int  { return int(getField(w, _IDBITS, _HIGHOFFSET)) }
func wordMarked(w uint64) bool {
	return getBit(w, _MARKOFFSET)
}

// wordKey is the part of a node word that identifies its triple.
func wordKey(w uint64) uint64 {
	return clearBit(w, _MARKOFFSET)
}

func refNext(r uint64) int  { return int(getField(r, _IDBITS, _NEXTOFFSET)) }
func refChain(r uint64) int { return int(getField(r, _IDBITS, _CHAINOFFSET)) }
func refCount(r uint64) int { return int(getField(r, _REFBITS, _REFOFFSET)) }
func refSaturated(r uint64) bool {
	return getBit(r, _SATOFFSET)
}

func withNext(r uint64, next int) uint64 {
	return setField(r, uint64(next), _IDBITS, _NEXTOFFSET)
}

func withChain(r uint64, start int) uint64 {
	return setField(r, uint64(start), _IDBITS, _CHAINOFFSET)
}

func withCount(r uint64, count int) uint64 {
	return setField(r, uint64(count), _REFBITS, _REFOFFSET)
}
