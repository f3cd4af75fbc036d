// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package jdd

import (
	"fmt"
	"math"
)

// cacheEntry is a unit of information stored in a cache region. The key is
// never null for a used entry since it always contains a non-constant node.
// The result is a node index or, in the satisfaction region, the bits of a
// float64.
type cacheEntry struct {
	key    uint64
	extra  uint64
	result uint64
}

// region is a flat slice of buckets, each one holding bins entries ordered
// from the most to the least recently used.
type region struct {
	entries []cacheEntry
	keys    int // number of buckets
	bins    int
	divider int
	minimum int
	cacheStat
}

// cacheStat stores status information about cache usage
type cacheStat struct {
	hit          int // entries found in the region
	miss         int // entries not found in the region
	puts         int // entries stored in the region
	invalidation int // number of times the region was cleared
}

// reallocate clears the region and adapts its size to a table with size
// nodes.
func (r *region) reallocate(size int) {
	keys := size / r.divider
	if keys < r.minimum {
		keys = r.minimum
	}
	keys = primeGte(keys)
	r.invalidation++
	if keys == r.keys {
		clear(r.entries)
		return
	}
	r.keys = keys
	r.entries = make([]cacheEntry, keys*r.bins)
}

// lookup returns the result associated with (key, extra), if any, together
// with the bucket of the key so that a following call to put does not need to
// hash it again.
func (r *region) lookup(key, extra uint64) (uint64, int, bool) {
	hash := int(hashWords(key, extra) % uint64(r.keys))
	bucket := r.entries[hash*r.bins : (hash+1)*r.bins]
	for k := range bucket {
		e := bucket[k]
		if e.key == 0 {
			break
		}
		if e.key == key && e.extra == extra {
			if k > 0 {
				copy(bucket[1:k+1], bucket[:k])
				bucket[0] = e
			}
			r.hit++
			return e.result, hash, true
		}
	}
	r.miss++
	return 0, hash, false
}

// put stores a result at the front of the bucket, evicting the least recently
// used entry if the bucket is full. The bucket may come from a lookup made
// before the region was reallocated; it is then only a hint.
func (r *region) put(hash int, key, extra, result uint64) {
	if hash >= r.keys {
		hash %= r.keys
	}
	bucket := r.entries[hash*r.bins : (hash+1)*r.bins]
	copy(bucket[1:], bucket[:len(bucket)-1])
	bucket[0] = cacheEntry{key: key, extra: extra, result: result}
	r.puts++
}

// load returns the ratio of used entries in the region.
func (r *region) load() float64 {
	used := 0
	for _, e := range r.entries {
		if e.key != 0 {
			used++
		}
	}
	return float64(used) / float64(len(r.entries))
}

// ************************************************************

// cache groups the five regions used to memoize operations.
type cache struct {
	regions [nregions]region
	replacements
}

func (c *cache) cacheinit(cfg *configs, size int) {
	for k := range c.regions {
		c.regions[k] = region{
			bins:    cfg.bins[k],
			divider: cfg.divider[k],
			minimum: cfg.cacheminimum,
		}
		c.regions[k].reallocate(size)
	}
	c.replacements.reset()
}

// cachereset clears all the regions. It is called after every garbage
// collection or resize of the node table with the new size of the table.
func (c *cache) cachereset(size int) {
	for k := range c.regions {
		c.regions[k].reallocate(size)
	}
	c.replacements.reset()
}

// ************************************************************

// Key layouts. Node indices take _IDBITS bits and operator tags are stored
// above the operands.
//
//	unary:        <OP><NODE>
//	binary:       <OP><RIGHT><LEFT>
//	ternary:      <OP><G><F>           extra: H (or the cube for andexist)
//	satisfaction: <NODE>
//	substitution: <ID><NODE>

const (
	_UNARYOPOFFSET  = _IDBITS
	_BINARYOPOFFSET = 2 * _IDBITS
)

const (
	opnot uint64 = iota + 1
	opite
	opandexist
)

func unaryKey(op uint64, n int) uint64 {
	return op<<_UNARYOPOFFSET | uint64(n)
}

func binaryKey(op Operator, left, right int) uint64 {
	return uint64(op+1)<<_BINARYOPOFFSET | uint64(right)<<_IDBITS | uint64(left)
}

func ternaryKey(op uint64, f, g int) uint64 {
	return op<<_BINARYOPOFFSET | uint64(g)<<_IDBITS | uint64(f)
}

func (b *BDD) matchnot(n int) (int, int, bool) {
	res, hash, ok := b.regions[UnaryRegion].lookup(unaryKey(opnot, n), 0)
	return int(res), hash, ok
}

func (b *BDD) setnot(hash, n, res int) int {
	b.regions[UnaryRegion].put(hash, unaryKey(opnot, n), 0, uint64(res))
	return res
}

func (b *BDD) matchapply(op Operator, left, right int) (int, int, bool) {
	res, hash, ok := b.regions[BinaryRegion].lookup(binaryKey(op, left, right), 0)
	return int(res), hash, ok
}

func (b *BDD) setapply(hash int, op Operator, left, right, res int) int {
	b.regions[BinaryRegion].put(hash, binaryKey(op, left, right), 0, uint64(res))
	return res
}

func (b *BDD) matchite(f, g, h int) (int, int, bool) {
	res, hash, ok := b.regions[TernaryRegion].lookup(ternaryKey(opite, f, g), uint64(h))
	return int(res), hash, ok
}

func (b *BDD) setite(hash, f, g, h, res int) int {
	b.regions[TernaryRegion].put(hash, ternaryKey(opite, f, g), uint64(h), uint64(res))
	return res
}

// Existential quantification uses the binary region with its own operator
// tag, the second operand being the cube of quantified variables.

func (b *BDD) matchexist(n, cube int) (int, int, bool) {
	return b.matchapply(opexist, n, cube)
}

func (b *BDD) setexist(hash, n, cube, res int) int {
	return b.setapply(hash, opexist, n, cube, res)
}

func (b *BDD) matchandexist(left, right, cube int) (int, int, bool) {
	res, hash, ok := b.regions[TernaryRegion].lookup(ternaryKey(opandexist, left, right), uint64(cube))
	return int(res), hash, ok
}

func (b *BDD) setandexist(hash, left, right, cube, res int) int {
	b.regions[TernaryRegion].put(hash, ternaryKey(opandexist, left, right), uint64(cube), uint64(res))
	return res
}

func (b *BDD) matchsatcount(n int) (float64, int, bool) {
	res, hash, ok := b.regions[SatisfactionRegion].lookup(uint64(n), 0)
	return math.Float64frombits(res), hash, ok
}

func (b *BDD) setsatcount(hash, n int, res float64) float64 {
	b.regions[SatisfactionRegion].put(hash, uint64(n), 0, math.Float64bits(res))
	return res
}

func (b *BDD) matchreplace(id uint64, n int) (int, int, bool) {
	res, hash, ok := b.regions[SubstitutionRegion].lookup(id<<_IDBITS|uint64(n), 0)
	return int(res), hash, ok
}

func (b *BDD) setreplace(hash int, id uint64, n, res int) int {
	b.regions[SubstitutionRegion].put(hash, id<<_IDBITS|uint64(n), 0, uint64(res))
	return res
}

// ************************************************************

// String returns a description of the usage of a cache region.
func (c cacheStat) String() string {
	res := fmt.Sprintf("Hits:          %d\n", c.hit)
	res += fmt.Sprintf("Miss:          %d\n", c.miss)
	res += fmt.Sprintf("Puts:          %d\n", c.puts)
	res += fmt.Sprintf("Invalidations: %d", c.invalidation)
	return res
}
