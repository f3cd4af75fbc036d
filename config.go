// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd

import "golang.org/x/xerrors"

// Region identifies one of the five regions of the operation cache.
type Region int

const (
	UnaryRegion        Region = iota // negation
	BinaryRegion                     // Apply operators and quantification
	TernaryRegion                    // if-then-else
	SatisfactionRegion               // satisfying assignments count
	SubstitutionRegion               // compose and restrict
	nregions
)

var regionnames = [nregions]string{
	UnaryRegion:        "unary",
	BinaryRegion:       "binary",
	TernaryRegion:      "ternary",
	SatisfactionRegion: "satisfaction",
	SubstitutionRegion: "substitution",
}

func (r Region) String() string {
	if r < 0 || r >= nregions {
		return "unknown"
	}
	return regionnames[r]
}

// configs is used to store the values of different parameters of the BDD
type configs struct {
	varnum       int           // number of BDD variables created by New
	nodesize     int           // initial number of nodes in the table
	maxnodesize  int           // maximum total number of nodes (0 if no limit)
	mingrowth    int           // nodes added by a resize of a small table
	maxgrowth    int           // nodes added by a resize of a big table
	smalltable   int           // size up to which we grow by mingrowth
	bigtable     int           // size from which we grow by maxgrowth
	minfreenodes int           // minimal ratio (%) of free nodes after GC before resizing
	minfreecount int           // minimal number of free nodes after GC before resizing
	cacheminimum int           // minimal number of buckets in a cache region
	divider      [nregions]int // ratio between the table size and the number of buckets
	bins         [nregions]int // number of entries in a bucket
}

const (
	_DEFAULTNODESIZE    = 1000
	_DEFAULTMINGROWTH   = 50000
	_DEFAULTMAXGROWTH   = 500000
	_DEFAULTSMALLTABLE  = 50000
	_DEFAULTBIGTABLE    = 500000
	_MINFREENODES       = 20
	_MINFREECOUNT       = 1000
	_DEFAULTCACHEMIN    = 32
	_DEFAULTCACHEBINS   = 2
	_DEFAULTCACHERATIO  = 32
	_SATISFACTIONRATIO  = 64
	_SUBSTITUTIONRATIO  = 32
	_MINIMALTABLEGROWTH = 2
)

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.nodesize = _DEFAULTNODESIZE
	c.mingrowth = _DEFAULTMINGROWTH
	c.maxgrowth = _DEFAULTMAXGROWTH
	c.smalltable = _DEFAULTSMALLTABLE
	c.bigtable = _DEFAULTBIGTABLE
	c.minfreenodes = _MINFREENODES
	c.minfreecount = _MINFREECOUNT
	c.cacheminimum = _DEFAULTCACHEMIN
	for r := Region(0); r < nregions; r++ {
		c.divider[r] = _DEFAULTCACHERATIO
		c.bins[r] = _DEFAULTCACHEBINS
	}
	c.divider[SatisfactionRegion] = _SATISFACTIONRATIO
	c.divider[SubstitutionRegion] = _SUBSTITUTIONRATIO
	return c
}

// check returns an error wrapping ErrConfig if the configuration cannot be
// used to build a BDD.
func (c *configs) check() error {
	switch {
	case c.varnum < 0 || c.varnum > _MAXVAR:
		return xerrors.Errorf("bad number of variables (%d): %w", c.varnum, ErrConfig)
	case c.nodesize < 2 || c.nodesize > _MAXID:
		return xerrors.Errorf("bad initial node table size (%d): %w", c.nodesize, ErrConfig)
	case c.maxnodesize < 0 || c.maxnodesize > _MAXID:
		return xerrors.Errorf("bad maximal node table size (%d): %w", c.maxnodesize, ErrConfig)
	case c.maxnodesize > 0 && c.maxnodesize < c.nodesize:
		return xerrors.Errorf("maximal size (%d) smaller than initial size (%d): %w", c.maxnodesize, c.nodesize, ErrConfig)
	case c.mingrowth < _MINIMALTABLEGROWTH || c.maxgrowth < c.mingrowth:
		return xerrors.Errorf("bad growth bounds [%d, %d]: %w", c.mingrowth, c.maxgrowth, ErrConfig)
	case c.smalltable < 0 || c.bigtable < c.smalltable:
		return xerrors.Errorf("bad table thresholds [%d, %d]: %w", c.smalltable, c.bigtable, ErrConfig)
	case c.minfreenodes < 0 || c.minfreenodes > 100:
		return xerrors.Errorf("bad ratio of free nodes (%d%%): %w", c.minfreenodes, ErrConfig)
	case c.minfreecount < 0:
		return xerrors.Errorf("bad count of free nodes (%d): %w", c.minfreecount, ErrConfig)
	case c.cacheminimum < 1:
		return xerrors.Errorf("bad minimal cache size (%d): %w", c.cacheminimum, ErrConfig)
	}
	for r := Region(0); r < nregions; r++ {
		if c.divider[r] < 1 || c.bins[r] < 1 {
			return xerrors.Errorf("bad divider (%d) or bins (%d) for %s region: %w", c.divider[r], c.bins[r], r, ErrConfig)
		}
	}
	return nil
}

// Option is a configuration option passed to New.
type Option func(*configs)

// Nodesize is a configuration option (function). Used as a parameter in New it
// sets a preferred initial size for the node table. The size of the BDD can
// increase during computation. The actual size is the smallest prime at least
// as large as size, and always large enough to hold the variables requested
// in the call to New.
func Nodesize(size int) Option {
	return func(c *configs) {
		c.nodesize = size
	}
}

// Maxnodesize is a configuration option (function). Used as a parameter in New
// it sets a limit to the number of nodes in the BDD. An operation trying to
// raise the number of nodes above this limit will return Invalid and set an
// error wrapping ErrExhausted. The default value (0) means that the only limit
// is the size of the id space (2^25 nodes).
func Maxnodesize(size int) Option {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Mingrowth is a configuration option (function). It sets the number of
// nodes added when resizing a table smaller than the Smalltable threshold.
func Mingrowth(size int) Option {
	return func(c *configs) {
		c.mingrowth = size
	}
}

// Maxgrowth is a configuration option (function). It sets the number of
// nodes added when resizing a table larger than the Bigtable threshold.
// Between the two thresholds the increase is interpolated linearly between
// Mingrowth and Maxgrowth.
func Maxgrowth(size int) Option {
	return func(c *configs) {
		c.maxgrowth = size
	}
}

// Smalltable is a configuration option (function). See Mingrowth.
func Smalltable(size int) Option {
	return func(c *configs) {
		c.smalltable = size
	}
}

// Bigtable is a configuration option (function). See Maxgrowth.
func Bigtable(size int) Option {
	return func(c *configs) {
		c.bigtable = size
	}
}

// Minfreenodes is a configuration option (function). Used as a parameter in New
// it sets the ratio of free nodes (%) that has to be left after a Garbage
// Collection event. When there is not enough free nodes in the BDD, we try
// reclaiming unused nodes. We resize the table only if the number of free
// nodes is below both this ratio and the count given by Minfreecount. The
// default value is 20%.
func Minfreenodes(ratio int) Option {
	return func(c *configs) {
		c.minfreenodes = ratio
	}
}

// Minfreecount is a configuration option (function). See Minfreenodes. The
// default value is 1000 nodes.
func Minfreecount(count int) Option {
	return func(c *configs) {
		c.minfreecount = count
	}
}

// Cachedivider is a configuration option (function). It sets the ratio
// between the size of the node table and the number of buckets in cache
// region r.
func Cachedivider(r Region, divider int) Option {
	return func(c *configs) {
		if r >= 0 && r < nregions {
			c.divider[r] = divider
		}
	}
}

// Cachebins is a configuration option (function). It sets the number of
// entries in each bucket of cache region r.
func Cachebins(r Region, bins int) Option {
	return func(c *configs) {
		if r >= 0 && r < nregions {
			c.bins[r] = bins
		}
	}
}

// Cacheminimum is a configuration option (function). It sets the minimal
// number of buckets in every cache region.
func Cacheminimum(size int) Option {
	return func(c *configs) {
		c.cacheminimum = size
	}
}
