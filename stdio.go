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
	"io"
	"slices"
	"strings"
	"text/tabwriter"
)

// stats returns information about the node table
func (b *BDD) stats() string {
	size := b.size()
	res := fmt.Sprintf("Varnum:     %d\n", b.varnum)
	res += fmt.Sprintf("Allocated:  %d\n", size)
	res += fmt.Sprintf("Produced:   %d\n", b.produced)
	r := (float64(b.freenum) / float64(size)) * 100
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", b.freenum, r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", size-b.freenum, (100.0 - r))
	res += fmt.Sprintf("# of GC:    %d\n", b.collections)
	res += fmt.Sprintf("# of grow:  %d", b.resizes)
	return res
}

func (b *BDD) uniquestats() string {
	res := fmt.Sprintf("Unique Access:  %d\n", b.uniqueAccess)
	res += fmt.Sprintf("Unique Chain:   %d\n", b.uniqueChain)
	res += fmt.Sprintf("Unique Hit:     %d\n", b.uniqueHit)
	res += fmt.Sprintf("Unique Miss:    %d", b.uniqueMiss)
	return res
}

// Stats returns a textual description of the node table, the unique table and
// the usage of every cache region.
func (b *BDD) Stats() string {
	var sb strings.Builder
	sb.WriteString("==============\n")
	sb.WriteString(b.stats())
	sb.WriteString("\n==============\n")
	sb.WriteString(b.uniquestats())
	for r := Region(0); r < nregions; r++ {
		reg := &b.regions[r]
		fmt.Fprintf(&sb, "\n============== %s cache (%d x %d, load %.3g)\n", r, reg.keys, reg.bins, reg.load())
		sb.WriteString(reg.cacheStat.String())
	}
	sb.WriteString("\n==============")
	return sb.String()
}

// ************************************************************

// Print returns a one-line description of node n.
func (b *BDD) Print(n Node) string {
	switch {
	case n == 0:
		return "False"
	case n == 1:
		return "True"
	case n == Invalid:
		if b.err != nil {
			return fmt.Sprintf("Error (%s)", b.err)
		}
		return "Error"
	case n < 0 || int(n) >= b.size():
		return fmt.Sprintf("Error (%d not a valid index)", n)
	case !b.isvalid(int(n)):
		return fmt.Sprintf("Error (node %d undefined)", n)
	}
	k := int(n)
	return fmt.Sprintf("(%d[%d] ? %d : %d)", k, b.level(k), b.low(k), b.high(k))
}

// Fprint writes a textual representation of the BDD with root n, one line per
// node, sorted by index.
func (b *BDD) Fprint(w io.Writer, n Node) error {
	if b.checkptr(n) {
		_, err := fmt.Fprintf(w, "ERROR: %s\n", b.Print(n))
		return err
	}
	switch n {
	case False:
		_, err := fmt.Fprintln(w, "False")
		return err
	case True:
		_, err := fmt.Fprintln(w, "True")
		return err
	}
	nodes := make([]int, 0, b.markcount(int(n)))
	for i := 2; i <= b.maxvalid; i++ {
		if b.isvalid(i) && b.ismarked(i) {
			b.unmarknode(i)
			nodes = append(nodes, i)
		}
	}
	fmt.Fprintf(w, "node: %d\n", n)
	return b.printNodes(w, nodes)
}

func (b *BDD) printNodes(w io.Writer, nodes []int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 0, ' ', 0)
	slices.Sort(nodes)
	for _, n := range nodes {
		fmt.Fprintf(tw, "%d\t[%d\t] ? \t%d\t : %d\n", n, b.level(n), b.low(n), b.high(n))
	}
	return tw.Flush()
}
