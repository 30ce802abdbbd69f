// Copyright © 2023-2026 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package align

import (
	"fmt"
	"strings"

	"github.com/shenwei356/graphsw/align/lane"
)

// Seed is the last two columns (S, I) of a node's DP fill, used to
// initialize its successors. Ownership is exclusive to the seed store.
type Seed[T lane.Int] struct {
	SCol []lane.Vector[T] // length L+1
	ICol []lane.Vector[T] // length L+1
}

// String dumps the S and I columns row by row, one row per line, the same
// row-labeled matrix-dump shape lexicmap/index/align/nw.go's printMatrix
// uses for its DP matrix.
func (s Seed[T]) String() string {
	var buf strings.Builder
	for i := range s.SCol {
		fmt.Fprintf(&buf, "row %3d  S=%v  I=%v\n", i, s.SCol[i].Raw(), s.ICol[i].Raw())
	}
	return buf.String()
}

func newSeed[T lane.Int](L, N int) Seed[T] {
	s := Seed[T]{
		SCol: make([]lane.Vector[T], L+1),
		ICol: make([]lane.Vector[T], L+1),
	}
	for i := range s.SCol {
		s.SCol[i] = lane.New[T](N)
		s.ICol[i] = lane.New[T](N)
	}
	return s
}

// seedStore maps a graph-node identifier to the final score column and
// final read-side insertion column produced when that node was filled. It
// merges predecessor seeds by lanewise max and evicts everything when the
// driver reaches a pinched node.
type seedStore[T lane.Int] struct {
	L, N     int
	bias     T
	endToEnd bool
	readGapOpen, readGapExt int

	seeds map[string]Seed[T]
}

func newSeedStore[T lane.Int](L, N int, bias T, endToEnd bool, readGapOpen, readGapExt int) *seedStore[T] {
	return &seedStore[T]{
		L: L, N: N, bias: bias, endToEnd: endToEnd,
		readGapOpen: readGapOpen, readGapExt: readGapExt,
		seeds: make(map[string]Seed[T], 64),
	}
}

// clear empties the store. Called at the start of every batch, and again
// whenever the driver reaches a pinched node (spec.md §4.4).
func (s *seedStore[T]) clear() {
	s.seeds = make(map[string]Seed[T], len(s.seeds)+1)
}

// put records the outgoing seed produced when node id finished filling.
func (s *seedStore[T]) put(id string, seed Seed[T]) {
	s.seeds[id] = seed
}

// initialSeed builds the seed fed to the walk's first node: row 0
// (zero read bases consumed) is always the bias; in end-to-end mode rows
// 1..L carry the affine ramp that charges a gap penalty for any prefix not
// covered (spec.md §4.4), forcing the alignment to span the whole read.
// In local mode rows 1..L are also the bias, since local alignment may
// restart at any row.
func (s *seedStore[T]) initialSeed() Seed[T] {
	seed := newSeed[T](s.L, s.N)

	biasVec := lane.Broadcast[T](s.N, s.bias)
	seed.SCol[0].CopyFrom(biasVec)
	seed.ICol[0].CopyFrom(biasVec)

	for i := 1; i <= s.L; i++ {
		if s.endToEnd {
			penalty := s.readGapOpen + (i-1)*s.readGapExt
			seed.SCol[i] = lane.Broadcast[T](s.N, s.bias).SaturatingSubScalar(T(penalty))
			seed.ICol[i].CopyFrom(seed.SCol[i])
		} else {
			seed.SCol[i].CopyFrom(biasVec)
			seed.ICol[i].CopyFrom(biasVec)
		}
	}
	return seed
}

// plainSeed builds a seed with no predecessors and no end-to-end ramp: every
// row carries the bare bias, same as a local-mode initialSeed. This is what
// a later zero-predecessor node receives — a second root introduced by a
// disconnected component of the graph, as opposed to the walk's true first
// node. spec.md §4.7 separates step 4, "emit the initial seed for the first
// node," from step 5, "for each subsequent node, get_seed from
// predecessors" — only the walk's first node is entitled to the end-to-end
// ramp. The C++ ground truth (original_source/include/alignment.h,
// _get_seed) never substitutes the ramp either: its per-row loop only runs
// over actual predecessors, so a later root's seed is left at its
// already-biased starting value.
func (s *seedStore[T]) plainSeed() Seed[T] {
	seed := newSeed[T](s.L, s.N)
	biasVec := lane.Broadcast[T](s.N, s.bias)
	for i := 0; i <= s.L; i++ {
		seed.SCol[i].CopyFrom(biasVec)
		seed.ICol[i].CopyFrom(biasVec)
	}
	return seed
}

// getSeed assembles the incoming seed for a node from its predecessors'
// outgoing seeds. A node with no predecessors gets plainSeed, never the
// ramped initialSeed (the driver calls initialSeed directly, once, for the
// walk's true first node — see plainSeed). Returns ErrGraphOrder if a
// predecessor is absent from the store, meaning the graph was not provided
// in topological order.
func (s *seedStore[T]) getSeed(predecessors []string) (Seed[T], error) {
	if len(predecessors) == 0 {
		return s.plainSeed(), nil
	}

	first, ok := s.seeds[predecessors[0]]
	if !ok {
		return Seed[T]{}, ErrGraphOrder
	}

	seed := newSeed[T](s.L, s.N)
	biasVec := lane.Broadcast[T](s.N, s.bias)
	seed.SCol[0].CopyFrom(biasVec)
	seed.ICol[0].CopyFrom(biasVec)

	for i := 1; i <= s.L; i++ {
		seed.SCol[i].CopyFrom(first.SCol[i])
		seed.ICol[i].CopyFrom(first.ICol[i])
	}

	for _, pred := range predecessors[1:] {
		other, ok := s.seeds[pred]
		if !ok {
			return Seed[T]{}, ErrGraphOrder
		}
		for i := 1; i <= s.L; i++ {
			seed.SCol[i] = seed.SCol[i].Max(other.SCol[i])
			seed.ICol[i] = seed.ICol[i].Max(other.ICol[i])
		}
	}

	return seed, nil
}
