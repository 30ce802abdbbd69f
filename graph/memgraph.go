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

// Package graph is a minimal in-memory reference DAG: a concrete
// align.Graph a caller can build directly, without writing their own
// node store or iterator. It is a reference implementation, not the only
// one align.Aligner supports — any type satisfying align.Graph works.
package graph

import (
	"github.com/pkg/errors"

	"github.com/shenwei356/graphsw/align"
)

// ErrDuplicateNode means AddNode was called twice with the same id.
var ErrDuplicateNode = errors.New("graph: duplicate node id")

// ErrUnknownPredecessor means a node named a predecessor id not yet added.
// Builder requires predecessors to be added before their successors, the
// same topological constraint align.Aligner itself relies on.
var ErrUnknownPredecessor = errors.New("graph: predecessor not yet added")

// node is the builder's internal record: the base sequence is packed
// 3 bits/symbol (5 symbols: A,C,G,T,N) rather than kept as a raw byte
// slice, the same space-saving motivation as the teacher's 2-bit/4-symbol
// on-disk sequence format, generalized to a 5th symbol and kept in memory
// instead of written to a file.
type node struct {
	id      string
	end     int
	packed  []byte
	nBases  int
	preds   []string
	pinched bool
}

// MemGraph is a fixed, already-built in-memory DAG. Constructed by
// Builder.Build, it never mutates afterward, so Iterator may be called
// any number of times — including once per batch, as align.Aligner
// requires of align.Graph.
type MemGraph struct {
	nodes []node
}

// Builder assembles a MemGraph node by node. Nodes must be added in
// topological order: every predecessor before its successors.
type Builder struct {
	nodes []node
	seen  map[string]bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{seen: make(map[string]bool)}
}

// AddNode appends a node. endPos is the 1-indexed reference coordinate of
// the node's last base; seq may be empty (a pure-deletion node). pinched
// marks that every source-to-sink path passes through this node — the
// caller computes this, MemGraph does not infer it (spec.md places graph
// construction, including dominance analysis, out of the aligner's
// scope).
func (b *Builder) AddNode(id string, endPos int, seq []byte, predecessors []string, pinched bool) error {
	if b.seen[id] {
		return errors.Wrap(ErrDuplicateNode, id)
	}
	for _, p := range predecessors {
		if !b.seen[p] {
			return errors.Wrapf(ErrUnknownPredecessor, "node %s references %s", id, p)
		}
	}

	preds := make([]string, len(predecessors))
	copy(preds, predecessors)

	b.nodes = append(b.nodes, node{
		id:      id,
		end:     endPos,
		packed:  packSeq(seq),
		nBases:  len(seq),
		preds:   preds,
		pinched: pinched,
	})
	b.seen[id] = true
	return nil
}

// Build finalizes the graph. The Builder should not be reused afterward.
func (b *Builder) Build() *MemGraph {
	return &MemGraph{nodes: b.nodes}
}

// Iterator returns a fresh forward walk of the graph in the order nodes
// were added to the Builder.
func (g *MemGraph) Iterator() align.NodeIterator {
	return &memIterator{nodes: g.nodes}
}

type memIterator struct {
	nodes []node
	i     int
}

func (it *memIterator) Next() (align.Node, bool) {
	if it.i >= len(it.nodes) {
		return align.Node{}, false
	}
	n := it.nodes[it.i]
	it.i++
	return align.Node{
		ID:           n.id,
		EndPosition:  n.end,
		Seq:          unpackSeq(n.packed, n.nBases),
		Predecessors: n.preds,
		Pinched:      n.pinched,
	}, true
}

// packSeq encodes raw ASCII bases 3 bits/symbol via align.EncodeBase,
// the in-memory analogue of the teacher's 2-bit/4-symbol on-disk packing.
func packSeq(seq []byte) []byte {
	codes := align.EncodeSeq(seq)
	out := make([]byte, 0, (len(codes)*3+7)/8)

	var acc uint32
	var bits int
	for _, c := range codes {
		acc |= uint32(c) << bits
		bits += 3
		for bits >= 8 {
			out = append(out, byte(acc))
			acc >>= 8
			bits -= 8
		}
	}
	if bits > 0 {
		out = append(out, byte(acc))
	}
	return out
}

func unpackSeq(packed []byte, n int) []byte {
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	var acc uint32
	var bits, byteIdx, i int
	for i < n {
		for bits < 3 && byteIdx < len(packed) {
			acc |= uint32(packed[byteIdx]) << bits
			bits += 8
			byteIdx++
		}
		code := align.Base(acc & 0x7)
		acc >>= 3
		bits -= 3
		out[i] = align.DecodeBase(code)
		i++
	}
	return out
}

