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

// Node is one graph node as seen by the aligner: a stable identifier, the
// 1-indexed position of its last base on the linear reference coordinate,
// its base sequence (possibly empty, a pure deletion), the identifiers of
// its predecessors, and whether every source-to-sink path passes through
// it (spec.md §3).
//
// Graph construction — splicing variants into nodes, computing Pinched —
// is the job of an external collaborator; the aligner only consumes what
// this type reports.
type Node struct {
	ID           string
	EndPosition  int
	Seq          []byte
	Predecessors []string
	Pinched      bool
}

// NodeIterator yields graph nodes in topological order: every node is
// produced only after all of its predecessors. The aligner borrows the
// iterator; it never retains or mutates it.
type NodeIterator interface {
	// Next returns the next node, or ok=false when the walk is exhausted.
	Next() (node Node, ok bool)
}
