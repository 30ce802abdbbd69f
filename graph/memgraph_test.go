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

package graph

import (
	"bytes"
	"testing"

	"github.com/shenwei356/graphsw/align"
)

func TestBuilderRoundTripsSequenceAndTopology(t *testing.T) {
	b := NewBuilder()
	if err := b.AddNode("AAA", 3, []byte("AAA"), nil, true); err != nil {
		t.Fatalf("AddNode AAA: %v", err)
	}
	if err := b.AddNode("CCC", 6, []byte("CCC"), []string{"AAA"}, false); err != nil {
		t.Fatalf("AddNode CCC: %v", err)
	}
	if err := b.AddNode("GGG", 6, []byte("GGG"), []string{"AAA"}, false); err != nil {
		t.Fatalf("AddNode GGG: %v", err)
	}
	if err := b.AddNode("TTTA", 10, []byte("TTTA"), []string{"CCC", "GGG"}, true); err != nil {
		t.Fatalf("AddNode TTTA: %v", err)
	}

	g := b.Build()
	it := g.Iterator()

	want := []struct {
		id      string
		end     int
		seq     string
		preds   []string
		pinched bool
	}{
		{"AAA", 3, "AAA", nil, true},
		{"CCC", 6, "CCC", []string{"AAA"}, false},
		{"GGG", 6, "GGG", []string{"AAA"}, false},
		{"TTTA", 10, "TTTA", []string{"CCC", "GGG"}, true},
	}

	for i, w := range want {
		n, ok := it.Next()
		if !ok {
			t.Fatalf("iterator exhausted early at index %d", i)
		}
		if n.ID != w.id || n.EndPosition != w.end || !bytes.Equal(n.Seq, []byte(w.seq)) || n.Pinched != w.pinched {
			t.Errorf("node %d: got %+v, want id=%s end=%d seq=%s pinched=%v", i, n, w.id, w.end, w.seq, w.pinched)
		}
		if len(n.Predecessors) != len(w.preds) {
			t.Errorf("node %d: got %d predecessors, want %d", i, len(n.Predecessors), len(w.preds))
		}
	}
	if _, ok := it.Next(); ok {
		t.Error("iterator produced an extra node")
	}
}

func TestBuilderIteratorIsRepeatable(t *testing.T) {
	b := NewBuilder()
	_ = b.AddNode("n1", 5, []byte("ACGTN"), nil, true)
	g := b.Build()

	first := g.Iterator()
	n1, _ := first.Next()

	second := g.Iterator()
	n2, _ := second.Next()

	if !bytes.Equal(n1.Seq, n2.Seq) {
		t.Errorf("two independent iterators disagree: %s vs %s", n1.Seq, n2.Seq)
	}
}

func TestBuilderRejectsDuplicateAndUnknownPredecessor(t *testing.T) {
	b := NewBuilder()
	if err := b.AddNode("a", 1, []byte("A"), nil, true); err != nil {
		t.Fatalf("AddNode a: %v", err)
	}
	if err := b.AddNode("a", 1, []byte("A"), nil, true); err == nil {
		t.Error("expected error adding duplicate node id")
	}
	if err := b.AddNode("b", 2, []byte("A"), []string{"missing"}, true); err == nil {
		t.Error("expected error referencing an unknown predecessor")
	}
}

func TestEmptyNodeIsAPureDeletion(t *testing.T) {
	b := NewBuilder()
	_ = b.AddNode("del", 0, nil, nil, true)
	g := b.Build()

	n, ok := g.Iterator().Next()
	if !ok {
		t.Fatal("expected one node")
	}
	if len(n.Seq) != 0 {
		t.Errorf("got seq=%q, want empty", n.Seq)
	}
}

// Graph satisfies align.Graph; this is a compile-time check that the
// package wires correctly into the aligner.
var _ align.Graph = (*MemGraph)(nil)
