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
	"github.com/pkg/errors"

	"github.com/shenwei356/graphsw/align/lane"
)

// Graph is the read-only, borrowed collection of nodes the driver walks.
// Iterator must yield a fresh, independent topological walk on every call,
// since the driver re-walks the graph once per batch of reads (spec.md
// §4.7, §5).
type Graph interface {
	Iterator() NodeIterator
}

// Result is one read's alignment outcome (spec.md §3, "Results").
type Result struct {
	MaxScore    int
	SubScore    int
	MaxPos      int
	SubPos      int
	MaxCount    int
	SubCount    int
	TargetScore int
	Correct     int // 0, 1, or 2
	Profile     Profile
}

// DefaultLaneWidth returns the batch width (lane count) used when the
// caller doesn't request a specific one: 32 for 8-bit lanes, 16 for 16-bit
// lanes, matching the AVX2-class vector widths go-highway's AVX2Target
// documents for the corresponding element sizes.
func DefaultLaneWidth[T lane.Int]() int {
	var z T
	switch any(z).(type) {
	case int8:
		return 32
	case int16:
		return 16
	}
	return 16
}

// Aligner runs SIMD Smith-Waterman of batches of equal-length reads
// against a topologically-ordered graph walk. It is single-threaded and
// stateful across batches; an Aligner is not safe for concurrent use, but
// independent Aligner instances may run concurrently over disjoint reads
// against the same read-only graph (spec.md §5).
type Aligner[T lane.Int] struct {
	profile Profile
	L       int
	N       int

	bias T
	dv   derivedVectors[T]

	pk    *packager[T]
	seeds *seedStore[T]
}

// NewAligner constructs an Aligner for reads of length L, the given
// scoring profile, and the default batch width for T. Returns
// InsufficientPrecisionError if the profile/length combination cannot be
// represented in T.
func NewAligner[T lane.Int](L int, profile Profile) (*Aligner[T], error) {
	return NewAlignerWithWidth[T](L, DefaultLaneWidth[T](), profile)
}

// NewAlignerWithWidth is NewAligner with an explicit batch width.
func NewAlignerWithWidth[T lane.Int](L, N int, profile Profile) (*Aligner[T], error) {
	a := &Aligner[T]{L: L, N: N}
	if err := a.SetScores(profile); err != nil {
		return nil, err
	}
	return a, nil
}

// SetScores installs a new scoring profile, recomputing the bias and
// derived penalty vectors. May be called between Align calls.
func (a *Aligner[T]) SetScores(profile Profile) error {
	b, err := bias[T](profile, a.L)
	if err != nil {
		return err
	}
	a.profile = profile
	a.bias = b
	a.dv = derivedVectors[T]{
		matchVec:     lane.Broadcast[T](a.N, T(profile.Match)),
		mismatchVec:  lane.Broadcast[T](a.N, T(-profile.Mismatch)),
		ambigVec:     lane.Broadcast[T](a.N, T(-profile.Ambig)),
		readGapTrans: lane.Broadcast[T](a.N, T(profile.ReadGapOpen+profile.ReadGapExt)),
		readGapCont:  lane.Broadcast[T](a.N, T(profile.ReadGapExt)),
		refGapTrans:  lane.Broadcast[T](a.N, T(profile.RefGapOpen+profile.RefGapExt)),
		refGapCont:   lane.Broadcast[T](a.N, T(profile.RefGapExt)),
		bias:         b,
		n:            a.N,
	}
	a.pk = newPackager[T](a.N, a.L)
	a.seeds = newSeedStore[T](a.L, a.N, b, profile.EndToEnd, profile.ReadGapOpen, profile.ReadGapExt)
	return nil
}

// SetScoresSimple is the set_scores(match, mismatch, gopen, gext) setter
// of spec.md §6, applying the same gap cost to both read and ref sides.
func (a *Aligner[T]) SetScoresSimple(match, mismatch, gopen, gext int) error {
	p := a.profile
	p.Match, p.Mismatch = match, mismatch
	p.ReadGapOpen, p.ReadGapExt = gopen, gext
	p.RefGapOpen, p.RefGapExt = gopen, gext
	return a.SetScores(p)
}

// SetCorrectnessTolerance sets the half-window used for the correctness
// flag (spec.md §6).
func (a *Aligner[T]) SetCorrectnessTolerance(tol int) {
	a.profile.Tolerance = tol
}

// Align is AlignGraph with no graph: reads and targets are checked and
// packaged, but no node is walked, so every Result holds the tracker's
// initial values.
func (a *Aligner[T]) Align(reads [][]byte, targets []int) ([]Result, error) {
	return a.AlignGraph(reads, targets, nil)
}

// AlignGraph runs the aligner over reads against the graph g, writing one
// Result per read. targets gives, per read, the reference position to
// judge correctness against (0 means "no target"). Returns ErrBatchShape
// if reads are not all length L or len(targets) != len(reads), and
// ErrGraphOrder if g's iterator does not yield nodes in topological order.
func (a *Aligner[T]) AlignGraph(reads [][]byte, targets []int, g Graph) ([]Result, error) {
	if len(targets) != len(reads) {
		return nil, ErrBatchShape
	}
	for _, r := range reads {
		if len(r) != a.L {
			return nil, ErrBatchShape
		}
	}

	results := make([]Result, len(reads))

	for start := 0; start < len(reads); start += a.N {
		end := start + a.N
		if end > len(reads) {
			end = len(reads)
		}
		batchReads := reads[start:end]
		batchTargets := make([]int, a.N)
		copy(batchTargets, targets[start:end])

		if err := a.pk.pack(batchReads); err != nil {
			return nil, err
		}

		a.seeds.clear()
		trk := newTracker[T](a.N, a.L, batchTargets, a.profile.Tolerance)

		if g != nil {
			it := g.Iterator()
			first := true
			for {
				node, ok := it.Next()
				if !ok {
					break
				}

				var seed Seed[T]
				var err error
				if first {
					// spec.md §4.7 step 4: the walk's true first node gets
					// the ramped initial seed; every later node, even one
					// with no predecessors of its own, goes through
					// getSeed/plainSeed instead (step 5). A first node that
					// names a predecessor cannot be in topological order.
					if len(node.Predecessors) > 0 {
						return nil, ErrGraphOrder
					}
					seed = a.seeds.initialSeed()
					first = false
				} else {
					seed, err = a.seeds.getSeed(node.Predecessors)
					if err != nil {
						return nil, err
					}
				}

				var outgoing Seed[T]
				if len(node.Seq) == 0 {
					outgoing = seed
				} else {
					if err := ValidateSeq(node.Seq); err != nil {
						return nil, errors.Wrapf(err, "node %s", node.ID)
					}
					nodeSeq := EncodeSeq(node.Seq)
					refStart := node.EndPosition - len(nodeSeq) + 1
					outgoing = fillNode[T](a.dv, seed, nodeSeq, refStart, a.profile.EndToEnd, a.pk.packaged, trk)
				}

				if node.Pinched {
					log.Debugf("graphsw: pinched node %s, clearing seed store", node.ID)
					a.seeds.clear()
				}
				a.seeds.put(node.ID, outgoing)
			}
		}

		for r := 0; r < end-start; r++ {
			results[start+r] = Result{
				MaxScore:    int(trk.maxScore.At(r)) - int(a.bias),
				SubScore:    int(trk.subScore.At(r)) - int(a.bias),
				MaxPos:      trk.maxPos[r],
				SubPos:      trk.subPos[r],
				MaxCount:    trk.maxCount[r],
				SubCount:    trk.subCount[r],
				TargetScore: int(trk.targetScore.At(r)) - int(a.bias),
				Correct:     trk.corFlag[r],
				Profile:     a.profile,
			}
		}
	}

	return results, nil
}
