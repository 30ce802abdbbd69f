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
	"github.com/shenwei356/graphsw/align/lane"
)

// farBehind is the sentinel initial position for max_pos/sub_pos: far
// enough in the past that the first real cell always satisfies
// "pos > pos_sentinel + L" and is treated as a new occurrence.
const farBehind = -1 << 30

// tracker is the per-lane best/sub-best score, position, occurrence count
// and correctness-flag state machine driven by cell-finish (spec.md §4.6).
//
// Score-valued state is kept in the lane's own saturating arithmetic type;
// position/count/correctness bookkeeping is plain per-lane scalars, since
// reference coordinates routinely exceed an 8 or 16-bit lane's range.
type tracker[T lane.Int] struct {
	N, L int

	maxScore lane.Vector[T]
	subScore lane.Vector[T]
	maxPos   []int
	subPos   []int
	maxCount []int
	subCount []int
	corFlag  []int

	hasTarget   []bool
	targets     []int
	targetLow   []int
	targetHigh  []int
	targetScore lane.Vector[T]
}

func newTracker[T lane.Int](N, L int, targets []int, tol int) *tracker[T] {
	lo, _ := lane.Bounds[T]()
	t := &tracker[T]{
		N: N, L: L,
		maxScore: lane.Broadcast[T](N, lo),
		subScore: lane.Broadcast[T](N, lo),
		maxPos:   make([]int, N),
		subPos:   make([]int, N),
		maxCount: make([]int, N),
		subCount: make([]int, N),
		corFlag:  make([]int, N),

		hasTarget:   make([]bool, N),
		targets:     make([]int, N),
		targetLow:   make([]int, N),
		targetHigh:  make([]int, N),
		targetScore: lane.Broadcast[T](N, lo),
	}
	for r := 0; r < N; r++ {
		t.maxPos[r] = farBehind
		t.subPos[r] = farBehind
		if r < len(targets) && targets[r] != 0 {
			t.hasTarget[r] = true
			t.targets[r] = targets[r]
			t.targetLow[r] = targets[r] - tol
			t.targetHigh[r] = targets[r] + tol
		}
	}
	return t
}

func (t *tracker[T]) inWindow(r, pos int) bool {
	return t.hasTarget[r] && pos >= t.targetLow[r] && pos <= t.targetHigh[r]
}

// cellFinish applies the four ordered update rules of spec.md §4.6 for
// one completed row, at reference position pos.
func (t *tracker[T]) cellFinish(s lane.Vector[T], pos int) {
	eqMax := s.Equal(t.maxScore)
	gtMax := s.GreaterThan(t.maxScore)

	// Rule 1: equal-to-max.
	if eqMax.Any() {
		for r := 0; r < t.N; r++ {
			if !eqMax.Get(r) {
				continue
			}
			if pos > t.maxPos[r]+t.L {
				t.maxCount[r]++
			}
			t.maxPos[r] = pos
			if t.inWindow(r, pos) {
				t.corFlag[r] = 1
			}
		}
	}

	// Rule 2: greater-than-max. Promote first (max_score := max(max_score,
	// s) across the whole lane), then, for each promoted lane, demote the
	// new max into sub_score — not the stale pre-promotion value (spec.md
	// §4.6; original_source/include/alignment.h:621-634 computes
	// _max_score = max(_S[row], _max_score) before the per-lane demotion
	// loop runs, so _sub_score reads the already-promoted value).
	if gtMax.Any() {
		newMax := t.maxScore.Max(s)
		for r := 0; r < t.N; r++ {
			if !gtMax.Get(r) {
				continue
			}
			if pos > t.maxPos[r]+t.L {
				t.subScore.Insert(r, newMax.At(r))
				t.subPos[r] = t.maxPos[r]
				t.subCount[r] = t.maxCount[r]
				if t.corFlag[r] == 1 {
					t.corFlag[r] = 2
				} else {
					t.corFlag[r] = 0
				}
			}
			t.maxCount[r] = 1
			t.maxPos[r] = pos
			if t.inWindow(r, pos) {
				t.corFlag[r] = 1
			} else if t.corFlag[r] == 1 {
				t.corFlag[r] = 0
			}
		}
		t.maxScore = newMax
	}

	// Rule 3: equal-to-sub, non-overlapping with best.
	eqSub := s.Equal(t.subScore)
	if eqSub.Any() {
		for r := 0; r < t.N; r++ {
			if !eqSub.Get(r) {
				continue
			}
			if pos <= t.maxPos[r]+t.L {
				continue
			}
			if pos > t.subPos[r]+t.L {
				t.subCount[r]++
			}
			t.subPos[r] = pos
			if t.inWindow(r, pos) {
				t.corFlag[r] = 2
			}
		}
	}

	// Rule 4: strictly between sub and max, non-overlapping with best.
	for r := 0; r < t.N; r++ {
		sv := s.At(r)
		if sv > t.subScore.At(r) && sv < t.maxScore.At(r) && pos > t.maxPos[r]+t.L {
			t.subScore.Insert(r, sv)
			t.subCount[r] = 1
			t.subPos[r] = pos
			if t.inWindow(r, pos) {
				t.corFlag[r] = 2
			} else if t.corFlag[r] != 1 {
				t.corFlag[r] = 0
			}
		}
	}
}

// recordTargetColumn updates target_score for any lane whose target
// position exactly equals pos, as the max over the eligible rows of this
// column (spec.md §4.6, "Target-score recording"). rows is the full S
// column (rows 1..L) in local mode, or just the row-L vector in
// end-to-end mode.
func (t *tracker[T]) recordTargetColumn(rows []lane.Vector[T], pos int) {
	for r := 0; r < t.N; r++ {
		if !t.hasTarget[r] || t.targets[r] != pos {
			continue
		}
		best := t.targetScore.At(r)
		for _, row := range rows {
			if v := row.At(r); v > best {
				best = v
			}
		}
		t.targetScore.Insert(r, best)
	}
}
