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
	"testing"

	"github.com/shenwei356/graphsw/align/lane"
)

func one8(v int8) lane.Vector[int8] {
	return lane.Broadcast[int8](1, v)
}

func TestCellFinishTracksNewMaximum(t *testing.T) {
	trk := newTracker[int8](1, 3, []int{0}, 0)
	trk.cellFinish(one8(5), 1)
	if trk.maxScore.At(0) != 5 || trk.maxPos[0] != 1 || trk.maxCount[0] != 1 {
		t.Fatalf("after first cell: score=%d pos=%d count=%d", trk.maxScore.At(0), trk.maxPos[0], trk.maxCount[0])
	}

	trk.cellFinish(one8(9), 5)
	if trk.maxScore.At(0) != 9 || trk.maxPos[0] != 5 {
		t.Errorf("after strictly greater cell: score=%d pos=%d, want 9 at 5", trk.maxScore.At(0), trk.maxPos[0])
	}
	// Demotion copies the already-promoted max (9), not the stale
	// pre-promotion value (5); only the position is the old max_pos.
	if trk.subScore.At(0) != 9 || trk.subPos[0] != 1 {
		t.Errorf("demoted sub: score=%d pos=%d, want promoted max 9 at old pos 1", trk.subScore.At(0), trk.subPos[0])
	}
}

func TestCellFinishEqualMaxExtendsRunWithoutNewOccurrence(t *testing.T) {
	trk := newTracker[int8](1, 3, []int{0}, 0)
	trk.cellFinish(one8(5), 1)
	trk.cellFinish(one8(5), 2) // within L of pos 1: same occurrence, not a new one
	if trk.maxCount[0] != 1 {
		t.Errorf("got count=%d, want 1 (adjacent equal-max cell within L)", trk.maxCount[0])
	}
	trk.cellFinish(one8(5), 10) // far enough away: a new occurrence of the same score
	if trk.maxCount[0] != 2 {
		t.Errorf("got count=%d, want 2 (equal-max cell beyond L)", trk.maxCount[0])
	}
}

func TestCellFinishSubOptimalDominance(t *testing.T) {
	trk := newTracker[int8](1, 3, []int{0}, 0)
	trk.cellFinish(one8(5), 1)   // first-ever max; promotes from the sentinel
	trk.cellFinish(one8(20), 2)  // promotes again, but too close to demote: sub_score untouched at 5
	trk.cellFinish(one8(12), 50) // strictly between sub_score(5) and max_score(20), far from max_pos: rule 4
	if trk.maxScore.At(0) != 20 {
		t.Fatalf("got max_score=%d, want 20", trk.maxScore.At(0))
	}
	if trk.subScore.At(0) != 12 {
		t.Errorf("got sub_score=%d, want 12", trk.subScore.At(0))
	}
	if trk.subScore.At(0) > trk.maxScore.At(0) {
		t.Errorf("sub_score %d exceeds max_score %d", trk.subScore.At(0), trk.maxScore.At(0))
	}
}

func TestCellFinishCorrectnessFlag(t *testing.T) {
	trk := newTracker[int8](1, 3, []int{10}, 2)
	trk.cellFinish(one8(5), 10) // within tolerance of target
	if trk.corFlag[0] != 1 {
		t.Errorf("got cor_flag=%d, want 1 (max hit within tolerance)", trk.corFlag[0])
	}

	trk.cellFinish(one8(9), 50) // new, better max, far from target
	if trk.corFlag[0] != 2 {
		t.Errorf("got cor_flag=%d, want 2 (best demoted to sub, sub still within tolerance)", trk.corFlag[0])
	}
}

func TestRecordTargetColumnTakesMaxAtExactPosition(t *testing.T) {
	trk := newTracker[int8](1, 3, []int{7}, 0)
	rows := []lane.Vector[int8]{one8(3), one8(8), one8(1)}
	trk.recordTargetColumn(rows, 7)
	if trk.targetScore.At(0) != 8 {
		t.Errorf("got target_score=%d, want 8 (max over the column)", trk.targetScore.At(0))
	}
	trk.recordTargetColumn([]lane.Vector[int8]{one8(100)}, 8) // different position: not recorded
	if trk.targetScore.At(0) != 8 {
		t.Errorf("got target_score=%d after off-target column, want unchanged 8", trk.targetScore.At(0))
	}
}
