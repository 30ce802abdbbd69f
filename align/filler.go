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

// derivedVectors are the broadcast lane vectors the scoring profile
// precomputes on every SetScores call (including construction), so the hot loop never
// recomputes a penalty from scratch (spec.md §4.3, §9).
type derivedVectors[T lane.Int] struct {
	matchVec, mismatchVec, ambigVec     lane.Vector[T]
	readGapTrans, readGapCont           lane.Vector[T] // read_gopen+read_gext, read_gext
	refGapTrans, refGapCont             lane.Vector[T]
	bias                                T
	n                                   int
}

// fillNode runs the DP recurrence of spec.md §4.5 for one graph node,
// against the packaged read batch, starting from the incoming seed and
// recording every reportable cell with trk. Returns the outgoing seed.
func fillNode[T lane.Int](
	dv derivedVectors[T],
	seed Seed[T],
	nodeSeq []Base,
	refStart int,
	endToEnd bool,
	packaged []lane.Vector[T], // length L, one vector per read position
	trk *tracker[T],
) Seed[T] {
	L := len(seed.SCol) - 1
	N := dv.n

	S := make([]lane.Vector[T], L+1)
	Ic := make([]lane.Vector[T], L+1)
	Dc := make([]lane.Vector[T], L+1)
	for i := 0; i <= L; i++ {
		S[i] = lane.New[T](N)
		S[i].CopyFrom(seed.SCol[i])
		Ic[i] = lane.New[T](N)
		Ic[i].CopyFrom(seed.ICol[i])
		Dc[i] = lane.New[T](N)
	}
	Dc[0] = lane.Broadcast[T](N, dv.bias)

	nBase := lane.Broadcast[T](N, T(BaseN))

	for c := 0; c < len(nodeSeq); c++ {
		refBase := nodeSeq[c]
		pos := refStart + c

		sDiag := lane.Broadcast[T](N, dv.bias)
		refBaseVec := lane.Broadcast[T](N, T(refBase))

		for r := 1; r <= L; r++ {
			Dc[r] = Dc[r-1].SaturatingSub(dv.refGapCont).Max(S[r-1].SaturatingSub(dv.refGapTrans))
			Ic[r] = Ic[r].SaturatingSub(dv.readGapCont).Max(S[r].SaturatingSub(dv.readGapTrans))

			readLane := packaged[r-1]

			var matchBonus lane.Vector[T]
			if refBase == BaseN {
				matchBonus = sDiag.SaturatingAdd(dv.ambigVec)
			} else {
				eqN := readLane.Equal(nBase)
				eqRef := readLane.Equal(refBaseVec)
				matchOrMismatch := lane.Blend(eqRef, dv.matchVec, dv.mismatchVec)
				score := lane.Blend(eqN, dv.ambigVec, matchOrMismatch)
				matchBonus = sDiag.SaturatingAdd(score)
			}

			oldSr := S[r]
			sDiag = oldSr
			S[r] = Ic[r].Max(Dc[r].Max(matchBonus))

			if !endToEnd {
				trk.cellFinish(S[r], pos)
			}
		}

		if endToEnd {
			trk.cellFinish(S[L], pos)
			trk.recordTargetColumn(S[L:L+1], pos)
		} else {
			trk.recordTargetColumn(S[1:], pos)
		}
	}

	return Seed[T]{SCol: S, ICol: Ic}
}
