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

// packager transposes up to N equal-length reads into L lane vectors:
// position p of each read occupies lane r of packaged[p]. It reuses its
// backing buffer across batches the same way lexicmap/index/align.Aligner
// reuses its scores/pointers slices.
type packager[T lane.Int] struct {
	n int // lanes (batch width)
	l int // read length

	packaged []lane.Vector[T] // length L
}

func newPackager[T lane.Int](n, l int) *packager[T] {
	pk := &packager[T]{n: n, l: l}
	pk.packaged = make([]lane.Vector[T], l)
	for p := range pk.packaged {
		pk.packaged[p] = lane.New[T](n)
	}
	return pk
}

// pack fills pk.packaged from a batch of up to N reads. Reads shorter or
// longer than L is a programming error (BatchShape), per spec.md §4.2 —
// the driver is responsible for guaranteeing equal length. Each read is
// validated against the IUPAC alphabet before encoding; a non-nucleotide
// byte is rejected rather than silently folded into N by EncodeBase.
func (pk *packager[T]) pack(reads [][]byte) error {
	if len(reads) > pk.n {
		return ErrBatchShape
	}
	for _, r := range reads {
		if len(r) != pk.l {
			return ErrBatchShape
		}
		if err := ValidateSeq(r); err != nil {
			return err
		}
	}

	for p := 0; p < pk.l; p++ {
		row := pk.packaged[p].Raw()
		for r := 0; r < pk.n; r++ {
			if r < len(reads) {
				row[r] = T(EncodeBase(reads[r][p]))
			} else {
				row[r] = T(BaseN)
			}
		}
	}
	return nil
}
