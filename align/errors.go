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
	"sync"

	"github.com/pkg/errors"
)

// ErrGraphOrder means a node's predecessor was not found in the seed
// store: the node iterator did not yield nodes in topological order.
var ErrGraphOrder = errors.New("graphsw: graph not in topological order")

// ErrBatchShape means the reads were not all of equal length, or the
// target list did not match the read list in size.
var ErrBatchShape = errors.New("graphsw: reads of unequal length, or target count mismatch")

// InsufficientPrecisionError means the chosen lane type cannot represent
// the worst-case score range for the configured parameters.
type InsufficientPrecisionError struct {
	Param        string // the parameter that pushed the range over budget
	ScoreMax     int64
	ScoreMin     int64
	Range        int64 // score_max - score_min
	NumericRange int64 // the lane type's representable range
}

func (e *InsufficientPrecisionError) Error() string {
	return fmt.Sprintf(
		"graphsw: insufficient precision: %s makes score range [%d, %d] (span %d) exceed the lane type's range (%d)",
		e.Param, e.ScoreMin, e.ScoreMax, e.Range, e.NumericRange,
	)
}

var saturationWarnOnce sync.Once

// warnSaturation emits the one-shot, per-process Saturation diagnostic
// described in spec.md §7.
func warnSaturation(readLen int, boundEstimate, headroom int64) {
	saturationWarnOnce.Do(func() {
		log.Warningf(
			"graphsw: end-to-end scoring parameters may saturate some cells (read_len=%d, bound~%d, headroom=%d); alignment proceeds",
			readLen, boundEstimate, headroom,
		)
	})
}
