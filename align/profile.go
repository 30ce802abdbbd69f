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
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/shenwei356/util/pathutil"
	"github.com/shenwei356/xopen"

	"github.com/shenwei356/graphsw/align/lane"
)

// Profile holds the scoring parameters for an Aligner. All fields except
// EndToEnd and Tolerance are positive integers; mismatch/ambig/gap
// parameters are subtracted from the running score, never negative in
// storage.
type Profile struct {
	Match    int `toml:"match"`
	Mismatch int `toml:"mismatch"`
	Ambig    int `toml:"ambig"`

	ReadGapOpen int `toml:"read_gap_open"`
	ReadGapExt  int `toml:"read_gap_ext"`
	RefGapOpen  int `toml:"ref_gap_open"`
	RefGapExt   int `toml:"ref_gap_ext"`

	EndToEnd  bool `toml:"end_to_end"`
	Tolerance int  `toml:"tolerance"`
}

// DefaultProfile matches the default scoring used in spec.md's scenario
// G1 table: match=2, mismatch=2, gopen=3, gext=1, applied symmetrically
// to both read- and ref-side gaps.
var DefaultProfile = Profile{
	Match:       2,
	Mismatch:    2,
	Ambig:       1,
	ReadGapOpen: 3,
	ReadGapExt:  1,
	RefGapOpen:  3,
	RefGapExt:   1,
	EndToEnd:    false,
	Tolerance:   0,
}

// String renders a one-line summary of the profile for diagnostics,
// mirroring the field-by-field dump original_source/src/scoring.cpp
// prints for a ScoringProfile.
func (p Profile) String() string {
	mode := "local"
	if p.EndToEnd {
		mode = "end-to-end"
	}
	return fmt.Sprintf(
		"match=%d mismatch=%d ambig=%d read_gap=%d/%d ref_gap=%d/%d mode=%s tol=%d",
		p.Match, p.Mismatch, p.Ambig,
		p.ReadGapOpen, p.ReadGapExt, p.RefGapOpen, p.RefGapExt,
		mode, p.Tolerance,
	)
}

// NewProfile builds a Profile with symmetric read/ref gap costs, the
// common case exposed by the simple set_scores(match, mismatch, gopen,
// gext) setter in spec.md §6.
func NewProfile(match, mismatch, gopen, gext int) Profile {
	return Profile{
		Match:       match,
		Mismatch:    mismatch,
		Ambig:       mismatch/2 + 1,
		ReadGapOpen: gopen,
		ReadGapExt:  gext,
		RefGapOpen:  gopen,
		RefGapExt:   gext,
	}
}

// scoreBounds returns the best and worst reachable true score for a read
// of length L under this profile, per spec.md §7/§9: score_max = L*match;
// score_min = -(L * max(mismatch, gopen + L*gext)), the end-to-end worst
// case spanning the whole read. It is computed the same way in both modes;
// bias ignores score_min in local mode and uses the lane type's own
// minimum as the floor instead.
func (p Profile) scoreBounds(L int) (max, min int64) {
	max = int64(L) * int64(p.Match)
	worstGap := p.ReadGapOpen + L*p.ReadGapExt
	if p.RefGapOpen+L*p.RefGapExt > worstGap {
		worstGap = p.RefGapOpen + L*p.RefGapExt
	}
	bound := p.Mismatch
	if worstGap > bound {
		bound = worstGap
	}
	min = -int64(L) * int64(bound)
	return max, min
}

// bias returns the numeric-encoding bias (spec.md §3) for this profile,
// lane type T and read length L, along with an InsufficientPrecisionError
// if T cannot represent the worst-case score range.
func bias[T lane.Int](p Profile, L int) (T, error) {
	lo, hi := lane.Bounds[T]()
	numericRange := int64(hi) - int64(lo)

	scoreMax, scoreMin := p.scoreBounds(L)

	if !p.EndToEnd {
		// Local mode: bias is the lane type's minimum value (T(-lo) wraps
		// back to lo), so a true score of zero is stored as lo; the DP
		// itself never produces a true score below zero (local alignment
		// never goes negative), so the only requirement is that the best
		// reachable score plus the bias fits.
		span := scoreMax - int64(lo)
		if span > numericRange {
			return 0, &InsufficientPrecisionError{
				Param: "match (local mode)", ScoreMax: scoreMax, ScoreMin: int64(lo),
				Range: span, NumericRange: numericRange,
			}
		}
		return T(-int64(lo)), nil
	}

	// End-to-end: bias = max_value - L*match.
	b := int64(hi) - scoreMax
	span := scoreMax - scoreMin
	if span > numericRange {
		return 0, &InsufficientPrecisionError{
			Param: "gap/mismatch parameters (end-to-end mode)", ScoreMax: scoreMax,
			ScoreMin: scoreMin, Range: span, NumericRange: numericRange,
		}
	}
	// Soft saturation warning: headroom below the floor after applying the
	// bias to the worst case.
	headroom := scoreMin + b
	if headroom < numericRange/8 {
		warnSaturation(L, scoreMin, headroom)
	}
	return T(b), nil
}

// ValidateProfile reports an InsufficientPrecisionError if this profile, for the
// given lane type and read length, would overflow T's representable
// range. It performs the same check NewAligner runs at construction.
func ValidateProfile[T lane.Int](p Profile, L int) error {
	_, err := bias[T](p, L)
	return err
}

// LoadProfile reads a TOML-encoded Profile from path, transparently
// handling gzip the way every other file the teacher reads is opened.
func LoadProfile(path string) (Profile, error) {
	var p Profile
	exists, err := pathutil.Exists(path)
	if err != nil {
		return p, errors.Wrap(err, path)
	}
	if !exists {
		return p, errors.Errorf("graphsw: profile file not found: %s", path)
	}

	fh, err := xopen.Ropen(path)
	if err != nil {
		return p, errors.Wrap(err, path)
	}
	defer fh.Close()

	data := make([]byte, 0, 4096)
	buf := make([]byte, 4096)
	for {
		n, rerr := fh.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
		}
		if rerr != nil {
			break
		}
	}

	if err := toml.Unmarshal(data, &p); err != nil {
		return p, errors.Wrap(err, "unmarshal profile toml")
	}
	return p, nil
}

// SaveProfile writes p to path as TOML.
func SaveProfile(path string, p Profile) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "marshal profile toml")
	}
	return os.WriteFile(path, data, 0644)
}
