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
	"path/filepath"
	"testing"
)

func TestProfileTOMLRoundTrip(t *testing.T) {
	p := Profile{
		Match: 2, Mismatch: 6, Ambig: 4,
		ReadGapOpen: 5, ReadGapExt: 3,
		RefGapOpen: 5, RefGapExt: 3,
		EndToEnd: true, Tolerance: 10,
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "profile.toml")
	if err := SaveProfile(path, p); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	got, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if got != p {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected an error loading a nonexistent profile")
	}
}

func TestValidateProfileRejectsOverflow(t *testing.T) {
	p := Profile{Match: 2, Mismatch: 120, ReadGapOpen: 100, ReadGapExt: 1, RefGapOpen: 100, RefGapExt: 1, EndToEnd: true}
	if err := ValidateProfile[int8](p, 50); err == nil {
		t.Error("expected InsufficientPrecisionError for an int8 lane with these parameters")
	}
	if err := ValidateProfile[int16](p, 50); err != nil {
		t.Errorf("expected int16 to have enough headroom, got %v", err)
	}
}

func TestValidateProfileLocalModeUsesLaneFloor(t *testing.T) {
	p := DefaultProfile
	if err := ValidateProfile[int8](p, 100); err == nil {
		t.Error("expected local-mode overflow once read length exceeds int8 match-sum headroom")
	}
	if err := ValidateProfile[int8](p, 10); err != nil {
		t.Errorf("expected short reads to fit comfortably in int8, got %v", err)
	}
}

func TestNewProfileAppliesSymmetricGapCosts(t *testing.T) {
	p := NewProfile(2, 6, 3, 1)
	if p.ReadGapOpen != p.RefGapOpen || p.ReadGapExt != p.RefGapExt {
		t.Errorf("expected symmetric gap costs, got %+v", p)
	}
}

