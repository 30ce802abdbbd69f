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
	"github.com/shenwei356/bio/seq"
)

// Base is one of the five symbols {A, C, G, T, N} encoded as an integer
// in [0,4]. N is the ambiguous base.
type Base = int8

const (
	BaseA Base = 0
	BaseC Base = 1
	BaseG Base = 2
	BaseT Base = 3
	BaseN Base = 4
)

// baseTable maps an ASCII byte to its Base code. Lower-case and upper-case
// IUPAC A/C/G/T map to the corresponding code; everything else, including
// ambiguity codes other than N, maps to BaseN.
var baseTable = func() [256]Base {
	var t [256]Base
	for i := range t {
		t[i] = BaseN
	}
	t['A'], t['a'] = BaseA, BaseA
	t['C'], t['c'] = BaseC, BaseC
	t['G'], t['g'] = BaseG, BaseG
	t['T'], t['t'] = BaseT, BaseT
	t['N'], t['n'] = BaseN, BaseN
	return t
}()

// EncodeBase converts an ASCII base character to its numeric code.
func EncodeBase(b byte) Base {
	return baseTable[b]
}

// EncodeSeq converts a raw sequence to numeric base codes.
func EncodeSeq(s []byte) []Base {
	out := make([]Base, len(s))
	for i, b := range s {
		out[i] = EncodeBase(b)
	}
	return out
}

// baseLetters maps a Base code back to its ASCII letter, for diagnostics.
var baseLetters = [5]byte{'A', 'C', 'G', 'T', 'N'}

// DecodeBase converts a numeric base code back to its ASCII letter.
func DecodeBase(b Base) byte {
	if b < 0 || int(b) >= len(baseLetters) {
		return 'N'
	}
	return baseLetters[b]
}

// ValidateSeq checks that s contains only IUPAC nucleotide characters,
// delegating to bio/seq the same way the teacher validates FASTA/FASTQ
// records before indexing them.
func ValidateSeq(s []byte) error {
	if len(s) == 0 {
		return nil
	}
	_, err := seq.NewSeq(seq.DNAredundant, s)
	return err
}
