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

// Package lane implements the fixed-width, lane-parallel integer vector
// that backs the DP recurrence: one lane per read in a batch.
//
// It is a thin domain wrapper around the portable SIMD vector type from
// github.com/ajroetker/go-highway/hwy, which supplies runtime-dispatched
// Max/Min/Equal/GreaterThan/IfThenElse/AnyTrue without any build tags.
// Saturating add/sub, which the DP recurrence needs everywhere and which
// hwy's public surface does not expose, is computed directly with a
// widened accumulator.
package lane

import "github.com/ajroetker/go-highway/hwy"

// Int is the set of lane element types the aligner supports: 8-bit lanes
// for the common case, 16-bit lanes when the score range needs more
// headroom than int8 provides.
type Int interface {
	~int8 | ~int16
}

// Bounds returns the minimum and maximum representable value of T.
func Bounds[T Int]() (lo, hi T) {
	switch p := any(&lo).(type) {
	case *int8:
		*p = -128
	case *int16:
		*p = -32768
	default:
		panic("lane: unsupported element type")
	}
	switch p := any(&hi).(type) {
	case *int8:
		*p = 127
	case *int16:
		*p = 32767
	default:
		panic("lane: unsupported element type")
	}
	return lo, hi
}

// Vector is an N-lane vector, one lane per read in the current batch.
type Vector[T Int] struct {
	data []T
}

// New allocates a zeroed n-lane vector.
func New[T Int](n int) Vector[T] {
	return Vector[T]{data: make([]T, n)}
}

// FromSlice copies data into a new vector.
func FromSlice[T Int](data []T) Vector[T] {
	v := New[T](len(data))
	copy(v.data, data)
	return v
}

// Broadcast returns an n-lane vector with every lane set to val.
func Broadcast[T Int](n int, val T) Vector[T] {
	out := New[T](n)
	hwy.Set(n, val).Store(out.data)
	return out
}

// Len returns the number of lanes.
func (a Vector[T]) Len() int { return len(a.data) }

// At returns the value in lane i.
func (a Vector[T]) At(i int) T { return a.data[i] }

// Insert sets lane i to val.
func (a Vector[T]) Insert(i int, val T) { a.data[i] = val }

// Raw exposes the backing slice. Callers may mutate it in place; used by
// the node filler's hot loop to avoid per-row vector churn.
func (a Vector[T]) Raw() []T { return a.data }

// CopyFrom overwrites this vector's lanes with b's, both must have equal
// length.
func (a Vector[T]) CopyFrom(b Vector[T]) { copy(a.data, b.data) }

func (a Vector[T]) hv() hwy.Vec[T] { return hwy.Load(a.data) }

// Max returns the lanewise maximum of a and b.
func (a Vector[T]) Max(b Vector[T]) Vector[T] {
	out := New[T](len(a.data))
	hwy.Max(a.hv(), b.hv()).Store(out.data)
	return out
}

// Min returns the lanewise minimum of a and b.
func (a Vector[T]) Min(b Vector[T]) Vector[T] {
	out := New[T](len(a.data))
	hwy.Min(a.hv(), b.hv()).Store(out.data)
	return out
}

// SaturatingAdd returns a+b, clamped to T's representable range in every
// lane. Computed with a widened accumulator rather than through hwy, since
// hwy's documented arithmetic wraps on overflow rather than saturating.
func (a Vector[T]) SaturatingAdd(b Vector[T]) Vector[T] {
	lo, hi := Bounds[T]()
	out := New[T](len(a.data))
	for i := range a.data {
		s := int64(a.data[i]) + int64(b.data[i])
		out.data[i] = T(clamp(s, int64(lo), int64(hi)))
	}
	return out
}

// SaturatingAddScalar returns a+val (broadcast), clamped to T's range.
func (a Vector[T]) SaturatingAddScalar(val T) Vector[T] {
	lo, hi := Bounds[T]()
	out := New[T](len(a.data))
	for i := range a.data {
		s := int64(a.data[i]) + int64(val)
		out.data[i] = T(clamp(s, int64(lo), int64(hi)))
	}
	return out
}

// SaturatingSub returns a-b, clamped to T's representable range.
func (a Vector[T]) SaturatingSub(b Vector[T]) Vector[T] {
	lo, hi := Bounds[T]()
	out := New[T](len(a.data))
	for i := range a.data {
		s := int64(a.data[i]) - int64(b.data[i])
		out.data[i] = T(clamp(s, int64(lo), int64(hi)))
	}
	return out
}

// SaturatingSubScalar returns a-val (broadcast), clamped to T's range.
func (a Vector[T]) SaturatingSubScalar(val T) Vector[T] {
	lo, hi := Bounds[T]()
	out := New[T](len(a.data))
	for i := range a.data {
		s := int64(a.data[i]) - int64(val)
		out.data[i] = T(clamp(s, int64(lo), int64(hi)))
	}
	return out
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mask is the lanewise result of a comparison, gating which lanes an
// update rule applies to.
type Mask[T Int] struct {
	m hwy.Mask[T]
}

// Equal returns a mask of lanes where a[i] == b[i].
func (a Vector[T]) Equal(b Vector[T]) Mask[T] {
	return Mask[T]{m: hwy.Equal(a.hv(), b.hv())}
}

// GreaterThan returns a mask of lanes where a[i] > b[i].
func (a Vector[T]) GreaterThan(b Vector[T]) Mask[T] {
	return Mask[T]{m: hwy.GreaterThan(a.hv(), b.hv())}
}

// LessThan returns a mask of lanes where a[i] < b[i].
func (a Vector[T]) LessThan(b Vector[T]) Mask[T] {
	return Mask[T]{m: hwy.LessThan(a.hv(), b.hv())}
}

// Any reports whether any lane in the mask is set.
func (m Mask[T]) Any() bool { return m.m.AnyTrue() }

// Get reports whether lane i is set.
func (m Mask[T]) Get(i int) bool { return m.m.GetBit(i) }

// And returns the lanewise AND of two masks.
func And[T Int](a, b Mask[T]) Mask[T] {
	out := make([]bool, a.m.NumLanes())
	for i := range out {
		out[i] = a.Get(i) && b.Get(i)
	}
	return maskFromBools[T](out)
}

func maskFromBools[T Int](bits []bool) Mask[T] {
	lo, hi := Bounds[T]()
	a := New[T](len(bits))
	b := New[T](len(bits))
	for i, set := range bits {
		if set {
			a.Insert(i, hi)
			b.Insert(i, lo)
		} else {
			a.Insert(i, lo)
			b.Insert(i, hi)
		}
	}
	return a.GreaterThan(b)
}

// Blend returns, per lane, a's value where mask is set, else b's.
func Blend[T Int](mask Mask[T], a, b Vector[T]) Vector[T] {
	out := New[T](len(a.data))
	hwy.IfThenElse(mask.m, a.hv(), b.hv()).Store(out.data)
	return out
}
