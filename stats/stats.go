// Package stats collects symbol frequencies for encoder construction.
//
// Symbols in [0, MaxStatVal) are counted in a fixed array; any other symbol,
// including negative ones, is counted in an overflow map. Iteration yields the
// array range in ascending symbol order followed by the overflow symbols in
// ascending order, so encoders built from the same counts are identical.
package stats

import (
	"iter"
	"maps"
	"slices"
)

// MaxStatVal is the exclusive upper bound of the array-backed symbol range.
const MaxStatVal = 1024

// Stats is a symbol frequency table. The zero value is not usable; use New.
type Stats struct {
	freqs    [MaxStatVal]int64
	overflow map[int32]int64
	nvals    int
	total    int64
}

// New creates an empty frequency table.
func New() *Stats {
	return &Stats{}
}

// FromValues creates a frequency table from a sequence of symbols.
func FromValues(values []int32) *Stats {
	st := New()
	for _, v := range values {
		st.Add(v)
	}

	return st
}

// Add counts one occurrence of sym.
func (s *Stats) Add(sym int32) {
	s.AddN(sym, 1)
}

// AddN counts n occurrences of sym. Non-positive n is ignored.
func (s *Stats) AddN(sym int32, n int64) {
	if n <= 0 {
		return
	}

	if sym >= 0 && sym < MaxStatVal {
		if s.freqs[sym] == 0 {
			s.nvals++
		}
		s.freqs[sym] += n
	} else {
		if s.overflow == nil {
			s.overflow = make(map[int32]int64)
		}
		if s.overflow[sym] == 0 {
			s.nvals++
		}
		s.overflow[sym] += n
	}
	s.total += n
}

// Remove discounts one occurrence of sym. Removing an absent symbol is a no-op.
func (s *Stats) Remove(sym int32) {
	if sym >= 0 && sym < MaxStatVal {
		if s.freqs[sym] == 0 {
			return
		}
		s.freqs[sym]--
		if s.freqs[sym] == 0 {
			s.nvals--
		}
		s.total--

		return
	}

	c, ok := s.overflow[sym]
	if !ok {
		return
	}
	if c == 1 {
		delete(s.overflow, sym)
		s.nvals--
	} else {
		s.overflow[sym] = c - 1
	}
	s.total--
}

// Count returns the frequency of sym.
func (s *Stats) Count(sym int32) int64 {
	if sym >= 0 && sym < MaxStatVal {
		return s.freqs[sym]
	}

	return s.overflow[sym]
}

// NVals returns the number of distinct symbols with a positive count.
func (s *Stats) NVals() int {
	return s.nvals
}

// Total returns the sum of all counts.
func (s *Stats) Total() int64 {
	return s.total
}

// All yields every symbol with a positive count and its frequency: array
// symbols ascending, then overflow symbols ascending.
func (s *Stats) All() iter.Seq2[int32, int64] {
	return func(yield func(int32, int64) bool) {
		for i, f := range s.freqs {
			if f == 0 {
				continue
			}
			if !yield(int32(i), f) { //nolint:gosec
				return
			}
		}

		for _, sym := range slices.Sorted(maps.Keys(s.overflow)) {
			if !yield(sym, s.overflow[sym]) {
				return
			}
		}
	}
}

// Overflow yields the symbols outside the array range with their counts, in
// ascending symbol order.
func (s *Stats) Overflow() iter.Seq2[int32, int64] {
	return func(yield func(int32, int64) bool) {
		for _, sym := range slices.Sorted(maps.Keys(s.overflow)) {
			if !yield(sym, s.overflow[sym]) {
				return
			}
		}
	}
}
