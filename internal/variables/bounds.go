package variables

import (
	"fmt"
	"math"
)

// Bounds holds per-index min/max limits over a flat vector.
type Bounds struct {
	Min []float64
	Max []float64
}

// NewBounds builds bounds from matching min/max slices.
func NewBounds(min, max []float64) (Bounds, error) {
	if len(min) != len(max) {
		return Bounds{}, fmt.Errorf("variables: bounds min has %d entries, max has %d", len(min), len(max))
	}
	b := Bounds{Min: make([]float64, len(min)), Max: make([]float64, len(max))}
	copy(b.Min, min)
	copy(b.Max, max)
	return b, nil
}

// Unbounded returns bounds of width n with infinite limits.
func Unbounded(n int) Bounds {
	b := Bounds{Min: make([]float64, n), Max: make([]float64, n)}
	for i := 0; i < n; i++ {
		b.Min[i] = math.Inf(-1)
		b.Max[i] = math.Inf(1)
	}
	return b
}

// Len reports the bounded width.
func (b Bounds) Len() int { return len(b.Min) }

// Slice returns the bounds restricted to the row range [start, end).
func (b Bounds) Slice(start, end int) (Bounds, error) {
	if start < 0 || end > len(b.Min) || start > end {
		return Bounds{}, fmt.Errorf("%w: [%d, %d) of %d", ErrRange, start, end, len(b.Min))
	}
	return Bounds{Min: b.Min[start:end], Max: b.Max[start:end]}, nil
}

// SliceEntry returns the bounds for a registry entry's range.
func (b Bounds) SliceEntry(e Entry) (Bounds, error) {
	return b.Slice(e.Start, e.End)
}
