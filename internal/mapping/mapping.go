// Package mapping provides index-remapping primitives used to translate
// between two index spaces of possibly different cardinality.
//
// A [Mapping] translates row indices one way, supporting duplication,
// omission and sign flip. A [BiMapping] pairs two mappings, one per
// direction, for quantities whose physical coordinate count differs from
// the declared decision-variable count (bilateral symmetry, fixed joints).
package mapping

import (
	"fmt"
	"math"
)

// Unmapped marks an output row with no source; it is filled with zeros.
const Unmapped = math.MinInt

// Mapping is an immutable, one-directional index remapping. Entry v at
// output row i sources row |v| of the input, negated when v < 0.
type Mapping struct {
	idx []int
}

// New builds a Mapping from an index list. The list is copied; the Mapping
// never mutates after construction.
func New(idx ...int) Mapping {
	c := make([]int, len(idx))
	copy(c, idx)
	return Mapping{idx: c}
}

// Identity returns the mapping [0, 1, ..., n-1].
func Identity(n int) Mapping {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return Mapping{idx: idx}
}

// Len reports the number of output rows.
func (m Mapping) Len() int { return len(m.idx) }

// Indices returns a copy of the index list.
func (m Mapping) Indices() []int {
	c := make([]int, len(m.idx))
	copy(c, m.idx)
	return c
}

// Map applies the remapping to a rows-by-columns block. Rows are remapped
// independently, columns pass through unchanged. A source index outside the
// input's row range is an error.
func (m Mapping) Map(src [][]float64) ([][]float64, error) {
	cols := 0
	if len(src) > 0 {
		cols = len(src[0])
	}
	for i, row := range src {
		if len(row) != cols {
			return nil, fmt.Errorf("mapping: ragged source, row %d has %d columns, want %d", i, len(row), cols)
		}
	}

	out := make([][]float64, len(m.idx))
	for i, v := range m.idx {
		out[i] = make([]float64, cols)
		if v == Unmapped {
			continue
		}
		j := v
		sign := 1.0
		if v < 0 {
			j = -v
			sign = -1.0
		}
		if j >= len(src) {
			return nil, fmt.Errorf("%w: source index %d, input has %d rows", ErrIndexRange, j, len(src))
		}
		for c := 0; c < cols; c++ {
			out[i][c] = sign * src[j][c]
		}
	}
	return out, nil
}

// MapVector applies the remapping to a single column.
func (m Mapping) MapVector(src []float64) ([]float64, error) {
	block := make([][]float64, len(src))
	for i, v := range src {
		block[i] = []float64{v}
	}
	mapped, err := m.Map(block)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(mapped))
	for i, row := range mapped {
		out[i] = row[0]
	}
	return out, nil
}
