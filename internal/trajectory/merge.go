// Package trajectory reassembles continuous time series out of the
// per-phase, per-node blocks a solve produces. Blocks are rows-by-time
// matrices; merging concatenates along the time axis under an explicit
// continuity convention: when two adjacent blocks share their boundary
// sample, the earlier block's arrival column is dropped so the sample is
// counted once.
package trajectory

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty indicates a merge over no blocks.
	ErrEmpty = errors.New("trajectory: nothing to merge")

	// ErrRowMismatch indicates blocks with different row counts across a
	// merge boundary.
	ErrRowMismatch = errors.New("trajectory: row count mismatch across merge boundary")

	// ErrMissingKey indicates a named merge where a later block lacks a
	// key present in the first.
	ErrMissingKey = errors.New("trajectory: variable missing from a block")
)

// MergeNodes concatenates the per-interval blocks of one phase along the
// time axis. With continuous set, the last time column of every block but
// the final one is dropped: an interval's arrival sample is the next
// interval's departure sample. With continuous unset every column is kept,
// which leaves multiple-shooting discontinuities visible.
func MergeNodes(blocks [][][]float64, continuous bool) ([][]float64, error) {
	return concat(blocks, continuous)
}

// MergePhases applies the same algorithm one level up, treating each
// phase's already node-merged block as one unit. Phase continuity is
// independent of node continuity.
func MergePhases(blocks [][][]float64, continuous bool) ([][]float64, error) {
	return concat(blocks, continuous)
}

// Merge node-merges each phase's interval blocks, then phase-merges the
// results. The two continuity flags are orthogonal; callers pick the pair
// explicitly.
func Merge(perPhase [][][][]float64, phaseContinuous, nodeContinuous bool) ([][]float64, error) {
	if len(perPhase) == 0 {
		return nil, ErrEmpty
	}
	merged := make([][][]float64, len(perPhase))
	for i, phase := range perPhase {
		m, err := MergeNodes(phase, nodeContinuous)
		if err != nil {
			return nil, fmt.Errorf("phase %d: %w", i, err)
		}
		merged[i] = m
	}
	return MergePhases(merged, phaseContinuous)
}

// MergeNamed merges name-keyed blocks independently per key. The result
// carries the key set of the first block; a key absent from a later block
// is an error.
func MergeNamed(blocks []map[string][][]float64, continuous bool) (map[string][][]float64, error) {
	if len(blocks) == 0 {
		return nil, ErrEmpty
	}
	out := make(map[string][][]float64, len(blocks[0]))
	for key := range blocks[0] {
		series := make([][][]float64, len(blocks))
		for i, b := range blocks {
			v, ok := b[key]
			if !ok {
				return nil, fmt.Errorf("%w: %q absent from block %d", ErrMissingKey, key, i)
			}
			series[i] = v
		}
		m, err := concat(series, continuous)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", key, err)
		}
		out[key] = m
	}
	return out, nil
}

func concat(blocks [][][]float64, continuous bool) ([][]float64, error) {
	if len(blocks) == 0 {
		return nil, ErrEmpty
	}

	rows := len(blocks[0])
	for i, b := range blocks {
		if len(b) != rows {
			return nil, fmt.Errorf("%w: block %d has %d rows, want %d", ErrRowMismatch, i, len(b), rows)
		}
	}

	totalCols := 0
	keep := make([]int, len(blocks))
	for i, b := range blocks {
		cols := 0
		if rows > 0 {
			cols = len(b[0])
			for r, row := range b {
				if len(row) != cols {
					return nil, fmt.Errorf("trajectory: block %d row %d has %d columns, want %d", i, r, len(row), cols)
				}
			}
		}
		if continuous && i < len(blocks)-1 && cols > 0 {
			cols--
		}
		keep[i] = cols
		totalCols += cols
	}

	out := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]float64, 0, totalCols)
		for i, b := range blocks {
			out[r] = append(out[r], b[r][:keep[i]]...)
		}
	}
	return out, nil
}
