package solve

import (
	"fmt"

	"github.com/san-kum/trajopt/internal/trajectory"
)

// MergedStates assembles one rows-by-time matrix across all phases,
// under the requested phase and node continuity conventions.
func (r *Result) MergedStates(phaseContinuous, nodeContinuous bool) ([][]float64, error) {
	perPhase := make([][][][]float64, len(r.Phases))
	for i, pr := range r.Phases {
		perPhase[i] = pr.States
	}
	return trajectory.Merge(perPhase, phaseContinuous, nodeContinuous)
}

// MergedTimes assembles the time axis matching MergedStates under the same
// continuity flags.
func (r *Result) MergedTimes(phaseContinuous, nodeContinuous bool) ([]float64, error) {
	perPhase := make([][][][]float64, len(r.Phases))
	for i, pr := range r.Phases {
		blocks := make([][][]float64, len(pr.Times))
		for k, t := range pr.Times {
			blocks[k] = [][]float64{t}
		}
		perPhase[i] = blocks
	}
	m, err := trajectory.Merge(perPhase, phaseContinuous, nodeContinuous)
	if err != nil {
		return nil, err
	}
	return m[0], nil
}

// NamedStates splits each phase's merged block by declared variable name
// and merges across phases per name. The key set is the first phase's
// declarations.
func (r *Result) NamedStates(phaseContinuous, nodeContinuous bool) (map[string][][]float64, error) {
	named := make([]map[string][][]float64, len(r.Phases))
	for i, pr := range r.Phases {
		block, err := trajectory.MergeNodes(pr.States, nodeContinuous)
		if err != nil {
			return nil, fmt.Errorf("phase %d: %w", i, err)
		}
		m := make(map[string][][]float64)
		for _, e := range pr.Phase.States().Entries() {
			m[e.Name] = block[e.Start:e.End]
		}
		named[i] = m
	}
	return trajectory.MergeNamed(named, phaseContinuous)
}
