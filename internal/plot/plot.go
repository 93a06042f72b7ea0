// Package plot carries the rendering metadata attached to each declared
// quantity: an accessor into the flat decision vectors, a render hint, a
// legend and bounds. Rendering itself lives with the consumers.
package plot

import (
	"github.com/san-kum/trajopt/internal/mapping"
	"github.com/san-kum/trajopt/internal/variables"
)

// Type is the rendering hint for a quantity.
type Type int

const (
	// Integrated quantities are interpolated over each shooting interval.
	Integrated Type = iota
	// Linear quantities vary linearly within each interval.
	Linear
	// Step quantities are held constant within each interval.
	Step
)

func (t Type) String() string {
	switch t {
	case Integrated:
		return "integrated"
	case Linear:
		return "linear"
	case Step:
		return "step"
	}
	return "unknown"
}

// Accessor selects a quantity's rows out of the full state, control and
// parameter blocks. Blocks are rows-by-nodes. Derived quantities that
// evaluate compiled functions report evaluation failures through the
// error instead of fabricating rows.
type Accessor func(x, u, p [][]float64) ([][]float64, error)

// Descriptor is the full rendering description of one quantity.
type Descriptor struct {
	Accessor Accessor
	Type     Type
	Legend   []string
	Bounds   variables.Bounds

	// YLim optionally clamps the value axis.
	YLim *[2]float64

	// CombineTo names another descriptor to draw into, if any.
	CombineTo string

	// Axes optionally remaps rows onto a shared axis legend (used by
	// contact forces across phases). HasAxes guards the zero value.
	Axes    mapping.Mapping
	HasAxes bool
}

// Rows applies the accessor and returns the selected sub-block.
func (d Descriptor) Rows(x, u, p [][]float64) ([][]float64, error) {
	return d.Accessor(x, u, p)
}
