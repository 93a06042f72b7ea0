// Package metrics accumulates summary statistics over a rolled-out
// trajectory, observed column by column.
package metrics

import "math"

// Metric observes trajectory samples and reduces them to one value.
type Metric interface {
	Name() string
	Observe(x, u []float64, t float64)
	Value() float64
	Reset()
}

// ControlEffort averages the absolute control magnitude over the
// trajectory.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort { return &ControlEffort{} }

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(x, u []float64, t float64) {
	for _, v := range u {
		c.sum += math.Abs(v)
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// PeakState tracks the largest absolute state value seen.
type PeakState struct {
	peak float64
}

func NewPeakState() *PeakState { return &PeakState{} }

func (p *PeakState) Name() string { return "peak_state" }

func (p *PeakState) Observe(x, u []float64, t float64) {
	for _, v := range x {
		if math.Abs(v) > p.peak {
			p.peak = math.Abs(v)
		}
	}
}

func (p *PeakState) Value() float64 { return p.peak }

func (p *PeakState) Reset() { p.peak = 0 }

// Displacement measures the euclidean distance between the first and
// last observed states.
type Displacement struct {
	first []float64
	last  []float64
}

func NewDisplacement() *Displacement { return &Displacement{} }

func (d *Displacement) Name() string { return "displacement" }

func (d *Displacement) Observe(x, u []float64, t float64) {
	if d.first == nil {
		d.first = append([]float64(nil), x...)
	}
	d.last = append(d.last[:0], x...)
}

func (d *Displacement) Value() float64 {
	if d.first == nil {
		return 0
	}
	sum := 0.0
	for i := range d.first {
		if i < len(d.last) {
			diff := d.last[i] - d.first[i]
			sum += diff * diff
		}
	}
	return math.Sqrt(sum)
}

func (d *Displacement) Reset() {
	d.first = nil
	d.last = nil
}

// ObserveTrajectory feeds every column of a merged rows-by-time matrix
// into the metrics. controls may be nil.
func ObserveTrajectory(ms []Metric, times []float64, states, controls [][]float64) {
	for c := range times {
		x := column(states, c)
		u := column(controls, c)
		for _, m := range ms {
			m.Observe(x, u, times[c])
		}
	}
}

func column(block [][]float64, c int) []float64 {
	if block == nil {
		return nil
	}
	col := make([]float64, len(block))
	for r, row := range block {
		if c < len(row) {
			col[r] = row[c]
		}
	}
	return col
}
