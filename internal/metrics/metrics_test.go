package metrics

import (
	"math"
	"testing"
)

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()
	m.Observe([]float64{0}, []float64{1, -1}, 0)
	m.Observe([]float64{0}, []float64{2, 0}, 1)
	if m.Value() != 2.0 {
		t.Errorf("expected mean effort 2, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestPeakState(t *testing.T) {
	m := NewPeakState()
	m.Observe([]float64{0.5, -3.0}, nil, 0)
	m.Observe([]float64{1.0, 2.0}, nil, 1)
	if m.Value() != 3.0 {
		t.Errorf("expected peak 3, got %f", m.Value())
	}
}

func TestDisplacement(t *testing.T) {
	m := NewDisplacement()
	m.Observe([]float64{0, 0}, nil, 0)
	m.Observe([]float64{1, 1}, nil, 1)
	m.Observe([]float64{3, 4}, nil, 2)
	if math.Abs(m.Value()-5.0) > 1e-12 {
		t.Errorf("expected displacement 5, got %f", m.Value())
	}
}

func TestObserveTrajectory(t *testing.T) {
	states := [][]float64{{0, 1, 2}, {0, 0, 0}}
	controls := [][]float64{{1, 1, 1}}
	times := []float64{0, 0.5, 1.0}

	effort := NewControlEffort()
	disp := NewDisplacement()
	ObserveTrajectory([]Metric{effort, disp}, times, states, controls)

	if effort.Value() != 1.0 {
		t.Errorf("expected effort 1, got %f", effort.Value())
	}
	if disp.Value() != 2.0 {
		t.Errorf("expected displacement 2, got %f", disp.Value())
	}
}
