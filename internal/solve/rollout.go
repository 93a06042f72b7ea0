// Package solve provides a direct multiple-shooting rollout over a
// configured problem: each phase's compiled dynamics is stepped across its
// shooting intervals with a fixed-step integrator, producing the per-phase,
// per-node blocks the trajectory assembler merges. The NLP solver proper is
// an external collaborator; the rollout stands in for it wherever numeric
// trajectories are needed.
package solve

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/trajopt/internal/integrators"
	"github.com/san-kum/trajopt/internal/ocp"
)

var (
	// ErrUnsupportedControl indicates an integrator paired with a control
	// parameterization it cannot represent.
	ErrUnsupportedControl = errors.New("solve: integrator cannot represent control type")

	// ErrDimension indicates inputs sized against the declared layout.
	ErrDimension = errors.New("solve: dimension mismatch")
)

// Options tunes the rollout.
type Options struct {
	// Stepper integrates each sub-step. Defaults to RK4.
	Stepper integrators.Stepper
	// StepsPerInterval subdivides each shooting interval. Defaults to 5.
	StepsPerInterval int
}

// PhaseInput supplies the numeric decision values of one phase. Controls
// is rows-by-columns with one column per interval for constant controls,
// and one per node (intervals+1) for linear-continuous controls. X0 may be
// nil for phases after the first, in which case the previous phase's
// arrival state carries over.
type PhaseInput struct {
	X0       []float64
	Controls [][]float64
}

// PhaseResult holds one phase's rolled-out trajectory as per-interval
// blocks, ready for node merging.
type PhaseResult struct {
	Phase *ocp.Phase

	// States has one rows-by-(steps+1) block per shooting interval.
	States [][][]float64
	// Times mirrors States with the sub-step time grid.
	Times [][]float64
	// Controls is the input control block, one column per interval or
	// node.
	Controls [][]float64
}

// Result is the rollout of all phases in order.
type Result struct {
	Phases []*PhaseResult
}

// Rollout validates the inputs against each phase's declared layout and
// integrates phase by phase.
func Rollout(ctx context.Context, prob *ocp.Problem, inputs []PhaseInput, params []float64, opts Options) (*Result, error) {
	if len(inputs) != prob.NbPhases() {
		return nil, fmt.Errorf("%w: %d phase inputs for %d phases", ErrDimension, len(inputs), prob.NbPhases())
	}
	stepper := opts.Stepper
	if stepper == nil {
		stepper = integrators.NewRK4()
	}
	steps := opts.StepsPerInterval
	if steps <= 0 {
		steps = 5
	}
	if len(params) != prob.Parameters().Len() {
		return nil, fmt.Errorf("%w: %d parameters, declared %d", ErrDimension, len(params), prob.Parameters().Len())
	}

	res := &Result{}
	t0 := 0.0
	var prevArrival []float64

	for i, ph := range prob.Phases() {
		in := inputs[i]
		if err := validatePhase(ph, in, stepper); err != nil {
			return nil, fmt.Errorf("phase %d %q: %w", i, ph.Name(), err)
		}

		x0 := in.X0
		if x0 == nil {
			if len(prevArrival) != ph.States().Width() {
				return nil, fmt.Errorf("%w: phase %d %q has no initial state and the previous arrival has width %d, want %d",
					ErrDimension, i, ph.Name(), len(prevArrival), ph.States().Width())
			}
			x0 = prevArrival
		}

		pr, err := rolloutPhase(ctx, ph, x0, in.Controls, params, stepper, steps, t0)
		if err != nil {
			return nil, fmt.Errorf("phase %d %q: %w", i, ph.Name(), err)
		}
		res.Phases = append(res.Phases, pr)

		last := pr.States[len(pr.States)-1]
		prevArrival = make([]float64, len(last))
		for r, row := range last {
			prevArrival[r] = row[len(row)-1]
		}
		t0 += ph.Duration()
	}
	return res, nil
}

func validatePhase(ph *ocp.Phase, in PhaseInput, stepper integrators.Stepper) error {
	if ph.ControlType() == ocp.ControlLinearContinuous && !stepper.SupportsLinearControl() {
		return fmt.Errorf("%w: %s with %s controls", ErrUnsupportedControl, stepper.Name(), ph.ControlType())
	}

	nu := ph.Controls().Width()
	wantCols := ph.Shooting()
	if ph.ControlType() == ocp.ControlLinearContinuous {
		wantCols++
	}
	if len(in.Controls) != nu {
		return fmt.Errorf("%w: %d control rows, declared %d", ErrDimension, len(in.Controls), nu)
	}
	for r, row := range in.Controls {
		if len(row) != wantCols {
			return fmt.Errorf("%w: control row %d has %d columns, want %d", ErrDimension, r, len(row), wantCols)
		}
	}
	if in.X0 != nil && len(in.X0) != ph.States().Width() {
		return fmt.Errorf("%w: initial state has %d rows, declared %d", ErrDimension, len(in.X0), ph.States().Width())
	}
	return nil
}

func rolloutPhase(ctx context.Context, ph *ocp.Phase, x0 []float64, controls [][]float64, params []float64,
	stepper integrators.Stepper, steps int, t0 float64) (*PhaseResult, error) {

	nx := ph.States().Width()
	deriv := func(x, u, p []float64) ([]float64, error) {
		return ph.Dynamics().Call(x, u, p)
	}

	pr := &PhaseResult{Phase: ph, Controls: controls}
	dt := ph.Duration() / float64(ph.Shooting()) / float64(steps)
	x := append([]float64(nil), x0...)

	for k := 0; k < ph.Shooting(); k++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sample := intervalControl(ph, controls, k)
		block := make([][]float64, nx)
		for r := range block {
			block[r] = make([]float64, steps+1)
		}
		times := make([]float64, steps+1)

		for s := 0; s <= steps; s++ {
			for r := 0; r < nx; r++ {
				block[r][s] = x[r]
			}
			times[s] = t0 + (float64(k)+float64(s)/float64(steps))*ph.Duration()/float64(ph.Shooting())
			if s == steps {
				break
			}
			frac := float64(s) / float64(steps)
			width := 1.0 / float64(steps)
			u := func(tau float64) []float64 {
				return sample(frac + tau*width)
			}
			next, err := stepper.Step(deriv, x, u, params, dt)
			if err != nil {
				return nil, err
			}
			x = next
		}

		pr.States = append(pr.States, block)
		pr.Times = append(pr.Times, times)
	}
	return pr, nil
}

// intervalControl samples interval k's control at a normalized interval
// position. Constant controls hold column k; linear-continuous controls
// interpolate between columns k and k+1.
func intervalControl(ph *ocp.Phase, controls [][]float64, k int) func(tau float64) []float64 {
	nu := len(controls)
	if ph.ControlType() == ocp.ControlLinearContinuous {
		return func(tau float64) []float64 {
			u := make([]float64, nu)
			for r := 0; r < nu; r++ {
				u[r] = (1-tau)*controls[r][k] + tau*controls[r][k+1]
			}
			return u
		}
	}
	return func(tau float64) []float64 {
		u := make([]float64, nu)
		for r := 0; r < nu; r++ {
			u[r] = controls[r][k]
		}
		return u
	}
}
