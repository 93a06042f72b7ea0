// Package integrators provides fixed-step steppers over a phase's compiled
// dynamics. A stepper declares which control parameterizations it can
// represent; requesting an unsupported pair fails at validation, before any
// stepping happens.
package integrators

// DerivFunc evaluates the compiled state derivative.
type DerivFunc func(x, u, p []float64) ([]float64, error)

// ControlFunc samples the interval's control signal at a normalized step
// position tau in [0, 1].
type ControlFunc func(tau float64) []float64

// Stepper advances a state by one fixed step.
type Stepper interface {
	Name() string

	// SupportsLinearControl reports whether the stepper samples the
	// control within the step, as piecewise-linear controls require.
	SupportsLinearControl() bool

	Step(f DerivFunc, x []float64, u ControlFunc, p []float64, dt float64) ([]float64, error)
}
