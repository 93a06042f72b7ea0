package integrators

// Euler is the explicit first-order stepper. It samples the control once at
// the step start, so it cannot represent linearly varying controls.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) SupportsLinearControl() bool { return false }

func (e *Euler) Step(f DerivFunc, x []float64, u ControlFunc, p []float64, dt float64) ([]float64, error) {
	dx, err := f(x, u(0), p)
	if err != nil {
		return nil, err
	}
	result := make([]float64, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result, nil
}
