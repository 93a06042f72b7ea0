package integrators

// RK4 is the classic fourth-order Runge-Kutta stepper. It samples the
// control at the step start, midpoint and end, so linearly varying
// controls are represented exactly.
type RK4 struct {
	scratch []float64
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) SupportsLinearControl() bool { return true }

func (r *RK4) ensureScratch(n int) {
	if len(r.scratch) != n {
		r.scratch = make([]float64, n)
	}
}

func (r *RK4) Step(f DerivFunc, x []float64, u ControlFunc, p []float64, dt float64) ([]float64, error) {
	n := len(x)
	r.ensureScratch(n)

	u0, uMid, u1 := u(0), u(0.5), u(1)

	k1, err := f(x, u0, p)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*k1[i]
	}
	k2, err := f(r.scratch, uMid, p)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*k2[i]
	}
	k3, err := f(r.scratch, uMid, p)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*k3[i]
	}
	k4, err := f(r.scratch, u1, p)
	if err != nil {
		return nil, err
	}

	result := make([]float64, n)
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt/6.0*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return result, nil
}
