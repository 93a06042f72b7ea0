package symbolic

import (
	"errors"
	"fmt"
)

var (
	// ErrWidthMismatch indicates a compiled expression's height disagrees
	// with the declared output width.
	ErrWidthMismatch = errors.New("symbolic: expression width mismatch")

	// ErrInputWidth indicates a call with inputs of the wrong size.
	ErrInputWidth = errors.New("symbolic: input width mismatch")
)

// Function is a compiled, named function with three named inputs (x, u, p)
// and one named output of fixed width. It is immutable after compilation
// and safe to call from multiple goroutines.
type Function struct {
	name     string
	out      string
	inWidths [3]int
	rows     int
	eval     func(x, u, p []float64) []float64
}

// Compile checks the expression height against wantRows and wraps it into a
// Function. nx, nu, np fix the expected input widths; out names the output.
func Compile(name string, nx, nu, np int, expr Expr, out string, wantRows int) (*Function, error) {
	if expr.Rows != wantRows {
		return nil, fmt.Errorf("%w: %s returns %d rows, declared width is %d", ErrWidthMismatch, name, expr.Rows, wantRows)
	}
	if expr.Eval == nil {
		return nil, fmt.Errorf("symbolic: %s has no evaluation body", name)
	}
	return &Function{
		name:     name,
		out:      out,
		inWidths: [3]int{nx, nu, np},
		rows:     wantRows,
		eval:     expr.Eval,
	}, nil
}

// Call evaluates the function, validating input widths first.
func (f *Function) Call(x, u, p []float64) ([]float64, error) {
	if len(x) != f.inWidths[0] || len(u) != f.inWidths[1] || len(p) != f.inWidths[2] {
		return nil, fmt.Errorf("%w: %s called with (%d, %d, %d), want (%d, %d, %d)",
			ErrInputWidth, f.name, len(x), len(u), len(p), f.inWidths[0], f.inWidths[1], f.inWidths[2])
	}
	out := f.eval(x, u, p)
	if len(out) != f.rows {
		return nil, fmt.Errorf("%w: %s produced %d rows, declared %d", ErrWidthMismatch, f.name, len(out), f.rows)
	}
	return out, nil
}

// Name returns the compiled function's name.
func (f *Function) Name() string { return f.name }

// OutputName returns the declared output name.
func (f *Function) OutputName() string { return f.out }

// Rows returns the output width.
func (f *Function) Rows() int { return f.rows }

// InputWidths returns the expected widths of x, u and p.
func (f *Function) InputWidths() (nx, nu, np int) {
	return f.inWidths[0], f.inWidths[1], f.inWidths[2]
}

// Expand returns the fully inlined form of the function. Closure-backed
// functions are compiled inline, so this is the function itself.
func (f *Function) Expand() *Function { return f }
