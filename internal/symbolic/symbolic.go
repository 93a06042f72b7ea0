// Package symbolic is the expression-engine boundary the configurator
// compiles against: named scalar placeholders, vertical concatenation, and
// compilation of an expression into a callable function with named inputs
// and output. Expressions are closure-backed, so a compiled [Function] is
// already in fully inlined form; there is no graph to expand.
package symbolic

import "fmt"

// Vector is an ordered list of named scalar placeholders. It carries layout
// and naming only; numeric values are bound at call time.
type Vector struct {
	names []string
}

// NewVector builds a placeholder vector from scalar names.
func NewVector(names ...string) Vector {
	c := make([]string, len(names))
	copy(c, names)
	return Vector{names: c}
}

// Placeholders builds a vector of deterministically named scalars,
// "<prefix>_<label>" for each label.
func Placeholders(prefix string, labels []string) Vector {
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = prefix + "_" + l
	}
	return Vector{names: names}
}

// Anonymous builds a vector of n unnamed scalars "<name>_0" .. "<name>_{n-1}".
func Anonymous(name string, n int) Vector {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s_%d", name, i)
	}
	return Vector{names: names}
}

// Len reports the number of scalars.
func (v Vector) Len() int { return len(v.names) }

// Names returns a copy of the scalar names.
func (v Vector) Names() []string {
	c := make([]string, len(v.names))
	copy(c, v.names)
	return c
}

// VertCat concatenates placeholder vectors vertically.
func VertCat(vs ...Vector) Vector {
	var names []string
	for _, v := range vs {
		names = append(names, v.names...)
	}
	return Vector{names: names}
}

// Expr is a closure-backed expression over the three compiled inputs. Rows
// is the fixed height of the result.
type Expr struct {
	Rows int
	Eval func(x, u, p []float64) []float64
}

// Concat vertically concatenates expressions, mirroring vertcat on
// expression graphs.
func Concat(parts ...Expr) Expr {
	rows := 0
	for _, p := range parts {
		rows += p.Rows
	}
	evals := make([]Expr, len(parts))
	copy(evals, parts)
	return Expr{
		Rows: rows,
		Eval: func(x, u, p []float64) []float64 {
			out := make([]float64, 0, rows)
			for _, e := range evals {
				out = append(out, e.Eval(x, u, p)...)
			}
			return out
		},
	}
}
