package symbolic

import (
	"errors"
	"testing"
)

func TestPlaceholders(t *testing.T) {
	v := Placeholders("Q", []string{"shoulder", "elbow"})
	names := v.Names()
	if len(names) != 2 || names[0] != "Q_shoulder" || names[1] != "Q_elbow" {
		t.Errorf("unexpected names: %v", names)
	}
}

func TestVertCat(t *testing.T) {
	v := VertCat(NewVector("a", "b"), NewVector("c"))
	if v.Len() != 3 {
		t.Fatalf("expected len 3, got %d", v.Len())
	}
	if v.Names()[2] != "c" {
		t.Errorf("expected c, got %s", v.Names()[2])
	}
}

func TestConcat(t *testing.T) {
	e1 := Expr{Rows: 1, Eval: func(x, u, p []float64) []float64 { return []float64{x[0]} }}
	e2 := Expr{Rows: 2, Eval: func(x, u, p []float64) []float64 { return []float64{u[0], p[0]} }}

	e := Concat(e1, e2)
	if e.Rows != 3 {
		t.Fatalf("expected 3 rows, got %d", e.Rows)
	}
	out := e.Eval([]float64{1}, []float64{2}, []float64{3})
	if out[0] != 1 || out[1] != 2 || out[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", out)
	}
}

func TestCompileWidthMismatch(t *testing.T) {
	expr := Expr{Rows: 2, Eval: func(x, u, p []float64) []float64 { return []float64{0, 0} }}
	_, err := Compile("ForwardDyn", 4, 2, 0, expr, "xdot", 4)
	if !errors.Is(err, ErrWidthMismatch) {
		t.Errorf("expected ErrWidthMismatch, got %v", err)
	}
}

func TestCompileAndCall(t *testing.T) {
	expr := Expr{Rows: 2, Eval: func(x, u, p []float64) []float64 {
		return []float64{x[1], u[0]}
	}}
	fn, err := Compile("ForwardDyn", 2, 1, 0, expr, "xdot", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fn.Name() != "ForwardDyn" || fn.OutputName() != "xdot" {
		t.Errorf("unexpected naming: %s -> %s", fn.Name(), fn.OutputName())
	}

	out, err := fn.Call([]float64{1, 5}, []float64{7}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != 5 || out[1] != 7 {
		t.Errorf("expected [5 7], got %v", out)
	}

	if _, err := fn.Call([]float64{1}, []float64{7}, nil); !errors.Is(err, ErrInputWidth) {
		t.Errorf("expected ErrInputWidth, got %v", err)
	}

	if fn.Expand() != fn {
		t.Error("Expand should return the inlined function itself")
	}
}
