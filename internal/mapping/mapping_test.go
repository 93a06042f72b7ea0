package mapping

import (
	"errors"
	"math"
	"testing"
)

func TestMapVector(t *testing.T) {
	m := New(0, 1, 1, 3, Unmapped, 1)
	x := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}

	got, err := m.MapVector(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{0.1, 0.2, 0.2, 0.4, 0, 0.2}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("row %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestMapNegativeIndex(t *testing.T) {
	m := New(-2)
	got, err := m.MapVector([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != -3 {
		t.Errorf("expected [-3], got %v", got)
	}
}

func TestMapColumnsPreserved(t *testing.T) {
	m := New(1, 0)
	src := [][]float64{{1, 2, 3}, {4, 5, 6}}

	got, err := m.Map(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || len(got[0]) != 3 {
		t.Fatalf("expected 2x3 output, got %dx%d", len(got), len(got[0]))
	}
	if got[0][0] != 4 || got[0][2] != 6 || got[1][1] != 2 {
		t.Errorf("rows not swapped: %v", got)
	}
}

func TestMapOutOfRange(t *testing.T) {
	m := New(0, 5)
	_, err := m.MapVector([]float64{1, 2})
	if !errors.Is(err, ErrIndexRange) {
		t.Errorf("expected ErrIndexRange, got %v", err)
	}
}

func TestMapRaggedSource(t *testing.T) {
	m := New(0, 1)
	_, err := m.Map([][]float64{{1, 2}, {3}})
	if err == nil {
		t.Error("expected error for ragged source")
	}
}

func TestLen(t *testing.T) {
	cases := [][]int{{}, {0}, {0, 1, 1, 3, Unmapped, 1}, {-2, -2, -2}}
	for _, idx := range cases {
		m := New(idx...)
		if m.Len() != len(idx) {
			t.Errorf("expected len %d, got %d", len(idx), m.Len())
		}
	}
}

func TestIdentity(t *testing.T) {
	m := Identity(4)
	x := []float64{1, 2, 3, 4}
	got, err := m.MapVector(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range x {
		if got[i] != x[i] {
			t.Errorf("row %d: expected %f, got %f", i, x[i], got[i])
		}
	}
}

func TestImmutable(t *testing.T) {
	idx := []int{0, 1, 2}
	m := New(idx...)
	idx[0] = 99
	if m.Indices()[0] != 0 {
		t.Error("mapping shares storage with caller slice")
	}

	out := m.Indices()
	out[1] = 99
	if m.Indices()[1] != 1 {
		t.Error("Indices leaks internal storage")
	}
}
