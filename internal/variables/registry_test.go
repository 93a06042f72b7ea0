package variables

import (
	"errors"
	"testing"

	"github.com/san-kum/trajopt/internal/symbolic"
)

func TestAppendAssignsRanges(t *testing.T) {
	r := NewRegistry()

	q, err := r.Append("q", symbolic.Anonymous("Q", 4), symbolic.Anonymous("Q", 4), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Start != 0 || q.End != 4 {
		t.Errorf("expected range [0, 4), got [%d, %d)", q.Start, q.End)
	}

	qdot, err := r.Append("qdot", symbolic.Anonymous("Qdot", 3), symbolic.Anonymous("Qdot", 4), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qdot.Start != 4 || qdot.End != 7 {
		t.Errorf("expected range [4, 7), got [%d, %d)", qdot.Start, qdot.End)
	}

	if r.Width() != 7 {
		t.Errorf("expected total width 7, got %d", r.Width())
	}
}

func TestAppendDuplicate(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Append("tau", symbolic.Anonymous("Tau", 2), symbolic.Anonymous("Tau", 2), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := r.Append("tau", symbolic.Anonymous("Tau", 2), symbolic.Anonymous("Tau", 2), 1)
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestColumnMultiplier(t *testing.T) {
	constant := NewRegistry()
	linear := NewRegistry()

	if _, err := constant.Append("tau", symbolic.Anonymous("Tau", 3), symbolic.Anonymous("Tau", 3), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := linear.Append("tau", symbolic.Anonymous("Tau", 3), symbolic.Anonymous("Tau", 3), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := linear.DecisionWidth(); got != 2*constant.DecisionWidth() {
		t.Errorf("linear-continuous width should double constant width, got %d vs %d", got, constant.DecisionWidth())
	}
	// The row range is unaffected by the multiplier.
	if constant.Width() != linear.Width() {
		t.Errorf("row widths should match, got %d vs %d", constant.Width(), linear.Width())
	}
}

func TestEntryIndices(t *testing.T) {
	r := NewRegistry()
	r.Append("q", symbolic.Anonymous("Q", 2), symbolic.Anonymous("Q", 2), 1)
	e, _ := r.Append("qdot", symbolic.Anonymous("Qdot", 2), symbolic.Anonymous("Qdot", 2), 1)

	idx := e.Indices()
	if len(idx) != 2 || idx[0] != 2 || idx[1] != 3 {
		t.Errorf("expected [2 3], got %v", idx)
	}
}

func TestBoundsSlice(t *testing.T) {
	b, err := NewBounds([]float64{-1, -2, -3}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := b.Slice(1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 || s.Min[0] != -2 || s.Max[1] != 3 {
		t.Errorf("unexpected slice: %+v", s)
	}

	if _, err := b.Slice(2, 5); !errors.Is(err, ErrRange) {
		t.Errorf("expected ErrRange, got %v", err)
	}
}

func TestBoundsMismatch(t *testing.T) {
	if _, err := NewBounds([]float64{0}, []float64{0, 1}); err == nil {
		t.Error("expected error for mismatched min/max")
	}
}
