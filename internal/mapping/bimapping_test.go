package mapping

import (
	"errors"
	"testing"
)

func TestBiMappingDirections(t *testing.T) {
	// Reduced space of 2 expands into a symmetric full space of 3.
	bm := NewBiMapping([]int{0, 1, -1}, []int{0, 1})

	full, err := bm.ToSecond.MapVector([]float64{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if full[0] != 1 || full[1] != 2 || full[2] != -2 {
		t.Errorf("expected [1 2 -2], got %v", full)
	}

	reduced, err := bm.ToFirst.MapVector(full)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reduced[0] != 1 || reduced[1] != 2 {
		t.Errorf("expected [1 2], got %v", reduced)
	}
}

func TestIdentityBi(t *testing.T) {
	bm := IdentityBi(3)
	if bm.ToSecond.Len() != 3 || bm.ToFirst.Len() != 3 {
		t.Errorf("expected both directions of len 3, got %d and %d", bm.ToSecond.Len(), bm.ToFirst.Len())
	}
}

func TestSetDuplicateName(t *testing.T) {
	s := NewSet()
	if err := s.Add("q", []int{0, 1}, []int{0, 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := s.Add("q", []int{0}, []int{0})
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestSetOrder(t *testing.T) {
	s := NewSet()
	for _, name := range []string{"q", "qdot", "tau"} {
		if err := s.Add(name, []int{0}, []int{0}); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	names := s.Names()
	if len(names) != 3 || names[0] != "q" || names[1] != "qdot" || names[2] != "tau" {
		t.Errorf("insertion order not preserved: %v", names)
	}
	if !s.Has("qdot") {
		t.Error("expected qdot to be registered")
	}
	if _, ok := s.Get("muscles"); ok {
		t.Error("expected muscles to be absent")
	}
}
