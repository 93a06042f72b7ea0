package model

import (
	"math"
	"testing"
)

func TestPlanarArmDimensions(t *testing.T) {
	a := NewPlanarArm()

	if a.NbQ() != 2 || a.NbQdot() != 2 || a.NbTau() != 2 {
		t.Errorf("expected 2/2/2 dims, got %d/%d/%d", a.NbQ(), a.NbQdot(), a.NbTau())
	}
	if len(a.DofNames()) != a.NbQ() {
		t.Errorf("expected %d dof names, got %d", a.NbQ(), len(a.DofNames()))
	}
	if len(a.MuscleNames()) != 4 {
		t.Errorf("expected 4 muscles, got %d", len(a.MuscleNames()))
	}
	if len(a.ContactNames()) != 0 {
		t.Error("contact names should be empty without contact")
	}

	a.WithContact = true
	if len(a.ContactNames()) != 2 {
		t.Errorf("expected 2 contact names, got %d", len(a.ContactNames()))
	}
}

func TestPlanarArmEquilibrium(t *testing.T) {
	a := NewPlanarArm()
	a.Damping = 0

	qddot := a.ForwardDynamics([]float64{0, 0}, []float64{0, 0}, []float64{0, 0})
	for i, v := range qddot {
		if math.Abs(v) > 1e-10 {
			t.Errorf("expected zero acceleration at hanging equilibrium, got qddot[%d]=%f", i, v)
		}
	}
}

func TestPlanarArmTorqueResponse(t *testing.T) {
	a := NewPlanarArm()

	qddot := a.ForwardDynamics([]float64{0, 0}, []float64{0, 0}, []float64{5, 0})
	if qddot[0] <= 0 {
		t.Errorf("positive shoulder torque should accelerate shoulder, got %f", qddot[0])
	}
}

func TestPlanarArmMuscleTorque(t *testing.T) {
	a := NewPlanarArm()

	tau := a.MuscleTorque([]float64{1, 0, 0, 1}, []float64{0, 0}, []float64{0, 0})
	if tau[0] <= 0 {
		t.Errorf("shoulder flexor alone should produce positive torque, got %f", tau[0])
	}
	if tau[1] >= 0 {
		t.Errorf("elbow extensor alone should produce negative torque, got %f", tau[1])
	}
}

func TestPlanarArmActivationDot(t *testing.T) {
	a := NewPlanarArm()

	adot := a.ActivationDot([]float64{1, 0}, []float64{0, 1})
	if adot[0] <= 0 {
		t.Error("activation should rise toward higher excitation")
	}
	if adot[1] >= 0 {
		t.Error("activation should fall toward lower excitation")
	}
	// Rise is faster than fall.
	if math.Abs(adot[0]) <= math.Abs(adot[1]) {
		t.Errorf("rise (%f) should outpace fall (%f)", adot[0], adot[1])
	}
}

func TestPlanarArmContactForces(t *testing.T) {
	a := NewPlanarArm()
	a.WithContact = true

	_, forces := a.ForwardDynamicsWithContact([]float64{0.3, 0.2}, []float64{1, 0}, []float64{0, 0})
	if len(forces) != 2 {
		t.Fatalf("expected 2 contact forces, got %d", len(forces))
	}
	if forces[0] == 0 && forces[1] == 0 {
		t.Error("moving tip should see nonzero constraint forces")
	}
}
