package ocp

import (
	"errors"
	"testing"

	"github.com/san-kum/trajopt/internal/mapping"
	"github.com/san-kum/trajopt/internal/model"
	"github.com/san-kum/trajopt/internal/symbolic"
)

// heelContact is a one-dof hopper with a contact set overlapping the
// planar arm's, for legend-union tests.
type heelContact struct{}

func (heelContact) NbQ() int              { return 1 }
func (heelContact) NbQdot() int           { return 1 }
func (heelContact) NbTau() int            { return 1 }
func (heelContact) DofNames() []string    { return []string{"hop"} }
func (heelContact) MuscleNames() []string { return nil }
func (heelContact) ContactNames() []string {
	return []string{"heel_z", "tip_x"}
}
func (heelContact) ForwardDynamics(q, qdot, tau []float64) []float64 {
	return []float64{tau[0]}
}
func (heelContact) ForwardDynamicsWithContact(q, qdot, tau []float64) (qddot, forces []float64) {
	return []float64{tau[0]}, []float64{-qdot[0], 0.5 * qdot[0]}
}

func contactArm() *model.PlanarArm {
	arm := model.NewPlanarArm()
	arm.WithContact = true
	return arm
}

func TestNoPhases(t *testing.T) {
	_, err := NewProblem(noParams())
	if !errors.Is(err, ErrNoPhases) {
		t.Errorf("expected ErrNoPhases, got %v", err)
	}
}

func TestBuilderReuse(t *testing.T) {
	b := NewPhaseBuilder("once", fourDof{}, TorqueDriven, 5, 1.0)
	if _, err := NewProblem(noParams(), b); err != nil {
		t.Fatalf("first build: %v", err)
	}
	_, err := NewProblem(noParams(), b)
	if !errors.Is(err, ErrPhaseConfigured) {
		t.Errorf("expected ErrPhaseConfigured on reuse, got %v", err)
	}
}

func TestCustomNeedsConfiguration(t *testing.T) {
	b := NewPhaseBuilder("custom", fourDof{}, Custom, 5, 1.0)
	_, err := NewProblem(noParams(), b)
	if !errors.Is(err, ErrNoCustomConfigure) {
		t.Errorf("expected ErrNoCustomConfigure, got %v", err)
	}
}

func TestCustomNeedsDynamics(t *testing.T) {
	b := NewPhaseBuilder("custom", fourDof{}, Custom, 5, 1.0)
	b.SetCustomConfiguration(func(b *PhaseBuilder) error {
		return b.ConfigureQQdot(true, false)
	})
	_, err := NewProblem(noParams(), b)
	if !errors.Is(err, ErrNoCustomDynamics) {
		t.Errorf("expected ErrNoCustomDynamics, got %v", err)
	}
}

func TestDynamicsWidthMismatch(t *testing.T) {
	b := NewPhaseBuilder("short", fourDof{}, TorqueDriven, 5, 1.0)
	b.SetCustomDynamics(func(x, u, p symbolic.Vector, b *PhaseBuilder) ([]symbolic.Expr, error) {
		return []symbolic.Expr{{
			Rows: 1,
			Eval: func(x, u, p []float64) []float64 { return []float64{0} },
		}}, nil
	})
	_, err := NewProblem(noParams(), b)
	if !errors.Is(err, symbolic.ErrWidthMismatch) {
		t.Errorf("expected width mismatch, got %v", err)
	}
}

func TestEveryKindDispatches(t *testing.T) {
	for kind := range kindTable {
		if kind == Custom {
			continue
		}
		b := NewPhaseBuilder(kind.String(), contactArm(), kind, 5, 1.0)
		prob, err := NewProblem(noParams(), b)
		if err != nil {
			t.Errorf("%s: %v", kind, err)
			continue
		}
		ph := prob.Phase(0)
		if ph.Dynamics() == nil {
			t.Errorf("%s: no dynamics compiled", kind)
			continue
		}
		x := make([]float64, ph.States().Width())
		u := make([]float64, ph.Controls().Width())
		if _, err := ph.Dynamics().Call(x, u, nil); err != nil {
			t.Errorf("%s: dynamics call: %v", kind, err)
		}
	}
}

func TestContactKindsCompileForces(t *testing.T) {
	withContact := map[Kind]bool{
		TorqueDrivenWithContact:                     true,
		TorqueDerivativeDrivenWithContact:           true,
		TorqueActivationsDrivenWithContact:          true,
		MuscleActivationsAndTorqueDrivenWithContact: true,
		MuscleExcitationsAndTorqueDrivenWithContact: true,
		TorqueDriven:                                false,
		MuscleActivationsDriven:                     false,
	}
	for kind, want := range withContact {
		b := NewPhaseBuilder(kind.String(), contactArm(), kind, 5, 1.0)
		prob, err := NewProblem(noParams(), b)
		if err != nil {
			t.Errorf("%s: %v", kind, err)
			continue
		}
		got := prob.Phase(0).ContactForces() != nil
		if got != want {
			t.Errorf("%s: contact function presence = %v, want %v", kind, got, want)
		}
	}
}

func TestContactKindNeedsContactModel(t *testing.T) {
	b := NewPhaseBuilder("flat", fourDof{}, TorqueDrivenWithContact, 5, 1.0)
	_, err := NewProblem(noParams(), b)
	if !errors.Is(err, ErrModelCapability) {
		t.Errorf("expected ErrModelCapability, got %v", err)
	}
}

func TestGlobalContactLegend(t *testing.T) {
	a := NewPhaseBuilder("arm", contactArm(), TorqueDrivenWithContact, 5, 1.0)
	h := NewPhaseBuilder("hopper", heelContact{}, TorqueDrivenWithContact, 5, 1.0)

	prob, err := NewProblem(noParams(), a, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// First-seen order across phases: arm contributes tip_x, tip_z;
	// the hopper adds heel_z.
	want := []string{"tip_x", "tip_z", "heel_z"}
	got := prob.ContactNames()
	if len(got) != len(want) {
		t.Fatalf("legend length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("legend[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Each phase plots against the global legend, with local rows mapped
	// onto global axes by name.
	dArm, ok := prob.Phase(0).Plot("contact_forces")
	if !ok {
		t.Fatal("arm phase has no contact plot")
	}
	if len(dArm.Legend) != 3 {
		t.Errorf("arm legend = %v, want the global one", dArm.Legend)
	}
	if idx := dArm.Axes.Indices(); idx[0] != 0 || idx[1] != 1 {
		t.Errorf("arm axes = %v, want [0 1]", idx)
	}

	dHop, _ := prob.Phase(1).Plot("contact_forces")
	if idx := dHop.Axes.Indices(); idx[0] != 2 || idx[1] != 0 {
		t.Errorf("hopper axes = %v, want [2 0]", idx)
	}
}

func TestContactPlotSurfacesEvaluationErrors(t *testing.T) {
	b := NewPhaseBuilder("arm", contactArm(), TorqueDrivenWithContact, 5, 1.0)
	prob, err := NewProblem(noParams(), b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, ok := prob.Phase(0).Plot("contact_forces")
	if !ok {
		t.Fatal("arm phase has no contact plot")
	}

	nx := prob.Phase(0).States().Width()
	nu := prob.Phase(0).Controls().Width()
	x := make([][]float64, nx)
	for i := range x {
		x[i] = []float64{0, 1}
	}
	u := make([][]float64, nu)
	for i := range u {
		u[i] = []float64{0, 0}
	}
	rows, err := d.Rows(x, u, nil)
	if err != nil {
		t.Fatalf("well-formed blocks: %v", err)
	}
	if len(rows) != 2 || len(rows[0]) != 2 {
		t.Errorf("expected a 2x2 force block, got %dx%d", len(rows), len(rows[0]))
	}

	// A truncated state block must come back as an error, not a block of
	// zero forces.
	if _, err := d.Rows(x[:1], u, nil); err == nil {
		t.Error("expected an error for a truncated state block")
	}
}

func TestContactAxesOverride(t *testing.T) {
	b := NewPhaseBuilder("arm", contactArm(), TorqueDrivenWithContact, 5, 1.0)
	b.SetPlotAxes("contact_forces", mapping.New(1, 0))

	prob, err := NewProblem(noParams(), b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, _ := prob.Phase(0).Plot("contact_forces")
	if idx := d.Axes.Indices(); idx[0] != 1 || idx[1] != 0 {
		t.Errorf("axes = %v, want the override [1 0]", idx)
	}
}

func TestParametersReachPhases(t *testing.T) {
	params := symbolic.Placeholders("gravity", []string{"z"})
	b := NewPhaseBuilder("p", fourDof{}, TorqueDriven, 5, 1.0)
	prob, err := NewProblem(params, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prob.Phase(0).Parameters().Len() != 1 {
		t.Errorf("expected parameter width 1, got %d", prob.Phase(0).Parameters().Len())
	}
	// With a declared parameter, calls must supply it.
	x := make([]float64, 8)
	u := make([]float64, 4)
	if _, err := prob.Phase(0).Dynamics().Call(x, u, nil); !errors.Is(err, symbolic.ErrInputWidth) {
		t.Errorf("expected ErrInputWidth for missing parameters, got %v", err)
	}
	if _, err := prob.Phase(0).Dynamics().Call(x, u, []float64{-9.81}); err != nil {
		t.Errorf("unexpected error with parameters supplied: %v", err)
	}
}
