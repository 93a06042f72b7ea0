// Package ocp configures the phases of a multi-phase trajectory
// optimization problem: which physical quantities are decision variables,
// how their indices map onto the model, and the compiled derivative and
// contact-force functions the solver evaluates.
package ocp

import (
	"fmt"

	"github.com/san-kum/trajopt/internal/mapping"
	"github.com/san-kum/trajopt/internal/model"
	"github.com/san-kum/trajopt/internal/plot"
	"github.com/san-kum/trajopt/internal/symbolic"
	"github.com/san-kum/trajopt/internal/variables"
)

// DynamicsFunc builds the symbolic expression(s) of a phase's state
// derivative (or contact forces) against the declared layout. x, u and p
// are the flattened placeholder vectors the compiled function will receive;
// multiple returned expressions are vertically concatenated.
type DynamicsFunc func(x, u, p symbolic.Vector, b *PhaseBuilder) ([]symbolic.Expr, error)

// ConfigureFunc declares a custom phase's states and controls, using the
// same Configure* routines the built-in kinds use.
type ConfigureFunc func(b *PhaseBuilder) error

// PhaseBuilder accumulates a phase's configuration into typed fields and
// yields an immutable Phase once problem construction completes.
type PhaseBuilder struct {
	name        string
	index       int
	model       model.Model
	kind        Kind
	controlType ControlType
	shooting    int
	duration    float64

	mappings     *mapping.Set
	states       *variables.Registry
	controls     *variables.Registry
	stateDerivs  *variables.Registry
	parameters   symbolic.Vector
	plots        map[string]plot.Descriptor
	plotAxes     map[string]mapping.Mapping
	xBounds      variables.Bounds
	uBounds      variables.Bounds
	hasXBounds   bool
	hasUBounds   bool

	customConfigure ConfigureFunc
	customDynamics  DynamicsFunc
	customContact   DynamicsFunc

	dynamics *symbolic.Function
	contact  *symbolic.Function
	stage    Stage
}

// NewPhaseBuilder starts the configuration of one phase. shooting is the
// number of shooting intervals, duration the phase time in seconds.
func NewPhaseBuilder(name string, m model.Model, kind Kind, shooting int, duration float64) *PhaseBuilder {
	return &PhaseBuilder{
		name:        name,
		model:       m,
		kind:        kind,
		controlType: ControlConstant,
		shooting:    shooting,
		duration:    duration,
		mappings:    mapping.NewSet(),
		states:      variables.NewRegistry(),
		controls:    variables.NewRegistry(),
		stateDerivs: variables.NewRegistry(),
		plots:       make(map[string]plot.Descriptor),
		plotAxes:    make(map[string]mapping.Mapping),
	}
}

// SetControlType selects the control parameterization.
func (b *PhaseBuilder) SetControlType(ct ControlType) { b.controlType = ct }

// SetMapping registers a quantity's bimapping ahead of configuration,
// overriding the identity default.
func (b *PhaseBuilder) SetMapping(name string, bm mapping.BiMapping) error {
	return b.mappings.AddBiMapping(name, bm)
}

// SetStateBounds declares bounds over the flat state vector, consumed by
// the per-quantity plot descriptors.
func (b *PhaseBuilder) SetStateBounds(bounds variables.Bounds) {
	b.xBounds = bounds
	b.hasXBounds = true
}

// SetControlBounds declares bounds over the flat control vector.
func (b *PhaseBuilder) SetControlBounds(bounds variables.Bounds) {
	b.uBounds = bounds
	b.hasUBounds = true
}

// SetCustomConfiguration supplies the declaration routine of a Custom
// phase.
func (b *PhaseBuilder) SetCustomConfiguration(fn ConfigureFunc) { b.customConfigure = fn }

// SetCustomDynamics substitutes a user derivative function. With a built-in
// kind the kind's declarations still apply; only the derivative changes.
func (b *PhaseBuilder) SetCustomDynamics(fn DynamicsFunc) { b.customDynamics = fn }

// SetCustomContact supplies a user contact-force function.
func (b *PhaseBuilder) SetCustomContact(fn DynamicsFunc) { b.customContact = fn }

// SetPlotAxes overrides the derived plot-axis mapping for a quantity
// ("contact_forces" aligns phases on the global contact legend).
func (b *PhaseBuilder) SetPlotAxes(quantity string, m mapping.Mapping) {
	b.plotAxes[quantity] = m
}

// Model returns the phase's physical model.
func (b *PhaseBuilder) Model() model.Model { return b.model }

// ControlType returns the declared control parameterization.
func (b *PhaseBuilder) ControlType() ControlType { return b.controlType }

// States returns the state registry.
func (b *PhaseBuilder) States() *variables.Registry { return b.states }

// Controls returns the control registry.
func (b *PhaseBuilder) Controls() *variables.Registry { return b.controls }

// StateDerivatives returns the builder's state-derivative registry.
func (b *PhaseBuilder) StateDerivatives() *variables.Registry { return b.stateDerivs }

// Mappings returns the phase's quantity mapping set, including defaulted
// identity entries.
func (b *PhaseBuilder) Mappings() *mapping.Set { return b.mappings }

// build freezes the builder into an immutable Phase.
func (b *PhaseBuilder) build() *Phase {
	b.stage = StageSolvable
	return &Phase{
		name:        b.name,
		index:       b.index,
		model:       b.model,
		kind:        b.kind,
		controlType: b.controlType,
		shooting:    b.shooting,
		duration:    b.duration,
		mappings:    b.mappings,
		states:      b.states,
		controls:    b.controls,
		stateDerivs: b.stateDerivs,
		parameters:  b.parameters,
		plots:       b.plots,
		dynamics:    b.dynamics,
		contact:     b.contact,
	}
}

// Phase is one immutable, fully configured segment of the trajectory. Only
// the numeric values bound to its placeholders change during solving.
type Phase struct {
	name        string
	index       int
	model       model.Model
	kind        Kind
	controlType ControlType
	shooting    int
	duration    float64

	mappings    *mapping.Set
	states      *variables.Registry
	controls    *variables.Registry
	stateDerivs *variables.Registry
	parameters  symbolic.Vector
	plots       map[string]plot.Descriptor

	dynamics *symbolic.Function
	contact  *symbolic.Function
}

// Name returns the phase name.
func (p *Phase) Name() string { return p.name }

// Index returns the phase's position in the problem.
func (p *Phase) Index() int { return p.index }

// Model returns the phase's physical model.
func (p *Phase) Model() model.Model { return p.model }

// Kind returns the phase's dynamics kind.
func (p *Phase) Kind() Kind { return p.kind }

// ControlType returns the control parameterization.
func (p *Phase) ControlType() ControlType { return p.controlType }

// Shooting returns the number of shooting intervals.
func (p *Phase) Shooting() int { return p.shooting }

// Duration returns the phase time in seconds.
func (p *Phase) Duration() float64 { return p.duration }

// States returns the state registry.
func (p *Phase) States() *variables.Registry { return p.states }

// Controls returns the control registry.
func (p *Phase) Controls() *variables.Registry { return p.controls }

// StateDerivatives returns the state-derivative registry. It mirrors the
// state registry row for row, naming each declared quantity's slot in the
// compiled xdot output.
func (p *Phase) StateDerivatives() *variables.Registry { return p.stateDerivs }

// Mappings returns the quantity mapping set.
func (p *Phase) Mappings() *mapping.Set { return p.mappings }

// Parameters returns the problem-level parameter placeholders.
func (p *Phase) Parameters() symbolic.Vector { return p.parameters }

// Dynamics returns the compiled state-derivative function.
func (p *Phase) Dynamics() *symbolic.Function { return p.dynamics }

// ContactForces returns the compiled contact-force function, nil when the
// phase has none.
func (p *Phase) ContactForces() *symbolic.Function { return p.contact }

// Plot returns the plot descriptor attached under name.
func (p *Phase) Plot(name string) (plot.Descriptor, bool) {
	d, ok := p.plots[name]
	return d, ok
}

// PlotNames returns the attached plot descriptor names.
func (p *Phase) PlotNames() []string {
	names := make([]string, 0, len(p.plots))
	for n := range p.plots {
		names = append(names, n)
	}
	return names
}

func (p *Phase) String() string {
	return fmt.Sprintf("phase %d %q: %s, %d states, %d controls, %d intervals",
		p.index, p.name, p.kind, p.states.Width(), p.controls.Width(), p.shooting)
}
