package ocp

import (
	"fmt"

	"github.com/san-kum/trajopt/internal/mapping"
	"github.com/san-kum/trajopt/internal/plot"
	"github.com/san-kum/trajopt/internal/symbolic"
)

// Problem is a fully configured multi-phase trajectory optimization
// problem. Construction runs each phase through declaration, dynamics
// compilation and contact compilation, in phase order, then freezes
// everything.
type Problem struct {
	phases       []*Phase
	parameters   symbolic.Vector
	contactNames []string
}

// NewProblem configures all phases and assembles the problem. parameters
// are the problem-level placeholders every compiled function receives as
// its third input; pass an empty vector when there are none.
func NewProblem(parameters symbolic.Vector, builders ...*PhaseBuilder) (*Problem, error) {
	if len(builders) == 0 {
		return nil, ErrNoPhases
	}

	for i, b := range builders {
		if b.stage != StageUnconfigured {
			return nil, fmt.Errorf("%w: phase %d %q is %s", ErrPhaseConfigured, i, b.name, b.stage)
		}
		b.index = i
		b.parameters = parameters

		if err := initializePhase(b); err != nil {
			return nil, fmt.Errorf("phase %d %q: %w", i, b.name, err)
		}
	}

	// Contact configuration is a two-pass process: collect the global
	// contact legend first, then derive each phase's local-to-global
	// mapping, so no phase depends on configuration order.
	contactNames := collectContactNames(builders)
	for i, b := range builders {
		if err := configureContact(b, contactNames); err != nil {
			return nil, fmt.Errorf("phase %d %q: %w", i, b.name, err)
		}
	}

	p := &Problem{parameters: parameters, contactNames: contactNames}
	for _, b := range builders {
		p.phases = append(p.phases, b.build())
	}
	return p, nil
}

// initializePhase dispatches the phase's declared configuration routine and
// compiles its dynamics.
func initializePhase(b *PhaseBuilder) error {
	spec, ok := kindTable[b.kind]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownKind, b.kind)
	}

	declare := spec.declare
	if b.kind == Custom {
		if b.customConfigure == nil {
			return ErrNoCustomConfigure
		}
		declare = b.customConfigure
	}
	if err := declare(b); err != nil {
		return err
	}
	b.stage = StageQuantitiesDeclared

	dynamics := spec.dynamics
	if b.customDynamics != nil {
		dynamics = b.customDynamics
	}
	if dynamics == nil {
		return ErrNoCustomDynamics
	}
	if err := b.compileDynamics(dynamics); err != nil {
		return err
	}
	b.stage = StageDynamicsCompiled
	return nil
}

// compileDynamics builds fresh placeholders sized to the total state,
// control and parameter widths and compiles the derivative expression. A
// width mismatch between the expression and the state vector is a
// configuration error.
func (b *PhaseBuilder) compileDynamics(fn DynamicsFunc) error {
	nx := b.states.Width()
	nu := b.controls.Width()
	np := b.parameters.Len()

	x := symbolic.Anonymous("x", nx)
	u := symbolic.Anonymous("u", nu)
	p := symbolic.Anonymous("p", np)

	exprs, err := fn(x, u, p, b)
	if err != nil {
		return err
	}
	f, err := symbolic.Compile("ForwardDyn", nx, nu, np, symbolic.Concat(exprs...), "xdot", nx)
	if err != nil {
		return err
	}
	b.dynamics = f.Expand()
	return nil
}

// collectContactNames gathers every phase's model-reported contact names
// into one ordered legend, first-seen order, no duplicates.
func collectContactNames(builders []*PhaseBuilder) []string {
	var names []string
	seen := make(map[string]bool)
	for _, b := range builders {
		for _, n := range b.model.ContactNames() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

// configureContact compiles the phase's contact-force function, if its kind
// declares one, and aligns the phase's rows on the global contact legend.
func configureContact(b *PhaseBuilder, globalNames []string) error {
	fn := kindTable[b.kind].contact
	if b.customContact != nil {
		fn = b.customContact
	}
	if fn == nil {
		return nil
	}

	nx := b.states.Width()
	nu := b.controls.Width()
	np := b.parameters.Len()
	rows := len(b.model.ContactNames())

	x := symbolic.Anonymous("x", nx)
	u := symbolic.Anonymous("u", nu)
	p := symbolic.Anonymous("p", np)

	exprs, err := fn(x, u, p, b)
	if err != nil {
		return err
	}
	f, err := symbolic.Compile("ContactForces", nx, nu, np, symbolic.Concat(exprs...), "contact_forces", rows)
	if err != nil {
		return err
	}
	b.contact = f.Expand()

	axes, ok := b.plotAxes["contact_forces"]
	if !ok {
		axes = deriveContactAxes(b.model.ContactNames(), globalNames)
	}

	contact := b.contact
	b.plots["contact_forces"] = plot.Descriptor{
		Accessor: contactAccessor(contact),
		Type:     plot.Integrated,
		Legend:   globalNames,
		Axes:     axes,
		HasAxes:  true,
	}
	b.stage = StageContactCompiled
	return nil
}

// deriveContactAxes maps each local contact row onto its position in the
// global legend, by name match rather than position.
func deriveContactAxes(local, global []string) mapping.Mapping {
	pos := make(map[string]int, len(global))
	for i, n := range global {
		pos[n] = i
	}
	idx := make([]int, len(local))
	for i, n := range local {
		if j, ok := pos[n]; ok {
			idx[i] = j
		} else {
			idx[i] = mapping.Unmapped
		}
	}
	return mapping.New(idx...)
}

// contactAccessor evaluates the compiled contact-force function column by
// column over the node blocks.
func contactAccessor(f *symbolic.Function) plot.Accessor {
	return func(x, u, p [][]float64) ([][]float64, error) {
		cols := 0
		if len(x) > 0 {
			cols = len(x[0])
		}
		out := make([][]float64, f.Rows())
		for r := range out {
			out[r] = make([]float64, cols)
		}
		for c := 0; c < cols; c++ {
			forces, err := f.Call(column(x, c), column(u, c), column(p, c))
			if err != nil {
				return nil, fmt.Errorf("ocp: contact forces at node %d: %w", c, err)
			}
			for r, v := range forces {
				out[r][c] = v
			}
		}
		return out, nil
	}
}

func column(block [][]float64, c int) []float64 {
	col := make([]float64, len(block))
	for i, row := range block {
		if c < len(row) {
			col[i] = row[c]
		}
	}
	return col
}

// Phases returns the configured phases in order.
func (p *Problem) Phases() []*Phase {
	c := make([]*Phase, len(p.phases))
	copy(c, p.phases)
	return c
}

// Phase returns the i-th phase.
func (p *Problem) Phase(i int) *Phase { return p.phases[i] }

// NbPhases returns the phase count.
func (p *Problem) NbPhases() int { return len(p.phases) }

// Parameters returns the problem-level parameter placeholders.
func (p *Problem) Parameters() symbolic.Vector { return p.parameters }

// ContactNames returns the global contact legend, the union of every
// phase's contact names in first-seen order.
func (p *Problem) ContactNames() []string {
	c := make([]string, len(p.contactNames))
	copy(c, p.contactNames)
	return c
}
