package ocp

import (
	"fmt"

	"github.com/san-kum/trajopt/internal/mapping"
	"github.com/san-kum/trajopt/internal/plot"
	"github.com/san-kum/trajopt/internal/symbolic"
	"github.com/san-kum/trajopt/internal/variables"
)

// quantityMapping resolves the bimapping of a quantity, defaulting to the
// identity sized to the model's native count. The default is registered in
// the set, so repeated configuration calls reuse the same mapping.
func (b *PhaseBuilder) quantityMapping(name string, native int) (mapping.BiMapping, error) {
	if bm, ok := b.mappings.Get(name); ok {
		return bm, b.validateMapping(name, bm, native)
	}
	bm := mapping.IdentityBi(native)
	if err := b.mappings.AddBiMapping(name, bm); err != nil {
		return mapping.BiMapping{}, err
	}
	return bm, nil
}

// validateMapping checks both directions against the model's native count,
// so an out-of-range index fails at configuration instead of evaluation.
// The full space must match the model exactly: the expanded vector is what
// the model evaluates, and the compiled closures never re-check widths.
func (b *PhaseBuilder) validateMapping(name string, bm mapping.BiMapping, native int) error {
	if bm.ToSecond.Len() != native {
		return fmt.Errorf("%w: %q to_second has %d rows, model evaluates %d", ErrMappingRange, name, bm.ToSecond.Len(), native)
	}
	for _, v := range bm.ToFirst.Indices() {
		if v == mapping.Unmapped {
			continue
		}
		if abs(v) >= native {
			return fmt.Errorf("%w: %q to_first references %d, model has %d", ErrMappingRange, name, abs(v), native)
		}
	}
	reduced := bm.ToFirst.Len()
	for _, v := range bm.ToSecond.Indices() {
		if v == mapping.Unmapped {
			continue
		}
		if abs(v) >= reduced {
			return fmt.Errorf("%w: %q to_second references %d, reduced space has %d", ErrMappingRange, name, abs(v), reduced)
		}
	}
	return nil
}

// reducedLabels names the reduced-space placeholders from the model's
// degree-of-freedom labels, following the to_first indices.
func reducedLabels(m mapping.Mapping, dofNames []string) []string {
	labels := make([]string, m.Len())
	for i, v := range m.Indices() {
		if v == mapping.Unmapped {
			labels[i] = fmt.Sprintf("zero_%d", i)
			continue
		}
		labels[i] = dofNames[abs(v)]
	}
	return labels
}

// fullLabels names the full-space placeholders positionally.
func fullLabels(n int, dofNames []string) []string {
	labels := make([]string, n)
	for i := range labels {
		if i < len(dofNames) {
			labels[i] = dofNames[i]
		} else {
			labels[i] = fmt.Sprintf("dof_%d", i)
		}
	}
	return labels
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// configureDof declares one coordinate-space quantity (q, qdot, tau,
// taudot) under the requested roles.
func (b *PhaseBuilder) configureDof(name, prefix string, native int, asStates, asControls bool, multiplied bool) error {
	bm, err := b.quantityMapping(name, native)
	if err != nil {
		return err
	}

	dof := b.model.DofNames()
	reduced := symbolic.Placeholders(prefix, reducedLabels(bm.ToFirst, dof))
	full := symbolic.Placeholders(prefix, fullLabels(bm.ToSecond.Len(), dof))

	legend := make([]string, reduced.Len())
	for i, l := range reducedLabels(bm.ToFirst, dof) {
		legend[i] = name + "_" + l
	}

	if asStates {
		e, err := b.states.Append(name, reduced, full, 1)
		if err != nil {
			return err
		}
		dreduced := symbolic.Placeholders(prefix+"dot", reducedLabels(bm.ToFirst, dof))
		dfull := symbolic.Placeholders(prefix+"dot", fullLabels(bm.ToSecond.Len(), dof))
		if _, err := b.stateDerivs.Append(name, dreduced, dfull, 1); err != nil {
			return err
		}
		b.plots[name] = plot.Descriptor{
			Accessor: stateAccessor(e),
			Type:     plot.Integrated,
			Legend:   legend,
			Bounds:   b.stateBoundsFor(e),
		}
	}

	if asControls {
		cols := 1
		if multiplied {
			cols = b.controlType.Multiplier()
		}
		e, err := b.controls.Append(name, reduced, full, cols)
		if err != nil {
			return err
		}
		if multiplied {
			b.plots[name] = plot.Descriptor{
				Accessor: controlAccessor(e),
				Type:     b.controlPlotType(),
				Legend:   legend,
				Bounds:   b.controlBoundsFor(e),
			}
		}
	}
	return nil
}

// ConfigureQ declares the generalized coordinates.
func (b *PhaseBuilder) ConfigureQ(asStates, asControls bool) error {
	return b.configureDof("q", "Q", b.model.NbQ(), asStates, asControls, false)
}

// ConfigureQdot declares the generalized velocities.
func (b *PhaseBuilder) ConfigureQdot(asStates, asControls bool) error {
	return b.configureDof("qdot", "Qdot", b.model.NbQdot(), asStates, asControls, false)
}

// ConfigureQQdot declares coordinates and velocities together.
func (b *PhaseBuilder) ConfigureQQdot(asStates, asControls bool) error {
	if err := b.ConfigureQ(asStates, asControls); err != nil {
		return err
	}
	return b.ConfigureQdot(asStates, asControls)
}

// ConfigureTau declares the generalized forces.
func (b *PhaseBuilder) ConfigureTau(asStates, asControls bool) error {
	return b.configureDof("tau", "Tau", b.model.NbTau(), asStates, asControls, true)
}

// ConfigureTaudot declares the generalized force derivatives.
func (b *PhaseBuilder) ConfigureTaudot(asStates, asControls bool) error {
	return b.configureDof("taudot", "Taudot", b.model.NbTau(), asStates, asControls, true)
}

// ConfigureMuscles declares the muscle activations (states) and/or
// excitations (controls).
func (b *PhaseBuilder) ConfigureMuscles(asStates, asControls bool) error {
	names := b.model.MuscleNames()
	if len(names) == 0 {
		return fmt.Errorf("%w: %s needs muscles, model has none", ErrModelCapability, b.kind)
	}
	if _, ok := b.mappings.Get("muscles"); !ok {
		if err := b.mappings.AddBiMapping("muscles", mapping.IdentityBi(len(names))); err != nil {
			return err
		}
	}

	ylim := [2]float64{0, 1}
	combine := ""

	if asStates {
		ph := symbolic.Placeholders("MuscleActivation", names)
		e, err := b.states.Append("muscles", ph, ph, 1)
		if err != nil {
			return err
		}
		dph := symbolic.Placeholders("MuscleActivationDot", names)
		if _, err := b.stateDerivs.Append("muscles", dph, dph, 1); err != nil {
			return err
		}
		b.plots["muscles_states"] = plot.Descriptor{
			Accessor: stateAccessor(e),
			Type:     plot.Integrated,
			Legend:   names,
			Bounds:   b.stateBoundsFor(e),
			YLim:     &ylim,
		}
		combine = "muscles_states"
	}

	if asControls {
		ph := symbolic.Placeholders("MuscleExcitation", names)
		e, err := b.controls.Append("muscles", ph, ph, b.controlType.Multiplier())
		if err != nil {
			return err
		}
		b.plots["muscles_controls"] = plot.Descriptor{
			Accessor:  controlAccessor(e),
			Type:      b.controlPlotType(),
			Legend:    names,
			Bounds:    b.controlBoundsFor(e),
			YLim:      &ylim,
			CombineTo: combine,
		}
	}
	return nil
}

func (b *PhaseBuilder) controlPlotType() plot.Type {
	if b.controlType == ControlLinearContinuous {
		return plot.Linear
	}
	return plot.Step
}

func (b *PhaseBuilder) stateBoundsFor(e variables.Entry) variables.Bounds {
	if b.hasXBounds && b.xBounds.Len() >= e.End {
		bounds, err := b.xBounds.SliceEntry(e)
		if err == nil {
			return bounds
		}
	}
	return variables.Unbounded(e.Width())
}

func (b *PhaseBuilder) controlBoundsFor(e variables.Entry) variables.Bounds {
	if b.hasUBounds && b.uBounds.Len() >= e.End {
		bounds, err := b.uBounds.SliceEntry(e)
		if err == nil {
			return bounds
		}
	}
	return variables.Unbounded(e.Width())
}

func stateAccessor(e variables.Entry) plot.Accessor {
	return func(x, u, p [][]float64) ([][]float64, error) {
		return x[e.Start:e.End], nil
	}
}

func controlAccessor(e variables.Entry) plot.Accessor {
	return func(x, u, p [][]float64) ([][]float64, error) {
		return u[e.Start:e.End], nil
	}
}
