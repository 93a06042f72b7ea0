package ocp

import (
	"fmt"

	"github.com/san-kum/trajopt/internal/mapping"
	"github.com/san-kum/trajopt/internal/model"
	"github.com/san-kum/trajopt/internal/symbolic"
	"github.com/san-kum/trajopt/internal/variables"
)

// applyMap applies a pre-validated mapping. The configurator checked every
// index against the model at declaration time, so a failure here is a bug.
func applyMap(m mapping.Mapping, v []float64) []float64 {
	out, err := m.MapVector(v)
	if err != nil {
		panic(fmt.Sprintf("ocp: validated mapping failed: %v", err))
	}
	return out
}

// dofState captures the q/qdot layout a derivative closure slices by.
type dofState struct {
	qE, qdotE variables.Entry
	qBM       mapping.BiMapping
	qdotBM    mapping.BiMapping
}

func (b *PhaseBuilder) dofState() (dofState, error) {
	qE, ok := b.states.Get("q")
	if !ok {
		return dofState{}, fmt.Errorf("ocp: %s dynamics need q declared as state", b.kind)
	}
	qdotE, ok := b.states.Get("qdot")
	if !ok {
		return dofState{}, fmt.Errorf("ocp: %s dynamics need qdot declared as state", b.kind)
	}
	qBM, _ := b.mappings.Get("q")
	qdotBM, _ := b.mappings.Get("qdot")
	return dofState{qE: qE, qdotE: qdotE, qBM: qBM, qdotBM: qdotBM}, nil
}

// fullQ expands the reduced coordinates out of the flat state vector.
func (d dofState) fullQ(x []float64) []float64 {
	return applyMap(d.qBM.ToSecond, x[d.qE.Start:d.qE.End])
}

func (d dofState) fullQdot(x []float64) []float64 {
	return applyMap(d.qdotBM.ToSecond, x[d.qdotE.Start:d.qdotE.End])
}

// reduce collapses full-space velocities and accelerations back into the
// [dq, qddot] head of the state derivative.
func (d dofState) reduce(qdotFull, qddotFull []float64) []float64 {
	dq := applyMap(d.qBM.ToFirst, qdotFull)
	ddq := applyMap(d.qdotBM.ToFirst, qddotFull)
	out := make([]float64, 0, len(dq)+len(ddq))
	out = append(out, dq...)
	return append(out, ddq...)
}

func (d dofState) width() int { return d.qE.Width() + d.qdotE.Width() }

func (b *PhaseBuilder) controlEntry(name string) (variables.Entry, error) {
	e, ok := b.controls.Get(name)
	if !ok {
		return variables.Entry{}, fmt.Errorf("ocp: %s dynamics need %s declared as control", b.kind, name)
	}
	return e, nil
}

func (b *PhaseBuilder) stateEntry(name string) (variables.Entry, error) {
	e, ok := b.states.Get(name)
	if !ok {
		return variables.Entry{}, fmt.Errorf("ocp: %s dynamics need %s declared as state", b.kind, name)
	}
	return e, nil
}

// torqueProvider builds a closure computing the full-space generalized
// forces of a phase whose torques come straight from a control or state
// entry ("tau"), optionally converted from activations.
func (b *PhaseBuilder) tauFromControl() (func(x, u []float64) []float64, error) {
	tauE, err := b.controlEntry("tau")
	if err != nil {
		return nil, err
	}
	tauBM, _ := b.mappings.Get("tau")
	return func(x, u []float64) []float64 {
		return applyMap(tauBM.ToSecond, u[tauE.Start:tauE.End])
	}, nil
}

func (b *PhaseBuilder) tauFromState() (func(x, u []float64) []float64, error) {
	tauE, err := b.stateEntry("tau")
	if err != nil {
		return nil, err
	}
	tauBM, _ := b.mappings.Get("tau")
	return func(x, u []float64) []float64 {
		return applyMap(tauBM.ToSecond, x[tauE.Start:tauE.End])
	}, nil
}

// torqueDrivenDynamics: xdot = [dq, qddot] with tau straight from the
// controls.
func torqueDrivenDynamics(withContact bool) DynamicsFunc {
	return func(_, _, _ symbolic.Vector, b *PhaseBuilder) ([]symbolic.Expr, error) {
		d, err := b.dofState()
		if err != nil {
			return nil, err
		}
		tau, err := b.tauFromControl()
		if err != nil {
			return nil, err
		}
		fd, err := b.forwardDynamics(withContact)
		if err != nil {
			return nil, err
		}
		return []symbolic.Expr{{
			Rows: d.width(),
			Eval: func(x, u, p []float64) []float64 {
				q, qdot := d.fullQ(x), d.fullQdot(x)
				return d.reduce(qdot, fd(q, qdot, tau(x, u)))
			},
		}}, nil
	}
}

// torqueDerivativeDrivenDynamics: xdot = [dq, qddot, dtau] with tau a state
// and taudot the control.
func torqueDerivativeDrivenDynamics(withContact bool) DynamicsFunc {
	return func(_, _, _ symbolic.Vector, b *PhaseBuilder) ([]symbolic.Expr, error) {
		d, err := b.dofState()
		if err != nil {
			return nil, err
		}
		tau, err := b.tauFromState()
		if err != nil {
			return nil, err
		}
		taudotE, err := b.controlEntry("taudot")
		if err != nil {
			return nil, err
		}
		fd, err := b.forwardDynamics(withContact)
		if err != nil {
			return nil, err
		}
		tauE, _ := b.states.Get("tau")
		return []symbolic.Expr{{
			Rows: d.width() + tauE.Width(),
			Eval: func(x, u, p []float64) []float64 {
				q, qdot := d.fullQ(x), d.fullQdot(x)
				head := d.reduce(qdot, fd(q, qdot, tau(x, u)))
				return append(head, u[taudotE.Start:taudotE.End]...)
			},
		}}, nil
	}
}

// torqueActivationsDynamics: controls are activations in [-1, 1], converted
// through the model's torque-activation relationship.
func torqueActivationsDynamics(withContact bool) DynamicsFunc {
	return func(_, _, _ symbolic.Vector, b *PhaseBuilder) ([]symbolic.Expr, error) {
		am, ok := b.model.(model.ActuatorModel)
		if !ok {
			return nil, fmt.Errorf("%w: %s needs a torque-activation relationship", ErrModelCapability, b.kind)
		}
		d, err := b.dofState()
		if err != nil {
			return nil, err
		}
		act, err := b.tauFromControl()
		if err != nil {
			return nil, err
		}
		fd, err := b.forwardDynamics(withContact)
		if err != nil {
			return nil, err
		}
		return []symbolic.Expr{{
			Rows: d.width(),
			Eval: func(x, u, p []float64) []float64 {
				q, qdot := d.fullQ(x), d.fullQdot(x)
				tau := am.TorqueFromActivations(act(x, u), q, qdot)
				return d.reduce(qdot, fd(q, qdot, tau))
			},
		}}, nil
	}
}

// muscleDynamics covers the activation- and excitation-driven kinds, with
// or without a supplementary tau control.
func muscleDynamics(excitations, withTorque, withContact bool) DynamicsFunc {
	return func(_, _, _ symbolic.Vector, b *PhaseBuilder) ([]symbolic.Expr, error) {
		mm, ok := b.model.(model.MuscleModel)
		if !ok {
			return nil, fmt.Errorf("%w: %s needs muscle actuation", ErrModelCapability, b.kind)
		}
		d, err := b.dofState()
		if err != nil {
			return nil, err
		}
		fd, err := b.forwardDynamics(withContact)
		if err != nil {
			return nil, err
		}

		musclesU, err := b.controlEntry("muscles")
		if err != nil {
			return nil, err
		}
		var musclesX variables.Entry
		if excitations {
			if musclesX, err = b.stateEntry("muscles"); err != nil {
				return nil, err
			}
		}
		var tau func(x, u []float64) []float64
		if withTorque {
			if tau, err = b.tauFromControl(); err != nil {
				return nil, err
			}
		}

		rows := d.width()
		if excitations {
			rows += musclesX.Width()
		}
		return []symbolic.Expr{{
			Rows: rows,
			Eval: func(x, u, p []float64) []float64 {
				q, qdot := d.fullQ(x), d.fullQdot(x)

				act := u[musclesU.Start:musclesU.End]
				if excitations {
					act = x[musclesX.Start:musclesX.End]
				}
				forces := mm.MuscleTorque(act, q, qdot)
				if withTorque {
					for i, v := range tau(x, u) {
						forces[i] += v
					}
				}

				out := d.reduce(qdot, fd(q, qdot, forces))
				if excitations {
					exc := u[musclesU.Start:musclesU.End]
					out = append(out, mm.ActivationDot(exc, act)...)
				}
				return out
			},
		}}, nil
	}
}

// forwardDynamics resolves the model evaluation, contact-constrained or
// free.
func (b *PhaseBuilder) forwardDynamics(withContact bool) (func(q, qdot, tau []float64) []float64, error) {
	if !withContact {
		return b.model.ForwardDynamics, nil
	}
	cm, ok := b.model.(model.ContactModel)
	if !ok || len(b.model.ContactNames()) == 0 {
		return nil, fmt.Errorf("%w: %s needs contact points", ErrModelCapability, b.kind)
	}
	return func(q, qdot, tau []float64) []float64 {
		qddot, _ := cm.ForwardDynamicsWithContact(q, qdot, tau)
		return qddot
	}, nil
}

// contactForcesFunc builds the contact-force expression shared by the
// with-contact kinds: same input extraction as the dynamics, but reporting
// the constraint forces.
func contactForcesFunc(torques func(b *PhaseBuilder) (func(x, u []float64) []float64, error)) DynamicsFunc {
	return func(_, _, _ symbolic.Vector, b *PhaseBuilder) ([]symbolic.Expr, error) {
		cm, ok := b.model.(model.ContactModel)
		if !ok || len(b.model.ContactNames()) == 0 {
			return nil, fmt.Errorf("%w: %s needs contact points", ErrModelCapability, b.kind)
		}
		d, err := b.dofState()
		if err != nil {
			return nil, err
		}
		tau, err := torques(b)
		if err != nil {
			return nil, err
		}
		return []symbolic.Expr{{
			Rows: len(b.model.ContactNames()),
			Eval: func(x, u, p []float64) []float64 {
				q, qdot := d.fullQ(x), d.fullQdot(x)
				_, forces := cm.ForwardDynamicsWithContact(q, qdot, tau(x, u))
				return forces
			},
		}}, nil
	}
}

// torque sources reused by the contact-force builders.

func directTorques(b *PhaseBuilder) (func(x, u []float64) []float64, error) {
	return b.tauFromControl()
}

func stateTorques(b *PhaseBuilder) (func(x, u []float64) []float64, error) {
	return b.tauFromState()
}

func activationTorques(b *PhaseBuilder) (func(x, u []float64) []float64, error) {
	am, ok := b.model.(model.ActuatorModel)
	if !ok {
		return nil, fmt.Errorf("%w: %s needs a torque-activation relationship", ErrModelCapability, b.kind)
	}
	d, err := b.dofState()
	if err != nil {
		return nil, err
	}
	act, err := b.tauFromControl()
	if err != nil {
		return nil, err
	}
	return func(x, u []float64) []float64 {
		return am.TorqueFromActivations(act(x, u), d.fullQ(x), d.fullQdot(x))
	}, nil
}

func muscleTorques(excitations, withTorque bool) func(b *PhaseBuilder) (func(x, u []float64) []float64, error) {
	return func(b *PhaseBuilder) (func(x, u []float64) []float64, error) {
		mm, ok := b.model.(model.MuscleModel)
		if !ok {
			return nil, fmt.Errorf("%w: %s needs muscle actuation", ErrModelCapability, b.kind)
		}
		d, err := b.dofState()
		if err != nil {
			return nil, err
		}
		musclesU, err := b.controlEntry("muscles")
		if err != nil {
			return nil, err
		}
		var musclesX variables.Entry
		if excitations {
			if musclesX, err = b.stateEntry("muscles"); err != nil {
				return nil, err
			}
		}
		var tau func(x, u []float64) []float64
		if withTorque {
			if tau, err = b.tauFromControl(); err != nil {
				return nil, err
			}
		}
		return func(x, u []float64) []float64 {
			act := u[musclesU.Start:musclesU.End]
			if excitations {
				act = x[musclesX.Start:musclesX.End]
			}
			forces := mm.MuscleTorque(act, d.fullQ(x), d.fullQdot(x))
			if withTorque {
				for i, v := range tau(x, u) {
					forces[i] += v
				}
			}
			return forces
		}, nil
	}
}
