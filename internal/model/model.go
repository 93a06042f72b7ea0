// Package model defines the physical-model boundary the configurator builds
// decision-variable layouts against. The framework never computes forces
// itself; it queries an implementation of [Model] for degree-of-freedom
// counts, stable names, and forward-dynamics evaluations.
package model

// Model exposes a rigid-body (optionally muscle- and contact-augmented)
// physical model. Counts and names are fixed for the lifetime of a problem;
// the dynamics evaluations are pure.
type Model interface {
	// NbQ is the number of generalized coordinates.
	NbQ() int
	// NbQdot is the number of generalized velocities.
	NbQdot() int
	// NbTau is the number of generalized forces.
	NbTau() int

	// DofNames returns a stable ordered name per degree of freedom.
	DofNames() []string
	// MuscleNames returns the named muscle actuators, empty if none.
	MuscleNames() []string
	// ContactNames returns the named contact points, empty if none.
	ContactNames() []string

	// ForwardDynamics computes accelerations from coordinates, velocities
	// and generalized forces.
	ForwardDynamics(q, qdot, tau []float64) []float64
}

// ContactModel augments a Model with contact-constrained dynamics.
type ContactModel interface {
	Model

	// ForwardDynamicsWithContact computes accelerations under the active
	// contact constraints and the resulting contact forces, ordered as
	// ContactNames.
	ForwardDynamicsWithContact(q, qdot, tau []float64) (qddot, forces []float64)
}

// MuscleModel augments a Model with muscle actuation.
type MuscleModel interface {
	Model

	// MuscleTorque computes the joint torques produced by the given muscle
	// activations at the given configuration.
	MuscleTorque(activations, q, qdot []float64) []float64

	// ActivationDot computes the activation derivatives driven by the
	// given excitations.
	ActivationDot(excitations, activations []float64) []float64
}

// ActuatorModel augments a Model with a torque-activation relationship
// (activations in [-1, 1] scaled by position/velocity dependent limits).
type ActuatorModel interface {
	Model

	// TorqueFromActivations converts torque activations into generalized
	// forces at the given configuration.
	TorqueFromActivations(activations, q, qdot []float64) []float64
}
