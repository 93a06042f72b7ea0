package ocp

// Kind is the closed set of built-in phase dynamics, plus Custom for
// user-supplied configuration. Each kind maps to a fixed entry in the
// dispatch table; there is no dynamic selection by stored callable.
type Kind int

const (
	// TorqueDriven: states q and qdot, controls tau.
	TorqueDriven Kind = iota
	// TorqueDrivenWithContact adds contact-constrained dynamics and a
	// contact-force function.
	TorqueDrivenWithContact
	// TorqueDerivativeDriven: states q, qdot and tau, controls taudot.
	TorqueDerivativeDriven
	// TorqueDerivativeDrivenWithContact adds contact.
	TorqueDerivativeDrivenWithContact
	// TorqueActivationsDriven: controls are torque activations in [-1, 1],
	// converted to forces through the model's actuator relationship.
	TorqueActivationsDriven
	// TorqueActivationsDrivenWithContact adds contact.
	TorqueActivationsDrivenWithContact
	// MuscleActivationsDriven: states q and qdot, controls the muscle
	// activations.
	MuscleActivationsDriven
	// MuscleActivationsAndTorqueDriven adds a supplementary tau control.
	MuscleActivationsAndTorqueDriven
	// MuscleActivationsAndTorqueDrivenWithContact adds contact.
	MuscleActivationsAndTorqueDrivenWithContact
	// MuscleExcitationsDriven: muscle activations join the states, driven
	// by excitation controls through the activation dynamics.
	MuscleExcitationsDriven
	// MuscleExcitationsAndTorqueDriven adds a supplementary tau control.
	MuscleExcitationsAndTorqueDriven
	// MuscleExcitationsAndTorqueDrivenWithContact adds contact.
	MuscleExcitationsAndTorqueDrivenWithContact
	// Custom defers declarations and dynamics to user closures with the
	// same signature contract as the built-ins.
	Custom
)

func (k Kind) String() string {
	switch k {
	case TorqueDriven:
		return "torque_driven"
	case TorqueDrivenWithContact:
		return "torque_driven_with_contact"
	case TorqueDerivativeDriven:
		return "torque_derivative_driven"
	case TorqueDerivativeDrivenWithContact:
		return "torque_derivative_driven_with_contact"
	case TorqueActivationsDriven:
		return "torque_activations_driven"
	case TorqueActivationsDrivenWithContact:
		return "torque_activations_driven_with_contact"
	case MuscleActivationsDriven:
		return "muscle_activations_driven"
	case MuscleActivationsAndTorqueDriven:
		return "muscle_activations_and_torque_driven"
	case MuscleActivationsAndTorqueDrivenWithContact:
		return "muscle_activations_and_torque_driven_with_contact"
	case MuscleExcitationsDriven:
		return "muscle_excitations_driven"
	case MuscleExcitationsAndTorqueDriven:
		return "muscle_excitations_and_torque_driven"
	case MuscleExcitationsAndTorqueDrivenWithContact:
		return "muscle_excitations_and_torque_driven_with_contact"
	case Custom:
		return "custom"
	}
	return "unknown"
}

// KindFromString resolves a kind by its string form, for config loading.
func KindFromString(s string) (Kind, bool) {
	for k := TorqueDriven; k <= Custom; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}
