package ocp

// kindSpec fixes, per dynamics kind, the declaration routine, the built-in
// derivative builder, and the contact-force builder (nil when the kind has
// no contact).
type kindSpec struct {
	declare  ConfigureFunc
	dynamics DynamicsFunc
	contact  DynamicsFunc
}

func declareTorqueDriven(b *PhaseBuilder) error {
	if err := b.ConfigureQQdot(true, false); err != nil {
		return err
	}
	return b.ConfigureTau(false, true)
}

func declareTorqueDerivativeDriven(b *PhaseBuilder) error {
	if err := b.ConfigureQQdot(true, false); err != nil {
		return err
	}
	if err := b.ConfigureTau(true, false); err != nil {
		return err
	}
	return b.ConfigureTaudot(false, true)
}

func declareMuscleDriven(withTorque, excitations bool) ConfigureFunc {
	return func(b *PhaseBuilder) error {
		if err := b.ConfigureQQdot(true, false); err != nil {
			return err
		}
		if withTorque {
			if err := b.ConfigureTau(false, true); err != nil {
				return err
			}
		}
		return b.ConfigureMuscles(excitations, true)
	}
}

// kindTable is the static dispatch table: every built-in kind resolves to a
// fixed combination of declarations and compiled functions.
var kindTable = map[Kind]kindSpec{
	TorqueDriven: {
		declare:  declareTorqueDriven,
		dynamics: torqueDrivenDynamics(false),
	},
	TorqueDrivenWithContact: {
		declare:  declareTorqueDriven,
		dynamics: torqueDrivenDynamics(true),
		contact:  contactForcesFunc(directTorques),
	},
	TorqueDerivativeDriven: {
		declare:  declareTorqueDerivativeDriven,
		dynamics: torqueDerivativeDrivenDynamics(false),
	},
	TorqueDerivativeDrivenWithContact: {
		declare:  declareTorqueDerivativeDriven,
		dynamics: torqueDerivativeDrivenDynamics(true),
		contact:  contactForcesFunc(stateTorques),
	},
	TorqueActivationsDriven: {
		declare:  declareTorqueDriven,
		dynamics: torqueActivationsDynamics(false),
	},
	TorqueActivationsDrivenWithContact: {
		declare:  declareTorqueDriven,
		dynamics: torqueActivationsDynamics(true),
		contact:  contactForcesFunc(activationTorques),
	},
	MuscleActivationsDriven: {
		declare:  declareMuscleDriven(false, false),
		dynamics: muscleDynamics(false, false, false),
	},
	MuscleActivationsAndTorqueDriven: {
		declare:  declareMuscleDriven(true, false),
		dynamics: muscleDynamics(false, true, false),
	},
	MuscleActivationsAndTorqueDrivenWithContact: {
		declare:  declareMuscleDriven(true, false),
		dynamics: muscleDynamics(false, true, true),
		contact:  contactForcesFunc(muscleTorques(false, true)),
	},
	MuscleExcitationsDriven: {
		declare:  declareMuscleDriven(false, true),
		dynamics: muscleDynamics(true, false, false),
	},
	MuscleExcitationsAndTorqueDriven: {
		declare:  declareMuscleDriven(true, true),
		dynamics: muscleDynamics(true, true, false),
	},
	MuscleExcitationsAndTorqueDrivenWithContact: {
		declare:  declareMuscleDriven(true, true),
		dynamics: muscleDynamics(true, true, true),
		contact:  contactForcesFunc(muscleTorques(true, true)),
	},
	Custom: {},
}
