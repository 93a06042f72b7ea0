package ocp

import "errors"

// Configuration errors. All of these surface at problem construction,
// never at solve time.
var (
	// ErrUnknownKind indicates a dynamics kind outside the dispatch table.
	ErrUnknownKind = errors.New("ocp: unknown dynamics kind")

	// ErrNoCustomConfigure indicates a Custom phase without a declaration
	// routine.
	ErrNoCustomConfigure = errors.New("ocp: custom phase has no configuration routine")

	// ErrNoCustomDynamics indicates a Custom phase without a derivative
	// function.
	ErrNoCustomDynamics = errors.New("ocp: custom phase has no dynamics function")

	// ErrPhaseConfigured indicates an attempt to configure a phase twice.
	ErrPhaseConfigured = errors.New("ocp: phase already configured")

	// ErrModelCapability indicates the phase's dynamics kind needs a model
	// capability (contact, muscles, torque activations) the model lacks.
	ErrModelCapability = errors.New("ocp: model does not support the declared dynamics kind")

	// ErrMappingRange indicates a quantity mapping referencing a degree of
	// freedom outside the model's native range.
	ErrMappingRange = errors.New("ocp: mapping index outside the model's degrees of freedom")

	// ErrNoPhases indicates problem construction with no phases.
	ErrNoPhases = errors.New("ocp: a problem needs at least one phase")
)
