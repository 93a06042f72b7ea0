package ocp

// Stage tracks a phase's one-way configuration progress. Transitions occur
// exactly once per phase during problem construction.
type Stage int

const (
	StageUnconfigured Stage = iota
	StageQuantitiesDeclared
	StageDynamicsCompiled
	StageContactCompiled
	StageSolvable
)

func (s Stage) String() string {
	switch s {
	case StageUnconfigured:
		return "unconfigured"
	case StageQuantitiesDeclared:
		return "quantities-declared"
	case StageDynamicsCompiled:
		return "dynamics-compiled"
	case StageContactCompiled:
		return "contact-compiled"
	case StageSolvable:
		return "solvable"
	}
	return "unknown"
}
