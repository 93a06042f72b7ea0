package ocp

// ControlType is the interpolation convention for control signals within a
// shooting interval.
type ControlType int

const (
	// ControlConstant holds one value across each interval.
	ControlConstant ControlType = iota
	// ControlLinearContinuous declares interval-start and interval-end
	// values, linearly interpolated in between.
	ControlLinearContinuous
)

// Multiplier is the number of declared columns per quantity per interval.
func (c ControlType) Multiplier() int {
	if c == ControlLinearContinuous {
		return 2
	}
	return 1
}

func (c ControlType) String() string {
	switch c {
	case ControlConstant:
		return "constant"
	case ControlLinearContinuous:
		return "linear_continuous"
	}
	return "unknown"
}
