package model

import "math"

const (
	DefaultMass    = 1.0
	DefaultLength  = 1.0
	DefaultGravity = 9.81

	// First-order muscle activation time constants.
	activationRise = 0.01
	activationFall = 0.04
)

// PlanarArm is a two-link planar arm with one flexor/extensor muscle pair
// per joint and an optional contact point at the tip. It is the reference
// implementation of the model boundary used by tests and the demo CLI.
type PlanarArm struct {
	M1, M2  float64
	L1, L2  float64
	Damping float64
	Gravity float64

	// WithContact enables the tip contact point pair.
	WithContact bool
	// ContactStiffness scales the tip constraint forces.
	ContactStiffness float64
}

// NewPlanarArm returns a PlanarArm with unit links.
func NewPlanarArm() *PlanarArm {
	return &PlanarArm{
		M1: DefaultMass, M2: DefaultMass,
		L1: DefaultLength, L2: DefaultLength,
		Damping:          0.1,
		Gravity:          DefaultGravity,
		ContactStiffness: 100.0,
	}
}

func (a *PlanarArm) NbQ() int    { return 2 }
func (a *PlanarArm) NbQdot() int { return 2 }
func (a *PlanarArm) NbTau() int  { return 2 }

func (a *PlanarArm) DofNames() []string {
	return []string{"shoulder", "elbow"}
}

func (a *PlanarArm) MuscleNames() []string {
	return []string{"shoulder_flex", "shoulder_ext", "elbow_flex", "elbow_ext"}
}

func (a *PlanarArm) ContactNames() []string {
	if !a.WithContact {
		return nil
	}
	return []string{"tip_x", "tip_z"}
}

// ForwardDynamics uses the coupled two-link equations, same formulation as
// a driven double pendulum.
func (a *PlanarArm) ForwardDynamics(q, qdot, tau []float64) []float64 {
	theta1, theta2 := q[0], q[1]
	omega1, omega2 := qdot[0], qdot[1]
	m1, m2, l1, l2, g := a.M1, a.M2, a.L1, a.L2, a.Gravity

	delta := theta2 - theta1
	sinD, cosD := math.Sin(delta), math.Cos(delta)

	den1 := (m1+m2)*l1 - m2*l1*cosD*cosD
	den2 := (l2 / l1) * den1

	alpha1 := (m2*l1*omega1*omega1*sinD*cosD +
		m2*g*math.Sin(theta2)*cosD +
		m2*l2*omega2*omega2*sinD -
		(m1+m2)*g*math.Sin(theta1) +
		tau[0] - a.Damping*omega1) / den1

	alpha2 := (-m2*l2*omega2*omega2*sinD*cosD +
		(m1+m2)*g*math.Sin(theta1)*cosD -
		(m1+m2)*l1*omega1*omega1*sinD -
		(m1+m2)*g*math.Sin(theta2) +
		tau[1] - a.Damping*omega2) / den2

	return []float64{alpha1, alpha2}
}

// ForwardDynamicsWithContact damps the tip motion through a penalty
// constraint and reports the resulting planar contact force pair.
func (a *PlanarArm) ForwardDynamicsWithContact(q, qdot, tau []float64) (qddot, forces []float64) {
	vx, vz := a.tipVelocity(q, qdot)
	fx := -a.ContactStiffness * vx
	fz := -a.ContactStiffness * vz

	// Project the tip force back onto the joints through the transpose
	// Jacobian and re-evaluate.
	jt := a.tipJacobian(q)
	tauC := []float64{
		tau[0] + jt[0][0]*fx + jt[1][0]*fz,
		tau[1] + jt[0][1]*fx + jt[1][1]*fz,
	}
	return a.ForwardDynamics(q, qdot, tauC), []float64{fx, fz}
}

// MuscleTorque maps the flexor/extensor pair of each joint to a net torque,
// with a linear force-length falloff away from the neutral pose.
func (a *PlanarArm) MuscleTorque(activations, q, qdot []float64) []float64 {
	tau := make([]float64, 2)
	for j := 0; j < 2; j++ {
		gain := 10.0 * (1.0 - 0.1*math.Abs(q[j]))
		if gain < 0 {
			gain = 0
		}
		tau[j] = gain * (activations[2*j] - activations[2*j+1])
	}
	return tau
}

// ActivationDot is the standard first-order excitation-activation dynamic
// with asymmetric rise and fall time constants.
func (a *PlanarArm) ActivationDot(excitations, activations []float64) []float64 {
	adot := make([]float64, len(activations))
	for i := range activations {
		tc := activationFall
		if excitations[i] > activations[i] {
			tc = activationRise
		}
		adot[i] = (excitations[i] - activations[i]) / tc
	}
	return adot
}

// TorqueFromActivations scales activations in [-1, 1] by a velocity
// dependent torque limit.
func (a *PlanarArm) TorqueFromActivations(activations, q, qdot []float64) []float64 {
	tau := make([]float64, 2)
	for j := 0; j < 2; j++ {
		limit := 50.0 / (1.0 + 0.5*math.Abs(qdot[j]))
		tau[j] = limit * activations[j]
	}
	return tau
}

func (a *PlanarArm) tipVelocity(q, qdot []float64) (vx, vz float64) {
	j := a.tipJacobian(q)
	vx = j[0][0]*qdot[0] + j[0][1]*qdot[1]
	vz = j[1][0]*qdot[0] + j[1][1]*qdot[1]
	return vx, vz
}

func (a *PlanarArm) tipJacobian(q []float64) [2][2]float64 {
	s1, c1 := math.Sin(q[0]), math.Cos(q[0])
	s12, c12 := math.Sin(q[0]+q[1]), math.Cos(q[0]+q[1])
	return [2][2]float64{
		{a.L1*c1 + a.L2*c12, a.L2 * c12},
		{a.L1*s1 + a.L2*s12, a.L2 * s12},
	}
}
