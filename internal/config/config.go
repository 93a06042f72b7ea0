// Package config loads and saves YAML problem descriptions and turns them
// into configured problems with rollout inputs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/trajopt/internal/integrators"
	"github.com/san-kum/trajopt/internal/mapping"
	"github.com/san-kum/trajopt/internal/model"
	"github.com/san-kum/trajopt/internal/ocp"
	"github.com/san-kum/trajopt/internal/solve"
	"github.com/san-kum/trajopt/internal/symbolic"
	"github.com/san-kum/trajopt/internal/variables"
)

const (
	DefaultShooting = 20
	DefaultDuration = 1.0
	DefaultSteps    = 5
)

type Config struct {
	Integrator       string        `yaml:"integrator"`
	StepsPerInterval int           `yaml:"steps_per_interval"`
	Merge            MergeConfig   `yaml:"merge"`
	Phases           []PhaseConfig `yaml:"phases"`
}

type MergeConfig struct {
	Phases bool `yaml:"phases"`
	Nodes  bool `yaml:"nodes"`
}

type PhaseConfig struct {
	Name        string                   `yaml:"name"`
	Model       string                   `yaml:"model"`
	Kind        string                   `yaml:"kind"`
	ControlType string                   `yaml:"control_type"`
	Shooting    int                      `yaml:"shooting"`
	Duration    float64                  `yaml:"duration"`
	X0          []float64                `yaml:"x0"`
	Controls    [][]float64              `yaml:"controls"`
	Mappings    map[string]MappingConfig `yaml:"mappings"`
	StateMin    []float64                `yaml:"state_min"`
	StateMax    []float64                `yaml:"state_max"`
}

type MappingConfig struct {
	ToSecond []int `yaml:"to_second"`
	ToFirst  []int `yaml:"to_first"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator:       "rk4",
		StepsPerInterval: DefaultSteps,
		Merge:            MergeConfig{Phases: true, Nodes: true},
		Phases: []PhaseConfig{{
			Name:     "main",
			Model:    "planar_arm",
			Kind:     "torque_driven",
			Shooting: DefaultShooting,
			Duration: DefaultDuration,
		}},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Phases = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Phases) == 0 {
		cfg.Phases = DefaultConfig().Phases
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildModel resolves a model name to an instance.
func BuildModel(name string) (model.Model, error) {
	switch name {
	case "planar_arm", "":
		return model.NewPlanarArm(), nil
	case "planar_arm_contact":
		arm := model.NewPlanarArm()
		arm.WithContact = true
		return arm, nil
	}
	return nil, fmt.Errorf("config: unknown model %q", name)
}

// BuildStepper resolves an integrator name.
func BuildStepper(name string) (integrators.Stepper, error) {
	switch name {
	case "rk4", "":
		return integrators.NewRK4(), nil
	case "euler":
		return integrators.NewEuler(), nil
	}
	return nil, fmt.Errorf("config: unknown integrator %q", name)
}

// BuildProblem configures all declared phases into a problem.
func (c *Config) BuildProblem() (*ocp.Problem, error) {
	builders := make([]*ocp.PhaseBuilder, 0, len(c.Phases))
	for i, pc := range c.Phases {
		b, err := pc.builder(i)
		if err != nil {
			return nil, err
		}
		builders = append(builders, b)
	}
	return ocp.NewProblem(symbolic.NewVector(), builders...)
}

func (pc PhaseConfig) builder(i int) (*ocp.PhaseBuilder, error) {
	m, err := BuildModel(pc.Model)
	if err != nil {
		return nil, fmt.Errorf("phase %d: %w", i, err)
	}
	kind, ok := ocp.KindFromString(pc.Kind)
	if !ok {
		return nil, fmt.Errorf("config: phase %d: unknown kind %q", i, pc.Kind)
	}
	shooting := pc.Shooting
	if shooting <= 0 {
		shooting = DefaultShooting
	}
	duration := pc.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}
	name := pc.Name
	if name == "" {
		name = fmt.Sprintf("phase_%d", i)
	}

	b := ocp.NewPhaseBuilder(name, m, kind, shooting, duration)
	switch pc.ControlType {
	case "", "constant":
	case "linear_continuous":
		b.SetControlType(ocp.ControlLinearContinuous)
	default:
		return nil, fmt.Errorf("config: phase %d: unknown control type %q", i, pc.ControlType)
	}

	for quantity, mc := range pc.Mappings {
		if err := b.SetMapping(quantity, mapping.NewBiMapping(mc.ToSecond, mc.ToFirst)); err != nil {
			return nil, fmt.Errorf("config: phase %d: mapping %q: %w", i, quantity, err)
		}
	}
	if pc.StateMin != nil || pc.StateMax != nil {
		bounds, err := variables.NewBounds(pc.StateMin, pc.StateMax)
		if err != nil {
			return nil, fmt.Errorf("config: phase %d: %w", i, err)
		}
		b.SetStateBounds(bounds)
	}
	return b, nil
}

// RolloutInputs assembles the per-phase numeric inputs declared in the
// file, filling absent control blocks with zeros sized to the layout.
func (c *Config) RolloutInputs(prob *ocp.Problem) ([]solve.PhaseInput, error) {
	if len(c.Phases) != prob.NbPhases() {
		return nil, fmt.Errorf("config: %d phase blocks for %d phases", len(c.Phases), prob.NbPhases())
	}
	inputs := make([]solve.PhaseInput, prob.NbPhases())
	for i, pc := range c.Phases {
		ph := prob.Phase(i)
		controls := pc.Controls
		if controls == nil {
			cols := ph.Shooting()
			if ph.ControlType() == ocp.ControlLinearContinuous {
				cols++
			}
			controls = make([][]float64, ph.Controls().Width())
			for r := range controls {
				controls[r] = make([]float64, cols)
			}
		}
		inputs[i] = solve.PhaseInput{X0: pc.X0, Controls: controls}
	}
	return inputs, nil
}

// RolloutOptions resolves the configured integrator and step count.
func (c *Config) RolloutOptions() (solve.Options, error) {
	stepper, err := BuildStepper(c.Integrator)
	if err != nil {
		return solve.Options{}, err
	}
	steps := c.StepsPerInterval
	if steps <= 0 {
		steps = DefaultSteps
	}
	return solve.Options{Stepper: stepper, StepsPerInterval: steps}, nil
}
