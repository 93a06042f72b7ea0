package config

var Presets = map[string]*Config{
	"arm_swing": {
		Integrator:       "rk4",
		StepsPerInterval: 5,
		Merge:            MergeConfig{Phases: true, Nodes: true},
		Phases: []PhaseConfig{{
			Name: "swing", Model: "planar_arm", Kind: "torque_driven",
			Shooting: 30, Duration: 1.5,
			X0: []float64{0.3, 0.5, 0, 0},
		}},
	},
	"arm_reach_hold": {
		Integrator:       "rk4",
		StepsPerInterval: 5,
		Merge:            MergeConfig{Phases: true, Nodes: true},
		Phases: []PhaseConfig{
			{
				Name: "reach", Model: "planar_arm", Kind: "torque_driven",
				Shooting: 20, Duration: 1.0,
				X0: []float64{0.1, 0.1, 0, 0},
			},
			{
				Name: "hold", Model: "planar_arm", Kind: "torque_driven",
				Shooting: 10, Duration: 0.5,
			},
		},
	},
	"arm_contact": {
		Integrator:       "rk4",
		StepsPerInterval: 8,
		Merge:            MergeConfig{Phases: true, Nodes: true},
		Phases: []PhaseConfig{{
			Name: "press", Model: "planar_arm_contact", Kind: "torque_driven_with_contact",
			Shooting: 25, Duration: 1.0,
			X0: []float64{0.8, 1.2, 0, 0},
		}},
	},
	"arm_muscles": {
		Integrator:       "rk4",
		StepsPerInterval: 5,
		Merge:            MergeConfig{Phases: true, Nodes: true},
		Phases: []PhaseConfig{{
			Name: "activate", Model: "planar_arm", Kind: "muscle_excitations_and_torque_driven",
			Shooting: 20, Duration: 1.0,
			X0: []float64{0.3, 0.5, 0, 0, 0.1, 0.1, 0.1, 0.1},
		}},
	},
	"arm_ramp": {
		Integrator:       "rk4",
		StepsPerInterval: 5,
		Merge:            MergeConfig{Phases: true, Nodes: true},
		Phases: []PhaseConfig{{
			Name: "ramp", Model: "planar_arm", Kind: "torque_driven",
			ControlType: "linear_continuous",
			Shooting:    15, Duration: 1.0,
			X0: []float64{0.2, 0.2, 0, 0},
		}},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
