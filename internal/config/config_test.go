package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Integrator != "rk4" {
		t.Errorf("expected integrator rk4, got %s", cfg.Integrator)
	}
	if cfg.StepsPerInterval <= 0 {
		t.Error("steps per interval should be positive")
	}
	if len(cfg.Phases) == 0 {
		t.Fatal("expected a default phase")
	}
	if cfg.Phases[0].Kind != "torque_driven" {
		t.Errorf("expected torque_driven default, got %s", cfg.Phases[0].Kind)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	cfg := GetPreset("arm_reach_hold")
	path := filepath.Join(t.TempDir(), "problem.yaml")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(loaded.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(loaded.Phases))
	}
	if loaded.Phases[0].Name != "reach" || loaded.Phases[1].Name != "hold" {
		t.Errorf("phase names lost: %q, %q", loaded.Phases[0].Name, loaded.Phases[1].Name)
	}
	if loaded.Phases[1].X0 != nil {
		t.Error("hold phase should chain from the previous arrival")
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.yaml")
	body := "phases:\n  - kind: torque_driven\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Integrator != "rk4" {
		t.Errorf("expected default integrator, got %s", cfg.Integrator)
	}
	if cfg.StepsPerInterval != DefaultSteps {
		t.Errorf("expected default step count, got %d", cfg.StepsPerInterval)
	}
}

func TestBuildProblem(t *testing.T) {
	prob, err := GetPreset("arm_swing").BuildProblem()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if prob.NbPhases() != 1 {
		t.Fatalf("expected 1 phase, got %d", prob.NbPhases())
	}
	ph := prob.Phase(0)
	if ph.States().Width() != 4 || ph.Controls().Width() != 2 {
		t.Errorf("unexpected layout: %d states, %d controls", ph.States().Width(), ph.Controls().Width())
	}
}

func TestBuildProblemUnknownKind(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Phases[0].Kind = "levitation_driven"
	if _, err := cfg.BuildProblem(); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestBuildProblemWithMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Phases[0].Mappings = map[string]MappingConfig{
		"q":    {ToSecond: []int{0, 0}, ToFirst: []int{0}},
		"qdot": {ToSecond: []int{0, 0}, ToFirst: []int{0}},
		"tau":  {ToSecond: []int{0, 0}, ToFirst: []int{0}},
	}
	prob, err := cfg.BuildProblem()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if prob.Phase(0).States().Width() != 2 {
		t.Errorf("expected reduced state width 2, got %d", prob.Phase(0).States().Width())
	}
}

func TestRolloutInputsZeroFill(t *testing.T) {
	cfg := GetPreset("arm_ramp")
	prob, err := cfg.BuildProblem()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	inputs, err := cfg.RolloutInputs(prob)
	if err != nil {
		t.Fatalf("inputs: %v", err)
	}
	// Linear-continuous controls get one column per node.
	if len(inputs[0].Controls) != 2 || len(inputs[0].Controls[0]) != 16 {
		t.Errorf("unexpected control block: %dx%d", len(inputs[0].Controls), len(inputs[0].Controls[0]))
	}
}

func TestRolloutOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Integrator = "euler"
	opts, err := cfg.RolloutOptions()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Stepper.Name() != "euler" {
		t.Errorf("expected euler stepper, got %s", opts.Stepper.Name())
	}

	cfg.Integrator = "leapfrog"
	if _, err := cfg.RolloutOptions(); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestPresetsBuild(t *testing.T) {
	for name := range Presets {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s missing", name)
		}
		if _, err := cfg.BuildProblem(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if len(ListPresets()) == 0 {
		t.Error("expected preset names")
	}
}
