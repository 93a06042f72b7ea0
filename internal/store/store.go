// Package store persists rolled-out trajectories as runs: a metadata
// document plus a CSV of the merged time/state matrix, one directory per
// run.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/trajopt/internal/ocp"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type PhaseMetadata struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Shooting int     `json:"shooting"`
	Duration float64 `json:"duration"`
}

type RunMetadata struct {
	ID         string          `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	Integrator string          `json:"integrator"`
	Phases     []PhaseMetadata `json:"phases"`
	Labels     []string        `json:"labels"`
}

func phaseMetadata(prob *ocp.Problem) []PhaseMetadata {
	metas := make([]PhaseMetadata, prob.NbPhases())
	for i, ph := range prob.Phases() {
		metas[i] = PhaseMetadata{
			Name:     ph.Name(),
			Kind:     ph.Kind().String(),
			Shooting: ph.Shooting(),
			Duration: ph.Duration(),
		}
	}
	return metas
}

// Save writes one run. states is the merged rows-by-time matrix, labels
// names its rows, times is the matching time axis.
func (s *Store) Save(name string, prob *ocp.Problem, integrator string, times []float64, states [][]float64, labels []string) (string, error) {
	if len(labels) != len(states) {
		return "", fmt.Errorf("store: %d labels for %d state rows", len(labels), len(states))
	}

	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Integrator: integrator,
		Phases:     phaseMetadata(prob),
		Labels:     labels,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := append([]string{"time"}, labels...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for c := range times {
		row := []string{strconv.FormatFloat(times[c], 'f', 6, 64)}
		for r := range states {
			v := 0.0
			if c < len(states[r]) {
				v = states[r][c]
			}
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory reads a run's CSV back as the rows-by-time matrix it was
// saved from.
func (s *Store) LoadTrajectory(runID string) (times []float64, states [][]float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, [][]float64{}, nil
	}

	rows := len(records[0]) - 1
	states = make([][]float64, rows)
	for i := range states {
		states[i] = make([]float64, 0, len(records)-1)
	}
	times = make([]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		for r := 0; r < rows; r++ {
			v, err := strconv.ParseFloat(record[r+1], 64)
			if err != nil {
				v = 0
			}
			states[r] = append(states[r], v)
		}
	}
	return times, states, nil
}
