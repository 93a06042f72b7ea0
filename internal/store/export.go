package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/trajopt/internal/ocp"
)

type ExportData struct {
	Integrator string                 `json:"integrator"`
	Phases     []PhaseMetadata        `json:"phases"`
	Contacts   []string               `json:"contacts,omitempty"`
	Times      []float64              `json:"times"`
	Labels     []string               `json:"labels"`
	States     [][]float64            `json:"states"`
	Named      map[string][][]float64 `json:"named,omitempty"`
}

func NewExportData(prob *ocp.Problem, integrator string, times []float64, states [][]float64, labels []string, named map[string][][]float64) ExportData {
	return ExportData{
		Integrator: integrator,
		Phases:     phaseMetadata(prob),
		Contacts:   prob.ContactNames(),
		Times:      times,
		Labels:     labels,
		States:     states,
		Named:      named,
	}
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}

// WriteJSON streams the export to any writer, for callers that want the
// document on stdout or in memory rather than in a file.
func WriteJSON(w io.Writer, data ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
