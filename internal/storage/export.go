package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/pendlab/internal/dynamo"
	"github.com/san-kum/pendlab/internal/trail"
)

type ExportData struct {
	ID         string                 `json:"id"`
	Integrator string                 `json:"integrator"`
	Dt         float64                `json:"dt"`
	Duration   float64                `json:"duration"`
	Steps      int                    `json:"steps"`
	Times      []dynamo.Real          `json:"times"`
	States     [][]dynamo.Real        `json:"states"`
	Trail      []trail.Point          `json:"trail,omitempty"`
	Metrics    map[string]dynamo.Real `json:"metrics"`
}

// ExportJSON writes a full run, including the tip trace, as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, states [][]float64, times []float64, points []trail.Point) error {
	data := ExportData{
		ID:         meta.ID,
		Integrator: meta.Integrator,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Steps:      len(times),
		Times:      times,
		States:     states,
		Trail:      points,
		Metrics:    meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
