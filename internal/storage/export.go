package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/sim"
)

type ExportData struct {
	Run            RunMetadata        `json:"run"`
	Steps          int                `json:"steps"`
	Times          []float64          `json:"times"`
	Quaternions    []attitude.Quat    `json:"quaternions"`
	Rates          []attitude.Vec3    `json:"rates"`
	Commanded      []attitude.Vec3    `json:"commanded_torque"`
	Applied        []attitude.Vec3    `json:"applied_torque"`
	AttitudeErrors []attitude.Vec3    `json:"attitude_errors"`
	RateErrors     []attitude.Vec3    `json:"rate_errors"`
	Metrics        map[string]float64 `json:"metrics"`
}

// ExportJSON writes the run metadata and all series as one indented document.
func ExportJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	data := ExportData{
		Run:            meta,
		Steps:          len(result.Applied),
		Times:          result.Times,
		Quaternions:    make([]attitude.Quat, len(result.States)),
		Rates:          make([]attitude.Vec3, len(result.States)),
		Commanded:      result.Commanded,
		Applied:        result.Applied,
		AttitudeErrors: result.AttitudeErrors,
		RateErrors:     result.RateErrors,
		Metrics:        meta.Metrics,
	}

	for i, s := range result.States {
		data.Quaternions[i] = s.Q
		data.Rates[i] = s.W
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
