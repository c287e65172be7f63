package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "states.csv"
)

// SeriesHeader is the column layout of states.csv. Torque columns are blank
// on the final row since a run has one fewer torque sample than states.
var SeriesHeader = []string{
	"time",
	"q0", "q1", "q2", "q3",
	"wx", "wy", "wz",
	"tcx", "tcy", "tcz",
	"tax", "tay", "taz",
	"ex", "ey", "ez",
	"ewx", "ewy", "ewz",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	T0          float64            `json:"t0"`
	Dt          float64            `json:"dt"`
	NumSteps    int                `json:"num_steps"`
	Dynamics    string             `json:"dynamics"`
	Integrator  string             `json:"integrator"`
	Controller  string             `json:"controller"`
	Actuator    string             `json:"actuator"`
	Reference   string             `json:"reference"`
	Metrics     map[string]float64 `json:"metrics"`
	WheelSpeeds []float64          `json:"wheel_speeds_rpm,omitempty"`
	// WheelMomentum is the final body-frame wheel momentum [N m s].
	WheelMomentum    []float64          `json:"wheel_momentum,omitempty"`
	ControllerParams map[string]float64 `json:"controller_params,omitempty"`
}

// NewRunID returns "<scenario>_<first 8 hex digits of a random UUID>".
func NewRunID(scenario string) string {
	if scenario == "" {
		scenario = "run"
	}
	return fmt.Sprintf("%s_%s", scenario, uuid.NewString()[:8])
}

// Save writes metadata.json and states.csv under a new run directory and
// returns the run ID. meta.ID, Timestamp and Metrics are filled in.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	meta.ID = NewRunID(meta.Scenario)
	meta.Timestamp = time.Now()
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, result); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// WriteCSV writes the result series in the SeriesHeader layout.
func WriteCSV(out io.Writer, result *sim.Result) error {
	w := csv.NewWriter(out)

	if err := w.Write(SeriesHeader); err != nil {
		return err
	}

	for i := range result.States {
		row := make([]string, 0, len(SeriesHeader))
		row = append(row, formatFloat(result.Times[i]))
		row = appendFloats(row, result.States[i].Q[:]...)
		row = appendFloats(row, result.States[i].W[:]...)

		if i < len(result.Applied) {
			row = appendFloats(row, result.Commanded[i][:]...)
			row = appendFloats(row, result.Applied[i][:]...)
		} else {
			row = append(row, "", "", "", "", "", "")
		}

		if i < len(result.AttitudeErrors) {
			row = appendFloats(row, result.AttitudeErrors[i][:]...)
			row = appendFloats(row, result.RateErrors[i][:]...)
		} else {
			row = append(row, "", "", "", "", "", "")
		}

		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads states.csv back into a Result. Metrics are not part of
// the series file; use Load for those.
func (s *Store) LoadSeries(runID string) (*sim.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses the SeriesHeader layout written by WriteCSV.
func ReadCSV(in io.Reader) (*sim.Result, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = len(SeriesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	res := &sim.Result{}
	if len(records) < 2 {
		return res, nil
	}

	for n, record := range records[1:] {
		vals := make([]float64, len(record))
		blank := make([]bool, len(record))
		for j, field := range record {
			if field == "" {
				blank[j] = true
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: row %d column %s: %w", n+1, SeriesHeader[j], err)
			}
			vals[j] = v
		}

		res.Times = append(res.Times, vals[0])
		res.States = append(res.States, attitude.State{
			Q: attitude.Quat{vals[1], vals[2], vals[3], vals[4]},
			W: attitude.Vec3{vals[5], vals[6], vals[7]},
		})
		if !blank[8] {
			res.Commanded = append(res.Commanded, attitude.Vec3{vals[8], vals[9], vals[10]})
			res.Applied = append(res.Applied, attitude.Vec3{vals[11], vals[12], vals[13]})
		}
		if !blank[14] {
			res.AttitudeErrors = append(res.AttitudeErrors, attitude.Vec3{vals[14], vals[15], vals[16]})
			res.RateErrors = append(res.RateErrors, attitude.Vec3{vals[17], vals[18], vals[19]})
		}
	}

	return res, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func appendFloats(row []string, vals ...float64) []string {
	for _, v := range vals {
		row = append(row, formatFloat(v))
	}
	return row
}
