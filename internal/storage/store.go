package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/driftsim/internal/drift"
	"github.com/san-kum/driftsim/internal/sim"
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

type RunMetadata struct {
	ID          string             `json:"id"`
	Field       string             `json:"field"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Particles   int                `json:"particles"`
	Scheme      string             `json:"scheme"`
	StepsTaken  int                `json:"steps_taken"`
	Metrics     map[string]float64 `json:"metrics"`
	Deactivated map[string]int     `json:"deactivated"`
}

// Save writes run metadata and, when snapshots were recorded, the full
// particle trajectories. Returns the run ID.
func (s *Store) Save(fieldName, scheme string, dt, duration float64, seed int64, ensemble *drift.Ensemble, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", fieldName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	deactivated := make(map[string]int)
	for status, n := range result.Deactivated {
		deactivated[status.String()] = n
	}

	meta := RunMetadata{
		ID:          runID,
		Field:       fieldName,
		Timestamp:   time.Now(),
		Seed:        seed,
		Dt:          dt,
		Duration:    duration,
		Particles:   ensemble.Len(),
		Scheme:      scheme,
		StepsTaken:  result.StepsTaken,
		Metrics:     result.Metrics,
		Deactivated: deactivated,
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

	if len(result.Snapshots) > 0 {
		if err := s.writeTrajectories(runDir, result); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) writeTrajectories(runDir string, result *sim.Result) error {
	f, err := os.Create(filepath.Join(runDir, "trajectories.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"time", "particle", "x", "y", "z", "age_seconds", "status"}
	if err := w.Write(header); err != nil {
		return err
	}

	for k, snap := range result.Snapshots {
		t := result.Times[k]
		for i := 0; i < snap.Len(); i++ {
			row := []string{
				strconv.FormatFloat(t, 'f', 1, 64),
				strconv.Itoa(i),
				strconv.FormatFloat(snap.X[i], 'f', 2, 64),
				strconv.FormatFloat(snap.Y[i], 'f', 2, 64),
				strconv.FormatFloat(snap.Z[i], 'f', 3, 64),
				strconv.FormatFloat(snap.AgeSeconds[i], 'f', 0, 64),
				snap.Status[i].String(),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// List returns the stored run IDs, newest last.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.LoadMeta(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) LoadMeta(runID string) (*RunMetadata, error) {
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

// TrajectoryPath returns the CSV path for a run, for export commands.
func (s *Store) TrajectoryPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "trajectories.csv")
}
