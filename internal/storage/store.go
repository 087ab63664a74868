package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/solarsys/internal/nbody"
)

// Store archives runs as <base>/<id>/{metadata.json,trajectory.csv}.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Catalog    string             `json:"catalog"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Integrator string             `json:"integrator"`
	Tracker    int                `json:"tracker"`
	Body       string             `json:"body"`
	Summary    Summary            `json:"summary"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes the metadata and the trajectory, filling in ID, timestamp and
// summary, and returns the run id.
func (s *Store) Save(meta RunMetadata, traj []nbody.Vector3, origin nbody.Vector3) (string, error) {
	meta.Timestamp = s.now()
	meta.ID = fmt.Sprintf("%s_%s_%d", idPart(meta.Catalog), idPart(meta.Body), meta.Timestamp.UnixNano())
	meta.Summary = Summarize(traj, origin)
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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
	if err := w.Write([]string{"step", "x", "y", "z"}); err != nil {
		return "", err
	}
	for i, p := range traj {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.X, 'e', -1, 64),
			strconv.FormatFloat(p.Y, 'e', -1, 64),
			strconv.FormatFloat(p.Z, 'e', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// idPart reduces a catalog or body name to one safe path element.
func idPart(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '-'
		}
	}, name)
	if strings.Trim(clean, "-") == "" {
		return "unnamed"
	}
	return clean
}

// List returns archived runs, oldest first. Unreadable entries are skipped.
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

func (s *Store) LoadTrajectory(runID string) ([]nbody.Vector3, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []nbody.Vector3{}, nil
	}

	traj := make([]nbody.Vector3, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != 4 {
			return nil, fmt.Errorf("%w: row %d", ErrMalformedLine, i+1)
		}
		var xyz [3]float64
		for k := range xyz {
			v, err := strconv.ParseFloat(rec[k+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedLine, i+1, err)
			}
			xyz[k] = v
		}
		traj = append(traj, nbody.Vector3{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}
	return traj, nil
}
