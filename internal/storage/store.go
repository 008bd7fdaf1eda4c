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

	"github.com/google/uuid"

	"github.com/san-kum/probesim/internal/recorder"
	"github.com/san-kum/probesim/internal/scan"
)

const (
	metadataFile = "metadata.json"
	recordsFile  = "records.csv"
	profileFile  = "profile.csv"
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

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Instrument string             `json:"instrument"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Length     int                `json:"length"`
	Frames     int                `json:"frames"`
	Speed      float64            `json:"speed"`
	Records    int                `json:"records"`
	Params     map[string]float64 `json:"params"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Run is everything a headless scan produces.
type Run struct {
	Meta    RunMetadata
	Records []recorder.Record
	Profile *scan.Profile
}

// NewRunID is <instrument>_<first 8 hex digits of a random UUID>.
func NewRunID(instrument string) string {
	return fmt.Sprintf("%s_%s", instrument, uuid.NewString()[:8])
}

// Save writes the run under a fresh ID and returns it.
func (s *Store) Save(run *Run) (string, error) {
	runID := NewRunID(run.Meta.Instrument)
	runDir := s.Dir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := run.Meta
	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Records = len(run.Records)

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := WriteRecordsCSV(filepath.Join(runDir, recordsFile), run.Records); err != nil {
		return "", err
	}
	if run.Profile != nil {
		if err := WriteProfileCSV(filepath.Join(runDir, profileFile), run.Profile); err != nil {
			return "", err
		}
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteRecordsCSV writes position,z,value,branch rows.
func WriteRecordsCSV(path string, records []recorder.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"position", "z", "value", "branch"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{formatFloat(r.Position), formatFloat(r.Z), formatFloat(r.Value), r.Branch.String()}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteProfileCSV writes one column per channel, index first.
func WriteProfileCSV(path string, p *scan.Profile) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	channels := p.Channels()
	header := []string{"index"}
	for _, c := range channels {
		header = append(header, c.String())
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < p.Len(); i++ {
		row := []string{strconv.Itoa(i)}
		for _, c := range channels {
			row = append(row, formatFloat(p.At(c, i)))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the stored runs, newest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadRecords(runID string) ([]recorder.Record, error) {
	return ReadRecordsCSV(filepath.Join(s.Dir(runID), recordsFile))
}

// ReadRecordsCSV skips malformed rows.
func ReadRecordsCSV(path string) ([]recorder.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	records := make([]recorder.Record, 0, max(len(rows)-1, 0))
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 4 {
			continue
		}
		var vals [3]float64
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		branch, err := recorder.ParseBranch(row[3])
		if !ok || err != nil {
			continue
		}
		records = append(records, recorder.Record{Position: vals[0], Z: vals[1], Value: vals[2], Branch: branch})
	}
	return records, nil
}

// LoadProfile reads the saved sample back. Unknown columns are ignored.
func (s *Store) LoadProfile(runID string) (*scan.Profile, error) {
	file, err := os.Open(filepath.Join(s.Dir(runID), profileFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: profile has no samples", runID)
	}

	cols := make(map[int]scan.Channel)
	var channels []scan.Channel
	for j, name := range rows[0] {
		if c, err := scan.ParseChannel(name); err == nil {
			cols[j] = c
			channels = append(channels, c)
		}
	}

	p := scan.NewProfile(len(rows)-1, channels...)
	for i, row := range rows[1:] {
		for j, c := range cols {
			if j >= len(row) {
				continue
			}
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d: %w", runID, i+1, err)
			}
			p.Values(c)[i] = v
		}
	}
	return p, nil
}
