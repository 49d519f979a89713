package experiment

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const journalObject = "results"

// Record is one journaled experiment result.
type Record struct {
	RecordedAt    time.Time `yaml:"recordedAt"`
	ElapsedMs     float64   `yaml:"elapsedMs"`
	Found         bool      `yaml:"found"`
	PathLength    int       `yaml:"pathLength"`
	NodesExplored int       `yaml:"nodesExplored"`
	Path          [][2]int  `yaml:"path,omitempty"`
}

// Journal keeps experiment results per trial name, persisted as YAML through
// gdata. With a nil manager it only keeps records in memory.
type Journal struct {
	mu      sync.Mutex
	manager *gdata.Manager
	records map[string][]Record
	now     func() time.Time
}

// OpenJournal opens the gdata store for appName.
func OpenJournal(appName string) (*Journal, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal storage for %s: %w", appName, err)
	}
	return NewJournal(manager), nil
}

// NewJournal wraps an existing manager, which may be nil.
func NewJournal(manager *gdata.Manager) *Journal {
	return &Journal{
		manager: manager,
		records: make(map[string][]Record),
		now:     time.Now,
	}
}

// Append adds a result to the records of the named trial and persists them.
func (j *Journal) Append(name string, res Result) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	records, err := j.load(name)
	if err != nil {
		return err
	}
	records = append(records, newRecord(res, j.now()))
	j.records[name] = records

	if j.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal records for %s: %w", name, err)
	}
	if err := j.manager.SaveObjectProp(journalObject, propertyKey(name), data); err != nil {
		return fmt.Errorf("failed to save records for %s: %w", name, err)
	}
	return nil
}

// Records returns a copy of the records of the named trial.
func (j *Journal) Records(name string) ([]Record, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	records, err := j.load(name)
	if err != nil {
		return nil, err
	}
	return append([]Record(nil), records...), nil
}

// load returns cached records, reading them from storage on first use.
func (j *Journal) load(name string) ([]Record, error) {
	if records, ok := j.records[name]; ok {
		return records, nil
	}
	if j.manager == nil {
		return nil, nil
	}
	key := propertyKey(name)
	if !j.manager.ObjectPropExists(journalObject, key) {
		return nil, nil
	}
	data, err := j.manager.LoadObjectProp(journalObject, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for %s: %w", name, err)
	}
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal records for %s: %w", name, err)
	}
	j.records[name] = records
	return records, nil
}

func newRecord(res Result, at time.Time) Record {
	rec := Record{
		RecordedAt:    at.UTC(),
		ElapsedMs:     res.Millis(),
		Found:         res.Found,
		PathLength:    res.PathLength,
		NodesExplored: res.NodesExplored,
	}
	for _, c := range res.Path {
		rec.Path = append(rec.Path, [2]int{c.Row, c.Col})
	}
	return rec
}

// propertyKey maps a trial name onto a storage-safe key. Letters, digits and
// '-' are kept; every other byte, '_' included, becomes "_xx" in hex, so
// distinct names never share a key.
func propertyKey(name string) string {
	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		b := name[i]
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9', b == '-':
			sb.WriteByte(b)
		default:
			fmt.Fprintf(&sb, "_%02x", b)
		}
	}
	return sb.String()
}
