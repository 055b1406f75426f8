// Package checkpoint persists per-extractor progress markers so an
// interrupted run resumes mid-stream instead of starting over.
package checkpoint

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FormatVersion is the checkpoint envelope version. Records written by a
// different envelope version are discarded, not replayed.
const FormatVersion = 1

// Record is one durable progress marker. SchemaVersion ties the record to
// the extractor revision that wrote it.
type Record struct {
	Version       int               `yaml:"version"`
	Extractor     string            `yaml:"extractor"`
	SchemaVersion int               `yaml:"schema_version"`
	Table         string            `yaml:"table,omitempty"`
	Cursor        string            `yaml:"cursor,omitempty"`
	LastOffset    int64             `yaml:"last_offset,omitempty"`
	Partial       map[string]string `yaml:"partial,omitempty"`
	WrittenAt     time.Time         `yaml:"written_at"`
}

// Store keeps one checkpoint file per extractor under a run directory.
// Writes to the same key are serialized; concurrent writers resolve by
// last-writer-wins on WrittenAt.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates (if needed) the run directory and returns a store
// over it. Existing records are enumerated lazily, never preloaded.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating checkpoint directory: %w", err)
	}
	return &Store{dir: dir, locks: make(map[string]*sync.Mutex)}, nil
}

// Dir returns the run directory backing this store.
func (s *Store) Dir() string { return s.dir }

func (s *Store) keyLock(extractorID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[extractorID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[extractorID] = l
	}
	return l
}

// Save writes the record durably. The write is atomic: either the prior
// or the new marker survives a crash, never a torn intermediate.
func (s *Store) Save(extractorID string, rec *Record) error {
	l := s.keyLock(extractorID)
	l.Lock()
	defer l.Unlock()

	path := s.path(extractorID)
	if prior, err := s.read(path); err == nil && prior != nil {
		if !rec.WrittenAt.IsZero() && prior.WrittenAt.After(rec.WrittenAt) {
			return nil
		}
	}
	rec.Version = FormatVersion
	rec.Extractor = extractorID
	if rec.WrittenAt.IsZero() {
		rec.WrittenAt = time.Now()
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling checkpoint: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	return os.Rename(tmp, path)
}

// Load returns the record for the extractor, or nil when none exists or
// the stored record was written by a different envelope or extractor
// schema version.
func (s *Store) Load(extractorID string, schemaVersion int) (*Record, error) {
	l := s.keyLock(extractorID)
	l.Lock()
	defer l.Unlock()

	rec, err := s.read(s.path(extractorID))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	if rec.Version != FormatVersion || rec.SchemaVersion != schemaVersion {
		return nil, nil
	}
	return rec, nil
}

// Delete removes the extractor's checkpoint, if any.
func (s *Store) Delete(extractorID string) error {
	l := s.keyLock(extractorID)
	l.Lock()
	defer l.Unlock()

	err := os.Remove(s.path(extractorID))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Keys enumerates extractor identifiers with a stored checkpoint, in
// sorted order, without loading record contents.
func (s *Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing checkpoints: %w", err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".yaml"))
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) path(extractorID string) string {
	// Extractor identifiers are dotted; keep them readable on disk.
	return filepath.Join(s.dir, extractorID+".yaml")
}

func (s *Store) read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading checkpoint: %w", err)
	}
	rec := &Record{}
	if err := yaml.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("parsing checkpoint: %w", err)
	}
	return rec, nil
}
