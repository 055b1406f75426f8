package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/erplens/erplens/internal/config"
	"github.com/erplens/erplens/internal/coverage"
	"github.com/erplens/erplens/internal/export"
)

// RunSummary is the persisted run manifest.
type RunSummary struct {
	RunID           string         `yaml:"run_id" json:"run_id"`
	Mode            string         `yaml:"mode" json:"mode"`
	Family          string         `yaml:"family" json:"family"`
	StartedAt       time.Time      `yaml:"started_at" json:"started_at"`
	Duration        time.Duration  `yaml:"duration" json:"duration"`
	Extractors      int            `yaml:"extractors" json:"extractors"`
	Failed          []string       `yaml:"failed,omitempty" json:"failed,omitempty"`
	Cancelled       bool           `yaml:"cancelled,omitempty" json:"cancelled,omitempty"`
	CoveragePct     int            `yaml:"coverage_pct" json:"coverage_pct"`
	Gaps            []coverage.Gap `yaml:"gaps,omitempty" json:"gaps,omitempty"`
	Interpretations int            `yaml:"interpretations" json:"interpretations"`
	Simplifications int            `yaml:"simplifications" json:"simplifications"`
	MinedProcesses  int            `yaml:"mined_processes" json:"mined_processes"`
}

// RunData is a run read back from disk.
type RunData struct {
	Summary  *RunSummary
	Document *export.Document
	// Coverage is the per-table tracker rebuilt from the persisted flat
	// map, when the run recorded one.
	Coverage *coverage.Tracker
}

func (e *Engine) buildSummary() *RunSummary {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &RunSummary{
		RunID:           e.runID,
		Mode:            e.Config.Source.Mode,
		Family:          e.Config.Source.Family,
		Interpretations: len(e.findings),
		Simplifications: len(e.simps),
	}
	if e.output != nil {
		s.StartedAt = e.output.StartedAt
		s.Duration = e.output.Duration
		s.Extractors = len(e.output.Order)
		s.Failed = e.output.Failed
		s.Cancelled = e.output.Cancelled
	}
	if e.tracker != nil {
		sr := e.tracker.SystemReport()
		s.CoveragePct = sr.CoveragePct
		s.Gaps = e.tracker.Gaps()
	}
	if e.catalog != nil {
		s.MinedProcesses = len(e.catalog.Processes)
	}
	return s
}

// persistRun writes the manifest and the full structured document into
// the run directory.
func (e *Engine) persistRun(summary *RunSummary) error {
	e.mu.Lock()
	runDir := e.runDir
	tracker := e.tracker
	e.mu.Unlock()

	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return fmt.Errorf("creating run directory: %w", err)
	}

	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling run manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runDir, "manifest.yaml"), data, 0o644); err != nil {
		return fmt.Errorf("writing run manifest: %w", err)
	}

	if tracker != nil {
		flat, err := yaml.Marshal(tracker.FlatMap())
		if err != nil {
			return fmt.Errorf("marshaling run coverage: %w", err)
		}
		if err := os.WriteFile(filepath.Join(runDir, "coverage.yaml"), flat, 0o644); err != nil {
			return fmt.Errorf("writing run coverage: %w", err)
		}
	}

	out, err := e.Export(export.FormatStructured, "")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(runDir, "document.json"), out.Data, 0o644); err != nil {
		return fmt.Errorf("writing run document: %w", err)
	}
	return nil
}

// LoadRun reads a persisted run by identifier. An empty identifier loads
// the most recent run.
func (e *Engine) LoadRun(runID string) (*RunData, error) {
	base := config.ExpandHome(e.Config.Extraction.RunDir)
	if runID == "" {
		latest, err := latestRun(base)
		if err != nil {
			return nil, err
		}
		runID = latest
	}
	runDir := filepath.Join(base, runID)

	manifest, err := os.ReadFile(filepath.Join(runDir, "manifest.yaml"))
	if err != nil {
		return nil, fmt.Errorf("reading run manifest: %w", err)
	}
	summary := &RunSummary{}
	if err := yaml.Unmarshal(manifest, summary); err != nil {
		return nil, fmt.Errorf("parsing run manifest: %w", err)
	}

	data := &RunData{Summary: summary}
	if raw, err := os.ReadFile(filepath.Join(runDir, "document.json")); err == nil {
		doc := &export.Document{}
		if err := json.Unmarshal(raw, doc); err != nil {
			return nil, fmt.Errorf("parsing run document: %w", err)
		}
		data.Document = doc
	}
	if raw, err := os.ReadFile(filepath.Join(runDir, "coverage.yaml")); err == nil {
		flat := map[string]string{}
		if err := yaml.Unmarshal(raw, &flat); err != nil {
			return nil, fmt.Errorf("parsing run coverage: %w", err)
		}
		tracker, err := coverage.FromFlatMap(flat)
		if err != nil {
			return nil, fmt.Errorf("rebuilding run coverage: %w", err)
		}
		data.Coverage = tracker
	}
	return data, nil
}

// latestRun picks the newest run directory by manifest start time.
func latestRun(base string) (string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", fmt.Errorf("no runs recorded under %s", base)
	}
	type candidate struct {
		id      string
		started time.Time
	}
	var runs []candidate
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(base, entry.Name(), "manifest.yaml"))
		if err != nil {
			continue
		}
		s := &RunSummary{}
		if yaml.Unmarshal(raw, s) != nil {
			continue
		}
		runs = append(runs, candidate{id: entry.Name(), started: s.StartedAt})
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("no runs recorded under %s", base)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].started.After(runs[j].started) })
	return runs[0].id, nil
}
