// Package coverage records, per extractor and per expected table, the
// outcome of the last extraction attempt and exposes aggregates over it.
package coverage

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

// Status is the outcome recorded for one (extractor, table) pair.
type Status string

const (
	StatusPending   Status = "pending"
	StatusExtracted Status = "extracted"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Entry is one coverage record.
type Entry struct {
	ExtractorID string            `json:"extractor_id"`
	Module      string            `json:"module"`
	Table       string            `json:"table"`
	Status      Status            `json:"status"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Report aggregates entries for one extractor, module, or the system.
type Report struct {
	Extracted   int `json:"extracted"`
	Failed      int `json:"failed"`
	Skipped     int `json:"skipped"`
	Total       int `json:"total"`
	CoveragePct int `json:"coverage"`
}

// SystemReport is the system-wide aggregate plus per-extractor breakdown.
type SystemReport struct {
	Report
	Extractors   int               `json:"extractors"`
	PerExtractor map[string]Report `json:"per_extractor"`
}

// Gap is a non-extracted entry in the deterministic gaps listing.
type Gap struct {
	Module      string `json:"module"`
	ExtractorID string `json:"extractor_id"`
	Table       string `json:"table"`
	Status      Status `json:"status"`
	Reason      string `json:"reason,omitempty"`
}

// Tracker accumulates coverage entries. Writes from one extractor are
// ordered by call order; across extractors no ordering is guaranteed.
type Tracker struct {
	mu      sync.Mutex
	entries map[string]*Entry // key extractorID + "\x00" + table
	order   []string
	modules map[string]string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		entries: make(map[string]*Entry),
		modules: make(map[string]string),
	}
}

// RegisterModule records the organizational module of an extractor so
// module reports and gap ordering can group by it.
func (t *Tracker) RegisterModule(extractorID, module string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.modules[extractorID] = module
}

// Track records the outcome for one table. Status transitions are
// monotonic within a run: once extracted, later events merge metadata but
// never revert the status.
func (t *Tracker) Track(extractorID, table string, status Status, metadata map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := extractorID + "\x00" + table
	e, ok := t.entries[key]
	if !ok {
		e = &Entry{
			ExtractorID: extractorID,
			Module:      t.modules[extractorID],
			Table:       table,
			Status:      status,
		}
		t.entries[key] = e
		t.order = append(t.order, key)
	} else if rank(status) >= rank(e.Status) {
		e.Status = status
	}
	if len(metadata) > 0 {
		if e.Metadata == nil {
			e.Metadata = make(map[string]string, len(metadata))
		}
		for k, v := range metadata {
			e.Metadata[k] = v
		}
	}
}

// rank orders statuses so that an extracted outcome is never downgraded.
func rank(s Status) int {
	switch s {
	case StatusExtracted:
		return 3
	case StatusFailed:
		return 2
	case StatusSkipped:
		return 1
	}
	return 0
}

// Report aggregates all entries for one extractor.
func (t *Tracker) Report(extractorID string) Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.aggregate(func(e *Entry) bool { return e.ExtractorID == extractorID })
}

// ModuleReport aggregates all entries whose extractor module starts with
// the given prefix.
func (t *Tracker) ModuleReport(modulePrefix string) Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.aggregate(func(e *Entry) bool { return strings.HasPrefix(e.Module, modulePrefix) })
}

// SystemReport aggregates everything plus a per-extractor breakdown.
func (t *Tracker) SystemReport() SystemReport {
	t.mu.Lock()
	defer t.mu.Unlock()

	sr := SystemReport{
		Report:       t.aggregate(func(*Entry) bool { return true }),
		PerExtractor: make(map[string]Report),
	}
	seen := make(map[string]bool)
	for _, key := range t.order {
		e := t.entries[key]
		if !seen[e.ExtractorID] {
			seen[e.ExtractorID] = true
			id := e.ExtractorID
			sr.PerExtractor[id] = t.aggregate(func(e *Entry) bool { return e.ExtractorID == id })
		}
	}
	sr.Extractors = len(sr.PerExtractor)
	return sr
}

func (t *Tracker) aggregate(match func(*Entry) bool) Report {
	var r Report
	for _, key := range t.order {
		e := t.entries[key]
		if !match(e) {
			continue
		}
		r.Total++
		switch e.Status {
		case StatusExtracted:
			r.Extracted++
		case StatusFailed:
			r.Failed++
		case StatusSkipped:
			r.Skipped++
		}
	}
	if r.Total > 0 {
		r.CoveragePct = int(math.Round(100 * float64(r.Extracted) / float64(r.Total)))
	}
	return r
}

// Gaps lists every non-extracted entry ordered by (module, extractor,
// table).
func (t *Tracker) Gaps() []Gap {
	t.mu.Lock()
	defer t.mu.Unlock()

	var gaps []Gap
	for _, key := range t.order {
		e := t.entries[key]
		if e.Status == StatusExtracted {
			continue
		}
		reason := ""
		if e.Metadata != nil {
			if r, ok := e.Metadata["error"]; ok {
				reason = r
			} else if r, ok := e.Metadata["reason"]; ok {
				reason = r
			}
		}
		gaps = append(gaps, Gap{
			Module:      e.Module,
			ExtractorID: e.ExtractorID,
			Table:       e.Table,
			Status:      e.Status,
			Reason:      reason,
		})
	}
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Module != gaps[j].Module {
			return gaps[i].Module < gaps[j].Module
		}
		if gaps[i].ExtractorID != gaps[j].ExtractorID {
			return gaps[i].ExtractorID < gaps[j].ExtractorID
		}
		return gaps[i].Table < gaps[j].Table
	})
	return gaps
}

// Entries returns a copy of all entries in insertion order.
func (t *Tracker) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Entry, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, *t.entries[key])
	}
	return out
}

// FlatMap serializes the tracker losslessly to a flat string map.
func (t *Tracker) FlatMap() map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Extractor identifiers are dotted, so flat keys separate on "|".
	flat := make(map[string]string)
	for i, key := range t.order {
		e := t.entries[key]
		prefix := fmt.Sprintf("%04d|%s|%s|", i, e.ExtractorID, e.Table)
		flat[prefix+"status"] = string(e.Status)
		flat[prefix+"module"] = e.Module
		for k, v := range e.Metadata {
			flat[prefix+"meta."+k] = v
		}
	}
	return flat
}

// FromFlatMap reconstructs a tracker from its flat serialization. Report
// outputs of the reconstruction are identical to the original's.
func FromFlatMap(flat map[string]string) (*Tracker, error) {
	type parsed struct {
		index       int
		extractorID string
		table       string
		entry       *Entry
	}
	byIndex := make(map[int]*parsed)
	for k, v := range flat {
		parts := strings.SplitN(k, "|", 4)
		if len(parts) < 4 {
			return nil, fmt.Errorf("malformed coverage key %q", k)
		}
		var idx int
		if _, err := fmt.Sscanf(parts[0], "%d", &idx); err != nil {
			return nil, fmt.Errorf("malformed coverage key %q", k)
		}
		p, ok := byIndex[idx]
		if !ok {
			p = &parsed{index: idx, extractorID: parts[1], table: parts[2], entry: &Entry{
				ExtractorID: parts[1], Table: parts[2],
			}}
			byIndex[idx] = p
		}
		rest := parts[3]
		switch {
		case rest == "status":
			p.entry.Status = Status(v)
		case rest == "module":
			p.entry.Module = v
		case strings.HasPrefix(rest, "meta."):
			if p.entry.Metadata == nil {
				p.entry.Metadata = make(map[string]string)
			}
			p.entry.Metadata[strings.TrimPrefix(rest, "meta.")] = v
		}
	}

	indexes := make([]int, 0, len(byIndex))
	for i := range byIndex {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	t := NewTracker()
	for _, i := range indexes {
		p := byIndex[i]
		t.RegisterModule(p.entry.ExtractorID, p.entry.Module)
		t.Track(p.entry.ExtractorID, p.entry.Table, p.entry.Status, p.entry.Metadata)
	}
	return t, nil
}
