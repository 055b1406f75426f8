// Package migration implements the per-object Extract-Transform-Validate-Load
// pipeline with field mappings, quality checks, and dependency ordering.
package migration

import (
	"time"

	"github.com/erplens/erplens/internal/canonical"
)

// Object statuses.
const (
	StatusPending        = "pending"
	StatusExtractFailed  = "extract-failed"
	StatusValidateFailed = "validate-failed"
	StatusLoadFailed     = "load-failed"
	StatusValidated      = "validated" // dry-run terminal state
	StatusLoaded         = "loaded"
	StatusBlocked        = "blocked" // predecessor did not finish load
)

// Quality check kinds.
const (
	CheckRequired       = "required"
	CheckExactDuplicate = "exactDuplicate"
	CheckFuzzyDuplicate = "fuzzyDuplicate"
)

// QualityCheck declares one validation over transformed rows. Fields name
// canonical target field paths. Threshold applies to fuzzyDuplicate only.
type QualityCheck struct {
	Kind      string
	Fields    []string
	Threshold float64
}

// Failure is one validation finding. Blocking failures prevent load.
type Failure struct {
	Check    string
	Field    string
	RowIndex int
	Message  string
	Blocking bool
}

// Object describes one migration object: the adapter from a source
// family's raw records to one canonical entity.
type Object struct {
	ID          string
	Name        string
	Entity      canonical.Entity
	Family      string
	SourceTable string
	// Collection is the staging collection rows are loaded into.
	Collection string
	Mappings   []canonical.FieldMapping
	Checks     []QualityCheck
	DependsOn  []string
}

// PhaseResult records one pipeline phase.
type PhaseResult struct {
	Count    int
	Duration time.Duration
	Outcome  string // "done", "failed", "skipped"
}

// Reconciliation compares what was loaded against what the staging store
// reports.
type Reconciliation struct {
	LoadedCount int
	StoreCount  int64
	DistinctIDs int64
	CountsMatch bool
}

// Result is the full outcome of running one object through the pipeline.
type Result struct {
	ObjectID       string
	Entity         canonical.Entity
	Status         string
	ExtractCount   int
	TransformCount int
	LoadCount      int
	Failures       []Failure
	Phases         map[string]PhaseResult
	Reconciliation *Reconciliation
	Err            error
}

// BlockingFailures counts validation failures that prevent load.
func (r *Result) BlockingFailures() int {
	n := 0
	for _, f := range r.Failures {
		if f.Blocking {
			n++
		}
	}
	return n
}

// Warnings counts non-blocking validation findings.
func (r *Result) Warnings() int {
	return len(r.Failures) - r.BlockingFailures()
}
