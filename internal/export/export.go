// Package export renders run outputs to the three supported formats:
// a structured document, a tabular event log, and a process-mining log.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/erplens/erplens/internal/coverage"
	"github.com/erplens/erplens/internal/extract"
	"github.com/erplens/erplens/internal/mining"
	"github.com/erplens/erplens/internal/rules"
)

// Formats accepted by Render.
const (
	FormatStructured = "structured-document"
	FormatTabular    = "tabular"
	FormatMiningLog  = "process-mining-log"
)

// Document is the payload behind the structured-document format.
type Document struct {
	RunID           string                        `json:"run_id"`
	GeneratedAt     time.Time                     `json:"generated_at"`
	Coverage        *coverage.SystemReport        `json:"coverage,omitempty"`
	Results         map[string]*ResultDoc         `json:"results,omitempty"`
	Interpretations []rules.Finding               `json:"interpretations,omitempty"`
	Simplifications []rules.SimplificationFinding `json:"simplifications,omitempty"`
	Processes       *mining.Catalog               `json:"processes,omitempty"`
}

type ResultDoc struct {
	Sections map[string]*extract.Section `json:"sections"`
	RowCount int                         `json:"row_count"`
}

// Output carries rendered bytes with their declared content type.
type Output struct {
	ContentType string
	Data        []byte
}

// Render formats the document per the requested format. Unknown formats
// are an input validation error.
func Render(format string, doc *Document) (*Output, error) {
	switch format {
	case FormatStructured:
		return renderStructured(doc)
	case FormatTabular:
		return renderTabular(doc)
	case FormatMiningLog:
		return renderMiningLog(doc)
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

// BuildDocument assembles the export payload from run outputs.
func BuildDocument(runID string, results map[string]*extract.Result, cov *coverage.SystemReport,
	findings []rules.Finding, simplifications []rules.SimplificationFinding, catalog *mining.Catalog) *Document {
	doc := &Document{
		RunID:           runID,
		GeneratedAt:     time.Now().UTC(),
		Coverage:        cov,
		Interpretations: findings,
		Simplifications: simplifications,
		Processes:       catalog,
	}
	if len(results) > 0 {
		doc.Results = make(map[string]*ResultDoc, len(results))
		for id, res := range results {
			rd := &ResultDoc{Sections: make(map[string]*extract.Section), RowCount: res.RowCount()}
			for _, name := range res.SectionNames() {
				rd.Sections[name] = res.Section(name)
			}
			doc.Results[id] = rd
		}
	}
	return doc
}

func renderStructured(doc *Document) (*Output, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling structured document: %w", err)
	}
	return &Output{ContentType: "application/json", Data: data}, nil
}

// tabularColumns is the declared field order of the event log export.
var tabularColumns = []string{"caseId", "activity", "timestamp", "user", "transactionCode"}

// renderTabular writes one csv row per mining event. The header row
// declares the field order.
func renderTabular(doc *Document) (*Output, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(tabularColumns); err != nil {
		return nil, fmt.Errorf("writing event log header: %w", err)
	}
	if doc.Processes != nil {
		for _, c := range doc.Processes.Cases {
			for _, e := range c.Events {
				record := []string{
					c.CaseID,
					e.Activity,
					e.Timestamp.Format(time.RFC3339),
					e.User,
					e.TCode,
				}
				if err := w.Write(record); err != nil {
					return nil, fmt.Errorf("writing event log row: %w", err)
				}
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing event log: %w", err)
	}
	return &Output{ContentType: "text/csv", Data: buf.Bytes()}, nil
}

type miningLog struct {
	RunID      string       `json:"run_id"`
	FieldOrder []string     `json:"field_order"`
	Traces     []miningCase `json:"traces"`
}

type miningCase struct {
	CaseID  string        `json:"case_id"`
	Process string        `json:"process"`
	Events  []miningEvent `json:"events"`
}

type miningEvent struct {
	Activity        string    `json:"activity"`
	Timestamp       time.Time `json:"timestamp"`
	User            string    `json:"user"`
	TransactionCode string    `json:"transaction_code"`
}

// renderMiningLog writes a trace per case with an event per
// change-document row.
func renderMiningLog(doc *Document) (*Output, error) {
	log := miningLog{
		RunID:      doc.RunID,
		FieldOrder: []string{"activity", "timestamp", "user", "transaction_code"},
	}
	if doc.Processes != nil {
		for _, c := range doc.Processes.Cases {
			mc := miningCase{CaseID: c.CaseID, Process: c.Process}
			for _, e := range c.Events {
				mc.Events = append(mc.Events, miningEvent{
					Activity:        e.Activity,
					Timestamp:       e.Timestamp,
					User:            e.User,
					TransactionCode: e.TCode,
				})
			}
			log.Traces = append(log.Traces, mc)
		}
	}
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling process-mining log: %w", err)
	}
	return &Output{ContentType: "application/json", Data: data}, nil
}
