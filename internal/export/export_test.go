package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/erplens/erplens/internal/extract"
	"github.com/erplens/erplens/internal/mining"
)

func sampleDocument() *Document {
	t0 := time.Date(2024, 1, 5, 9, 15, 0, 0, time.UTC)
	return &Document{
		RunID:       "run-001",
		GeneratedAt: t0,
		Processes: &mining.Catalog{
			Cases: []mining.CaseTrace{
				{
					CaseID:  "0000500001",
					Process: "order-to-cash",
					Events: []mining.Event{
						{Activity: "Create Sales Order", User: "JMILLER", TCode: "VA01", Timestamp: t0},
						{Activity: "Create Delivery", User: "SWAREHOUSE", TCode: "VL01N", Timestamp: t0.Add(48 * time.Hour)},
					},
				},
				{
					CaseID:  "4500000001",
					Process: "procure-to-pay",
					Events: []mining.Event{
						{Activity: "Create Purchase Order", User: "PBUYER", TCode: "ME21N", Timestamp: t0.Add(time.Hour)},
					},
				},
			},
		},
	}
}

func TestRenderStructured(t *testing.T) {
	out, err := Render(FormatStructured, sampleDocument())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.ContentType != "application/json" {
		t.Errorf("content type = %q", out.ContentType)
	}
	var decoded Document
	if err := json.Unmarshal(out.Data, &decoded); err != nil {
		t.Fatalf("structured document is not valid json: %v", err)
	}
	if decoded.RunID != "run-001" {
		t.Errorf("run id = %q", decoded.RunID)
	}
	if decoded.Processes == nil || len(decoded.Processes.Cases) != 2 {
		t.Errorf("cases did not survive the round trip: %+v", decoded.Processes)
	}
}

func TestRenderTabular(t *testing.T) {
	out, err := Render(FormatTabular, sampleDocument())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.ContentType != "text/csv" {
		t.Errorf("content type = %q", out.ContentType)
	}
	records, err := csv.NewReader(strings.NewReader(string(out.Data))).ReadAll()
	if err != nil {
		t.Fatalf("parsing csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d csv records, want header + 3 events", len(records))
	}
	wantHeader := "caseId,activity,timestamp,user,transactionCode"
	if strings.Join(records[0], ",") != wantHeader {
		t.Errorf("header = %v", records[0])
	}
	first := records[1]
	if first[0] != "0000500001" || first[1] != "Create Sales Order" || first[3] != "JMILLER" || first[4] != "VA01" {
		t.Errorf("first event row = %v", first)
	}
	if first[2] != "2024-01-05T09:15:00Z" {
		t.Errorf("timestamp = %q, want RFC3339", first[2])
	}
	if records[3][0] != "4500000001" {
		t.Errorf("last event row = %v", records[3])
	}
}

func TestRenderTabularEmptyCatalog(t *testing.T) {
	out, err := Render(FormatTabular, &Document{RunID: "run-002"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out.Data)), "\n")
	if len(lines) != 1 {
		t.Errorf("empty catalog produced %d lines, want header only", len(lines))
	}
}

func TestRenderMiningLog(t *testing.T) {
	out, err := Render(FormatMiningLog, sampleDocument())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var log struct {
		RunID      string   `json:"run_id"`
		FieldOrder []string `json:"field_order"`
		Traces     []struct {
			CaseID  string `json:"case_id"`
			Process string `json:"process"`
			Events  []struct {
				Activity        string `json:"activity"`
				TransactionCode string `json:"transaction_code"`
			} `json:"events"`
		} `json:"traces"`
	}
	if err := json.Unmarshal(out.Data, &log); err != nil {
		t.Fatalf("mining log is not valid json: %v", err)
	}
	if log.RunID != "run-001" {
		t.Errorf("run id = %q", log.RunID)
	}
	if len(log.FieldOrder) != 4 || log.FieldOrder[0] != "activity" {
		t.Errorf("field order = %v", log.FieldOrder)
	}
	if len(log.Traces) != 2 {
		t.Fatalf("got %d traces, want 2", len(log.Traces))
	}
	if log.Traces[0].Process != "order-to-cash" || len(log.Traces[0].Events) != 2 {
		t.Errorf("first trace = %+v", log.Traces[0])
	}
	if log.Traces[1].Events[0].TransactionCode != "ME21N" {
		t.Errorf("second trace event = %+v", log.Traces[1].Events[0])
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := Render("spreadsheet", sampleDocument()); err == nil || !strings.Contains(err.Error(), "spreadsheet") {
		t.Fatalf("err = %v, want unknown format named", err)
	}
}

func TestBuildDocumentCopiesSections(t *testing.T) {
	res := extract.NewResult("config.company-codes")
	res.AddRows("companyCodes", []string{"code", "text"}, []map[string]interface{}{
		{"code": "1000", "text": "Main Co"},
		{"code": "2000", "text": "Second Co"},
	})
	doc := BuildDocument("run-003", map[string]*extract.Result{"config.company-codes": res}, nil, nil, nil, nil)

	if doc.RunID != "run-003" {
		t.Errorf("run id = %q", doc.RunID)
	}
	rd := doc.Results["config.company-codes"]
	if rd == nil {
		t.Fatal("result doc missing")
	}
	if rd.RowCount != 2 {
		t.Errorf("row count = %d, want 2", rd.RowCount)
	}
	section := rd.Sections["companyCodes"]
	if section == nil || len(section.Rows) != 2 {
		t.Fatalf("section not copied: %+v", rd.Sections)
	}
}

func TestBuildDocumentWithoutResults(t *testing.T) {
	doc := BuildDocument("run-004", nil, nil, nil, nil, nil)
	if doc.Results != nil {
		t.Errorf("empty run produced results map: %+v", doc.Results)
	}
	if doc.GeneratedAt.IsZero() {
		t.Error("generated-at not stamped")
	}
}
