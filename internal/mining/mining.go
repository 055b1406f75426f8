// Package mining reconstructs business processes from change-document
// history and usage statistics, aligning observed traces against the
// reference process models.
package mining

import (
	"fmt"
	"sort"
	"time"

	"github.com/erplens/erplens/internal/extract"
	"github.com/erplens/erplens/internal/refmodel"
)

// ChangeHeader is one change-document header row.
type ChangeHeader struct {
	ObjectClass  string `json:"object_class"`
	ObjectID     string `json:"object_id"`
	ChangeNumber string `json:"change_number"`
	User         string `json:"user"`
	Date         string `json:"date"` // YYYYMMDD
	Time         string `json:"time"` // HHMMSS
	TCode        string `json:"tcode"`
}

// ChangeItem is one field-level change row.
type ChangeItem struct {
	ChangeNumber string `json:"change_number"`
	TableName    string `json:"table_name"`
	FieldName    string `json:"field_name"`
	ChangeInd    string `json:"change_ind"`
	LineNumber   int    `json:"line_number"`
}

// UsageStat is one per-transaction execution count.
type UsageStat struct {
	TCode string `json:"tcode"`
	User  string `json:"user,omitempty"`
	Count int64  `json:"count"`
}

// Event is one activity occurrence within a case trace.
type Event struct {
	Activity     string    `json:"activity"`
	User         string    `json:"user"`
	TCode        string    `json:"tcode"`
	Timestamp    time.Time `json:"timestamp"`
	ChangeNumber string    `json:"change_number"`
	Line         int       `json:"line"`
}

// CaseTrace is the ordered event sequence of one business object.
type CaseTrace struct {
	CaseID  string  `json:"case_id"`
	Process string  `json:"process"`
	Events  []Event `json:"events"`
}

// Violation is one observed transition absent from the reference model.
type Violation struct {
	CaseID     string `json:"case_id"`
	From       string `json:"from"`
	To         string `json:"to"`
	EventIndex int    `json:"event_index"`
}

// Engine mines the process catalog from extraction slices.
type Engine struct {
	// BottleneckFactor scales an SLA target into the bottleneck
	// threshold applied to median elapsed times. 1.0 flags any edge
	// whose median exceeds its SLA.
	BottleneckFactor float64
}

// HeadersFromResult converts the change-document extraction section into
// typed header rows.
func HeadersFromResult(res *extract.Result) []ChangeHeader {
	sec := res.Section("changeHeaders")
	if sec == nil {
		return nil
	}
	out := make([]ChangeHeader, 0, len(sec.Rows))
	for _, r := range sec.Rows {
		out = append(out, ChangeHeader{
			ObjectClass:  asString(r["OBJECTCLAS"]),
			ObjectID:     asString(r["OBJECTID"]),
			ChangeNumber: asString(r["CHANGENR"]),
			User:         asString(r["USERNAME"]),
			Date:         asString(r["UDATE"]),
			Time:         asString(r["UTIME"]),
			TCode:        asString(r["TCODE"]),
		})
	}
	return out
}

// ItemsFromResult converts the change-item section into typed rows.
func ItemsFromResult(res *extract.Result) []ChangeItem {
	sec := res.Section("changeItems")
	if sec == nil {
		return nil
	}
	out := make([]ChangeItem, 0, len(sec.Rows))
	for _, r := range sec.Rows {
		line := 0
		fmt.Sscanf(asString(r["LINENR"]), "%d", &line)
		out = append(out, ChangeItem{
			ChangeNumber: asString(r["CHANGENR"]),
			TableName:    asString(r["TABNAME"]),
			FieldName:    asString(r["FNAME"]),
			ChangeInd:    asString(r["CHNGIND"]),
			LineNumber:   line,
		})
	}
	return out
}

// UsageFromResult converts the usage-statistics section into typed rows.
func UsageFromResult(res *extract.Result) []UsageStat {
	sec := res.Section("transactionUsage")
	if sec == nil {
		return nil
	}
	out := make([]UsageStat, 0, len(sec.Rows))
	for _, r := range sec.Rows {
		var count int64
		fmt.Sscanf(asString(r["COUNT"]), "%d", &count)
		out = append(out, UsageStat{TCode: asString(r["TCODE"]), Count: count})
	}
	return out
}

func asString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Analyze derives cases, traces, conformance, and edge metrics. Two runs
// over the same input produce identical catalogs.
func (e *Engine) Analyze(headers []ChangeHeader, items []ChangeItem, usage []UsageStat) (*Catalog, error) {
	factor := e.BottleneckFactor
	if factor <= 0 {
		factor = 1.0
	}

	// The first item row per change number breaks ordering ties and
	// feeds the changed-field pattern of the classifier.
	firstItem := make(map[string]ChangeItem, len(items))
	for _, it := range items {
		cur, ok := firstItem[it.ChangeNumber]
		if !ok || it.LineNumber < cur.LineNumber {
			firstItem[it.ChangeNumber] = it
		}
	}

	type caseKey struct{ class, id string }
	traces := make(map[caseKey][]Event)
	families := make(map[caseKey]string)
	discarded := 0

	for _, h := range headers {
		first := firstItem[h.ChangeNumber]
		family, activity, ok := classify(h.ObjectClass, h.TCode, first.FieldName)
		if !ok {
			discarded++
			continue
		}
		ts, err := parseTimestamp(h.Date, h.Time)
		if err != nil {
			discarded++
			continue
		}
		key := caseKey{class: h.ObjectClass, id: h.ObjectID}
		families[key] = family
		traces[key] = append(traces[key], Event{
			Activity:     activity,
			User:         h.User,
			TCode:        h.TCode,
			Timestamp:    ts,
			ChangeNumber: h.ChangeNumber,
			Line:         first.LineNumber,
		})
	}

	// Deterministic case ordering.
	keys := make([]caseKey, 0, len(traces))
	for k := range traces {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].class != keys[j].class {
			return keys[i].class < keys[j].class
		}
		return keys[i].id < keys[j].id
	})

	perFamily := make(map[string]*familyAccumulator)
	observedTCodes := make(map[string]bool)

	for _, k := range keys {
		events := traces[k]
		sort.Slice(events, func(i, j int) bool {
			if !events[i].Timestamp.Equal(events[j].Timestamp) {
				return events[i].Timestamp.Before(events[j].Timestamp)
			}
			if events[i].ChangeNumber != events[j].ChangeNumber {
				return events[i].ChangeNumber < events[j].ChangeNumber
			}
			return events[i].Line < events[j].Line
		})

		family := families[k]
		model := refmodel.Lookup(family)
		if model == nil {
			continue
		}
		acc, ok := perFamily[family]
		if !ok {
			acc = newFamilyAccumulator(model)
			perFamily[family] = acc
		}
		caseID := k.class + ":" + k.id
		acc.addCase(caseID, events)
		for _, ev := range events {
			observedTCodes[ev.TCode] = true
		}
	}

	catalog := &Catalog{
		GeneratedAt:     time.Now().UTC(),
		DiscardedEvents: discarded,
	}
	for _, id := range refmodel.IDs() {
		acc, ok := perFamily[id]
		if !ok {
			continue
		}
		catalog.Processes = append(catalog.Processes, acc.summarize(factor))
		catalog.Cases = append(catalog.Cases, acc.cases...)
	}

	for _, u := range usage {
		if u.Count > 0 && !observedTCodes[u.TCode] {
			catalog.UnusedTransactions = append(catalog.UnusedTransactions, u)
		}
	}
	sort.Slice(catalog.UnusedTransactions, func(i, j int) bool {
		return catalog.UnusedTransactions[i].TCode < catalog.UnusedTransactions[j].TCode
	})

	return catalog, nil
}

func parseTimestamp(date, tm string) (time.Time, error) {
	if len(tm) != 6 {
		tm = "000000"
	}
	return time.Parse("20060102150405", date+tm)
}
