package mining

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/erplens/erplens/internal/refmodel"
)

// EdgeStat aggregates one observed transition.
type EdgeStat struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	Count       int     `json:"count"`
	MedianHours float64 `json:"median_hours"`
	CaseShare   float64 `json:"case_share"`
	Bottleneck  bool    `json:"bottleneck"`
	Conformant  bool    `json:"conformant"`
}

// Variant is one distinct activity sequence and its frequency.
type Variant struct {
	Sequence []string `json:"sequence"`
	Count    int      `json:"count"`
}

// SLABreach is one case transition that exceeded its SLA target.
type SLABreach struct {
	CaseID       string  `json:"case_id"`
	From         string  `json:"from"`
	To           string  `json:"to"`
	ElapsedHours float64 `json:"elapsed_hours"`
	TargetHours  float64 `json:"target_hours"`
	Severity     string  `json:"severity"`
}

// ProcessSummary is the mined picture of one process family.
type ProcessSummary struct {
	ID                    string         `json:"id"`
	Name                  string         `json:"name"`
	CaseCount             int            `json:"case_count"`
	VariantCount          int            `json:"variant_count"`
	EvidenceCounts        map[string]int `json:"evidence_counts"`
	TopVariants           []Variant      `json:"top_variants"`
	BottleneckTransitions []EdgeStat     `json:"bottleneck_transitions"`
	Edges                 []EdgeStat     `json:"edges"`
	Violations            []Violation    `json:"violations"`
	SLABreaches           []SLABreach    `json:"sla_breaches"`
}

// Catalog is the full mining output.
type Catalog struct {
	GeneratedAt        time.Time        `json:"generated_at"`
	Processes          []ProcessSummary `json:"processes"`
	Cases              []CaseTrace      `json:"cases"`
	UnusedTransactions []UsageStat      `json:"unused_transactions"`
	DiscardedEvents    int              `json:"discarded_events"`
}

// Process returns the summary for a family identifier, or nil.
func (c *Catalog) Process(id string) *ProcessSummary {
	for i := range c.Processes {
		if c.Processes[i].ID == id {
			return &c.Processes[i]
		}
	}
	return nil
}

// Summary renders a short human-readable report.
func (c *Catalog) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Process catalog (%d process(es), %d event(s) discarded)\n",
		len(c.Processes), c.DiscardedEvents)
	for _, p := range c.Processes {
		fmt.Fprintf(&b, "  %s %s: %d case(s), %d variant(s), %d violation(s), %d SLA breach(es)\n",
			p.ID, p.Name, p.CaseCount, p.VariantCount, len(p.Violations), len(p.SLABreaches))
		for _, e := range p.BottleneckTransitions {
			fmt.Fprintf(&b, "    bottleneck: %s -> %s (median %.1fh over %d observation(s))\n",
				e.From, e.To, e.MedianHours, e.Count)
		}
	}
	if len(c.UnusedTransactions) > 0 {
		fmt.Fprintf(&b, "  unused transactions: %d\n", len(c.UnusedTransactions))
	}
	return b.String()
}

type edgeKey struct{ from, to string }

type familyAccumulator struct {
	model      *refmodel.Model
	cases      []CaseTrace
	variants   map[string]*Variant
	edgeTimes  map[edgeKey][]float64
	edgeCases  map[edgeKey]map[string]bool
	violations []Violation
	breaches   []SLABreach
	eventCount int
}

func newFamilyAccumulator(model *refmodel.Model) *familyAccumulator {
	return &familyAccumulator{
		model:     model,
		variants:  make(map[string]*Variant),
		edgeTimes: make(map[edgeKey][]float64),
		edgeCases: make(map[edgeKey]map[string]bool),
	}
}

func (a *familyAccumulator) addCase(caseID string, events []Event) {
	a.cases = append(a.cases, CaseTrace{CaseID: caseID, Process: a.model.ID, Events: events})
	a.eventCount += len(events)

	seq := make([]string, len(events))
	for i, ev := range events {
		seq[i] = ev.Activity
	}
	sig := strings.Join(seq, " -> ")
	if v, ok := a.variants[sig]; ok {
		v.Count++
	} else {
		a.variants[sig] = &Variant{Sequence: seq, Count: 1}
	}

	for i := 0; i+1 < len(events); i++ {
		from, to := events[i].Activity, events[i+1].Activity
		key := edgeKey{from: from, to: to}
		elapsed := events[i+1].Timestamp.Sub(events[i].Timestamp).Hours()
		a.edgeTimes[key] = append(a.edgeTimes[key], elapsed)
		if a.edgeCases[key] == nil {
			a.edgeCases[key] = make(map[string]bool)
		}
		a.edgeCases[key][caseID] = true

		if !a.model.HasEdge(from, to) {
			a.violations = append(a.violations, Violation{
				CaseID: caseID, From: from, To: to, EventIndex: i,
			})
		}
		if sla, ok := a.model.SLA(from, to); ok && elapsed > sla.Hours() {
			a.breaches = append(a.breaches, SLABreach{
				CaseID:       caseID,
				From:         from,
				To:           to,
				ElapsedHours: round1(elapsed),
				TargetHours:  sla.Hours(),
				Severity:     sla.Severity,
			})
		}
	}
}

func (a *familyAccumulator) summarize(bottleneckFactor float64) ProcessSummary {
	totalCases := len(a.cases)

	keys := make([]edgeKey, 0, len(a.edgeTimes))
	for k := range a.edgeTimes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].from != keys[j].from {
			return keys[i].from < keys[j].from
		}
		return keys[i].to < keys[j].to
	})

	var edges, bottlenecks []EdgeStat
	for _, k := range keys {
		times := a.edgeTimes[k]
		stat := EdgeStat{
			From:        k.from,
			To:          k.to,
			Count:       len(times),
			MedianHours: round1(median(times)),
			CaseShare:   round1(100 * float64(len(a.edgeCases[k])) / float64(totalCases)),
			Conformant:  a.model.HasEdge(k.from, k.to),
		}
		if sla, ok := a.model.SLA(k.from, k.to); ok && stat.MedianHours > sla.Hours()*bottleneckFactor {
			stat.Bottleneck = true
			bottlenecks = append(bottlenecks, stat)
		}
		edges = append(edges, stat)
	}

	variants := make([]Variant, 0, len(a.variants))
	for _, v := range a.variants {
		variants = append(variants, *v)
	}
	sort.Slice(variants, func(i, j int) bool {
		if variants[i].Count != variants[j].Count {
			return variants[i].Count > variants[j].Count
		}
		return strings.Join(variants[i].Sequence, "|") < strings.Join(variants[j].Sequence, "|")
	})
	top := variants
	if len(top) > 5 {
		top = top[:5]
	}

	return ProcessSummary{
		ID:           a.model.ID,
		Name:         a.model.Name,
		CaseCount:    totalCases,
		VariantCount: len(variants),
		EvidenceCounts: map[string]int{
			"cases":  totalCases,
			"events": a.eventCount,
		},
		TopVariants:           top,
		BottleneckTransitions: bottlenecks,
		Edges:                 edges,
		Violations:            a.violations,
		SLABreaches:           a.breaches,
	}
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func round1(v float64) float64 {
	if v < 0 {
		return float64(int(v*10-0.5)) / 10
	}
	return float64(int(v*10+0.5)) / 10
}
