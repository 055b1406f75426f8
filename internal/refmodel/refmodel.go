// Package refmodel holds the curated reference process models: directed
// graphs of allowed activity transitions for the canonical end-to-end
// processes, with SLA targets and critical transitions.
package refmodel

// Edge types.
type EdgeType string

const (
	EdgeSequence EdgeType = "sequence"
	EdgeParallel EdgeType = "parallel"
	EdgeChoice   EdgeType = "choice"
)

// Edge is one allowed transition between activities.
type Edge struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Type EdgeType `json:"type"`
}

// Transition keys an SLA target.
type Transition struct {
	From string
	To   string
}

// SLATarget bounds the expected elapsed time of one transition.
type SLATarget struct {
	Target   float64 `json:"target"`
	Unit     string  `json:"unit"` // hours or days
	Severity string  `json:"severity"`
}

// Hours normalizes the target to hours.
func (s SLATarget) Hours() float64 {
	if s.Unit == "days" {
		return s.Target * 24
	}
	return s.Target
}

// Model is one reference process graph.
type Model struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	Activities []string                 `json:"activities"`
	Edges      []Edge                   `json:"edges"`
	Start      []string                 `json:"start"`
	End        []string                 `json:"end"`
	SLAs       map[Transition]SLATarget `json:"-"`
	// CriticalPath is the happy-path activity sequence; its consecutive
	// pairs are the model's critical transitions.
	CriticalPath []string `json:"critical_path"`
}

// HasActivity reports whether the activity belongs to the model.
func (m *Model) HasActivity(a string) bool {
	for _, act := range m.Activities {
		if act == a {
			return true
		}
	}
	return false
}

// HasEdge reports whether (from, to) is an allowed transition.
func (m *Model) HasEdge(from, to string) bool {
	for _, e := range m.Edges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

// SLA returns the target for a transition, if declared.
func (m *Model) SLA(from, to string) (SLATarget, bool) {
	t, ok := m.SLAs[Transition{From: from, To: to}]
	return t, ok
}

// CriticalTransitions lists the consecutive pairs of the critical path.
func (m *Model) CriticalTransitions() []Edge {
	var out []Edge
	for i := 0; i+1 < len(m.CriticalPath); i++ {
		out = append(out, Edge{From: m.CriticalPath[i], To: m.CriticalPath[i+1], Type: EdgeSequence})
	}
	return out
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// IsStart reports whether the activity is in the model's start set.
func (m *Model) IsStart(a string) bool { return contains(m.Start, a) }

// IsEnd reports whether the activity is in the model's end set.
func (m *Model) IsEnd(a string) bool { return contains(m.End, a) }

// Lookup returns the model for a process family identifier, or nil when
// the identifier is unknown.
func Lookup(id string) *Model {
	return models[id]
}

// IDs returns the registered family identifiers in canonical order.
func IDs() []string {
	return []string{"O2C", "P2P", "R2R", "A2R", "H2R", "P2M", "M2S"}
}
