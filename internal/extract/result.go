package extract

// Section is one named slice of an extraction result: a row list with its
// declared column set, plus computed numeric summaries.
type Section struct {
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
	Summary map[string]float64       `json:"summary,omitempty"`
}

// Result is an extractor's structured output. Every row list carries a
// declared column set; free-form blobs are never stored.
type Result struct {
	ExtractorID string              `json:"extractor_id"`
	Sections    map[string]*Section `json:"sections"`

	order []string
}

// NewResult creates an empty result for the given extractor.
func NewResult(extractorID string) *Result {
	return &Result{ExtractorID: extractorID, Sections: make(map[string]*Section)}
}

// AddSection attaches a named section, preserving insertion order for
// display purposes.
func (r *Result) AddSection(name string, s *Section) {
	if _, ok := r.Sections[name]; !ok {
		r.order = append(r.order, name)
	}
	r.Sections[name] = s
}

// AddRows is shorthand for attaching a plain row-list section.
func (r *Result) AddRows(name string, columns []string, rows []map[string]interface{}) {
	r.AddSection(name, &Section{Columns: columns, Rows: rows})
}

// Section returns the named section or nil. A nil result has no
// sections, so readers of filtered runs need no presence check.
func (r *Result) Section(name string) *Section {
	if r == nil {
		return nil
	}
	return r.Sections[name]
}

// SectionNames returns section names in insertion order.
func (r *Result) SectionNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// RowCount sums rows across all sections.
func (r *Result) RowCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Rows)
	}
	return n
}
