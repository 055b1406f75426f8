package rules

import (
	"regexp"
	"sort"
)

// Severity levels for simplification findings, highest first in reports.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

var severityRank = map[string]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

// SimplificationRule matches landscape artifacts by regular expression.
// Kind is either "source" for custom-development artifacts or "config"
// for configuration artifacts; Section and Column name the flattened
// result cell the pattern is applied to.
type SimplificationRule struct {
	ID          string
	Kind        string
	Title       string
	Description string
	Severity    string
	Category    string
	Section     string
	Column      string
	Pattern     *regexp.Regexp
	// SimplificationID names the catalog item in the target's
	// simplification list that this pattern maps to.
	SimplificationID string
	Recommendation   string
}

// SimplificationFinding is one matched artifact.
type SimplificationFinding struct {
	RuleID           string `json:"rule_id"`
	Title            string `json:"title"`
	Severity         string `json:"severity"`
	Category         string `json:"category"`
	Artifact         string `json:"artifact"`
	SimplificationID string `json:"simplification_id,omitempty"`
	Recommendation   string `json:"recommendation"`
}

// Scanner applies the simplification catalog to flattened results.
type Scanner struct {
	Rules []SimplificationRule
}

// NewScanner returns a scanner over the built-in catalog.
func NewScanner() *Scanner {
	return &Scanner{Rules: simplificationRules}
}

// SourceRules returns the catalog entries that target custom development.
func (s *Scanner) SourceRules() []SimplificationRule {
	return s.byKind("source")
}

// ConfigRules returns the catalog entries that target configuration.
func (s *Scanner) ConfigRules() []SimplificationRule {
	return s.byKind("config")
}

func (s *Scanner) byKind(kind string) []SimplificationRule {
	var out []SimplificationRule
	for _, r := range s.Rules {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// Scan matches every rule against every row of its target section and
// returns findings ordered by severity, then category, then rule ID,
// then artifact.
func (s *Scanner) Scan(data Data) []SimplificationFinding {
	var findings []SimplificationFinding
	for _, r := range s.Rules {
		for _, row := range rowsOf(data, r.Section) {
			value := fieldString(row, r.Column)
			if value == "" || !r.Pattern.MatchString(value) {
				continue
			}
			findings = append(findings, SimplificationFinding{
				RuleID:           r.ID,
				Title:            r.Title,
				Severity:         r.Severity,
				Category:         r.Category,
				Artifact:         value,
				SimplificationID: r.SimplificationID,
				Recommendation:   r.Recommendation,
			})
		}
	}
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if severityRank[a.Severity] != severityRank[b.Severity] {
			return severityRank[a.Severity] < severityRank[b.Severity]
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		return a.Artifact < b.Artifact
	})
	return findings
}
