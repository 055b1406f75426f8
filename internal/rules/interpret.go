// Package rules applies the two rule families over extraction results:
// declarative configuration-interpretation rules and regex-based
// simplification rules.
package rules

import (
	"fmt"
	"log/slog"

	"github.com/erplens/erplens/internal/extract"
)

// Data is the flattened view of an extraction run: every extractor's
// sections shallow-merged into one lookup.
type Data map[string]*extract.Section

// Flatten merges results in run order. On a section-name collision the
// earlier extractor wins, which keeps the outcome deterministic for a
// fixed registry order.
func Flatten(results map[string]*extract.Result, order []string) Data {
	data := make(Data)
	for _, id := range order {
		res, ok := results[id]
		if !ok {
			continue
		}
		for _, name := range res.SectionNames() {
			if _, exists := data[name]; !exists {
				data[name] = res.Section(name)
			}
		}
	}
	return data
}

// Rule is one declarative configuration-interpretation rule.
type Rule struct {
	ID              string
	Description     string
	Condition       func(Data) bool
	Interpretation  func(Data) string
	Impact          string
	TargetRelevance string
}

// Finding is one emitted interpretation.
type Finding struct {
	RuleID          string `json:"rule_id"`
	Description     string `json:"description"`
	Interpretation  string `json:"interpretation"`
	Impact          string `json:"impact"`
	TargetRelevance string `json:"target_relevance"`
}

// Interpreter evaluates the interpretation rule table.
type Interpreter struct {
	Rules  []Rule
	Logger *slog.Logger
}

// NewInterpreter returns an interpreter over the built-in rule table.
func NewInterpreter(logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interpreter{Rules: interpretationRules, Logger: logger}
}

// Evaluate runs every rule against the flattened data. A failing rule is
// logged and skipped; it never fails the engine. Two evaluations over the
// same data yield the same findings in the same order.
func (it *Interpreter) Evaluate(data Data) []Finding {
	var findings []Finding
	for _, r := range it.Rules {
		finding, ok := it.evaluateOne(r, data)
		if ok {
			findings = append(findings, finding)
		}
	}
	return findings
}

func (it *Interpreter) evaluateOne(r Rule, data Data) (f Finding, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			it.Logger.Error("interpretation rule failed", "rule", r.ID, "error", fmt.Sprint(rec))
			ok = false
		}
	}()
	if !r.Condition(data) {
		return Finding{}, false
	}
	return Finding{
		RuleID:          r.ID,
		Description:     r.Description,
		Interpretation:  r.Interpretation(data),
		Impact:          r.Impact,
		TargetRelevance: r.TargetRelevance,
	}, true
}

func rowsOf(data Data, section string) []map[string]interface{} {
	s, ok := data[section]
	if !ok {
		return nil
	}
	return s.Rows
}

func summaryOf(data Data, section, key string) float64 {
	s, ok := data[section]
	if !ok || s.Summary == nil {
		return 0
	}
	return s.Summary[key]
}

func fieldString(row map[string]interface{}, col string) string {
	v, ok := row[col]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
