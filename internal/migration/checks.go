package migration

import (
	"fmt"
	"strings"
)

// runChecks applies the object's declared quality checks to transformed
// rows and returns findings in check order, then row order.
func runChecks(checks []QualityCheck, rows []map[string]string) []Failure {
	var failures []Failure
	for _, check := range checks {
		switch check.Kind {
		case CheckRequired:
			failures = append(failures, checkRequired(check, rows)...)
		case CheckExactDuplicate:
			failures = append(failures, checkExactDuplicate(check, rows)...)
		case CheckFuzzyDuplicate:
			failures = append(failures, checkFuzzyDuplicate(check, rows)...)
		}
	}
	return failures
}

func checkRequired(check QualityCheck, rows []map[string]string) []Failure {
	var failures []Failure
	for i, row := range rows {
		for _, field := range check.Fields {
			if row[field] != "" {
				continue
			}
			failures = append(failures, Failure{
				Check:    CheckRequired,
				Field:    field,
				RowIndex: i,
				Message:  fmt.Sprintf("required field %s is empty", field),
				Blocking: true,
			})
		}
	}
	return failures
}

func checkExactDuplicate(check QualityCheck, rows []map[string]string) []Failure {
	var failures []Failure
	seen := make(map[string]int, len(rows))
	for i, row := range rows {
		key := tupleKey(check.Fields, row)
		if first, dup := seen[key]; dup {
			failures = append(failures, Failure{
				Check:    CheckExactDuplicate,
				Field:    strings.Join(check.Fields, ","),
				RowIndex: i,
				Message:  fmt.Sprintf("duplicate of row %d on (%s)", first, strings.Join(check.Fields, ", ")),
				Blocking: true,
			})
			continue
		}
		seen[key] = i
	}
	return failures
}

func checkFuzzyDuplicate(check QualityCheck, rows []map[string]string) []Failure {
	var failures []Failure
	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = tupleKey(check.Fields, row)
	}
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if keys[i] == keys[j] {
				// Exact repeats are the exactDuplicate check's business.
				continue
			}
			score := Similarity(keys[i], keys[j])
			if score < check.Threshold {
				continue
			}
			failures = append(failures, Failure{
				Check:    CheckFuzzyDuplicate,
				Field:    strings.Join(check.Fields, ","),
				RowIndex: j,
				Message:  fmt.Sprintf("row %d resembles row %d (similarity %.2f)", j, i, score),
				Blocking: false,
			})
		}
	}
	return failures
}

func tupleKey(fields []string, row map[string]string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = row[f]
	}
	return strings.Join(parts, "\x00")
}
