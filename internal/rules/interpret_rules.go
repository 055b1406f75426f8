package rules

import (
	"fmt"
	"sort"
	"strings"
)

// interpretationRules is the built-in rule table, evaluated in order.
var interpretationRules = []Rule{
	{
		ID:          "org.company-codes",
		Description: "Summarize the configured company code landscape",
		Condition: func(d Data) bool {
			return len(rowsOf(d, "companyCodes")) > 0
		},
		Interpretation: func(d Data) string {
			rows := rowsOf(d, "companyCodes")
			parts := make([]string, 0, len(rows))
			for _, r := range rows {
				code := fieldString(r, "code")
				text := fieldString(r, "text")
				if text != "" {
					parts = append(parts, fmt.Sprintf("%s (%s)", code, text))
				} else {
					parts = append(parts, code)
				}
			}
			return fmt.Sprintf("%d company code(s) configured: %s", len(rows), strings.Join(parts, ", "))
		},
		Impact:          "Each company code carries its own document flows and closing cycle",
		TargetRelevance: "Determines the legal-entity structure to reproduce in the target system",
	},
	{
		ID:          "org.fiscal-year-variants",
		Description: "Summarize fiscal year variants in use",
		Condition: func(d Data) bool {
			return len(rowsOf(d, "fiscalYearVariants")) > 0
		},
		Interpretation: func(d Data) string {
			rows := rowsOf(d, "fiscalYearVariants")
			variants := make([]string, 0, len(rows))
			for _, r := range rows {
				variants = append(variants, fieldString(r, "PERIV"))
			}
			sort.Strings(variants)
			return fmt.Sprintf("%d fiscal year variant(s) defined: %s", len(variants), strings.Join(variants, ", "))
		},
		Impact:          "Divergent fiscal calendars complicate consolidated reporting",
		TargetRelevance: "Fiscal calendars must be recreated before transactional migration",
	},
	{
		ID:          "co.secondary-cost-elements",
		Description: "Detect internal allocation usage via secondary cost elements",
		Condition: func(d Data) bool {
			return summaryOf(d, "costElements", "secondary") > 0
		},
		Interpretation: func(d Data) string {
			return fmt.Sprintf("%d secondary cost element(s) indicate active internal cost allocation",
				int(summaryOf(d, "costElements", "secondary")))
		},
		Impact:          "Allocation cycles depend on these elements at period close",
		TargetRelevance: "Allocation logic must be redesigned, not copied, in the target",
	},
	{
		ID:          "basis.number-range-pressure",
		Description: "Flag number range intervals nearing exhaustion",
		Condition: func(d Data) bool {
			for _, r := range rowsOf(d, "consumption") {
				if pct, ok := r["consumptionPct"].(float64); ok && pct >= 80 {
					return true
				}
			}
			return false
		},
		Interpretation: func(d Data) string {
			var hot []string
			for _, r := range rowsOf(d, "consumption") {
				pct, ok := r["consumptionPct"].(float64)
				if !ok || pct < 80 {
					continue
				}
				hot = append(hot, fmt.Sprintf("%s/%s at %.1f%%",
					fieldString(r, "OBJECT"), fieldString(r, "NRRANGENR"), pct))
			}
			sort.Strings(hot)
			return fmt.Sprintf("%d number range interval(s) above 80%% consumption: %s",
				len(hot), strings.Join(hot, ", "))
		},
		Impact:          "An exhausted interval halts document posting for its object",
		TargetRelevance: "High-volume objects need wider ranges or different numbering in the target",
	},
	{
		ID:          "integration.interface-count",
		Description: "Summarize the outbound integration surface",
		Condition: func(d Data) bool {
			return len(rowsOf(d, "rfcDestinations")) > 0
		},
		Interpretation: func(d Data) string {
			rfc := len(rowsOf(d, "rfcDestinations"))
			edi := len(rowsOf(d, "partnerProfiles"))
			return fmt.Sprintf("%d RFC destination(s) and %d EDI partner profile(s) form the integration surface", rfc, edi)
		},
		Impact:          "Every interface is a cutover dependency with its own owner",
		TargetRelevance: "Each destination needs a mapped or retired counterpart before go-live",
	},
	{
		ID:          "security.locked-users",
		Description: "Report dormant locked accounts",
		Condition: func(d Data) bool {
			return summaryOf(d, "users", "locked") > 0
		},
		Interpretation: func(d Data) string {
			return fmt.Sprintf("%d user account(s) are locked and candidates for exclusion from migration",
				int(summaryOf(d, "users", "locked")))
		},
		Impact:          "Migrating dead accounts inflates licensing and audit scope",
		TargetRelevance: "Locked accounts can be dropped from the identity mapping",
	},
	{
		ID:          "basis.periodic-jobs",
		Description: "Summarize recurring background processing",
		Condition: func(d Data) bool {
			return summaryOf(d, "jobs", "periodic") > 0
		},
		Interpretation: func(d Data) string {
			return fmt.Sprintf("%d periodic background job(s) scheduled; each needs a target-side equivalent",
				int(summaryOf(d, "jobs", "periodic")))
		},
		Impact:          "Missed periodic jobs surface as silent data gaps after cutover",
		TargetRelevance: "Job schedules must be inventoried and rebuilt on the target scheduler",
	},
	{
		ID:          "basis.table-growth",
		Description: "Flag tables growing fast enough to warrant archiving before migration",
		Condition: func(d Data) bool {
			return len(rowsOf(d, "growthCandidates")) > 0
		},
		Interpretation: func(d Data) string {
			rows := rowsOf(d, "growthCandidates")
			names := make([]string, 0, len(rows))
			for _, r := range rows {
				names = append(names, fieldString(r, "TNAME"))
			}
			sort.Strings(names)
			return fmt.Sprintf("%d table(s) show sustained growth and should be archived before data migration: %s",
				len(names), strings.Join(names, ", "))
		},
		Impact:          "Unarchived volume extends every migration rehearsal and the cutover window",
		TargetRelevance: "Archive first, migrate less",
	},
	{
		ID:          "code.custom-footprint",
		Description: "Measure the custom development footprint",
		Condition: func(d Data) bool {
			return summaryOf(d, "customObjects", "customNamed") > 0
		},
		Interpretation: func(d Data) string {
			return fmt.Sprintf("%d custom-namespace object(s) found; each is a candidate for retirement or rebuild",
				int(summaryOf(d, "customObjects", "customNamed")))
		},
		Impact:          "Custom code is the dominant cost driver of the transformation",
		TargetRelevance: "Usage data decides which objects are rebuilt versus dropped",
	},
}
