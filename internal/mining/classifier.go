package mining

import "regexp"

// classToFamily assigns business-object classes to process families.
// Classes without an entry are discarded from mining. The table carries
// both the source-native class names and the neutral aliases used by
// upstream feeds.
var classToFamily = map[string]string{
	"VERKBELEG":           "O2C",
	"LIEFERUNG":           "O2C",
	"FAKTBELEG":           "O2C",
	"sales-document":      "O2C",
	"EINKBELEG":           "P2P",
	"MATBELEG":            "P2P",
	"purchasing-document": "P2P",
	"BELEG":               "R2R",
	"accounting-document": "R2R",
	"ANLA":                "A2R",
	"PREL":                "H2R",
	"ORDER":               "P2M",
	"QMEL":                "M2S",
}

// activityRule resolves (transaction code, object class, changed-field
// pattern) to a reference-model activity. Rules are evaluated in order;
// the first match wins. New codes extend the table, not the resolver.
type activityRule struct {
	tcode        string
	objectClass  string // empty matches any class
	fieldPattern *regexp.Regexp
	activity     string
}

var activityRules = []activityRule{
	// Order to cash.
	{tcode: "VA01", activity: "Create Sales Order"},
	{tcode: "create-sales-order", activity: "Create Sales Order"},
	{tcode: "VA02", activity: "Change Sales Order"},
	{tcode: "VL01N", activity: "Create Delivery"},
	{tcode: "VL02N", fieldPattern: regexp.MustCompile(`^WADAT`), activity: "Post Goods Issue"},
	{tcode: "VL02N", activity: "Create Delivery"},
	{tcode: "VF01", activity: "Create Invoice"},
	{tcode: "F-28", activity: "Post Payment"},
	// Procure to pay.
	{tcode: "ME21N", activity: "Create Purchase Order"},
	{tcode: "create-purchase-order", activity: "Create Purchase Order"},
	{tcode: "ME22N", activity: "Change Purchase Order"},
	{tcode: "MIGO", activity: "Post Goods Receipt"},
	{tcode: "MIRO", activity: "Post Invoice Receipt"},
	{tcode: "F110", activity: "Post Payment"},
	// Record to report.
	{tcode: "FB01", activity: "Post Journal Entry"},
	{tcode: "FB05", activity: "Clear Open Items"},
	{tcode: "FAGLGVTR", activity: "Run Period Close"},
	// Acquire to retire.
	{tcode: "AS01", activity: "Create Asset"},
	{tcode: "F-90", activity: "Post Acquisition"},
	{tcode: "AFAB", activity: "Run Depreciation"},
	{tcode: "ABAVN", activity: "Retire Asset"},
	// Hire to retire.
	{tcode: "PA40", objectClass: "PREL", fieldPattern: regexp.MustCompile(`^MASSN`), activity: "Hire Employee"},
	{tcode: "PA40", activity: "Hire Employee"},
	{tcode: "PA30", activity: "Maintain Master Data"},
	{tcode: "PC00", activity: "Run Payroll"},
	// Plan to manufacture.
	{tcode: "CO01", activity: "Create Production Order"},
	{tcode: "CO02", fieldPattern: regexp.MustCompile(`^FTRMI`), activity: "Release Production Order"},
	{tcode: "CO27", activity: "Issue Components"},
	{tcode: "CO11N", activity: "Confirm Operations"},
	// Maintain to settle.
	{tcode: "IW21", activity: "Create Notification"},
	{tcode: "IW31", activity: "Create Maintenance Order"},
	{tcode: "IW41", activity: "Execute Work"},
	{tcode: "KO88", activity: "Settle Order"},
}

// classify resolves one change-document header to (family, activity).
// The changed field of the header's first item row disambiguates
// transactions that cover several activities.
func classify(objectClass, tcode, firstField string) (family, activity string, ok bool) {
	family, ok = classToFamily[objectClass]
	if !ok {
		return "", "", false
	}
	for _, r := range activityRules {
		if r.tcode != tcode {
			continue
		}
		if r.objectClass != "" && r.objectClass != objectClass {
			continue
		}
		if r.fieldPattern != nil && !r.fieldPattern.MatchString(firstField) {
			continue
		}
		return family, r.activity, true
	}
	return "", "", false
}
