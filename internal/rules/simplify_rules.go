package rules

import "regexp"

// simplificationRules is the built-in catalog. Source rules target custom
// development artifacts, config rules target configuration artifacts.
var simplificationRules = []SimplificationRule{
	// Source rules.
	{
		ID:               "src.custom-report",
		Kind:             "source",
		Title:            "Custom report program",
		Description:      "Custom Z report program found in the repository inventory",
		Severity:         SeverityMedium,
		Category:         "reporting",
		Section:          "customObjects",
		Column:           "OBJ_NAME",
		Pattern:          regexp.MustCompile(`^Z.*(RPT|REPORT)`),
		SimplificationID: "SI-REP-001",
		Recommendation:   "Replace with embedded analytics instead of porting the report",
	},
	{
		ID:               "src.pricing-exit",
		Kind:             "source",
		Title:            "Custom pricing exit",
		Description:      "Custom code hooked into pricing determination",
		Severity:         SeverityHigh,
		Category:         "sales",
		Section:          "customObjects",
		Column:           "OBJ_NAME",
		Pattern:          regexp.MustCompile(`PRICING`),
		SimplificationID: "SI-SD-014",
		Recommendation:   "Model the pricing requirement with standard condition technique",
	},
	{
		ID:               "src.batch-upload",
		Kind:             "source",
		Title:            "Custom batch upload program",
		Description:      "Custom program that loads data from uploaded files",
		Severity:         SeverityMedium,
		Category:         "data-entry",
		Section:          "customObjects",
		Column:           "OBJ_NAME",
		Pattern:          regexp.MustCompile(`BATCH_UPLOAD|UPLOAD`),
		SimplificationID: "SI-DM-003",
		Recommendation:   "Replace file uploads with the standard migration cockpit or APIs",
	},
	{
		ID:               "src.custom-idoc",
		Kind:             "source",
		Title:            "Custom IDoc processing",
		Description:      "Custom IDoc segment or processing function",
		Severity:         SeverityHigh,
		Category:         "integration",
		Section:          "customObjects",
		Column:           "OBJ_NAME",
		Pattern:          regexp.MustCompile(`IDOC`),
		SimplificationID: "SI-INT-021",
		Recommendation:   "Re-implement the interface on standard APIs rather than custom IDoc handlers",
	},
	{
		ID:               "src.custom-table",
		Kind:             "source",
		Title:            "Custom database table",
		Description:      "Customer-namespace database table in the data model",
		Severity:         SeverityMedium,
		Category:         "data-model",
		Section:          "customObjects",
		Column:           "OBJ_NAME",
		Pattern:          regexp.MustCompile(`^ZTAB|^ZT[A-Z0-9]`),
		SimplificationID: "SI-DM-007",
		Recommendation:   "Check whether a standard extension field covers the custom table",
	},
	{
		ID:               "src.core-modification",
		Kind:             "source",
		Title:            "Modification of a standard program",
		Description:      "Repair or modification recorded against a standard program",
		Severity:         SeverityCritical,
		Category:         "modification",
		Section:          "modifications",
		Column:           "OBJ_NAME",
		Pattern:          regexp.MustCompile(`^(SAPM|MV\d{2}A)`),
		SimplificationID: "SI-MOD-001",
		Recommendation:   "Core modifications cannot be carried over; redesign as an extension",
	},
	{
		ID:               "src.user-exit",
		Kind:             "source",
		Title:            "User exit implementation",
		Description:      "Classic user exit carrying custom logic",
		Severity:         SeverityHigh,
		Category:         "modification",
		Section:          "modifications",
		Column:           "PROTOCOL",
		Pattern:          regexp.MustCompile(`(?i)user.?exit`),
		SimplificationID: "SI-MOD-004",
		Recommendation:   "Map the exit logic to a released extension point",
	},
	{
		ID:               "src.custom-batch-program",
		Kind:             "source",
		Title:            "Custom program scheduled as a background job",
		Description:      "Background job step running a customer-namespace program",
		Severity:         SeverityMedium,
		Category:         "operations",
		Section:          "steps",
		Column:           "PROGNAME",
		Pattern:          regexp.MustCompile(`^Z`),
		SimplificationID: "SI-OPS-002",
		Recommendation:   "Custom jobs need an explicit target-side owner and rebuild decision",
	},
	{
		ID:               "src.idoc-reprocessing",
		Kind:             "source",
		Title:            "Scheduled IDoc reprocessing",
		Description:      "Scheduled job re-driving failed IDocs",
		Severity:         SeverityLow,
		Category:         "integration",
		Section:          "steps",
		Column:           "PROGNAME",
		Pattern:          regexp.MustCompile(`^RBDMANI`),
		SimplificationID: "SI-INT-025",
		Recommendation:   "Recurring reprocessing signals chronic interface errors worth fixing at the source",
	},

	// Config rules.
	{
		ID:               "cfg.wide-profile",
		Kind:             "config",
		Title:            "SAP_ALL profile assignment",
		Description:      "User holding the all-authorizations composite profile",
		Severity:         SeverityCritical,
		Category:         "security",
		Section:          "wideProfiles",
		Column:           "PROFILE",
		Pattern:          regexp.MustCompile(`^SAP_ALL`),
		SimplificationID: "SI-SEC-001",
		Recommendation:   "Replace blanket profiles with scoped roles before migrating identities",
	},
	{
		ID:               "cfg.star-authorization",
		Kind:             "config",
		Title:            "Wildcard authorization value",
		Description:      "Authorization field granted the wildcard value",
		Severity:         SeverityCritical,
		Category:         "security",
		Section:          "criticalAuthorizations",
		Column:           "LOW",
		Pattern:          regexp.MustCompile(`^\*$`),
		SimplificationID: "SI-SEC-002",
		Recommendation:   "Constrain the authorization to explicit values in the target role design",
	},
	{
		ID:               "cfg.tcpip-destination",
		Kind:             "config",
		Title:            "TCP/IP RFC destination",
		Description:      "RFC destination of the registered-server type",
		Severity:         SeverityMedium,
		Category:         "integration",
		Section:          "rfcDestinations",
		Column:           "RFCTYPE",
		Pattern:          regexp.MustCompile(`^T$`),
		SimplificationID: "SI-INT-009",
		Recommendation:   "Registered-server destinations need a protocol decision for the target landscape",
	},
	{
		ID:               "cfg.bw-extraction",
		Kind:             "config",
		Title:            "Data warehouse extraction destination",
		Description:      "RFC destination feeding the data warehouse",
		Severity:         SeverityMedium,
		Category:         "analytics",
		Section:          "rfcDestinations",
		Column:           "RFCDEST",
		Pattern:          regexp.MustCompile(`^BW_`),
		SimplificationID: "SI-ANA-001",
		Recommendation:   "Re-point extraction to the target's embedded analytics or keep the warehouse feed",
	},
	{
		ID:               "cfg.crm-integration",
		Kind:             "config",
		Title:            "CRM integration destination",
		Description:      "RFC destination linking the CRM middleware",
		Severity:         SeverityHigh,
		Category:         "integration",
		Section:          "rfcDestinations",
		Column:           "RFCDEST",
		Pattern:          regexp.MustCompile(`^CRM_`),
		SimplificationID: "SI-INT-012",
		Recommendation:   "The CRM middleware link must be rebuilt or retired as part of cutover",
	},
	{
		ID:               "cfg.custom-job",
		Kind:             "config",
		Title:            "Custom background job schedule",
		Description:      "Recurring background job in the customer namespace",
		Severity:         SeverityLow,
		Category:         "operations",
		Section:          "jobs",
		Column:           "JOBNAME",
		Pattern:          regexp.MustCompile(`^Z_`),
		SimplificationID: "SI-OPS-001",
		Recommendation:   "Inventory the schedule and rebuild it on the target job scheduler",
	},
	{
		ID:               "cfg.unarchived-growth",
		Kind:             "config",
		Title:            "Growing table without archiving",
		Description:      "Large growing table with no archiving runs recorded",
		Severity:         SeverityMedium,
		Category:         "data-volume",
		Section:          "growthCandidates",
		Column:           "TNAME",
		Pattern:          regexp.MustCompile(`^[A-Z]`),
		SimplificationID: "SI-VOL-001",
		Recommendation:   "Activate the matching archiving object before the migration rehearsals",
	},
}
