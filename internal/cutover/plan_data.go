package cutover

// baseTasks returns the standing cutover task list. Dependencies form a
// DAG within and across phases.
func baseTasks() []Task {
	return []Task{
		// prep
		{ID: "prep-freeze-announce", Phase: PhasePrep, Name: "Announce change freeze to all stakeholders", DurationHours: 1, Priority: "high", Status: "planned"},
		{ID: "prep-final-backup", Phase: PhasePrep, Name: "Take final source system backup", DurationHours: 4, Dependencies: []string{"prep-freeze-announce"}, Priority: "critical", Status: "planned"},
		{ID: "prep-lock-users", Phase: PhasePrep, Name: "Lock business users in the source system", DurationHours: 0.5, Dependencies: []string{"prep-freeze-announce"}, Priority: "critical", Status: "planned"},
		{ID: "prep-drain-interfaces", Phase: PhasePrep, Name: "Drain interface queues and stop schedulers", DurationHours: 2, Dependencies: []string{"prep-lock-users"}, Priority: "high", Status: "planned"},
		{ID: "prep-snapshot-counts", Phase: PhasePrep, Name: "Record source record counts for reconciliation", DurationHours: 1, Dependencies: []string{"prep-drain-interfaces"}, Priority: "high", Status: "planned"},

		// migrate
		{ID: "migrate-master-data", Phase: PhaseMigrate, Name: "Run master data migration objects", DurationHours: 6, Dependencies: []string{"prep-final-backup", "prep-snapshot-counts"}, Priority: "critical", Status: "planned"},
		{ID: "migrate-open-items", Phase: PhaseMigrate, Name: "Migrate open transactional items", DurationHours: 8, Dependencies: []string{"migrate-master-data"}, Priority: "critical", Status: "planned"},
		{ID: "migrate-balances", Phase: PhaseMigrate, Name: "Migrate ledger balances", DurationHours: 4, Dependencies: []string{"migrate-open-items"}, Priority: "critical", Status: "planned"},
		{ID: "migrate-historical", Phase: PhaseMigrate, Name: "Load agreed historical data slice", DurationHours: 6, Dependencies: []string{"migrate-master-data"}, Priority: "medium", Status: "planned"},

		// validate
		{ID: "validate-reconcile", Phase: PhaseValidate, Name: "Reconcile record counts against source snapshot", DurationHours: 3, Dependencies: []string{"migrate-balances"}, Priority: "critical", Status: "planned"},
		{ID: "validate-financials", Phase: PhaseValidate, Name: "Validate trial balance and open item totals", DurationHours: 3, Dependencies: []string{"validate-reconcile"}, Priority: "critical", Status: "planned"},
		{ID: "validate-spot-checks", Phase: PhaseValidate, Name: "Business spot checks on migrated documents", DurationHours: 2, Dependencies: []string{"validate-reconcile"}, Priority: "high", Status: "planned"},

		// test
		{ID: "test-smoke", Phase: PhaseTest, Name: "Execute technical smoke test suite", DurationHours: 2, Dependencies: []string{"validate-financials"}, Priority: "critical", Status: "planned"},
		{ID: "test-key-scenarios", Phase: PhaseTest, Name: "Run key business scenarios end to end", DurationHours: 4, Dependencies: []string{"test-smoke"}, Priority: "critical", Status: "planned"},
		{ID: "test-interfaces", Phase: PhaseTest, Name: "Verify interface connectivity with partners", DurationHours: 3, Dependencies: []string{"test-smoke"}, Priority: "high", Status: "planned"},
		{ID: "test-authorizations", Phase: PhaseTest, Name: "Verify role assignments for go-live users", DurationHours: 2, Dependencies: []string{"test-smoke"}, Priority: "high", Status: "planned"},

		// golive
		{ID: "golive-signoff", Phase: PhaseGolive, Name: "Obtain go/no-go sign-off", DurationHours: 1, Dependencies: []string{"test-key-scenarios", "test-interfaces", "test-authorizations", "validate-spot-checks"}, Priority: "critical", Status: "planned"},
		{ID: "golive-open-system", Phase: PhaseGolive, Name: "Open the target system to business users", DurationHours: 1, Dependencies: []string{"golive-signoff"}, Priority: "critical", Status: "planned"},
		{ID: "golive-start-interfaces", Phase: PhaseGolive, Name: "Start interfaces and schedulers on the target", DurationHours: 2, Dependencies: []string{"golive-open-system"}, Priority: "critical", Status: "planned"},
		{ID: "golive-hypercare", Phase: PhaseGolive, Name: "Begin hypercare support rotation", DurationHours: 1, Dependencies: []string{"golive-open-system"}, Priority: "medium", Status: "planned"},
	}
}

// checklist returns the fixed 15-item readiness checklist.
func checklist() []ChecklistItem {
	return []ChecklistItem{
		{ID: "chk-01", Category: "data", Description: "All migration objects report load done or accepted exception", Mandatory: true, Status: "pending"},
		{ID: "chk-02", Category: "data", Description: "Reconciliation counts signed off by data owners", Mandatory: true, Status: "pending"},
		{ID: "chk-03", Category: "data", Description: "Duplicate and quality warnings dispositioned", Mandatory: true, Status: "pending"},
		{ID: "chk-04", Category: "technical", Description: "Target system sizing and backups verified", Mandatory: true, Status: "pending"},
		{ID: "chk-05", Category: "technical", Description: "Interface connectivity tested with every partner", Mandatory: true, Status: "pending"},
		{ID: "chk-06", Category: "technical", Description: "Batch schedule rebuilt and dry-run on the target", Mandatory: true, Status: "pending"},
		{ID: "chk-07", Category: "technical", Description: "Printing and output management verified", Mandatory: false, Status: "pending"},
		{ID: "chk-08", Category: "security", Description: "Go-live roles assigned and tested for key users", Mandatory: true, Status: "pending"},
		{ID: "chk-09", Category: "security", Description: "Emergency access procedure documented", Mandatory: true, Status: "pending"},
		{ID: "chk-10", Category: "business", Description: "Key user training completed", Mandatory: false, Status: "pending"},
		{ID: "chk-11", Category: "business", Description: "Business sign-off on test scenario results", Mandatory: true, Status: "pending"},
		{ID: "chk-12", Category: "business", Description: "Communication plan executed for cutover weekend", Mandatory: true, Status: "pending"},
		{ID: "chk-13", Category: "organization", Description: "Hypercare rota staffed and published", Mandatory: true, Status: "pending"},
		{ID: "chk-14", Category: "organization", Description: "Escalation path and war-room logistics confirmed", Mandatory: true, Status: "pending"},
		{ID: "chk-15", Category: "organization", Description: "Rollback decision makers identified and reachable", Mandatory: true, Status: "pending"},
	}
}

// rollbackPlan returns the fixed eight-step fallback procedure.
func rollbackPlan() RollbackPlan {
	steps := []RollbackStep{
		{Number: 1, Name: "Declare rollback and notify stakeholders", DurationMinutes: 15},
		{Number: 2, Name: "Stop target interfaces and schedulers", DurationMinutes: 20},
		{Number: 3, Name: "Lock users out of the target system", DurationMinutes: 10},
		{Number: 4, Name: "Re-open the source system from the freeze state", DurationMinutes: 30},
		{Number: 5, Name: "Replay interface queues against the source", DurationMinutes: 60},
		{Number: 6, Name: "Restart source schedulers and background jobs", DurationMinutes: 20},
		{Number: 7, Name: "Run source smoke tests with key users", DurationMinutes: 45},
		{Number: 8, Name: "Announce source operation resumed", DurationMinutes: 10},
	}
	total := 0
	for _, s := range steps {
		total += s.DurationMinutes
	}
	return RollbackPlan{
		TriggerCriteria: []string{
			"Reconciliation variance above the agreed tolerance",
			"Blocking defect in a key business scenario without workaround",
			"Target system unavailable beyond the recovery objective",
			"Go/no-go sign-off withheld by business owners",
		},
		Steps:               steps,
		TotalMinutes:        total,
		DecisionWindowHours: 4,
	}
}
