package refmodel

var models = map[string]*Model{
	"O2C": {
		ID:   "O2C",
		Name: "Order to Cash",
		Activities: []string{
			"Create Sales Order", "Change Sales Order", "Create Delivery",
			"Post Goods Issue", "Create Invoice", "Post Payment",
		},
		Edges: []Edge{
			{From: "Create Sales Order", To: "Change Sales Order", Type: EdgeChoice},
			{From: "Change Sales Order", To: "Change Sales Order", Type: EdgeChoice},
			{From: "Create Sales Order", To: "Create Delivery", Type: EdgeSequence},
			{From: "Change Sales Order", To: "Create Delivery", Type: EdgeSequence},
			{From: "Create Delivery", To: "Post Goods Issue", Type: EdgeSequence},
			{From: "Create Delivery", To: "Create Invoice", Type: EdgeChoice},
			{From: "Post Goods Issue", To: "Create Invoice", Type: EdgeSequence},
			{From: "Create Invoice", To: "Post Payment", Type: EdgeSequence},
		},
		Start: []string{"Create Sales Order"},
		End:   []string{"Create Invoice", "Post Payment"},
		SLAs: map[Transition]SLATarget{
			{From: "Create Sales Order", To: "Create Delivery"}: {Target: 48, Unit: "hours", Severity: "high"},
			{From: "Create Delivery", To: "Post Goods Issue"}:   {Target: 24, Unit: "hours", Severity: "high"},
			{From: "Create Delivery", To: "Create Invoice"}:     {Target: 72, Unit: "hours", Severity: "medium"},
			{From: "Post Goods Issue", To: "Create Invoice"}:    {Target: 48, Unit: "hours", Severity: "medium"},
			{From: "Create Invoice", To: "Post Payment"}:        {Target: 30, Unit: "days", Severity: "low"},
		},
		CriticalPath: []string{
			"Create Sales Order", "Create Delivery", "Post Goods Issue",
			"Create Invoice", "Post Payment",
		},
	},
	"P2P": {
		ID:   "P2P",
		Name: "Procure to Pay",
		Activities: []string{
			"Create Purchase Order", "Change Purchase Order",
			"Post Goods Receipt", "Post Invoice Receipt", "Post Payment",
		},
		Edges: []Edge{
			{From: "Create Purchase Order", To: "Change Purchase Order", Type: EdgeChoice},
			{From: "Change Purchase Order", To: "Change Purchase Order", Type: EdgeChoice},
			{From: "Create Purchase Order", To: "Post Goods Receipt", Type: EdgeSequence},
			{From: "Change Purchase Order", To: "Post Goods Receipt", Type: EdgeSequence},
			{From: "Create Purchase Order", To: "Post Invoice Receipt", Type: EdgeChoice},
			{From: "Post Goods Receipt", To: "Post Invoice Receipt", Type: EdgeSequence},
			{From: "Post Invoice Receipt", To: "Post Payment", Type: EdgeSequence},
		},
		Start: []string{"Create Purchase Order"},
		End:   []string{"Post Invoice Receipt", "Post Payment"},
		SLAs: map[Transition]SLATarget{
			{From: "Create Purchase Order", To: "Post Goods Receipt"}: {Target: 7, Unit: "days", Severity: "medium"},
			{From: "Post Goods Receipt", To: "Post Invoice Receipt"}:  {Target: 5, Unit: "days", Severity: "medium"},
			{From: "Post Invoice Receipt", To: "Post Payment"}:        {Target: 30, Unit: "days", Severity: "low"},
		},
		CriticalPath: []string{
			"Create Purchase Order", "Post Goods Receipt",
			"Post Invoice Receipt", "Post Payment",
		},
	},
	"R2R": {
		ID:   "R2R",
		Name: "Record to Report",
		Activities: []string{
			"Post Journal Entry", "Clear Open Items", "Run Period Close",
			"Reconcile Accounts",
		},
		Edges: []Edge{
			{From: "Post Journal Entry", To: "Post Journal Entry", Type: EdgeChoice},
			{From: "Post Journal Entry", To: "Clear Open Items", Type: EdgeSequence},
			{From: "Clear Open Items", To: "Run Period Close", Type: EdgeSequence},
			{From: "Post Journal Entry", To: "Run Period Close", Type: EdgeChoice},
			{From: "Run Period Close", To: "Reconcile Accounts", Type: EdgeSequence},
		},
		Start: []string{"Post Journal Entry"},
		End:   []string{"Clear Open Items", "Reconcile Accounts"},
		SLAs: map[Transition]SLATarget{
			{From: "Post Journal Entry", To: "Clear Open Items"}: {Target: 14, Unit: "days", Severity: "low"},
			{From: "Run Period Close", To: "Reconcile Accounts"}: {Target: 3, Unit: "days", Severity: "high"},
		},
		CriticalPath: []string{
			"Post Journal Entry", "Run Period Close", "Reconcile Accounts",
		},
	},
	"A2R": {
		ID:   "A2R",
		Name: "Acquire to Retire",
		Activities: []string{
			"Create Asset", "Post Acquisition", "Run Depreciation", "Retire Asset",
		},
		Edges: []Edge{
			{From: "Create Asset", To: "Post Acquisition", Type: EdgeSequence},
			{From: "Post Acquisition", To: "Run Depreciation", Type: EdgeSequence},
			{From: "Run Depreciation", To: "Run Depreciation", Type: EdgeChoice},
			{From: "Run Depreciation", To: "Retire Asset", Type: EdgeSequence},
		},
		Start: []string{"Create Asset"},
		End:   []string{"Retire Asset"},
		SLAs: map[Transition]SLATarget{
			{From: "Create Asset", To: "Post Acquisition"}: {Target: 5, Unit: "days", Severity: "medium"},
		},
		CriticalPath: []string{
			"Create Asset", "Post Acquisition", "Run Depreciation", "Retire Asset",
		},
	},
	"H2R": {
		ID:   "H2R",
		Name: "Hire to Retire",
		Activities: []string{
			"Hire Employee", "Maintain Master Data", "Run Payroll", "Terminate Employee",
		},
		Edges: []Edge{
			{From: "Hire Employee", To: "Maintain Master Data", Type: EdgeSequence},
			{From: "Maintain Master Data", To: "Maintain Master Data", Type: EdgeChoice},
			{From: "Maintain Master Data", To: "Run Payroll", Type: EdgeSequence},
			{From: "Run Payroll", To: "Run Payroll", Type: EdgeChoice},
			{From: "Run Payroll", To: "Terminate Employee", Type: EdgeSequence},
		},
		Start: []string{"Hire Employee"},
		End:   []string{"Terminate Employee"},
		SLAs: map[Transition]SLATarget{
			{From: "Hire Employee", To: "Maintain Master Data"}: {Target: 48, Unit: "hours", Severity: "high"},
		},
		CriticalPath: []string{
			"Hire Employee", "Maintain Master Data", "Run Payroll", "Terminate Employee",
		},
	},
	"P2M": {
		ID:   "P2M",
		Name: "Plan to Manufacture",
		Activities: []string{
			"Create Production Order", "Release Production Order",
			"Issue Components", "Confirm Operations", "Post Goods Receipt",
		},
		Edges: []Edge{
			{From: "Create Production Order", To: "Release Production Order", Type: EdgeSequence},
			{From: "Release Production Order", To: "Issue Components", Type: EdgeSequence},
			{From: "Issue Components", To: "Confirm Operations", Type: EdgeParallel},
			{From: "Confirm Operations", To: "Confirm Operations", Type: EdgeChoice},
			{From: "Confirm Operations", To: "Post Goods Receipt", Type: EdgeSequence},
		},
		Start: []string{"Create Production Order"},
		End:   []string{"Post Goods Receipt"},
		SLAs: map[Transition]SLATarget{
			{From: "Create Production Order", To: "Release Production Order"}: {Target: 24, Unit: "hours", Severity: "medium"},
		},
		CriticalPath: []string{
			"Create Production Order", "Release Production Order",
			"Issue Components", "Confirm Operations", "Post Goods Receipt",
		},
	},
	"M2S": {
		ID:   "M2S",
		Name: "Maintain to Settle",
		Activities: []string{
			"Create Notification", "Create Maintenance Order",
			"Execute Work", "Settle Order",
		},
		Edges: []Edge{
			{From: "Create Notification", To: "Create Maintenance Order", Type: EdgeSequence},
			{From: "Create Maintenance Order", To: "Execute Work", Type: EdgeSequence},
			{From: "Execute Work", To: "Execute Work", Type: EdgeChoice},
			{From: "Execute Work", To: "Settle Order", Type: EdgeSequence},
		},
		Start: []string{"Create Notification"},
		End:   []string{"Settle Order"},
		SLAs: map[Transition]SLATarget{
			{From: "Create Notification", To: "Create Maintenance Order"}: {Target: 24, Unit: "hours", Severity: "high"},
		},
		CriticalPath: []string{
			"Create Notification", "Create Maintenance Order", "Execute Work", "Settle Order",
		},
	},
}
