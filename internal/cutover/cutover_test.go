package cutover

import (
	"fmt"
	"testing"
)

func sampleResults(n int) []ObjectResult {
	out := make([]ObjectResult, n)
	for i := range out {
		out[i] = ObjectResult{
			ObjectID:  fmt.Sprintf("sap-ecc.entity%d", i),
			Entity:    fmt.Sprintf("Entity%d", i),
			LoadCount: 100 + i,
		}
	}
	return out
}

func TestBuildPlanBaseTasks(t *testing.T) {
	plan := BuildPlan("erp-migration", nil)

	if plan.Project != "erp-migration" {
		t.Errorf("project = %q", plan.Project)
	}
	if len(plan.Tasks) != 20 {
		t.Fatalf("got %d tasks, want 20 base tasks", len(plan.Tasks))
	}
	wantPhases := map[string]int{
		PhasePrep:     5,
		PhaseMigrate:  4,
		PhaseValidate: 3,
		PhaseTest:     4,
		PhaseGolive:   4,
	}
	for phase, want := range wantPhases {
		if got := plan.Summary.PhaseCounts[phase]; got != want {
			t.Errorf("phase %s count = %d, want %d", phase, got, want)
		}
	}

	// Every dependency must name a task in the plan.
	ids := make(map[string]bool, len(plan.Tasks))
	for _, task := range plan.Tasks {
		ids[task.ID] = true
	}
	for _, task := range plan.Tasks {
		for _, dep := range task.Dependencies {
			if !ids[dep] {
				t.Errorf("task %s depends on unknown task %q", task.ID, dep)
			}
		}
	}
}

func TestBuildPlanAppendsVerificationTasks(t *testing.T) {
	plan := BuildPlan("proj", sampleResults(3))
	if len(plan.Tasks) != 23 {
		t.Fatalf("got %d tasks, want 20 base + 3 verification", len(plan.Tasks))
	}
	verify := plan.Tasks[20]
	if verify.ID != "verify-sap-ecc.entity0" {
		t.Errorf("verification task id = %q", verify.ID)
	}
	if verify.Phase != PhaseValidate || verify.Priority != "high" || verify.DurationHours != 1 {
		t.Errorf("verification task shape wrong: %+v", verify)
	}
	if len(verify.Dependencies) != 1 || verify.Dependencies[0] != "validate-reconcile" {
		t.Errorf("verification deps = %v, want [validate-reconcile]", verify.Dependencies)
	}
	if verify.Name != "Verify Entity0 counts and spot-check records (100 loaded)" {
		t.Errorf("verification name = %q", verify.Name)
	}
}

func TestBuildPlanCapsVerificationTasks(t *testing.T) {
	plan := BuildPlan("proj", sampleResults(25))
	if len(plan.Tasks) != 20+maxVerificationTasks {
		t.Fatalf("got %d tasks, want cap at %d verification tasks", len(plan.Tasks), maxVerificationTasks)
	}
}

func TestCriticalPath(t *testing.T) {
	plan := BuildPlan("proj", sampleResults(2))
	s := plan.Summary

	if len(s.CriticalPath) == 0 {
		t.Fatal("critical path empty")
	}
	if s.CriticalPathHours <= 0 || s.CriticalPathHours > s.TotalDurationHours {
		t.Errorf("critical path hours = %v, total = %v", s.CriticalPathHours, s.TotalDurationHours)
	}
	if s.CriticalPath[0] != "prep-freeze-announce" {
		t.Errorf("critical path starts at %q, want prep-freeze-announce", s.CriticalPath[0])
	}
	last := s.CriticalPath[len(s.CriticalPath)-1]
	if last != "golive-start-interfaces" {
		t.Errorf("critical path ends at %q, want golive-start-interfaces", last)
	}

	// The path follows declared dependencies edge by edge.
	byID := make(map[string]Task, len(plan.Tasks))
	for _, task := range plan.Tasks {
		byID[task.ID] = task
	}
	for i := 1; i < len(s.CriticalPath); i++ {
		task := byID[s.CriticalPath[i]]
		found := false
		for _, dep := range task.Dependencies {
			if dep == s.CriticalPath[i-1] {
				found = true
			}
		}
		if !found {
			t.Errorf("critical path step %s does not depend on %s", s.CriticalPath[i], s.CriticalPath[i-1])
		}
	}
}

func TestChecklistAndRollbackPlan(t *testing.T) {
	plan := BuildPlan("proj", nil)

	if len(plan.Checklist) != 15 {
		t.Fatalf("got %d checklist items, want 15", len(plan.Checklist))
	}
	mandatory := 0
	for _, item := range plan.Checklist {
		if item.ID == "" || item.Category == "" || item.Description == "" {
			t.Errorf("incomplete checklist item: %+v", item)
		}
		if item.Status != "pending" {
			t.Errorf("checklist item %s status = %q, want pending", item.ID, item.Status)
		}
		if item.Mandatory {
			mandatory++
		}
	}
	if mandatory != 13 {
		t.Errorf("mandatory checklist items = %d, want 13", mandatory)
	}

	rb := plan.Rollback
	if len(rb.Steps) != 8 {
		t.Fatalf("got %d rollback steps, want 8", len(rb.Steps))
	}
	total := 0
	for i, step := range rb.Steps {
		if step.Number != i+1 {
			t.Errorf("step %d numbered %d", i, step.Number)
		}
		total += step.DurationMinutes
	}
	if rb.TotalMinutes != total {
		t.Errorf("TotalMinutes = %d, want summed %d", rb.TotalMinutes, total)
	}
	if rb.DecisionWindowHours != 4 {
		t.Errorf("DecisionWindowHours = %v, want 4", rb.DecisionWindowHours)
	}
	if len(rb.TriggerCriteria) == 0 {
		t.Error("rollback plan has no trigger criteria")
	}
}
