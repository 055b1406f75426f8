// Package cutover builds the go-live plan: phased task list with
// critical path, readiness checklist, and rollback plan.
package cutover

import (
	"fmt"
	"math"
	"time"
)

// Phases, in execution order.
const (
	PhasePrep     = "prep"
	PhaseMigrate  = "migrate"
	PhaseValidate = "validate"
	PhaseTest     = "test"
	PhaseGolive   = "golive"
)

// maxVerificationTasks caps per-object verification tasks appended to
// the base plan.
const maxVerificationTasks = 10

// Task is one planned cutover activity.
type Task struct {
	ID            string   `json:"id" yaml:"id"`
	Phase         string   `json:"phase" yaml:"phase"`
	Name          string   `json:"name" yaml:"name"`
	DurationHours float64  `json:"duration_hours" yaml:"duration_hours"`
	Dependencies  []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Priority      string   `json:"priority" yaml:"priority"`
	Status        string   `json:"status" yaml:"status"`
}

// ObjectResult is the slice of a completed migration-object result the
// planner needs.
type ObjectResult struct {
	ObjectID  string
	Entity    string
	LoadCount int
}

// Summary aggregates the plan.
type Summary struct {
	TotalDurationHours float64            `json:"total_duration_hours" yaml:"total_duration_hours"`
	CriticalPathHours  float64            `json:"critical_path_hours" yaml:"critical_path_hours"`
	CriticalPath       []string           `json:"critical_path" yaml:"critical_path"`
	PhaseCounts        map[string]int     `json:"phase_counts" yaml:"phase_counts"`
	PhaseHours         map[string]float64 `json:"phase_hours" yaml:"phase_hours"`
}

// ChecklistItem is one readiness checklist entry.
type ChecklistItem struct {
	ID          string `json:"id" yaml:"id"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
	Mandatory   bool   `json:"mandatory" yaml:"mandatory"`
	Status      string `json:"status" yaml:"status"`
}

// RollbackStep is one numbered step of the rollback plan.
type RollbackStep struct {
	Number          int    `json:"number" yaml:"number"`
	Name            string `json:"name" yaml:"name"`
	DurationMinutes int    `json:"duration_minutes" yaml:"duration_minutes"`
}

// RollbackPlan is the fixed fallback procedure.
type RollbackPlan struct {
	TriggerCriteria     []string       `json:"trigger_criteria" yaml:"trigger_criteria"`
	Steps               []RollbackStep `json:"steps" yaml:"steps"`
	TotalMinutes        int            `json:"total_minutes" yaml:"total_minutes"`
	DecisionWindowHours float64        `json:"decision_window_hours" yaml:"decision_window_hours"`
}

// Plan is the full cutover plan for a project.
type Plan struct {
	Project     string          `json:"project" yaml:"project"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Tasks       []Task          `json:"tasks" yaml:"tasks"`
	Summary     Summary         `json:"summary" yaml:"summary"`
	Checklist   []ChecklistItem `json:"checklist" yaml:"checklist"`
	Rollback    RollbackPlan    `json:"rollback" yaml:"rollback"`
}

// BuildPlan assembles the base task list, appends one verification task
// per completed object result (capped), and computes the critical path.
func BuildPlan(project string, results []ObjectResult) *Plan {
	tasks := baseTasks()

	verifyDep := "validate-reconcile"
	for i, res := range results {
		if i == maxVerificationTasks {
			break
		}
		tasks = append(tasks, Task{
			ID:            fmt.Sprintf("verify-%s", res.ObjectID),
			Phase:         PhaseValidate,
			Name:          fmt.Sprintf("Verify %s counts and spot-check records (%d loaded)", res.Entity, res.LoadCount),
			DurationHours: 1,
			Dependencies:  []string{verifyDep},
			Priority:      "high",
			Status:        "planned",
		})
	}

	plan := &Plan{
		Project:     project,
		GeneratedAt: time.Now().UTC(),
		Tasks:       tasks,
		Checklist:   checklist(),
		Rollback:    rollbackPlan(),
	}
	plan.Summary = summarize(tasks)
	return plan
}

func summarize(tasks []Task) Summary {
	s := Summary{
		PhaseCounts: make(map[string]int),
		PhaseHours:  make(map[string]float64),
	}
	byID := make(map[string]*Task, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		byID[t.ID] = t
		s.TotalDurationHours += t.DurationHours
		s.PhaseCounts[t.Phase]++
		s.PhaseHours[t.Phase] = round1(s.PhaseHours[t.Phase] + t.DurationHours)
	}
	s.TotalDurationHours = round1(s.TotalDurationHours)

	// Memoized longest-duration path ending at each task.
	type memoEntry struct {
		hours float64
		path  []string
	}
	memo := make(map[string]memoEntry, len(tasks))
	var longest func(id string) memoEntry
	longest = func(id string) memoEntry {
		if e, ok := memo[id]; ok {
			return e
		}
		t := byID[id]
		best := memoEntry{}
		for _, dep := range t.Dependencies {
			if _, known := byID[dep]; !known {
				continue
			}
			if e := longest(dep); e.hours > best.hours {
				best = e
			}
		}
		e := memoEntry{
			hours: best.hours + t.DurationHours,
			path:  append(append([]string{}, best.path...), id),
		}
		memo[id] = e
		return e
	}
	var critical memoEntry
	for _, t := range tasks {
		if e := longest(t.ID); e.hours > critical.hours {
			critical = e
		}
	}
	s.CriticalPathHours = round1(critical.hours)
	s.CriticalPath = critical.path
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
