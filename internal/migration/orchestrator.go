package migration

import (
	"context"
	"fmt"
	"time"
)

// RunReport aggregates a full migration run over a set of objects.
type RunReport struct {
	Results   map[string]*Result
	Order     []string
	StartedAt time.Time
	Duration  time.Duration
}

// Loaded counts objects that finished load (or validate, in dry-run).
func (r *RunReport) Loaded() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == StatusLoaded || res.Status == StatusValidated {
			n++
		}
	}
	return n
}

// RunAll executes the objects respecting the dependency DAG: an object
// starts only after every predecessor reports load done (validate done
// in dry-run). Objects whose predecessors failed are marked blocked.
func (p *Pipeline) RunAll(ctx context.Context, objects []*Object) (*RunReport, error) {
	byID := make(map[string]*Object, len(objects))
	for _, obj := range objects {
		if obj.ID == "" {
			return nil, fmt.Errorf("migration object with empty identifier")
		}
		if _, dup := byID[obj.ID]; dup {
			return nil, fmt.Errorf("duplicate migration object %q", obj.ID)
		}
		byID[obj.ID] = obj
	}
	for _, obj := range objects {
		for _, dep := range obj.DependsOn {
			if _, ok := byID[dep]; !ok {
				return nil, fmt.Errorf("object %s depends on unknown object %q", obj.ID, dep)
			}
		}
	}

	report := &RunReport{
		Results:   make(map[string]*Result, len(objects)),
		StartedAt: time.Now(),
	}
	doneStatus := func(s string) bool {
		return s == StatusLoaded || (p.DryRun && s == StatusValidated)
	}

	pending := make([]*Object, len(objects))
	copy(pending, objects)
	for len(pending) > 0 {
		progressed := false
		var next []*Object
		for _, obj := range pending {
			ready, blocked := true, false
			for _, dep := range obj.DependsOn {
				res, finished := report.Results[dep]
				if !finished {
					ready = false
					break
				}
				if !doneStatus(res.Status) {
					blocked = true
				}
			}
			if !ready {
				next = append(next, obj)
				continue
			}
			progressed = true
			report.Order = append(report.Order, obj.ID)
			if blocked {
				report.Results[obj.ID] = &Result{
					ObjectID: obj.ID,
					Entity:   obj.Entity,
					Status:   StatusBlocked,
					Phases:   map[string]PhaseResult{},
				}
				continue
			}
			report.Results[obj.ID] = p.Run(ctx, obj)
		}
		if !progressed {
			names := make([]string, 0, len(next))
			for _, obj := range next {
				names = append(names, obj.ID)
			}
			return nil, fmt.Errorf("dependency cycle among migration objects %v", names)
		}
		pending = next
	}
	report.Duration = time.Since(report.StartedAt)
	return report, nil
}
