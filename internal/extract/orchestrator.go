package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/erplens/erplens/internal/coverage"
)

// Progress is a periodic snapshot of a running extraction.
type Progress struct {
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
	Current   []string  `json:"current"`
	StartedAt time.Time `json:"started_at"`
}

// ProgressFunc receives progress snapshots. It must not block.
type ProgressFunc func(Progress)

// RunOutput collects what a run produced, including partial results after
// cancellation or per-extractor failure.
type RunOutput struct {
	Results   map[string]*Result
	Order     []string
	Failed    []string
	Cancelled bool
	StartedAt time.Time
	Duration  time.Duration
}

// Orchestrator drives the registry: dependency-respecting scheduling up
// to a concurrency budget, with cancellation observed at chunk
// boundaries. Retry policy lives in the gateway, never here.
type Orchestrator struct {
	Registry    *Registry
	Concurrency int
	Logger      *slog.Logger
	OnProgress  ProgressFunc
}

// Run executes every extractor selected by the filter. Extractor failures
// are isolated; only fatal contract violations abort the run.
func (o *Orchestrator) Run(ctx context.Context, ec *Context, filter Filter) (*RunOutput, error) {
	o.Registry.Seal()
	selected := o.Registry.Select(filter)

	logger := o.Logger
	if logger == nil {
		logger = ec.Logger()
	}
	budget := o.Concurrency
	if budget < 1 {
		budget = runtime.NumCPU()
		if budget < 1 {
			budget = 1
		}
	}

	out := &RunOutput{
		Results:   make(map[string]*Result, len(selected)),
		StartedAt: time.Now(),
	}
	if len(selected) == 0 {
		return out, nil
	}

	selectedSet := make(map[string]bool, len(selected))
	for _, x := range selected {
		selectedSet[x.Identity().ID] = true
	}

	type completion struct {
		id     string
		result *Result
		err    error
	}
	completions := make(chan completion)

	var (
		pending   = append([]Extractor(nil), selected...)
		done      = make(map[string]bool, len(selected))
		succeeded = make(map[string]bool, len(selected))
		running   = make(map[string]bool, budget)
		fatal     error
		wg        sync.WaitGroup
	)

	// A dependency gates its dependents until it completes without
	// error; a failed dependency leaves them unstartable.
	ready := func(x Extractor) bool {
		dep, ok := x.(Dependent)
		if !ok {
			return true
		}
		for _, d := range dep.DependsOn() {
			// Dependencies outside the selection cannot gate the run.
			if selectedSet[d] && !succeeded[d] {
				return false
			}
		}
		return true
	}

	start := func(x Extractor) {
		id := x.Identity().ID
		running[id] = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("extractor started", "id", id)
			res, err := x.Extract(ctx, ec)
			completions <- completion{id: id, result: res, err: err}
		}()
	}

	report := func() {
		if o.OnProgress == nil {
			return
		}
		current := make([]string, 0, len(running))
		for _, x := range selected {
			if running[x.Identity().ID] {
				current = append(current, x.Identity().ID)
			}
		}
		o.OnProgress(Progress{
			Completed: len(done),
			Total:     len(selected),
			Current:   current,
			StartedAt: out.StartedAt,
		})
	}

	schedule := func() {
		if out.Cancelled || fatal != nil {
			return
		}
		for len(running) < budget {
			idx := -1
			for i, x := range pending {
				if ready(x) {
					idx = i
					break
				}
			}
			if idx < 0 {
				return
			}
			x := pending[idx]
			pending = append(pending[:idx], pending[idx+1:]...)
			start(x)
		}
	}

	schedule()
	report()

	cancelCh := ctx.Done()
	for len(running) > 0 {
		select {
		case <-cancelCh:
			// Single-shot: stop scheduling, drain in-flight extractors.
			out.Cancelled = true
			cancelCh = nil
			logger.Info("extraction cancelled, draining in-flight extractors")
		case c := <-completions:
			delete(running, c.id)
			done[c.id] = true
			switch {
			case c.err != nil && errors.Is(c.err, ErrFatal):
				fatal = c.err
			case c.err != nil:
				logger.Error("extractor failed", "id", c.id, "error", c.err)
				out.Failed = append(out.Failed, c.id)
			default:
				succeeded[c.id] = true
				out.Results[c.id] = c.result
				out.Order = append(out.Order, c.id)
			}
			schedule()
			report()
		}
	}
	wg.Wait()

	// Never-started extractors record their expected tables as skipped:
	// either the run was cancelled or their dependencies never completed.
	for _, x := range pending {
		id := x.Identity()
		reason := "cancelled"
		if !out.Cancelled {
			reason = "unsatisfied dependency"
			out.Failed = append(out.Failed, id.ID)
		}
		ec.Coverage().RegisterModule(id.ID, id.Module)
		for _, t := range x.ExpectedTables() {
			ec.Coverage().Track(id.ID, t.Name, coverage.StatusSkipped, map[string]string{"reason": reason})
		}
	}

	out.Duration = time.Since(out.StartedAt)
	if fatal != nil {
		return out, fmt.Errorf("run aborted: %w", fatal)
	}
	return out, nil
}
