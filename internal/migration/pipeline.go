package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/erplens/erplens/internal/canonical"
	"github.com/erplens/erplens/internal/gateway"
	"github.com/erplens/erplens/internal/target"
)

// Pipeline runs migration objects through Extract, Transform, Validate,
// and Load. DryRun skips the load phase for every object.
type Pipeline struct {
	Gateway gateway.Gateway
	Store   target.Store
	Logger  *slog.Logger
	DryRun  bool
}

// Run executes all four phases for one object. The returned result is
// always non-nil; Err is set alongside a terminal failure status.
func (p *Pipeline) Run(ctx context.Context, obj *Object) *Result {
	logger := p.logger().With("object", obj.ID)
	res := &Result{
		ObjectID: obj.ID,
		Entity:   obj.Entity,
		Status:   StatusPending,
		Phases:   make(map[string]PhaseResult),
	}

	for _, m := range obj.Mappings {
		if err := m.Validate(); err != nil {
			res.Status = StatusExtractFailed
			res.Err = fmt.Errorf("object %s: %w", obj.ID, err)
			return res
		}
	}

	sourceRows, err := p.extract(ctx, obj, res)
	if err != nil {
		logger.Error("extract failed", "error", err)
		res.Status = StatusExtractFailed
		res.Err = err
		return res
	}
	logger.Info("extracted source rows", "rows", res.ExtractCount)

	transformed := p.transform(obj, sourceRows, res, logger)

	start := time.Now()
	res.Failures = runChecks(obj.Checks, transformed)
	res.Phases["validate"] = PhaseResult{
		Count:    len(res.Failures),
		Duration: time.Since(start),
		Outcome:  "done",
	}
	if n := res.BlockingFailures(); n > 0 {
		logger.Warn("validation blocked load", "blocking", n, "warnings", res.Warnings())
		res.Status = StatusValidateFailed
		res.Phases["load"] = PhaseResult{Outcome: "skipped"}
		return res
	}

	if p.DryRun {
		res.Status = StatusValidated
		res.Phases["load"] = PhaseResult{Outcome: "skipped"}
		return res
	}

	if err := p.load(ctx, obj, transformed, res); err != nil {
		logger.Error("load failed", "error", err)
		res.Status = StatusLoadFailed
		res.Err = err
		return res
	}
	logger.Info("loaded rows", "rows", res.LoadCount, "collection", obj.Collection)
	res.Status = StatusLoaded
	return res
}

func (p *Pipeline) extract(ctx context.Context, obj *Object, res *Result) ([]map[string]string, error) {
	start := time.Now()
	rs, err := p.Gateway.ReadTable(ctx, obj.SourceTable, gateway.ReadOptions{})
	if err != nil {
		res.Phases["extract"] = PhaseResult{Duration: time.Since(start), Outcome: "failed"}
		return nil, fmt.Errorf("extracting %s: %w", obj.SourceTable, err)
	}
	rows := make([]map[string]string, 0, len(rs.Rows))
	for _, raw := range rs.Rows {
		row := make(map[string]string, len(raw))
		for col, v := range raw {
			if v == nil {
				continue
			}
			if s, ok := v.(string); ok {
				row[col] = s
			} else {
				row[col] = fmt.Sprintf("%v", v)
			}
		}
		rows = append(rows, row)
	}
	res.ExtractCount = len(rows)
	res.Phases["extract"] = PhaseResult{Count: len(rows), Duration: time.Since(start), Outcome: "done"}
	return rows, nil
}

// transform applies the ordered field mappings to every source row. The
// output rows are keyed by canonical target field path. A failing
// conversion leaves the mapping's default and is logged, never fatal:
// validation decides what blocks.
func (p *Pipeline) transform(obj *Object, sourceRows []map[string]string, res *Result, logger *slog.Logger) []map[string]string {
	start := time.Now()
	out := make([]map[string]string, 0, len(sourceRows))
	for i, src := range sourceRows {
		row := make(map[string]string, len(obj.Mappings))
		for _, m := range obj.Mappings {
			value, err := m.Apply(src)
			if err != nil {
				logger.Warn("conversion failed", "row", i, "target", m.TargetField, "error", err)
				value = m.Default
			}
			row[m.TargetField] = value
		}
		out = append(out, row)
	}
	res.TransformCount = len(out)
	res.Phases["transform"] = PhaseResult{Count: len(out), Duration: time.Since(start), Outcome: "done"}
	return out
}

func (p *Pipeline) load(ctx context.Context, obj *Object, rows []map[string]string, res *Result) error {
	start := time.Now()
	if err := p.Store.EnsureCollections(ctx, []string{obj.Collection}); err != nil {
		res.Phases["load"] = PhaseResult{Duration: time.Since(start), Outcome: "failed"}
		return err
	}
	n, err := p.Store.InsertRows(ctx, obj.Collection, rows)
	if err != nil {
		res.Phases["load"] = PhaseResult{Duration: time.Since(start), Outcome: "failed"}
		return err
	}
	res.LoadCount = n
	res.Phases["load"] = PhaseResult{Count: n, Duration: time.Since(start), Outcome: "done"}

	res.Reconciliation = p.reconcile(ctx, obj, res.LoadCount)
	return nil
}

// reconcile checks the staging store's view of the collection against
// what the pipeline believes it loaded.
func (p *Pipeline) reconcile(ctx context.Context, obj *Object, loaded int) *Reconciliation {
	rec := &Reconciliation{LoadedCount: loaded}
	count, err := p.Store.CountDocuments(ctx, obj.Collection)
	if err != nil {
		p.logger().Warn("reconciliation count failed", "object", obj.ID, "error", err)
		return rec
	}
	rec.StoreCount = count
	rec.CountsMatch = count == int64(loaded)
	if id := canonical.IdentifierField(obj.Entity); id != "" {
		if distinct, err := p.Store.DistinctCount(ctx, obj.Collection, id); err == nil {
			rec.DistinctIDs = distinct
		}
	}
	return rec
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
