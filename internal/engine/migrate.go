package engine

import (
	"context"
	"fmt"

	"github.com/erplens/erplens/internal/cutover"
	"github.com/erplens/erplens/internal/indexes"
	"github.com/erplens/erplens/internal/migration"
	"github.com/erplens/erplens/internal/rollback"
	"github.com/erplens/erplens/internal/security"
	"github.com/erplens/erplens/internal/target"
)

// MigrationOptions tune one migration run.
type MigrationOptions struct {
	Family    string
	DryRun    bool
	User      string
	Approvers []string
}

// RunMigration executes the declared migration objects for the source
// family through the ETVL pipeline, in dependency order. Loading into
// staging is a gated operation; dry-run only validates.
func (e *Engine) RunMigration(ctx context.Context, opts MigrationOptions) (*migration.RunReport, error) {
	family := opts.Family
	if family == "" {
		family = e.Config.Source.Family
	}
	objects := migration.DefaultObjects(family)
	if objects == nil {
		return nil, fmt.Errorf("no migration objects declared for source family %q", family)
	}

	operation := "migration-load-staging"
	if opts.DryRun {
		operation = "migration-validate"
	}
	if err := security.Authorize(operation, opts.User, opts.Approvers); err != nil {
		e.Audit.Record(operation, opts.User, fmt.Sprintf("family %s", family), "denied")
		e.saveAudit()
		return nil, err
	}

	gw, err := e.openGateway(ctx)
	if err != nil {
		return nil, err
	}
	defer gw.Close()

	store, closeStore, err := e.openStore(ctx, opts.DryRun)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	pipeline := &migration.Pipeline{
		Gateway: gw,
		Store:   store,
		Logger:  e.Logger,
		DryRun:  opts.DryRun,
	}

	e.Audit.Record(operation, opts.User, fmt.Sprintf("family %s, %d objects", family, len(objects)), "started")
	report, err := pipeline.RunAll(ctx, objects)
	if err != nil {
		e.Audit.Record(operation, opts.User, fmt.Sprintf("family %s", family), "fatal")
		e.saveAudit()
		return nil, err
	}
	e.mu.Lock()
	e.migrationReport = report
	e.mu.Unlock()

	if !opts.DryRun && report.Loaded() > 0 {
		plan := indexes.Infer(objects)
		if err := indexes.Apply(ctx, store, plan); err != nil {
			e.Logger.Warn("creating staging indexes failed", "error", err)
		} else {
			e.Logger.Info("staging indexes ensured", "indexes", len(plan.Indexes))
		}
	}

	result := "completed"
	if report.Loaded() < len(objects) {
		result = "partial"
	}
	e.Audit.Record(operation, opts.User,
		fmt.Sprintf("family %s, %d/%d objects done", family, report.Loaded(), len(objects)), result)
	e.saveAudit()
	return report, nil
}

// RollbackStaging drops the loaded staging collections for a family.
// The operation is staging tier and needs an approver.
func (e *Engine) RollbackStaging(ctx context.Context, opts MigrationOptions) (*rollback.Result, error) {
	family := opts.Family
	if family == "" {
		family = e.Config.Source.Family
	}

	const operation = "staging-rollback"
	if err := security.Authorize(operation, opts.User, opts.Approvers); err != nil {
		e.Audit.Record(operation, opts.User, fmt.Sprintf("family %s", family), "denied")
		e.saveAudit()
		return nil, err
	}

	store, closeStore, err := e.openStore(ctx, false)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	result, err := rollback.New(store).Execute(ctx, rollback.Options{Family: family})
	if err != nil {
		e.Audit.Record(operation, opts.User, fmt.Sprintf("family %s", family), "fatal")
		e.saveAudit()
		return nil, err
	}

	outcome := "completed"
	if len(result.Errors) > 0 {
		outcome = "partial"
	}
	e.Audit.Record(operation, opts.User,
		fmt.Sprintf("family %s, %d collection(s) dropped", family, len(result.DroppedCollections)), outcome)
	e.saveAudit()
	return result, nil
}

// openStore picks the staging store: in-memory for dry runs and for
// configurations without a staging database.
func (e *Engine) openStore(ctx context.Context, dryRun bool) (target.Store, func(), error) {
	if dryRun || e.Config.Staging.ConnectionString == "" {
		return target.NewMockStore(), func() {}, nil
	}
	store, err := target.NewMongoStore(ctx, e.Config.Staging.ConnectionString, e.Config.Staging.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("opening staging store: %w", err)
	}
	return store, func() { _ = store.Close(ctx) }, nil
}

// BuildCutoverPlan assembles the go-live plan from the last migration
// run's completed object results.
func (e *Engine) BuildCutoverPlan(project, user string) (*cutover.Plan, error) {
	e.mu.Lock()
	report := e.migrationReport
	e.mu.Unlock()

	var results []cutover.ObjectResult
	if report != nil {
		for _, id := range report.Order {
			res := report.Results[id]
			if res == nil || (res.Status != migration.StatusLoaded && res.Status != migration.StatusValidated) {
				continue
			}
			results = append(results, cutover.ObjectResult{
				ObjectID:  res.ObjectID,
				Entity:    string(res.Entity),
				LoadCount: res.LoadCount,
			})
		}
	}
	plan := cutover.BuildPlan(project, results)
	e.Audit.Record("cutover-planning", user,
		fmt.Sprintf("project %s, %d tasks", project, len(plan.Tasks)), "completed")
	e.saveAudit()
	return plan, nil
}
