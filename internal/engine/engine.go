// Package engine is the composition root shared by all command surfaces:
// it wires the gateway, registry, orchestrator, rule engines, miner,
// migration pipeline, and planner behind one facade.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/erplens/erplens/internal/checkpoint"
	"github.com/erplens/erplens/internal/config"
	"github.com/erplens/erplens/internal/coverage"
	"github.com/erplens/erplens/internal/dict"
	"github.com/erplens/erplens/internal/export"
	"github.com/erplens/erplens/internal/extract"
	"github.com/erplens/erplens/internal/extractors"
	"github.com/erplens/erplens/internal/gateway"
	"github.com/erplens/erplens/internal/migration"
	"github.com/erplens/erplens/internal/mining"
	"github.com/erplens/erplens/internal/rules"
	"github.com/erplens/erplens/internal/security"
)

// Extractor IDs the miner consumes.
const (
	changeDocExtractor = "transaction.change-documents"
	usageExtractor     = "transaction.usage-statistics"
)

// Engine is the core analyzer engine shared by all interfaces.
type Engine struct {
	Config *config.Config
	Logger *slog.Logger
	Audit  *security.Logger

	// Runtime state for the in-flight run
	mu       sync.Mutex
	cancel   context.CancelFunc
	running  bool
	progress extract.Progress

	runID    string
	runDir   string
	output   *extract.RunOutput
	tracker  *coverage.Tracker
	findings []rules.Finding
	simps    []rules.SimplificationFinding
	catalog  *mining.Catalog

	migrationReport *migration.RunReport
}

// New creates a new Engine with the given config and logger.
func New(cfg *config.Config, logger *slog.Logger) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	audit := security.NewLogger(cfg.Audit.Retention)
	if chain, err := security.LoadChain(config.ExpandHome(cfg.Audit.Path)); err == nil {
		if err := audit.Seed(chain); err != nil {
			logger.Warn("audit chain rejected, starting fresh", "path", cfg.Audit.Path, "error", err)
		}
	}
	return &Engine{
		Config: cfg,
		Logger: logger,
		Audit:  audit,
	}
}

// saveAudit writes the chained audit store back to its configured file.
func (e *Engine) saveAudit() {
	path := config.ExpandHome(e.Config.Audit.Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.Logger.Warn("creating audit directory failed", "error", err)
		return
	}
	if err := e.Audit.Export(path); err != nil {
		e.Logger.Warn("persisting audit chain failed", "error", err)
	}
}

// ExtractionOptions filter and tune one extraction run.
type ExtractionOptions struct {
	Module      string
	Category    string
	IDs         []string
	Concurrency int
	User        string
}

// RunExtraction executes a full extraction run synchronously: gateway,
// registry, orchestrator, then interpretation, simplification scan, and
// process mining over the results. The run persists under the run
// directory so later invocations can read it back.
func (e *Engine) RunExtraction(ctx context.Context, opts ExtractionOptions) (*RunSummary, error) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil, fmt.Errorf("an extraction run is already in progress")
	}
	runID := uuid.NewString()
	runDir := filepath.Join(config.ExpandHome(e.Config.Extraction.RunDir), runID)
	runCtx, cancel := context.WithCancel(ctx)
	e.running = true
	e.cancel = cancel
	e.runID = runID
	e.runDir = runDir
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.cancel = nil
		e.mu.Unlock()
		cancel()
	}()

	gw, err := e.openGateway(runCtx)
	if err != nil {
		return nil, err
	}
	defer gw.Close()

	cp, err := checkpoint.NewStore(filepath.Join(runDir, "checkpoints"))
	if err != nil {
		return nil, fmt.Errorf("opening checkpoint store: %w", err)
	}

	tracker := coverage.NewTracker()
	sys := extract.SystemDescriptor{
		Family:     e.Config.Source.Family,
		Release:    e.Config.Source.Release,
		Client:     e.Config.Source.Client,
		FiscalFrom: e.Config.Source.FiscalFrom,
		FiscalTo:   e.Config.Source.FiscalTo,
	}
	ec := extract.NewContext(gw, cp, tracker, dict.Default(), sys, e.Logger)

	registry := extract.NewRegistry(e.Logger)
	if err := extractors.RegisterAll(registry); err != nil {
		return nil, fmt.Errorf("registering extractors: %w", err)
	}

	orch := &extract.Orchestrator{
		Registry:    registry,
		Concurrency: e.effectiveConcurrency(opts.Concurrency),
		Logger:      e.Logger,
		OnProgress: func(p extract.Progress) {
			e.mu.Lock()
			e.progress = p
			e.mu.Unlock()
		},
	}

	e.Audit.Record("extraction-run", opts.User, fmt.Sprintf("run %s started (%s mode)", runID, e.Config.Source.Mode), "started")

	out, err := orch.Run(runCtx, ec, extract.Filter{
		Module:   opts.Module,
		Category: opts.Category,
		IDs:      opts.IDs,
	})
	if err != nil {
		e.Audit.Record("extraction-run", opts.User, fmt.Sprintf("run %s aborted", runID), "fatal")
		e.saveAudit()
		return nil, err
	}

	e.mu.Lock()
	e.output = out
	e.tracker = tracker
	e.mu.Unlock()

	e.interpret(out)
	e.mine(out)

	result := "completed"
	switch {
	case out.Cancelled:
		result = "cancelled"
	case len(out.Failed) > 0:
		result = "partial"
	}
	e.Audit.Record("extraction-run", opts.User, fmt.Sprintf("run %s finished", runID), result)
	e.saveAudit()

	summary := e.buildSummary()
	if err := e.persistRun(summary); err != nil {
		e.Logger.Warn("persisting run failed", "run", runID, "error", err)
	}
	return summary, nil
}

// interpret runs both rule families over the flattened results. Rule
// errors never fail the run.
func (e *Engine) interpret(out *extract.RunOutput) {
	data := rules.Flatten(out.Results, out.Order)
	findings := rules.NewInterpreter(e.Logger).Evaluate(data)
	simps := rules.NewScanner().Scan(data)
	e.mu.Lock()
	e.findings = findings
	e.simps = simps
	e.mu.Unlock()
}

// mine builds the process catalog from the change-document and usage
// slices, when both extractors produced results.
func (e *Engine) mine(out *extract.RunOutput) {
	headers := mining.HeadersFromResult(out.Results[changeDocExtractor])
	items := mining.ItemsFromResult(out.Results[changeDocExtractor])
	usage := mining.UsageFromResult(out.Results[usageExtractor])
	if len(headers) == 0 {
		return
	}
	catalog, err := (&mining.Engine{}).Analyze(headers, items, usage)
	if err != nil {
		e.Logger.Error("process mining failed", "error", err)
		return
	}
	e.mu.Lock()
	e.catalog = catalog
	e.mu.Unlock()
}

// Cancel requests cancellation of the in-flight run. It is observed at
// the next chunk boundary.
func (e *Engine) Cancel() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel == nil {
		return false
	}
	e.cancel()
	return true
}

// Progress returns the latest snapshot and whether a run is in flight.
func (e *Engine) Progress() (extract.Progress, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress, e.running
}

// Results returns the run's result map, optionally filtered by
// extractor identifier.
func (e *Engine) Results(ids []string) map[string]*extract.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.output == nil {
		return nil
	}
	if len(ids) == 0 {
		return e.output.Results
	}
	filtered := make(map[string]*extract.Result)
	for _, id := range ids {
		if res, ok := e.output.Results[id]; ok {
			filtered[id] = res
		}
	}
	return filtered
}

// Coverage returns the system coverage report for the last run.
func (e *Engine) Coverage() (coverage.SystemReport, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tracker == nil {
		return coverage.SystemReport{}, false
	}
	return e.tracker.SystemReport(), true
}

// Gaps returns the deterministic coverage gap listing.
func (e *Engine) Gaps() []coverage.Gap {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tracker == nil {
		return nil
	}
	return e.tracker.Gaps()
}

// Interpretations returns the configuration findings of the last run.
func (e *Engine) Interpretations() []rules.Finding {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.findings
}

// Simplifications returns the simplification findings of the last run.
func (e *Engine) Simplifications() []rules.SimplificationFinding {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.simps
}

// ProcessCatalog returns the mined process catalog of the last run.
func (e *Engine) ProcessCatalog() *mining.Catalog {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog
}

// Export renders the last run in the requested format.
func (e *Engine) Export(format, user string) (*export.Output, error) {
	e.mu.Lock()
	output := e.output
	tracker := e.tracker
	runID := e.runID
	findings := e.findings
	simps := e.simps
	catalog := e.catalog
	e.mu.Unlock()

	if output == nil {
		return nil, fmt.Errorf("no completed run to export")
	}
	var cov *coverage.SystemReport
	if tracker != nil {
		sr := tracker.SystemReport()
		cov = &sr
	}
	doc := export.BuildDocument(runID, output.Results, cov, findings, simps, catalog)
	out, err := export.Render(format, doc)
	if err != nil {
		return nil, err
	}
	e.Audit.Record("export", user, fmt.Sprintf("run %s exported as %s", runID, format), "completed")
	return out, nil
}

func (e *Engine) openGateway(ctx context.Context) (gateway.Gateway, error) {
	if e.Config.Source.Mode == "live" {
		gw := gateway.NewPostgresGateway(e.Config.Source.DSN, e.Config.Source.Schema)
		if err := gw.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connecting to source snapshot: %w", err)
		}
		return gw, nil
	}
	return gateway.NewMockGateway(), nil
}

func (e *Engine) effectiveConcurrency(flag int) int {
	if flag > 0 {
		return flag
	}
	return e.Config.Extraction.Concurrency
}
