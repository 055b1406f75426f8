package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/erplens/erplens/internal/checkpoint"
	"github.com/erplens/erplens/internal/coverage"
	"github.com/erplens/erplens/internal/gateway"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testContext(t *testing.T) *Context {
	t.Helper()
	cp, err := checkpoint.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	sys := SystemDescriptor{Family: "sap-ecc", Release: "6.0 EHP8", Client: "100"}
	return NewContext(gateway.NewMockGateway(), cp, coverage.NewTracker(), nil, sys, testLogger())
}

// fakeExtractor is a scriptable extractor for scheduling tests.
type fakeExtractor struct {
	identity Identity
	deps     []string
	err      error
	started  *[]string
	mu       *sync.Mutex
}

func (f *fakeExtractor) Identity() Identity { return f.identity }

func (f *fakeExtractor) ExpectedTables() []ExpectedTable {
	return []ExpectedTable{{Name: "TAB_" + f.identity.ID, Critical: false}}
}

func (f *fakeExtractor) DependsOn() []string { return f.deps }

func (f *fakeExtractor) Extract(ctx context.Context, ec *Context) (*Result, error) {
	f.mu.Lock()
	*f.started = append(*f.started, f.identity.ID)
	f.mu.Unlock()
	if f.err != nil {
		ec.Coverage().Track(f.identity.ID, "TAB_"+f.identity.ID, coverage.StatusFailed,
			map[string]string{"error": f.err.Error()})
		return nil, f.err
	}
	ec.Coverage().Track(f.identity.ID, "TAB_"+f.identity.ID, coverage.StatusExtracted, nil)
	res := NewResult(f.identity.ID)
	res.AddRows("rows", []string{"k"}, []map[string]interface{}{{"k": f.identity.ID}})
	return res, nil
}

type fakeFleet struct {
	registry *Registry
	started  []string
	mu       sync.Mutex
}

func newFleet(t *testing.T) *fakeFleet {
	t.Helper()
	return &fakeFleet{registry: NewRegistry(testLogger())}
}

func (f *fakeFleet) ran(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.started {
		if s == id {
			return true
		}
	}
	return false
}

func (f *fakeFleet) add(t *testing.T, id string, deps []string, err error) {
	t.Helper()
	x := &fakeExtractor{
		identity: Identity{ID: id, Module: "TEST", Category: CategoryConfig, DisplayName: id},
		deps:     deps,
		err:      err,
		started:  &f.started,
		mu:       &f.mu,
	}
	if rerr := f.registry.Register(x); rerr != nil {
		t.Fatalf("Register %s: %v", id, rerr)
	}
}

func TestRegistryRejectsBlankIdentity(t *testing.T) {
	r := NewRegistry(testLogger())
	err := r.Register(&fakeExtractor{identity: Identity{Module: "TEST", Category: CategoryConfig}, started: new([]string), mu: &sync.Mutex{}})
	if !errors.Is(err, ErrFatal) {
		t.Errorf("blank id error = %v, want ErrFatal", err)
	}
	err = r.Register(&fakeExtractor{identity: Identity{ID: "x"}, started: new([]string), mu: &sync.Mutex{}})
	if !errors.Is(err, ErrFatal) {
		t.Errorf("missing module error = %v, want ErrFatal", err)
	}
}

func TestRegistryReplacesDuplicateAndSeals(t *testing.T) {
	f := newFleet(t)
	f.add(t, "a", nil, nil)
	f.add(t, "a", nil, nil)
	if f.registry.Len() != 1 {
		t.Errorf("duplicate registration grew the registry to %d", f.registry.Len())
	}

	f.registry.Seal()
	x := &fakeExtractor{
		identity: Identity{ID: "b", Module: "TEST", Category: CategoryConfig},
		started:  &f.started, mu: &f.mu,
	}
	if err := f.registry.Register(x); !errors.Is(err, ErrFatal) {
		t.Errorf("sealed registration error = %v, want ErrFatal", err)
	}
}

func TestRegistrySelect(t *testing.T) {
	r := NewRegistry(testLogger())
	mu := sync.Mutex{}
	started := []string{}
	add := func(id, module, category string) {
		x := &fakeExtractor{identity: Identity{ID: id, Module: module, Category: category}, started: &started, mu: &mu}
		if err := r.Register(x); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	add("config.a", "FI", CategoryConfig)
	add("master.b", "MM", CategoryMasterData)
	add("config.c", "FI", CategoryConfig)

	if got := r.Select(Filter{Module: "FI"}); len(got) != 2 {
		t.Errorf("module filter matched %d, want 2", len(got))
	}
	if got := r.Select(Filter{Category: CategoryMasterData}); len(got) != 1 || got[0].Identity().ID != "master.b" {
		t.Errorf("category filter = %v", got)
	}
	if got := r.Select(Filter{IDs: []string{"config.c"}}); len(got) != 1 || got[0].Identity().ID != "config.c" {
		t.Errorf("id filter = %v", got)
	}
	if got := r.Select(Filter{}); len(got) != 3 {
		t.Errorf("empty filter matched %d, want all 3", len(got))
	}
}

func TestRunRespectsDependencies(t *testing.T) {
	f := newFleet(t)
	f.add(t, "a", nil, nil)
	f.add(t, "b", []string{"a"}, nil)
	f.add(t, "c", []string{"b"}, nil)

	o := &Orchestrator{Registry: f.registry, Concurrency: 4, Logger: testLogger()}
	out, err := o.Run(context.Background(), testContext(t), Filter{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Results) != 3 || len(out.Failed) != 0 {
		t.Fatalf("results = %d, failed = %v", len(out.Results), out.Failed)
	}
	pos := map[string]int{}
	for i, id := range f.started {
		pos[id] = i
	}
	if pos["a"] > pos["b"] || pos["b"] > pos["c"] {
		t.Errorf("start order violates dependencies: %v", f.started)
	}
}

func TestRunIsolatesExtractorFailure(t *testing.T) {
	f := newFleet(t)
	f.add(t, "a", nil, errors.New("access denied"))
	f.add(t, "b", nil, nil)

	o := &Orchestrator{Registry: f.registry, Concurrency: 1, Logger: testLogger()}
	ec := testContext(t)
	out, err := o.Run(context.Background(), ec, Filter{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Failed) != 1 || out.Failed[0] != "a" {
		t.Errorf("failed = %v, want [a]", out.Failed)
	}
	if _, ok := out.Results["b"]; !ok {
		t.Error("healthy extractor missing from results")
	}
	if r := ec.Coverage().Report("a"); r.Failed != 1 {
		t.Errorf("failed extractor coverage = %+v", r)
	}
}

func TestRunMarksUnreachedDependentsSkipped(t *testing.T) {
	f := newFleet(t)
	f.add(t, "a", nil, errors.New("source unavailable"))
	f.add(t, "b", []string{"a"}, nil)

	o := &Orchestrator{Registry: f.registry, Concurrency: 2, Logger: testLogger()}
	ec := testContext(t)
	out, err := o.Run(context.Background(), ec, Filter{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	failed := map[string]bool{}
	for _, id := range out.Failed {
		failed[id] = true
	}
	if !failed["a"] || !failed["b"] {
		t.Errorf("failed = %v, want both a and b", out.Failed)
	}
	gaps := ec.Coverage().Gaps()
	found := false
	for _, g := range gaps {
		if g.ExtractorID == "b" && g.Status == coverage.StatusSkipped && g.Reason == "unsatisfied dependency" {
			found = true
		}
	}
	if !found {
		t.Errorf("dependent gap not recorded: %+v", gaps)
	}
}

func TestRunFailedDependencyHaltsChain(t *testing.T) {
	f := newFleet(t)
	f.add(t, "a", nil, errors.New("source unavailable"))
	f.add(t, "b", []string{"a"}, nil)
	f.add(t, "c", []string{"b"}, nil)
	f.add(t, "d", nil, nil)

	o := &Orchestrator{Registry: f.registry, Concurrency: 2, Logger: testLogger()}
	ec := testContext(t)
	out, err := o.Run(context.Background(), ec, Filter{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, id := range []string{"b", "c"} {
		if f.ran(id) {
			t.Errorf("%s ran despite its dependency chain failing", id)
		}
		if _, ok := out.Results[id]; ok {
			t.Errorf("%s produced a result", id)
		}
	}
	if _, ok := out.Results["d"]; !ok {
		t.Error("independent extractor missing from results")
	}
	if len(out.Failed) != 3 {
		t.Errorf("failed = %v, want a, b, and c", out.Failed)
	}
}

func TestRunFatalErrorAborts(t *testing.T) {
	f := newFleet(t)
	f.add(t, "a", nil, fmt.Errorf("%w: contract violation", ErrFatal))
	f.add(t, "b", []string{"a"}, nil)

	o := &Orchestrator{Registry: f.registry, Concurrency: 1, Logger: testLogger()}
	out, err := o.Run(context.Background(), testContext(t), Filter{})
	if err == nil || !errors.Is(err, ErrFatal) {
		t.Fatalf("err = %v, want ErrFatal", err)
	}
	if _, ok := out.Results["b"]; ok {
		t.Error("extractor ran after a fatal abort")
	}
}

func TestRunCancellationDrainsInFlight(t *testing.T) {
	ec := testContext(t)
	registry := NewRegistry(testLogger())
	release := make(chan struct{})
	started := make(chan struct{})
	gate := &gatedExtractor{
		identity: Identity{ID: "gate", Module: "TEST", Category: CategoryConfig},
		release:  release,
		started:  started,
	}
	if err := registry.Register(gate); err != nil {
		t.Fatalf("Register gate: %v", err)
	}
	mu := sync.Mutex{}
	var runsStarted []string
	b := &fakeExtractor{
		identity: Identity{ID: "b", Module: "TEST", Category: CategoryConfig},
		started:  &runsStarted, mu: &mu,
	}
	if err := registry.Register(b); err != nil {
		t.Fatalf("Register b: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{Registry: registry, Concurrency: 1, Logger: testLogger()}
	done := make(chan *RunOutput, 1)
	go func() {
		out, _ := o.Run(ctx, ec, Filter{})
		done <- out
	}()

	<-started
	cancel()
	// Give the run loop time to observe the cancellation before the
	// in-flight extractor is allowed to finish.
	time.Sleep(50 * time.Millisecond)
	close(release)
	out := <-done

	if !out.Cancelled {
		t.Error("run not marked cancelled")
	}
	if _, ok := out.Results["gate"]; !ok {
		t.Error("in-flight extractor result dropped")
	}
	if _, ok := out.Results["b"]; ok {
		t.Error("extractor scheduled after cancellation")
	}
	gaps := ec.Coverage().Gaps()
	found := false
	for _, g := range gaps {
		if g.ExtractorID == "b" && g.Status == coverage.StatusSkipped && g.Reason == "cancelled" {
			found = true
		}
	}
	if !found {
		t.Errorf("never-started extractor not marked skipped: %+v", gaps)
	}
}

// gatedExtractor blocks until released, so tests can cancel mid-run.
type gatedExtractor struct {
	identity Identity
	release  chan struct{}
	started  chan struct{}
}

func (g *gatedExtractor) Identity() Identity { return g.identity }
func (g *gatedExtractor) ExpectedTables() []ExpectedTable {
	return []ExpectedTable{{Name: "GATED"}}
}
func (g *gatedExtractor) Extract(ctx context.Context, ec *Context) (*Result, error) {
	close(g.started)
	<-g.release
	return NewResult(g.identity.ID), nil
}

func TestProgressReporting(t *testing.T) {
	f := newFleet(t)
	f.add(t, "a", nil, nil)
	f.add(t, "b", nil, nil)

	var snapshots []Progress
	o := &Orchestrator{
		Registry:    f.registry,
		Concurrency: 1,
		Logger:      testLogger(),
		OnProgress:  func(p Progress) { snapshots = append(snapshots, p) },
	}
	if _, err := o.Run(context.Background(), testContext(t), Filter{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(snapshots) == 0 {
		t.Fatal("no progress snapshots delivered")
	}
	last := snapshots[len(snapshots)-1]
	if last.Completed != 2 || last.Total != 2 {
		t.Errorf("final snapshot = %+v", last)
	}
}
