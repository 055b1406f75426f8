package extract

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/erplens/erplens/internal/checkpoint"
	"github.com/erplens/erplens/internal/coverage"
	"github.com/erplens/erplens/internal/gateway"
)

// Extractor categories.
const (
	CategoryConfig      = "config"
	CategoryMasterData  = "masterdata"
	CategoryTransaction = "transaction"
	CategoryProcess     = "process"
	CategorySecurity    = "security"
	CategoryCode        = "code"
	CategoryAdvisory    = "advisory"
)

// ErrFatal marks a programming-contract violation: missing identity,
// duplicate registration, corrupt checkpoint. Data-source errors never
// wrap it.
var ErrFatal = errors.New("fatal extractor error")

// Identity names an extractor and its organizational placement.
type Identity struct {
	ID          string `json:"id"`
	Module      string `json:"module"`
	Category    string `json:"category"`
	DisplayName string `json:"display_name"`
}

// ExpectedTable declares one table an extractor reads.
type ExpectedTable struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Critical    bool   `json:"critical"`
}

// Extractor is the contract every member of the fleet implements.
type Extractor interface {
	Identity() Identity
	ExpectedTables() []ExpectedTable
	Extract(ctx context.Context, ec *Context) (*Result, error)
}

// Dependent is implemented by extractors whose scheduling must follow
// other extractors.
type Dependent interface {
	DependsOn() []string
}

// Base carries the shared identity plumbing and the table-read helpers
// that enforce coverage tracking, checkpointing, and error isolation.
// Concrete extractors embed it by value.
type Base struct {
	Descriptor    Identity
	Tables        []ExpectedTable
	SchemaVersion int
}

func (b Base) Identity() Identity              { return b.Descriptor }
func (b Base) ExpectedTables() []ExpectedTable { return b.Tables }

// Begin registers the extractor's module with the coverage tracker and
// seeds every expected table as pending.
func (b Base) Begin(ec *Context) {
	ec.Coverage().RegisterModule(b.Descriptor.ID, b.Descriptor.Module)
	for _, t := range b.Tables {
		ec.Coverage().Track(b.Descriptor.ID, t.Name, coverage.StatusPending, nil)
	}
}

// ReadTable reads one expected table in full and records the outcome. On
// a data-source error it marks the table failed and returns ok=false; the
// caller continues with its next table. On cancellation it marks the
// table skipped.
func (b Base) ReadTable(ctx context.Context, ec *Context, table string, opts gateway.ReadOptions) (*gateway.RowSet, bool) {
	if err := ctx.Err(); err != nil {
		b.trackCancelled(ec, table)
		return nil, false
	}
	start := time.Now()
	rs, err := ec.Gateway().ReadTable(ctx, table, opts)
	if err != nil {
		b.trackFailed(ec, table, err)
		return nil, false
	}
	ec.Coverage().Track(b.Descriptor.ID, table, coverage.StatusExtracted, map[string]string{
		"rows":     strconv.Itoa(len(rs.Rows)),
		"duration": time.Since(start).String(),
	})
	return rs, true
}

// StreamTable reads one expected table chunk by chunk, resuming from any
// prior checkpoint and writing a new checkpoint after each page. The
// callback receives every page in order. Returns the total row count and
// whether the table completed.
func (b Base) StreamTable(ctx context.Context, ec *Context, table string, pageSize int, fn func(*gateway.Page) error) (int, bool) {
	if err := ctx.Err(); err != nil {
		b.trackCancelled(ec, table)
		return 0, false
	}

	opts := gateway.StreamOptions{PageSize: pageSize}
	total := 0
	if rec, err := ec.Checkpoints().Load(b.Descriptor.ID, b.SchemaVersion); err == nil && rec != nil && rec.Table == table {
		opts.Cursor = rec.Cursor
		total = int(rec.LastOffset)
	}

	start := time.Now()
	stream, err := ec.Gateway().StreamTable(ctx, table, opts)
	if err != nil {
		b.trackFailed(ec, table, err)
		return 0, false
	}
	defer stream.Close()

	for {
		if err := ctx.Err(); err != nil {
			b.trackCancelled(ec, table)
			return total, false
		}
		page, err := stream.Next(ctx)
		if err != nil {
			b.trackFailed(ec, table, err)
			return total, false
		}
		if page == nil {
			break
		}
		if err := fn(page); err != nil {
			b.trackFailed(ec, table, err)
			return total, false
		}
		total += len(page.Rows)
		b.writeCheckpoint(ec, table, page.Cursor, int64(total))
	}

	ec.Coverage().Track(b.Descriptor.ID, table, coverage.StatusExtracted, map[string]string{
		"rows":     strconv.Itoa(total),
		"duration": time.Since(start).String(),
	})
	_ = ec.Checkpoints().Delete(b.Descriptor.ID)
	return total, true
}

// SkipTable records an intentionally skipped table.
func (b Base) SkipTable(ec *Context, table, reason string) {
	ec.Coverage().Track(b.Descriptor.ID, table, coverage.StatusSkipped, map[string]string{"reason": reason})
}

// MarkRemainingSkipped marks every still-pending expected table skipped,
// used when cancellation arrives mid-extractor.
func (b Base) MarkRemainingSkipped(ec *Context, reason string) {
	report := ec.Coverage()
	for _, t := range b.Tables {
		report.Track(b.Descriptor.ID, t.Name, coverage.StatusSkipped, map[string]string{"reason": reason})
	}
}

func (b Base) trackFailed(ec *Context, table string, err error) {
	ec.Coverage().Track(b.Descriptor.ID, table, coverage.StatusFailed, map[string]string{
		"error": err.Error(),
		"kind":  string(gateway.KindOf(err)),
	})
	ec.Logger().Warn("table extraction failed",
		"extractor", b.Descriptor.ID, "table", table, "error", err)
}

func (b Base) trackCancelled(ec *Context, table string) {
	ec.Coverage().Track(b.Descriptor.ID, table, coverage.StatusSkipped, map[string]string{"reason": "cancelled"})
}

func (b Base) writeCheckpoint(ec *Context, table, cursor string, offset int64) {
	err := ec.Checkpoints().Save(b.Descriptor.ID, &checkpoint.Record{
		SchemaVersion: b.SchemaVersion,
		Table:         table,
		Cursor:        cursor,
		LastOffset:    offset,
	})
	if err != nil {
		ec.Logger().Warn("checkpoint write failed", "extractor", b.Descriptor.ID, "error", err)
	}
}
