package extractors

import (
	"context"
	"fmt"
	"math"

	"github.com/erplens/erplens/internal/extract"
	"github.com/erplens/erplens/internal/gateway"
)

// NumberRanges inventories number-range objects and interval consumption.
// Near-exhausted intervals are a common cutover blocker.
type NumberRanges struct {
	extract.Base
}

func NewNumberRanges() *NumberRanges {
	return &NumberRanges{Base: extract.Base{
		Descriptor: extract.Identity{
			ID:          "config.number-ranges",
			Module:      "BASIS",
			Category:    extract.CategoryConfig,
			DisplayName: "Number range objects and intervals",
		},
		Tables: []extract.ExpectedTable{
			{Name: "TNRO", Description: "Number range objects", Critical: true},
			{Name: "NRIV", Description: "Number range intervals", Critical: true},
		},
		SchemaVersion: 1,
	}}
}

func (x *NumberRanges) Extract(ctx context.Context, ec *extract.Context) (*extract.Result, error) {
	x.Begin(ec)
	res := extract.NewResult(x.Descriptor.ID)

	if rs, ok := x.ReadTable(ctx, ec, "TNRO", gateway.ReadOptions{}); ok {
		res.AddRows("objects", rs.Columns, rs.Rows)
	}
	if rs, ok := x.ReadTable(ctx, ec, "NRIV", gateway.ReadOptions{}); ok {
		res.AddRows("intervals", rs.Columns, rs.Rows)

		consumption := make([]map[string]interface{}, 0, len(rs.Rows))
		for _, r := range rs.Rows {
			from := num(r, "FROMNUMBER")
			to := num(r, "TONUMBER")
			level := num(r, "NRLEVEL")
			pct := 0.0
			if to > from {
				pct = 100 * (level - from) / (to - from)
			}
			pct = math.Max(0, math.Min(100, pct))
			consumption = append(consumption, map[string]interface{}{
				"OBJECT":         str(r, "OBJECT"),
				"NRRANGENR":      str(r, "NRRANGENR"),
				"consumptionPct": math.Round(pct*10) / 10,
			})
		}
		res.AddRows("consumption", []string{"OBJECT", "NRRANGENR", "consumptionPct"}, consumption)
	}
	return res, nil
}

// Interfaces inventories RFC destinations and IDoc partner profiles: the
// integration surface that must be re-pointed during cutover.
type Interfaces struct {
	extract.Base
}

func NewInterfaces() *Interfaces {
	return &Interfaces{Base: extract.Base{
		Descriptor: extract.Identity{
			ID:          "integration.interfaces",
			Module:      "BASIS",
			Category:    extract.CategoryConfig,
			DisplayName: "RFC destinations and IDoc partner profiles",
		},
		Tables: []extract.ExpectedTable{
			{Name: "RFCDES", Description: "RFC destinations", Critical: true},
			{Name: "EDPP1", Description: "IDoc partner profiles"},
		},
		SchemaVersion: 1,
	}}
}

func (x *Interfaces) Extract(ctx context.Context, ec *extract.Context) (*extract.Result, error) {
	x.Begin(ec)
	res := extract.NewResult(x.Descriptor.ID)

	if rs, ok := x.ReadTable(ctx, ec, "RFCDES", gateway.ReadOptions{}); ok {
		res.AddRows("rfcDestinations", rs.Columns, rs.Rows)
	}
	if rs, ok := x.ReadTable(ctx, ec, "EDPP1", gateway.ReadOptions{}); ok {
		res.AddRows("partnerProfiles", rs.Columns, rs.Rows)
	}
	return res, nil
}

// BatchJobs inventories scheduled background jobs and their steps.
type BatchJobs struct {
	extract.Base
}

func NewBatchJobs() *BatchJobs {
	return &BatchJobs{Base: extract.Base{
		Descriptor: extract.Identity{
			ID:          "advisory.batch-jobs",
			Module:      "BASIS",
			Category:    extract.CategoryAdvisory,
			DisplayName: "Batch job definitions",
		},
		Tables: []extract.ExpectedTable{
			{Name: "TBTCO", Description: "Batch job overview"},
			{Name: "TBTCP", Description: "Batch job steps"},
		},
		SchemaVersion: 1,
	}}
}

func (x *BatchJobs) Extract(ctx context.Context, ec *extract.Context) (*extract.Result, error) {
	x.Begin(ec)
	res := extract.NewResult(x.Descriptor.ID)

	periodic := 0
	if rs, ok := x.ReadTable(ctx, ec, "TBTCO", gateway.ReadOptions{}); ok {
		for _, r := range rs.Rows {
			if str(r, "PERIODIC") == "X" {
				periodic++
			}
		}
		res.AddSection("jobs", &extract.Section{
			Columns: rs.Columns,
			Rows:    rs.Rows,
			Summary: map[string]float64{"periodic": float64(periodic)},
		})
	}
	if rs, ok := x.ReadTable(ctx, ec, "TBTCP", gateway.ReadOptions{}); ok {
		res.AddRows("steps", rs.Columns, rs.Rows)
	}
	return res, nil
}

// Archiving pairs archiving-object candidates with table growth figures.
type Archiving struct {
	extract.Base
}

func NewArchiving() *Archiving {
	return &Archiving{Base: extract.Base{
		Descriptor: extract.Identity{
			ID:          "advisory.archiving",
			Module:      "BASIS",
			Category:    extract.CategoryAdvisory,
			DisplayName: "Archiving candidates and table growth",
		},
		Tables: []extract.ExpectedTable{
			{Name: "ARCH_OBJ", Description: "Archiving objects"},
			{Name: "DBSTATC", Description: "Table size statistics"},
		},
		SchemaVersion: 1,
	}}
}

func (x *Archiving) Extract(ctx context.Context, ec *extract.Context) (*extract.Result, error) {
	x.Begin(ec)
	res := extract.NewResult(x.Descriptor.ID)

	if rs, ok := x.ReadTable(ctx, ec, "ARCH_OBJ", gateway.ReadOptions{}); ok {
		res.AddRows("archivingObjects", rs.Columns, rs.Rows)
	}
	if rs, ok := x.ReadTable(ctx, ec, "DBSTATC", gateway.ReadOptions{}); ok {
		candidates := make([]map[string]interface{}, 0)
		for _, r := range rs.Rows {
			if num(r, "GROWTH_PCT_YEAR") >= 20 {
				candidates = append(candidates, map[string]interface{}{
					"TNAME":  str(r, "TNAME"),
					"ROWS":   str(r, "ROWS"),
					"reason": fmt.Sprintf("%.0f%% yearly growth", num(r, "GROWTH_PCT_YEAR")),
				})
			}
		}
		res.AddRows("tableGrowth", rs.Columns, rs.Rows)
		res.AddRows("growthCandidates", []string{"TNAME", "ROWS", "reason"}, candidates)
	}
	return res, nil
}
