package extractors

import (
	"context"

	"github.com/erplens/erplens/internal/extract"
	"github.com/erplens/erplens/internal/gateway"
)

// CompanyCodes extracts organizational units of financial accounting.
type CompanyCodes struct {
	extract.Base
}

func NewCompanyCodes() *CompanyCodes {
	return &CompanyCodes{Base: extract.Base{
		Descriptor: extract.Identity{
			ID:          "config.company-codes",
			Module:      "FI",
			Category:    extract.CategoryConfig,
			DisplayName: "Company codes and fiscal year variants",
		},
		Tables: []extract.ExpectedTable{
			{Name: "T001", Description: "Company codes", Critical: true},
			{Name: "T009", Description: "Fiscal year variants"},
		},
		SchemaVersion: 1,
	}}
}

func (x *CompanyCodes) Extract(ctx context.Context, ec *extract.Context) (*extract.Result, error) {
	x.Begin(ec)
	res := extract.NewResult(x.Descriptor.ID)

	if rs, ok := x.ReadTable(ctx, ec, "T001", gateway.ReadOptions{}); ok {
		rows := make([]map[string]interface{}, 0, len(rs.Rows))
		for _, r := range rs.Rows {
			rows = append(rows, map[string]interface{}{
				"code":     str(r, "BUKRS"),
				"text":     str(r, "BUTXT"),
				"city":     str(r, "ORT01"),
				"country":  str(r, "LAND1"),
				"currency": str(r, "WAERS"),
				"fiscal":   str(r, "PERIV"),
			})
		}
		res.AddRows("companyCodes", []string{"code", "text", "city", "country", "currency", "fiscal"}, rows)
	}
	if rs, ok := x.ReadTable(ctx, ec, "T009", gateway.ReadOptions{}); ok {
		res.AddRows("fiscalYearVariants", rs.Columns, rs.Rows)
	}
	return res, nil
}

// Controlling extracts controlling areas and the cost element catalog.
type Controlling struct {
	extract.Base
}

// secondaryCostElementCategories is kept as data so new category codes
// extend the classifier without touching the extraction logic.
var secondaryCostElementCategories = map[string]bool{
	"41": true,
	"42": true,
	"43": true,
}

func NewControlling() *Controlling {
	return &Controlling{Base: extract.Base{
		Descriptor: extract.Identity{
			ID:          "config.controlling",
			Module:      "CO",
			Category:    extract.CategoryConfig,
			DisplayName: "Controlling areas and cost elements",
		},
		Tables: []extract.ExpectedTable{
			{Name: "TKA01", Description: "Controlling areas", Critical: true},
			{Name: "CSKB", Description: "Cost elements"},
		},
		SchemaVersion: 1,
	}}
}

func (x *Controlling) Extract(ctx context.Context, ec *extract.Context) (*extract.Result, error) {
	x.Begin(ec)
	res := extract.NewResult(x.Descriptor.ID)

	if rs, ok := x.ReadTable(ctx, ec, "TKA01", gateway.ReadOptions{}); ok {
		res.AddRows("controllingAreas", rs.Columns, rs.Rows)
	}
	if rs, ok := x.ReadTable(ctx, ec, "CSKB", gateway.ReadOptions{}); ok {
		primary, secondary := 0, 0
		for _, r := range rs.Rows {
			if secondaryCostElementCategories[str(r, "KATYP")] {
				secondary++
			} else {
				primary++
			}
		}
		res.AddSection("costElements", &extract.Section{
			Columns: rs.Columns,
			Rows:    rs.Rows,
			Summary: map[string]float64{
				"primary":   float64(primary),
				"secondary": float64(secondary),
			},
		})
	}
	return res, nil
}
