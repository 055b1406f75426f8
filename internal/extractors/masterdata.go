package extractors

import (
	"context"

	"github.com/erplens/erplens/internal/extract"
	"github.com/erplens/erplens/internal/gateway"
)

// Materials extracts material masters joined with their descriptions.
type Materials struct {
	extract.Base
}

func NewMaterials() *Materials {
	return &Materials{Base: extract.Base{
		Descriptor: extract.Identity{
			ID:          "masterdata.materials",
			Module:      "LO",
			Category:    extract.CategoryMasterData,
			DisplayName: "Material masters",
		},
		Tables: []extract.ExpectedTable{
			{Name: "MARA", Description: "Material master, general data", Critical: true},
			{Name: "MAKT", Description: "Material descriptions"},
		},
		SchemaVersion: 1,
	}}
}

func (x *Materials) Extract(ctx context.Context, ec *extract.Context) (*extract.Result, error) {
	x.Begin(ec)
	res := extract.NewResult(x.Descriptor.ID)

	descriptions := make(map[string]string)
	if rs, ok := x.ReadTable(ctx, ec, "MAKT", gateway.ReadOptions{}); ok {
		for _, r := range rs.Rows {
			if str(r, "SPRAS") == "E" {
				descriptions[str(r, "MATNR")] = str(r, "MAKTX")
			}
		}
		res.AddRows("descriptions", rs.Columns, rs.Rows)
	}
	if rs, ok := x.ReadTable(ctx, ec, "MARA", gateway.ReadOptions{}); ok {
		rows := make([]map[string]interface{}, 0, len(rs.Rows))
		for _, r := range rs.Rows {
			rows = append(rows, map[string]interface{}{
				"material":    str(r, "MATNR"),
				"type":        str(r, "MTART"),
				"group":       str(r, "MATKL"),
				"baseUnit":    str(r, "MEINS"),
				"description": descriptions[str(r, "MATNR")],
			})
		}
		res.AddRows("materials", []string{"material", "type", "group", "baseUnit", "description"}, rows)
	}
	return res, nil
}

// BusinessPartners extracts customer and vendor masters.
type BusinessPartners struct {
	extract.Base
}

func NewBusinessPartners() *BusinessPartners {
	return &BusinessPartners{Base: extract.Base{
		Descriptor: extract.Identity{
			ID:          "masterdata.business-partners",
			Module:      "FI",
			Category:    extract.CategoryMasterData,
			DisplayName: "Customers and vendors",
		},
		Tables: []extract.ExpectedTable{
			{Name: "KNA1", Description: "Customer master", Critical: true},
			{Name: "LFA1", Description: "Vendor master", Critical: true},
		},
		SchemaVersion: 1,
	}}
}

func (x *BusinessPartners) Extract(ctx context.Context, ec *extract.Context) (*extract.Result, error) {
	x.Begin(ec)
	res := extract.NewResult(x.Descriptor.ID)

	if rs, ok := x.ReadTable(ctx, ec, "KNA1", gateway.ReadOptions{}); ok {
		res.AddRows("customers", rs.Columns, rs.Rows)
	}
	if rs, ok := x.ReadTable(ctx, ec, "LFA1", gateway.ReadOptions{}); ok {
		blocked := 0
		for _, r := range rs.Rows {
			if str(r, "SPERR") != "" {
				blocked++
			}
		}
		res.AddSection("vendors", &extract.Section{
			Columns: rs.Columns,
			Rows:    rs.Rows,
			Summary: map[string]float64{"blocked": float64(blocked)},
		})
	}
	return res, nil
}
