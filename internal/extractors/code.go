package extractors

import (
	"context"
	"strings"

	"github.com/erplens/erplens/internal/extract"
	"github.com/erplens/erplens/internal/gateway"
)

// CustomObjects extracts the custom code inventory and modification log;
// both feed the simplification rule scan.
type CustomObjects struct {
	extract.Base
}

func NewCustomObjects() *CustomObjects {
	return &CustomObjects{Base: extract.Base{
		Descriptor: extract.Identity{
			ID:          "code.custom-objects",
			Module:      "BASIS",
			Category:    extract.CategoryCode,
			DisplayName: "Custom code inventory",
		},
		Tables: []extract.ExpectedTable{
			{Name: "TADIR", Description: "Repository object directory", Critical: true},
			{Name: "SMODILOG", Description: "Modification log"},
		},
		SchemaVersion: 1,
	}}
}

func (x *CustomObjects) Extract(ctx context.Context, ec *extract.Context) (*extract.Result, error) {
	x.Begin(ec)
	res := extract.NewResult(x.Descriptor.ID)

	if rs, ok := x.ReadTable(ctx, ec, "TADIR", gateway.ReadOptions{}); ok {
		custom := 0
		for _, r := range rs.Rows {
			if strings.HasPrefix(str(r, "OBJ_NAME"), "Z") || strings.HasPrefix(str(r, "OBJ_NAME"), "Y") {
				custom++
			}
		}
		res.AddSection("customObjects", &extract.Section{
			Columns: rs.Columns,
			Rows:    rs.Rows,
			Summary: map[string]float64{"customNamed": float64(custom)},
		})
	}
	if rs, ok := x.ReadTable(ctx, ec, "SMODILOG", gateway.ReadOptions{}); ok {
		res.AddRows("modifications", rs.Columns, rs.Rows)
	}
	return res, nil
}
