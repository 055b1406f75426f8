package extractors

import (
	"context"

	"github.com/erplens/erplens/internal/extract"
	"github.com/erplens/erplens/internal/gateway"
)

// changeDocPageSize keeps change-document chunks small enough that
// cancellation and checkpointing are observed frequently; the change
// tables are by far the largest slice the fleet reads.
const changeDocPageSize = 500

// ChangeDocuments streams the change-document headers and items that
// feed process mining.
type ChangeDocuments struct {
	extract.Base
}

func NewChangeDocuments() *ChangeDocuments {
	return &ChangeDocuments{Base: extract.Base{
		Descriptor: extract.Identity{
			ID:          "transaction.change-documents",
			Module:      "BASIS",
			Category:    extract.CategoryProcess,
			DisplayName: "Change document history",
		},
		Tables: []extract.ExpectedTable{
			{Name: "CDHDR", Description: "Change document headers", Critical: true},
			{Name: "CDPOS", Description: "Change document items", Critical: true},
		},
		SchemaVersion: 1,
	}}
}

func (x *ChangeDocuments) Extract(ctx context.Context, ec *extract.Context) (*extract.Result, error) {
	x.Begin(ec)
	res := extract.NewResult(x.Descriptor.ID)

	var headers []map[string]interface{}
	var headerCols []string
	if _, ok := x.StreamTable(ctx, ec, "CDHDR", changeDocPageSize, func(p *gateway.Page) error {
		headerCols = p.Columns
		headers = append(headers, p.Rows...)
		return nil
	}); ok {
		res.AddRows("changeHeaders", headerCols, headers)
	}

	var items []map[string]interface{}
	var itemCols []string
	if _, ok := x.StreamTable(ctx, ec, "CDPOS", changeDocPageSize, func(p *gateway.Page) error {
		itemCols = p.Columns
		items = append(items, p.Rows...)
		return nil
	}); ok {
		res.AddRows("changeItems", itemCols, items)
	}
	return res, nil
}

// UsageStatistics extracts workload statistics: per-transaction execution
// counts plus per-user top transactions.
type UsageStatistics struct {
	extract.Base
}

func NewUsageStatistics() *UsageStatistics {
	return &UsageStatistics{Base: extract.Base{
		Descriptor: extract.Identity{
			ID:          "transaction.usage-statistics",
			Module:      "BASIS",
			Category:    extract.CategoryTransaction,
			DisplayName: "Transaction usage statistics",
		},
		Tables: []extract.ExpectedTable{
			{Name: "SWNCAGGTCODE", Description: "Workload per transaction", Critical: true},
			{Name: "SWNCAGGUSERTCODE", Description: "Workload per user and transaction"},
		},
		SchemaVersion: 1,
	}}
}

func (x *UsageStatistics) Extract(ctx context.Context, ec *extract.Context) (*extract.Result, error) {
	x.Begin(ec)
	res := extract.NewResult(x.Descriptor.ID)

	if rs, ok := x.ReadTable(ctx, ec, "SWNCAGGTCODE", gateway.ReadOptions{}); ok {
		var total float64
		for _, r := range rs.Rows {
			total += num(r, "COUNT")
		}
		res.AddSection("transactionUsage", &extract.Section{
			Columns: rs.Columns,
			Rows:    rs.Rows,
			Summary: map[string]float64{"totalExecutions": total},
		})
	}
	if rs, ok := x.ReadTable(ctx, ec, "SWNCAGGUSERTCODE", gateway.ReadOptions{}); ok {
		res.AddRows("userTransactions", rs.Columns, rs.Rows)
	}
	return res, nil
}
