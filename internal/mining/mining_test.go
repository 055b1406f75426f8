package mining

import (
	"reflect"
	"testing"

	"github.com/erplens/erplens/internal/extract"
)

func header(class, objectID, changeNr, user, date, tm, tcode string) ChangeHeader {
	return ChangeHeader{
		ObjectClass:  class,
		ObjectID:     objectID,
		ChangeNumber: changeNr,
		User:         user,
		Date:         date,
		Time:         tm,
		TCode:        tcode,
	}
}

// cleanOrderToCash is one conformant case over four activities.
func cleanOrderToCash() []ChangeHeader {
	return []ChangeHeader{
		header("VERKBELEG", "0000500001", "0001", "JMILLER", "20240105", "091500", "VA01"),
		header("VERKBELEG", "0000500001", "0002", "JMILLER", "20240106", "141200", "VA02"),
		header("VERKBELEG", "0000500001", "0003", "SWAREHOUSE", "20240108", "101000", "VL01N"),
		header("VERKBELEG", "0000500001", "0004", "ABILLING", "20240110", "160300", "VF01"),
	}
}

func TestAnalyzeBuildsOrderedTrace(t *testing.T) {
	e := &Engine{}
	// Feed the headers out of order; the trace must still come back in
	// timestamp order.
	headers := cleanOrderToCash()
	headers[0], headers[3] = headers[3], headers[0]

	catalog, err := e.Analyze(headers, nil, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(catalog.Cases) != 1 {
		t.Fatalf("got %d cases, want 1", len(catalog.Cases))
	}
	c := catalog.Cases[0]
	if c.CaseID != "VERKBELEG:0000500001" || c.Process != "O2C" {
		t.Errorf("case = %s process %s", c.CaseID, c.Process)
	}
	want := []string{"Create Sales Order", "Change Sales Order", "Create Delivery", "Create Invoice"}
	if len(c.Events) != len(want) {
		t.Fatalf("got %d events, want %d", len(c.Events), len(want))
	}
	for i, ev := range c.Events {
		if ev.Activity != want[i] {
			t.Errorf("event %d = %q, want %q", i, ev.Activity, want[i])
		}
	}

	p := catalog.Process("O2C")
	if p == nil {
		t.Fatal("O2C summary missing")
	}
	if p.CaseCount != 1 || p.VariantCount != 1 {
		t.Errorf("summary = %d cases, %d variants", p.CaseCount, p.VariantCount)
	}
	if len(p.Violations) != 0 {
		t.Errorf("conformant case produced violations: %+v", p.Violations)
	}
	if p.EvidenceCounts["events"] != 4 {
		t.Errorf("evidence events = %d", p.EvidenceCounts["events"])
	}
}

func TestAnalyzeDetectsViolation(t *testing.T) {
	// Invoice straight after order creation skips delivery, which the
	// reference model does not allow.
	headers := []ChangeHeader{
		header("VERKBELEG", "0000500003", "0001", "JMILLER", "20240105", "090000", "VA01"),
		header("VERKBELEG", "0000500003", "0002", "ABILLING", "20240107", "090000", "VF01"),
	}
	catalog, err := (&Engine{}).Analyze(headers, nil, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	p := catalog.Process("O2C")
	if p == nil || len(p.Violations) != 1 {
		t.Fatalf("violations = %+v", p)
	}
	v := p.Violations[0]
	if v.CaseID != "VERKBELEG:0000500003" || v.From != "Create Sales Order" || v.To != "Create Invoice" {
		t.Errorf("violation = %+v", v)
	}
	if v.EventIndex != 0 {
		t.Errorf("event index = %d", v.EventIndex)
	}
}

func TestAnalyzeDetectsSLABreachAndBottleneck(t *testing.T) {
	// 72h between order and delivery against a 48h target.
	headers := []ChangeHeader{
		header("VERKBELEG", "0000500004", "0001", "JMILLER", "20240105", "090000", "VA01"),
		header("VERKBELEG", "0000500004", "0002", "SWAREHOUSE", "20240108", "090000", "VL01N"),
	}
	catalog, err := (&Engine{}).Analyze(headers, nil, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	p := catalog.Process("O2C")
	if p == nil || len(p.SLABreaches) != 1 {
		t.Fatalf("breaches = %+v", p)
	}
	b := p.SLABreaches[0]
	if b.ElapsedHours != 72 || b.TargetHours != 48 || b.Severity != "high" {
		t.Errorf("breach = %+v", b)
	}
	if len(p.BottleneckTransitions) != 1 || !p.BottleneckTransitions[0].Bottleneck {
		t.Errorf("bottlenecks = %+v", p.BottleneckTransitions)
	}
}

func TestAnalyzeBottleneckFactorRaisesThreshold(t *testing.T) {
	headers := []ChangeHeader{
		header("VERKBELEG", "0000500004", "0001", "JMILLER", "20240105", "090000", "VA01"),
		header("VERKBELEG", "0000500004", "0002", "SWAREHOUSE", "20240108", "090000", "VL01N"),
	}
	catalog, err := (&Engine{BottleneckFactor: 2.0}).Analyze(headers, nil, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	p := catalog.Process("O2C")
	if len(p.BottleneckTransitions) != 0 {
		t.Errorf("72h median flagged against a 96h threshold: %+v", p.BottleneckTransitions)
	}
	// Breach detection works from the raw SLA, not the scaled threshold.
	if len(p.SLABreaches) != 1 {
		t.Errorf("breaches = %+v", p.SLABreaches)
	}
}

func TestAnalyzeAliasedClassesAndCodes(t *testing.T) {
	headers := []ChangeHeader{
		header("sales-document", "SO-77", "0001", "ops", "20240201", "080000", "create-sales-order"),
	}
	catalog, err := (&Engine{}).Analyze(headers, nil, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(catalog.Cases) != 1 || catalog.Cases[0].Process != "O2C" {
		t.Fatalf("aliased case = %+v", catalog.Cases)
	}
	if catalog.Cases[0].Events[0].Activity != "Create Sales Order" {
		t.Errorf("aliased activity = %q", catalog.Cases[0].Events[0].Activity)
	}
}

func TestAnalyzeDiscardsUnclassifiable(t *testing.T) {
	headers := []ChangeHeader{
		header("DEBITOR", "0000100001", "0001", "x", "20240105", "090000", "XD02"),
		header("VERKBELEG", "0000500001", "0002", "x", "2024-bad", "090000", "VA01"),
		header("VERKBELEG", "0000500001", "0003", "x", "20240105", "090000", "VA01"),
	}
	catalog, err := (&Engine{}).Analyze(headers, nil, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if catalog.DiscardedEvents != 2 {
		t.Errorf("discarded = %d, want 2", catalog.DiscardedEvents)
	}
	if len(catalog.Cases) != 1 {
		t.Errorf("cases = %d, want the one classifiable header", len(catalog.Cases))
	}
}

func TestAnalyzeFieldPatternDisambiguation(t *testing.T) {
	items := []ChangeItem{
		{ChangeNumber: "0001", TableName: "LIKP", FieldName: "WADAT_IST", ChangeInd: "U", LineNumber: 1},
		{ChangeNumber: "0002", TableName: "LIKP", FieldName: "LFDAT", ChangeInd: "U", LineNumber: 1},
	}
	headers := []ChangeHeader{
		header("LIEFERUNG", "80001", "0001", "x", "20240105", "090000", "VL02N"),
		header("LIEFERUNG", "80002", "0002", "x", "20240105", "100000", "VL02N"),
	}
	catalog, err := (&Engine{}).Analyze(headers, items, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(catalog.Cases) != 2 {
		t.Fatalf("cases = %d", len(catalog.Cases))
	}
	activities := map[string]string{}
	for _, c := range catalog.Cases {
		activities[c.CaseID] = c.Events[0].Activity
	}
	if activities["LIEFERUNG:80001"] != "Post Goods Issue" {
		t.Errorf("WADAT change classified as %q", activities["LIEFERUNG:80001"])
	}
	if activities["LIEFERUNG:80002"] != "Create Delivery" {
		t.Errorf("non-WADAT change classified as %q", activities["LIEFERUNG:80002"])
	}
}

func TestAnalyzeUnusedTransactions(t *testing.T) {
	usage := []UsageStat{
		{TCode: "ME23N", Count: 1450},
		{TCode: "VA01", Count: 1240},
		{TCode: "ZOBSOLETE", Count: 0},
	}
	catalog, err := (&Engine{}).Analyze(cleanOrderToCash(), nil, usage)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(catalog.UnusedTransactions) != 1 || catalog.UnusedTransactions[0].TCode != "ME23N" {
		t.Errorf("unused = %+v", catalog.UnusedTransactions)
	}
}

func TestAnalyzeVariantCounting(t *testing.T) {
	headers := append(cleanOrderToCash(),
		header("VERKBELEG", "0000500002", "0011", "JMILLER", "20240105", "091500", "VA01"),
		header("VERKBELEG", "0000500002", "0012", "JMILLER", "20240106", "141200", "VA02"),
		header("VERKBELEG", "0000500002", "0013", "SWAREHOUSE", "20240108", "101000", "VL01N"),
		header("VERKBELEG", "0000500002", "0014", "ABILLING", "20240110", "160300", "VF01"),
		header("VERKBELEG", "0000500005", "0021", "JMILLER", "20240105", "091500", "VA01"),
	)
	catalog, err := (&Engine{}).Analyze(headers, nil, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	p := catalog.Process("O2C")
	if p.CaseCount != 3 || p.VariantCount != 2 {
		t.Fatalf("summary = %d cases, %d variants", p.CaseCount, p.VariantCount)
	}
	if p.TopVariants[0].Count != 2 {
		t.Errorf("top variant count = %d, want the repeated sequence first", p.TopVariants[0].Count)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	headers := append(cleanOrderToCash(),
		header("EINKBELEG", "4500000001", "0031", "PBUYER", "20240110", "090000", "ME21N"),
		header("EINKBELEG", "4500000001", "0032", "GOODS", "20240115", "090000", "MIGO"),
	)
	usage := []UsageStat{{TCode: "ME23N", Count: 12}}

	first, err := (&Engine{}).Analyze(headers, nil, usage)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	second, err := (&Engine{}).Analyze(headers, nil, usage)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !reflect.DeepEqual(first.Processes, second.Processes) {
		t.Error("process summaries differ between identical runs")
	}
	if !reflect.DeepEqual(first.Cases, second.Cases) {
		t.Error("case traces differ between identical runs")
	}
}

func TestFromResultConverters(t *testing.T) {
	res := extract.NewResult("transaction.change-documents")
	res.AddRows("changeHeaders", []string{"OBJECTCLAS", "OBJECTID", "CHANGENR", "USERNAME", "UDATE", "UTIME", "TCODE"},
		[]map[string]interface{}{
			{"OBJECTCLAS": "VERKBELEG", "OBJECTID": "0000500001", "CHANGENR": "0001",
				"USERNAME": "JMILLER", "UDATE": "20240105", "UTIME": "091500", "TCODE": "VA01"},
		})
	res.AddRows("changeItems", []string{"CHANGENR", "TABNAME", "FNAME", "CHNGIND", "LINENR"},
		[]map[string]interface{}{
			{"CHANGENR": "0001", "TABNAME": "VBAK", "FNAME": "KEY", "CHNGIND": "I", "LINENR": "001"},
		})

	usageRes := extract.NewResult("transaction.usage-statistics")
	usageRes.AddRows("transactionUsage", []string{"TCODE", "COUNT"},
		[]map[string]interface{}{{"TCODE": "VA01", "COUNT": "1240"}})

	headers := HeadersFromResult(res)
	if len(headers) != 1 || headers[0].TCode != "VA01" || headers[0].ObjectID != "0000500001" {
		t.Errorf("headers = %+v", headers)
	}
	items := ItemsFromResult(res)
	if len(items) != 1 || items[0].LineNumber != 1 || items[0].TableName != "VBAK" {
		t.Errorf("items = %+v", items)
	}
	usage := UsageFromResult(usageRes)
	if len(usage) != 1 || usage[0].Count != 1240 {
		t.Errorf("usage = %+v", usage)
	}
	if HeadersFromResult(usageRes) != nil {
		t.Error("missing section did not yield nil")
	}
	// Filtered runs hand the converters a nil result for excluded
	// extractors.
	if HeadersFromResult(nil) != nil || ItemsFromResult(nil) != nil || UsageFromResult(nil) != nil {
		t.Error("nil result did not yield nil slices")
	}
}
