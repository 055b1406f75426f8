package migration

import (
	"context"
	"strings"
	"testing"

	"github.com/erplens/erplens/internal/gateway"
	"github.com/erplens/erplens/internal/target"
)

func TestDefaultObjectsSapEcc(t *testing.T) {
	objects := DefaultObjects("sap-ecc")
	if len(objects) != 7 {
		t.Fatalf("got %d objects, want 7", len(objects))
	}
	byID := make(map[string]*Object, len(objects))
	for _, obj := range objects {
		byID[obj.ID] = obj
		if obj.SourceTable == "" || obj.Collection == "" {
			t.Errorf("object %s missing source table or collection", obj.ID)
		}
		if len(obj.Mappings) == 0 {
			t.Errorf("object %s has no field mappings", obj.ID)
		}
		if len(obj.Checks) < 2 {
			t.Errorf("object %s has %d checks, want required + exactDuplicate at least", obj.ID, len(obj.Checks))
		}
	}

	item, ok := byID["sap-ecc.item"]
	if !ok {
		t.Fatal("sap-ecc.item missing")
	}
	if item.SourceTable != "MARA" || item.Collection != "items" {
		t.Errorf("item = %s -> %s, want MARA -> items", item.SourceTable, item.Collection)
	}
	so, ok := byID["sap-ecc.salesorder"]
	if !ok {
		t.Fatal("sap-ecc.salesorder missing")
	}
	if len(so.DependsOn) != 1 || so.DependsOn[0] != "sap-ecc.customer" {
		t.Errorf("salesorder deps = %v, want [sap-ecc.customer]", so.DependsOn)
	}
	if deps := byID["sap-ecc.bom"].DependsOn; len(deps) != 1 || deps[0] != "sap-ecc.item" {
		t.Errorf("bom deps = %v, want [sap-ecc.item]", deps)
	}
}

func TestDefaultObjectsUnknownFamily(t *testing.T) {
	if objects := DefaultObjects("baan"); objects != nil {
		t.Fatalf("unknown family produced %d objects", len(objects))
	}
}

func TestRunAllOrdersMastersBeforeDocuments(t *testing.T) {
	p := &Pipeline{
		Gateway: gateway.NewMockGateway(),
		Store:   target.NewMockStore(),
		Logger:  discardLogger(),
		DryRun:  true,
	}
	report, err := p.RunAll(context.Background(), DefaultObjects("sap-ecc"))
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(report.Order) != 7 {
		t.Fatalf("order has %d entries, want 7: %v", len(report.Order), report.Order)
	}
	pos := make(map[string]int, len(report.Order))
	for i, id := range report.Order {
		pos[id] = i
	}
	for dep, obj := range map[string]string{
		"sap-ecc.customer": "sap-ecc.salesorder",
		"sap-ecc.vendor":   "sap-ecc.purchaseorder",
		"sap-ecc.item":     "sap-ecc.bom",
	} {
		if pos[dep] > pos[obj] {
			t.Errorf("%s ran at %d, after dependent %s at %d", dep, pos[dep], obj, pos[obj])
		}
	}
	for id, res := range report.Results {
		if res.Status != StatusValidated {
			t.Errorf("%s status = %s, want %s (err: %v)", id, res.Status, StatusValidated, res.Err)
		}
	}
	if report.Loaded() != 7 {
		t.Errorf("Loaded() = %d, want 7 in dry run", report.Loaded())
	}
}

func TestRunAllBlocksDependentsOfFailedObject(t *testing.T) {
	gw := gateway.NewMockGateway()
	gw.FailTables = map[string]gateway.Kind{"KNA1": gateway.KindAccessDenied}
	store := target.NewMockStore()
	p := &Pipeline{Gateway: gw, Store: store, Logger: discardLogger()}

	report, err := p.RunAll(context.Background(), DefaultObjects("sap-ecc"))
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if got := report.Results["sap-ecc.customer"].Status; got != StatusExtractFailed {
		t.Errorf("customer status = %s, want %s", got, StatusExtractFailed)
	}
	if got := report.Results["sap-ecc.salesorder"].Status; got != StatusBlocked {
		t.Errorf("salesorder status = %s, want %s", got, StatusBlocked)
	}
	if _, staged := store.Inserted["salesorders"]; staged {
		t.Error("blocked object reached the staging store")
	}
	// The unrelated branches still load.
	if got := report.Results["sap-ecc.vendor"].Status; got != StatusLoaded {
		t.Errorf("vendor status = %s, want %s", got, StatusLoaded)
	}
	if got := report.Results["sap-ecc.purchaseorder"].Status; got != StatusLoaded {
		t.Errorf("purchaseorder status = %s, want %s", got, StatusLoaded)
	}
	if report.Loaded() != 5 {
		t.Errorf("Loaded() = %d, want 5", report.Loaded())
	}
}

func TestRunAllRejectsUnknownDependency(t *testing.T) {
	p := &Pipeline{Gateway: gateway.NewMockGateway(), Store: target.NewMockStore(), Logger: discardLogger()}
	objects := []*Object{
		{ID: "a", DependsOn: []string{"ghost"}},
	}
	if _, err := p.RunAll(context.Background(), objects); err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Fatalf("err = %v, want unknown dependency named", err)
	}
}

func TestRunAllRejectsDuplicateIDs(t *testing.T) {
	p := &Pipeline{Gateway: gateway.NewMockGateway(), Store: target.NewMockStore(), Logger: discardLogger()}
	objects := []*Object{{ID: "a"}, {ID: "a"}}
	if _, err := p.RunAll(context.Background(), objects); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("err = %v, want duplicate object error", err)
	}
}

func TestRunAllDetectsCycle(t *testing.T) {
	p := &Pipeline{Gateway: gateway.NewMockGateway(), Store: target.NewMockStore(), Logger: discardLogger()}
	objects := []*Object{
		{ID: "a", DependsOn: []string{"b"}},
		{ID: "b", DependsOn: []string{"a"}},
	}
	if _, err := p.RunAll(context.Background(), objects); err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("err = %v, want cycle error", err)
	}
}
