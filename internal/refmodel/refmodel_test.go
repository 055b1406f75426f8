package refmodel

import "testing"

func TestModelsAreWellFormed(t *testing.T) {
	ids := IDs()
	if len(ids) == 0 {
		t.Fatal("no reference models registered")
	}
	for _, id := range ids {
		m := Lookup(id)
		if m == nil {
			t.Fatalf("Lookup(%s) returned nil", id)
		}
		for _, e := range m.Edges {
			if !m.HasActivity(e.From) || !m.HasActivity(e.To) {
				t.Errorf("%s: edge %s -> %s references unknown activity", id, e.From, e.To)
			}
		}
		for tr := range m.SLAs {
			if !m.HasEdge(tr.From, tr.To) {
				t.Errorf("%s: SLA on missing edge %s -> %s", id, tr.From, tr.To)
			}
		}
		for _, a := range m.CriticalPath {
			if !m.HasActivity(a) {
				t.Errorf("%s: critical path names unknown activity %s", id, a)
			}
		}
		for _, s := range m.Start {
			if !m.IsStart(s) || !m.HasActivity(s) {
				t.Errorf("%s: bad start activity %s", id, s)
			}
		}
	}
}

func TestOrderToCashGraph(t *testing.T) {
	m := Lookup("O2C")
	if m == nil {
		t.Fatal("O2C model missing")
	}
	if !m.HasEdge("Create Sales Order", "Create Delivery") {
		t.Error("expected edge Create Sales Order -> Create Delivery")
	}
	if m.HasEdge("Create Sales Order", "Create Invoice") {
		t.Error("invoicing straight from the order should not be allowed")
	}
	sla, ok := m.SLA("Create Sales Order", "Create Delivery")
	if !ok {
		t.Fatal("order-to-delivery SLA missing")
	}
	if sla.Hours() != 48 {
		t.Errorf("order-to-delivery SLA = %v hours, want 48", sla.Hours())
	}
	crit := m.CriticalTransitions()
	if len(crit) == 0 {
		t.Fatal("no critical transitions")
	}
	if crit[0].From != "Create Sales Order" {
		t.Errorf("first critical transition starts at %s", crit[0].From)
	}
}

func TestSLATargetHours(t *testing.T) {
	if got := (SLATarget{Target: 2, Unit: "days"}).Hours(); got != 48 {
		t.Errorf("2 days = %v hours, want 48", got)
	}
	if got := (SLATarget{Target: 36, Unit: "hours"}).Hours(); got != 36 {
		t.Errorf("36 hours = %v, want 36", got)
	}
}

func TestLookupUnknown(t *testing.T) {
	if Lookup("X2X") != nil {
		t.Error("unknown model id returned a model")
	}
}
