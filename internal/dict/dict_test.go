package dict

import "testing"

func TestDefaultDictionary(t *testing.T) {
	d := Default()
	if d.Len() == 0 {
		t.Fatal("empty dictionary")
	}
	ti, ok := d.Lookup("T001")
	if !ok {
		t.Fatal("T001 not in dictionary")
	}
	if ti.Description == "" {
		t.Error("T001 has no description")
	}
	if len(ti.KeyFields) == 0 || ti.KeyFields[0] != "BUKRS" {
		t.Errorf("T001 key fields = %v, want BUKRS first", ti.KeyFields)
	}
	if _, ok := d.Lookup("ZZNOPE"); ok {
		t.Error("unknown table found in dictionary")
	}
}
