package canonical

import (
	"strings"
	"testing"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"padLeft10", "100001", "0000100001"},
		{"padLeft10", "0000100001", "0000100001"},
		{"toUpperCase", "ea", "EA"},
		{"toDecimal", "12500,50", "12500.5"},
		{"toDecimal", "880.50", "880.5"},
		{"toInteger", "12.0", "12"},
		{"toDate", "20240105", "2024-01-05"},
		{"toDate", "05.01.2024", "2024-01-05"},
		{"toDate", "2024-01-05", "2024-01-05"},
	}
	for _, tt := range tests {
		conv := LookupConversion(tt.name)
		if conv == nil {
			t.Fatalf("conversion %s not registered", tt.name)
		}
		got, err := conv(tt.in)
		if err != nil {
			t.Fatalf("%s(%q): %v", tt.name, tt.in, err)
		}
		if got != tt.want {
			t.Errorf("%s(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestConversionsPassEmptyThrough(t *testing.T) {
	for name, conv := range conversions {
		got, err := conv("")
		if err != nil || got != "" {
			t.Errorf("%s(\"\") = (%q, %v), want empty passthrough", name, got, err)
		}
	}
}

func TestConversionErrors(t *testing.T) {
	if _, err := LookupConversion("toDecimal")("twelve"); err == nil {
		t.Error("toDecimal accepted a non-numeric value")
	}
	if _, err := LookupConversion("toDate")("13.2024"); err == nil {
		t.Error("toDate accepted an unrecognized layout")
	}
}

func TestFieldMappingValidate(t *testing.T) {
	ok := FieldMapping{SourceField: "MATNR", TargetField: "ITEM-ID", Convert: "padLeft10"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid mapping rejected: %v", err)
	}

	both := FieldMapping{
		SourceField: "MTART",
		TargetField: "ITEM-TYPE",
		ValueMap:    map[string]string{"FERT": "finished"},
		Convert:     "toUpperCase",
	}
	if err := both.Validate(); err == nil {
		t.Error("mapping with valueMap and convert passed validation")
	}

	unknown := FieldMapping{SourceField: "X", TargetField: "Y", Convert: "toRoman"}
	if err := unknown.Validate(); err == nil {
		t.Error("mapping with unknown conversion passed validation")
	}

	if err := (FieldMapping{SourceField: "X"}).Validate(); err == nil {
		t.Error("mapping without target field passed validation")
	}
}

func TestFieldMappingApply(t *testing.T) {
	row := map[string]string{"MATNR": "MAT-1000", "MTART": "FERT", "MEINS": ""}

	id := FieldMapping{SourceField: "MATNR", TargetField: "ITEM-ID", Convert: "padLeft10"}
	if got, _ := id.Apply(row); got != "00MAT-1000" {
		t.Errorf("convert apply = %q", got)
	}

	typ := FieldMapping{
		SourceField: "MTART", TargetField: "ITEM-TYPE",
		ValueMap: map[string]string{"FERT": "finished"}, Default: "other",
	}
	if got, _ := typ.Apply(row); got != "finished" {
		t.Errorf("valueMap apply = %q", got)
	}
	if got, _ := typ.Apply(map[string]string{"MTART": "DIEN"}); got != "other" {
		t.Errorf("valueMap miss = %q, want the default", got)
	}

	uom := FieldMapping{SourceField: "MEINS", TargetField: "ITEM-BASE_UOM", Convert: "toUpperCase", Default: "EA"}
	if got, _ := uom.Apply(row); got != "EA" {
		t.Errorf("empty source = %q, want the default", got)
	}
}

func TestEveryFamilyMapsTheCoreEntities(t *testing.T) {
	for _, family := range SourceSystems() {
		for _, entity := range CoreEntities() {
			mappings := Mappings(family, entity)
			if len(mappings) == 0 {
				t.Errorf("family %s does not map core entity %s", family, entity)
				continue
			}
			id := IdentifierField(entity)
			found := false
			for _, m := range mappings {
				if err := m.Validate(); err != nil {
					t.Errorf("family %s entity %s: %v", family, entity, err)
				}
				if m.TargetField == id {
					found = true
				}
			}
			if !found {
				t.Errorf("family %s entity %s does not map identifier %s", family, entity, id)
			}
		}
	}
}

func TestItemMappingsShareTheCanonicalCore(t *testing.T) {
	core := []string{"ITEM-ID", "ITEM-DESCRIPTION", "ITEM-BASE_UOM"}
	for _, family := range SourceSystems() {
		targets := make(map[string]bool)
		for _, m := range Mappings(family, Item) {
			targets[m.TargetField] = true
		}
		for _, field := range core {
			if !targets[field] {
				t.Errorf("family %s Item mapping misses %s", family, field)
			}
		}
	}
}

func TestIdentifierFieldsAreDeclaredForAllEntities(t *testing.T) {
	for _, e := range Entities() {
		id := IdentifierField(e)
		if id == "" {
			t.Errorf("entity %s has no identifier field", e)
			continue
		}
		if !strings.Contains(id, "-") {
			t.Errorf("entity %s identifier %q is not a canonical path", e, id)
		}
	}
	if IdentifierField(Entity("Ghost")) != "" {
		t.Error("unknown entity produced an identifier")
	}
}
