package canonical

import "fmt"

// FieldMapping maps one source column to one canonical target field path.
// At most one of ValueMap, Convert, or Transform may be set; Default
// applies when the source value is absent or empty (and when a value-map
// lookup misses).
type FieldMapping struct {
	SourceField string
	TargetField string
	ValueMap    map[string]string
	Convert     string
	Transform   func(string) string
	Default     string
}

// Validate reports a declaration error in the mapping itself.
func (m FieldMapping) Validate() error {
	if m.TargetField == "" {
		return fmt.Errorf("mapping for source %q has no target field", m.SourceField)
	}
	set := 0
	if m.ValueMap != nil {
		set++
	}
	if m.Convert != "" {
		set++
	}
	if m.Transform != nil {
		set++
	}
	if set > 1 {
		return fmt.Errorf("mapping %s -> %s declares %d of valueMap/convert/transform, want at most one",
			m.SourceField, m.TargetField, set)
	}
	if m.Convert != "" && LookupConversion(m.Convert) == nil {
		return fmt.Errorf("mapping %s -> %s names unknown conversion %q",
			m.SourceField, m.TargetField, m.Convert)
	}
	return nil
}

// Apply resolves the mapping against one source row.
func (m FieldMapping) Apply(row map[string]string) (string, error) {
	value := ""
	if m.SourceField != "" {
		value = row[m.SourceField]
	}
	if value == "" {
		return m.Default, nil
	}
	switch {
	case m.ValueMap != nil:
		mapped, ok := m.ValueMap[value]
		if !ok {
			return m.Default, nil
		}
		return mapped, nil
	case m.Convert != "":
		conv := LookupConversion(m.Convert)
		if conv == nil {
			return "", fmt.Errorf("unknown conversion %q", m.Convert)
		}
		return conv(value)
	case m.Transform != nil:
		return m.Transform(value), nil
	}
	return value, nil
}

// SourceSystems returns the closed set of supported source families.
func SourceSystems() []string {
	return []string{"sap-ecc", "sap-s4", "oracle-ebs", "dynamics-ax", "jde"}
}

// Mappings returns the field mappings declared for the family and entity,
// or nil when the entity is not mapped for that family. The returned
// slice must not be mutated.
func Mappings(family string, entity Entity) []FieldMapping {
	byEntity, ok := mappingTable[family]
	if !ok {
		return nil
	}
	return byEntity[entity]
}
