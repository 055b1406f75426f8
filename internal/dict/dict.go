// Package dict holds the canonical data dictionary: descriptions of the
// source tables the extractor fleet knows about.
package dict

// TableInfo describes one known source table.
type TableInfo struct {
	Name        string
	Description string
	KeyFields   []string
}

// Dictionary is a read-only catalog of known source tables.
type Dictionary struct {
	tables map[string]TableInfo
}

// Default returns the built-in dictionary for the supported ERP families.
func Default() *Dictionary {
	d := &Dictionary{tables: make(map[string]TableInfo, len(defaultTables))}
	for _, ti := range defaultTables {
		d.tables[ti.Name] = ti
	}
	return d
}

// Lookup returns table metadata and whether the table is known.
func (d *Dictionary) Lookup(name string) (TableInfo, bool) {
	ti, ok := d.tables[name]
	return ti, ok
}

// Len reports the number of known tables.
func (d *Dictionary) Len() int { return len(d.tables) }

var defaultTables = []TableInfo{
	{Name: "T001", Description: "Company codes", KeyFields: []string{"BUKRS"}},
	{Name: "T009", Description: "Fiscal year variants", KeyFields: []string{"PERIV"}},
	{Name: "TNRO", Description: "Number range objects", KeyFields: []string{"OBJECT"}},
	{Name: "NRIV", Description: "Number range intervals", KeyFields: []string{"OBJECT", "NRRANGENR"}},
	{Name: "TKA01", Description: "Controlling areas", KeyFields: []string{"KOKRS"}},
	{Name: "CSKB", Description: "Cost elements", KeyFields: []string{"KOKRS", "KSTAR"}},
	{Name: "MARA", Description: "Material master, general data", KeyFields: []string{"MATNR"}},
	{Name: "MAKT", Description: "Material descriptions", KeyFields: []string{"MATNR", "SPRAS"}},
	{Name: "KNA1", Description: "Customer master, general data", KeyFields: []string{"KUNNR"}},
	{Name: "LFA1", Description: "Vendor master, general data", KeyFields: []string{"LIFNR"}},
	{Name: "SKA1", Description: "G/L account master", KeyFields: []string{"KTOPL", "SAKNR"}},
	{Name: "VBAK", Description: "Sales document headers", KeyFields: []string{"VBELN"}},
	{Name: "EKKO", Description: "Purchasing document headers", KeyFields: []string{"EBELN"}},
	{Name: "STKO", Description: "BOM headers", KeyFields: []string{"STLNR", "STLAL"}},
	{Name: "CDHDR", Description: "Change document headers", KeyFields: []string{"OBJECTCLAS", "OBJECTID", "CHANGENR"}},
	{Name: "CDPOS", Description: "Change document items", KeyFields: []string{"CHANGENR", "TABNAME", "FNAME"}},
	{Name: "SWNCAGGTCODE", Description: "Workload statistics per transaction", KeyFields: []string{"TCODE"}},
	{Name: "SWNCAGGUSERTCODE", Description: "Workload statistics per user and transaction", KeyFields: []string{"ACCOUNT", "TCODE"}},
	{Name: "TADIR", Description: "Repository object directory", KeyFields: []string{"OBJ_NAME"}},
	{Name: "SMODILOG", Description: "Modification log", KeyFields: []string{"OBJ_NAME"}},
	{Name: "AGR_DEFINE", Description: "Role definitions", KeyFields: []string{"AGR_NAME"}},
	{Name: "AGR_USERS", Description: "Role to user assignments", KeyFields: []string{"AGR_NAME", "UNAME"}},
	{Name: "AGR_1251", Description: "Role authorization values", KeyFields: []string{"AGR_NAME", "OBJECT"}},
	{Name: "USR02", Description: "User logon data", KeyFields: []string{"BNAME"}},
	{Name: "UST04", Description: "User profile assignments", KeyFields: []string{"BNAME", "PROFILE"}},
	{Name: "RFCDES", Description: "RFC destinations", KeyFields: []string{"RFCDEST"}},
	{Name: "EDPP1", Description: "IDoc partner profiles", KeyFields: []string{"PARNUM"}},
	{Name: "TBTCO", Description: "Batch job overview", KeyFields: []string{"JOBNAME"}},
	{Name: "TBTCP", Description: "Batch job steps", KeyFields: []string{"JOBNAME"}},
	{Name: "ARCH_OBJ", Description: "Archiving objects", KeyFields: []string{"OBJECT"}},
	{Name: "DBSTATC", Description: "Table size statistics", KeyFields: []string{"TNAME"}},
}
