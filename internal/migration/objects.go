package migration

import (
	"fmt"
	"strings"

	"github.com/erplens/erplens/internal/canonical"
)

// sourceTables names, per family, the primary source table behind each
// canonical entity's migration object.
var sourceTables = map[string]map[canonical.Entity]string{
	"sap-ecc": {
		canonical.Item:            "MARA",
		canonical.Customer:        "KNA1",
		canonical.Vendor:          "LFA1",
		canonical.ChartOfAccounts: "SKA1",
		canonical.SalesOrder:      "VBAK",
		canonical.PurchaseOrder:   "EKKO",
		canonical.Bom:             "STKO",
	},
	"sap-s4": {
		canonical.Item:            "MARA",
		canonical.Customer:        "BUT000",
		canonical.Vendor:          "BUT000",
		canonical.ChartOfAccounts: "SKA1",
	},
	"oracle-ebs": {
		canonical.Item:            "MTL_SYSTEM_ITEMS_B",
		canonical.Customer:        "HZ_CUST_ACCOUNTS",
		canonical.Vendor:          "AP_SUPPLIERS",
		canonical.ChartOfAccounts: "FND_FLEX_VALUES",
	},
	"dynamics-ax": {
		canonical.Item:            "INVENTTABLE",
		canonical.Customer:        "CUSTTABLE",
		canonical.Vendor:          "VENDTABLE",
		canonical.ChartOfAccounts: "MAINACCOUNT",
	},
	"jde": {
		canonical.Item:            "F4101",
		canonical.Customer:        "F0301",
		canonical.Vendor:          "F0401",
		canonical.ChartOfAccounts: "F0901",
	},
}

// entityDependencies is the static object-ordering DAG: master data
// before the documents that reference it.
var entityDependencies = map[canonical.Entity][]canonical.Entity{
	canonical.SalesOrder:      {canonical.Customer},
	canonical.PurchaseOrder:   {canonical.Vendor},
	canonical.Bom:             {canonical.Item},
	canonical.ProductionOrder: {canonical.Item},
}

// DefaultObjects builds the migration objects declared for a source
// family, in dependency-safe declaration order. Unknown families yield
// nil.
func DefaultObjects(family string) []*Object {
	tables, ok := sourceTables[family]
	if !ok {
		return nil
	}
	var objects []*Object
	for _, entity := range canonical.Entities() {
		table, mapped := tables[entity]
		if !mapped {
			continue
		}
		mappings := canonical.Mappings(family, entity)
		if mappings == nil {
			continue
		}
		obj := &Object{
			ID:          objectID(family, entity),
			Name:        fmt.Sprintf("%s %s", strings.ToUpper(family), entity),
			Entity:      entity,
			Family:      family,
			SourceTable: table,
			Collection:  collectionName(entity),
			Mappings:    mappings,
			Checks:      defaultChecks(entity, mappings),
		}
		for _, dep := range entityDependencies[entity] {
			if _, present := tables[dep]; present {
				obj.DependsOn = append(obj.DependsOn, objectID(family, dep))
			}
		}
		objects = append(objects, obj)
	}
	return objects
}

func objectID(family string, entity canonical.Entity) string {
	return family + "." + strings.ToLower(string(entity))
}

func collectionName(entity canonical.Entity) string {
	return strings.ToLower(string(entity)) + "s"
}

// defaultChecks declares the standing quality checks: the canonical
// identifier is required and unique, and near-identical descriptions are
// flagged for review.
func defaultChecks(entity canonical.Entity, mappings []canonical.FieldMapping) []QualityCheck {
	id := canonical.IdentifierField(entity)
	checks := []QualityCheck{
		{Kind: CheckRequired, Fields: []string{id}},
		{Kind: CheckExactDuplicate, Fields: []string{id}},
	}
	for _, m := range mappings {
		if strings.HasSuffix(m.TargetField, "-DESCRIPTION") || strings.HasSuffix(m.TargetField, "-NAME") {
			checks = append(checks, QualityCheck{
				Kind:      CheckFuzzyDuplicate,
				Fields:    []string{m.TargetField},
				Threshold: 0.9,
			})
			break
		}
	}
	return checks
}
