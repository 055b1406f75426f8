// Package canonical defines the target-system-agnostic data model and the
// per-source-family field mappings onto it.
package canonical

// Entity is one canonical business entity.
type Entity string

const (
	Item            Entity = "Item"
	Customer        Entity = "Customer"
	Vendor          Entity = "Vendor"
	ChartOfAccounts Entity = "ChartOfAccounts"
	SalesOrder      Entity = "SalesOrder"
	PurchaseOrder   Entity = "PurchaseOrder"
	ProductionOrder Entity = "ProductionOrder"
	Inventory       Entity = "Inventory"
	GlEntry         Entity = "GlEntry"
	Employee        Entity = "Employee"
	Bom             Entity = "Bom"
	Routing         Entity = "Routing"
	FixedAsset      Entity = "FixedAsset"
	CostCenter      Entity = "CostCenter"
)

// Entities returns every canonical entity in declaration order.
func Entities() []Entity {
	return []Entity{
		Item, Customer, Vendor, ChartOfAccounts,
		SalesOrder, PurchaseOrder, ProductionOrder, Inventory,
		GlEntry, Employee, Bom, Routing, FixedAsset, CostCenter,
	}
}

// CoreEntities are the entities every supported source family must map.
func CoreEntities() []Entity {
	return []Entity{Item, Customer, Vendor, ChartOfAccounts}
}

// identifierFields names the canonical identifier target path per entity.
var identifierFields = map[Entity]string{
	Item:            "ITEM-ID",
	Customer:        "CUSTOMER-ID",
	Vendor:          "VENDOR-ID",
	ChartOfAccounts: "ACCOUNT-ID",
	SalesOrder:      "ORDER-ID",
	PurchaseOrder:   "ORDER-ID",
	ProductionOrder: "ORDER-ID",
	Inventory:       "STOCK-ID",
	GlEntry:         "ENTRY-ID",
	Employee:        "EMPLOYEE-ID",
	Bom:             "BOM-ID",
	Routing:         "ROUTING-ID",
	FixedAsset:      "ASSET-ID",
	CostCenter:      "COSTCENTER-ID",
}

// IdentifierField returns the canonical identifier target field for the
// entity, or "" for an unknown entity.
func IdentifierField(e Entity) string {
	return identifierFields[e]
}
