package canonical

// mappingTable declares, per source family, the column-to-canonical field
// mappings. Every family carries the four core entities; additional
// entities are declared where migration objects exist for them.
var mappingTable = map[string]map[Entity][]FieldMapping{
	"sap-ecc": {
		Item: {
			{SourceField: "MATNR", TargetField: "ITEM-ID", Convert: "padLeft10"},
			{SourceField: "MAKTX", TargetField: "ITEM-DESCRIPTION"},
			{SourceField: "MEINS", TargetField: "ITEM-BASE_UOM", Convert: "toUpperCase", Default: "EA"},
			{SourceField: "MTART", TargetField: "ITEM-TYPE", ValueMap: map[string]string{
				"FERT": "finished", "HALB": "semifinished", "ROH": "raw", "HAWA": "trading",
			}, Default: "other"},
			{SourceField: "MATKL", TargetField: "ITEM-GROUP"},
		},
		Customer: {
			{SourceField: "KUNNR", TargetField: "CUSTOMER-ID", Convert: "padLeft10"},
			{SourceField: "NAME1", TargetField: "CUSTOMER-NAME"},
			{SourceField: "LAND1", TargetField: "CUSTOMER-COUNTRY", Convert: "toUpperCase"},
			{SourceField: "ORT01", TargetField: "CUSTOMER-CITY"},
		},
		Vendor: {
			{SourceField: "LIFNR", TargetField: "VENDOR-ID", Convert: "padLeft10"},
			{SourceField: "NAME1", TargetField: "VENDOR-NAME"},
			{SourceField: "LAND1", TargetField: "VENDOR-COUNTRY", Convert: "toUpperCase"},
			{SourceField: "SPERR", TargetField: "VENDOR-BLOCKED", ValueMap: map[string]string{"X": "true"}, Default: "false"},
		},
		ChartOfAccounts: {
			{SourceField: "SAKNR", TargetField: "ACCOUNT-ID", Convert: "padLeft10"},
			{SourceField: "TXT50", TargetField: "ACCOUNT-DESCRIPTION"},
			{SourceField: "KTOKS", TargetField: "ACCOUNT-TYPE", ValueMap: map[string]string{
				"SAKO": "gl", "ERG": "pl", "BEST": "balance",
			}, Default: "gl"},
		},
		SalesOrder: {
			{SourceField: "VBELN", TargetField: "ORDER-ID", Convert: "padLeft10"},
			{SourceField: "KUNNR", TargetField: "ORDER-CUSTOMER", Convert: "padLeft10"},
			{SourceField: "AUART", TargetField: "ORDER-TYPE", ValueMap: map[string]string{
				"OR": "standard", "RE": "return", "KB": "consignment",
			}, Default: "other"},
			{SourceField: "NETWR", TargetField: "ORDER-NET_VALUE", Convert: "toDecimal"},
			{SourceField: "WAERK", TargetField: "ORDER-CURRENCY", Convert: "toUpperCase", Default: "EUR"},
		},
		PurchaseOrder: {
			{SourceField: "EBELN", TargetField: "ORDER-ID", Convert: "padLeft10"},
			{SourceField: "LIFNR", TargetField: "ORDER-VENDOR", Convert: "padLeft10"},
			{SourceField: "BSART", TargetField: "ORDER-TYPE", ValueMap: map[string]string{
				"NB": "standard", "UB": "transfer", "FO": "framework",
			}, Default: "other"},
			{SourceField: "WAERS", TargetField: "ORDER-CURRENCY", Convert: "toUpperCase", Default: "EUR"},
		},
		Bom: {
			{SourceField: "STLNR", TargetField: "BOM-ID"},
			{SourceField: "MATNR", TargetField: "BOM-ITEM"},
			{SourceField: "BMENG", TargetField: "BOM-QUANTITY", Convert: "toDecimal", Default: "1"},
			{SourceField: "BMEIN", TargetField: "BOM-UOM", Convert: "toUpperCase", Default: "EA"},
		},
		CostCenter: {
			{SourceField: "KOSTL", TargetField: "COSTCENTER-ID", Convert: "padLeft10"},
			{SourceField: "KTEXT", TargetField: "COSTCENTER-DESCRIPTION"},
			{SourceField: "KOKRS", TargetField: "COSTCENTER-AREA"},
		},
	},

	"sap-s4": {
		Item: {
			{SourceField: "MATNR", TargetField: "ITEM-ID"},
			{SourceField: "MAKTX", TargetField: "ITEM-DESCRIPTION"},
			{SourceField: "MEINS", TargetField: "ITEM-BASE_UOM", Convert: "toUpperCase", Default: "EA"},
			{SourceField: "MTART", TargetField: "ITEM-TYPE", ValueMap: map[string]string{
				"FERT": "finished", "HALB": "semifinished", "ROH": "raw", "HAWA": "trading",
			}, Default: "other"},
			{SourceField: "MATKL", TargetField: "ITEM-GROUP"},
		},
		Customer: {
			{SourceField: "BPARTNER", TargetField: "CUSTOMER-ID"},
			{SourceField: "NAME_ORG1", TargetField: "CUSTOMER-NAME"},
			{SourceField: "COUNTRY", TargetField: "CUSTOMER-COUNTRY", Convert: "toUpperCase"},
			{SourceField: "CITY1", TargetField: "CUSTOMER-CITY"},
		},
		Vendor: {
			{SourceField: "BPARTNER", TargetField: "VENDOR-ID"},
			{SourceField: "NAME_ORG1", TargetField: "VENDOR-NAME"},
			{SourceField: "COUNTRY", TargetField: "VENDOR-COUNTRY", Convert: "toUpperCase"},
		},
		ChartOfAccounts: {
			{SourceField: "SAKNR", TargetField: "ACCOUNT-ID", Convert: "padLeft10"},
			{SourceField: "TXT50", TargetField: "ACCOUNT-DESCRIPTION"},
			{SourceField: "GLACCOUNT_TYPE", TargetField: "ACCOUNT-TYPE", ValueMap: map[string]string{
				"X": "balance", "N": "pl", "P": "pl", "S": "secondary",
			}, Default: "gl"},
		},
	},

	"oracle-ebs": {
		Item: {
			{SourceField: "SEGMENT1", TargetField: "ITEM-ID"},
			{SourceField: "DESCRIPTION", TargetField: "ITEM-DESCRIPTION"},
			{SourceField: "PRIMARY_UOM_CODE", TargetField: "ITEM-BASE_UOM", Convert: "toUpperCase", Default: "EA"},
			{SourceField: "ITEM_TYPE", TargetField: "ITEM-TYPE", ValueMap: map[string]string{
				"FG": "finished", "SA": "semifinished", "RM": "raw",
			}, Default: "other"},
			{SourceField: "CATEGORY_SET", TargetField: "ITEM-GROUP"},
		},
		Customer: {
			{SourceField: "ACCOUNT_NUMBER", TargetField: "CUSTOMER-ID"},
			{SourceField: "PARTY_NAME", TargetField: "CUSTOMER-NAME"},
			{SourceField: "COUNTRY", TargetField: "CUSTOMER-COUNTRY", Convert: "toUpperCase"},
			{SourceField: "CITY", TargetField: "CUSTOMER-CITY"},
		},
		Vendor: {
			{SourceField: "SEGMENT1", TargetField: "VENDOR-ID"},
			{SourceField: "VENDOR_NAME", TargetField: "VENDOR-NAME"},
			{SourceField: "COUNTRY", TargetField: "VENDOR-COUNTRY", Convert: "toUpperCase"},
		},
		ChartOfAccounts: {
			{SourceField: "FLEX_VALUE", TargetField: "ACCOUNT-ID"},
			{SourceField: "DESCRIPTION", TargetField: "ACCOUNT-DESCRIPTION"},
			{SourceField: "ACCOUNT_TYPE", TargetField: "ACCOUNT-TYPE", ValueMap: map[string]string{
				"A": "balance", "L": "balance", "E": "pl", "R": "pl",
			}, Default: "gl"},
		},
	},

	"dynamics-ax": {
		Item: {
			{SourceField: "ITEMID", TargetField: "ITEM-ID"},
			{SourceField: "ITEMNAME", TargetField: "ITEM-DESCRIPTION"},
			{SourceField: "UNITID", TargetField: "ITEM-BASE_UOM", Convert: "toUpperCase", Default: "EA"},
			{SourceField: "ITEMTYPE", TargetField: "ITEM-TYPE", ValueMap: map[string]string{
				"0": "finished", "1": "raw", "2": "service",
			}, Default: "other"},
			{SourceField: "ITEMGROUPID", TargetField: "ITEM-GROUP"},
		},
		Customer: {
			{SourceField: "ACCOUNTNUM", TargetField: "CUSTOMER-ID"},
			{SourceField: "NAME", TargetField: "CUSTOMER-NAME"},
			{SourceField: "COUNTRYREGIONID", TargetField: "CUSTOMER-COUNTRY", Convert: "toUpperCase"},
			{SourceField: "CITY", TargetField: "CUSTOMER-CITY"},
		},
		Vendor: {
			{SourceField: "ACCOUNTNUM", TargetField: "VENDOR-ID"},
			{SourceField: "NAME", TargetField: "VENDOR-NAME"},
			{SourceField: "COUNTRYREGIONID", TargetField: "VENDOR-COUNTRY", Convert: "toUpperCase"},
		},
		ChartOfAccounts: {
			{SourceField: "MAINACCOUNTID", TargetField: "ACCOUNT-ID"},
			{SourceField: "NAME", TargetField: "ACCOUNT-DESCRIPTION"},
			{SourceField: "TYPE", TargetField: "ACCOUNT-TYPE", ValueMap: map[string]string{
				"0": "pl", "1": "pl", "2": "balance", "3": "balance",
			}, Default: "gl"},
		},
	},

	"jde": {
		Item: {
			{SourceField: "IMLITM", TargetField: "ITEM-ID"},
			{SourceField: "IMDSC1", TargetField: "ITEM-DESCRIPTION"},
			{SourceField: "IMUOM1", TargetField: "ITEM-BASE_UOM", Convert: "toUpperCase", Default: "EA"},
			{SourceField: "IMSTKT", TargetField: "ITEM-TYPE", ValueMap: map[string]string{
				"M": "finished", "P": "raw", "O": "other",
			}, Default: "other"},
			{SourceField: "IMGLPT", TargetField: "ITEM-GROUP"},
		},
		Customer: {
			{SourceField: "AIAN8", TargetField: "CUSTOMER-ID"},
			{SourceField: "ABALPH", TargetField: "CUSTOMER-NAME"},
			{SourceField: "ALCTR", TargetField: "CUSTOMER-COUNTRY", Convert: "toUpperCase"},
			{SourceField: "ALCTY1", TargetField: "CUSTOMER-CITY"},
		},
		Vendor: {
			{SourceField: "A6AN8", TargetField: "VENDOR-ID"},
			{SourceField: "ABALPH", TargetField: "VENDOR-NAME"},
			{SourceField: "ALCTR", TargetField: "VENDOR-COUNTRY", Convert: "toUpperCase"},
		},
		ChartOfAccounts: {
			{SourceField: "GMAID", TargetField: "ACCOUNT-ID"},
			{SourceField: "GMDL01", TargetField: "ACCOUNT-DESCRIPTION"},
			{SourceField: "GMLDA", TargetField: "ACCOUNT-TYPE", Default: "gl"},
		},
	},
}
