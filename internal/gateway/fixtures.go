package gateway

// The fixture corpus mirrors a small but coherent ECC installation: two
// company codes, one controlling area, a handful of master records, and a
// change history that spans the order-to-cash, procure-to-pay, and
// record-to-report flows. Tables are keyed by their source names.
var fixtures = map[string]*RowSet{
	"T001": table(
		[]string{"BUKRS", "BUTXT", "ORT01", "LAND1", "WAERS", "PERIV"},
		row("1000", "Main Co", "Hamburg", "DE", "EUR", "K4"),
		row("2000", "Second Co", "Rotterdam", "NL", "EUR", "K4"),
	),
	"T009": table(
		[]string{"PERIV", "XKALE", "ANZBP", "ANZSP"},
		row("K4", "X", "12", "4"),
		row("V3", "", "12", "4"),
	),
	"TNRO": table(
		[]string{"OBJECT", "OBJECTTEXT", "PERCENTAGE"},
		row("BKPF_BUKR", "Accounting documents", "95"),
		row("EINKBELEG", "Purchasing documents", "90"),
		row("VERKBELEG", "Sales documents", "90"),
		row("MATBELEG", "Material documents", "95"),
		row("DEBITOR", "Customer master", "85"),
	),
	"NRIV": table(
		[]string{"OBJECT", "NRRANGENR", "FROMNUMBER", "TONUMBER", "NRLEVEL"},
		row("BKPF_BUKR", "01", "0100000000", "0199999999", "0152304411"),
		row("EINKBELEG", "45", "4500000000", "4599999999", "4500871233"),
		row("VERKBELEG", "01", "0000500000", "0000999999", "0000731204"),
		row("MATBELEG", "49", "4900000000", "4999999999", "4962110540"),
		row("DEBITOR", "01", "0000100000", "0000199999", "0000104882"),
		row("DEBITOR", "02", "0000200000", "0000299999", "0000200016"),
	),
	"TKA01": table(
		[]string{"KOKRS", "BEZEI", "WAERS", "KTOPL"},
		row("1000", "Controlling Area Europe", "EUR", "INT"),
	),
	"CSKB": table(
		[]string{"KOKRS", "KSTAR", "KATYP", "DATBI"},
		row("1000", "0000400000", "1", "99991231"),
		row("1000", "0000410000", "1", "99991231"),
		row("1000", "0000620000", "41", "99991231"),
		row("1000", "0000630000", "42", "99991231"),
		row("1000", "0000650000", "43", "99991231"),
		row("1000", "0000893000", "1", "99991231"),
	),
	"MARA": table(
		[]string{"MATNR", "MTART", "MATKL", "MEINS", "BSTME"},
		row("MAT-1000", "FERT", "001", "EA", ""),
		row("MAT-1001", "FERT", "001", "EA", ""),
		row("MAT-2000", "ROH", "002", "KG", "KG"),
		row("MAT-2001", "ROH", "002", "KG", ""),
		row("MAT-3000", "HALB", "003", "EA", ""),
	),
	"MAKT": table(
		[]string{"MATNR", "SPRAS", "MAKTX"},
		row("MAT-1000", "E", "Finished pump assembly"),
		row("MAT-1001", "E", "Finished valve assembly"),
		row("MAT-2000", "E", "Raw steel coil"),
		row("MAT-2001", "E", "Raw copper wire"),
		row("MAT-3000", "E", "Machined housing"),
	),
	"KNA1": table(
		[]string{"KUNNR", "NAME1", "ORT01", "LAND1", "STCEG"},
		row("0000100001", "Acme Industries", "Berlin", "DE", "DE812345678"),
		row("0000100002", "Borealis Retail", "Oslo", "NO", ""),
		row("0000100003", "Cobalt Foods", "Lyon", "FR", "FR76543210987"),
	),
	"LFA1": table(
		[]string{"LIFNR", "NAME1", "ORT01", "LAND1", "SPERR"},
		row("0000300001", "Steelworks GmbH", "Essen", "DE", ""),
		row("0000300002", "Nordic Components", "Malmo", "SE", ""),
		row("0000300003", "Dormant Supplies", "Vienna", "AT", "X"),
	),
	"SKA1": table(
		[]string{"KTOPL", "SAKNR", "XBILK", "KTOKS"},
		row("INT", "0000100000", "X", "CASH"),
		row("INT", "0000140000", "X", "RECV"),
		row("INT", "0000400000", "", "PL"),
		row("INT", "0000800000", "", "PL"),
	),
	"VBAK": table(
		[]string{"VBELN", "AUART", "KUNNR", "VKORG", "NETWR", "WAERK"},
		row("0000500001", "OR", "0000100001", "1000", "12500.00", "EUR"),
		row("0000500002", "OR", "0000100002", "1000", "880.50", "EUR"),
		row("0000500003", "OR", "0000100003", "1000", "43000.00", "EUR"),
	),
	"EKKO": table(
		[]string{"EBELN", "BSART", "LIFNR", "EKORG", "WAERS"},
		row("4500000001", "NB", "0000300001", "1000", "EUR"),
		row("4500000002", "NB", "0000300002", "1000", "EUR"),
	),
	"STKO": table(
		[]string{"STLNR", "STLAL", "MATNR", "BMENG", "BMEIN"},
		row("00000101", "01", "MAT-1000", "1", "EA"),
		row("00000102", "01", "MAT-1001", "1", "EA"),
	),
	"CDHDR": table(
		[]string{"OBJECTCLAS", "OBJECTID", "CHANGENR", "USERNAME", "UDATE", "UTIME", "TCODE"},
		// Order-to-cash, clean case.
		row("VERKBELEG", "0000500001", "0000100001", "JMILLER", "20240105", "091500", "VA01"),
		row("VERKBELEG", "0000500001", "0000100002", "JMILLER", "20240106", "141200", "VA02"),
		row("VERKBELEG", "0000500001", "0000100003", "SWAREHOUSE", "20240108", "101000", "VL01N"),
		row("VERKBELEG", "0000500001", "0000100004", "ABILLING", "20240110", "160300", "VF01"),
		// Order-to-cash, second clean case.
		row("VERKBELEG", "0000500002", "0000100005", "JMILLER", "20240107", "083000", "VA01"),
		row("VERKBELEG", "0000500002", "0000100006", "SWAREHOUSE", "20240109", "113000", "VL01N"),
		row("VERKBELEG", "0000500002", "0000100007", "ABILLING", "20240112", "094500", "VF01"),
		// Order-to-cash, billed without a delivery.
		row("VERKBELEG", "0000500003", "0000100008", "JMILLER", "20240111", "120000", "VA01"),
		row("VERKBELEG", "0000500003", "0000100009", "ABILLING", "20240111", "150000", "VF01"),
		// Procure-to-pay.
		row("EINKBELEG", "4500000001", "0000200001", "PBUYER", "20240104", "090000", "ME21N"),
		row("EINKBELEG", "4500000001", "0000200002", "PBUYER", "20240105", "100000", "ME22N"),
		row("EINKBELEG", "4500000001", "0000200003", "SWAREHOUSE", "20240109", "140000", "MIGO"),
		row("EINKBELEG", "4500000001", "0000200004", "APCLERK", "20240115", "110000", "MIRO"),
		row("EINKBELEG", "4500000002", "0000200005", "PBUYER", "20240110", "091500", "ME21N"),
		row("EINKBELEG", "4500000002", "0000200006", "APCLERK", "20240118", "130000", "MIRO"),
		// Record-to-report.
		row("BELEG", "0100000001", "0000300001", "GLACCT", "20240131", "170000", "FB01"),
		row("BELEG", "0100000001", "0000300002", "GLACCT", "20240215", "160000", "FB05"),
		// Customer master churn; no process family is assigned to DEBITOR.
		row("DEBITOR", "0000100001", "0000400001", "MDADMIN", "20240102", "100000", "XD01"),
		row("DEBITOR", "0000100001", "0000400002", "MDADMIN", "20240103", "110000", "XD02"),
	),
	"CDPOS": table(
		[]string{"CHANGENR", "TABNAME", "FNAME", "CHNGIND", "LINENR"},
		row("0000100001", "VBAK", "KEY", "I", "001"),
		row("0000100002", "VBAK", "NETWR", "U", "001"),
		row("0000100002", "VBAP", "MENGE", "U", "002"),
		row("0000100003", "LIKP", "KEY", "I", "001"),
		row("0000100004", "VBRK", "KEY", "I", "001"),
		row("0000100005", "VBAK", "KEY", "I", "001"),
		row("0000100006", "LIKP", "KEY", "I", "001"),
		row("0000100007", "VBRK", "KEY", "I", "001"),
		row("0000100008", "VBAK", "KEY", "I", "001"),
		row("0000100009", "VBRK", "KEY", "I", "001"),
		row("0000200001", "EKKO", "KEY", "I", "001"),
		row("0000200002", "EKPO", "MENGE", "U", "001"),
		row("0000200003", "MKPF", "KEY", "I", "001"),
		row("0000200004", "RBKP", "KEY", "I", "001"),
		row("0000200005", "EKKO", "KEY", "I", "001"),
		row("0000200006", "RBKP", "KEY", "I", "001"),
		row("0000300001", "BKPF", "KEY", "I", "001"),
		row("0000300002", "BSEG", "AUGBL", "U", "001"),
		row("0000400001", "KNA1", "KEY", "I", "001"),
		row("0000400002", "KNA1", "ORT01", "U", "001"),
	),
	"SWNCAGGTCODE": table(
		[]string{"TCODE", "COUNT"},
		row("VA01", "1240"),
		row("VA02", "823"),
		row("VL01N", "1102"),
		row("VF01", "1077"),
		row("ME21N", "702"),
		row("ME22N", "233"),
		row("ME23N", "1450"),
		row("MIGO", "1890"),
		row("MIRO", "655"),
		row("FB01", "3120"),
		row("FB05", "1204"),
		row("XD01", "48"),
		row("ZCUST_RPT01", "12"),
		row("SE38", "410"),
	),
	"SWNCAGGUSERTCODE": table(
		[]string{"ACCOUNT", "TCODE", "COUNT"},
		row("JMILLER", "VA01", "540"),
		row("JMILLER", "VA02", "390"),
		row("SWAREHOUSE", "VL01N", "810"),
		row("SWAREHOUSE", "MIGO", "1320"),
		row("ABILLING", "VF01", "1002"),
		row("PBUYER", "ME21N", "690"),
		row("APCLERK", "MIRO", "630"),
		row("GLACCT", "FB01", "2980"),
	),
	"TADIR": table(
		[]string{"OBJ_NAME", "OBJECT", "DEVCLASS", "AUTHOR"},
		row("ZCUST_RPT01", "PROG", "ZFI", "DEVUSER1"),
		row("ZSD_PRICING_EXIT", "PROG", "ZSD", "DEVUSER1"),
		row("ZMM_BATCH_UPLOAD", "PROG", "ZMM", "DEVUSER2"),
		row("ZFI_IDOC_IN", "FUGR", "ZFI", "DEVUSER2"),
		row("ZTAB_CUSTOM_COND", "TABL", "ZSD", "DEVUSER1"),
	),
	"SMODILOG": table(
		[]string{"OBJ_NAME", "OBJECT", "OPERATION", "PROTOCOL"},
		row("SAPMV45A", "PROG", "MOD", "repair of sales order user exit"),
		row("MV45AFZZ", "PROG", "MOD", "USEREXIT_SAVE_DOCUMENT change"),
	),
	"AGR_DEFINE": table(
		[]string{"AGR_NAME", "TEXT", "PARENT_AGR"},
		row("Z_FI_CLERK", "Accounts payable clerk", ""),
		row("Z_SD_SALES", "Sales order processing", ""),
		row("Z_ALL_POWER", "Legacy wide-access role", ""),
	),
	"AGR_USERS": table(
		[]string{"AGR_NAME", "UNAME", "FROM_DAT", "TO_DAT"},
		row("Z_FI_CLERK", "APCLERK", "20200101", "99991231"),
		row("Z_SD_SALES", "JMILLER", "20200101", "99991231"),
		row("Z_ALL_POWER", "MDADMIN", "20190601", "99991231"),
		row("Z_ALL_POWER", "DEVUSER1", "20190601", "99991231"),
	),
	"AGR_1251": table(
		[]string{"AGR_NAME", "OBJECT", "FIELD", "LOW", "HIGH"},
		row("Z_FI_CLERK", "F_BKPF_BUK", "BUKRS", "1000", ""),
		row("Z_SD_SALES", "V_VBAK_VKO", "VKORG", "1000", ""),
		row("Z_ALL_POWER", "S_TCODE", "TCD", "*", ""),
		row("Z_ALL_POWER", "S_DEVELOP", "ACTVT", "*", ""),
	),
	"USR02": table(
		[]string{"BNAME", "USTYP", "UFLAG", "TRDAT"},
		row("JMILLER", "A", "0", "20240112"),
		row("SWAREHOUSE", "A", "0", "20240109"),
		row("ABILLING", "A", "0", "20240112"),
		row("PBUYER", "A", "0", "20240110"),
		row("APCLERK", "A", "0", "20240118"),
		row("GLACCT", "A", "0", "20240215"),
		row("MDADMIN", "A", "0", "20240103"),
		row("DEVUSER1", "A", "0", "20231120"),
		row("DEVUSER2", "A", "64", "20220301"),
	),
	"UST04": table(
		[]string{"BNAME", "PROFILE"},
		row("MDADMIN", "SAP_ALL"),
		row("GLACCT", "Z_FI_PROF"),
	),
	"RFCDES": table(
		[]string{"RFCDEST", "RFCTYPE", "RFCHOST", "RFCOPTIONS"},
		row("CRM_PROD", "3", "crmhost01", "load balanced"),
		row("EDI_SUBSYS", "T", "edihost", "tcp"),
		row("BW_PROD", "3", "bwhost01", ""),
	),
	"EDPP1": table(
		[]string{"PARNUM", "PARTYP", "AGENT"},
		row("CUST100001", "KU", "EDIADMIN"),
		row("VEND300001", "LI", "EDIADMIN"),
	),
	"TBTCO": table(
		[]string{"JOBNAME", "STATUS", "PERIODIC", "SDLUNAME"},
		row("Z_DAILY_BILLING", "F", "X", "BATCHADM"),
		row("Z_MRP_RUN", "F", "X", "BATCHADM"),
		row("Z_IDOC_REPROCESS", "A", "X", "EDIADMIN"),
		row("SAP_REORG_SPOOL", "F", "X", "BATCHADM"),
	),
	"TBTCP": table(
		[]string{"JOBNAME", "PROGNAME", "VARIANT"},
		row("Z_DAILY_BILLING", "SDBILLDL", "DAILY"),
		row("Z_MRP_RUN", "RMMRP000", "PLANT1000"),
		row("Z_IDOC_REPROCESS", "RBDMANI2", "RETRY"),
		row("SAP_REORG_SPOOL", "RSPO0041", "STD"),
	),
	"ARCH_OBJ": table(
		[]string{"OBJECT", "OBJTEXT", "RETENTION"},
		row("FI_DOCUMNT", "Financial accounting documents", "10"),
		row("SD_VBAK", "Sales documents", "7"),
		row("MM_EKKO", "Purchasing documents", "7"),
		row("IDOC", "Intermediate documents", "1"),
	),
	"DBSTATC": table(
		[]string{"TNAME", "ROWS", "GROWTH_PCT_YEAR"},
		row("BKPF", "48120044", "14"),
		row("BSEG", "211400382", "15"),
		row("CDHDR", "30112000", "22"),
		row("CDPOS", "161200933", "23"),
		row("EDIDC", "9120033", "35"),
		row("VBAK", "4210022", "8"),
	),
}

// table builds a fixture RowSet from positional row values matched against
// the column list.
func table(columns []string, rows ...[]string) *RowSet {
	rs := &RowSet{Columns: columns, Rows: make([]map[string]interface{}, len(rows))}
	for i, values := range rows {
		m := make(map[string]interface{}, len(columns))
		for j, col := range columns {
			if j < len(values) {
				m[col] = values[j]
			}
		}
		rs.Rows[i] = m
	}
	return rs
}

func row(values ...string) []string { return values }
