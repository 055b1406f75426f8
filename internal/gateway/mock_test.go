package gateway

import (
	"context"
	"errors"
	"testing"
)

func TestReadTableFixture(t *testing.T) {
	gw := NewMockGateway()
	rs, err := gw.ReadTable(context.Background(), "T001", ReadOptions{})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(rs.Rows) != 2 {
		t.Fatalf("T001 has %d rows, want 2", len(rs.Rows))
	}
	if rs.Rows[0]["BUKRS"] != "1000" || rs.Rows[1]["BUKRS"] != "2000" {
		t.Errorf("company codes = %v, %v", rs.Rows[0]["BUKRS"], rs.Rows[1]["BUKRS"])
	}
}

func TestReadTableDeterministic(t *testing.T) {
	gw := NewMockGateway()
	first, err := gw.ReadTable(context.Background(), "MARA", ReadOptions{})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	second, err := gw.ReadTable(context.Background(), "MARA", ReadOptions{})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(first.Rows) != len(second.Rows) {
		t.Fatalf("row counts differ: %d vs %d", len(first.Rows), len(second.Rows))
	}
	for i := range first.Rows {
		if first.Rows[i]["MATNR"] != second.Rows[i]["MATNR"] {
			t.Errorf("row %d differs between reads", i)
		}
	}
}

func TestReadTableProjectionAndLimit(t *testing.T) {
	gw := NewMockGateway()
	rs, err := gw.ReadTable(context.Background(), "MARA", ReadOptions{
		Fields:  []string{"MATNR"},
		MaxRows: 2,
	})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(rs.Rows) != 2 {
		t.Errorf("MaxRows ignored, got %d rows", len(rs.Rows))
	}
	if len(rs.Columns) != 1 || rs.Columns[0] != "MATNR" {
		t.Errorf("projected columns = %v", rs.Columns)
	}
	if _, leaked := rs.Rows[0]["MTART"]; leaked {
		t.Error("projection leaked unrequested field")
	}
}

func TestReadTableFailures(t *testing.T) {
	gw := NewMockGateway()
	gw.FailTables = map[string]Kind{"USR02": KindAccessDenied}

	_, err := gw.ReadTable(context.Background(), "USR02", ReadOptions{})
	if KindOf(err) != KindAccessDenied {
		t.Errorf("forced failure kind = %q", KindOf(err))
	}
	_, err = gw.ReadTable(context.Background(), "NO_SUCH_TABLE", ReadOptions{})
	if KindOf(err) != KindUnknownTable {
		t.Errorf("unknown table kind = %q", KindOf(err))
	}

	var ge *Error
	if !errors.As(err, &ge) || ge.Table != "NO_SUCH_TABLE" {
		t.Errorf("error does not carry the table: %v", err)
	}
}

func TestRetryable(t *testing.T) {
	cases := map[Kind]bool{
		KindTransport:    true,
		KindTimeout:      true,
		KindAccessDenied: false,
		KindUnknownTable: false,
		KindMalformed:    false,
	}
	for kind, want := range cases {
		err := &Error{Kind: kind, Table: "T", Op: "read"}
		if got := Retryable(err); got != want {
			t.Errorf("Retryable(%s) = %v, want %v", kind, got, want)
		}
	}
	if Retryable(errors.New("plain")) {
		t.Error("plain error treated as retryable")
	}
}

func TestStreamTablePaging(t *testing.T) {
	gw := NewMockGateway()
	stream, err := gw.StreamTable(context.Background(), "CDHDR", StreamOptions{PageSize: 8})
	if err != nil {
		t.Fatalf("StreamTable: %v", err)
	}
	defer stream.Close()

	total := 0
	pages := 0
	var lastCursor string
	for {
		page, err := stream.Next(context.Background())
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if page == nil {
			break
		}
		pages++
		total += len(page.Rows)
		if page.Cursor != "" {
			lastCursor = page.Cursor
		} else if total != 19 {
			t.Errorf("cursor empty before the final page at %d rows", total)
		}
	}
	if total != 19 || pages != 3 {
		t.Errorf("streamed %d rows over %d pages, want 19 over 3", total, pages)
	}
	if lastCursor != "offset:16" {
		t.Errorf("last non-final cursor = %q", lastCursor)
	}
}

func TestStreamTableResumeFromCursor(t *testing.T) {
	gw := NewMockGateway()
	stream, err := gw.StreamTable(context.Background(), "CDHDR", StreamOptions{PageSize: 8, Cursor: "offset:16"})
	if err != nil {
		t.Fatalf("StreamTable: %v", err)
	}
	defer stream.Close()

	page, err := stream.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if page == nil || len(page.Rows) != 3 {
		t.Fatalf("resumed page = %+v, want final 3 rows", page)
	}
	if page.Cursor != "" {
		t.Errorf("final page carries cursor %q", page.Cursor)
	}
	if next, _ := stream.Next(context.Background()); next != nil {
		t.Errorf("stream not exhausted after final page")
	}
}

func TestStreamTableRejectsBadCursor(t *testing.T) {
	gw := NewMockGateway()
	_, err := gw.StreamTable(context.Background(), "CDHDR", StreamOptions{Cursor: "page=3"})
	if KindOf(err) != KindMalformed {
		t.Errorf("bad cursor kind = %q", KindOf(err))
	}
}

func TestInvokeRemote(t *testing.T) {
	gw := NewMockGateway()
	info, err := gw.InvokeRemote(context.Background(), "SYSTEM_INFO", nil)
	if err != nil {
		t.Fatalf("InvokeRemote: %v", err)
	}
	if info["family"] != "sap-ecc" || info["client"] != "100" {
		t.Errorf("system info = %v", info)
	}

	count, err := gw.InvokeRemote(context.Background(), "TABLE_COUNT", map[string]interface{}{"table": "KNA1"})
	if err != nil {
		t.Fatalf("TABLE_COUNT: %v", err)
	}
	if count["count"] != int64(3) {
		t.Errorf("KNA1 count = %v", count["count"])
	}

	if _, err := gw.InvokeRemote(context.Background(), "DROP_CLIENT", nil); KindOf(err) != KindUnknownTable {
		t.Errorf("unknown function kind = %q", KindOf(err))
	}
}

func TestCancelledContext(t *testing.T) {
	gw := NewMockGateway()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gw.ReadTable(ctx, "T001", ReadOptions{}); KindOf(err) != KindTimeout {
		t.Errorf("cancelled read kind = %q", KindOf(err))
	}
	if _, err := gw.StreamTable(ctx, "T001", StreamOptions{}); KindOf(err) != KindTimeout {
		t.Errorf("cancelled stream kind = %q", KindOf(err))
	}
}
