package gateway

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// MockGateway serves deterministic fixtures keyed by table name. Two runs
// over the same fixture set produce byte-identical results, and streams
// are restartable from any cursor.
type MockGateway struct {
	// FailTables forces the given failure kind for a table, for tests.
	FailTables map[string]Kind
	// Extra overrides or adds fixture tables.
	Extra map[string]*RowSet
}

// NewMockGateway creates a gateway over the built-in fixture corpus.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) Mode() Mode { return ModeMock }

func (g *MockGateway) lookup(op, table string) (*RowSet, error) {
	if kind, ok := g.FailTables[table]; ok {
		return nil, &Error{Kind: kind, Table: table, Op: op}
	}
	if g.Extra != nil {
		if rs, ok := g.Extra[table]; ok {
			return rs, nil
		}
	}
	rs, ok := fixtures[table]
	if !ok {
		return nil, &Error{Kind: KindUnknownTable, Table: table, Op: op}
	}
	return rs, nil
}

func (g *MockGateway) ReadTable(ctx context.Context, table string, opts ReadOptions) (*RowSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindTimeout, Table: table, Op: "read", Err: err}
	}
	rs, err := g.lookup("read", table)
	if err != nil {
		return nil, err
	}
	out := projectRows(rs, opts.Fields)
	if opts.MaxRows > 0 && len(out.Rows) > opts.MaxRows {
		out.Rows = out.Rows[:opts.MaxRows]
	}
	return out, nil
}

func (g *MockGateway) StreamTable(ctx context.Context, table string, opts StreamOptions) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindTimeout, Table: table, Op: "stream", Err: err}
	}
	rs, err := g.lookup("stream", table)
	if err != nil {
		return nil, err
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}
	offset := 0
	if opts.Cursor != "" {
		offset, err = parseCursor(opts.Cursor)
		if err != nil {
			return nil, &Error{Kind: KindMalformed, Table: table, Op: "stream", Err: err}
		}
	}
	return &mockStream{rs: projectRows(rs, opts.Fields), table: table, offset: offset, pageSize: pageSize}, nil
}

func (g *MockGateway) InvokeRemote(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindTimeout, Table: name, Op: "invoke", Err: err}
	}
	switch name {
	case "SYSTEM_INFO":
		return map[string]interface{}{
			"family":  "sap-ecc",
			"release": "6.0 EHP8",
			"client":  "100",
		}, nil
	case "TABLE_COUNT":
		table, _ := args["table"].(string)
		rs, err := g.lookup("invoke", table)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"count": int64(len(rs.Rows))}, nil
	}
	return nil, &Error{Kind: KindUnknownTable, Table: name, Op: "invoke"}
}

func (g *MockGateway) Close() error { return nil }

type mockStream struct {
	rs       *RowSet
	table    string
	offset   int
	pageSize int
	closed   bool
}

func (s *mockStream) Next(ctx context.Context) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindTimeout, Table: s.table, Op: "stream", Err: err}
	}
	if s.closed || s.offset >= len(s.rs.Rows) {
		return nil, nil
	}
	end := s.offset + s.pageSize
	if end > len(s.rs.Rows) {
		end = len(s.rs.Rows)
	}
	page := &Page{Columns: s.rs.Columns, Rows: s.rs.Rows[s.offset:end]}
	s.offset = end
	if end < len(s.rs.Rows) {
		page.Cursor = fmt.Sprintf("offset:%d", end)
	}
	return page, nil
}

func (s *mockStream) Close() error {
	s.closed = true
	return nil
}

func parseCursor(cursor string) (int, error) {
	raw, ok := strings.CutPrefix(cursor, "offset:")
	if !ok {
		return 0, fmt.Errorf("bad cursor %q", cursor)
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("bad cursor %q", cursor)
	}
	return n, nil
}

// projectRows narrows a fixture to the requested field list without
// mutating the shared fixture data.
func projectRows(rs *RowSet, fields []string) *RowSet {
	if len(fields) == 0 {
		return &RowSet{Columns: rs.Columns, Rows: rs.Rows}
	}
	out := &RowSet{Columns: fields, Rows: make([]map[string]interface{}, len(rs.Rows))}
	for i, row := range rs.Rows {
		nr := make(map[string]interface{}, len(fields))
		for _, f := range fields {
			if v, ok := row[f]; ok {
				nr[f] = v
			}
		}
		out.Rows[i] = nr
	}
	return out
}
