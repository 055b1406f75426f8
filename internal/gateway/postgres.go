package gateway

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresGateway reads a staged snapshot of the source ERP: a schema in
// which every source table has been replicated one-to-one before analysis.
type PostgresGateway struct {
	connStr       string
	schema        string
	pool          *pgxpool.Pool
	readTimeout   time.Duration
	streamTimeout time.Duration
}

// NewPostgresGateway creates a gateway over a staged snapshot schema.
func NewPostgresGateway(connStr, schema string) *PostgresGateway {
	if schema == "" {
		schema = "public"
	}
	return &PostgresGateway{
		connStr:       connStr,
		schema:        schema,
		readTimeout:   DefaultReadTimeout,
		streamTimeout: DefaultStreamTimeout,
	}
}

func (g *PostgresGateway) Mode() Mode { return ModeLive }

// Connect establishes the connection pool.
func (g *PostgresGateway) Connect(ctx context.Context) error {
	cfg, err := pgxpool.ParseConfig(g.connStr)
	if err != nil {
		return fmt.Errorf("parsing connection string: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return &Error{Kind: KindTransport, Op: "connect", Err: err}
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return &Error{Kind: KindTransport, Op: "connect", Err: err}
	}
	g.pool = pool
	return nil
}

func (g *PostgresGateway) ReadTable(ctx context.Context, table string, opts ReadOptions) (*RowSet, error) {
	ctx, cancel := context.WithTimeout(ctx, g.readTimeout)
	defer cancel()

	sql := g.buildSelect(table, opts.Fields, opts.Where)
	if opts.MaxRows > 0 {
		sql += fmt.Sprintf(" LIMIT %d", opts.MaxRows)
	}
	rows, err := g.pool.Query(ctx, sql)
	if err != nil {
		return nil, classify("read", table, err)
	}
	defer rows.Close()

	rs, err := collectRows(rows)
	if err != nil {
		return nil, classify("read", table, err)
	}
	return rs, nil
}

func (g *PostgresGateway) StreamTable(ctx context.Context, table string, opts StreamOptions) (Stream, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}
	offset := 0
	if opts.Cursor != "" {
		n, err := parseCursor(opts.Cursor)
		if err != nil {
			return nil, &Error{Kind: KindMalformed, Table: table, Op: "stream", Err: err}
		}
		offset = n
	}
	return &pgStream{g: g, table: table, opts: opts, offset: offset, pageSize: pageSize}, nil
}

func (g *PostgresGateway) InvokeRemote(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, g.readTimeout)
	defer cancel()

	// Remote procedures of the snapshot schema are exposed as SQL
	// functions returning a single row. Arguments are passed by name so
	// the call is independent of map iteration order.
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	named := make([]string, len(keys))
	argVals := make([]interface{}, len(keys))
	for i, k := range keys {
		named[i] = fmt.Sprintf("%s => $%d", quoteIdent(k), i+1)
		argVals[i] = args[k]
	}
	sql := fmt.Sprintf("SELECT * FROM %s.%s(%s)",
		quoteIdent(g.schema), quoteIdent(name), strings.Join(named, ", "))
	rows, err := g.pool.Query(ctx, sql, argVals...)
	if err != nil {
		return nil, classify("invoke", name, err)
	}
	defer rows.Close()

	rs, err := collectRows(rows)
	if err != nil {
		return nil, classify("invoke", name, err)
	}
	if len(rs.Rows) != 1 {
		return nil, &Error{Kind: KindMalformed, Table: name, Op: "invoke",
			Err: fmt.Errorf("expected one reply row, got %d", len(rs.Rows))}
	}
	return rs.Rows[0], nil
}

func (g *PostgresGateway) Close() error {
	if g.pool != nil {
		g.pool.Close()
	}
	return nil
}

func (g *PostgresGateway) buildSelect(table string, fields []string, where string) string {
	cols := "*"
	if len(fields) > 0 {
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = quoteIdent(f)
		}
		cols = strings.Join(quoted, ", ")
	}
	sql := fmt.Sprintf("SELECT %s FROM %s.%s", cols, quoteIdent(g.schema), quoteIdent(table))
	if where != "" {
		sql += " WHERE " + where
	}
	return sql
}

type pgStream struct {
	g        *PostgresGateway
	table    string
	opts     StreamOptions
	offset   int
	pageSize int
	done     bool
}

func (s *pgStream) Next(ctx context.Context) (*Page, error) {
	if s.done {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.g.streamTimeout)
	defer cancel()

	// Keyset-free offset pagination over the snapshot: the staging
	// tables are immutable for the duration of a run, so OFFSET is
	// stable here.
	sql := s.g.buildSelect(s.table, s.opts.Fields, s.opts.Where)
	sql += fmt.Sprintf(" OFFSET %d LIMIT %d", s.offset, s.pageSize)
	rows, err := s.g.pool.Query(ctx, sql)
	if err != nil {
		return nil, classify("stream", s.table, err)
	}
	defer rows.Close()

	rs, err := collectRows(rows)
	if err != nil {
		return nil, classify("stream", s.table, err)
	}
	if len(rs.Rows) == 0 {
		s.done = true
		return nil, nil
	}
	s.offset += len(rs.Rows)
	page := &Page{Columns: rs.Columns, Rows: rs.Rows}
	if len(rs.Rows) == s.pageSize {
		page.Cursor = fmt.Sprintf("offset:%d", s.offset)
	} else {
		s.done = true
	}
	return page, nil
}

func (s *pgStream) Close() error {
	s.done = true
	return nil
}

func collectRows(rows pgx.Rows) (*RowSet, error) {
	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}
	rs := &RowSet{Columns: columns}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		m := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			m[col] = values[i]
		}
		rs.Rows = append(rs.Rows, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}

func classify(op, table string, err error) error {
	var ge *Error
	if errors.As(err, &ge) {
		return err
	}
	kind := KindTransport
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &pgErr):
		switch pgErr.Code {
		case "42P01": // undefined_table
			kind = KindUnknownTable
		case "42501": // insufficient_privilege
			kind = KindAccessDenied
		case "42703": // undefined_column
			kind = KindMalformed
		}
	}
	return &Error{Kind: kind, Table: table, Op: op, Err: err}
}

func quoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
