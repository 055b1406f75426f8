package gateway

import (
	"context"
	"time"
)

// Mode selects between deterministic fixtures and a live staged snapshot.
type Mode string

const (
	ModeMock Mode = "mock"
	ModeLive Mode = "live"
)

// Default per-call deadlines. Elapsing either surfaces as KindTimeout.
const (
	DefaultReadTimeout   = 30 * time.Second
	DefaultStreamTimeout = 5 * time.Minute
)

// ReadOptions bounds a unary table read.
type ReadOptions struct {
	Fields  []string
	Where   string
	MaxRows int
}

// StreamOptions controls a chunked table read.
type StreamOptions struct {
	Fields   []string
	Where    string
	PageSize int
	// Cursor resumes a previously interrupted stream. Empty starts from
	// the beginning.
	Cursor string
}

// RowSet is a bounded result with its declared column list.
type RowSet struct {
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
}

// Page is one chunk of a streamed read. Cursor is empty on the final page.
type Page struct {
	Columns []string
	Rows    []map[string]interface{}
	Cursor  string
}

// Stream produces pages lazily. Next returns nil after the final page.
type Stream interface {
	Next(ctx context.Context) (*Page, error)
	Close() error
}

// Gateway provides read access to a source ERP installation. Row order
// within a page is backend-defined; callers must not rely on it across
// pages.
type Gateway interface {
	Mode() Mode
	ReadTable(ctx context.Context, table string, opts ReadOptions) (*RowSet, error)
	StreamTable(ctx context.Context, table string, opts StreamOptions) (Stream, error)
	InvokeRemote(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error)
	Close() error
}
