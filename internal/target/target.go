// Package target abstracts the staging store that migration objects load
// transformed rows into.
package target

import "context"

// IndexKey is one field of an index, with sort order 1 or -1.
type IndexKey struct {
	Field string `yaml:"field"`
	Order int    `yaml:"order"`
}

// IndexDefinition describes one index on a staging collection.
type IndexDefinition struct {
	Keys   []IndexKey `yaml:"keys"`
	Name   string     `yaml:"name"`
	Unique bool       `yaml:"unique,omitempty"`
}

// CollectionIndex pairs an index with its collection.
type CollectionIndex struct {
	Collection string          `yaml:"collection"`
	Index      IndexDefinition `yaml:"index"`
}

// Store defines operations on the staging target.
type Store interface {
	// EnsureCollections creates the named collections if absent.
	EnsureCollections(ctx context.Context, names []string) error
	// EnsureIndexes creates the given indexes on a collection.
	EnsureIndexes(ctx context.Context, collection string, defs []IndexDefinition) error
	// InsertRows loads transformed rows into a collection and returns the
	// number written.
	InsertRows(ctx context.Context, collection string, rows []map[string]string) (int, error)

	// Reconciliation support
	CountDocuments(ctx context.Context, collection string) (int64, error)
	DistinctCount(ctx context.Context, collection, field string) (int64, error)

	DropCollections(ctx context.Context, names []string) error
	Close(ctx context.Context) error
}
