// Package rollback tears a staged migration back down: it drops the
// loaded collections so the family can be re-run from a clean slate.
package rollback

import (
	"context"
	"fmt"

	"github.com/erplens/erplens/internal/migration"
	"github.com/erplens/erplens/internal/target"
)

// Options controls what gets rolled back.
type Options struct {
	Family      string
	Collections []string // empty = every collection of the family's objects
}

// Result holds the outcome of a rollback.
type Result struct {
	DroppedCollections []string `yaml:"dropped_collections"`
	Errors             []string `yaml:"errors,omitempty"`
}

// Rollback orchestrates cleanup of a staged migration.
type Rollback struct {
	store target.Store
}

// New creates a new Rollback orchestrator.
func New(store target.Store) *Rollback {
	return &Rollback{store: store}
}

// Execute drops the selected collections. Each drop continues even if a
// prior one fails.
func (r *Rollback) Execute(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{}

	collections := opts.Collections
	if len(collections) == 0 {
		objects := migration.DefaultObjects(opts.Family)
		if objects == nil {
			return nil, fmt.Errorf("no migration objects declared for source family %q", opts.Family)
		}
		for _, obj := range objects {
			collections = append(collections, obj.Collection)
		}
	}

	for _, name := range collections {
		if err := r.store.DropCollections(ctx, []string{name}); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("dropping %s: %v", name, err))
			continue
		}
		result.DroppedCollections = append(result.DroppedCollections, name)
	}
	return result, nil
}
