package extract

import (
	"fmt"
	"log/slog"
	"sync"
)

// Registry is the process-wide catalog of extractors, keyed by stable
// identifier. Registration is permitted until the first run seals it;
// listing preserves insertion order.
type Registry struct {
	mu     sync.Mutex
	byID   map[string]Extractor
	order  []string
	sealed bool
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{byID: make(map[string]Extractor), logger: logger}
}

// Register adds an extractor. A second registration of the same
// identifier replaces the prior one with a warning. Registering after the
// registry is sealed, or with a blank identity, is a contract violation.
func (r *Registry) Register(x Extractor) error {
	id := x.Identity()
	if id.ID == "" {
		return fmt.Errorf("%w: extractor has no identifier", ErrFatal)
	}
	if id.Module == "" || id.Category == "" {
		return fmt.Errorf("%w: extractor %s missing module or category", ErrFatal, id.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("%w: registry sealed, cannot register %s", ErrFatal, id.ID)
	}
	if _, exists := r.byID[id.ID]; exists {
		r.logger.Warn("replacing registered extractor", "id", id.ID)
	} else {
		r.order = append(r.order, id.ID)
	}
	r.byID[id.ID] = x
	return nil
}

// Seal forbids further registration. Called before the first run.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Get returns the extractor for an identifier.
func (r *Registry) Get(id string) (Extractor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	x, ok := r.byID[id]
	return x, ok
}

// List returns all extractors in insertion order.
func (r *Registry) List() []Extractor {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Extractor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len reports the number of registered extractors.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Filter selects extractors by module, category, or explicit identifiers.
// Zero-value fields match everything; results keep insertion order.
type Filter struct {
	Module   string
	Category string
	IDs      []string
}

// Select returns the extractors matching the filter, in insertion order.
func (r *Registry) Select(f Filter) []Extractor {
	idSet := make(map[string]bool, len(f.IDs))
	for _, id := range f.IDs {
		idSet[id] = true
	}

	var out []Extractor
	for _, x := range r.List() {
		id := x.Identity()
		if f.Module != "" && id.Module != f.Module {
			continue
		}
		if f.Category != "" && id.Category != f.Category {
			continue
		}
		if len(idSet) > 0 && !idSet[id.ID] {
			continue
		}
		out = append(out, x)
	}
	return out
}
