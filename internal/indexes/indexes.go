// Package indexes derives staging indexes from the declared migration
// objects: a unique index on each entity's identifier plus lookup
// indexes on fields that reference predecessor entities.
package indexes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/erplens/erplens/internal/canonical"
	"github.com/erplens/erplens/internal/migration"
	"github.com/erplens/erplens/internal/target"
)

// IndexPlan describes the set of indexes to create on the staging store.
type IndexPlan struct {
	Indexes      []target.CollectionIndex `yaml:"indexes"`
	Explanations []string                 `yaml:"explanations"`
}

// Infer generates an IndexPlan from the migration objects.
func Infer(objects []*migration.Object) *IndexPlan {
	plan := &IndexPlan{}
	byID := make(map[string]*migration.Object, len(objects))
	for _, obj := range objects {
		byID[obj.ID] = obj
	}

	for _, obj := range objects {
		targets := make(map[string]bool, len(obj.Mappings))
		for _, m := range obj.Mappings {
			targets[m.TargetField] = true
		}

		// Identifier → unique index
		if id := canonical.IdentifierField(obj.Entity); id != "" && targets[id] {
			idx := target.IndexDefinition{
				Keys:   []target.IndexKey{{Field: id, Order: 1}},
				Name:   fmt.Sprintf("uq_%s", indexFieldName(id)),
				Unique: true,
			}
			plan.addIfNew(obj.Collection, idx)
			plan.Explanations = append(plan.Explanations,
				fmt.Sprintf("Unique index on %s.%s from the %s identifier", obj.Collection, id, obj.Entity))
		}

		// Predecessor identifiers carried on this object → lookup index
		for _, depID := range obj.DependsOn {
			dep := byID[depID]
			if dep == nil {
				continue
			}
			ref := canonical.IdentifierField(dep.Entity)
			if ref == "" || !targets[ref] {
				continue
			}
			idx := target.IndexDefinition{
				Keys: []target.IndexKey{{Field: ref, Order: 1}},
				Name: fmt.Sprintf("ref_%s_%s", obj.Collection, indexFieldName(ref)),
			}
			plan.addIfNew(obj.Collection, idx)
			plan.Explanations = append(plan.Explanations,
				fmt.Sprintf("Index on %s.%s from reference to %s", obj.Collection, ref, dep.Entity))
		}
	}
	return plan
}

// Apply creates every planned index on the store.
func Apply(ctx context.Context, store target.Store, plan *IndexPlan) error {
	byCollection := make(map[string][]target.IndexDefinition)
	var order []string
	for _, ci := range plan.Indexes {
		if _, seen := byCollection[ci.Collection]; !seen {
			order = append(order, ci.Collection)
		}
		byCollection[ci.Collection] = append(byCollection[ci.Collection], ci.Index)
	}
	for _, collection := range order {
		if err := store.EnsureIndexes(ctx, collection, byCollection[collection]); err != nil {
			return err
		}
	}
	return nil
}

func (p *IndexPlan) addIfNew(collection string, idx target.IndexDefinition) {
	keyStr := indexKeyString(idx.Keys)
	for _, existing := range p.Indexes {
		if existing.Collection == collection && indexKeyString(existing.Index.Keys) == keyStr {
			return
		}
	}
	p.Indexes = append(p.Indexes, target.CollectionIndex{Collection: collection, Index: idx})
}

func indexKeyString(keys []target.IndexKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s:%d", k.Field, k.Order)
	}
	return strings.Join(parts, ",")
}

func indexFieldName(field string) string {
	return strings.ToLower(strings.ReplaceAll(field, "-", "_"))
}

// WriteYAML writes the index plan to a YAML file.
func (p *IndexPlan) WriteYAML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling index plan: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
