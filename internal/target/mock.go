package target

import "context"

// MockStore is a test double for the Store interface. It keeps inserted
// rows in memory and supports per-collection error injection.
type MockStore struct {
	EnsureErr error
	IndexErr  error
	InsertErr map[string]error
	DropErr   error
	CloseErr  error

	Collections map[string]bool
	Indexes     map[string][]IndexDefinition
	Inserted    map[string][]map[string]string
}

// NewMockStore returns an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{
		Collections: make(map[string]bool),
		Indexes:     make(map[string][]IndexDefinition),
		Inserted:    make(map[string][]map[string]string),
	}
}

func (m *MockStore) EnsureIndexes(_ context.Context, collection string, defs []IndexDefinition) error {
	if m.IndexErr != nil {
		return m.IndexErr
	}
	m.Indexes[collection] = append(m.Indexes[collection], defs...)
	return nil
}

func (m *MockStore) EnsureCollections(_ context.Context, names []string) error {
	if m.EnsureErr != nil {
		return m.EnsureErr
	}
	for _, name := range names {
		m.Collections[name] = true
	}
	return nil
}

func (m *MockStore) InsertRows(_ context.Context, collection string, rows []map[string]string) (int, error) {
	if err := m.InsertErr[collection]; err != nil {
		return 0, err
	}
	m.Collections[collection] = true
	m.Inserted[collection] = append(m.Inserted[collection], rows...)
	return len(rows), nil
}

func (m *MockStore) CountDocuments(_ context.Context, collection string) (int64, error) {
	return int64(len(m.Inserted[collection])), nil
}

func (m *MockStore) DistinctCount(_ context.Context, collection, field string) (int64, error) {
	seen := make(map[string]bool)
	for _, row := range m.Inserted[collection] {
		if v, ok := row[field]; ok {
			seen[v] = true
		}
	}
	return int64(len(seen)), nil
}

func (m *MockStore) DropCollections(_ context.Context, names []string) error {
	if m.DropErr != nil {
		return m.DropErr
	}
	for _, name := range names {
		delete(m.Collections, name)
		delete(m.Inserted, name)
	}
	return nil
}

func (m *MockStore) Close(_ context.Context) error {
	return m.CloseErr
}
