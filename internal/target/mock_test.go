package target

import (
	"context"
	"errors"
	"testing"
)

func TestMockStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()

	if err := store.EnsureCollections(ctx, []string{"items", "customers"}); err != nil {
		t.Fatalf("EnsureCollections: %v", err)
	}
	if !store.Collections["items"] || !store.Collections["customers"] {
		t.Errorf("collections not recorded: %v", store.Collections)
	}

	rows := []map[string]string{
		{"ITEM-ID": "00MAT-1000", "ITEM-TYPE": "finished"},
		{"ITEM-ID": "00MAT-2000", "ITEM-TYPE": "raw"},
		{"ITEM-ID": "00MAT-2000", "ITEM-TYPE": "raw"},
	}
	n, err := store.InsertRows(ctx, "items", rows)
	if err != nil {
		t.Fatalf("InsertRows: %v", err)
	}
	if n != 3 {
		t.Errorf("inserted = %d, want 3", n)
	}

	count, err := store.CountDocuments(ctx, "items")
	if err != nil || count != 3 {
		t.Errorf("CountDocuments = %d, %v, want 3", count, err)
	}
	distinct, err := store.DistinctCount(ctx, "items", "ITEM-ID")
	if err != nil || distinct != 2 {
		t.Errorf("DistinctCount = %d, %v, want 2", distinct, err)
	}

	if err := store.DropCollections(ctx, []string{"items"}); err != nil {
		t.Fatalf("DropCollections: %v", err)
	}
	if count, _ := store.CountDocuments(ctx, "items"); count != 0 {
		t.Errorf("dropped collection still counts %d", count)
	}
	if !store.Collections["customers"] {
		t.Error("unrelated collection dropped")
	}
}

func TestMockStoreEnsureIndexes(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()
	defs := []IndexDefinition{
		{Keys: []IndexKey{{Field: "ITEM-ID", Order: 1}}, Name: "uq_item_id", Unique: true},
	}
	if err := store.EnsureIndexes(ctx, "items", defs); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	got := store.Indexes["items"]
	if len(got) != 1 || got[0].Name != "uq_item_id" || !got[0].Unique {
		t.Errorf("recorded indexes = %+v", got)
	}

	store.IndexErr = errors.New("index build failed")
	if err := store.EnsureIndexes(ctx, "items", defs); err == nil {
		t.Fatal("injected index error not returned")
	}
}

func TestMockStoreErrorInjection(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()
	store.InsertErr = map[string]error{"items": errors.New("duplicate key")}

	if _, err := store.InsertRows(ctx, "items", []map[string]string{{"ITEM-ID": "x"}}); err == nil {
		t.Fatal("injected insert error not returned")
	}
	if n, err := store.InsertRows(ctx, "customers", []map[string]string{{"CUSTOMER-ID": "y"}}); err != nil || n != 1 {
		t.Errorf("unaffected collection insert = %d, %v", n, err)
	}

	store.EnsureErr = errors.New("unauthorized")
	if err := store.EnsureCollections(ctx, []string{"vendors"}); err == nil {
		t.Fatal("injected ensure error not returned")
	}
	store.DropErr = errors.New("not permitted")
	if err := store.DropCollections(ctx, []string{"customers"}); err == nil {
		t.Fatal("injected drop error not returned")
	}
}
