package security

import (
	"path/filepath"
	"testing"
)

func TestRecordChainsHigherTierEntries(t *testing.T) {
	log := NewLogger(100)

	first := log.Record("extraction-run", "analyst", "mock run", "success")
	if first.Hash != "" || first.PrevHash != "" {
		t.Errorf("assessment entry hashed: %+v", first)
	}
	if len(log.Chain()) != 0 {
		t.Fatalf("assessment entry escalated to the chain")
	}

	second := log.Record("migration-validate", "analyst", "", "success")
	if second.Hash == "" {
		t.Fatal("development entry not hashed")
	}
	if second.PrevHash != "" {
		t.Errorf("first chained entry has prev hash %q", second.PrevHash)
	}
	third := log.Record("migration-load-staging", "analyst", "", "denied")
	if third.PrevHash != second.Hash {
		t.Errorf("prev hash = %q, want %q", third.PrevHash, second.Hash)
	}
	if log.TailHash() != third.Hash {
		t.Errorf("tail hash = %q, want %q", log.TailHash(), third.Hash)
	}

	chain := log.Chain()
	if len(chain) != 2 {
		t.Fatalf("chain has %d entries, want 2", len(chain))
	}
	if chain[0].Sequence != 2 || chain[1].Sequence != 3 {
		t.Errorf("chain sequences = %d, %d", chain[0].Sequence, chain[1].Sequence)
	}
}

func TestRetentionEvictsRecentNotChain(t *testing.T) {
	log := NewLogger(3)
	for i := 0; i < 5; i++ {
		log.Record("migration-validate", "analyst", "", "success")
	}
	recent := log.Recent()
	if len(recent) != 3 {
		t.Fatalf("recent window has %d entries, want 3", len(recent))
	}
	if recent[0].Sequence != 3 {
		t.Errorf("oldest retained sequence = %d, want 3", recent[0].Sequence)
	}
	if len(log.Chain()) != 5 {
		t.Errorf("chain has %d entries, want all 5", len(log.Chain()))
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	log := NewLogger(10)
	log.Record("migration-validate", "analyst", "batch 1", "success")
	log.Record("migration-load-staging", "analyst", "batch 1", "success")
	if err := log.Verify(); err != nil {
		t.Fatalf("pristine chain failed verification: %v", err)
	}

	chain := log.Chain()
	chain[0].User = "intruder"
	if err := VerifyChain(chain); err == nil {
		t.Fatal("mutated entry passed verification")
	}

	chain = log.Chain()
	chain[1].PrevHash = chain[1].Hash
	if err := VerifyChain(chain); err == nil {
		t.Fatal("broken linkage passed verification")
	}
}

func TestExportLoadSeedRoundTrip(t *testing.T) {
	log := NewLogger(10)
	log.Record("migration-validate", "analyst", "batch 1", "success")
	log.Record("migration-load-staging", "analyst", "batch 1", "success")
	path := filepath.Join(t.TempDir(), "audit.yaml")
	if err := log.Export(path); err != nil {
		t.Fatalf("Export: %v", err)
	}

	chain, err := LoadChain(path)
	if err != nil {
		t.Fatalf("LoadChain: %v", err)
	}
	if len(chain) != 2 {
		t.Fatalf("loaded %d entries, want 2", len(chain))
	}

	fresh := NewLogger(10)
	if err := fresh.Seed(chain); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if fresh.TailHash() != log.TailHash() {
		t.Errorf("seeded tail hash = %q, want %q", fresh.TailHash(), log.TailHash())
	}

	// New records continue the adopted chain.
	next := fresh.Record("migration-validate", "analyst", "batch 2", "success")
	if next.Sequence != 3 {
		t.Errorf("continued sequence = %d, want 3", next.Sequence)
	}
	if next.PrevHash != chain[1].Hash {
		t.Errorf("continued prev hash = %q, want %q", next.PrevHash, chain[1].Hash)
	}
	if err := fresh.Verify(); err != nil {
		t.Errorf("continued chain failed verification: %v", err)
	}
}

func TestSeedRejectsTamperedChain(t *testing.T) {
	log := NewLogger(10)
	log.Record("migration-validate", "analyst", "", "success")
	chain := log.Chain()
	chain[0].Details = "rewritten"

	fresh := NewLogger(10)
	if err := fresh.Seed(chain); err == nil {
		t.Fatal("tampered chain adopted")
	}
	if len(fresh.Chain()) != 0 {
		t.Error("rejected seed left entries behind")
	}
}

func TestSearchFilters(t *testing.T) {
	log := NewLogger(100)
	log.Record("extraction-run", "analyst", "", "success")
	log.Record("migration-validate", "analyst", "", "success")
	log.Record("migration-load-staging", "lead", "", "denied")
	log.Record("migration-load-staging", "analyst", "", "success")

	if got := log.Search(Query{Operation: "migration-load-staging"}); len(got) != 2 {
		t.Errorf("operation filter matched %d, want 2", len(got))
	}
	if got := log.Search(Query{User: "lead"}); len(got) != 1 || got[0].Result != "denied" {
		t.Errorf("user filter = %+v", got)
	}
	if got := log.Search(Query{Result: "success"}); len(got) != 3 {
		t.Errorf("result filter matched %d, want 3", len(got))
	}
	if got := log.Search(Query{Tier: int(TierStaging)}); len(got) != 2 {
		t.Errorf("tier filter matched %d, want 2", len(got))
	}
	if got := log.Search(Query{Result: "success", Limit: 2}); len(got) != 2 {
		t.Errorf("limit ignored, got %d", len(got))
	}
	if got := log.Search(Query{Result: "success", Offset: 2}); len(got) != 1 || got[0].Sequence != 4 {
		t.Errorf("offset slice = %+v", got)
	}
	if got := log.Search(Query{Offset: 10}); got != nil {
		t.Errorf("past-end offset returned %+v", got)
	}
}
