package security

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Entry is one audit record. Hash and PrevHash are populated by the
// chained store for tier >= 2 entries.
type Entry struct {
	Sequence  int       `yaml:"sequence" json:"sequence"`
	Operation string    `yaml:"operation" json:"operation"`
	Tier      int       `yaml:"tier" json:"tier"`
	User      string    `yaml:"user" json:"user"`
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	Details   string    `yaml:"details,omitempty" json:"details,omitempty"`
	Result    string    `yaml:"result" json:"result"`
	PrevHash  string    `yaml:"prev_hash,omitempty" json:"prev_hash,omitempty"`
	Hash      string    `yaml:"hash,omitempty" json:"hash,omitempty"`
}

// Query filters audit entries. Zero values match everything; Limit 0
// means no limit.
type Query struct {
	Operation string
	Tier      int
	User      string
	Result    string
	Limit     int
	Offset    int
}

// Logger records operations, keeping a bounded in-memory window and
// escalating tier >= 2 entries to the append-only hash chain.
type Logger struct {
	mu        sync.Mutex
	retention int
	recent    []Entry
	chain     []Entry
	tailHash  string
	seq       int
}

// DefaultRetention bounds the in-memory window when none is configured.
const DefaultRetention = 1000

// NewLogger returns a logger with the given in-memory retention cap.
func NewLogger(retention int) *Logger {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Logger{retention: retention}
}

// Record logs one operation. The chained store is append-only: entries
// there are never evicted, and each stores the hash of its predecessor.
func (l *Logger) Record(operation, user, details, result string) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	e := Entry{
		Sequence:  l.seq,
		Operation: operation,
		Tier:      int(OperationTier(operation)),
		User:      user,
		Timestamp: time.Now().UTC(),
		Details:   details,
		Result:    result,
	}

	if e.Tier >= int(TierDevelopment) {
		e.PrevHash = l.tailHash
		e.Hash = hashEntry(e)
		l.chain = append(l.chain, e)
		l.tailHash = e.Hash
	}

	l.recent = append(l.recent, e)
	if len(l.recent) > l.retention {
		l.recent = l.recent[len(l.recent)-l.retention:]
	}
	return e
}

// Seed adopts a previously exported chain as the store tail. The chain
// is verified first; a tampered export is rejected.
func (l *Logger) Seed(chain []Entry) error {
	if err := VerifyChain(chain); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.chain = append([]Entry(nil), chain...)
	l.tailHash = ""
	l.seq = 0
	if len(chain) > 0 {
		l.tailHash = chain[len(chain)-1].Hash
		l.seq = chain[len(chain)-1].Sequence
	}
	return nil
}

// TailHash returns the hash of the newest chained entry.
func (l *Logger) TailHash() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tailHash
}

// Recent returns a copy of the in-memory window, oldest first.
func (l *Logger) Recent() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.recent))
	copy(out, l.recent)
	return out
}

// Chain returns a copy of the chained store, oldest first.
func (l *Logger) Chain() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.chain))
	copy(out, l.chain)
	return out
}

// Search filters the in-memory window by the query, applying offset and
// limit after filtering.
func (l *Logger) Search(q Query) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var matched []Entry
	for _, e := range l.recent {
		if q.Operation != "" && e.Operation != q.Operation {
			continue
		}
		if q.Tier != 0 && e.Tier != q.Tier {
			continue
		}
		if q.User != "" && e.User != q.User {
			continue
		}
		if q.Result != "" && e.Result != q.Result {
			continue
		}
		matched = append(matched, e)
	}
	if q.Offset >= len(matched) {
		return nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched
}

// Export writes the chained store to a yaml file.
func (l *Logger) Export(path string) error {
	chain := l.Chain()
	data, err := yaml.Marshal(chain)
	if err != nil {
		return fmt.Errorf("marshaling audit chain: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing audit export: %w", err)
	}
	return nil
}

// Verify walks the chained store and reports the first tampered entry,
// or nil if every hash links correctly.
func (l *Logger) Verify() error {
	chain := l.Chain()
	return VerifyChain(chain)
}

// VerifyChain checks hash linkage over an exported chain.
func VerifyChain(chain []Entry) error {
	prev := ""
	for i, e := range chain {
		if e.PrevHash != prev {
			return fmt.Errorf("audit entry %d: previous-hash mismatch", i)
		}
		if hashEntry(e) != e.Hash {
			return fmt.Errorf("audit entry %d: content hash mismatch", i)
		}
		prev = e.Hash
	}
	return nil
}

// LoadChain reads an exported audit chain back for verification.
func LoadChain(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading audit export: %w", err)
	}
	var chain []Entry
	if err := yaml.Unmarshal(data, &chain); err != nil {
		return nil, fmt.Errorf("parsing audit export: %w", err)
	}
	return chain, nil
}

// hashEntry hashes the entry's content plus its predecessor's hash. The
// Hash field itself is excluded.
func hashEntry(e Entry) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%s|%d|%s|%s|%s|%s|%s",
		e.Sequence, e.Operation, e.Tier, e.User,
		e.Timestamp.Format(time.RFC3339Nano), e.Details, e.Result, e.PrevHash)
	return hex.EncodeToString(h.Sum(nil))
}
